package main

import (
	"context"
	"fmt"

	"github.com/bookiown/backend/core/account"
	"github.com/bookiown/backend/core/invite"
	"github.com/bookiown/backend/core/school"
)

const (
	seedStudentsPerClass = 12
	seedInvitesPerAdmin  = 6
)

var seedReadingLevels = []string{"A", "B", "C", "D", "E"}

// seed wipes the database and fills it with sample data: admins with
// pending invites, teachers each running one full class, and unmatched
// volunteers.
func (cli *commandLine) seed(teachers, volunteers, admins int) error {
	ctx := context.Background()

	if err := cli.db.Wipe(ctx); err != nil {
		return err
	}

	var firstAdmin account.Admin
	for i := 0; i < admins; i++ {
		adm, err := cli.accountSvc.CreateAdmin(ctx, account.NewAccount{
			FirstName:      fmt.Sprintf("Admin%d", i+1),
			LastName:       "Seed",
			Email:          fmt.Sprintf("admin%d@bookiown.test", i+1),
			ApprovalStatus: account.ApprovalApproved,
		})
		if err != nil {
			return err
		}
		if i == 0 {
			firstAdmin = adm
		}

		for j := 0; j < seedInvitesPerAdmin; j++ {
			_, err := cli.inviteSvc.Send(ctx, invite.NewInvite{
				Email: fmt.Sprintf("invitee%d-%d@bookiown.test", i+1, j+1),
				Role:  account.AllRoles[j%len(account.AllRoles)],
			}, adm.ID, adm.FirstName+" "+adm.LastName)
			if err != nil {
				return err
			}
		}
	}

	for i := 0; i < teachers; i++ {
		tch, err := cli.accountSvc.CreateTeacher(ctx, account.NewAccount{
			FirstName:      fmt.Sprintf("Teacher%d", i+1),
			LastName:       "Seed",
			Email:          fmt.Sprintf("teacher%d@bookiown.test", i+1),
			ApprovalStatus: account.ApprovalApproved,
		})
		if err != nil {
			return err
		}

		cls, err := cli.schoolSvc.CreateClass(ctx, school.NewClass{
			Name:      fmt.Sprintf("Class %d", i+1),
			TeacherID: tch.ID.Hex(),
		})
		if err != nil {
			return err
		}
		for j := 0; j < seedStudentsPerClass; j++ {
			_, err := cli.schoolSvc.AddStudentToClass(ctx, cls.ID.Hex(), school.NewStudent{
				FirstName:    fmt.Sprintf("Student%d", i*seedStudentsPerClass+j+1),
				LastInitial:  string(rune('A' + j%26)),
				ReadingLevel: seedReadingLevels[j%len(seedReadingLevels)],
			})
			if err != nil {
				return err
			}
		}
	}

	for i := 0; i < volunteers; i++ {
		_, err := cli.accountSvc.CreateVolunteer(ctx, account.NewAccount{
			FirstName:      fmt.Sprintf("Volunteer%d", i+1),
			LastName:       "Seed",
			Email:          fmt.Sprintf("volunteer%d@bookiown.test", i+1),
			ApprovalStatus: account.ApprovalApproved,
		})
		if err != nil {
			return err
		}
	}

	fmt.Printf("seeded %d admins, %d teachers (%d students each), %d volunteers; first admin: %s\n",
		admins, teachers, seedStudentsPerClass, volunteers, firstAdmin.Email)
	return nil
}
