package tests

import (
	"context"
	"testing"

	. "github.com/bookiown/backend/apps/api/echo"
	"github.com/bookiown/backend/core/account"
	"github.com/bookiown/backend/core/invite"
	"github.com/bookiown/backend/core/school"
)

func getToken(t *testing.T, role, email string) string {
	t.Helper()
	claims := GetAccountClaims(conf.AppName, role, email)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

// seeding helpers

func createAdmin(t *testing.T, firstName, lastName, email string) account.Admin {
	t.Helper()
	adm, err := accountSvc.CreateAdmin(context.Background(), account.NewAccount{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		ApprovalStatus: account.ApprovalApproved,
	})
	if err != nil {
		t.Fatalf("createAdmin(): %v", err)
	}
	return adm
}

func createTeacher(t *testing.T, firstName, lastName, email string) account.Teacher {
	t.Helper()
	tch, err := accountSvc.CreateTeacher(context.Background(), account.NewAccount{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		ApprovalStatus: account.ApprovalApproved,
	})
	if err != nil {
		t.Fatalf("createTeacher(): %v", err)
	}
	return tch
}

func createVolunteer(t *testing.T, firstName, lastName, email string) account.Volunteer {
	t.Helper()
	vol, err := accountSvc.CreateVolunteer(context.Background(), account.NewAccount{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		ApprovalStatus: account.ApprovalApproved,
	})
	if err != nil {
		t.Fatalf("createVolunteer(): %v", err)
	}
	return vol
}

func createStudent(t *testing.T, firstName, lastInitial, readingLevel string) school.Student {
	t.Helper()
	st, err := schoolSvc.CreateStudent(context.Background(), school.NewStudent{
		FirstName:    firstName,
		LastInitial:  lastInitial,
		ReadingLevel: readingLevel,
	})
	if err != nil {
		t.Fatalf("createStudent(): %v", err)
	}
	return st
}

func createClass(t *testing.T, name string) school.Class {
	t.Helper()
	cls, err := schoolSvc.CreateClass(context.Background(), school.NewClass{Name: name})
	if err != nil {
		t.Fatalf("createClass(): %v", err)
	}
	return cls
}

func sendInvite(t *testing.T, sender account.Admin, email, role string) invite.Invite {
	t.Helper()
	inv, err := inviteSvc.Send(context.Background(), invite.NewInvite{Email: email, Role: role},
		sender.ID, sender.FirstName+" "+sender.LastName)
	if err != nil {
		t.Fatalf("sendInvite(): %v", err)
	}
	return inv
}
