package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/bookiown/backend/core/account"
	"github.com/bookiown/backend/core/invite"
	"github.com/bookiown/backend/core/school"
)

var errHelp = errors.New("help provided")

type wiper interface {
	Wipe(ctx context.Context) error
}

type commandLine struct {
	db         wiper
	accountSvc *account.Service
	schoolSvc  *school.Service
	inviteSvc  *invite.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addadmin -first FIRST -last LAST -email EMAIL - create an approved admin account")
	fmt.Println("  seed [-teachers N] [-volunteers N] [-admins N] - wipe the database and fill it with sample data")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addAdminCmd := flag.NewFlagSet("addadmin", flag.ExitOnError)
	addAdminFirst := addAdminCmd.String("first", "", "The admin's first name.")
	addAdminLast := addAdminCmd.String("last", "", "The admin's last name.")
	addAdminEmail := addAdminCmd.String("email", "", "The admin's email address.")

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedTeachers := seedCmd.Int("teachers", 5, "Number of teachers (one class of 12 students each).")
	seedVolunteers := seedCmd.Int("volunteers", 10, "Number of volunteers.")
	seedAdmins := seedCmd.Int("admins", 2, "Number of admins (six invites each).")

	switch args[1] {
	case "addadmin":
		if err := addAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addAdminFirst == "" || *addAdminLast == "" || *addAdminEmail == "" {
			addAdminCmd.Usage()
			return errHelp
		}
		return cli.addAdmin(*addAdminFirst, *addAdminLast, *addAdminEmail)
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.seed(*seedTeachers, *seedVolunteers, *seedAdmins)
	default:
		cli.printUsage()
		return errHelp
	}
}
