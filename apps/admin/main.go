package main

import (
	"context"
	"log"
	"os"

	"github.com/bookiown/backend/core"
	"github.com/bookiown/backend/core/account"
	"github.com/bookiown/backend/core/invite"
	"github.com/bookiown/backend/core/school"
	emailsvc "github.com/bookiown/backend/services/email"
	logsvc "github.com/bookiown/backend/services/logger"
	"github.com/bookiown/backend/storage/mongodb"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	ctx := context.Background()

	coreLogger := logsvc.NewRollbarLogger(logger, conf)
	coreLogger.Enable(false)
	core.ParseEmailTemplates(conf, coreLogger)

	db, err := mongodb.Open(ctx, conf)
	errAndDie(err)
	defer db.Close(ctx)

	adminRepo := mongodb.NewAdminRepository(db)
	teacherRepo := mongodb.NewTeacherRepository(db)
	volunteerRepo := mongodb.NewVolunteerRepository(db)
	studentRepo := mongodb.NewStudentRepository(db)
	classRepo := mongodb.NewClassRepository(db)
	inviteRepo := mongodb.NewInviteRepository(db)

	cli := commandLine{
		db:         db,
		accountSvc: account.NewService(adminRepo, teacherRepo, volunteerRepo, inviteRepo),
		schoolSvc:  school.NewService(studentRepo, classRepo, teacherRepo, volunteerRepo),
		inviteSvc:  invite.NewService(inviteRepo, emailsvc.NewConsoleService(conf), conf),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
