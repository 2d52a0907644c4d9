package main

import (
	"context"
	"fmt"

	"github.com/bookiown/backend/core/account"
)

// addAdmin creates an approved admin account. This is the bootstrap path:
// every other account enters the system through an invite sent by an admin.
func (cli *commandLine) addAdmin(first, last, email string) error {
	adm, err := cli.accountSvc.CreateAdmin(context.Background(), account.NewAccount{
		FirstName:      first,
		LastName:       last,
		Email:          email,
		ApprovalStatus: account.ApprovalApproved,
	})
	if err != nil {
		return err
	}
	fmt.Printf("admin %s created: %s\n", adm.Email, adm.ID.Hex())
	return nil
}
