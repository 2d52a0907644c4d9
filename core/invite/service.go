package invite

import (
	"context"
	"errors"
	"net/mail"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bookiown/backend/core"
)

var (
	// errors
	ErrNotFound     = errors.New("invite not found")
	ErrInviteExists = errors.New("invite already exists")

	errInvalidID = errors.New("invalid invite ID")
)

type (
	Repository interface {
		CreateInvite(ctx context.Context, inv Invite) (Invite, error)
		GetInviteByID(ctx context.Context, id primitive.ObjectID) (Invite, error)
		GetInviteByEmail(ctx context.Context, email string) (Invite, error)
		QueryAllInvites(ctx context.Context) ([]Invite, error)
		UpdateInvite(ctx context.Context, inv Invite) (Invite, error)
		DeleteInvite(ctx context.Context, id primitive.ObjectID) error
	}

	Service struct {
		repo Repository
		mail core.EmailService
		conf *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{repo: repo, mail: mailSvc, conf: conf}
}

// Send records a new invite and dispatches the invitation email.
// At most one invite may exist per email address.
func (svc *Service) Send(ctx context.Context, ni NewInvite, senderID primitive.ObjectID, senderName string) (Invite, error) {
	if _, err := svc.repo.GetInviteByEmail(ctx, ni.Email); err == nil {
		return Invite{}, core.NewConflictError(ErrInviteExists)
	} else if err != ErrNotFound {
		return Invite{}, err
	}

	inv := Invite{
		Email:  ni.Email,
		Sender: senderID,
		Role:   ni.Role,
		Status: StatusSent,
		Code:   uuid.New().String(),
	}
	inv, err := svc.repo.CreateInvite(ctx, inv)
	if err != nil {
		return Invite{}, err
	}

	svc.mail.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Address: inv.Email}},
		Subject:      svc.conf.AppName + " Invitation",
		TemplateName: "invitation",
		TemplateData: struct {
			SenderName string
			NewRole    string
			Code       string
		}{
			SenderName: senderName,
			NewRole:    inv.Role,
			Code:       inv.Code,
		},
	})
	return inv, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Invite, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Invite{}, core.NewValidationError(errInvalidID)
	}
	return svc.repo.GetInviteByID(ctx, oid)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Invite, error) {
	return svc.repo.QueryAllInvites(ctx)
}

// Open marks an invite as opened by the invitee. Callers drive status
// transitions; nothing checks the prior status.
func (svc *Service) Open(ctx context.Context, id string) (Invite, error) {
	inv, err := svc.GetByID(ctx, id)
	if err != nil {
		return Invite{}, err
	}
	inv.Status = StatusOpened
	return svc.repo.UpdateInvite(ctx, inv)
}

// Remove deletes an invite and returns the deleted record.
func (svc *Service) Remove(ctx context.Context, id string) (Invite, error) {
	inv, err := svc.GetByID(ctx, id)
	if err != nil {
		return Invite{}, err
	}
	if err := svc.repo.DeleteInvite(ctx, inv.ID); err != nil {
		return Invite{}, err
	}
	return inv, nil
}
