package invite

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bookiown/backend/core"
)

// Status tracks an invite through its lifecycle: sent -> opened ->
// (completed | approved | rejected). Nothing enforces that ordering;
// transitions are driven entirely by callers.
type Status string

const (
	StatusSent      Status = "sent"
	StatusOpened    Status = "opened"
	StatusCompleted Status = "completed"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// Invite is an offer for a specific email address to join as a specific role.
type Invite struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email  string             `bson:"email" json:"email"`
	Sender primitive.ObjectID `bson:"sender" json:"sender"`
	Role   string             `bson:"role" json:"role"`
	Status Status             `bson:"status" json:"status"`
	Code   string             `bson:"code" json:"code"`
}

// NewInvite contains information needed to send a new Invite.
type NewInvite struct {
	Email  string `json:"email" validate:"required,email"`
	Role   string `json:"role" validate:"required,accountrole"`
	Sender string `json:"sender" validate:"omitempty"`
}

func (ni *NewInvite) Validate(validate *validator.Validate) error {
	ni.Email = core.CleanString(ni.Email, true /* lower */)
	ni.Role = core.CleanString(ni.Role, true /* lower */)
	return validate.Struct(ni)
}
