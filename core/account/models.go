package account

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bookiown/backend/core"
)

// Roles
const (
	RoleAdmin     = "admin"
	RoleTeacher   = "teacher"
	RoleVolunteer = "volunteer"
)

var AllRoles = []string{RoleAdmin, RoleTeacher, RoleVolunteer}

// ApprovalStatus gates whether an account may act in the system.
// New accounts default to pending until an admin decides.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

type Admin struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName      string             `bson:"firstName" json:"firstName"`
	LastName       string             `bson:"lastName" json:"lastName"`
	Email          string             `bson:"email" json:"email"`
	Role           string             `bson:"role" json:"role"`
	ApprovalStatus ApprovalStatus     `bson:"approvalStatus" json:"approvalStatus"`
}

type Teacher struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	FirstName      string               `bson:"firstName" json:"firstName"`
	LastName       string               `bson:"lastName" json:"lastName"`
	Email          string               `bson:"email" json:"email"`
	Role           string               `bson:"role" json:"role"`
	ApprovalStatus ApprovalStatus       `bson:"approvalStatus" json:"approvalStatus"`
	Classes        []primitive.ObjectID `bson:"classes" json:"classes"`
}

type Volunteer struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName      string             `bson:"firstName" json:"firstName"`
	LastName       string             `bson:"lastName" json:"lastName"`
	Email          string             `bson:"email" json:"email"`
	Role           string             `bson:"role" json:"role"`
	ApprovalStatus ApprovalStatus     `bson:"approvalStatus" json:"approvalStatus"`
	// MatchedStudents may hold duplicate references; the matcher appends
	// without filtering and storage does not enforce uniqueness.
	MatchedStudents []primitive.ObjectID `bson:"matchedStudents" json:"matchedStudents"`
}

// NewAccount contains information needed to create an Admin, Teacher or
// Volunteer record.
type NewAccount struct {
	FirstName      string         `json:"firstName" validate:"required"`
	LastName       string         `json:"lastName" validate:"required"`
	Email          string         `json:"email" validate:"required,email"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus" validate:"required,approvalstatus"`
}

func (na *NewAccount) Validate(validate *validator.Validate) error {
	na.FirstName = core.CleanString(na.FirstName)
	na.LastName = core.CleanString(na.LastName)
	na.Email = core.CleanString(na.Email, true /* lower */)
	return validate.Struct(na)
}

// CompleteSignup is the payload with which an invitee finishes creating
// their account. The approval status is never client-chosen; it always
// starts pending.
type CompleteSignup struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required,accountrole"`
	InviteID  string `json:"inviteId" validate:"required"`
}

func (cs *CompleteSignup) Validate(validate *validator.Validate) error {
	cs.FirstName = core.CleanString(cs.FirstName)
	cs.LastName = core.CleanString(cs.LastName)
	cs.Email = core.CleanString(cs.Email, true /* lower */)
	cs.Role = core.CleanString(cs.Role, true /* lower */)
	return validate.Struct(cs)
}

// custom validation tags
var (
	approvalStatusTag  = "approvalstatus"
	approvalStatusText = "must be one of: pending, approved, rejected"

	accountRoleTag  = "accountrole"
	accountRoleText = "must be one of: admin, teacher, volunteer"
)

// InitValidators registers account-specific validation tags.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(approvalStatusTag, func(fl validator.FieldLevel) bool {
		return ApprovalStatus(fl.Field().String()).Valid()
	})
	core.RegisterCustomTranslation(validate, translator, approvalStatusTag, approvalStatusText)

	_ = validate.RegisterValidation(accountRoleTag, func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case RoleAdmin, RoleTeacher, RoleVolunteer:
			return true
		}
		return false
	})
	core.RegisterCustomTranslation(validate, translator, accountRoleTag, accountRoleText)
}
