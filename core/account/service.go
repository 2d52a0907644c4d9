package account

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bookiown/backend/core"
	"github.com/bookiown/backend/core/invite"
)

var (
	// errors
	ErrAdminNotFound     = errors.New("admin not found")
	ErrTeacherNotFound   = errors.New("teacher not found")
	ErrVolunteerNotFound = errors.New("volunteer not found")
	ErrEmailExists       = errors.New("email already exists")

	errInvalidAdminID     = errors.New("invalid admin ID")
	errInvalidTeacherID   = errors.New("invalid teacher ID")
	errInvalidVolunteerID = errors.New("invalid volunteer ID")
	errInvalidApproval    = errors.New("invalid approval status")
	errInvalidRole        = errors.New("invalid account role")
)

type (
	AdminRepository interface {
		CreateAdmin(ctx context.Context, adm Admin) (Admin, error)
		GetAdminByID(ctx context.Context, id primitive.ObjectID) (Admin, error)
		GetAdminByEmail(ctx context.Context, email string) (Admin, error)
		QueryAllAdmins(ctx context.Context) ([]Admin, error)
		UpdateAdmin(ctx context.Context, adm Admin) (Admin, error)
	}

	TeacherRepository interface {
		CreateTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		GetTeacherByID(ctx context.Context, id primitive.ObjectID) (Teacher, error)
		GetTeacherByEmail(ctx context.Context, email string) (Teacher, error)
		QueryAllTeachers(ctx context.Context) ([]Teacher, error)
		UpdateTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		// AddClassToTeacher appends a class reference to the teacher's list.
		AddClassToTeacher(ctx context.Context, teacherID, classID primitive.ObjectID) error
		// RemoveClassFromTeacher drops a class reference from the teacher's list.
		RemoveClassFromTeacher(ctx context.Context, teacherID, classID primitive.ObjectID) error
	}

	VolunteerRepository interface {
		CreateVolunteer(ctx context.Context, vol Volunteer) (Volunteer, error)
		GetVolunteerByID(ctx context.Context, id primitive.ObjectID) (Volunteer, error)
		GetVolunteerByEmail(ctx context.Context, email string) (Volunteer, error)
		QueryAllVolunteers(ctx context.Context) ([]Volunteer, error)
		UpdateVolunteer(ctx context.Context, vol Volunteer) (Volunteer, error)
		// RemoveMatchedStudents scrubs the given student references from every
		// volunteer's matchedStudents list.
		RemoveMatchedStudents(ctx context.Context, studentIDs []primitive.ObjectID) error
	}

	Service struct {
		admins     AdminRepository
		teachers   TeacherRepository
		volunteers VolunteerRepository
		invites    invite.Repository
	}
)

func NewService(admins AdminRepository, teachers TeacherRepository, volunteers VolunteerRepository, invites invite.Repository) *Service {
	return &Service{
		admins:     admins,
		teachers:   teachers,
		volunteers: volunteers,
		invites:    invites,
	}
}

// Admins

func (svc *Service) CreateAdmin(ctx context.Context, na NewAccount) (Admin, error) {
	if err := svc.checkEmailUnique(ctx, RoleAdmin, na.Email); err != nil {
		return Admin{}, err
	}
	return svc.admins.CreateAdmin(ctx, Admin{
		FirstName:      na.FirstName,
		LastName:       na.LastName,
		Email:          na.Email,
		Role:           RoleAdmin,
		ApprovalStatus: na.ApprovalStatus,
	})
}

func (svc *Service) GetAdmin(ctx context.Context, id string) (Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Admin{}, core.NewValidationError(errInvalidAdminID)
	}
	return svc.admins.GetAdminByID(ctx, oid)
}

func (svc *Service) GetAdminByEmail(ctx context.Context, email string) (Admin, error) {
	return svc.admins.GetAdminByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) QueryAdmins(ctx context.Context) ([]Admin, error) {
	return svc.admins.QueryAllAdmins(ctx)
}

func (svc *Service) ChangeAdminApproval(ctx context.Context, id string, status ApprovalStatus) (Admin, error) {
	adm, err := svc.GetAdmin(ctx, id)
	if err != nil {
		return Admin{}, err
	}
	if !status.Valid() {
		return Admin{}, core.NewValidationError(errInvalidApproval)
	}
	adm.ApprovalStatus = status
	adm, err = svc.admins.UpdateAdmin(ctx, adm)
	if err != nil {
		return Admin{}, err
	}
	return adm, svc.syncInviteStatus(ctx, adm.Email, status)
}

// Teachers

func (svc *Service) CreateTeacher(ctx context.Context, na NewAccount) (Teacher, error) {
	if err := svc.checkEmailUnique(ctx, RoleTeacher, na.Email); err != nil {
		return Teacher{}, err
	}
	return svc.teachers.CreateTeacher(ctx, Teacher{
		FirstName:      na.FirstName,
		LastName:       na.LastName,
		Email:          na.Email,
		Role:           RoleTeacher,
		ApprovalStatus: na.ApprovalStatus,
		Classes:        []primitive.ObjectID{},
	})
}

func (svc *Service) GetTeacher(ctx context.Context, id string) (Teacher, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Teacher{}, core.NewValidationError(errInvalidTeacherID)
	}
	return svc.teachers.GetTeacherByID(ctx, oid)
}

func (svc *Service) GetTeacherByEmail(ctx context.Context, email string) (Teacher, error) {
	return svc.teachers.GetTeacherByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) QueryTeachers(ctx context.Context) ([]Teacher, error) {
	return svc.teachers.QueryAllTeachers(ctx)
}

func (svc *Service) ChangeTeacherApproval(ctx context.Context, id string, status ApprovalStatus) (Teacher, error) {
	tch, err := svc.GetTeacher(ctx, id)
	if err != nil {
		return Teacher{}, err
	}
	if !status.Valid() {
		return Teacher{}, core.NewValidationError(errInvalidApproval)
	}
	tch.ApprovalStatus = status
	tch, err = svc.teachers.UpdateTeacher(ctx, tch)
	if err != nil {
		return Teacher{}, err
	}
	return tch, svc.syncInviteStatus(ctx, tch.Email, status)
}

// Volunteers

func (svc *Service) CreateVolunteer(ctx context.Context, na NewAccount) (Volunteer, error) {
	if err := svc.checkEmailUnique(ctx, RoleVolunteer, na.Email); err != nil {
		return Volunteer{}, err
	}
	return svc.volunteers.CreateVolunteer(ctx, Volunteer{
		FirstName:       na.FirstName,
		LastName:        na.LastName,
		Email:           na.Email,
		Role:            RoleVolunteer,
		ApprovalStatus:  na.ApprovalStatus,
		MatchedStudents: []primitive.ObjectID{},
	})
}

func (svc *Service) GetVolunteer(ctx context.Context, id string) (Volunteer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Volunteer{}, core.NewValidationError(errInvalidVolunteerID)
	}
	return svc.volunteers.GetVolunteerByID(ctx, oid)
}

func (svc *Service) GetVolunteerByEmail(ctx context.Context, email string) (Volunteer, error) {
	return svc.volunteers.GetVolunteerByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) QueryVolunteers(ctx context.Context) ([]Volunteer, error) {
	return svc.volunteers.QueryAllVolunteers(ctx)
}

func (svc *Service) ChangeVolunteerApproval(ctx context.Context, id string, status ApprovalStatus) (Volunteer, error) {
	vol, err := svc.GetVolunteer(ctx, id)
	if err != nil {
		return Volunteer{}, err
	}
	if !status.Valid() {
		return Volunteer{}, core.NewValidationError(errInvalidApproval)
	}
	vol.ApprovalStatus = status
	vol, err = svc.volunteers.UpdateVolunteer(ctx, vol)
	if err != nil {
		return Volunteer{}, err
	}
	return vol, svc.syncInviteStatus(ctx, vol.Email, status)
}

// CreateFromInvite completes an invite: the invitee's account is created in
// the collection matching the requested role with a pending approval status,
// and the invite is marked completed and stamped with the final email.
// The returned value is an Admin, Teacher or Volunteer.
func (svc *Service) CreateFromInvite(ctx context.Context, cs CompleteSignup) (interface{}, error) {
	inviteID, err := primitive.ObjectIDFromHex(cs.InviteID)
	if err != nil {
		return nil, core.NewValidationError(errors.New("invalid invite ID"))
	}
	inv, err := svc.invites.GetInviteByID(ctx, inviteID)
	if err != nil {
		return nil, err
	}

	na := NewAccount{
		FirstName:      cs.FirstName,
		LastName:       cs.LastName,
		Email:          cs.Email,
		ApprovalStatus: ApprovalPending,
	}

	var created interface{}
	switch cs.Role {
	case RoleAdmin:
		created, err = svc.CreateAdmin(ctx, na)
	case RoleTeacher:
		created, err = svc.CreateTeacher(ctx, na)
	case RoleVolunteer:
		created, err = svc.CreateVolunteer(ctx, na)
	default:
		return nil, core.NewValidationError(errInvalidRole)
	}
	if err != nil {
		return nil, err
	}

	inv.Status = invite.StatusCompleted
	inv.Email = cs.Email
	if _, err := svc.invites.UpdateInvite(ctx, inv); err != nil {
		return nil, err
	}
	return created, nil
}

func (svc *Service) checkEmailUnique(ctx context.Context, role, email string) error {
	var err error
	switch role {
	case RoleAdmin:
		_, err = svc.admins.GetAdminByEmail(ctx, email)
	case RoleTeacher:
		_, err = svc.teachers.GetTeacherByEmail(ctx, email)
	case RoleVolunteer:
		_, err = svc.volunteers.GetVolunteerByEmail(ctx, email)
	}
	switch err {
	case nil:
		return core.NewConflictError(ErrEmailExists)
	case ErrAdminNotFound, ErrTeacherNotFound, ErrVolunteerNotFound:
		return nil
	}
	return err
}

// syncInviteStatus mirrors an approval outcome onto the invite bearing the
// same email. Seeded accounts have no invite; that is not an error. Setting
// an account back to pending leaves the invite untouched, pending is not an
// invite status.
func (svc *Service) syncInviteStatus(ctx context.Context, email string, status ApprovalStatus) error {
	if status == ApprovalPending {
		return nil
	}
	inv, err := svc.invites.GetInviteByEmail(ctx, email)
	if err == invite.ErrNotFound {
		return nil
	} else if err != nil {
		return err
	}
	inv.Status = invite.Status(status)
	_, err = svc.invites.UpdateInvite(ctx, inv)
	return err
}
