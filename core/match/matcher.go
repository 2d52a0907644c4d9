// Package match maintains the bidirectional relation between one Volunteer
// and the Students assigned to them. Both sides keep denormalized
// references (Volunteer.matchedStudents / Student.matchedVolunteer) and
// every operation here must leave the two sides consistent.
//
// There is no multi-document transaction around the dual write: a crash
// between the volunteer write and the student writes can leave the relation
// half-recorded. Unmatch deliberately tolerates such states (see Unmatch).
package match

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bookiown/backend/core"
	"github.com/bookiown/backend/core/account"
	"github.com/bookiown/backend/core/school"
)

var (
	// ErrNotMatched is returned by Unmatch when neither side records the
	// claimed relationship.
	ErrNotMatched = errors.New("volunteer not currently matched to student")

	errInvalidVolunteerID = errors.New("invalid volunteer ID")
	errInvalidStudentID   = errors.New("invalid student ID")
	errNoStudents         = errors.New("no student IDs provided")
)

type (
	// Result is a successful match outcome: both sides after the write.
	Result struct {
		Volunteer account.Volunteer `json:"volunteer"`
		Students  []school.Student  `json:"students"`
	}

	// UnmatchResult is a successful unmatch outcome.
	UnmatchResult struct {
		Volunteer account.Volunteer `json:"volunteer"`
		Student   school.Student    `json:"student"`
	}

	Service struct {
		volunteers account.VolunteerRepository
		students   school.StudentRepository
	}
)

func NewService(volunteers account.VolunteerRepository, students school.StudentRepository) *Service {
	return &Service{volunteers: volunteers, students: students}
}

// Match assigns every given student to the volunteer. All identifiers are
// validated (volunteer first) and all documents fetched before anything is
// written, so a missing student fails the whole operation without a partial
// commit. Matching is not idempotent: matching the same pair twice appends a
// duplicate entry to the volunteer's list, and a student's previous
// volunteer is overwritten without being cleaned up on the other side.
func (svc *Service) Match(ctx context.Context, volunteerID string, studentIDs []string) (Result, error) {
	vid, err := primitive.ObjectIDFromHex(volunteerID)
	if err != nil {
		return Result{}, core.NewValidationError(errInvalidVolunteerID)
	}
	if len(studentIDs) == 0 {
		return Result{}, core.NewValidationError(errNoStudents)
	}
	sids := make([]primitive.ObjectID, 0, len(studentIDs))
	for _, s := range studentIDs {
		sid, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return Result{}, core.NewValidationError(errInvalidStudentID)
		}
		sids = append(sids, sid)
	}

	vol, err := svc.volunteers.GetVolunteerByID(ctx, vid)
	if err != nil {
		return Result{}, err
	}

	// gather every student before mutating either side
	students := make([]school.Student, 0, len(sids))
	for _, sid := range sids {
		st, err := svc.students.GetStudentByID(ctx, sid)
		if err != nil {
			return Result{}, err
		}
		students = append(students, st)
	}

	vol.MatchedStudents = append(vol.MatchedStudents, sids...)
	vol, err = svc.volunteers.UpdateVolunteer(ctx, vol)
	if err != nil {
		return Result{}, err
	}

	updated := make([]school.Student, 0, len(students))
	for _, st := range students {
		matched := vid
		st.MatchedVolunteer = &matched
		st, err = svc.students.UpdateStudent(ctx, st)
		if err != nil {
			return Result{}, err
		}
		updated = append(updated, st)
	}

	return Result{Volunteer: vol, Students: updated}, nil
}

// Unmatch removes the relation between the volunteer and the student. The
// relation counts as real when EITHER side records it; only when both sides
// disagree with the claim is the operation rejected. That asymmetry is the
// repair path for a half-written match: unmatching converges the pair back
// to fully unmatched.
func (svc *Service) Unmatch(ctx context.Context, volunteerID, studentID string) (UnmatchResult, error) {
	vid, err := primitive.ObjectIDFromHex(volunteerID)
	if err != nil {
		return UnmatchResult{}, core.NewValidationError(errInvalidVolunteerID)
	}
	sid, err := primitive.ObjectIDFromHex(studentID)
	if err != nil {
		return UnmatchResult{}, core.NewValidationError(errInvalidStudentID)
	}

	vol, err := svc.volunteers.GetVolunteerByID(ctx, vid)
	if err != nil {
		return UnmatchResult{}, err
	}
	st, err := svc.students.GetStudentByID(ctx, sid)
	if err != nil {
		return UnmatchResult{}, err
	}

	volunteerSide := containsRef(vol.MatchedStudents, sid)
	studentSide := st.MatchedVolunteer != nil && *st.MatchedVolunteer == vid
	if !volunteerSide && !studentSide {
		return UnmatchResult{}, core.NewConflictError(ErrNotMatched)
	}

	vol.MatchedStudents = filterRef(vol.MatchedStudents, sid)
	st.MatchedVolunteer = nil

	vol, err = svc.volunteers.UpdateVolunteer(ctx, vol)
	if err != nil {
		return UnmatchResult{}, err
	}
	st, err = svc.students.UpdateStudent(ctx, st)
	if err != nil {
		return UnmatchResult{}, err
	}

	return UnmatchResult{Volunteer: vol, Student: st}, nil
}

func containsRef(refs []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, ref := range refs {
		if ref == id {
			return true
		}
	}
	return false
}

// filterRef drops every occurrence of id, duplicates included.
func filterRef(refs []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	kept := make([]primitive.ObjectID, 0, len(refs))
	for _, ref := range refs {
		if ref != id {
			kept = append(kept, ref)
		}
	}
	return kept
}
