package school

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bookiown/backend/core"
	"github.com/bookiown/backend/core/account"
)

var (
	// errors
	ErrStudentNotFound = errors.New("student not found")
	ErrClassNotFound   = errors.New("class not found")

	errInvalidStudentID = errors.New("invalid student ID")
	errInvalidClassID   = errors.New("invalid class ID")
)

type (
	StudentRepository interface {
		CreateStudent(ctx context.Context, st Student) (Student, error)
		GetStudentByID(ctx context.Context, id primitive.ObjectID) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		// UpdateStudent replaces every mutable field of the stored document.
		UpdateStudent(ctx context.Context, st Student) (Student, error)
		DeleteStudents(ctx context.Context, ids ...primitive.ObjectID) error
	}

	ClassRepository interface {
		CreateClass(ctx context.Context, cls Class) (Class, error)
		GetClassByID(ctx context.Context, id primitive.ObjectID) (Class, error)
		QueryAllClasses(ctx context.Context) ([]Class, error)
		UpdateClass(ctx context.Context, cls Class) (Class, error)
		DeleteClass(ctx context.Context, id primitive.ObjectID) error
	}

	Service struct {
		students   StudentRepository
		classes    ClassRepository
		teachers   account.TeacherRepository
		volunteers account.VolunteerRepository
	}
)

func NewService(students StudentRepository, classes ClassRepository, teachers account.TeacherRepository, volunteers account.VolunteerRepository) *Service {
	return &Service{
		students:   students,
		classes:    classes,
		teachers:   teachers,
		volunteers: volunteers,
	}
}

// Students

func (svc *Service) CreateStudent(ctx context.Context, ns NewStudent) (Student, error) {
	st, err := studentFromNew(ns)
	if err != nil {
		return Student{}, err
	}
	return svc.students.CreateStudent(ctx, st)
}

func (svc *Service) GetStudent(ctx context.Context, id string) (Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Student{}, core.NewValidationError(errInvalidStudentID)
	}
	return svc.students.GetStudentByID(ctx, oid)
}

func (svc *Service) QueryStudents(ctx context.Context) ([]Student, error) {
	return svc.students.QueryAllStudents(ctx)
}

// UpdateStudent replaces the student document with the given payload.
func (svc *Service) UpdateStudent(ctx context.Context, id string, ns NewStudent) (Student, error) {
	orig, err := svc.GetStudent(ctx, id)
	if err != nil {
		return Student{}, err
	}
	st, err := studentFromNew(ns)
	if err != nil {
		return Student{}, err
	}
	st.ID = orig.ID
	return svc.students.UpdateStudent(ctx, st)
}

func (svc *Service) SetBookLink(ctx context.Context, id, link string) (Student, error) {
	st, err := svc.GetStudent(ctx, id)
	if err != nil {
		return Student{}, err
	}
	st.AssignedBookLink = link
	return svc.students.UpdateStudent(ctx, st)
}

func (svc *Service) SetStudentLetterLink(ctx context.Context, id, link string) (Student, error) {
	st, err := svc.GetStudent(ctx, id)
	if err != nil {
		return Student{}, err
	}
	st.StudentLetterLink = link
	return svc.students.UpdateStudent(ctx, st)
}

func (svc *Service) SetVolunteerLetterLink(ctx context.Context, id, link string) (Student, error) {
	st, err := svc.GetStudent(ctx, id)
	if err != nil {
		return Student{}, err
	}
	st.VolunteerLetterLink = link
	return svc.students.UpdateStudent(ctx, st)
}

// Classes

// CreateClass records a new class. When the payload names a teacher and that
// teacher exists, the class is attached to them; a dangling teacher reference
// is stored as-is, matching the loose back-reference upkeep of the rest of
// the system.
func (svc *Service) CreateClass(ctx context.Context, nc NewClass) (Class, error) {
	cls := Class{
		Name:              nc.Name,
		Students:          []primitive.ObjectID{},
		EstimatedDelivery: nc.EstimatedDelivery,
	}
	for _, sid := range nc.Students {
		oid, err := primitive.ObjectIDFromHex(sid)
		if err != nil {
			return Class{}, core.NewValidationError(errInvalidStudentID)
		}
		cls.Students = append(cls.Students, oid)
	}
	if nc.TeacherID != "" {
		tid, err := primitive.ObjectIDFromHex(nc.TeacherID)
		if err != nil {
			return Class{}, core.NewValidationError(errors.New("invalid teacher ID"))
		}
		cls.TeacherID = &tid
	}

	cls, err := svc.classes.CreateClass(ctx, cls)
	if err != nil {
		return Class{}, err
	}

	if cls.TeacherID != nil {
		if _, err := svc.teachers.GetTeacherByID(ctx, *cls.TeacherID); err == nil {
			if err := svc.teachers.AddClassToTeacher(ctx, *cls.TeacherID, cls.ID); err != nil {
				return Class{}, err
			}
		} else if err != account.ErrTeacherNotFound {
			return Class{}, err
		}
	}
	return cls, nil
}

func (svc *Service) GetClass(ctx context.Context, id string) (Class, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Class{}, core.NewValidationError(errInvalidClassID)
	}
	return svc.classes.GetClassByID(ctx, oid)
}

func (svc *Service) QueryClasses(ctx context.Context) ([]Class, error) {
	return svc.classes.QueryAllClasses(ctx)
}

// AddStudentToClass creates a new student and adds it to the class roster.
func (svc *Service) AddStudentToClass(ctx context.Context, classID string, ns NewStudent) (Student, error) {
	cls, err := svc.GetClass(ctx, classID)
	if err != nil {
		return Student{}, err
	}

	st, err := svc.students.CreateStudent(ctx, Student{
		FirstName:    ns.FirstName,
		LastInitial:  ns.LastInitial,
		ReadingLevel: ns.ReadingLevel,
	})
	if err != nil {
		return Student{}, err
	}

	cls.Students = append(cls.Students, st.ID)
	if _, err := svc.classes.UpdateClass(ctx, cls); err != nil {
		return Student{}, err
	}
	return st, nil
}

// RemoveStudentFromClass scrubs the student from the class roster and
// deletes the student record.
func (svc *Service) RemoveStudentFromClass(ctx context.Context, classID, studentID string) (Student, error) {
	cls, err := svc.GetClass(ctx, classID)
	if err != nil {
		return Student{}, err
	}
	st, err := svc.GetStudent(ctx, studentID)
	if err != nil {
		return Student{}, err
	}

	cls.Students = removeRef(cls.Students, st.ID)
	if _, err := svc.classes.UpdateClass(ctx, cls); err != nil {
		return Student{}, err
	}
	if err := svc.students.DeleteStudents(ctx, st.ID); err != nil {
		return Student{}, err
	}
	return st, nil
}

// RemoveClass deletes a class and everything hanging off it: its students
// are deleted, their references scrubbed from every volunteer's
// matchedStudents list, and the class detached from its teacher.
func (svc *Service) RemoveClass(ctx context.Context, classID string) (Class, error) {
	cls, err := svc.GetClass(ctx, classID)
	if err != nil {
		return Class{}, err
	}

	if len(cls.Students) > 0 {
		if err := svc.volunteers.RemoveMatchedStudents(ctx, cls.Students); err != nil {
			return Class{}, err
		}
		if err := svc.students.DeleteStudents(ctx, cls.Students...); err != nil {
			return Class{}, err
		}
	}
	if cls.TeacherID != nil {
		if err := svc.teachers.RemoveClassFromTeacher(ctx, *cls.TeacherID, cls.ID); err != nil && err != account.ErrTeacherNotFound {
			return Class{}, err
		}
	}
	if err := svc.classes.DeleteClass(ctx, cls.ID); err != nil {
		return Class{}, err
	}
	return cls, nil
}

func (svc *Service) UpdateEstimatedDelivery(ctx context.Context, classID, estimatedDelivery string) (Class, error) {
	cls, err := svc.GetClass(ctx, classID)
	if err != nil {
		return Class{}, err
	}
	cls.EstimatedDelivery = estimatedDelivery
	return svc.classes.UpdateClass(ctx, cls)
}

func studentFromNew(ns NewStudent) (Student, error) {
	st := Student{
		FirstName:           ns.FirstName,
		LastInitial:         ns.LastInitial,
		ReadingLevel:        ns.ReadingLevel,
		AssignedBookLink:    ns.AssignedBookLink,
		StudentLetterLink:   ns.StudentLetterLink,
		VolunteerLetterLink: ns.VolunteerLetterLink,
	}
	if ns.MatchedVolunteer != "" {
		vid, err := primitive.ObjectIDFromHex(ns.MatchedVolunteer)
		if err != nil {
			return Student{}, core.NewValidationError(errors.New("invalid volunteer ID"))
		}
		st.MatchedVolunteer = &vid
	}
	return st, nil
}

func removeRef(refs []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	kept := make([]primitive.ObjectID, 0, len(refs))
	for _, ref := range refs {
		if ref != id {
			kept = append(kept, ref)
		}
	}
	return kept
}
