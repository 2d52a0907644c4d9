package school_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bookiown/backend/core/account"
	"github.com/bookiown/backend/core/school"
	dummydb "github.com/bookiown/backend/storage/dummy"
)

type fixture struct {
	svc        *school.Service
	students   school.StudentRepository
	classes    school.ClassRepository
	teachers   account.TeacherRepository
	volunteers account.VolunteerRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := dummydb.Open()
	require.NoError(t, err)
	f := &fixture{
		students:   dummydb.NewStudentRepository(db),
		classes:    dummydb.NewClassRepository(db),
		teachers:   dummydb.NewTeacherRepository(db),
		volunteers: dummydb.NewVolunteerRepository(db),
	}
	f.svc = school.NewService(f.students, f.classes, f.teachers, f.volunteers)
	return f
}

func (f *fixture) teacher(t *testing.T) account.Teacher {
	t.Helper()
	tch, err := f.teachers.CreateTeacher(context.Background(), account.Teacher{
		FirstName:      "Tana",
		LastName:       "Mori",
		Email:          "tana@test.com",
		Role:           account.RoleTeacher,
		ApprovalStatus: account.ApprovalApproved,
		Classes:        []primitive.ObjectID{},
	})
	require.NoError(t, err)
	return tch
}

func TestStudentCRUD(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	st, err := f.svc.CreateStudent(ctx, school.NewStudent{
		FirstName: "Ana", LastInitial: "K", ReadingLevel: "B",
	})
	require.NoError(t, err)
	assert.False(t, st.ID.IsZero())

	got, err := f.svc.GetStudent(ctx, st.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, st, got)

	t.Run("update replaces the whole document", func(t *testing.T) {
		st, err := f.svc.SetBookLink(ctx, st.ID.Hex(), "https://books.test/1")
		require.NoError(t, err)
		require.Equal(t, "https://books.test/1", st.AssignedBookLink)

		// an update payload without the link wipes it
		updated, err := f.svc.UpdateStudent(ctx, st.ID.Hex(), school.NewStudent{
			FirstName: "Ana", LastInitial: "K", ReadingLevel: "C",
		})
		require.NoError(t, err)
		assert.Equal(t, st.ID, updated.ID)
		assert.Equal(t, "C", updated.ReadingLevel)
		assert.Empty(t, updated.AssignedBookLink)
	})

	t.Run("missing student", func(t *testing.T) {
		_, err := f.svc.GetStudent(ctx, primitive.NewObjectID().Hex())
		assert.Equal(t, school.ErrStudentNotFound, err)
	})

	t.Run("malformed ID", func(t *testing.T) {
		_, err := f.svc.GetStudent(ctx, "nope")
		assert.EqualError(t, err, "invalid student ID")
	})
}

func TestLetterLinks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	st, err := f.svc.CreateStudent(ctx, school.NewStudent{
		FirstName: "Ana", LastInitial: "K", ReadingLevel: "B",
	})
	require.NoError(t, err)

	st, err = f.svc.SetStudentLetterLink(ctx, st.ID.Hex(), "https://files.test/s.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://files.test/s.pdf", st.StudentLetterLink)

	st, err = f.svc.SetVolunteerLetterLink(ctx, st.ID.Hex(), "https://files.test/v.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://files.test/v.pdf", st.VolunteerLetterLink)
	assert.Equal(t, "https://files.test/s.pdf", st.StudentLetterLink)
}

func TestCreateClass(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches to existing teacher", func(t *testing.T) {
		f := newFixture(t)
		tch := f.teacher(t)

		cls, err := f.svc.CreateClass(ctx, school.NewClass{
			Name: "Room 12", TeacherID: tch.ID.Hex(), EstimatedDelivery: "June",
		})
		require.NoError(t, err)
		require.NotNil(t, cls.TeacherID)
		assert.Equal(t, tch.ID, *cls.TeacherID)

		got, err := f.teachers.GetTeacherByID(ctx, tch.ID)
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{cls.ID}, got.Classes)
	})

	t.Run("dangling teacher reference is kept", func(t *testing.T) {
		f := newFixture(t)
		ghost := primitive.NewObjectID()

		cls, err := f.svc.CreateClass(ctx, school.NewClass{
			Name: "Room 13", TeacherID: ghost.Hex(),
		})
		require.NoError(t, err)
		require.NotNil(t, cls.TeacherID)
		assert.Equal(t, ghost, *cls.TeacherID)
	})

	t.Run("no teacher", func(t *testing.T) {
		f := newFixture(t)
		cls, err := f.svc.CreateClass(ctx, school.NewClass{Name: "Room 14"})
		require.NoError(t, err)
		assert.Nil(t, cls.TeacherID)
		assert.Empty(t, cls.Students)
	})
}

func TestClassRoster(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cls, err := f.svc.CreateClass(ctx, school.NewClass{Name: "Room 12"})
	require.NoError(t, err)

	st, err := f.svc.AddStudentToClass(ctx, cls.ID.Hex(), school.NewStudent{
		FirstName: "Ana", LastInitial: "K", ReadingLevel: "B",
	})
	require.NoError(t, err)

	got, err := f.svc.GetClass(ctx, cls.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{st.ID}, got.Students)

	removed, err := f.svc.RemoveStudentFromClass(ctx, cls.ID.Hex(), st.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, st.ID, removed.ID)

	got, err = f.svc.GetClass(ctx, cls.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, got.Students)

	_, err = f.svc.GetStudent(ctx, st.ID.Hex())
	assert.Equal(t, school.ErrStudentNotFound, err)
}

func TestRemoveClass(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tch := f.teacher(t)

	cls, err := f.svc.CreateClass(ctx, school.NewClass{Name: "Room 12", TeacherID: tch.ID.Hex()})
	require.NoError(t, err)
	s1, err := f.svc.AddStudentToClass(ctx, cls.ID.Hex(), school.NewStudent{
		FirstName: "Ana", LastInitial: "K", ReadingLevel: "B",
	})
	require.NoError(t, err)
	s2, err := f.svc.AddStudentToClass(ctx, cls.ID.Hex(), school.NewStudent{
		FirstName: "Ben", LastInitial: "L", ReadingLevel: "C",
	})
	require.NoError(t, err)

	// volunteer matched to one of the students
	vol, err := f.volunteers.CreateVolunteer(ctx, account.Volunteer{
		FirstName: "Vera", LastName: "Okoye", Email: "vera@test.com",
		Role: account.RoleVolunteer, ApprovalStatus: account.ApprovalApproved,
		MatchedStudents: []primitive.ObjectID{s1.ID},
	})
	require.NoError(t, err)

	deleted, err := f.svc.RemoveClass(ctx, cls.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, cls.ID, deleted.ID)

	_, err = f.svc.GetClass(ctx, cls.ID.Hex())
	assert.Equal(t, school.ErrClassNotFound, err)
	_, err = f.svc.GetStudent(ctx, s1.ID.Hex())
	assert.Equal(t, school.ErrStudentNotFound, err)
	_, err = f.svc.GetStudent(ctx, s2.ID.Hex())
	assert.Equal(t, school.ErrStudentNotFound, err)

	gotVol, err := f.volunteers.GetVolunteerByID(ctx, vol.ID)
	require.NoError(t, err)
	assert.Empty(t, gotVol.MatchedStudents)

	gotTch, err := f.teachers.GetTeacherByID(ctx, tch.ID)
	require.NoError(t, err)
	assert.Empty(t, gotTch.Classes)
}

func TestUpdateEstimatedDelivery(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cls, err := f.svc.CreateClass(ctx, school.NewClass{Name: "Room 12"})
	require.NoError(t, err)

	cls, err = f.svc.UpdateEstimatedDelivery(ctx, cls.ID.Hex(), "October")
	require.NoError(t, err)
	assert.Equal(t, "October", cls.EstimatedDelivery)
}
