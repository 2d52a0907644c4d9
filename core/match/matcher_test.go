package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bookiown/backend/core"
	"github.com/bookiown/backend/core/account"
	"github.com/bookiown/backend/core/school"
	dummydb "github.com/bookiown/backend/storage/dummy"
)

type matchFixture struct {
	svc        *Service
	volunteers account.VolunteerRepository
	students   school.StudentRepository
}

func newFixture(t *testing.T) *matchFixture {
	t.Helper()
	db, err := dummydb.Open()
	require.NoError(t, err)
	vols := dummydb.NewVolunteerRepository(db)
	studs := dummydb.NewStudentRepository(db)
	return &matchFixture{
		svc:        NewService(vols, studs),
		volunteers: vols,
		students:   studs,
	}
}

func (f *matchFixture) volunteer(t *testing.T) account.Volunteer {
	t.Helper()
	vol, err := f.volunteers.CreateVolunteer(context.Background(), account.Volunteer{
		FirstName:       "Vera",
		LastName:        "Okoye",
		Email:           "vera@test.com",
		Role:            account.RoleVolunteer,
		ApprovalStatus:  account.ApprovalApproved,
		MatchedStudents: []primitive.ObjectID{},
	})
	require.NoError(t, err)
	return vol
}

func (f *matchFixture) student(t *testing.T, name string) school.Student {
	t.Helper()
	st, err := f.students.CreateStudent(context.Background(), school.Student{
		FirstName:    name,
		LastInitial:  "K",
		ReadingLevel: "B",
	})
	require.NoError(t, err)
	return st
}

func TestMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("records relation on both sides", func(t *testing.T) {
		f := newFixture(t)
		vol := f.volunteer(t)
		s1 := f.student(t, "Ana")
		s2 := f.student(t, "Ben")

		res, err := f.svc.Match(ctx, vol.ID.Hex(), []string{s1.ID.Hex(), s2.ID.Hex()})
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{s1.ID, s2.ID}, res.Volunteer.MatchedStudents)
		require.Len(t, res.Students, 2)
		for _, st := range res.Students {
			require.NotNil(t, st.MatchedVolunteer)
			assert.Equal(t, vol.ID, *st.MatchedVolunteer)
		}

		got, err := f.volunteers.GetVolunteerByID(ctx, vol.ID)
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{s1.ID, s2.ID}, got.MatchedStudents)
	})

	t.Run("matching twice appends a duplicate", func(t *testing.T) {
		f := newFixture(t)
		vol := f.volunteer(t)
		st := f.student(t, "Ana")

		_, err := f.svc.Match(ctx, vol.ID.Hex(), []string{st.ID.Hex()})
		require.NoError(t, err)
		_, err = f.svc.Match(ctx, vol.ID.Hex(), []string{st.ID.Hex()})
		require.NoError(t, err)

		got, err := f.volunteers.GetVolunteerByID(ctx, vol.ID)
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{st.ID, st.ID}, got.MatchedStudents)
	})

	t.Run("missing student leaves no partial write", func(t *testing.T) {
		f := newFixture(t)
		vol := f.volunteer(t)
		s1 := f.student(t, "Ana")
		missing := primitive.NewObjectID()

		_, err := f.svc.Match(ctx, vol.ID.Hex(), []string{s1.ID.Hex(), missing.Hex()})
		assert.Equal(t, school.ErrStudentNotFound, err)

		got, err := f.volunteers.GetVolunteerByID(ctx, vol.ID)
		require.NoError(t, err)
		assert.Empty(t, got.MatchedStudents)
		gotSt, err := f.students.GetStudentByID(ctx, s1.ID)
		require.NoError(t, err)
		assert.Nil(t, gotSt.MatchedVolunteer)
	})

	t.Run("missing volunteer", func(t *testing.T) {
		f := newFixture(t)
		st := f.student(t, "Ana")
		_, err := f.svc.Match(ctx, primitive.NewObjectID().Hex(), []string{st.ID.Hex()})
		assert.Equal(t, account.ErrVolunteerNotFound, err)
	})

	t.Run("malformed volunteer ID rejected before student IDs", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Match(ctx, "nope", []string{"also-nope"})
		var verr *core.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.EqualError(t, err, "invalid volunteer ID")
	})

	t.Run("malformed student ID", func(t *testing.T) {
		f := newFixture(t)
		vol := f.volunteer(t)
		_, err := f.svc.Match(ctx, vol.ID.Hex(), []string{"nope"})
		var verr *core.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.EqualError(t, err, "invalid student ID")
	})

	t.Run("empty student list", func(t *testing.T) {
		f := newFixture(t)
		vol := f.volunteer(t)
		_, err := f.svc.Match(ctx, vol.ID.Hex(), nil)
		var verr *core.ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestUnmatch(t *testing.T) {
	ctx := context.Background()

	t.Run("clears both sides", func(t *testing.T) {
		f := newFixture(t)
		vol := f.volunteer(t)
		st := f.student(t, "Ana")
		_, err := f.svc.Match(ctx, vol.ID.Hex(), []string{st.ID.Hex()})
		require.NoError(t, err)

		res, err := f.svc.Unmatch(ctx, vol.ID.Hex(), st.ID.Hex())
		require.NoError(t, err)
		assert.Empty(t, res.Volunteer.MatchedStudents)
		assert.Nil(t, res.Student.MatchedVolunteer)

		got, err := f.volunteers.GetVolunteerByID(ctx, vol.ID)
		require.NoError(t, err)
		assert.Empty(t, got.MatchedStudents)
	})

	t.Run("removes duplicate entries in one call", func(t *testing.T) {
		f := newFixture(t)
		vol := f.volunteer(t)
		st := f.student(t, "Ana")
		_, err := f.svc.Match(ctx, vol.ID.Hex(), []string{st.ID.Hex(), st.ID.Hex()})
		require.NoError(t, err)

		res, err := f.svc.Unmatch(ctx, vol.ID.Hex(), st.ID.Hex())
		require.NoError(t, err)
		assert.Empty(t, res.Volunteer.MatchedStudents)
	})

	t.Run("tolerates relation recorded only on volunteer side", func(t *testing.T) {
		f := newFixture(t)
		vol := f.volunteer(t)
		st := f.student(t, "Ana")
		vol.MatchedStudents = append(vol.MatchedStudents, st.ID)
		_, err := f.volunteers.UpdateVolunteer(ctx, vol)
		require.NoError(t, err)

		res, err := f.svc.Unmatch(ctx, vol.ID.Hex(), st.ID.Hex())
		require.NoError(t, err)
		assert.Empty(t, res.Volunteer.MatchedStudents)
		assert.Nil(t, res.Student.MatchedVolunteer)
	})

	t.Run("tolerates relation recorded only on student side", func(t *testing.T) {
		f := newFixture(t)
		vol := f.volunteer(t)
		st := f.student(t, "Ana")
		matched := vol.ID
		st.MatchedVolunteer = &matched
		_, err := f.students.UpdateStudent(ctx, st)
		require.NoError(t, err)

		res, err := f.svc.Unmatch(ctx, vol.ID.Hex(), st.ID.Hex())
		require.NoError(t, err)
		assert.Nil(t, res.Student.MatchedVolunteer)
	})

	t.Run("rejects when neither side records it", func(t *testing.T) {
		f := newFixture(t)
		vol := f.volunteer(t)
		st := f.student(t, "Ana")

		_, err := f.svc.Unmatch(ctx, vol.ID.Hex(), st.ID.Hex())
		var cerr *core.ConflictError
		require.ErrorAs(t, err, &cerr)
		assert.EqualError(t, err, "volunteer not currently matched to student")
	})

	t.Run("student matched to another volunteer", func(t *testing.T) {
		f := newFixture(t)
		vol := f.volunteer(t)
		st := f.student(t, "Ana")
		other := primitive.NewObjectID()
		st.MatchedVolunteer = &other
		_, err := f.students.UpdateStudent(ctx, st)
		require.NoError(t, err)

		_, err = f.svc.Unmatch(ctx, vol.ID.Hex(), st.ID.Hex())
		assert.EqualError(t, err, "volunteer not currently matched to student")
	})

	t.Run("missing student", func(t *testing.T) {
		f := newFixture(t)
		vol := f.volunteer(t)
		_, err := f.svc.Unmatch(ctx, vol.ID.Hex(), primitive.NewObjectID().Hex())
		assert.Equal(t, school.ErrStudentNotFound, err)
	})
}
