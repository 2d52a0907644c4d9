// Package dummydb provides in-memory repository implementations used by
// tests and local development. Not suitable for production.
package dummydb

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bookiown/backend/core/account"
	"github.com/bookiown/backend/core/invite"
	"github.com/bookiown/backend/core/school"
)

type (
	DB struct {
		admin      *adminTable
		teacher    *teacherTable
		volunteer  *volunteerTable
		student    *studentTable
		class      *classTable
		invitation *inviteTable
	}

	adminTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*account.Admin
	}
	teacherTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*account.Teacher
	}
	volunteerTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*account.Volunteer
	}
	studentTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*school.Student
	}
	classTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*school.Class
	}
	inviteTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*invite.Invite
	}
)

// sortByID orders query results by ObjectID, mirroring the natural _id
// order of the real database.
func sortByID(slice interface{}, idAt func(i int) primitive.ObjectID) {
	sort.Slice(slice, func(i, j int) bool {
		a, b := idAt(i), idAt(j)
		return bytes.Compare(a[:], b[:]) < 0
	})
}

// Reset drops every stored record. Tests call this between cases.
func (db *DB) Reset() {
	db.admin.Lock()
	db.admin.table = make(map[primitive.ObjectID]*account.Admin)
	db.admin.Unlock()

	db.teacher.Lock()
	db.teacher.table = make(map[primitive.ObjectID]*account.Teacher)
	db.teacher.Unlock()

	db.volunteer.Lock()
	db.volunteer.table = make(map[primitive.ObjectID]*account.Volunteer)
	db.volunteer.Unlock()

	db.student.Lock()
	db.student.table = make(map[primitive.ObjectID]*school.Student)
	db.student.Unlock()

	db.class.Lock()
	db.class.table = make(map[primitive.ObjectID]*school.Class)
	db.class.Unlock()

	db.invitation.Lock()
	db.invitation.table = make(map[primitive.ObjectID]*invite.Invite)
	db.invitation.Unlock()
}

// Wipe implements the same contract as the real database's Wipe.
func (db *DB) Wipe(_ context.Context) error {
	db.Reset()
	return nil
}

func Open() (*DB, error) {
	db := &DB{
		admin:      &adminTable{table: make(map[primitive.ObjectID]*account.Admin)},
		teacher:    &teacherTable{table: make(map[primitive.ObjectID]*account.Teacher)},
		volunteer:  &volunteerTable{table: make(map[primitive.ObjectID]*account.Volunteer)},
		student:    &studentTable{table: make(map[primitive.ObjectID]*school.Student)},
		class:      &classTable{table: make(map[primitive.ObjectID]*school.Class)},
		invitation: &inviteTable{table: make(map[primitive.ObjectID]*invite.Invite)},
	}
	return db, nil
}
