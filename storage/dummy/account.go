package dummydb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bookiown/backend/core/account"
)

// Admins

type adminRepository struct {
	db *adminTable
}

var _ account.AdminRepository = (*adminRepository)(nil) // interface compliance check

func NewAdminRepository(db *DB) account.AdminRepository {
	return &adminRepository{db: db.admin}
}

func (repo *adminRepository) CreateAdmin(_ context.Context, adm account.Admin) (account.Admin, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	adm.ID = primitive.NewObjectID()
	repo.db.table[adm.ID] = &adm
	return adm, nil
}

func (repo *adminRepository) GetAdminByID(_ context.Context, id primitive.ObjectID) (account.Admin, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if adm, ok := repo.db.table[id]; ok {
		return *adm, nil
	}
	return account.Admin{}, account.ErrAdminNotFound
}

func (repo *adminRepository) GetAdminByEmail(_ context.Context, email string) (account.Admin, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, adm := range repo.db.table {
		if adm.Email == email {
			return *adm, nil
		}
	}
	return account.Admin{}, account.ErrAdminNotFound
}

func (repo *adminRepository) QueryAllAdmins(_ context.Context) ([]account.Admin, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	admins := make([]account.Admin, 0, len(repo.db.table))
	for _, adm := range repo.db.table {
		admins = append(admins, *adm)
	}
	sortByID(admins, func(i int) primitive.ObjectID { return admins[i].ID })
	return admins, nil
}

func (repo *adminRepository) UpdateAdmin(_ context.Context, adm account.Admin) (account.Admin, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[adm.ID]; !ok {
		return account.Admin{}, account.ErrAdminNotFound
	}
	repo.db.table[adm.ID] = &adm
	return adm, nil
}

// Teachers

type teacherRepository struct {
	db *teacherTable
}

var _ account.TeacherRepository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) account.TeacherRepository {
	return &teacherRepository{db: db.teacher}
}

func (repo *teacherRepository) CreateTeacher(_ context.Context, tch account.Teacher) (account.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	tch.ID = primitive.NewObjectID()
	repo.db.table[tch.ID] = &tch
	return tch, nil
}

func (repo *teacherRepository) GetTeacherByID(_ context.Context, id primitive.ObjectID) (account.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if tch, ok := repo.db.table[id]; ok {
		return *tch, nil
	}
	return account.Teacher{}, account.ErrTeacherNotFound
}

func (repo *teacherRepository) GetTeacherByEmail(_ context.Context, email string) (account.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, tch := range repo.db.table {
		if tch.Email == email {
			return *tch, nil
		}
	}
	return account.Teacher{}, account.ErrTeacherNotFound
}

func (repo *teacherRepository) QueryAllTeachers(_ context.Context) ([]account.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	teachers := make([]account.Teacher, 0, len(repo.db.table))
	for _, tch := range repo.db.table {
		teachers = append(teachers, *tch)
	}
	sortByID(teachers, func(i int) primitive.ObjectID { return teachers[i].ID })
	return teachers, nil
}

func (repo *teacherRepository) UpdateTeacher(_ context.Context, tch account.Teacher) (account.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[tch.ID]; !ok {
		return account.Teacher{}, account.ErrTeacherNotFound
	}
	repo.db.table[tch.ID] = &tch
	return tch, nil
}

func (repo *teacherRepository) AddClassToTeacher(_ context.Context, teacherID, classID primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	tch, ok := repo.db.table[teacherID]
	if !ok {
		return account.ErrTeacherNotFound
	}
	tch.Classes = append(tch.Classes, classID)
	return nil
}

func (repo *teacherRepository) RemoveClassFromTeacher(_ context.Context, teacherID, classID primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	tch, ok := repo.db.table[teacherID]
	if !ok {
		return account.ErrTeacherNotFound
	}
	classes := make([]primitive.ObjectID, 0, len(tch.Classes))
	for _, id := range tch.Classes {
		if id != classID {
			classes = append(classes, id)
		}
	}
	tch.Classes = classes
	return nil
}

// Volunteers

type volunteerRepository struct {
	db *volunteerTable
}

var _ account.VolunteerRepository = (*volunteerRepository)(nil) // interface compliance check

func NewVolunteerRepository(db *DB) account.VolunteerRepository {
	return &volunteerRepository{db: db.volunteer}
}

func (repo *volunteerRepository) CreateVolunteer(_ context.Context, vol account.Volunteer) (account.Volunteer, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	vol.ID = primitive.NewObjectID()
	repo.db.table[vol.ID] = &vol
	return vol, nil
}

func (repo *volunteerRepository) GetVolunteerByID(_ context.Context, id primitive.ObjectID) (account.Volunteer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if vol, ok := repo.db.table[id]; ok {
		return *vol, nil
	}
	return account.Volunteer{}, account.ErrVolunteerNotFound
}

func (repo *volunteerRepository) GetVolunteerByEmail(_ context.Context, email string) (account.Volunteer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, vol := range repo.db.table {
		if vol.Email == email {
			return *vol, nil
		}
	}
	return account.Volunteer{}, account.ErrVolunteerNotFound
}

func (repo *volunteerRepository) QueryAllVolunteers(_ context.Context) ([]account.Volunteer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	volunteers := make([]account.Volunteer, 0, len(repo.db.table))
	for _, vol := range repo.db.table {
		volunteers = append(volunteers, *vol)
	}
	sortByID(volunteers, func(i int) primitive.ObjectID { return volunteers[i].ID })
	return volunteers, nil
}

func (repo *volunteerRepository) UpdateVolunteer(_ context.Context, vol account.Volunteer) (account.Volunteer, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[vol.ID]; !ok {
		return account.Volunteer{}, account.ErrVolunteerNotFound
	}
	repo.db.table[vol.ID] = &vol
	return vol, nil
}

func (repo *volunteerRepository) RemoveMatchedStudents(_ context.Context, studentIDs []primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	drop := make(map[primitive.ObjectID]bool, len(studentIDs))
	for _, id := range studentIDs {
		drop[id] = true
	}
	for _, vol := range repo.db.table {
		kept := make([]primitive.ObjectID, 0, len(vol.MatchedStudents))
		for _, id := range vol.MatchedStudents {
			if !drop[id] {
				kept = append(kept, id)
			}
		}
		vol.MatchedStudents = kept
	}
	return nil
}
