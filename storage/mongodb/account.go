package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookiown/backend/core/account"
)

// Admins

type adminRepository struct {
	col *mongo.Collection
}

var _ account.AdminRepository = (*adminRepository)(nil) // interface compliance check

func NewAdminRepository(db *DB) account.AdminRepository {
	return &adminRepository{col: db.db.Collection(colAdmins)}
}

func (repo *adminRepository) CreateAdmin(ctx context.Context, adm account.Admin) (account.Admin, error) {
	adm.ID = primitive.NewObjectID()
	if _, err := repo.col.InsertOne(ctx, adm); err != nil {
		return account.Admin{}, err
	}
	return adm, nil
}

func (repo *adminRepository) GetAdminByID(ctx context.Context, id primitive.ObjectID) (account.Admin, error) {
	var adm account.Admin
	err := repo.col.FindOne(ctx, bson.M{"_id": id}).Decode(&adm)
	if err == mongo.ErrNoDocuments {
		return account.Admin{}, account.ErrAdminNotFound
	}
	return adm, err
}

func (repo *adminRepository) GetAdminByEmail(ctx context.Context, email string) (account.Admin, error) {
	var adm account.Admin
	err := repo.col.FindOne(ctx, bson.M{"email": email}).Decode(&adm)
	if err == mongo.ErrNoDocuments {
		return account.Admin{}, account.ErrAdminNotFound
	}
	return adm, err
}

func (repo *adminRepository) QueryAllAdmins(ctx context.Context) ([]account.Admin, error) {
	cur, err := repo.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	admins := make([]account.Admin, 0)
	if err := cur.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

func (repo *adminRepository) UpdateAdmin(ctx context.Context, adm account.Admin) (account.Admin, error) {
	res, err := repo.col.ReplaceOne(ctx, bson.M{"_id": adm.ID}, adm)
	if err != nil {
		return account.Admin{}, err
	}
	if res.MatchedCount == 0 {
		return account.Admin{}, account.ErrAdminNotFound
	}
	return adm, nil
}

// Teachers

type teacherRepository struct {
	col *mongo.Collection
}

var _ account.TeacherRepository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) account.TeacherRepository {
	return &teacherRepository{col: db.db.Collection(colTeachers)}
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, tch account.Teacher) (account.Teacher, error) {
	tch.ID = primitive.NewObjectID()
	if _, err := repo.col.InsertOne(ctx, tch); err != nil {
		return account.Teacher{}, err
	}
	return tch, nil
}

func (repo *teacherRepository) GetTeacherByID(ctx context.Context, id primitive.ObjectID) (account.Teacher, error) {
	var tch account.Teacher
	err := repo.col.FindOne(ctx, bson.M{"_id": id}).Decode(&tch)
	if err == mongo.ErrNoDocuments {
		return account.Teacher{}, account.ErrTeacherNotFound
	}
	return tch, err
}

func (repo *teacherRepository) GetTeacherByEmail(ctx context.Context, email string) (account.Teacher, error) {
	var tch account.Teacher
	err := repo.col.FindOne(ctx, bson.M{"email": email}).Decode(&tch)
	if err == mongo.ErrNoDocuments {
		return account.Teacher{}, account.ErrTeacherNotFound
	}
	return tch, err
}

func (repo *teacherRepository) QueryAllTeachers(ctx context.Context) ([]account.Teacher, error) {
	cur, err := repo.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	teachers := make([]account.Teacher, 0)
	if err := cur.All(ctx, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

func (repo *teacherRepository) UpdateTeacher(ctx context.Context, tch account.Teacher) (account.Teacher, error) {
	res, err := repo.col.ReplaceOne(ctx, bson.M{"_id": tch.ID}, tch)
	if err != nil {
		return account.Teacher{}, err
	}
	if res.MatchedCount == 0 {
		return account.Teacher{}, account.ErrTeacherNotFound
	}
	return tch, nil
}

func (repo *teacherRepository) AddClassToTeacher(ctx context.Context, teacherID, classID primitive.ObjectID) error {
	res, err := repo.col.UpdateOne(ctx,
		bson.M{"_id": teacherID},
		bson.M{"$push": bson.M{"classes": classID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return account.ErrTeacherNotFound
	}
	return nil
}

func (repo *teacherRepository) RemoveClassFromTeacher(ctx context.Context, teacherID, classID primitive.ObjectID) error {
	res, err := repo.col.UpdateOne(ctx,
		bson.M{"_id": teacherID},
		bson.M{"$pull": bson.M{"classes": classID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return account.ErrTeacherNotFound
	}
	return nil
}

// Volunteers

type volunteerRepository struct {
	col *mongo.Collection
}

var _ account.VolunteerRepository = (*volunteerRepository)(nil) // interface compliance check

func NewVolunteerRepository(db *DB) account.VolunteerRepository {
	return &volunteerRepository{col: db.db.Collection(colVolunteers)}
}

func (repo *volunteerRepository) CreateVolunteer(ctx context.Context, vol account.Volunteer) (account.Volunteer, error) {
	vol.ID = primitive.NewObjectID()
	if _, err := repo.col.InsertOne(ctx, vol); err != nil {
		return account.Volunteer{}, err
	}
	return vol, nil
}

func (repo *volunteerRepository) GetVolunteerByID(ctx context.Context, id primitive.ObjectID) (account.Volunteer, error) {
	var vol account.Volunteer
	err := repo.col.FindOne(ctx, bson.M{"_id": id}).Decode(&vol)
	if err == mongo.ErrNoDocuments {
		return account.Volunteer{}, account.ErrVolunteerNotFound
	}
	return vol, err
}

func (repo *volunteerRepository) GetVolunteerByEmail(ctx context.Context, email string) (account.Volunteer, error) {
	var vol account.Volunteer
	err := repo.col.FindOne(ctx, bson.M{"email": email}).Decode(&vol)
	if err == mongo.ErrNoDocuments {
		return account.Volunteer{}, account.ErrVolunteerNotFound
	}
	return vol, err
}

func (repo *volunteerRepository) QueryAllVolunteers(ctx context.Context) ([]account.Volunteer, error) {
	cur, err := repo.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	volunteers := make([]account.Volunteer, 0)
	if err := cur.All(ctx, &volunteers); err != nil {
		return nil, err
	}
	return volunteers, nil
}

func (repo *volunteerRepository) UpdateVolunteer(ctx context.Context, vol account.Volunteer) (account.Volunteer, error) {
	res, err := repo.col.ReplaceOne(ctx, bson.M{"_id": vol.ID}, vol)
	if err != nil {
		return account.Volunteer{}, err
	}
	if res.MatchedCount == 0 {
		return account.Volunteer{}, account.ErrVolunteerNotFound
	}
	return vol, nil
}

func (repo *volunteerRepository) RemoveMatchedStudents(ctx context.Context, studentIDs []primitive.ObjectID) error {
	_, err := repo.col.UpdateMany(ctx,
		bson.M{},
		bson.M{"$pull": bson.M{"matchedStudents": bson.M{"$in": studentIDs}}},
	)
	return err
}
