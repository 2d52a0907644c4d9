package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookiown/backend/core/school"
)

// Students

type studentRepository struct {
	col *mongo.Collection
}

var _ school.StudentRepository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) school.StudentRepository {
	return &studentRepository{col: db.db.Collection(colStudents)}
}

func (repo *studentRepository) CreateStudent(ctx context.Context, st school.Student) (school.Student, error) {
	st.ID = primitive.NewObjectID()
	if _, err := repo.col.InsertOne(ctx, st); err != nil {
		return school.Student{}, err
	}
	return st, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id primitive.ObjectID) (school.Student, error) {
	var st school.Student
	err := repo.col.FindOne(ctx, bson.M{"_id": id}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return school.Student{}, school.ErrStudentNotFound
	}
	return st, err
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]school.Student, error) {
	cur, err := repo.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	students := make([]school.Student, 0)
	if err := cur.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, st school.Student) (school.Student, error) {
	res, err := repo.col.ReplaceOne(ctx, bson.M{"_id": st.ID}, st)
	if err != nil {
		return school.Student{}, err
	}
	if res.MatchedCount == 0 {
		return school.Student{}, school.ErrStudentNotFound
	}
	return st, nil
}

func (repo *studentRepository) DeleteStudents(ctx context.Context, ids ...primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := repo.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

// Classes

type classRepository struct {
	col *mongo.Collection
}

var _ school.ClassRepository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *DB) school.ClassRepository {
	return &classRepository{col: db.db.Collection(colClasses)}
}

func (repo *classRepository) CreateClass(ctx context.Context, cls school.Class) (school.Class, error) {
	cls.ID = primitive.NewObjectID()
	if _, err := repo.col.InsertOne(ctx, cls); err != nil {
		return school.Class{}, err
	}
	return cls, nil
}

func (repo *classRepository) GetClassByID(ctx context.Context, id primitive.ObjectID) (school.Class, error) {
	var cls school.Class
	err := repo.col.FindOne(ctx, bson.M{"_id": id}).Decode(&cls)
	if err == mongo.ErrNoDocuments {
		return school.Class{}, school.ErrClassNotFound
	}
	return cls, err
}

func (repo *classRepository) QueryAllClasses(ctx context.Context) ([]school.Class, error) {
	cur, err := repo.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	classes := make([]school.Class, 0)
	if err := cur.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (repo *classRepository) UpdateClass(ctx context.Context, cls school.Class) (school.Class, error) {
	res, err := repo.col.ReplaceOne(ctx, bson.M{"_id": cls.ID}, cls)
	if err != nil {
		return school.Class{}, err
	}
	if res.MatchedCount == 0 {
		return school.Class{}, school.ErrClassNotFound
	}
	return cls, nil
}

func (repo *classRepository) DeleteClass(ctx context.Context, id primitive.ObjectID) error {
	_, err := repo.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
