// Package mongodb implements the repository interfaces on top of the
// official MongoDB driver. One repository per collection; no multi-document
// transactions (services validate every precondition before writing).
package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/bookiown/backend/core"
)

// collection names
const (
	colAdmins     = "admins"
	colTeachers   = "teachers"
	colVolunteers = "volunteers"
	colStudents   = "students"
	colClasses    = "classes"
	colInvites    = "invites"
)

type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

func Open(ctx context.Context, conf *core.Config) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Database.URI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, errors.Wrap(err, "pinging mongodb")
	}
	return &DB{client: client, db: client.Database(conf.Database.Name)}, nil
}

func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// Wipe removes every document from every collection. Seeding and test
// tooling only; never called by the API.
func (db *DB) Wipe(ctx context.Context) error {
	for _, col := range []string{colAdmins, colTeachers, colVolunteers, colStudents, colClasses, colInvites} {
		if _, err := db.db.Collection(col).DeleteMany(ctx, bson.M{}); err != nil {
			return errors.Wrapf(err, "wiping %s", col)
		}
	}
	return nil
}
