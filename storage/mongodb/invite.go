package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookiown/backend/core/invite"
)

type inviteRepository struct {
	col *mongo.Collection
}

var _ invite.Repository = (*inviteRepository)(nil) // interface compliance check

func NewInviteRepository(db *DB) invite.Repository {
	return &inviteRepository{col: db.db.Collection(colInvites)}
}

func (repo *inviteRepository) CreateInvite(ctx context.Context, inv invite.Invite) (invite.Invite, error) {
	inv.ID = primitive.NewObjectID()
	if _, err := repo.col.InsertOne(ctx, inv); err != nil {
		return invite.Invite{}, err
	}
	return inv, nil
}

func (repo *inviteRepository) GetInviteByID(ctx context.Context, id primitive.ObjectID) (invite.Invite, error) {
	var inv invite.Invite
	err := repo.col.FindOne(ctx, bson.M{"_id": id}).Decode(&inv)
	if err == mongo.ErrNoDocuments {
		return invite.Invite{}, invite.ErrNotFound
	}
	return inv, err
}

func (repo *inviteRepository) GetInviteByEmail(ctx context.Context, email string) (invite.Invite, error) {
	var inv invite.Invite
	err := repo.col.FindOne(ctx, bson.M{"email": email}).Decode(&inv)
	if err == mongo.ErrNoDocuments {
		return invite.Invite{}, invite.ErrNotFound
	}
	return inv, err
}

func (repo *inviteRepository) QueryAllInvites(ctx context.Context) ([]invite.Invite, error) {
	cur, err := repo.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	invites := make([]invite.Invite, 0)
	if err := cur.All(ctx, &invites); err != nil {
		return nil, err
	}
	return invites, nil
}

func (repo *inviteRepository) UpdateInvite(ctx context.Context, inv invite.Invite) (invite.Invite, error) {
	res, err := repo.col.ReplaceOne(ctx, bson.M{"_id": inv.ID}, inv)
	if err != nil {
		return invite.Invite{}, err
	}
	if res.MatchedCount == 0 {
		return invite.Invite{}, invite.ErrNotFound
	}
	return inv, nil
}

func (repo *inviteRepository) DeleteInvite(ctx context.Context, id primitive.ObjectID) error {
	_, err := repo.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
