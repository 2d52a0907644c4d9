package dummydb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bookiown/backend/core/invite"
)

type inviteRepository struct {
	db *inviteTable
}

var _ invite.Repository = (*inviteRepository)(nil) // interface compliance check

func NewInviteRepository(db *DB) invite.Repository {
	return &inviteRepository{db: db.invitation}
}

func (repo *inviteRepository) CreateInvite(_ context.Context, inv invite.Invite) (invite.Invite, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	inv.ID = primitive.NewObjectID()
	repo.db.table[inv.ID] = &inv
	return inv, nil
}

func (repo *inviteRepository) GetInviteByID(_ context.Context, id primitive.ObjectID) (invite.Invite, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if inv, ok := repo.db.table[id]; ok {
		return *inv, nil
	}
	return invite.Invite{}, invite.ErrNotFound
}

func (repo *inviteRepository) GetInviteByEmail(_ context.Context, email string) (invite.Invite, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, inv := range repo.db.table {
		if inv.Email == email {
			return *inv, nil
		}
	}
	return invite.Invite{}, invite.ErrNotFound
}

func (repo *inviteRepository) QueryAllInvites(_ context.Context) ([]invite.Invite, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	invites := make([]invite.Invite, 0, len(repo.db.table))
	for _, inv := range repo.db.table {
		invites = append(invites, *inv)
	}
	sortByID(invites, func(i int) primitive.ObjectID { return invites[i].ID })
	return invites, nil
}

func (repo *inviteRepository) UpdateInvite(_ context.Context, inv invite.Invite) (invite.Invite, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[inv.ID]; !ok {
		return invite.Invite{}, invite.ErrNotFound
	}
	repo.db.table[inv.ID] = &inv
	return inv, nil
}

func (repo *inviteRepository) DeleteInvite(_ context.Context, id primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	delete(repo.db.table, id)
	return nil
}
