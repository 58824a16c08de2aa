package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/store"
	"github.com/bakehouse-crm/bakehouse-crm/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Insert(ctx context.Context, user User) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	coll *store.Collection[User]
}

// NewRepository builds a store-backed Repository.
func NewRepository(s store.Store, logger *slog.Logger) Repository {
	return &repository{coll: store.NewCollection[User](s, store.CollectionUsers, logger)}
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.EqualFold(all[i].Email, email) {
			u := all[i]
			return &u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			u := all[i]
			return &u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *repository) Insert(ctx context.Context, user User) error {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return err
	}
	return r.coll.Save(ctx, append(all, user))
}

func (r *repository) Count(ctx context.Context) (int, error) {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}
