package clients

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/httpx"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/store"
)

// Repository persists the clients collection.
type Repository interface {
	List(ctx context.Context) ([]Client, error)
	Get(ctx context.Context, id string) (*Client, error)
	FindByEmail(ctx context.Context, email string) (*Client, error)
	Insert(ctx context.Context, client Client) error
	Update(ctx context.Context, client Client) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	coll *store.Collection[Client]
}

// NewRepository builds a store-backed Repository.
func NewRepository(s store.Store, logger *slog.Logger) Repository {
	return &repository{coll: store.NewCollection[Client](s, store.CollectionClients, logger)}
}

func (r *repository) List(ctx context.Context) ([]Client, error) {
	return r.coll.Load(ctx)
}

func (r *repository) Get(ctx context.Context, id string) (*Client, error) {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			c := all[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: client %s", httpx.ErrNotFound, id)
}

// FindByEmail matches case-insensitively; email is the de-duplication key
// against leads.
func (r *repository) FindByEmail(ctx context.Context, email string) (*Client, error) {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.EqualFold(all[i].Email, email) {
			c := all[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: client with email %s", httpx.ErrNotFound, email)
}

func (r *repository) Insert(ctx context.Context, client Client) error {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return err
	}
	return r.coll.Save(ctx, append(all, client))
}

func (r *repository) Update(ctx context.Context, client Client) error {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == client.ID {
			all[i] = client
			return r.coll.Save(ctx, all)
		}
	}
	return fmt.Errorf("%w: client %s", httpx.ErrNotFound, client.ID)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == id {
			return r.coll.Save(ctx, append(all[:i], all[i+1:]...))
		}
	}
	return fmt.Errorf("%w: client %s", httpx.ErrNotFound, id)
}
