package leads

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/httpx"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/store"
)

// Repository persists the leads collection.
type Repository interface {
	List(ctx context.Context) ([]Lead, error)
	Get(ctx context.Context, id string) (*Lead, error)
	Insert(ctx context.Context, lead Lead) error
	Update(ctx context.Context, lead Lead) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	coll *store.Collection[Lead]
}

// NewRepository builds a store-backed Repository.
func NewRepository(s store.Store, logger *slog.Logger) Repository {
	return &repository{coll: store.NewCollection[Lead](s, store.CollectionLeads, logger)}
}

func (r *repository) List(ctx context.Context) ([]Lead, error) {
	return r.coll.Load(ctx)
}

func (r *repository) Get(ctx context.Context, id string) (*Lead, error) {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			l := all[i]
			return &l, nil
		}
	}
	return nil, fmt.Errorf("%w: lead %s", httpx.ErrNotFound, id)
}

func (r *repository) Insert(ctx context.Context, lead Lead) error {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return err
	}
	return r.coll.Save(ctx, append(all, lead))
}

func (r *repository) Update(ctx context.Context, lead Lead) error {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == lead.ID {
			all[i] = lead
			return r.coll.Save(ctx, all)
		}
	}
	return fmt.Errorf("%w: lead %s", httpx.ErrNotFound, lead.ID)
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
	return fmt.Errorf("%w: lead %s", httpx.ErrNotFound, id)
}
