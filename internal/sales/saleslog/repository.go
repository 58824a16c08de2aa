package saleslog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/httpx"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/store"
)

// Repository persists the sales log collection.
type Repository interface {
	List(ctx context.Context) ([]Sale, error)
	Get(ctx context.Context, id string) (*Sale, error)
	Insert(ctx context.Context, sale Sale) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	coll *store.Collection[Sale]
}

// NewRepository builds a store-backed Repository.
func NewRepository(s store.Store, logger *slog.Logger) Repository {
	return &repository{coll: store.NewCollection[Sale](s, store.CollectionSales, logger)}
}

func (r *repository) List(ctx context.Context) ([]Sale, error) {
	return r.coll.Load(ctx)
}

func (r *repository) Get(ctx context.Context, id string) (*Sale, error) {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			s := all[i]
			return &s, nil
		}
	}
	return nil, fmt.Errorf("%w: sale %s", httpx.ErrNotFound, id)
}

func (r *repository) Insert(ctx context.Context, sale Sale) error {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return err
	}
	return r.coll.Save(ctx, append(all, sale))
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
	return fmt.Errorf("%w: sale %s", httpx.ErrNotFound, id)
}
