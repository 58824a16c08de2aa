package products

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/httpx"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/store"
)

// Repository persists the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Insert(ctx context.Context, product Product) error
	InsertMany(ctx context.Context, products []Product) error
	Update(ctx context.Context, product Product) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	coll *store.Collection[Product]
}

// NewRepository builds a store-backed Repository.
func NewRepository(s store.Store, logger *slog.Logger) Repository {
	return &repository{coll: store.NewCollection[Product](s, store.CollectionProducts, logger)}
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	return r.coll.Load(ctx)
}

func (r *repository) Get(ctx context.Context, id string) (*Product, error) {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			p := all[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: product %s", httpx.ErrNotFound, id)
}

func (r *repository) Insert(ctx context.Context, product Product) error {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return err
	}
	return r.coll.Save(ctx, append(all, product))
}

func (r *repository) InsertMany(ctx context.Context, products []Product) error {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return err
	}
	return r.coll.Save(ctx, append(all, products...))
}

func (r *repository) Update(ctx context.Context, product Product) error {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == product.ID {
			all[i] = product
			return r.coll.Save(ctx, all)
		}
	}
	return fmt.Errorf("%w: product %s", httpx.ErrNotFound, product.ID)
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
	return fmt.Errorf("%w: product %s", httpx.ErrNotFound, id)
}
