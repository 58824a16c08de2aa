package orders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/httpx"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/store"
)

// Repository persists the sales order collection.
type Repository interface {
	List(ctx context.Context) ([]SalesOrder, error)
	Get(ctx context.Context, id string) (*SalesOrder, error)
	Insert(ctx context.Context, order SalesOrder) error
	Update(ctx context.Context, order SalesOrder) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	coll *store.Collection[SalesOrder]
}

// NewRepository builds a store-backed Repository.
func NewRepository(s store.Store, logger *slog.Logger) Repository {
	return &repository{coll: store.NewCollection[SalesOrder](s, store.CollectionSalesOrders, logger)}
}

func (r *repository) List(ctx context.Context) ([]SalesOrder, error) {
	return r.coll.Load(ctx)
}

func (r *repository) Get(ctx context.Context, id string) (*SalesOrder, error) {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			o := all[i]
			return &o, nil
		}
	}
	return nil, fmt.Errorf("%w: sales order %s", httpx.ErrNotFound, id)
}

func (r *repository) Insert(ctx context.Context, order SalesOrder) error {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return err
	}
	return r.coll.Save(ctx, append(all, order))
}

func (r *repository) Update(ctx context.Context, order SalesOrder) error {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == order.ID {
			all[i] = order
			return r.coll.Save(ctx, all)
		}
	}
	return fmt.Errorf("%w: sales order %s", httpx.ErrNotFound, order.ID)
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
	return fmt.Errorf("%w: sales order %s", httpx.ErrNotFound, id)
}
