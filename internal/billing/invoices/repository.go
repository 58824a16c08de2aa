package invoices

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/httpx"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/store"
)

// Repository persists the invoices collection.
type Repository interface {
	List(ctx context.Context) ([]Invoice, error)
	Get(ctx context.Context, id string) (*Invoice, error)
	FindByOrder(ctx context.Context, salesOrderID string) (*Invoice, error)
	Insert(ctx context.Context, invoice Invoice) error
	Update(ctx context.Context, invoice Invoice) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	coll *store.Collection[Invoice]
}

// NewRepository builds a store-backed Repository.
func NewRepository(s store.Store, logger *slog.Logger) Repository {
	return &repository{coll: store.NewCollection[Invoice](s, store.CollectionInvoices, logger)}
}

func (r *repository) List(ctx context.Context) ([]Invoice, error) {
	return r.coll.Load(ctx)
}

func (r *repository) Get(ctx context.Context, id string) (*Invoice, error) {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			inv := all[i]
			return &inv, nil
		}
	}
	return nil, fmt.Errorf("%w: invoice %s", httpx.ErrNotFound, id)
}

func (r *repository) FindByOrder(ctx context.Context, salesOrderID string) (*Invoice, error) {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].SalesOrderID == salesOrderID {
			inv := all[i]
			return &inv, nil
		}
	}
	return nil, fmt.Errorf("%w: invoice for order %s", httpx.ErrNotFound, salesOrderID)
}

func (r *repository) Insert(ctx context.Context, invoice Invoice) error {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return err
	}
	return r.coll.Save(ctx, append(all, invoice))
}

func (r *repository) Update(ctx context.Context, invoice Invoice) error {
	all, err := r.coll.Load(ctx)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == invoice.ID {
			all[i] = invoice
			return r.coll.Save(ctx, all)
		}
	}
	return fmt.Errorf("%w: invoice %s", httpx.ErrNotFound, invoice.ID)
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
	return fmt.Errorf("%w: invoice %s", httpx.ErrNotFound, id)
}
