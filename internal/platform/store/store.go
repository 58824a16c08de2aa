// Package store provides the whole-collection record store backing every
// repository. Each collection is a single JSON document that is read and
// rewritten wholesale on every mutation; writers racing on the same
// collection resolve as last-write-wins.
package store

import (
	"context"
	"errors"
)

// Collection names persisted by the application.
const (
	CollectionLeads       = "leads"
	CollectionClients     = "clients"
	CollectionSalesOrders = "sales_orders"
	CollectionSales       = "sales"
	CollectionInvoices    = "invoices"
	CollectionProducts    = "products"
	CollectionUsers       = "users"
	CollectionHandoff     = "pending_sales_order"
)

// ErrNotFound indicates the collection has never been written.
var ErrNotFound = errors.New("store: collection not found")

// Store persists named collections as opaque byte payloads.
type Store interface {
	Load(ctx context.Context, collection string) ([]byte, error)
	Save(ctx context.Context, collection string, data []byte) error
	Delete(ctx context.Context, collection string) error
}

// Notifier delivers change signals for a collection. Watch returns a channel
// that receives a tick after every Save or Delete until stop is called.
// Replaces the fixed-interval re-read the UI used to do.
type Notifier interface {
	Watch(ctx context.Context, collection string) (<-chan struct{}, func())
}
