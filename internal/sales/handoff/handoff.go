package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/httpx"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/store"
)

// Intent is a one-shot handoff from a converted lead to the order desk. It is
// written by the pipeline and consumed exactly once when an order is staged
// from it.
type Intent struct {
	LeadID     string    `json:"lead_id"`
	ClientID   string    `json:"client_id"`
	ClientName string    `json:"client_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Notes      string    `json:"notes,omitempty"`
	Item       *Item     `json:"item,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Item is the optional initial line item carried by the intent.
type Item struct {
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
}

// Store persists at most one pending intent. A second Put overwrites the
// first.
type Store struct {
	s store.Store
}

func NewStore(s store.Store) *Store {
	return &Store{s: s}
}

func (h *Store) Put(ctx context.Context, intent Intent) error {
	data, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("handoff: marshal intent: %w", err)
	}
	return h.s.Save(ctx, store.CollectionHandoff, data)
}

// Consume returns the pending intent and removes it. Returns ErrNotFound when
// none is pending.
func (h *Store) Consume(ctx context.Context) (*Intent, error) {
	data, err := h.s.Load(ctx, store.CollectionHandoff)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: no pending order intent", httpx.ErrNotFound)
		}
		return nil, err
	}
	var intent Intent
	if err := json.Unmarshal(data, &intent); err != nil {
		_ = h.s.Delete(ctx, store.CollectionHandoff)
		return nil, fmt.Errorf("%w: no pending order intent", httpx.ErrNotFound)
	}
	if err := h.s.Delete(ctx, store.CollectionHandoff); err != nil {
		return nil, err
	}
	return &intent, nil
}

// Peek reports the pending intent without consuming it.
func (h *Store) Peek(ctx context.Context) (*Intent, error) {
	data, err := h.s.Load(ctx, store.CollectionHandoff)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: no pending order intent", httpx.ErrNotFound)
		}
		return nil, err
	}
	var intent Intent
	if err := json.Unmarshal(data, &intent); err != nil {
		return nil, fmt.Errorf("%w: no pending order intent", httpx.ErrNotFound)
	}
	return &intent, nil
}
