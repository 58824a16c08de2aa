package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Collection reads and writes a typed record slice through a Store. A payload
// that fails to unmarshal is logged and treated as empty; the next save
// overwrites it. Prior records are lost rather than repaired.
type Collection[T any] struct {
	store  Store
	name   string
	logger *slog.Logger
}

// NewCollection binds a record type to a named collection.
func NewCollection[T any](s Store, name string, logger *slog.Logger) *Collection[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection[T]{store: s, name: name, logger: logger}
}

// Name returns the collection key.
func (c *Collection[T]) Name() string {
	return c.name
}

// Load returns all records. A never-written collection is empty, not an error.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	data, err := c.store.Load(ctx, c.name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		c.logger.Warn("collection payload corrupt, resetting",
			slog.String("collection", c.name), slog.Any("error", err))
		return nil, nil
	}
	return items, nil
}

// Save rewrites the whole collection.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", c.name, err)
	}
	return c.store.Save(ctx, c.name, data)
}
