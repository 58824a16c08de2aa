package products

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/httpx"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(NewRepository(store.NewMemory(), slog.Default()))
	svc.now = func() time.Time {
		return time.Date(2025, 9, 1, 7, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestSeedInstallsDefaultCatalogOnce(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	list, page, err := svc.List(ctx, ListProductsRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != len(defaultCatalog) {
		t.Fatalf("seeded %d products, want %d", page.Total, len(defaultCatalog))
	}
	for _, p := range list {
		if !p.IsActive {
			t.Fatalf("seeded product %q inactive", p.Name)
		}
	}

	// A second seed must not duplicate the catalog.
	if err := svc.Seed(ctx); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	_, page, err = svc.List(ctx, ListProductsRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != len(defaultCatalog) {
		t.Fatalf("re-seed grew catalog to %d", page.Total)
	}
}

func TestSeedSkipsNonEmptyCatalog(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateProductRequest{Name: "Mandazi", Unit: UnitPiece, BasePrice: 30}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, page, err := svc.List(ctx, ListProductsRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("seed ran against non-empty catalog, total = %d", page.Total)
	}
}

func TestListFiltersByCategoryAndSearch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	if err := svc.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	list, _, err := svc.List(ctx, ListProductsRequest{Category: "cupcakes"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Cupcakes" {
		t.Fatalf("category filter mismatch: %+v", list)
	}
	if list[0].MinQuantity != 6 {
		t.Fatalf("min quantity = %v, want 6", list[0].MinQuantity)
	}

	list, _, err = svc.List(ctx, ListProductsRequest{Search: "brownies"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Category != "Cookies & Brownies" {
		t.Fatalf("search mismatch: %+v", list)
	}
}

func TestUpdateTogglesActiveAndReplacesTiers(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductRequest{
		Name: "Bento Cakes", Unit: UnitPiece, BasePrice: 1200,
		Tiers: []TierRequest{{Label: "Simple", Price: 1200}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	inactive := false
	updated, err := svc.Update(ctx, created.ID, UpdateProductRequest{
		IsActive: &inactive,
		Tiers:    &[]TierRequest{{Label: "Simple", Price: 1300}, {Label: "Classic", Price: 1500}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.IsActive {
		t.Fatal("product should be inactive")
	}
	if len(updated.Tiers) != 2 || updated.Tiers[1].Price != 1500 {
		t.Fatalf("tiers not replaced: %+v", updated.Tiers)
	}
}

func TestDeleteThenGetNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductRequest{Name: "Mandazi", Unit: UnitPiece, BasePrice: 30})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, httpx.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
