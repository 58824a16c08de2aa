package orders

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/bakehouse-crm/bakehouse-crm/internal/crm/clients"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/httpx"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/store"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/handoff"
	"github.com/bakehouse-crm/bakehouse-crm/internal/shared"
)

type fixture struct {
	svc     *Service
	clients clients.Repository
	handoff *handoff.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := store.NewMemory()
	clientsRepo := clients.NewRepository(mem, slog.Default())
	handoffStore := handoff.NewStore(mem)
	svc := NewService(NewRepository(mem, slog.Default()), clientsRepo, handoffStore, shared.NewMemorySequencer())
	svc.now = func() time.Time {
		return time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	}
	return &fixture{svc: svc, clients: clientsRepo, handoff: handoffStore}
}

func (f *fixture) seedClient(t *testing.T) clients.Client {
	t.Helper()
	client := clients.Client{ID: "c-1", Name: "Amina Wanjiru", Email: "amina@example.com", Phone: "+254700000001"}
	if err := f.clients.Insert(context.Background(), client); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client
}

func TestCreateNumbersSequentially(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedClient(t)

	first, err := f.svc.Create(ctx, CreateOrderRequest{ClientID: "c-1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := f.svc.Create(ctx, CreateOrderRequest{ClientID: "c-1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if first.OrderNumber != "SO250901-001" {
		t.Fatalf("order number = %q, want SO250901-001", first.OrderNumber)
	}
	if second.OrderNumber != "SO250901-002" {
		t.Fatalf("order number = %q, want SO250901-002", second.OrderNumber)
	}
	if first.Status != StatusDraft {
		t.Fatalf("status = %q, want draft", first.Status)
	}
	if first.ClientName != "Amina Wanjiru" {
		t.Fatalf("client snapshot missing: %+v", first)
	}
}

func TestCreateRejectsUnknownClient(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), CreateOrderRequest{ClientID: "ghost"})
	if !errors.Is(err, httpx.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestItemMutationsRecomputeTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedClient(t)

	order, err := f.svc.Create(ctx, CreateOrderRequest{ClientID: "c-1", Items: []ItemRequest{
		{ProductName: "Vanilla Cake", Quantity: 2, Unit: "kg", UnitPrice: 1600},
	}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Subtotal != 3200 {
		t.Fatalf("subtotal = %v, want 3200", order.Subtotal)
	}
	if math.Abs(order.Tax-512) > 1e-9 {
		t.Fatalf("tax = %v, want 512", order.Tax)
	}
	if math.Abs(order.Total-3712) > 1e-9 {
		t.Fatalf("total = %v, want 3712", order.Total)
	}

	order, err = f.svc.AddItem(ctx, order.ID, ItemRequest{ProductName: "Croissant", Quantity: 10, Unit: "piece", UnitPrice: 120})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if order.Subtotal != 4400 {
		t.Fatalf("subtotal after add = %v, want 4400", order.Subtotal)
	}

	itemID := order.Items[1].ID
	order, err = f.svc.UpdateItem(ctx, order.ID, itemID, ItemRequest{ProductName: "Croissant", Quantity: 20, Unit: "piece", UnitPrice: 120})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if order.Items[1].TotalPrice != 2400 {
		t.Fatalf("item total = %v, want 2400", order.Items[1].TotalPrice)
	}
	if order.Subtotal != 5600 {
		t.Fatalf("subtotal after edit = %v, want 5600", order.Subtotal)
	}

	order, err = f.svc.RemoveItem(ctx, order.ID, itemID)
	if err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if order.Subtotal != 3200 {
		t.Fatalf("subtotal after remove = %v, want 3200", order.Subtotal)
	}
	if math.Abs(order.Total-3712) > 1e-9 {
		t.Fatalf("total after remove = %v, want 3712", order.Total)
	}
}

func TestSetStatusAcceptsAnyKnownState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedClient(t)
	order, err := f.svc.Create(ctx, CreateOrderRequest{ClientID: "c-1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Jump straight to delivered and back; the states do not gate each other.
	if _, err := f.svc.SetStatus(ctx, order.ID, "delivered"); err != nil {
		t.Fatalf("set delivered: %v", err)
	}
	updated, err := f.svc.SetStatus(ctx, order.ID, "draft")
	if err != nil {
		t.Fatalf("set draft: %v", err)
	}
	if updated.Status != StatusDraft {
		t.Fatalf("status = %q, want draft", updated.Status)
	}

	if _, err := f.svc.SetStatus(ctx, order.ID, "shipped"); !errors.Is(err, httpx.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateFromIntentConsumesHandoff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedClient(t)

	err := f.handoff.Put(ctx, handoff.Intent{
		LeadID:     "l-1",
		ClientID:   "c-1",
		ClientName: "Stale Name",
		Email:      "stale@example.com",
		Item:       &handoff.Item{ProductName: "Wedding Cake", Quantity: 1, Unit: "piece", UnitPrice: 25000},
		CreatedAt:  time.Now(),
	})
	if err != nil {
		t.Fatalf("put intent: %v", err)
	}

	order, err := f.svc.CreateFromIntent(ctx)
	if err != nil {
		t.Fatalf("create from intent: %v", err)
	}
	if order.LeadID == nil || *order.LeadID != "l-1" {
		t.Fatalf("lead reference missing: %+v", order)
	}
	// Registry record wins over the intent snapshot.
	if order.ClientName != "Amina Wanjiru" {
		t.Fatalf("client name = %q, want registry value", order.ClientName)
	}
	if len(order.Items) != 1 || order.Items[0].TotalPrice != 25000 {
		t.Fatalf("seeded item mismatch: %+v", order.Items)
	}

	if _, err := f.svc.CreateFromIntent(ctx); !errors.Is(err, httpx.ErrNotFound) {
		t.Fatalf("second consume should report not found, got %v", err)
	}
}

func TestListAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedClient(t)

	a, err := f.svc.Create(ctx, CreateOrderRequest{ClientID: "c-1", Items: []ItemRequest{
		{ProductName: "Vanilla Cake", Quantity: 1, Unit: "piece", UnitPrice: 1000},
	}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := f.svc.Create(ctx, CreateOrderRequest{ClientID: "c-1", Items: []ItemRequest{
		{ProductName: "Croissant", Quantity: 10, Unit: "piece", UnitPrice: 120},
	}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.SetStatus(ctx, a.ID, "completed"); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if _, err := f.svc.SetStatus(ctx, b.ID, "cancelled"); err != nil {
		t.Fatalf("set status: %v", err)
	}

	list, _, err := f.svc.List(ctx, ListOrdersRequest{Status: "completed"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != a.ID {
		t.Fatalf("status filter mismatch: %+v", list)
	}

	list, _, err = f.svc.List(ctx, ListOrdersRequest{Search: strings.ToLower(a.OrderNumber)})
	if err != nil {
		t.Fatalf("list by number: %v", err)
	}
	if len(list) != 1 || list[0].ID != a.ID {
		t.Fatalf("number search mismatch: %+v", list)
	}

	stats, err := f.svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalOrders != 2 {
		t.Fatalf("total orders = %d, want 2", stats.TotalOrders)
	}
	// The cancelled order is excluded from value and pending work.
	if math.Abs(stats.TotalValue-1160) > 1e-9 {
		t.Fatalf("total value = %v, want 1160", stats.TotalValue)
	}
	if stats.Pending != 0 {
		t.Fatalf("pending = %d, want 0", stats.Pending)
	}
}
