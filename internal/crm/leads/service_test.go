package leads

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/bakehouse-crm/bakehouse-crm/internal/crm/clients"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/httpx"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/store"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/handoff"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/orders"
)

type fixture struct {
	svc     *Service
	clients clients.Repository
	handoff *handoff.Store
	mem     *store.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := store.NewMemory()
	clientsRepo := clients.NewRepository(mem, slog.Default())
	handoffStore := handoff.NewStore(mem)
	svc := NewService(NewRepository(mem, slog.Default()), clientsRepo, handoffStore)
	base := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return &fixture{svc: svc, clients: clientsRepo, handoff: handoffStore, mem: mem}
}

func (f *fixture) intake(t *testing.T, name, email string) *Lead {
	t.Helper()
	lead, err := f.svc.Intake(context.Background(), IntakeRequest{
		Name:        name,
		Email:       email,
		ProductType: "Birthday Cake",
		Category:    "Cakes",
		Message:     "Two tier vanilla for Saturday",
	})
	if err != nil {
		t.Fatalf("intake: %v", err)
	}
	return lead
}

func TestIntakeDefaults(t *testing.T) {
	f := newFixture(t)
	lead := f.intake(t, "Amina Wanjiru", "amina@example.com")

	if lead.Status != StatusNew {
		t.Fatalf("status = %q, want new", lead.Status)
	}
	if lead.EstimatedValue != 0 {
		t.Fatalf("estimated_value = %v, want 0", lead.EstimatedValue)
	}
	if lead.ClientID != nil {
		t.Fatal("fresh lead should not reference a client")
	}
}

func TestMoveRejectsUnknownStage(t *testing.T) {
	f := newFixture(t)
	lead := f.intake(t, "Amina Wanjiru", "amina@example.com")

	if _, err := f.svc.Move(context.Background(), lead.ID, "baking"); !errors.Is(err, httpx.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	moved, err := f.svc.Move(context.Background(), lead.ID, "lost")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.Status != StatusLost {
		t.Fatalf("status = %q, want lost", moved.Status)
	}
}

func TestListFiltersByStageAndSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.intake(t, "Amina Wanjiru", "amina@example.com")
	f.intake(t, "Brian Otieno", "brian@example.com")
	if _, err := f.svc.Move(ctx, a.ID, "quoted"); err != nil {
		t.Fatalf("move: %v", err)
	}

	list, _, err := f.svc.List(ctx, ListLeadsRequest{Status: "quoted"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != a.ID {
		t.Fatalf("stage filter mismatch: %+v", list)
	}

	list, _, err = f.svc.List(ctx, ListLeadsRequest{Search: "BRIAN"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Email != "brian@example.com" {
		t.Fatalf("search mismatch: %+v", list)
	}
}

func TestConvertCreatesClientOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lead := f.intake(t, "Amina Wanjiru", "amina@example.com")

	converted, err := f.svc.Convert(ctx, lead.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if converted.Status != StatusConverted || converted.ClientID == nil {
		t.Fatalf("conversion incomplete: %+v", converted)
	}
	if converted.IsExistingClient {
		t.Fatal("first conversion should create a new client")
	}

	again, err := f.svc.Convert(ctx, lead.ID)
	if err != nil {
		t.Fatalf("re-convert: %v", err)
	}
	if *again.ClientID != *converted.ClientID {
		t.Fatal("re-conversion must not change the linked client")
	}

	all, err := f.clients.List(ctx)
	if err != nil {
		t.Fatalf("list clients: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("client count = %d, want 1", len(all))
	}
}

func TestConvertLinksExistingClientByEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	existing := clients.Client{ID: "c-1", Name: "Amina Wanjiru", Email: "Amina@Example.com"}
	if err := f.clients.Insert(ctx, existing); err != nil {
		t.Fatalf("seed client: %v", err)
	}

	lead := f.intake(t, "Amina Wanjiru", "amina@example.com")
	converted, err := f.svc.Convert(ctx, lead.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !converted.IsExistingClient {
		t.Fatal("conversion should link the existing client")
	}
	if *converted.ClientID != existing.ID {
		t.Fatalf("client_id = %q, want %q", *converted.ClientID, existing.ID)
	}
}

func TestStageOrderRequiresConversion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lead := f.intake(t, "Amina Wanjiru", "amina@example.com")

	if _, err := f.svc.StageOrder(ctx, lead.ID, HandoffRequest{}); !errors.Is(err, httpx.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, err := f.svc.Convert(ctx, lead.ID); err != nil {
		t.Fatalf("convert: %v", err)
	}
	intent, err := f.svc.StageOrder(ctx, lead.ID, HandoffRequest{
		Item: &HandoffItemRequest{ProductName: "Vanilla Cake", Quantity: 2, Unit: "kg", UnitPrice: 1600},
	})
	if err != nil {
		t.Fatalf("stage order: %v", err)
	}
	if intent.LeadID != lead.ID || intent.Item == nil {
		t.Fatalf("intent mismatch: %+v", intent)
	}
}

func TestDeleteRemovesLeadOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lead := f.intake(t, "Amina Wanjiru", "amina@example.com")
	other := f.intake(t, "Brian Otieno", "brian@example.com")

	converted, err := f.svc.Convert(ctx, lead.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	ordersRepo := orders.NewRepository(f.mem, slog.Default())
	order := orders.SalesOrder{
		ID:          "o-1",
		OrderNumber: "SO250901-001",
		ClientID:    *converted.ClientID,
		ClientName:  lead.Name,
		LeadID:      &lead.ID,
		Status:      orders.StatusDraft,
		OrderDate:   time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC),
	}
	if err := ordersRepo.Insert(ctx, order); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	if err := f.svc.Delete(ctx, lead.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.Get(ctx, lead.ID); !errors.Is(err, httpx.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	// The unrelated lead is untouched.
	if _, err := f.svc.Get(ctx, other.ID); err != nil {
		t.Fatalf("other lead gone: %v", err)
	}

	// The converted client and the referencing order survive; the order keeps
	// its now-dangling lead reference.
	if _, err := f.clients.Get(ctx, *converted.ClientID); err != nil {
		t.Fatalf("client removed with lead: %v", err)
	}
	after, err := ordersRepo.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("order removed with lead: %v", err)
	}
	if after.LeadID == nil || *after.LeadID != lead.ID {
		t.Fatalf("order lead reference changed: %+v", after.LeadID)
	}
}

func TestHandoffIntentConsumedOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lead := f.intake(t, "Amina Wanjiru", "amina@example.com")
	if _, err := f.svc.Convert(ctx, lead.ID); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if _, err := f.svc.StageOrder(ctx, lead.ID, HandoffRequest{}); err != nil {
		t.Fatalf("stage order: %v", err)
	}

	intent, err := f.handoff.Consume(ctx)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if intent.LeadID != lead.ID {
		t.Fatalf("lead_id = %q, want %q", intent.LeadID, lead.ID)
	}
	if _, err := f.handoff.Consume(ctx); !errors.Is(err, httpx.ErrNotFound) {
		t.Fatalf("second consume should report not found, got %v", err)
	}
}
