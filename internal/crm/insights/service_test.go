package insights

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/bakehouse-crm/bakehouse-crm/internal/crm/clients"
	"github.com/bakehouse-crm/bakehouse-crm/internal/crm/leads"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/store"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/handoff"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/orders"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/saleslog"
	"github.com/bakehouse-crm/bakehouse-crm/internal/shared"
)

type fixture struct {
	svc      *Service
	leads    *leads.Service
	orders   *orders.Service
	sales    *saleslog.Service
	clients  *clients.Service
	mem      *store.MemoryStore
	cache    *redis.Client
	redisSrv *miniredis.Miniredis
}

func newFixture(t *testing.T, withCache bool) *fixture {
	t.Helper()
	mem := store.NewMemory()
	logger := slog.Default()

	clientsRepo := clients.NewRepository(mem, logger)
	clientsSvc := clients.NewService(clientsRepo)
	handoffStore := handoff.NewStore(mem)
	leadsRepo := leads.NewRepository(mem, logger)
	leadsSvc := leads.NewService(leadsRepo, clientsRepo, handoffStore)
	ordersSvc := orders.NewService(orders.NewRepository(mem, logger), clientsRepo, handoffStore, shared.NewMemorySequencer())
	salesSvc := saleslog.NewService(saleslog.NewRepository(mem, logger), clientsSvc)

	f := &fixture{
		leads:   leadsSvc,
		orders:  ordersSvc,
		sales:   salesSvc,
		clients: clientsSvc,
		mem:     mem,
	}
	if withCache {
		f.redisSrv = miniredis.RunT(t)
		f.cache = redis.NewClient(&redis.Options{Addr: f.redisSrv.Addr()})
		t.Cleanup(func() { _ = f.cache.Close() })
	}
	f.svc = NewService(leadsRepo, ordersSvc, salesSvc, f.cache, logger)
	return f
}

func (f *fixture) seedLeads(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	mk := func(name, email string) *leads.Lead {
		lead, err := f.leads.Intake(ctx, leads.IntakeRequest{
			Name: name, Email: email, Message: "inquiry",
		})
		if err != nil {
			t.Fatalf("intake: %v", err)
		}
		return lead
	}

	a := mk("Amina Wanjiru", "amina@example.com")
	b := mk("Brian Otieno", "brian@example.com")
	mk("Cynthia Njeri", "cynthia@example.com")

	value := 5000.0
	if _, err := f.leads.Update(ctx, a.ID, leads.UpdateLeadRequest{EstimatedValue: &value}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := f.leads.Move(ctx, a.ID, "quoted"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, err := f.leads.Convert(ctx, b.ID); err != nil {
		t.Fatalf("convert: %v", err)
	}
}

func TestRefreshComputesFunnel(t *testing.T) {
	f := newFixture(t, false)
	f.seedLeads(t)

	snap, err := f.svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if snap.TotalLeads != 3 {
		t.Fatalf("total leads = %d, want 3", snap.TotalLeads)
	}
	if snap.LeadsByStage["quoted"] != 1 || snap.LeadsByStage["converted"] != 1 || snap.LeadsByStage["new"] != 1 {
		t.Fatalf("stage counts mismatch: %+v", snap.LeadsByStage)
	}
	if snap.ActiveLeads != 2 {
		t.Fatalf("active leads = %d, want 2", snap.ActiveLeads)
	}
	if snap.PipelineValue != 5000 {
		t.Fatalf("pipeline value = %v, want 5000", snap.PipelineValue)
	}
	// One of three leads converted.
	if snap.ConversionRate < 33.3 || snap.ConversionRate > 33.4 {
		t.Fatalf("conversion rate = %v, want ~33.33", snap.ConversionRate)
	}
}

func TestGetServesCachedSnapshot(t *testing.T) {
	f := newFixture(t, true)
	f.seedLeads(t)
	ctx := context.Background()

	first, err := f.svc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	// New activity without invalidation: the cached snapshot still serves.
	if _, err := f.leads.Intake(ctx, leads.IntakeRequest{Name: "Dan", Email: "dan@example.com", Message: "hi"}); err != nil {
		t.Fatalf("intake: %v", err)
	}
	cached, err := f.svc.Get(ctx)
	if err != nil {
		t.Fatalf("get cached: %v", err)
	}
	if cached.TotalLeads != first.TotalLeads {
		t.Fatalf("expected cached snapshot, got %d leads", cached.TotalLeads)
	}

	// After invalidation the snapshot is rebuilt.
	f.svc.Invalidate(ctx)
	fresh, err := f.svc.Get(ctx)
	if err != nil {
		t.Fatalf("get fresh: %v", err)
	}
	if fresh.TotalLeads != first.TotalLeads+1 {
		t.Fatalf("total leads = %d, want %d", fresh.TotalLeads, first.TotalLeads+1)
	}
}

func TestWatchInvalidatesOnCollectionChange(t *testing.T) {
	f := newFixture(t, true)
	f.seedLeads(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := f.svc.Get(ctx); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	go f.svc.WatchCollections(ctx, f.mem)

	// Give the watchers a moment to subscribe, then write to a watched
	// collection.
	time.Sleep(20 * time.Millisecond)
	if _, err := f.leads.Intake(ctx, leads.IntakeRequest{Name: "Eve", Email: "eve@example.com", Message: "hi"}); err != nil {
		t.Fatalf("intake: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		snap, err := f.svc.Get(ctx)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if snap.TotalLeads == 4 {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("snapshot never refreshed, total leads = %d", snap.TotalLeads)
		case <-time.After(10 * time.Millisecond):
		}
	}
}
