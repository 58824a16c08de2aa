package invoices

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/httpx"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/store"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/orders"
	"github.com/bakehouse-crm/bakehouse-crm/internal/shared"
)

type fixture struct {
	svc    *Service
	orders orders.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := store.NewMemory()
	ordersRepo := orders.NewRepository(mem, slog.Default())
	svc := NewService(NewRepository(mem, slog.Default()), ordersRepo, shared.NewMemorySequencer(), nil)
	svc.now = func() time.Time {
		return time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	}
	return &fixture{svc: svc, orders: ordersRepo}
}

func (f *fixture) seedOrder(t *testing.T, status orders.Status) orders.SalesOrder {
	t.Helper()
	order := orders.SalesOrder{
		ID:          "o-1",
		OrderNumber: "SO250830-004",
		ClientID:    "c-1",
		ClientName:  "Amina Wanjiru",
		ClientEmail: "amina@example.com",
		Status:      status,
		OrderDate:   time.Date(2025, 8, 30, 9, 0, 0, 0, time.UTC),
		Items: []orders.Item{
			{ID: "i-1", ProductName: "Vanilla Cake", Quantity: 2, Unit: "kg", UnitPrice: 1600, TotalPrice: 3200},
		},
		Subtotal: 3200,
		Tax:      512,
		Total:    3712,
	}
	if err := f.orders.Insert(context.Background(), order); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func TestCreateFromCompletedOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.seedOrder(t, orders.StatusCompleted)

	invoice, err := f.svc.CreateFromOrder(ctx, CreateInvoiceRequest{SalesOrderID: order.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if invoice.InvoiceNumber != "INV250901-001" {
		t.Fatalf("invoice number = %q, want INV250901-001", invoice.InvoiceNumber)
	}
	if invoice.Status != StatusDraft {
		t.Fatalf("status = %q, want draft", invoice.Status)
	}
	if invoice.Subtotal != order.Subtotal || invoice.Tax != order.Tax || invoice.Total != order.Total {
		t.Fatalf("totals not copied: %+v", invoice)
	}
	if len(invoice.Items) != 1 || invoice.Items[0] != order.Items[0] {
		t.Fatalf("items not copied verbatim: %+v", invoice.Items)
	}
	wantDue := invoice.InvoiceDate.Add(30 * 24 * time.Hour)
	if !invoice.DueDate.Equal(wantDue) {
		t.Fatalf("due date = %v, want %v", invoice.DueDate, wantDue)
	}

	// The order itself is untouched.
	after, err := f.orders.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if after.Status != orders.StatusCompleted {
		t.Fatalf("order status changed to %q", after.Status)
	}
}

func TestCreateRejectsIncompleteOrder(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t, orders.StatusInProduction)

	_, err := f.svc.CreateFromOrder(context.Background(), CreateInvoiceRequest{SalesOrderID: order.ID})
	if !errors.Is(err, httpx.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsSecondInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.seedOrder(t, orders.StatusCompleted)

	if _, err := f.svc.CreateFromOrder(ctx, CreateInvoiceRequest{SalesOrderID: order.ID}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := f.svc.CreateFromOrder(ctx, CreateInvoiceRequest{SalesOrderID: order.ID})
	if !errors.Is(err, httpx.ErrDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

type failingFindRepo struct {
	Repository
	err error
}

func (r failingFindRepo) FindByOrder(ctx context.Context, salesOrderID string) (*Invoice, error) {
	return nil, r.err
}

func TestCreateFailsClosedWhenLookupErrors(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t, orders.StatusCompleted)
	storeErr := errors.New("store offline")
	f.svc.repo = failingFindRepo{Repository: f.svc.repo, err: storeErr}

	_, err := f.svc.CreateFromOrder(context.Background(), CreateInvoiceRequest{SalesOrderID: order.ID})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected lookup error to surface, got %v", err)
	}
}

func TestSetStatusIncludingOverdueLabel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.seedOrder(t, orders.StatusCompleted)
	invoice, err := f.svc.CreateFromOrder(ctx, CreateInvoiceRequest{SalesOrderID: order.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := f.svc.SetStatus(ctx, invoice.ID, "overdue")
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.Status != StatusOverdue {
		t.Fatalf("status = %q, want overdue", updated.Status)
	}

	if _, err := f.svc.SetStatus(ctx, invoice.ID, "void"); !errors.Is(err, httpx.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRenderPDFUnavailableWithoutRenderer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.seedOrder(t, orders.StatusCompleted)
	invoice, err := f.svc.CreateFromOrder(ctx, CreateInvoiceRequest{SalesOrderID: order.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.RenderPDF(ctx, invoice.ID); !errors.Is(err, httpx.ErrUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestInvoiceHTMLFormatsKES(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.seedOrder(t, orders.StatusCompleted)
	invoice, err := f.svc.CreateFromOrder(ctx, CreateInvoiceRequest{SalesOrderID: order.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	html := renderHTML(invoice)
	if !strings.Contains(html, invoice.InvoiceNumber) {
		t.Fatal("invoice number missing from document")
	}
	if !strings.Contains(html, "KES 3,712.00") {
		t.Fatalf("formatted total missing from document:\n%s", html)
	}
}

func TestFormatKES(t *testing.T) {
	if got := FormatKES(1234567.5); got != "KES 1,234,567.50" {
		t.Fatalf("FormatKES = %q", got)
	}
	if got := FormatKES(0); got != "KES 0.00" {
		t.Fatalf("FormatKES zero = %q", got)
	}
}
