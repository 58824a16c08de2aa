package invoices

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/httpx"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/orders"
	"github.com/bakehouse-crm/bakehouse-crm/internal/shared"
	"github.com/bakehouse-crm/bakehouse-crm/report"
)

// SequenceInvoices is the counter family for invoice numbers.
const SequenceInvoices = "inv"

// PaymentTerm is how long the client has to settle an invoice.
const PaymentTerm = 30 * 24 * time.Hour

type Service struct {
	repo   Repository
	orders orders.Repository
	seq    shared.Sequencer
	pdf    *report.Client
	now    func() time.Time
}

// NewService wires the invoice desk. pdfClient may be nil; rendering then
// reports unavailable.
func NewService(repo Repository, ordersRepo orders.Repository, seq shared.Sequencer, pdfClient *report.Client) *Service {
	return &Service{
		repo:   repo,
		orders: ordersRepo,
		seq:    seq,
		pdf:    pdfClient,
		now:    time.Now,
	}
}

// CreateFromOrder issues the invoice for a completed order. Items and totals
// are frozen copies; the order itself is untouched. An order is invoiced at
// most once.
func (s *Service) CreateFromOrder(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	order, err := s.orders.Get(ctx, req.SalesOrderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order.Status != orders.StatusCompleted {
		return nil, fmt.Errorf("%w: only completed orders can be invoiced", httpx.ErrValidation)
	}
	existing, err := s.repo.FindByOrder(ctx, order.ID)
	if err != nil && !errors.Is(err, httpx.ErrNotFound) {
		return nil, fmt.Errorf("check existing invoice: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: order %s already invoiced as %s", httpx.ErrDuplicate, order.OrderNumber, existing.InvoiceNumber)
	}

	now := s.now()
	n, err := s.seq.Next(ctx, SequenceInvoices, now)
	if err != nil {
		return nil, fmt.Errorf("generate invoice number: %w", err)
	}

	items := make([]orders.Item, len(order.Items))
	copy(items, order.Items)

	invoice := Invoice{
		ID:            uuid.NewString(),
		InvoiceNumber: shared.FormatDocNumber("INV", now, n),
		SalesOrderID:  order.ID,
		OrderNumber:   order.OrderNumber,
		ClientID:      order.ClientID,
		ClientName:    order.ClientName,
		ClientEmail:   order.ClientEmail,
		ClientPhone:   order.ClientPhone,
		InvoiceDate:   now,
		DueDate:       now.Add(PaymentTerm),
		Items:         items,
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		Total:         order.Total,
		Status:        StatusDraft,
		Notes:         req.Notes,
		CreatedAt:     now,
	}
	if err := s.repo.Insert(ctx, invoice); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return &invoice, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Invoice, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// SetStatus applies any of the four labels. Overdue included; it is never set
// automatically.
func (s *Service) SetStatus(ctx context.Context, id string, status string) (*Invoice, error) {
	next := Status(status)
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown invoice status %q", httpx.ErrValidation, status)
	}
	invoice, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice.Status = next
	if err := s.repo.Update(ctx, *invoice); err != nil {
		return nil, fmt.Errorf("set invoice status: %w", err)
	}
	return invoice, nil
}

// List returns invoices matching the status filter and the substring search
// on invoice number, order number or client name.
func (s *Service) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, shared.Pagination, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}

	matched := all[:0:0]
	needle := strings.ToLower(strings.TrimSpace(req.Search))
	for _, inv := range all {
		if req.Status != "" && string(inv.Status) != req.Status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(inv.InvoiceNumber), needle) &&
			!strings.Contains(strings.ToLower(inv.OrderNumber), needle) &&
			!strings.Contains(strings.ToLower(inv.ClientName), needle) {
			continue
		}
		matched = append(matched, inv)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].InvoiceDate.After(matched[j].InvoiceDate)
	})

	page := shared.NewPagination(req.Page, req.PerPage, len(matched))
	from, to := page.Window(len(matched))
	return matched[from:to], page, nil
}

// RenderPDF renders the invoice through Gotenberg. Without a configured
// renderer the caller gets ErrUnavailable.
func (s *Service) RenderPDF(ctx context.Context, id string) ([]byte, error) {
	invoice, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.pdf == nil {
		return nil, fmt.Errorf("%w: pdf rendering is not configured", httpx.ErrUnavailable)
	}
	pdf, err := s.pdf.RenderHTML(ctx, renderHTML(invoice))
	if err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return pdf, nil
}
