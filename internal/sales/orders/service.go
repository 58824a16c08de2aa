package orders

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bakehouse-crm/bakehouse-crm/internal/crm/clients"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/httpx"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/handoff"
	salescalc "github.com/bakehouse-crm/bakehouse-crm/internal/sales/shared"
	"github.com/bakehouse-crm/bakehouse-crm/internal/shared"
)

// SequenceOrders is the counter family for order numbers.
const SequenceOrders = "so"

type Service struct {
	repo    Repository
	clients clients.Repository
	handoff *handoff.Store
	seq     shared.Sequencer
	now     func() time.Time
}

func NewService(repo Repository, clientsRepo clients.Repository, handoffStore *handoff.Store, seq shared.Sequencer) *Service {
	return &Service{
		repo:    repo,
		clients: clientsRepo,
		handoff: handoffStore,
		seq:     seq,
		now:     time.Now,
	}
}

// Create opens an order for an existing client, optionally with initial
// items.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*SalesOrder, error) {
	client, err := s.clients.Get(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("verify client: %w", err)
	}

	now := s.now()
	order := SalesOrder{
		ID:           uuid.NewString(),
		ClientID:     client.ID,
		ClientName:   client.Name,
		ClientEmail:  client.Email,
		ClientPhone:  client.Phone,
		Status:       StatusDraft,
		OrderDate:    now,
		DeliveryDate: req.DeliveryDate,
		Items:        []Item{},
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, ir := range req.Items {
		order.Items = append(order.Items, buildItem(ir))
	}
	recompute(&order)

	if err := s.assignNumber(ctx, &order, now); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

// CreateFromIntent consumes the pending handoff intent and opens an order
// pre-seeded from it. The intent is gone even if a later step fails.
func (s *Service) CreateFromIntent(ctx context.Context) (*SalesOrder, error) {
	intent, err := s.handoff.Consume(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := SalesOrder{
		ID:          uuid.NewString(),
		ClientID:    intent.ClientID,
		ClientName:  intent.ClientName,
		ClientEmail: intent.Email,
		ClientPhone: intent.Phone,
		LeadID:      &intent.LeadID,
		Status:      StatusDraft,
		OrderDate:   now,
		Items:       []Item{},
		Notes:       intent.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// Prefer the registry record over the intent snapshot when it still
	// exists.
	if client, err := s.clients.Get(ctx, intent.ClientID); err == nil {
		order.ClientName = client.Name
		order.ClientEmail = client.Email
		order.ClientPhone = client.Phone
	}
	if intent.Item != nil {
		order.Items = append(order.Items, buildItem(ItemRequest{
			ProductName: intent.Item.ProductName,
			Category:    intent.Item.Category,
			Quantity:    intent.Item.Quantity,
			Unit:        intent.Item.Unit,
			UnitPrice:   intent.Item.UnitPrice,
		}))
	}
	recompute(&order)

	if err := s.assignNumber(ctx, &order, now); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("create order from intent: %w", err)
	}
	return &order, nil
}

func (s *Service) Get(ctx context.Context, id string) (*SalesOrder, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, req UpdateOrderRequest) (*SalesOrder, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ClientName != nil {
		order.ClientName = *req.ClientName
	}
	if req.ClientEmail != nil {
		order.ClientEmail = *req.ClientEmail
	}
	if req.ClientPhone != nil {
		order.ClientPhone = *req.ClientPhone
	}
	if req.DeliveryDate != nil {
		order.DeliveryDate = req.DeliveryDate
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	order.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, *order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return order, nil
}

// SetStatus moves the order to any of the six states.
func (s *Service) SetStatus(ctx context.Context, id string, status string) (*SalesOrder, error) {
	next := Status(status)
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", httpx.ErrValidation, status)
	}
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Status = next
	order.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, *order); err != nil {
		return nil, fmt.Errorf("set order status: %w", err)
	}
	return order, nil
}

func (s *Service) AddItem(ctx context.Context, id string, req ItemRequest) (*SalesOrder, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = append(order.Items, buildItem(req))
	recompute(order)
	order.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, *order); err != nil {
		return nil, fmt.Errorf("add order item: %w", err)
	}
	return order, nil
}

func (s *Service) UpdateItem(ctx context.Context, id, itemID string, req ItemRequest) (*SalesOrder, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			item := buildItem(req)
			item.ID = itemID
			order.Items[i] = item
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: order item %s", httpx.ErrNotFound, itemID)
	}
	recompute(order)
	order.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, *order); err != nil {
		return nil, fmt.Errorf("update order item: %w", err)
	}
	return order, nil
}

func (s *Service) RemoveItem(ctx context.Context, id, itemID string) (*SalesOrder, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			order.Items = append(order.Items[:i], order.Items[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: order item %s", httpx.ErrNotFound, itemID)
	}
	recompute(order)
	order.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, *order); err != nil {
		return nil, fmt.Errorf("remove order item: %w", err)
	}
	return order, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// List returns orders matching the status filter and the substring search on
// order number or client name.
func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]SalesOrder, shared.Pagination, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}

	matched := all[:0:0]
	needle := strings.ToLower(strings.TrimSpace(req.Search))
	for _, o := range all {
		if req.Status != "" && string(o.Status) != req.Status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(o.OrderNumber), needle) &&
			!strings.Contains(strings.ToLower(o.ClientName), needle) {
			continue
		}
		matched = append(matched, o)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].OrderDate.After(matched[j].OrderDate)
	})

	page := shared.NewPagination(req.Page, req.PerPage, len(matched))
	from, to := page.Window(len(matched))
	return matched[from:to], page, nil
}

// Stats summarises the whole order book. Cancelled orders count toward the
// total but not toward value or pending work.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	stats := Stats{TotalOrders: len(all)}
	for _, o := range all {
		if o.Status == StatusCancelled {
			continue
		}
		stats.TotalValue += o.Total
		if o.Status.Pending() {
			stats.Pending++
		}
	}
	return &stats, nil
}

func (s *Service) assignNumber(ctx context.Context, order *SalesOrder, day time.Time) error {
	n, err := s.seq.Next(ctx, SequenceOrders, day)
	if err != nil {
		return fmt.Errorf("generate order number: %w", err)
	}
	order.OrderNumber = shared.FormatDocNumber("SO", day, n)
	return nil
}

func buildItem(req ItemRequest) Item {
	return Item{
		ID:          uuid.NewString(),
		ProductName: req.ProductName,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		TotalPrice:  salescalc.LineTotal(req.Quantity, req.UnitPrice),
		Notes:       req.Notes,
	}
}

func recompute(order *SalesOrder) {
	var subtotal float64
	for i := range order.Items {
		order.Items[i].TotalPrice = salescalc.LineTotal(order.Items[i].Quantity, order.Items[i].UnitPrice)
		subtotal += order.Items[i].TotalPrice
	}
	order.Subtotal = subtotal
	order.Tax, order.Total = salescalc.DocumentTotals(subtotal)
}
