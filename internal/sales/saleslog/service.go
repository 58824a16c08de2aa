package saleslog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bakehouse-crm/bakehouse-crm/internal/crm/clients"
	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/httpx"
	salescalc "github.com/bakehouse-crm/bakehouse-crm/internal/sales/shared"
	"github.com/bakehouse-crm/bakehouse-crm/internal/shared"
)

type Service struct {
	repo    Repository
	clients *clients.Service
	now     func() time.Time
}

func NewService(repo Repository, clientsSvc *clients.Service) *Service {
	return &Service{repo: repo, clients: clientsSvc, now: time.Now}
}

// Record writes a sale and bumps the client aggregates. This path is the only
// writer of TotalOrders/TotalSpent/LastOrder.
func (s *Service) Record(ctx context.Context, req RecordSaleRequest) (*Sale, error) {
	client, err := s.clients.Get(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, fmt.Errorf("%w: sale requires a registered client", httpx.ErrValidation)
		}
		return nil, err
	}

	date := s.now()
	if req.Date != nil {
		date = *req.Date
	}
	sale := Sale{
		ID:           uuid.NewString(),
		Date:         date,
		ClientID:     client.ID,
		ClientName:   client.Name,
		Category:     req.Category,
		ProductType:  req.ProductType,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		PricePerUnit: req.PricePerUnit,
		TotalPrice:   salescalc.LineTotal(req.Quantity, req.PricePerUnit),
		Notes:        req.Notes,
	}
	if err := s.repo.Insert(ctx, sale); err != nil {
		return nil, fmt.Errorf("record sale: %w", err)
	}
	if _, err := s.clients.RecordSale(ctx, client.ID, sale.TotalPrice, sale.Date); err != nil {
		return nil, fmt.Errorf("record sale: %w", err)
	}
	return &sale, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Sale, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// List returns sales matching the substring search on client name, product
// type or category, newest first.
func (s *Service) List(ctx context.Context, req ListSalesRequest) ([]Sale, shared.Pagination, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}

	matched := all[:0:0]
	needle := strings.ToLower(strings.TrimSpace(req.Search))
	for _, sale := range all {
		if needle != "" &&
			!strings.Contains(strings.ToLower(sale.ClientName), needle) &&
			!strings.Contains(strings.ToLower(sale.ProductType), needle) &&
			!strings.Contains(strings.ToLower(sale.Category), needle) {
			continue
		}
		matched = append(matched, sale)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})

	page := shared.NewPagination(req.Page, req.PerPage, len(matched))
	from, to := page.Window(len(matched))
	return matched[from:to], page, nil
}

// Revenue summarises all recorded sales. Today is the current calendar day in
// the sale's own location.
func (s *Service) Revenue(ctx context.Context) (*RevenueStats, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	stats := RevenueStats{TotalSales: len(all)}
	for _, sale := range all {
		stats.TotalRevenue += sale.TotalPrice
		y1, m1, d1 := sale.Date.Date()
		y2, m2, d2 := now.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			stats.TodayRevenue += sale.TotalPrice
		}
	}
	return &stats, nil
}
