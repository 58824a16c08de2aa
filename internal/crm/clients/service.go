package clients

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/httpx"
	"github.com/bakehouse-crm/bakehouse-crm/internal/shared"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, req CreateClientRequest) (*Client, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, httpx.ErrNotFound) {
		return nil, fmt.Errorf("check client email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: client email already registered", httpx.ErrDuplicate)
	}

	now := s.now()
	client := Client{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, client); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &client, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateClientRequest) (*Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		other, err := s.repo.FindByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, httpx.ErrNotFound) {
			return nil, fmt.Errorf("check client email: %w", err)
		}
		if other != nil && other.ID != id {
			return nil, fmt.Errorf("%w: client email already registered", httpx.ErrDuplicate)
		}
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	client.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, *client); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return client, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Client, error) {
	return s.repo.Get(ctx, id)
}

// Delete removes the client record only. Leads and orders that reference the
// id keep their weak reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// List returns clients matching the substring search on name, email or phone.
func (s *Service) List(ctx context.Context, req ListClientsRequest) ([]Client, shared.Pagination, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}

	matched := all[:0:0]
	needle := strings.ToLower(strings.TrimSpace(req.Search))
	for _, c := range all {
		if needle == "" ||
			strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Email), needle) ||
			strings.Contains(strings.ToLower(c.Phone), needle) {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	page := shared.NewPagination(req.Page, req.PerPage, len(matched))
	from, to := page.Window(len(matched))
	return matched[from:to], page, nil
}

// TopBySpend returns the n clients with the highest recorded spend.
func (s *Service) TopBySpend(ctx context.Context, n int) ([]Client, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].TotalSpent > all[j].TotalSpent
	})
	if n > 0 && n < len(all) {
		all = all[:n]
	}
	return all, nil
}

// RecordSale bumps the client aggregates for one recorded sale. This is the
// single writer of TotalOrders/TotalSpent/LastOrder.
func (s *Service) RecordSale(ctx context.Context, id string, amount float64, when time.Time) (*Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	client.TotalOrders++
	client.TotalSpent += amount
	client.LastOrder = &when
	client.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, *client); err != nil {
		return nil, fmt.Errorf("record sale on client: %w", err)
	}
	return client, nil
}
