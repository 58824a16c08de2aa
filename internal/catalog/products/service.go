package products

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bakehouse-crm/bakehouse-crm/internal/shared"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*Product, error) {
	product := Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		BasePrice:   req.BasePrice,
		Unit:        req.Unit,
		MinQuantity: req.MinQuantity,
		Description: req.Description,
		Options:     req.Options,
		Tiers:       buildTiers(req.Tiers),
		IsActive:    true,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.BasePrice != nil {
		product.BasePrice = *req.BasePrice
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.MinQuantity != nil {
		product.MinQuantity = *req.MinQuantity
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Options != nil {
		product.Options = *req.Options
	}
	if req.Tiers != nil {
		product.Tiers = buildTiers(*req.Tiers)
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, *product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// List returns products matching the category filter and the substring search
// on name or description.
func (s *Service) List(ctx context.Context, req ListProductsRequest) ([]Product, shared.Pagination, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}

	matched := all[:0:0]
	needle := strings.ToLower(strings.TrimSpace(req.Search))
	for _, p := range all {
		if req.Category != "" && !strings.EqualFold(p.Category, req.Category) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Name < matched[j].Name
	})

	page := shared.NewPagination(req.Page, req.PerPage, len(matched))
	from, to := page.Window(len(matched))
	return matched[from:to], page, nil
}

// Seed installs the default bakery catalog. It only runs against an empty
// collection.
func (s *Service) Seed(ctx context.Context) error {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := s.now()
	seeded := make([]Product, 0, len(defaultCatalog))
	for _, p := range defaultCatalog {
		p.ID = uuid.NewString()
		p.IsActive = true
		p.CreatedAt = now
		seeded = append(seeded, p)
	}
	if err := s.repo.InsertMany(ctx, seeded); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}

func buildTiers(reqs []TierRequest) []Tier {
	if len(reqs) == 0 {
		return nil
	}
	tiers := make([]Tier, 0, len(reqs))
	for _, t := range reqs {
		tiers = append(tiers, Tier{Label: t.Label, Price: t.Price})
	}
	return tiers
}
