package leads

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
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/handoff"
	"github.com/bakehouse-crm/bakehouse-crm/internal/shared"
)

type Service struct {
	repo    Repository
	clients clients.Repository
	handoff *handoff.Store
	now     func() time.Time
}

func NewService(repo Repository, clientsRepo clients.Repository, handoffStore *handoff.Store) *Service {
	return &Service{repo: repo, clients: clientsRepo, handoff: handoffStore, now: time.Now}
}

// Intake records a public inquiry as a fresh lead.
func (s *Service) Intake(ctx context.Context, req IntakeRequest) (*Lead, error) {
	now := s.now()
	lead := Lead{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ProductType: req.ProductType,
		Category:    req.Category,
		Message:     req.Message,
		Status:      StatusNew,
		CreatedAt:   now,
		LastUpdated: now,
	}
	if err := s.repo.Insert(ctx, lead); err != nil {
		return nil, fmt.Errorf("intake lead: %w", err)
	}
	return &lead, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Lead, error) {
	return s.repo.Get(ctx, id)
}

// List returns leads matching the stage filter and the substring search on
// name, email or product type.
func (s *Service) List(ctx context.Context, req ListLeadsRequest) ([]Lead, shared.Pagination, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}

	matched := all[:0:0]
	needle := strings.ToLower(strings.TrimSpace(req.Search))
	for _, l := range all {
		if req.Status != "" && string(l.Status) != req.Status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(l.Name), needle) &&
			!strings.Contains(strings.ToLower(l.Email), needle) &&
			!strings.Contains(strings.ToLower(l.ProductType), needle) {
			continue
		}
		matched = append(matched, l)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	page := shared.NewPagination(req.Page, req.PerPage, len(matched))
	from, to := page.Window(len(matched))
	return matched[from:to], page, nil
}

// Move places the lead in the given stage. Any stage can follow any other.
func (s *Service) Move(ctx context.Context, id string, stage string) (*Lead, error) {
	status := Status(stage)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown stage %q", httpx.ErrValidation, stage)
	}
	lead, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	lead.Status = status
	lead.LastUpdated = s.now()
	if err := s.repo.Update(ctx, *lead); err != nil {
		return nil, fmt.Errorf("move lead: %w", err)
	}
	return lead, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateLeadRequest) (*Lead, error) {
	lead, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		lead.Name = *req.Name
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.ProductType != nil {
		lead.ProductType = *req.ProductType
	}
	if req.Category != nil {
		lead.Category = *req.Category
	}
	if req.Message != nil {
		lead.Message = *req.Message
	}
	if req.Note != nil {
		lead.Note = *req.Note
	}
	if req.EstimatedValue != nil {
		lead.EstimatedValue = *req.EstimatedValue
	}
	if req.Status != nil {
		status := Status(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown stage %q", httpx.ErrValidation, *req.Status)
		}
		lead.Status = status
	}
	lead.LastUpdated = s.now()

	if err := s.repo.Update(ctx, *lead); err != nil {
		return nil, fmt.Errorf("update lead: %w", err)
	}
	return lead, nil
}

// Delete removes the lead only. Nothing else is cascaded.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Convert promotes the lead to a client. When a client with the same email
// already exists (case-insensitive) the lead is linked to it instead of
// creating a duplicate. Converting an already converted lead is a no-op.
func (s *Service) Convert(ctx context.Context, id string) (*Lead, error) {
	lead, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead.Status == StatusConverted && lead.ClientID != nil {
		return lead, nil
	}

	existing, err := s.clients.FindByEmail(ctx, lead.Email)
	switch {
	case err == nil:
		lead.ClientID = &existing.ID
		lead.IsExistingClient = true
	case errors.Is(err, httpx.ErrNotFound):
		now := s.now()
		client := clients.Client{
			ID:        uuid.NewString(),
			Name:      lead.Name,
			Email:     lead.Email,
			Phone:     lead.Phone,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.clients.Insert(ctx, client); err != nil {
			return nil, fmt.Errorf("convert lead: %w", err)
		}
		lead.ClientID = &client.ID
		lead.IsExistingClient = false
	default:
		return nil, err
	}

	lead.Status = StatusConverted
	lead.LastUpdated = s.now()
	if err := s.repo.Update(ctx, *lead); err != nil {
		return nil, fmt.Errorf("convert lead: %w", err)
	}
	return lead, nil
}

// StageOrder writes the pending-order intent for a converted lead. The order
// desk consumes the intent once.
func (s *Service) StageOrder(ctx context.Context, id string, req HandoffRequest) (*handoff.Intent, error) {
	lead, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead.Status != StatusConverted || lead.ClientID == nil {
		return nil, fmt.Errorf("%w: lead is not converted", httpx.ErrValidation)
	}

	intent := handoff.Intent{
		LeadID:     lead.ID,
		ClientID:   *lead.ClientID,
		ClientName: lead.Name,
		Email:      lead.Email,
		Phone:      lead.Phone,
		Notes:      req.Notes,
		CreatedAt:  s.now(),
	}
	if req.Item != nil {
		intent.Item = &handoff.Item{
			ProductName: req.Item.ProductName,
			Category:    req.Item.Category,
			Quantity:    req.Item.Quantity,
			Unit:        req.Item.Unit,
			UnitPrice:   req.Item.UnitPrice,
		}
	}
	if err := s.handoff.Put(ctx, intent); err != nil {
		return nil, fmt.Errorf("stage order: %w", err)
	}
	return &intent, nil
}
