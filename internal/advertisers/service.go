package advertisers

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/vantage-dsp/vantage/internal/platform/httpx"
)

// CreateRequest describes a new advertiser.
type CreateRequest struct {
	Name             string `json:"name" validate:"required,min=2"`
	ContactEmail     string `json:"contact_email" validate:"required,email"`
	DailyBudgetCents int64  `json:"daily_budget_cents" validate:"gte=0"`
}

// UpdateRequest describes edits to an advertiser.
type UpdateRequest struct {
	Name         string `json:"name" validate:"required,min=2"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	Status       Status `json:"status" validate:"required,oneof=active paused archived"`
}

// BudgetRequest adjusts the daily budget.
type BudgetRequest struct {
	DailyBudgetCents int64 `json:"daily_budget_cents" validate:"gte=0"`
}

// Service handles advertiser business logic.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService builds Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// List returns all advertisers.
func (s *Service) List(ctx context.Context) ([]Advertiser, error) {
	return s.repo.List(ctx)
}

// Get fetches one advertiser.
func (s *Service) Get(ctx context.Context, id string) (*Advertiser, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and inserts a new advertiser.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Advertiser, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return s.repo.Create(ctx, Advertiser{
		Name:             req.Name,
		ContactEmail:     req.ContactEmail,
		Status:           StatusActive,
		DailyBudgetCents: req.DailyBudgetCents,
	})
}

// Update validates and applies edits.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Advertiser, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = req.Name
	existing.ContactEmail = req.ContactEmail
	existing.Status = req.Status
	return s.repo.Update(ctx, *existing)
}

// SetBudget adjusts the advertiser's daily budget.
func (s *Service) SetBudget(ctx context.Context, id string, req BudgetRequest) (*Advertiser, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.DailyBudgetCents = req.DailyBudgetCents
	return s.repo.Update(ctx, *existing)
}

// Delete removes an advertiser.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
