package campaigns

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vantage-dsp/vantage/internal/platform/httpx"
)

// CampaignRequest describes a campaign create or update.
type CampaignRequest struct {
	AdvertiserID string    `json:"advertiser_id" validate:"required"`
	Name         string    `json:"name" validate:"required,min=2"`
	Status       Status    `json:"status" validate:"omitempty,oneof=draft active paused ended"`
	BudgetCents  int64     `json:"budget_cents" validate:"gte=0"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
}

// AdGroupRequest describes an ad group create or update.
type AdGroupRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Status   Status `json:"status" validate:"omitempty,oneof=draft active paused ended"`
	BidCents int64  `json:"bid_cents" validate:"gt=0"`
}

// CreativeRequest describes a creative create or update.
type CreativeRequest struct {
	Name       string `json:"name" validate:"required,min=2"`
	Format     string `json:"format" validate:"required,oneof=banner video native"`
	LandingURL string `json:"landing_url" validate:"required,url"`
}

// Service handles campaign business logic.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService builds Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// ListCampaigns returns all campaigns.
func (s *Service) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	return s.repo.ListCampaigns(ctx)
}

// GetCampaign fetches one campaign.
func (s *Service) GetCampaign(ctx context.Context, id string) (*Campaign, error) {
	return s.repo.GetCampaign(ctx, id)
}

// CreateCampaign validates and inserts a new campaign.
func (s *Service) CreateCampaign(ctx context.Context, req CampaignRequest) (*Campaign, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	status := req.Status
	if status == "" {
		status = StatusDraft
	}
	return s.repo.CreateCampaign(ctx, Campaign{
		AdvertiserID: req.AdvertiserID,
		Name:         req.Name,
		Status:       status,
		BudgetCents:  req.BudgetCents,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	})
}

// UpdateCampaign validates and applies edits.
func (s *Service) UpdateCampaign(ctx context.Context, id string, req CampaignRequest) (*Campaign, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	existing, err := s.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = req.Name
	if req.Status != "" {
		existing.Status = req.Status
	}
	existing.BudgetCents = req.BudgetCents
	existing.StartDate = req.StartDate
	existing.EndDate = req.EndDate
	return s.repo.UpdateCampaign(ctx, *existing)
}

// DeleteCampaign removes a campaign.
func (s *Service) DeleteCampaign(ctx context.Context, id string) error {
	return s.repo.DeleteCampaign(ctx, id)
}

// ListAdGroups returns a campaign's ad groups.
func (s *Service) ListAdGroups(ctx context.Context, campaignID string) ([]AdGroup, error) {
	if _, err := s.repo.GetCampaign(ctx, campaignID); err != nil {
		return nil, err
	}
	return s.repo.ListAdGroups(ctx, campaignID)
}

// CreateAdGroup validates and inserts a new ad group.
func (s *Service) CreateAdGroup(ctx context.Context, campaignID string, req AdGroupRequest) (*AdGroup, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	status := req.Status
	if status == "" {
		status = StatusDraft
	}
	return s.repo.CreateAdGroup(ctx, AdGroup{
		CampaignID: campaignID,
		Name:       req.Name,
		Status:     status,
		BidCents:   req.BidCents,
	})
}

// UpdateAdGroup validates and applies edits.
func (s *Service) UpdateAdGroup(ctx context.Context, id string, req AdGroupRequest) (*AdGroup, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	existing, err := s.repo.GetAdGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = req.Name
	if req.Status != "" {
		existing.Status = req.Status
	}
	existing.BidCents = req.BidCents
	return s.repo.UpdateAdGroup(ctx, *existing)
}

// DeleteAdGroup removes an ad group.
func (s *Service) DeleteAdGroup(ctx context.Context, id string) error {
	return s.repo.DeleteAdGroup(ctx, id)
}

// ListCreatives returns an ad group's creatives.
func (s *Service) ListCreatives(ctx context.Context, adGroupID string) ([]Creative, error) {
	if _, err := s.repo.GetAdGroup(ctx, adGroupID); err != nil {
		return nil, err
	}
	return s.repo.ListCreatives(ctx, adGroupID)
}

// CreateCreative validates and inserts a new creative. New creatives
// always start unapproved.
func (s *Service) CreateCreative(ctx context.Context, adGroupID string, req CreativeRequest) (*Creative, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return s.repo.CreateCreative(ctx, Creative{
		AdGroupID:  adGroupID,
		Name:       req.Name,
		Format:     req.Format,
		LandingURL: req.LandingURL,
	})
}

// UpdateCreative validates and applies edits. Editing a creative resets
// its approval.
func (s *Service) UpdateCreative(ctx context.Context, id string, req CreativeRequest) (*Creative, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	existing, err := s.repo.GetCreative(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = req.Name
	existing.Format = req.Format
	existing.LandingURL = req.LandingURL
	existing.Approved = false
	return s.repo.UpdateCreative(ctx, *existing)
}

// ApproveCreative marks a creative approved.
func (s *Service) ApproveCreative(ctx context.Context, id string) (*Creative, error) {
	existing, err := s.repo.GetCreative(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Approved = true
	return s.repo.UpdateCreative(ctx, *existing)
}

// DeleteCreative removes a creative.
func (s *Service) DeleteCreative(ctx context.Context, id string) error {
	return s.repo.DeleteCreative(ctx, id)
}
