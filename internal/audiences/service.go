package audiences

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/vantage-dsp/vantage/internal/platform/httpx"
)

// SegmentRequest describes a segment create or update.
type SegmentRequest struct {
	Name         string `json:"name" validate:"required,min=2"`
	Description  string `json:"description" validate:"max=500"`
	SizeEstimate int64  `json:"size_estimate" validate:"gte=0"`
}

// Service handles audience segment business logic.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService builds Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

func (s *Service) List(ctx context.Context) ([]Segment, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Segment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req SegmentRequest) (*Segment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return s.repo.Create(ctx, Segment{
		Name:         req.Name,
		Description:  req.Description,
		SizeEstimate: req.SizeEstimate,
	})
}

func (s *Service) Update(ctx context.Context, id string, req SegmentRequest) (*Segment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = req.Name
	existing.Description = req.Description
	existing.SizeEstimate = req.SizeEstimate
	return s.repo.Update(ctx, *existing)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
