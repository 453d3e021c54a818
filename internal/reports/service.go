package reports

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vantage-dsp/vantage/internal/advertisers"
	"github.com/vantage-dsp/vantage/internal/campaigns"
)

// AdvertiserSource supplies advertisers for aggregation.
type AdvertiserSource interface {
	List(ctx context.Context) ([]advertisers.Advertiser, error)
}

// CampaignSource supplies campaigns for aggregation.
type CampaignSource interface {
	ListCampaigns(ctx context.Context) ([]campaigns.Campaign, error)
}

// AdvertiserSummary is one advertiser's delivery rollup.
type AdvertiserSummary struct {
	AdvertiserID    string `json:"advertiser_id"`
	AdvertiserName  string `json:"advertiser_name"`
	Campaigns       int    `json:"campaigns"`
	ActiveCampaigns int    `json:"active_campaigns"`
	BudgetCents     int64  `json:"budget_cents"`
	SpendCents      int64  `json:"spend_cents"`
}

// Summary is the dashboard rollup across all advertisers.
type Summary struct {
	GeneratedAt      time.Time           `json:"generated_at"`
	TotalBudgetCents int64               `json:"total_budget_cents"`
	TotalSpendCents  int64               `json:"total_spend_cents"`
	Advertisers      []AdvertiserSummary `json:"advertisers"`
}

// Service aggregates delivery data for the reporting endpoints.
// Concurrent identical requests collapse into one computation.
type Service struct {
	advSource AdvertiserSource
	cmpSource CampaignSource
	group     singleflight.Group
}

// NewService builds Service instance.
func NewService(advSource AdvertiserSource, cmpSource CampaignSource) *Service {
	return &Service{advSource: advSource, cmpSource: cmpSource}
}

// Summary computes the cross-advertiser rollup.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	v, err, _ := s.group.Do("summary", func() (any, error) {
		return s.computeSummary(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Summary), nil
}

func (s *Service) computeSummary(ctx context.Context) (*Summary, error) {
	advs, err := s.advSource.List(ctx)
	if err != nil {
		return nil, err
	}
	cmps, err := s.cmpSource.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}

	byAdvertiser := make(map[string]*AdvertiserSummary, len(advs))
	summary := &Summary{GeneratedAt: time.Now().UTC()}
	for _, a := range advs {
		byAdvertiser[a.ID] = &AdvertiserSummary{
			AdvertiserID:   a.ID,
			AdvertiserName: a.Name,
		}
	}
	for _, c := range cmps {
		row, ok := byAdvertiser[c.AdvertiserID]
		if !ok {
			// Campaigns may reference advertisers deleted mid-session.
			continue
		}
		row.Campaigns++
		if c.Status == campaigns.StatusActive {
			row.ActiveCampaigns++
		}
		row.BudgetCents += c.BudgetCents
		row.SpendCents += c.SpendCents
		summary.TotalBudgetCents += c.BudgetCents
		summary.TotalSpendCents += c.SpendCents
	}
	for _, a := range advs {
		summary.Advertisers = append(summary.Advertisers, *byAdvertiser[a.ID])
	}
	return summary, nil
}
