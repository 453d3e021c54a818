package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vantage-dsp/vantage/internal/advertisers"
	"github.com/vantage-dsp/vantage/internal/campaigns"
	_ "github.com/vantage-dsp/vantage/testing"
)

type fixedAdvertisers []advertisers.Advertiser

func (f fixedAdvertisers) List(ctx context.Context) ([]advertisers.Advertiser, error) {
	return f, nil
}

type fixedCampaigns []campaigns.Campaign

func (f fixedCampaigns) ListCampaigns(ctx context.Context) ([]campaigns.Campaign, error) {
	return f, nil
}

func TestSummaryAggregatesByAdvertiser(t *testing.T) {
	advs := fixedAdvertisers{
		{ID: "adv-1", Name: "Acme"},
		{ID: "adv-2", Name: "Borealis"},
	}
	cmps := fixedCampaigns{
		{ID: "c-1", AdvertiserID: "adv-1", Status: campaigns.StatusActive, BudgetCents: 100, SpendCents: 40},
		{ID: "c-2", AdvertiserID: "adv-1", Status: campaigns.StatusPaused, BudgetCents: 200, SpendCents: 150},
		{ID: "c-3", AdvertiserID: "adv-2", Status: campaigns.StatusActive, BudgetCents: 500, SpendCents: 10},
	}

	summary, err := NewService(advs, cmps).Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(800), summary.TotalBudgetCents)
	require.Equal(t, int64(200), summary.TotalSpendCents)
	require.Len(t, summary.Advertisers, 2)

	acme := summary.Advertisers[0]
	require.Equal(t, "adv-1", acme.AdvertiserID)
	require.Equal(t, 2, acme.Campaigns)
	require.Equal(t, 1, acme.ActiveCampaigns)
	require.Equal(t, int64(300), acme.BudgetCents)
	require.Equal(t, int64(190), acme.SpendCents)
}

func TestSummarySkipsOrphanCampaigns(t *testing.T) {
	advs := fixedAdvertisers{{ID: "adv-1", Name: "Acme"}}
	cmps := fixedCampaigns{
		{ID: "c-1", AdvertiserID: "adv-1", BudgetCents: 100},
		{ID: "c-orphan", AdvertiserID: "adv-gone", BudgetCents: 999},
	}

	summary, err := NewService(advs, cmps).Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(100), summary.TotalBudgetCents)
	require.Len(t, summary.Advertisers, 1)
}

func TestSummaryWithNoData(t *testing.T) {
	summary, err := NewService(fixedAdvertisers{}, fixedCampaigns{}).Summary(context.Background())
	require.NoError(t, err)
	require.Zero(t, summary.TotalBudgetCents)
	require.Empty(t, summary.Advertisers)
	require.False(t, summary.GeneratedAt.IsZero())
}

func TestSummaryWithSeededRepositories(t *testing.T) {
	svc := NewService(
		advertisers.NewService(advertisers.NewMemoryRepository()),
		campaigns.NewService(campaigns.NewMemoryRepository()),
	)
	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Advertisers, 3)
	require.Positive(t, summary.TotalSpendCents)
}
