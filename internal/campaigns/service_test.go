package campaigns

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vantage-dsp/vantage/internal/platform/httpx"
	_ "github.com/vantage-dsp/vantage/testing"
)

func validCampaignRequest() CampaignRequest {
	return CampaignRequest{
		AdvertiserID: "adv-acme",
		Name:         "Summer Teaser",
		BudgetCents:  100_000,
		StartDate:    time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateCampaignDefaultsToDraft(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	c, err := svc.CreateCampaign(context.Background(), validCampaignRequest())
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	require.Equal(t, StatusDraft, c.Status)
	require.Zero(t, c.SpendCents)
}

func TestCreateCampaignValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	req := validCampaignRequest()
	req.EndDate = req.StartDate.AddDate(0, 0, -1)
	_, err := svc.CreateCampaign(context.Background(), req)
	require.ErrorIs(t, err, httpx.ErrValidation)

	req = validCampaignRequest()
	req.AdvertiserID = ""
	_, err = svc.CreateCampaign(context.Background(), req)
	require.ErrorIs(t, err, httpx.ErrValidation)

	req = validCampaignRequest()
	req.Status = "launched"
	_, err = svc.CreateCampaign(context.Background(), req)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestUpdateCampaignKeepsStatusWhenOmitted(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	req := validCampaignRequest()
	req.Name = "Spring Hiking Push v2"
	c, err := svc.UpdateCampaign(context.Background(), "cmp-spring", req)
	require.NoError(t, err)
	require.Equal(t, "Spring Hiking Push v2", c.Name)
	require.Equal(t, StatusActive, c.Status)

	req.Status = StatusPaused
	c, err = svc.UpdateCampaign(context.Background(), "cmp-spring", req)
	require.NoError(t, err)
	require.Equal(t, StatusPaused, c.Status)
}

func TestAdGroupLifecycle(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	g, err := svc.CreateAdGroup(ctx, "cmp-spring", AdGroupRequest{Name: "Campers", BidCents: 95})
	require.NoError(t, err)
	require.Equal(t, "cmp-spring", g.CampaignID)
	require.Equal(t, StatusDraft, g.Status)

	groups, err := svc.ListAdGroups(ctx, "cmp-spring")
	require.NoError(t, err)
	require.Len(t, groups, 2)

	_, err = svc.CreateAdGroup(ctx, "cmp-spring", AdGroupRequest{Name: "Free", BidCents: 0})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.ListAdGroups(ctx, "cmp-missing")
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestCreativeStartsUnapproved(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	c, err := svc.CreateCreative(context.Background(), "ag-trails", CreativeRequest{
		Name:       "Summit Native",
		Format:     "native",
		LandingURL: "https://acme.test/summit",
	})
	require.NoError(t, err)
	require.False(t, c.Approved)
}

func TestApproveCreative(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	c, err := svc.ApproveCreative(ctx, "cr-video-1")
	require.NoError(t, err)
	require.True(t, c.Approved)

	_, err = svc.ApproveCreative(ctx, "cr-missing")
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

// Any edit to a creative sends it back through review.
func TestUpdateCreativeResetsApproval(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	c, err := svc.UpdateCreative(context.Background(), "cr-banner-1", CreativeRequest{
		Name:       "Ridge Banner 970x250",
		Format:     "banner",
		LandingURL: "https://acme.test/spring-v2",
	})
	require.NoError(t, err)
	require.False(t, c.Approved)
}

func TestCreativeValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	_, err := svc.CreateCreative(context.Background(), "ag-trails", CreativeRequest{
		Name:       "Bad Format",
		Format:     "popup",
		LandingURL: "https://acme.test",
	})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.CreateCreative(context.Background(), "ag-trails", CreativeRequest{
		Name:       "Bad URL",
		Format:     "banner",
		LandingURL: "not a url",
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

// Deleting a campaign takes its ad groups and their creatives with it.
func TestDeleteCampaignCascades(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	require.NoError(t, svc.DeleteCampaign(ctx, "cmp-spring"))

	_, err := svc.GetCampaign(ctx, "cmp-spring")
	require.ErrorIs(t, err, httpx.ErrNotFound)
	_, err = svc.ListAdGroups(ctx, "cmp-spring")
	require.ErrorIs(t, err, httpx.ErrNotFound)
	_, err = svc.ListCreatives(ctx, "ag-trails")
	require.ErrorIs(t, err, httpx.ErrNotFound)

	// Unrelated campaign data stays put.
	creatives, err := svc.ListCreatives(ctx, "ag-nordics")
	require.NoError(t, err)
	require.Len(t, creatives, 1)
}

func TestDeleteAdGroupCascades(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	require.NoError(t, svc.DeleteAdGroup(ctx, "ag-nordics"))
	_, err := svc.ListCreatives(ctx, "ag-nordics")
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
