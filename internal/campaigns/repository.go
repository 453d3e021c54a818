package campaigns

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vantage-dsp/vantage/internal/platform/httpx"
)

// Repository defines data access for campaigns, ad groups and creatives.
type Repository interface {
	ListCampaigns(ctx context.Context) ([]Campaign, error)
	GetCampaign(ctx context.Context, id string) (*Campaign, error)
	CreateCampaign(ctx context.Context, c Campaign) (*Campaign, error)
	UpdateCampaign(ctx context.Context, c Campaign) (*Campaign, error)
	DeleteCampaign(ctx context.Context, id string) error

	ListAdGroups(ctx context.Context, campaignID string) ([]AdGroup, error)
	GetAdGroup(ctx context.Context, id string) (*AdGroup, error)
	CreateAdGroup(ctx context.Context, g AdGroup) (*AdGroup, error)
	UpdateAdGroup(ctx context.Context, g AdGroup) (*AdGroup, error)
	DeleteAdGroup(ctx context.Context, id string) error

	ListCreatives(ctx context.Context, adGroupID string) ([]Creative, error)
	GetCreative(ctx context.Context, id string) (*Creative, error)
	CreateCreative(ctx context.Context, c Creative) (*Creative, error)
	UpdateCreative(ctx context.Context, c Creative) (*Creative, error)
	DeleteCreative(ctx context.Context, id string) error
}

// MemoryRepository is the seeded in-memory backing store.
type MemoryRepository struct {
	mu        sync.RWMutex
	campaigns map[string]Campaign
	adGroups  map[string]AdGroup
	creatives map[string]Creative
}

// NewMemoryRepository builds a repository seeded with demo data.
func NewMemoryRepository() *MemoryRepository {
	repo := &MemoryRepository{
		campaigns: make(map[string]Campaign),
		adGroups:  make(map[string]AdGroup),
		creatives: make(map[string]Creative),
	}
	now := time.Now().UTC()
	seedCampaigns := []Campaign{
		{ID: "cmp-spring", AdvertiserID: "adv-acme", Name: "Spring Hiking Push", Status: StatusActive, BudgetCents: 500_000, SpendCents: 312_450, StartDate: now.AddDate(0, -1, 0), EndDate: now.AddDate(0, 1, 0)},
		{ID: "cmp-aurora", AdvertiserID: "adv-borealis", Name: "Aurora Season", Status: StatusActive, BudgetCents: 800_000, SpendCents: 95_200, StartDate: now.AddDate(0, 0, -10), EndDate: now.AddDate(0, 2, 0)},
		{ID: "cmp-launch", AdvertiserID: "adv-corvid", Name: "Title Launch", Status: StatusPaused, BudgetCents: 300_000, SpendCents: 300_000, StartDate: now.AddDate(0, -2, 0), EndDate: now.AddDate(0, 0, -5)},
	}
	for _, c := range seedCampaigns {
		c.CreatedAt = now
		c.UpdatedAt = now
		repo.campaigns[c.ID] = c
	}
	seedGroups := []AdGroup{
		{ID: "ag-trails", CampaignID: "cmp-spring", Name: "Trail Enthusiasts", Status: StatusActive, BidCents: 120},
		{ID: "ag-nordics", CampaignID: "cmp-aurora", Name: "Nordic Travellers", Status: StatusActive, BidCents: 210},
	}
	for _, g := range seedGroups {
		g.CreatedAt = now
		g.UpdatedAt = now
		repo.adGroups[g.ID] = g
	}
	seedCreatives := []Creative{
		{ID: "cr-banner-1", AdGroupID: "ag-trails", Name: "Ridge Banner 728x90", Format: "banner", LandingURL: "https://acme.test/spring", Approved: true},
		{ID: "cr-video-1", AdGroupID: "ag-nordics", Name: "Aurora Teaser 15s", Format: "video", LandingURL: "https://borealis.test/aurora", Approved: false},
	}
	for _, c := range seedCreatives {
		c.CreatedAt = now
		c.UpdatedAt = now
		repo.creatives[c.ID] = c
	}
	return repo
}

// ListCampaigns returns all campaigns ordered by name.
func (r *MemoryRepository) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetCampaign fetches a campaign by ID.
func (r *MemoryRepository) GetCampaign(ctx context.Context, id string) (*Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return &c, nil
}

// CreateCampaign inserts a new campaign.
func (r *MemoryRepository) CreateCampaign(ctx context.Context, c Campaign) (*Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = "cmp-" + uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.campaigns[c.ID] = c
	return &c, nil
}

// UpdateCampaign replaces an existing campaign.
func (r *MemoryRepository) UpdateCampaign(ctx context.Context, c Campaign) (*Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.campaigns[c.ID]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	r.campaigns[c.ID] = c
	return &c, nil
}

// DeleteCampaign removes a campaign and its ad groups and creatives.
func (r *MemoryRepository) DeleteCampaign(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campaigns[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.campaigns, id)
	for gid, g := range r.adGroups {
		if g.CampaignID != id {
			continue
		}
		delete(r.adGroups, gid)
		for cid, c := range r.creatives {
			if c.AdGroupID == gid {
				delete(r.creatives, cid)
			}
		}
	}
	return nil
}

// ListAdGroups returns a campaign's ad groups ordered by name.
func (r *MemoryRepository) ListAdGroups(ctx context.Context, campaignID string) ([]AdGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []AdGroup{}
	for _, g := range r.adGroups {
		if g.CampaignID == campaignID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetAdGroup fetches an ad group by ID.
func (r *MemoryRepository) GetAdGroup(ctx context.Context, id string) (*AdGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.adGroups[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return &g, nil
}

// CreateAdGroup inserts a new ad group.
func (r *MemoryRepository) CreateAdGroup(ctx context.Context, g AdGroup) (*AdGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campaigns[g.CampaignID]; !ok {
		return nil, httpx.ErrNotFound
	}
	if g.ID == "" {
		g.ID = "ag-" + uuid.NewString()
	}
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	r.adGroups[g.ID] = g
	return &g, nil
}

// UpdateAdGroup replaces an existing ad group.
func (r *MemoryRepository) UpdateAdGroup(ctx context.Context, g AdGroup) (*AdGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.adGroups[g.ID]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	g.CampaignID = existing.CampaignID
	g.CreatedAt = existing.CreatedAt
	g.UpdatedAt = time.Now().UTC()
	r.adGroups[g.ID] = g
	return &g, nil
}

// DeleteAdGroup removes an ad group and its creatives.
func (r *MemoryRepository) DeleteAdGroup(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.adGroups[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.adGroups, id)
	for cid, c := range r.creatives {
		if c.AdGroupID == id {
			delete(r.creatives, cid)
		}
	}
	return nil
}

// ListCreatives returns an ad group's creatives ordered by name.
func (r *MemoryRepository) ListCreatives(ctx context.Context, adGroupID string) ([]Creative, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Creative{}
	for _, c := range r.creatives {
		if c.AdGroupID == adGroupID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetCreative fetches a creative by ID.
func (r *MemoryRepository) GetCreative(ctx context.Context, id string) (*Creative, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.creatives[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return &c, nil
}

// CreateCreative inserts a new creative.
func (r *MemoryRepository) CreateCreative(ctx context.Context, c Creative) (*Creative, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.adGroups[c.AdGroupID]; !ok {
		return nil, httpx.ErrNotFound
	}
	if c.ID == "" {
		c.ID = "cr-" + uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.creatives[c.ID] = c
	return &c, nil
}

// UpdateCreative replaces an existing creative.
func (r *MemoryRepository) UpdateCreative(ctx context.Context, c Creative) (*Creative, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.creatives[c.ID]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	c.AdGroupID = existing.AdGroupID
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	r.creatives[c.ID] = c
	return &c, nil
}

// DeleteCreative removes a creative by ID.
func (r *MemoryRepository) DeleteCreative(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.creatives[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.creatives, id)
	return nil
}
