package advertisers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vantage-dsp/vantage/internal/platform/httpx"
)

// Repository defines data access for advertisers.
type Repository interface {
	List(ctx context.Context) ([]Advertiser, error)
	Get(ctx context.Context, id string) (*Advertiser, error)
	Create(ctx context.Context, a Advertiser) (*Advertiser, error)
	Update(ctx context.Context, a Advertiser) (*Advertiser, error)
	Delete(ctx context.Context, id string) error
}

// MemoryRepository is the in-memory backing store. The dashboard runs
// over seeded demo data; there is no database behind it.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Advertiser
}

// NewMemoryRepository builds a repository seeded with demo advertisers.
func NewMemoryRepository() *MemoryRepository {
	repo := &MemoryRepository{items: make(map[string]Advertiser)}
	now := time.Now().UTC()
	for _, a := range []Advertiser{
		{ID: "adv-acme", Name: "Acme Outdoor", ContactEmail: "media@acme.test", Status: StatusActive, DailyBudgetCents: 250_000},
		{ID: "adv-borealis", Name: "Borealis Travel", ContactEmail: "ads@borealis.test", Status: StatusActive, DailyBudgetCents: 120_000},
		{ID: "adv-corvid", Name: "Corvid Games", ContactEmail: "growth@corvid.test", Status: StatusPaused, DailyBudgetCents: 80_000},
	} {
		a.CreatedAt = now
		a.UpdatedAt = now
		repo.items[a.ID] = a
	}
	return repo
}

// List returns all advertisers ordered by name.
func (r *MemoryRepository) List(ctx context.Context) ([]Advertiser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Advertiser, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get fetches an advertiser by ID.
func (r *MemoryRepository) Get(ctx context.Context, id string) (*Advertiser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return &a, nil
}

// Create inserts a new advertiser.
func (r *MemoryRepository) Create(ctx context.Context, a Advertiser) (*Advertiser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = "adv-" + uuid.NewString()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.items[a.ID] = a
	return &a, nil
}

// Update replaces an existing advertiser.
func (r *MemoryRepository) Update(ctx context.Context, a Advertiser) (*Advertiser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[a.ID]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now().UTC()
	r.items[a.ID] = a
	return &a, nil
}

// Delete removes an advertiser by ID.
func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
