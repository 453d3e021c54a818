package audiences

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vantage-dsp/vantage/internal/platform/httpx"
)

// Repository defines data access for audience segments.
type Repository interface {
	List(ctx context.Context) ([]Segment, error)
	Get(ctx context.Context, id string) (*Segment, error)
	Create(ctx context.Context, s Segment) (*Segment, error)
	Update(ctx context.Context, s Segment) (*Segment, error)
	Delete(ctx context.Context, id string) error
}

// MemoryRepository is the seeded in-memory backing store.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Segment
}

// NewMemoryRepository builds a repository seeded with demo segments.
func NewMemoryRepository() *MemoryRepository {
	repo := &MemoryRepository{items: make(map[string]Segment)}
	now := time.Now().UTC()
	for _, s := range []Segment{
		{ID: "seg-outdoor", Name: "Outdoor Enthusiasts", Description: "Visited hiking or camping content in the last 30 days", SizeEstimate: 1_450_000},
		{ID: "seg-travel", Name: "Frequent Travellers", Description: "Booked or searched flights twice in the last quarter", SizeEstimate: 890_000},
		{ID: "seg-gamers", Name: "Core Gamers", Description: "Daily play sessions on console or PC titles", SizeEstimate: 2_300_000},
	} {
		s.CreatedAt = now
		s.UpdatedAt = now
		repo.items[s.ID] = s
	}
	return repo
}

func (r *MemoryRepository) List(ctx context.Context) ([]Segment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Segment, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*Segment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) Create(ctx context.Context, s Segment) (*Segment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = "seg-" + uuid.NewString()
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	r.items[s.ID] = s
	return &s, nil
}

func (r *MemoryRepository) Update(ctx context.Context, s Segment) (*Segment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[s.ID]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	s.CreatedAt = existing.CreatedAt
	s.UpdatedAt = time.Now().UTC()
	r.items[s.ID] = s
	return &s, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
