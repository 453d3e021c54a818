package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRecord is the serialization boundary for durable session state:
// exactly the {currentUser, isAuthenticated} pair and nothing else.
// Transient loading/error state never passes through this type, which is
// what enforces the persisted-subset contract.
type SessionRecord struct {
	CurrentUser     *User `json:"current_user"`
	IsAuthenticated bool  `json:"is_authenticated"`
}

// Persistence stores one session's record under a fixed key. Save must
// replace the whole record atomically.
type Persistence interface {
	Save(ctx context.Context, rec SessionRecord) error
	// Load returns the stored record. ok is false when nothing usable is
	// stored; malformed data also reports ok=false rather than an error
	// so a corrupted session degrades to logged-out.
	Load(ctx context.Context) (rec SessionRecord, ok bool, err error)
	Clear(ctx context.Context) error
}

// RedisPersistence keeps the session record as a JSON value in Redis.
type RedisPersistence struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisPersistence binds a persistence to one session key.
func NewRedisPersistence(client *redis.Client, key string, ttl time.Duration) *RedisPersistence {
	return &RedisPersistence{client: client, key: key, ttl: ttl}
}

// Save writes the record, replacing any previous value.
func (p *RedisPersistence) Save(ctx context.Context, rec SessionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return p.client.Set(ctx, p.key, data, p.ttl).Err()
}

// Load reads the record back. Missing or malformed data yields ok=false.
func (p *RedisPersistence) Load(ctx context.Context) (SessionRecord, bool, error) {
	data, err := p.client.Get(ctx, p.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return SessionRecord{}, false, nil
		}
		return SessionRecord{}, false, err
	}
	var rec SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return SessionRecord{}, false, nil
	}
	return rec, true, nil
}

// Clear removes the stored record.
func (p *RedisPersistence) Clear(ctx context.Context) error {
	err := p.client.Del(ctx, p.key).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
