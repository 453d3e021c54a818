// Package audit keeps the login audit trail: who signed in, as what role,
// from where. Entries are appended by the background worker and read back
// by the audit endpoint.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vantage-dsp/vantage/internal/rbac"
)

const trailKey = "vantage:audit:logins"

// Entry is one recorded login.
type Entry struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      rbac.Role `json:"role"`
	At        time.Time `json:"at"`
	RemoteIP  string    `json:"remote_ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}

// Trail stores entries newest-first in a capped Redis list.
type Trail struct {
	client *redis.Client
	max    int64
}

// NewTrail constructs a Trail keeping at most max entries.
func NewTrail(client *redis.Client, max int64) *Trail {
	if max <= 0 {
		max = 1000
	}
	return &Trail{client: client, max: max}
}

// Append records an entry and trims the trail to its cap.
func (t *Trail) Append(ctx context.Context, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	pipe := t.client.TxPipeline()
	pipe.LPush(ctx, trailKey, data)
	pipe.LTrim(ctx, trailKey, 0, t.max-1)
	_, err = pipe.Exec(ctx)
	return err
}

// Recent returns up to limit entries, newest first. Entries that fail to
// decode are skipped rather than failing the whole read.
func (t *Trail) Recent(ctx context.Context, limit int64) ([]Entry, error) {
	if limit <= 0 || limit > t.max {
		limit = t.max
	}
	raw, err := t.client.LRange(ctx, trailKey, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var entry Entry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
