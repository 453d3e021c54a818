package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/vantage-dsp/vantage/internal/audit"
	jobmetrics "github.com/vantage-dsp/vantage/internal/jobs"
	"github.com/vantage-dsp/vantage/internal/rbac"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeLoginAudit records a successful login in the audit trail.
	TaskTypeLoginAudit = "auth:login_audit"
)

// LoginAuditPayload describes a successful login to record.
type LoginAuditPayload struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      rbac.Role `json:"role"`
	At        time.Time `json:"at"`
	RemoteIP  string    `json:"remote_ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}

// NewLoginAuditTask constructs an Asynq task.
func NewLoginAuditTask(payload LoginAuditPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeLoginAudit, data), nil
}

// NewLoginAuditHandler processes TaskTypeLoginAudit tasks by appending to
// the audit trail. Malformed payloads are dropped, not retried.
func NewLoginAuditHandler(trail *audit.Trail, logger *slog.Logger) asynq.HandlerFunc {
	metrics := jobmetrics.NewMetrics(nil)
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track(TaskTypeLoginAudit)
		var payload LoginAuditPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			if logger != nil {
				logger.Warn("login audit payload", slog.Any("error", err))
			}
			_ = tracker.End(err)
			return asynq.SkipRetry
		}
		return tracker.End(trail.Append(ctx, audit.Entry{
			UserID:    payload.UserID,
			Username:  payload.Username,
			Role:      payload.Role,
			At:        payload.At,
			RemoteIP:  payload.RemoteIP,
			UserAgent: payload.UserAgent,
		}))
	}
}
