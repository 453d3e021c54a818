package advertisers

import "time"

// Status describes an advertiser account's lifecycle state.
type Status string

// Known statuses.
const (
	StatusActive   Status = "active"
	StatusPaused   Status = "paused"
	StatusArchived Status = "archived"
)

// Advertiser is a demand-side account that owns campaigns and budgets.
type Advertiser struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ContactEmail     string    `json:"contact_email"`
	Status           Status    `json:"status"`
	DailyBudgetCents int64     `json:"daily_budget_cents"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
