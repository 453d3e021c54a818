package campaigns

import "time"

// Status describes a campaign, ad group or creative lifecycle state.
type Status string

// Known statuses.
const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
	StatusPaused Status = "paused"
	StatusEnded  Status = "ended"
)

// Campaign is a flight of spend for one advertiser.
type Campaign struct {
	ID           string    `json:"id"`
	AdvertiserID string    `json:"advertiser_id"`
	Name         string    `json:"name"`
	Status       Status    `json:"status"`
	BudgetCents  int64     `json:"budget_cents"`
	SpendCents   int64     `json:"spend_cents"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdGroup groups creatives under a campaign with one bid.
type AdGroup struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id"`
	Name       string    `json:"name"`
	Status     Status    `json:"status"`
	BidCents   int64     `json:"bid_cents"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Creative is one renderable ad asset inside an ad group. Approved is
// flipped only through the approval endpoint.
type Creative struct {
	ID         string    `json:"id"`
	AdGroupID  string    `json:"adgroup_id"`
	Name       string    `json:"name"`
	Format     string    `json:"format"`
	LandingURL string    `json:"landing_url"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
