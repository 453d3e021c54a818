package audiences

import "time"

// Segment is a targetable audience segment.
type Segment struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	SizeEstimate int64     `json:"size_estimate"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
