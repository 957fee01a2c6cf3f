package models

import "time"

// SessionContext carries per-visitor state between requests.
type SessionContext struct {
	ID              string     `json:"id"`
	Submissions     int        `json:"submissions"`
	LastRow         int        `json:"last_row,omitempty"`
	LastSubmittedAt *time.Time `json:"last_submitted_at,omitempty"`
}

// HasSubmitted reports whether this session already submitted a poem.
func (s SessionContext) HasSubmitted() bool {
	return s.Submissions > 0
}
