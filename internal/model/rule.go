package model

import (
	"strings"
	"time"
)

// CategoryRule maps a description pattern to a spending category.
// A nil UserID marks a global rule shared by every user.
type CategoryRule struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    *int64    `json:"user_id,omitempty"`
	Pattern   string    `json:"pattern"`
	Category  string    `json:"category"`
	ID        int64     `json:"id"`
	Priority  int       `json:"priority"`
	IsRegex   bool      `json:"is_regex"`
	IsActive  bool      `json:"is_active"`
}

// Less orders rules by priority descending, then pattern ascending.
// The secondary key makes tie-breaks deterministic across runs.
func (r *CategoryRule) Less(other *CategoryRule) bool {
	if r.Priority != other.Priority {
		return r.Priority > other.Priority
	}
	return strings.Compare(r.Pattern, other.Pattern) < 0
}
