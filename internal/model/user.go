package model

import "time"

// User owns statements and a personal category rule set.
type User struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string
	Email     string
	ID        int64
	IsActive  bool
}
