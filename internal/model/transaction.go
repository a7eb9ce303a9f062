// Package model defines the core data structures for the paisatrail application.
package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether a transaction moves money out of or into the account.
type Direction string

const (
	// DirectionDebit represents money leaving the account.
	DirectionDebit Direction = "Debit"
	// DirectionCredit represents money entering the account.
	DirectionCredit Direction = "Credit"
)

// ParseDirection converts a stored string into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionDebit, DirectionCredit:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("invalid transaction direction %q", s)
	}
}

// Transaction represents a single financial movement extracted from a statement.
// Amounts are always non-negative; Direction carries the sign.
type Transaction struct {
	Date             time.Time
	CreatedAt        time.Time
	Description      string
	Category         string
	OriginalCategory string
	Direction        Direction
	Amount           decimal.Decimal
	ID               int64
	StatementID      int64
	UserCorrected    bool
}

// MonthKey returns the YYYY-MM bucket for the transaction's date.
func (t *Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}
