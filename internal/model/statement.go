package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BankType identifies the statement layout a document uses.
type BankType string

const (
	// BankAxisCredit is the Axis Bank credit card statement layout.
	BankAxisCredit BankType = "axis_credit"
	// BankAxisSavings is the Axis Bank savings account statement layout.
	BankAxisSavings BankType = "axis_savings"
)

// DisplayName returns a human-readable name for the bank type.
func (b BankType) DisplayName() string {
	switch b {
	case BankAxisCredit:
		return "Axis Credit Card"
	case BankAxisSavings:
		return "Axis Savings"
	default:
		return string(b)
	}
}

// ParsingStatus tracks a statement through its processing lifecycle.
type ParsingStatus string

const (
	// StatusPending marks a statement that has been registered but not processed.
	StatusPending ParsingStatus = "pending"
	// StatusProcessing marks a statement currently being parsed.
	StatusProcessing ParsingStatus = "processing"
	// StatusCompleted marks a statement whose transactions are durably recorded.
	StatusCompleted ParsingStatus = "completed"
	// StatusFailed marks a statement that could not be processed.
	StatusFailed ParsingStatus = "failed"
)

// ParseStatus converts a stored string into a ParsingStatus.
func ParseStatus(s string) (ParsingStatus, error) {
	switch ParsingStatus(s) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return ParsingStatus(s), nil
	default:
		return "", fmt.Errorf("invalid parsing status %q", s)
	}
}

// Statement is the processing envelope for one source document.
// TotalDebits, TotalCredits and TransactionCount are summary caches;
// the owned transaction rows remain the source of truth.
type Statement struct {
	StatementDate    time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	FilePath         string
	FileName         string
	ErrorDetail      string
	BankType         BankType
	ParsingStatus    ParsingStatus
	TotalDebits      decimal.Decimal
	TotalCredits     decimal.Decimal
	ID               int64
	UserID           int64
	TransactionCount int
}
