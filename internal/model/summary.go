package model

import (
	"github.com/shopspring/decimal"
)

// CategorySummary holds the spend total and count for one category.
// Only debit transactions contribute; credits are income, not spend.
type CategorySummary struct {
	Category         string
	TotalAmount      decimal.Decimal
	TransactionCount int
}

// MonthlySummary holds per-month totals keyed by a YYYY-MM bucket.
type MonthlySummary struct {
	Month            string
	Spending         decimal.Decimal
	Income           decimal.Decimal
	TransactionCount int
}

// Summary is the deterministic fold over an ordered transaction set.
type Summary struct {
	Categories       map[string]CategorySummary
	TotalDebits      decimal.Decimal
	TotalCredits     decimal.Decimal
	TopCategories    []CategorySummary
	Monthly          []MonthlySummary
	TransactionCount int
}

// MonthTotals describes one side of a month-over-month comparison.
type MonthTotals struct {
	Month            string
	Spending         decimal.Decimal
	TransactionCount int
	Categories       map[string]CategorySummary
}

// MonthComparison reports the difference in spending between two months.
// SpendingChangePercent is 0 when the baseline month's total is 0.
type MonthComparison struct {
	Baseline              MonthTotals
	Target                MonthTotals
	SpendingDifference    decimal.Decimal
	SpendingChangePercent float64
	TransactionDifference int
}
