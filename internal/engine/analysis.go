package engine

import (
	"context"
	"time"

	"github.com/paisatrail/paisatrail/internal/analysis"
	"github.com/paisatrail/paisatrail/internal/model"
)

// SpendingAnalysis folds a user's transactions inside [start, end] into a
// summary. Zero times widen the range to everything on that side.
func (e *Engine) SpendingAnalysis(ctx context.Context, userID int64, start, end time.Time) (model.Summary, error) {
	if end.IsZero() {
		end = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
	}

	txns, err := e.storage.TransactionsByDateRange(ctx, userID, start, end)
	if err != nil {
		return model.Summary{}, err
	}
	return analysis.BuildSummary(txns), nil
}

// CompareMonths compares a user's spending between two YYYY-MM months. Each
// month's transactions are bounded by its first and last calendar day.
func (e *Engine) CompareMonths(ctx context.Context, userID int64, baselineMonth, targetMonth string) (model.MonthComparison, error) {
	baseStart, baseEnd, err := analysis.MonthBounds(baselineMonth)
	if err != nil {
		return model.MonthComparison{}, err
	}
	targetStart, targetEnd, err := analysis.MonthBounds(targetMonth)
	if err != nil {
		return model.MonthComparison{}, err
	}

	baseline, err := e.storage.TransactionsByDateRange(ctx, userID, baseStart, baseEnd)
	if err != nil {
		return model.MonthComparison{}, err
	}
	target, err := e.storage.TransactionsByDateRange(ctx, userID, targetStart, targetEnd)
	if err != nil {
		return model.MonthComparison{}, err
	}

	return analysis.CompareMonths(baselineMonth, baseline, targetMonth, target), nil
}
