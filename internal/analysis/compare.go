package analysis

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paisatrail/paisatrail/internal/model"
)

// MonthBounds returns the first and last calendar day of a YYYY-MM month.
// The end bound is the last nanosecond of the month so date-range queries
// are inclusive of its final day.
func MonthBounds(month string) (start, end time.Time, err error) {
	start, err = time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q (want YYYY-MM): %w", month, err)
	}
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end, nil
}

// CompareMonths derives independent summaries for two transaction sets and
// reports the absolute and percentage spending difference from baseline to
// target. The percentage is 0 when the baseline month's total is 0; a month
// with no spend is a valid baseline, not a division error.
func CompareMonths(baselineMonth string, baseline []model.Transaction, targetMonth string, target []model.Transaction) model.MonthComparison {
	baseSummary := BuildSummary(baseline)
	targetSummary := BuildSummary(target)

	diff := targetSummary.TotalDebits.Sub(baseSummary.TotalDebits)

	changePct := 0.0
	if baseSummary.TotalDebits.IsPositive() {
		changePct, _ = diff.Div(baseSummary.TotalDebits).Mul(decimal.NewFromInt(100)).Float64()
	}

	return model.MonthComparison{
		Baseline: model.MonthTotals{
			Month:            baselineMonth,
			Spending:         baseSummary.TotalDebits,
			TransactionCount: baseSummary.TransactionCount,
			Categories:       baseSummary.Categories,
		},
		Target: model.MonthTotals{
			Month:            targetMonth,
			Spending:         targetSummary.TotalDebits,
			TransactionCount: targetSummary.TransactionCount,
			Categories:       targetSummary.Categories,
		},
		SpendingDifference:    diff,
		SpendingChangePercent: changePct,
		TransactionDifference: targetSummary.TransactionCount - baseSummary.TransactionCount,
	}
}
