// Package analysis folds categorized transactions into spending summaries.
// Every function here is a pure fold over its inputs: recomputing from the
// same transaction set always yields the same summary.
package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/paisatrail/paisatrail/internal/model"
)

// TopCategoryCount is how many ranked categories a summary reports.
const TopCategoryCount = 5

// BuildSummary computes totals, per-category spend, monthly buckets and the
// top-ranked categories for an ordered transaction sequence. Amounts are
// accumulated exactly; rounding happens only at presentation time.
func BuildSummary(txns []model.Transaction) model.Summary {
	summary := model.Summary{
		TotalDebits:      decimal.Zero,
		TotalCredits:     decimal.Zero,
		Categories:       make(map[string]model.CategorySummary),
		TransactionCount: len(txns),
	}

	monthly := make(map[string]model.MonthlySummary)

	for _, txn := range txns {
		month := monthly[txn.MonthKey()]
		month.Month = txn.MonthKey()
		month.TransactionCount++

		switch txn.Direction {
		case model.DirectionDebit:
			summary.TotalDebits = summary.TotalDebits.Add(txn.Amount)
			month.Spending = month.Spending.Add(txn.Amount)

			// Category spend analysis covers debits only; credits are
			// income and refunds, not spend.
			cat := summary.Categories[txn.Category]
			cat.Category = txn.Category
			cat.TotalAmount = cat.TotalAmount.Add(txn.Amount)
			cat.TransactionCount++
			summary.Categories[txn.Category] = cat
		case model.DirectionCredit:
			summary.TotalCredits = summary.TotalCredits.Add(txn.Amount)
			month.Income = month.Income.Add(txn.Amount)
		}

		monthly[txn.MonthKey()] = month
	}

	summary.Monthly = sortedMonths(monthly)
	summary.TopCategories = RankCategories(summary.Categories, TopCategoryCount)

	return summary
}

// AverageDebit returns the mean debit amount of a summary. The second return
// is false when the summary holds no debit transactions.
func AverageDebit(s model.Summary) (decimal.Decimal, bool) {
	count := 0
	for _, cat := range s.Categories {
		count += cat.TransactionCount
	}
	if count == 0 {
		return decimal.Zero, false
	}
	return s.TotalDebits.Div(decimal.NewFromInt(int64(count))), true
}

// RankCategories orders the n highest-spend category summaries by total amount descending,
// breaking amount ties by name so the ranking is deterministic.
func RankCategories(categories map[string]model.CategorySummary, n int) []model.CategorySummary {
	ranked := make([]model.CategorySummary, 0, len(categories))
	for _, cat := range categories {
		ranked = append(ranked, cat)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].TotalAmount.Equal(ranked[j].TotalAmount) {
			return ranked[i].TotalAmount.GreaterThan(ranked[j].TotalAmount)
		}
		return ranked[i].Category < ranked[j].Category
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func sortedMonths(monthly map[string]model.MonthlySummary) []model.MonthlySummary {
	months := make([]model.MonthlySummary, 0, len(monthly))
	for _, m := range monthly {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month < months[j].Month
	})
	return months
}
