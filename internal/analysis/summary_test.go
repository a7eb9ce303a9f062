package analysis

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisatrail/paisatrail/internal/model"
)

func txn(date string, amount string, direction model.Direction, category string) model.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return model.Transaction{
		Date:      d,
		Amount:    decimal.RequireFromString(amount),
		Direction: direction,
		Category:  category,
	}
}

func TestBuildSummary(t *testing.T) {
	txns := []model.Transaction{
		txn("2024-10-01", "500.00", model.DirectionDebit, "groceries"),
		txn("2024-10-05", "1200.00", model.DirectionDebit, "shopping"),
		txn("2024-10-07", "75000.00", model.DirectionCredit, "others"),
		txn("2024-11-02", "300.00", model.DirectionDebit, "groceries"),
		txn("2024-11-15", "120.50", model.DirectionCredit, "banking"),
	}

	s := BuildSummary(txns)

	assert.Equal(t, 5, s.TransactionCount)
	assert.True(t, s.TotalDebits.Equal(decimal.RequireFromString("2000.00")))
	assert.True(t, s.TotalCredits.Equal(decimal.RequireFromString("75120.50")))

	// Credits never contribute to category spend.
	require.Len(t, s.Categories, 2)
	groceries := s.Categories["groceries"]
	assert.True(t, groceries.TotalAmount.Equal(decimal.RequireFromString("800.00")))
	assert.Equal(t, 2, groceries.TransactionCount)

	// Months sort ascending and bucket by calendar month.
	require.Len(t, s.Monthly, 2)
	assert.Equal(t, "2024-10", s.Monthly[0].Month)
	assert.True(t, s.Monthly[0].Spending.Equal(decimal.RequireFromString("1700.00")))
	assert.True(t, s.Monthly[0].Income.Equal(decimal.RequireFromString("75000.00")))
	assert.Equal(t, 3, s.Monthly[0].TransactionCount)
	assert.Equal(t, "2024-11", s.Monthly[1].Month)
	assert.True(t, s.Monthly[1].Income.Equal(decimal.RequireFromString("120.50")))
}

func TestBuildSummary_Empty(t *testing.T) {
	s := BuildSummary(nil)

	assert.Equal(t, 0, s.TransactionCount)
	assert.True(t, s.TotalDebits.IsZero())
	assert.True(t, s.TotalCredits.IsZero())
	assert.Empty(t, s.Categories)
	assert.Empty(t, s.Monthly)
	assert.Empty(t, s.TopCategories)
}

func TestAverageDebit(t *testing.T) {
	txns := []model.Transaction{
		txn("2024-10-01", "100.00", model.DirectionDebit, "a"),
		txn("2024-10-02", "200.00", model.DirectionDebit, "b"),
		txn("2024-10-03", "999.00", model.DirectionCredit, "ignored"),
	}

	avg, ok := AverageDebit(BuildSummary(txns))
	require.True(t, ok)
	assert.True(t, avg.Equal(decimal.RequireFromString("150.00")), "avg: %s", avg)

	_, ok = AverageDebit(BuildSummary(nil))
	assert.False(t, ok)
}

func TestRankCategories(t *testing.T) {
	txns := []model.Transaction{
		txn("2024-10-01", "100.00", model.DirectionDebit, "a"),
		txn("2024-10-01", "300.00", model.DirectionDebit, "b"),
		txn("2024-10-01", "200.00", model.DirectionDebit, "c"),
		txn("2024-10-01", "200.00", model.DirectionDebit, "d"),
		txn("2024-10-01", "50.00", model.DirectionDebit, "e"),
		txn("2024-10-01", "25.00", model.DirectionDebit, "f"),
	}

	s := BuildSummary(txns)

	require.Len(t, s.TopCategories, TopCategoryCount)
	assert.Equal(t, "b", s.TopCategories[0].Category)
	// Equal amounts break ties by category name.
	assert.Equal(t, "c", s.TopCategories[1].Category)
	assert.Equal(t, "d", s.TopCategories[2].Category)
	assert.Equal(t, "a", s.TopCategories[3].Category)
	assert.Equal(t, "e", s.TopCategories[4].Category)
}

func TestBuildSummary_CategorySpendAddsUpToTotalDebits(t *testing.T) {
	txns := []model.Transaction{
		txn("2024-10-01", "0.10", model.DirectionDebit, "a"),
		txn("2024-10-02", "0.20", model.DirectionDebit, "b"),
		txn("2024-10-03", "0.30", model.DirectionDebit, "a"),
		txn("2024-10-04", "99.99", model.DirectionCredit, "ignored"),
	}

	s := BuildSummary(txns)

	sum := decimal.Zero
	for _, cat := range s.Categories {
		sum = sum.Add(cat.TotalAmount)
	}
	assert.True(t, sum.Equal(s.TotalDebits), "category spend %s != total debits %s", sum, s.TotalDebits)
}
