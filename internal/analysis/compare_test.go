package analysis

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisatrail/paisatrail/internal/model"
)

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name      string
		month     string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name:      "regular month",
			month:     "2024-10",
			wantStart: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 10, 31, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:      "leap february",
			month:     "2024-02",
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:    "invalid format",
			month:   "Oct 2024",
			wantErr: true,
		},
		{
			name:    "missing month part",
			month:   "2024",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := MonthBounds(tt.month)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestCompareMonths(t *testing.T) {
	baseline := []model.Transaction{
		txn("2024-09-10", "1000.00", model.DirectionDebit, "shopping"),
		txn("2024-09-12", "500.00", model.DirectionDebit, "groceries"),
	}
	target := []model.Transaction{
		txn("2024-10-05", "2250.00", model.DirectionDebit, "shopping"),
	}

	cmp := CompareMonths("2024-09", baseline, "2024-10", target)

	assert.Equal(t, "2024-09", cmp.Baseline.Month)
	assert.Equal(t, "2024-10", cmp.Target.Month)
	assert.True(t, cmp.Baseline.Spending.Equal(decimal.RequireFromString("1500.00")))
	assert.True(t, cmp.Target.Spending.Equal(decimal.RequireFromString("2250.00")))
	assert.True(t, cmp.SpendingDifference.Equal(decimal.RequireFromString("750.00")))
	assert.InDelta(t, 50.0, cmp.SpendingChangePercent, 0.0001)
	assert.Equal(t, -1, cmp.TransactionDifference)
}

func TestCompareMonths_ZeroBaseline(t *testing.T) {
	target := []model.Transaction{
		txn("2024-10-05", "1000.00", model.DirectionDebit, "shopping"),
	}

	cmp := CompareMonths("2024-09", nil, "2024-10", target)

	assert.True(t, cmp.SpendingDifference.Equal(decimal.RequireFromString("1000.00")))
	assert.Equal(t, 0.0, cmp.SpendingChangePercent)
	assert.Equal(t, 1, cmp.TransactionDifference)
}

func TestCompareMonths_SpendingDrop(t *testing.T) {
	baseline := []model.Transaction{
		txn("2024-09-10", "2000.00", model.DirectionDebit, "shopping"),
	}
	target := []model.Transaction{
		txn("2024-10-05", "500.00", model.DirectionDebit, "shopping"),
	}

	cmp := CompareMonths("2024-09", baseline, "2024-10", target)

	assert.True(t, cmp.SpendingDifference.Equal(decimal.RequireFromString("-1500.00")))
	assert.InDelta(t, -75.0, cmp.SpendingChangePercent, 0.0001)
}
