package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisatrail/paisatrail/internal/model"
)

func TestSavingsParser_Segment(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name: "single window",
			lines: []string{
				"Account Statement",
				"OPENING BALANCE 10,000.00",
				"31-10-2024 GROCERY STORE 500.00 9,500.00",
				"",
				"CLOSING BALANCE 9,500.00",
				"31-10-2024 OUTSIDE WINDOW 1.00 2.00",
			},
			want: []string{"31-10-2024 GROCERY STORE 500.00 9,500.00"},
		},
		{
			name: "multiple windows across pages",
			lines: []string{
				"OPENING BALANCE",
				"01-10-2024 FIRST 100.00 900.00",
				"CLOSING BALANCE",
				"Page 2",
				"OPENING BALANCE",
				"02-10-2024 SECOND 200.00 700.00",
				"CLOSING BALANCE",
			},
			want: []string{
				"01-10-2024 FIRST 100.00 900.00",
				"02-10-2024 SECOND 200.00 700.00",
			},
		},
		{
			name: "no markers yields nothing",
			lines: []string{
				"01-10-2024 ORPHAN 100.00 900.00",
			},
			want: nil,
		},
	}

	p := NewSavingsParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Segment(tt.lines))
		})
	}
}

func TestSavingsParser_ExtractLine(t *testing.T) {
	tests := []struct {
		name          string
		line          string
		wantDesc      string
		wantAmount    string
		wantDirection model.Direction
		wantDate      time.Time
		wantNoMatch   bool
		wantErr       bool
	}{
		{
			name:          "single amount column defaults to debit",
			line:          "31-10-2024 GROCERY STORE 500.00 1,500.00 1234",
			wantDesc:      "GROCERY STORE",
			wantAmount:    "500.00",
			wantDirection: model.DirectionDebit,
			wantDate:      time.Date(2024, 10, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "salary keyword infers credit",
			line:          "01-10-2024 SALARY OCT ACME CORP 75,000.00 80,000.00",
			wantDesc:      "SALARY OCT ACME CORP",
			wantAmount:    "75000.00",
			wantDirection: model.DirectionCredit,
			wantDate:      time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "populated debit column wins over keywords",
			line:          "05-10-2024 NEFT CR REVERSAL FEE 50.00 0.00 9,950.00",
			wantDesc:      "NEFT CR REVERSAL FEE",
			wantAmount:    "50.00",
			wantDirection: model.DirectionDebit,
			wantDate:      time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "populated credit column",
			line:          "05-10-2024 INTEREST 0.00 120.50 10,120.50",
			wantDesc:      "INTEREST",
			wantAmount:    "120.50",
			wantDirection: model.DirectionCredit,
			wantDate:      time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "upi reference collapses to entity segment",
			line:          "12-10-2024 UPI/P2M/428555/johnstore/okaxis 250.00 9,750.00",
			wantDesc:      "johnstore",
			wantAmount:    "250.00",
			wantDirection: model.DirectionDebit,
			wantDate:      time.Date(2024, 10, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "amount-shaped description tail reads as debit column",
			line:          "05-10-2024 STORE 24.00 500.00 9,500.00",
			wantDesc:      "STORE",
			wantAmount:    "24.00",
			wantDirection: model.DirectionDebit,
			wantDate:      time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "line without date anchor",
			line:        "brought forward 1,000.00 2,000.00",
			wantNoMatch: true,
		},
		{
			name:        "balance-only row",
			line:        "31-10-2024 BALANCE 9,500.00",
			wantNoMatch: true,
		},
		{
			name:        "no description left",
			line:        "31-10-2024 500.00 9,500.00",
			wantNoMatch: true,
		},
		{
			name:    "both columns zero is malformed",
			line:    "31-10-2024 WEIRD ROW 0.00 0.00 9,500.00",
			wantErr: true,
		},
	}

	p := NewSavingsParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, err := p.ExtractLine(tt.line)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			if tt.wantNoMatch {
				assert.Nil(t, txn)
				return
			}

			require.NotNil(t, txn)
			assert.Equal(t, tt.wantDesc, txn.Description)
			assert.True(t, txn.Amount.Equal(decimal.RequireFromString(tt.wantAmount)),
				"amount: got %s, want %s", txn.Amount, tt.wantAmount)
			assert.Equal(t, tt.wantDirection, txn.Direction)
			assert.Equal(t, tt.wantDate, txn.Date)
		})
	}
}

func TestCanonicalDescription(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"upi with entity segment", "UPI/P2A/1234/merchant name/bank", "merchant name"},
		{"upi too few segments", "UPI/P2A/1234", "UPI/P2A/1234"},
		{"non-upi untouched", "NEFT/AXIS/1234/someone", "NEFT/AXIS/1234/someone"},
		{"plain description", "GROCERY STORE", "GROCERY STORE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalDescription(tt.in))
		})
	}
}
