// Package parser turns the raw text lines of a bank statement into
// transactions. Each statement layout is a Parser variant that knows how to
// segment a document into its transaction section and how to read one line.
package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paisatrail/paisatrail/internal/common"
	"github.com/paisatrail/paisatrail/internal/model"
)

// Parser is one statement-layout variant.
type Parser interface {
	// BankType identifies the layout this parser handles.
	BankType() model.BankType

	// Segment returns the ordered sub-sequence of lines that are eligible
	// transaction candidates. Blank lines are never returned.
	Segment(lines []string) []string

	// ExtractLine reads one candidate line. It returns (nil, nil) when the
	// line does not encode a transaction, and a non-nil error when the line
	// matched the broad shape but failed date or amount conversion. It never
	// panics on malformed input.
	ExtractLine(line string) (*model.Transaction, error)
}

// Parse runs the full segment-and-extract pass over a document's lines.
// Malformed candidate lines are logged and skipped; they never abort the
// batch. The result is sorted by date descending, with equal dates keeping
// their order of first appearance in the source text.
func Parse(p Parser, lines []string) []model.Transaction {
	var txns []model.Transaction

	for _, line := range p.Segment(lines) {
		txn, err := p.ExtractLine(line)
		if err != nil {
			common.LogWarn("skipping malformed statement line", common.Fields{
				"bank_type": p.BankType(),
				"line":      line,
				"error":     err.Error(),
			})
			continue
		}
		if txn != nil {
			txns = append(txns, *txn)
		}
	}

	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date)
	})

	return txns
}

// parseAmount converts an amount token into an exact decimal. Thousands
// separators are stripped first; negative or non-numeric results are
// rejected so the caller treats the line as malformed instead of panicking.
func parseAmount(token string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(token), ",", "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", token, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %q", token)
	}
	return amount, nil
}
