package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paisatrail/paisatrail/internal/model"
)

// Section markers for the savings layout. Only lines strictly between an
// opening and the next closing marker are transaction candidates.
const (
	savingsOpenMarker  = "OPENING BALANCE"
	savingsCloseMarker = "CLOSING BALANCE"
)

var (
	savingsDateRe   = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}\b`)
	savingsAmountRe = regexp.MustCompile(`^[\d,]+\.\d{2}$`)
	savingsRefRe    = regexp.MustCompile(`^\d+$`)
)

// creditKeywords flag descriptions whose transactions are credits even when
// the line carries a single amount column. Column data, when present, takes
// precedence over these keywords.
var creditKeywords = []string{
	"salary",
	"cr-",
	"neft cr",
	"imps cr",
	"refund",
	"reversal",
	"interest paid",
}

// SavingsParser reads the Axis Bank savings account statement layout:
// `DD-MM-YYYY <description> <debit> <credit> <balance> [ref]`, where banks
// commonly print only the populated amount column, leaving
// `DD-MM-YYYY <description> <amount> <balance> [ref]` on the page.
type SavingsParser struct{}

// NewSavingsParser creates a parser for Axis savings statements.
func NewSavingsParser() *SavingsParser {
	return &SavingsParser{}
}

// BankType implements Parser.
func (p *SavingsParser) BankType() model.BankType {
	return model.BankAxisSavings
}

// Segment implements Parser. Candidates are the non-blank lines strictly
// inside OPENING BALANCE / CLOSING BALANCE windows. A document may carry
// several windows (per-page header repeats); all of them contribute.
func (p *SavingsParser) Segment(lines []string) []string {
	var candidates []string
	inSection := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.Contains(trimmed, savingsOpenMarker):
			inSection = true
		case strings.Contains(trimmed, savingsCloseMarker):
			inSection = false
		case inSection && trimmed != "":
			candidates = append(candidates, trimmed)
		}
	}

	return candidates
}

// ExtractLine implements Parser.
func (p *SavingsParser) ExtractLine(line string) (*model.Transaction, error) {
	if !savingsDateRe.MatchString(line) {
		return nil, nil
	}

	fields := strings.Fields(line)
	if len(fields) < 3 {
		return nil, nil
	}

	date, err := time.Parse("02-01-2006", fields[0])
	if err != nil {
		return nil, fmt.Errorf("invalid transaction date %q: %w", fields[0], err)
	}

	rest := fields[1:]

	// A trailing all-digit token is a transaction reference, not an amount.
	if len(rest) > 0 && savingsRefRe.MatchString(rest[len(rest)-1]) {
		rest = rest[:len(rest)-1]
	}

	// Peel amount-shaped tokens off the tail. The savings layout carries at
	// most three: debit, credit and running balance. The layout has no column
	// boundaries, so a description that itself ends in an amount-shaped token
	// (e.g. "STORE 24.00") is absorbed into the columns; such a row reads the
	// trailing description token as the debit column.
	var amounts []string
	for len(rest) > 0 && len(amounts) < 3 && savingsAmountRe.MatchString(rest[len(rest)-1]) {
		amounts = append([]string{rest[len(rest)-1]}, amounts...)
		rest = rest[:len(rest)-1]
	}

	// One amount is just a balance row; nothing to extract.
	if len(amounts) < 2 || len(rest) == 0 {
		return nil, nil
	}

	description := canonicalDescription(strings.Join(rest, " "))

	amount, direction, err := resolveAmount(amounts, description)
	if err != nil {
		return nil, err
	}

	return &model.Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Direction:   direction,
	}, nil
}

// resolveAmount decides the transaction amount and direction from the
// amount-shaped tail tokens. With separate debit and credit columns the
// populated (non-zero) column is authoritative; with a single amount column
// the direction falls back to description keywords, debit assumed.
func resolveAmount(amounts []string, description string) (decimal.Decimal, model.Direction, error) {
	if len(amounts) == 3 {
		debit, err := parseAmount(amounts[0])
		if err != nil {
			return decimal.Zero, "", err
		}
		credit, err := parseAmount(amounts[1])
		if err != nil {
			return decimal.Zero, "", err
		}

		switch {
		case debit.IsPositive():
			return debit, model.DirectionDebit, nil
		case credit.IsPositive():
			return credit, model.DirectionCredit, nil
		default:
			return decimal.Zero, "", fmt.Errorf("neither debit nor credit column populated")
		}
	}

	// Two tokens: transaction amount followed by the running balance.
	value, err := parseAmount(amounts[0])
	if err != nil {
		return decimal.Zero, "", err
	}

	direction := model.DirectionDebit
	lower := strings.ToLower(description)
	for _, kw := range creditKeywords {
		if strings.Contains(lower, kw) {
			direction = model.DirectionCredit
			break
		}
	}

	return value, direction, nil
}

// canonicalDescription extracts the merchant/entity name from UPI-style
// '/'-delimited references. The 4th segment is the entity; references with
// fewer segments are kept as-is.
func canonicalDescription(description string) string {
	if !strings.Contains(description, "UPI") {
		return description
	}
	parts := strings.Split(description, "/")
	if len(parts) < 4 {
		return description
	}
	return strings.TrimSpace(parts[3])
}
