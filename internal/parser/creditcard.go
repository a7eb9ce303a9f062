package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/paisatrail/paisatrail/internal/model"
)

// creditCardLineRe matches one Axis credit card transaction line:
// a date like `04 Nov '24`, the merchant description, a rupee amount with
// optional thousands separators, and an explicit Debit/Credit token. Matching
// is anchored to line content, not full-line equality, so minor layout drift
// between statement issuers survives.
var creditCardLineRe = regexp.MustCompile(`(\d{2} [A-Za-z]{3} '\d{2})\s+(.*?)\s+(?:₹|INR)\s*([\d,]+\.\d{2})\s+(Debit|Credit)\b`)

// creditCardNoise marks lines that are statement furniture rather than
// transactions: section headers, page markers and footer boilerplate.
var creditCardNoise = []string{
	"Transaction Details",
	"Page",
	"Credit Card Number",
	"End of Transaction",
}

// CreditCardParser reads the Axis Bank credit card statement layout. The
// layout has no section delimiters, so segmentation is a noise filter.
type CreditCardParser struct{}

// NewCreditCardParser creates a parser for Axis credit card statements.
func NewCreditCardParser() *CreditCardParser {
	return &CreditCardParser{}
}

// BankType implements Parser.
func (p *CreditCardParser) BankType() model.BankType {
	return model.BankAxisCredit
}

// Segment implements Parser. Every non-blank, non-noise line is a candidate.
func (p *CreditCardParser) Segment(lines []string) []string {
	var candidates []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isNoise(trimmed, creditCardNoise) {
			continue
		}
		candidates = append(candidates, trimmed)
	}
	return candidates
}

// ExtractLine implements Parser.
func (p *CreditCardParser) ExtractLine(line string) (*model.Transaction, error) {
	m := creditCardLineRe.FindStringSubmatch(line)
	if m == nil {
		return nil, nil
	}

	date, err := time.Parse("02 Jan '06", m[1])
	if err != nil {
		return nil, fmt.Errorf("invalid transaction date %q: %w", m[1], err)
	}

	amount, err := parseAmount(m[3])
	if err != nil {
		return nil, err
	}

	direction := model.DirectionDebit
	if m[4] == "Credit" {
		direction = model.DirectionCredit
	}

	return &model.Transaction{
		Date:        date,
		Description: strings.TrimSpace(m[2]),
		Amount:      amount,
		Direction:   direction,
	}, nil
}

func isNoise(line string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
