// Package category resolves transaction descriptions to spending categories
// using an ordered set of pattern rules.
package category

import (
	"regexp"
	"sort"
	"strings"

	"github.com/paisatrail/paisatrail/internal/common"
	"github.com/paisatrail/paisatrail/internal/model"
)

// Terminal fallback categories. FallbackCategory is a first-class category,
// never an "uncategorized" null.
const (
	FallbackCategory  = "others"
	TransfersCategory = "payments_transfers"
)

// numericRefRe matches descriptions that are nothing but numeric reference
// tokens, e.g. already-stripped UPI/NEFT reference numbers.
var numericRefRe = regexp.MustCompile(`^\d+(?:\s+\d+)*$`)

// compiledRule pairs a snapshot entry with its pre-compiled regex. The regex
// rides with the rule itself; rule IDs are not unique within a snapshot (the
// embedded defaults all carry ID 0) so they cannot key anything.
type compiledRule struct {
	model.CategoryRule
	re *regexp.Regexp
}

// Categorizer resolves descriptions against an immutable rule snapshot.
// Resolution is a pure function of (description, snapshot): the same inputs
// always yield the same category.
type Categorizer struct {
	rules []compiledRule
}

// New creates a categorizer over a snapshot of active rules. Rules are
// ordered by priority descending with the lexicographically smaller pattern
// winning ties. Regex rules are compiled case-insensitively up front; a rule
// whose pattern does not compile is skipped for the whole run with a warning.
func New(rules []model.CategoryRule) *Categorizer {
	snapshot := make([]model.CategoryRule, 0, len(rules))
	for _, r := range rules {
		if r.IsActive {
			snapshot = append(snapshot, r)
		}
	}

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Less(&snapshot[j])
	})

	kept := make([]compiledRule, 0, len(snapshot))
	for _, r := range snapshot {
		cr := compiledRule{CategoryRule: r}
		if r.IsRegex {
			re, err := regexp.Compile("(?i)" + r.Pattern)
			if err != nil {
				common.LogWarn("skipping rule with invalid regex pattern", common.Fields{
					"rule_id":  r.ID,
					"pattern":  r.Pattern,
					"category": r.Category,
					"error":    err.Error(),
				})
				continue
			}
			cr.re = re
		}
		kept = append(kept, cr)
	}

	return &Categorizer{rules: kept}
}

// Categorize maps a description to a category name. Rules are evaluated
// strictly in snapshot order and the first match wins. When nothing matches,
// purely numeric reference descriptions fall back to the transfers category
// and everything else to the terminal fallback.
func (c *Categorizer) Categorize(description string) string {
	lower := strings.ToLower(description)

	for _, r := range c.rules {
		if r.IsRegex {
			if r.re.MatchString(lower) {
				return r.Category
			}
			continue
		}
		if strings.Contains(lower, strings.ToLower(r.Pattern)) {
			return r.Category
		}
	}

	if numericRefRe.MatchString(strings.TrimSpace(lower)) {
		return TransfersCategory
	}

	return FallbackCategory
}

// Rules returns the snapshot the categorizer evaluates, in evaluation order.
func (c *Categorizer) Rules() []model.CategoryRule {
	rules := make([]model.CategoryRule, len(c.rules))
	for i, r := range c.rules {
		rules[i] = r.CategoryRule
	}
	return rules
}
