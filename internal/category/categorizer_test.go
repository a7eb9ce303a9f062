package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisatrail/paisatrail/internal/model"
)

func rule(id int64, pattern, category string, priority int) model.CategoryRule {
	return model.CategoryRule{
		ID:       id,
		Pattern:  pattern,
		Category: category,
		Priority: priority,
		IsActive: true,
	}
}

func TestCategorizer_FirstMatchWins(t *testing.T) {
	tests := []struct {
		name        string
		description string
		rules       []model.CategoryRule
		want        string
	}{
		{
			name:        "higher priority wins",
			description: "SWIGGY INSTAMART ORDER",
			rules: []model.CategoryRule{
				rule(1, "swiggy", "food_dining", 5),
				rule(2, "swiggy instamart", "groceries", 8),
			},
			want: "groceries",
		},
		{
			name:        "equal priority breaks ties lexicographically",
			description: "ALPHA BETA STORE",
			rules: []model.CategoryRule{
				rule(1, "beta", "category_b", 5),
				rule(2, "alpha", "category_a", 5),
			},
			want: "category_a",
		},
		{
			name:        "matching is case-insensitive",
			description: "payment to NETFLIX.COM",
			rules: []model.CategoryRule{
				rule(1, "Netflix", "subscriptions", 5),
			},
			want: "subscriptions",
		},
		{
			name:        "regex rule matches",
			description: "Visit to Dr Sharma clinic",
			rules: []model.CategoryRule{
				rule(1, "grocery", "groceries", 9),
				{ID: 2, Pattern: `dr\s`, Category: "healthcare", Priority: 5, IsRegex: true, IsActive: true},
			},
			want: "healthcare",
		},
		{
			name:        "inactive rules never match",
			description: "SWIGGY ORDER",
			rules: []model.CategoryRule{
				{ID: 1, Pattern: "swiggy", Category: "food_dining", Priority: 9, IsActive: false},
			},
			want: FallbackCategory,
		},
		{
			name:        "no rules falls back to others",
			description: "UNKNOWN MERCHANT",
			want:        FallbackCategory,
		},
		{
			name:        "numeric reference falls back to transfers",
			description: "428555123456",
			want:        TransfersCategory,
		},
		{
			name:        "numeric tokens with spaces still transfers",
			description: "  4285 5512 3456  ",
			want:        TransfersCategory,
		},
		{
			name:        "upi entity matches merchant rule",
			description: "johnstore",
			rules: []model.CategoryRule{
				rule(1, "johnstore", "shopping", 5),
			},
			want: "shopping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.rules)
			assert.Equal(t, tt.want, c.Categorize(tt.description))
		})
	}
}

func TestCategorizer_UserRuleOutranksDefault(t *testing.T) {
	description := "UPI/1234567890/JohnStore/Payment"

	defaults := []model.CategoryRule{rule(1, "upi", "banking", 8)}
	c := New(defaults)
	assert.Equal(t, "banking", c.Categorize(description))

	withUserRule := append(defaults, rule(2, "johnstore", "food_dining", 10))
	c = New(withUserRule)
	assert.Equal(t, "food_dining", c.Categorize(description))
}

func TestCategorizer_Deterministic(t *testing.T) {
	rules := []model.CategoryRule{
		rule(1, "beta", "b", 5),
		rule(2, "alpha", "a", 5),
	}

	first := New(rules).Categorize("ALPHA AND BETA")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, New(rules).Categorize("ALPHA AND BETA"))
	}
}

func TestCategorizer_SkipsInvalidRegex(t *testing.T) {
	rules := []model.CategoryRule{
		{ID: 1, Pattern: `[broken`, Category: "bad", Priority: 10, IsRegex: true, IsActive: true},
		rule(2, "swiggy", "food_dining", 5),
	}

	c := New(rules)

	require.Len(t, c.Rules(), 1)
	assert.Equal(t, "food_dining", c.Categorize("SWIGGY ORDER"))
	assert.Equal(t, FallbackCategory, c.Categorize("anything else"))
}

func TestCategorizer_RegexRulesSharingAnID(t *testing.T) {
	// Embedded default rules are never persisted, so they all carry ID 0.
	// Each regex rule must still evaluate against its own pattern.
	rules := []model.CategoryRule{
		{ID: 0, Pattern: `^\d+$`, Category: "numbers", Priority: 9, IsRegex: true, IsActive: true},
		{ID: 0, Pattern: `swiggy`, Category: "food_dining", Priority: 5, IsRegex: true, IsActive: true},
	}

	c := New(rules)

	assert.Equal(t, "food_dining", c.Categorize("SWIGGY ORDER"))
	assert.Equal(t, "numbers", c.Categorize("123456"))
}

func TestCategorizer_SnapshotOrdering(t *testing.T) {
	rules := []model.CategoryRule{
		rule(1, "zeta", "z", 5),
		rule(2, "alpha", "a", 5),
		rule(3, "mid", "m", 9),
	}

	ordered := New(rules).Rules()

	require.Len(t, ordered, 3)
	assert.Equal(t, "mid", ordered[0].Pattern)
	assert.Equal(t, "alpha", ordered[1].Pattern)
	assert.Equal(t, "zeta", ordered[2].Pattern)
}

func TestDefaultRules(t *testing.T) {
	rules, err := DefaultRules()
	require.NoError(t, err)
	require.NotEmpty(t, rules)

	for _, r := range rules {
		assert.NotEmpty(t, r.Pattern)
		assert.NotEmpty(t, r.Category)
		assert.True(t, r.IsActive)
	}

	// The shipped defaults must all survive categorizer construction.
	c := New(rules)
	assert.Len(t, c.Rules(), len(rules))

	assert.Equal(t, "food_dining", c.Categorize("SWIGGY BANGALORE"))
	assert.Equal(t, "transport", c.Categorize("UBER TRIP 12345"))
}
