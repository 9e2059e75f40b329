package classify

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autocfo/internal/model"
)

func testRules() model.RuleSet {
	return model.RuleSet{Rules: []model.CategoryRule{
		{Name: "Revenue", Keywords: []string{"stripe"}},
		{Name: "Tech", Keywords: []string{"github", "server"}},
		{Name: "Meals", Keywords: []string{"starbucks"}},
	}}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{
			name:        "exact keyword",
			description: "GITHUB BILLING",
			want:        "Tech",
		},
		{
			name:        "keyword as substring",
			description: "payment to starbucks #4412",
			want:        "Meals",
		},
		{
			name:        "case insensitive",
			description: "Stripe Payout",
			want:        "Revenue",
		},
		{
			name:        "no match falls through",
			description: "office rent",
			want:        model.UncategorizedName,
		},
		{
			name:        "empty description",
			description: "",
			want:        model.UncategorizedName,
		},
	}

	rules := testRules()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.description, rules))
		})
	}
}

// A description matching two categories must resolve to whichever category
// is declared first, and repeated calls must agree.
func TestClassifyFirstMatchWins(t *testing.T) {
	rules := model.RuleSet{Rules: []model.CategoryRule{
		{Name: "Subscriptions", Keywords: []string{"github"}},
		{Name: "Tech", Keywords: []string{"github", "billing"}},
	}}

	for i := 0; i < 100; i++ {
		assert.Equal(t, "Subscriptions", Classify("github billing", rules))
	}

	// Reversing the declaration order flips the result.
	reversed := model.RuleSet{Rules: []model.CategoryRule{rules.Rules[1], rules.Rules[0]}}
	assert.Equal(t, "Tech", Classify("github billing", reversed))
}

func TestClassifyIgnoresEmptyKeywords(t *testing.T) {
	rules := model.RuleSet{Rules: []model.CategoryRule{
		{Name: "Everything", Keywords: []string{""}},
		{Name: "Meals", Keywords: []string{"starbucks"}},
	}}
	assert.Equal(t, "Meals", Classify("starbucks", rules))
}

func TestAll(t *testing.T) {
	txns := []model.Transaction{
		{Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Description: "STRIPE PAYOUT", Amount: decimal.NewFromInt(500)},
		{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Description: "Starbucks", Amount: decimal.NewFromInt(-8)},
	}

	classified := All(txns, testRules())
	require.Len(t, classified, 2)

	assert.Equal(t, "Revenue", classified[0].Category)
	assert.Equal(t, 2024, classified[0].Year)
	assert.Equal(t, 1, classified[0].Month)
	assert.True(t, classified[0].IsRevenue())

	assert.Equal(t, "Meals", classified[1].Category)
	assert.Equal(t, 2, classified[1].Month)
	assert.False(t, classified[1].IsRevenue())
}
