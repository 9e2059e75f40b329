// Package classify assigns categories to transactions using keyword rules.
package classify

import (
	"strings"

	"autocfo/internal/model"
)

// Classify returns the category for a transaction description. Matching is
// case-insensitive substring containment, and categories are tested in the
// rule set's declaration order: the first category with any matching keyword
// wins, even if a later category also matches. Descriptions no rule matches
// fall through to the Uncategorized sentinel.
func Classify(description string, rules model.RuleSet) string {
	desc := strings.ToLower(description)
	for _, rule := range rules.Rules {
		for _, keyword := range rule.Keywords {
			if keyword != "" && strings.Contains(desc, keyword) {
				return rule.Name
			}
		}
	}
	return model.UncategorizedName
}

// All classifies every transaction, deriving the calendar fields along the
// way. Output order matches input order.
func All(txns []model.Transaction, rules model.RuleSet) []model.ClassifiedTransaction {
	classified := make([]model.ClassifiedTransaction, 0, len(txns))
	for _, txn := range txns {
		classified = append(classified, txn.Classify(Classify(txn.Description, rules)))
	}
	return classified
}
