// Package model defines the core domain types shared across the pipeline.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedName is the sentinel category for descriptions no rule matches.
const UncategorizedName = "Uncategorized"

// RevenueName is the category excluded from expense aggregation.
const RevenueName = "Revenue"

// Transaction represents a single ledger row after normalization.
// Immutable once constructed: the loader guarantees Date parsed, Description
// is never empty-for-nil, and Amount defaulted to zero when unparseable.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

// ClassifiedTransaction is a Transaction with its derived category and
// calendar coordinates.
type ClassifiedTransaction struct {
	Transaction
	Category string
	Year     int
	Month    int // 1..12
}

// Classify derives the calendar fields for a transaction under a category.
func (t Transaction) Classify(category string) ClassifiedTransaction {
	return ClassifiedTransaction{
		Transaction: t,
		Category:    category,
		Year:        t.Date.Year(),
		Month:       int(t.Date.Month()),
	}
}

// IsRevenue reports whether the transaction landed in the Revenue category.
func (c ClassifiedTransaction) IsRevenue() bool {
	return c.Category == RevenueName
}
