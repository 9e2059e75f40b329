package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autocfo/internal/model"
)

func txn(t *testing.T, date, category, amount string) model.ClassifiedTransaction {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return model.Transaction{
		Date:        d,
		Description: category + " txn",
		Amount:      decimal.RequireFromString(amount),
	}.Classify(category)
}

// The canonical three-row example: a Stripe payout, a GitHub bill, and a
// Starbucks run.
func exampleLedger(t *testing.T) []model.ClassifiedTransaction {
	t.Helper()
	return []model.ClassifiedTransaction{
		txn(t, "2024-01-05", "Revenue", "500"),
		txn(t, "2024-01-10", "Tech", "-20"),
		txn(t, "2024-02-01", "Meals", "-8"),
	}
}

func TestAggregateKPIs(t *testing.T) {
	s := Aggregate(exampleLedger(t))

	assert.True(t, s.KPIs.Revenue.Equal(decimal.NewFromInt(500)), "revenue %s", s.KPIs.Revenue)
	assert.True(t, s.KPIs.Expenses.Equal(decimal.NewFromInt(28)), "expenses %s", s.KPIs.Expenses)
	assert.True(t, s.KPIs.NetProfit.Equal(decimal.NewFromInt(472)), "net profit %s", s.KPIs.NetProfit)
}

func TestAggregateCategorySummary(t *testing.T) {
	s := Aggregate(exampleLedger(t))

	require.Len(t, s.Categories, 2)
	assert.Equal(t, "Tech", s.Categories[0].Category)
	assert.True(t, s.Categories[0].Total.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "Meals", s.Categories[1].Category)
	assert.True(t, s.Categories[1].Total.Equal(decimal.NewFromInt(8)))
}

func TestAggregateExcludesRevenueFromCategories(t *testing.T) {
	s := Aggregate(exampleLedger(t))
	for _, cat := range s.Categories {
		assert.NotEqual(t, model.RevenueName, cat.Category)
	}
}

// Revenue - Expenses must equal NetProfit, and the category totals must sum
// to the expense KPI with the same arithmetic.
func TestAggregateReconciliation(t *testing.T) {
	txns := []model.ClassifiedTransaction{
		txn(t, "2023-03-01", "Revenue", "1000.33"),
		txn(t, "2023-04-11", "Tech", "-19.99"),
		txn(t, "2023-04-12", "Tech", "-0.01"),
		txn(t, "2023-05-20", "Meals", "-7.77"),
		txn(t, "2024-01-01", "Uncategorized", "-100.10"),
		txn(t, "2024-06-15", "Meals", "12.50"), // refund reduces expenses
	}

	s := Aggregate(txns)

	assert.True(t, s.KPIs.Revenue.Sub(s.KPIs.Expenses).Equal(s.KPIs.NetProfit))

	total := decimal.Zero
	for _, cat := range s.Categories {
		total = total.Add(cat.Total)
	}
	assert.True(t, total.Equal(s.KPIs.Expenses), "categories %s vs expenses %s", total, s.KPIs.Expenses)
}

func TestAggregateCategoryTieBreak(t *testing.T) {
	txns := []model.ClassifiedTransaction{
		txn(t, "2024-01-01", "Zeta", "-10"),
		txn(t, "2024-01-02", "Alpha", "-10"),
		txn(t, "2024-01-03", "Midway", "-10"),
	}

	s := Aggregate(txns)

	require.Len(t, s.Categories, 3)
	assert.Equal(t, "Alpha", s.Categories[0].Category)
	assert.Equal(t, "Midway", s.Categories[1].Category)
	assert.Equal(t, "Zeta", s.Categories[2].Category)
}

func TestAggregateMatrixCompleteness(t *testing.T) {
	txns := []model.ClassifiedTransaction{
		txn(t, "2023-02-10", "Tech", "-5"),
		txn(t, "2024-01-05", "Revenue", "500"),
		txn(t, "2024-11-30", "Meals", "-8"),
	}

	s := Aggregate(txns)

	assert.Equal(t, []int{2023, 2024}, s.Matrix.Years)
	require.Len(t, s.Matrix.Cells, 12)
	for m := 1; m <= 12; m++ {
		require.Len(t, s.Matrix.Cells[m-1], 2, "month %d", m)
	}

	// Cells hold raw sums; sparse (year, month) pairs are exactly zero.
	assert.True(t, s.Matrix.Cells[1][0].Equal(decimal.NewFromInt(-5)))  // Feb 2023
	assert.True(t, s.Matrix.Cells[0][1].Equal(decimal.NewFromInt(500))) // Jan 2024
	assert.True(t, s.Matrix.Cells[0][0].IsZero())                       // Jan 2023
	assert.True(t, s.Matrix.Cells[11][1].IsZero())                      // Dec 2024
}

func TestMonthAbbrev(t *testing.T) {
	assert.Equal(t, "Jan", MonthAbbrev(1))
	assert.Equal(t, "Sep", MonthAbbrev(9))
	assert.Equal(t, "Dec", MonthAbbrev(12))
}

func TestAggregateYearlyTables(t *testing.T) {
	txns := []model.ClassifiedTransaction{
		txn(t, "2024-01-05", "Revenue", "500"),
		txn(t, "2024-01-10", "Tech", "-20"),
		txn(t, "2024-03-02", "Meals", "-8"),
		txn(t, "2023-12-25", "Meals", "-30"),
	}

	s := Aggregate(txns)
	require.Len(t, s.Yearly, 2)

	// Years ascend; months include only those with data, in month order,
	// labelled with full month names, summing raw amounts.
	assert.Equal(t, 2023, s.Yearly[0].Year)
	require.Len(t, s.Yearly[0].Months, 1)
	assert.Equal(t, "December", s.Yearly[0].Months[0].MonthName)

	assert.Equal(t, 2024, s.Yearly[1].Year)
	require.Len(t, s.Yearly[1].Months, 2)
	assert.Equal(t, "January", s.Yearly[1].Months[0].MonthName)
	assert.True(t, s.Yearly[1].Months[0].Total.Equal(decimal.NewFromInt(480)))
	assert.Equal(t, "March", s.Yearly[1].Months[1].MonthName)
}

func TestAggregateEmptyInput(t *testing.T) {
	s := Aggregate(nil)

	assert.True(t, s.KPIs.Revenue.IsZero())
	assert.True(t, s.KPIs.Expenses.IsZero())
	assert.True(t, s.KPIs.NetProfit.IsZero())
	assert.Empty(t, s.Categories)
	assert.Empty(t, s.Yearly)
	assert.Empty(t, s.Matrix.Years)
	require.Len(t, s.Matrix.Cells, 12)
	for _, row := range s.Matrix.Cells {
		assert.Empty(t, row)
	}
}
