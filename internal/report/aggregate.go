// Package report turns classified transactions into aggregate views and a
// deterministic dashboard layout.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"autocfo/internal/model"
)

// CategoryTotal is one row of the expense breakdown.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// MonthTotal is one row of a per-year table. MonthName is the full English
// month name.
type MonthTotal struct {
	MonthName string
	Total     decimal.Decimal
}

// YearlyTable holds the month totals for a single year, ascending by month,
// with only months that actually have transactions.
type YearlyTable struct {
	Year   int
	Months []MonthTotal
}

// YearMonthMatrix is the dense year-over-year pivot backing the trend chart.
// Every month 1..12 is present as a row; Cells[m-1][y] is the total for
// month m in Years[y], zero when that month has no transactions.
type YearMonthMatrix struct {
	Years []int
	Cells [12][]decimal.Decimal
}

// MonthAbbrev returns the three-letter label for a month row (1..12).
func MonthAbbrev(month int) string {
	return time.Month(month).String()[:3]
}

// KPISet holds the headline figures. NetProfit is always Revenue minus
// Expenses, and Expenses always equals the sum of the category totals.
type KPISet struct {
	Revenue   decimal.Decimal
	Expenses  decimal.Decimal
	NetProfit decimal.Decimal
}

// Summary bundles every aggregate view derived from one classified ledger.
type Summary struct {
	Categories []CategoryTotal
	Matrix     YearMonthMatrix
	Yearly     []YearlyTable
	KPIs       KPISet
}

// Aggregate computes all aggregate views in one pass over the transactions.
// An empty input yields zero KPIs, an empty category list, a matrix with 12
// month rows and no year columns, and no yearly tables.
func Aggregate(txns []model.ClassifiedTransaction) Summary {
	byCategory := make(map[string]decimal.Decimal)
	byYearMonth := make(map[int]map[int]decimal.Decimal)
	revenue := decimal.Zero
	expenses := decimal.Zero

	for _, txn := range txns {
		if txn.IsRevenue() {
			revenue = revenue.Add(txn.Amount)
		} else {
			// Outflows sit in the ledger as negative amounts; the expense
			// views report magnitudes, so flip the sign here and nowhere
			// else. Sum-then-negate keeps the category totals reconciling
			// with the expense KPI exactly.
			outflow := txn.Amount.Neg()
			expenses = expenses.Add(outflow)
			byCategory[txn.Category] = byCategory[txn.Category].Add(outflow)
		}

		months := byYearMonth[txn.Year]
		if months == nil {
			months = make(map[int]decimal.Decimal)
			byYearMonth[txn.Year] = months
		}
		months[txn.Month] = months[txn.Month].Add(txn.Amount)
	}

	return Summary{
		Categories: categoryTotals(byCategory),
		Matrix:     pivot(byYearMonth),
		Yearly:     yearlyTables(byYearMonth),
		KPIs: KPISet{
			Revenue:   revenue,
			Expenses:  expenses,
			NetProfit: revenue.Sub(expenses),
		},
	}
}

// categoryTotals sorts descending by total. Grouping by map has no defined
// order, so ties are broken by category name ascending to keep the report
// reproducible.
func categoryTotals(byCategory map[string]decimal.Decimal) []CategoryTotal {
	totals := make([]CategoryTotal, 0, len(byCategory))
	for category, total := range byCategory {
		totals = append(totals, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		if cmp := totals[i].Total.Cmp(totals[j].Total); cmp != 0 {
			return cmp > 0
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

func sortedYears(byYearMonth map[int]map[int]decimal.Decimal) []int {
	years := make([]int, 0, len(byYearMonth))
	for year := range byYearMonth {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

func pivot(byYearMonth map[int]map[int]decimal.Decimal) YearMonthMatrix {
	matrix := YearMonthMatrix{Years: sortedYears(byYearMonth)}
	for m := 1; m <= 12; m++ {
		row := make([]decimal.Decimal, len(matrix.Years))
		for i, year := range matrix.Years {
			row[i] = byYearMonth[year][m] // zero value when absent
		}
		matrix.Cells[m-1] = row
	}
	return matrix
}

func yearlyTables(byYearMonth map[int]map[int]decimal.Decimal) []YearlyTable {
	tables := make([]YearlyTable, 0, len(byYearMonth))
	for _, year := range sortedYears(byYearMonth) {
		table := YearlyTable{Year: year}
		for m := 1; m <= 12; m++ {
			total, ok := byYearMonth[year][m]
			if !ok {
				continue
			}
			table.Months = append(table.Months, MonthTotal{
				MonthName: time.Month(m).String(),
				Total:     total,
			})
		}
		tables = append(tables, table)
	}
	return tables
}
