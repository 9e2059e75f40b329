package report

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Sheet names used by the generated report document.
const (
	SheetDashboard = "Dashboard"
	SheetChartData = "ChartData"
	SheetRawData   = "Raw Data"
)

// Fixed dashboard geometry. All positions are 1-based spreadsheet
// coordinates; leftCol is column B.
const (
	leftCol     = 2
	titleRow    = 2
	clientRow   = 3
	kpiRow      = 5
	kpiSpacing  = 3
	catTableRow = 8
	chartOffset = 4 // columns between the category table and the doughnut
	spacerRows  = 3 // blank rows between stacked regions
)

// RegionKind identifies what a layout region holds.
type RegionKind string

// Region kinds.
const (
	RegionHeader        RegionKind = "header"
	RegionKPI           RegionKind = "kpi"
	RegionCategoryTable RegionKind = "category_table"
	RegionYearlyTable   RegionKind = "yearly_table"
	RegionChartAnchor   RegionKind = "chart_anchor"
)

// CellFormat selects the renderer style for a cell. Currency and percent
// formats are part of the visible contract, not cosmetics.
type CellFormat int

// Cell formats.
const (
	FormatNone CellFormat = iota
	FormatTitle
	FormatSubtitle
	FormatKPILabel
	FormatKPICurrency
	FormatColumnHeader
	FormatYearHeader
	FormatCurrency
	FormatPercent
)

// Cell is a single positioned write instruction.
type Cell struct {
	Value  any
	Row    int
	Col    int
	Format CellFormat
}

// TableSpec defines a styled table over an already-written cell range.
// DataBars asks the renderer for in-cell bars on the amount column.
type TableSpec struct {
	Name     string
	FirstRow int
	FirstCol int
	LastRow  int
	LastCol  int
	DataBars bool
}

// ChartKind selects the chart type.
type ChartKind string

// Chart kinds.
const (
	ChartDoughnut ChartKind = "doughnut"
	ChartLine     ChartKind = "line"
)

// Range is a rectangular cell range on a named sheet.
type Range struct {
	Sheet    string
	FirstRow int
	FirstCol int
	LastRow  int
	LastCol  int
}

// ChartSpec anchors a chart and names the ranges feeding it. Data includes a
// leading header row so series take their titles from the data.
type ChartSpec struct {
	Kind       ChartKind
	Title      string
	AnchorRow  int
	AnchorCol  int
	Data       Range
	Categories Range
}

// Region is one rectangular area of the dashboard plus everything written
// inside it. Regions in a Layout never share a cell.
type Region struct {
	Kind   RegionKind
	Year   int // set for yearly tables
	Top    int
	Left   int
	Bottom int
	Right  int
	Cells  []Cell
	Table  *TableSpec
	Chart  *ChartSpec
}

// Meta carries the report header fields.
type Meta struct {
	Title  string
	Client string
}

// Layout is the fully positioned dashboard: an ordered list of regions with
// every coordinate pre-computed. Building it touches no I/O, so the same
// inputs always produce identical coordinates.
type Layout struct {
	Meta    Meta
	Regions []Region
}

// BuildLayout computes the dashboard layout for a summary. The only
// variable-height part is the stack of yearly tables; the row cursor
// advances by exactly the rows each table consumes plus the spacer, so
// regions cannot collide however many years or categories exist.
func BuildLayout(meta Meta, s Summary) Layout {
	l := Layout{Meta: meta}

	l.Regions = append(l.Regions, headerRegion(meta))
	l.Regions = append(l.Regions, kpiRegion(s.KPIs))

	catRegion := categoryRegion(s)
	l.Regions = append(l.Regions, catRegion)
	l.Regions = append(l.Regions, doughnutRegion(catRegion, len(s.Categories)))

	cursor := catRegion.Bottom + spacerRows + 1
	for _, table := range s.Yearly {
		region := yearlyRegion(cursor, table)
		l.Regions = append(l.Regions, region)
		cursor = region.Bottom + spacerRows + 1
	}

	l.Regions = append(l.Regions, trendRegion(cursor, s.Matrix))
	return l
}

func headerRegion(meta Meta) Region {
	return Region{
		Kind:   RegionHeader,
		Top:    titleRow,
		Left:   leftCol,
		Bottom: clientRow,
		Right:  leftCol,
		Cells: []Cell{
			{Row: titleRow, Col: leftCol, Value: meta.Title, Format: FormatTitle},
			{Row: clientRow, Col: leftCol, Value: meta.Client, Format: FormatSubtitle},
		},
	}
}

func kpiRegion(kpis KPISet) Region {
	labels := []struct {
		name  string
		value decimal.Decimal
	}{
		{"Revenue", kpis.Revenue},
		{"Expenses", kpis.Expenses},
		{"Net Profit", kpis.NetProfit},
	}

	region := Region{
		Kind:   RegionKPI,
		Top:    kpiRow,
		Left:   leftCol,
		Bottom: kpiRow + 1,
		Right:  leftCol + kpiSpacing*(len(labels)-1),
	}
	for i, kpi := range labels {
		col := leftCol + kpiSpacing*i
		region.Cells = append(region.Cells,
			Cell{Row: kpiRow, Col: col, Value: kpi.name, Format: FormatKPILabel},
			Cell{Row: kpiRow + 1, Col: col, Value: kpi.value, Format: FormatKPICurrency},
		)
	}
	return region
}

// categoryRegion lays out the expense breakdown: a header row, then one row
// per category with its total and share of expenses. The share is zero when
// expenses are zero.
func categoryRegion(s Summary) Region {
	region := Region{
		Kind:   RegionCategoryTable,
		Top:    catTableRow,
		Left:   leftCol,
		Bottom: catTableRow + len(s.Categories),
		Right:  leftCol + 2,
		Cells: []Cell{
			{Row: catTableRow, Col: leftCol, Value: "Category", Format: FormatColumnHeader},
			{Row: catTableRow, Col: leftCol + 1, Value: "Amount", Format: FormatColumnHeader},
			{Row: catTableRow, Col: leftCol + 2, Value: "% of Expenses", Format: FormatColumnHeader},
		},
	}

	for i, cat := range s.Categories {
		row := catTableRow + 1 + i
		region.Cells = append(region.Cells,
			Cell{Row: row, Col: leftCol, Value: cat.Category},
			Cell{Row: row, Col: leftCol + 1, Value: cat.Total, Format: FormatCurrency},
			Cell{Row: row, Col: leftCol + 2, Value: share(cat.Total, s.KPIs.Expenses), Format: FormatPercent},
		)
	}

	if len(s.Categories) > 0 {
		region.Table = &TableSpec{
			Name:     "ExpenseTable",
			FirstRow: region.Top,
			FirstCol: region.Left,
			LastRow:  region.Bottom,
			LastCol:  region.Right,
		}
	}
	return region
}

// share guards the divide-by-zero case: with no expenses every category's
// share is zero, not an error.
func share(amount, expenses decimal.Decimal) decimal.Decimal {
	if expenses.IsZero() {
		return decimal.Zero
	}
	return amount.Div(expenses)
}

func doughnutRegion(cat Region, categories int) Region {
	col := cat.Right + chartOffset
	return Region{
		Kind:   RegionChartAnchor,
		Top:    cat.Top,
		Left:   col,
		Bottom: cat.Top,
		Right:  col,
		Chart: &ChartSpec{
			Kind:      ChartDoughnut,
			Title:     "Total Expense Distribution",
			AnchorRow: cat.Top,
			AnchorCol: col,
			// Header row included so the series takes its title from it.
			Data: Range{
				Sheet:    SheetDashboard,
				FirstRow: cat.Top,
				FirstCol: cat.Left + 1,
				LastRow:  cat.Top + categories,
				LastCol:  cat.Left + 1,
			},
			Categories: Range{
				Sheet:    SheetDashboard,
				FirstRow: cat.Top + 1,
				FirstCol: cat.Left,
				LastRow:  cat.Top + categories,
				LastCol:  cat.Left,
			},
		},
	}
}

// yearlyRegion writes one year's table: a year headline, a Month/Revenue
// header, and one row per month with data. The region bottom is the last
// data row, so the caller's cursor advance is exact.
func yearlyRegion(top int, table YearlyTable) Region {
	region := Region{
		Kind:   RegionYearlyTable,
		Year:   table.Year,
		Top:    top,
		Left:   leftCol,
		Bottom: top + 1 + len(table.Months),
		Right:  leftCol + 1,
		Cells: []Cell{
			{Row: top, Col: leftCol, Value: fmt.Sprintf("%d Financial Performance", table.Year), Format: FormatYearHeader},
			{Row: top + 1, Col: leftCol, Value: "Month", Format: FormatColumnHeader},
			{Row: top + 1, Col: leftCol + 1, Value: "Revenue", Format: FormatColumnHeader},
		},
	}

	for i, month := range table.Months {
		row := top + 2 + i
		region.Cells = append(region.Cells,
			Cell{Row: row, Col: leftCol, Value: month.MonthName},
			Cell{Row: row, Col: leftCol + 1, Value: month.Total, Format: FormatCurrency},
		)
	}

	region.Table = &TableSpec{
		Name:     fmt.Sprintf("Table_%d", table.Year),
		FirstRow: top + 1,
		FirstCol: leftCol,
		LastRow:  region.Bottom,
		LastCol:  region.Right,
		DataBars: true,
	}
	return region
}

// trendRegion anchors the year-over-year line chart at the cursor left after
// the last yearly table, which keeps it clear of every table above it. Its
// series come from the hidden pivot sheet, one column per year.
func trendRegion(top int, matrix YearMonthMatrix) Region {
	lastCol := 1 + len(matrix.Years)
	if lastCol < 2 {
		lastCol = 2 // degenerate no-year case still needs a well-formed range
	}
	return Region{
		Kind:   RegionChartAnchor,
		Top:    top,
		Left:   leftCol,
		Bottom: top,
		Right:  leftCol,
		Chart: &ChartSpec{
			Kind:      ChartLine,
			Title:     "Year-Over-Year Growth Comparison",
			AnchorRow: top,
			AnchorCol: leftCol,
			Data: Range{
				Sheet:    SheetChartData,
				FirstRow: 1,
				FirstCol: 2,
				LastRow:  13,
				LastCol:  lastCol,
			},
			Categories: Range{
				Sheet:    SheetChartData,
				FirstRow: 2,
				FirstCol: 1,
				LastRow:  13,
				LastCol:  1,
			},
		},
	}
}
