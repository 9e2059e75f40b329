package excel

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"autocfo/internal/report"
)

// Workbook implements report.Canvas on top of an excelize file.
type Workbook struct {
	file     *excelize.File
	style    Style
	styleIDs map[report.CellFormat]int
}

// NewWorkbook creates an in-memory workbook with the three report sheets
// already present, Dashboard first.
func NewWorkbook(style Style) (*Workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", report.SheetDashboard); err != nil {
		return nil, fmt.Errorf("failed to rename dashboard sheet: %w", err)
	}
	for _, sheet := range []string{report.SheetChartData, report.SheetRawData} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}

	return &Workbook{
		file:     f,
		style:    style,
		styleIDs: make(map[report.CellFormat]int),
	}, nil
}

// Close releases the underlying excelize file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SetCell writes a single value. Decimal amounts become plain numbers so
// number formats apply to them.
func (w *Workbook) SetCell(sheet string, row, col int, value any) error {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if d, ok := value.(decimal.Decimal); ok {
		value, _ = d.Float64()
	}
	return w.file.SetCellValue(sheet, ref, value)
}

// SetFormat applies the style for a cell format to one cell.
func (w *Workbook) SetFormat(sheet string, row, col int, format report.CellFormat) error {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	id, err := w.styleID(format)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(sheet, ref, ref, id)
}

// DefineTable declares a styled table over the range and, when asked, adds
// data bars on its last column.
func (w *Workbook) DefineTable(sheet string, table report.TableSpec) error {
	rangeRef, err := rangeName(table.FirstRow, table.FirstCol, table.LastRow, table.LastCol)
	if err != nil {
		return err
	}

	stripes := true
	if err := w.file.AddTable(sheet, &excelize.Table{
		Range:          rangeRef,
		Name:           table.Name,
		StyleName:      w.style.TableStyle,
		ShowRowStripes: &stripes,
	}); err != nil {
		return fmt.Errorf("failed to add table %s: %w", table.Name, err)
	}

	if !table.DataBars || table.LastRow <= table.FirstRow {
		return nil
	}
	barRange, err := rangeName(table.FirstRow+1, table.LastCol, table.LastRow, table.LastCol)
	if err != nil {
		return err
	}
	return w.file.SetConditionalFormat(sheet, barRange, []excelize.ConditionalFormatOptions{
		{
			Type:     "data_bar",
			Criteria: "=",
			MinType:  "min",
			MaxType:  "max",
			BarColor: "#" + w.style.DataBarColor,
		},
	})
}

// AddChart materializes a chart spec. Charts with nothing to plot are
// skipped rather than failed: an empty ledger still renders a valid report.
func (w *Workbook) AddChart(sheet string, chart report.ChartSpec) error {
	anchor, err := excelize.CoordinatesToCellName(chart.AnchorCol, chart.AnchorRow)
	if err != nil {
		return err
	}

	series, err := chartSeries(chart)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return nil
	}

	varyColors := true
	spec := &excelize.Chart{
		Series:     series,
		Title:      []excelize.RichTextRun{{Text: chart.Title}},
		VaryColors: &varyColors,
		Legend:     excelize.ChartLegend{Position: "bottom"},
	}
	switch chart.Kind {
	case report.ChartDoughnut:
		spec.Type = excelize.Doughnut
	case report.ChartLine:
		spec.Type = excelize.Line
		spec.XAxis = excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Month"}}}
		spec.YAxis = excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Revenue ($)"}}}
	default:
		return fmt.Errorf("unknown chart kind %q", chart.Kind)
	}

	return w.file.AddChart(sheet, anchor, spec)
}

// chartSeries expands a spec's data range into excelize series. The first
// data row holds the series titles, one series per data column.
func chartSeries(chart report.ChartSpec) ([]excelize.ChartSeries, error) {
	if chart.Data.LastRow <= chart.Data.FirstRow {
		return nil, nil
	}

	categories, err := absRange(chart.Categories)
	if err != nil {
		return nil, err
	}

	var series []excelize.ChartSeries
	for col := chart.Data.FirstCol; col <= chart.Data.LastCol; col++ {
		name, nameErr := absRef(chart.Data.Sheet, chart.Data.FirstRow, col)
		if nameErr != nil {
			return nil, nameErr
		}
		values, valErr := absRange(report.Range{
			Sheet:    chart.Data.Sheet,
			FirstRow: chart.Data.FirstRow + 1,
			FirstCol: col,
			LastRow:  chart.Data.LastRow,
			LastCol:  col,
		})
		if valErr != nil {
			return nil, valErr
		}
		series = append(series, excelize.ChartSeries{
			Name:       name,
			Categories: categories,
			Values:     values,
		})
	}
	return series, nil
}

// SetColumnWidth sets one column's width.
func (w *Workbook) SetColumnWidth(sheet string, col int, width float64) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return err
	}
	return w.file.SetColWidth(sheet, name, name, width)
}

// HideGridlines turns gridlines off for a sheet.
func (w *Workbook) HideGridlines(sheet string) error {
	show := false
	return w.file.SetSheetView(sheet, -1, &excelize.ViewOptions{ShowGridLines: &show})
}

// HideSheet hides an auxiliary sheet from the workbook tabs.
func (w *Workbook) HideSheet(sheet string) error {
	return w.file.SetSheetVisible(sheet, false)
}

// styleID lazily builds the excelize style for a cell format.
func (w *Workbook) styleID(format report.CellFormat) (int, error) {
	if id, ok := w.styleIDs[format]; ok {
		return id, nil
	}

	var spec excelize.Style
	switch format {
	case report.FormatTitle:
		spec.Font = &excelize.Font{Bold: true, Size: 22, Color: w.style.HeaderColor}
	case report.FormatSubtitle:
		spec.Font = &excelize.Font{Size: 12, Color: w.style.SubtitleColor}
	case report.FormatKPILabel:
		spec.Font = &excelize.Font{Bold: true, Size: 12}
	case report.FormatKPICurrency:
		spec.Font = &excelize.Font{Bold: true, Size: 14}
		spec.CustomNumFmt = &w.style.CurrencyFormat
	case report.FormatColumnHeader:
		spec.Font = &excelize.Font{Bold: true}
	case report.FormatYearHeader:
		spec.Font = &excelize.Font{Bold: true, Size: 14, Color: w.style.HeaderColor}
	case report.FormatCurrency:
		spec.CustomNumFmt = &w.style.CurrencyFormat
	case report.FormatPercent:
		spec.CustomNumFmt = &w.style.PercentFormat
	default:
		return 0, fmt.Errorf("unknown cell format %d", format)
	}

	id, err := w.file.NewStyle(&spec)
	if err != nil {
		return 0, fmt.Errorf("failed to create style: %w", err)
	}
	w.styleIDs[format] = id
	return id, nil
}

func rangeName(firstRow, firstCol, lastRow, lastCol int) (string, error) {
	first, err := excelize.CoordinatesToCellName(firstCol, firstRow)
	if err != nil {
		return "", err
	}
	last, err := excelize.CoordinatesToCellName(lastCol, lastRow)
	if err != nil {
		return "", err
	}
	return first + ":" + last, nil
}

func absRef(sheet string, row, col int) (string, error) {
	ref, err := excelize.CoordinatesToCellName(col, row, true)
	if err != nil {
		return "", err
	}
	return quoteSheet(sheet) + "!" + ref, nil
}

func absRange(r report.Range) (string, error) {
	first, err := excelize.CoordinatesToCellName(r.FirstCol, r.FirstRow, true)
	if err != nil {
		return "", err
	}
	last, err := excelize.CoordinatesToCellName(r.LastCol, r.LastRow, true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s!%s:%s", quoteSheet(r.Sheet), first, last), nil
}

func quoteSheet(sheet string) string {
	if strings.ContainsAny(sheet, " -") {
		return "'" + sheet + "'"
	}
	return sheet
}
