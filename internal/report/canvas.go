package report

import (
	"fmt"

	"autocfo/internal/model"
)

// Canvas is the spreadsheet capability the layout is replayed onto. Any
// spreadsheet-writing backend can satisfy it; tests use an in-memory fake.
type Canvas interface {
	SetCell(sheet string, row, col int, value any) error
	SetFormat(sheet string, row, col int, format CellFormat) error
	DefineTable(sheet string, table TableSpec) error
	AddChart(sheet string, chart ChartSpec) error
	SetColumnWidth(sheet string, col int, width float64) error
	HideGridlines(sheet string) error
	HideSheet(sheet string) error
}

// Dashboard column widths, part of the visible contract.
var columnWidths = map[int]float64{
	leftCol:     20,
	leftCol + 1: 18,
}

// Render replays a layout onto the dashboard sheet in region order.
func Render(c Canvas, l Layout) error {
	if err := c.HideGridlines(SheetDashboard); err != nil {
		return fmt.Errorf("failed to hide gridlines: %w", err)
	}
	for col, width := range columnWidths {
		if err := c.SetColumnWidth(SheetDashboard, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for _, region := range l.Regions {
		for _, cell := range region.Cells {
			if err := c.SetCell(SheetDashboard, cell.Row, cell.Col, cell.Value); err != nil {
				return fmt.Errorf("failed to write cell (%d,%d): %w", cell.Row, cell.Col, err)
			}
			if cell.Format == FormatNone {
				continue
			}
			if err := c.SetFormat(SheetDashboard, cell.Row, cell.Col, cell.Format); err != nil {
				return fmt.Errorf("failed to format cell (%d,%d): %w", cell.Row, cell.Col, err)
			}
		}
		if region.Table != nil {
			if err := c.DefineTable(SheetDashboard, *region.Table); err != nil {
				return fmt.Errorf("failed to define table %s: %w", region.Table.Name, err)
			}
		}
		if region.Chart != nil {
			if err := c.AddChart(SheetDashboard, *region.Chart); err != nil {
				return fmt.Errorf("failed to add %s chart: %w", region.Chart.Kind, err)
			}
		}
	}
	return nil
}

// WriteChartData writes the hidden pivot sheet backing the trend chart:
// a Month label column plus one column per year, all twelve months present.
func WriteChartData(c Canvas, matrix YearMonthMatrix) error {
	if err := c.SetCell(SheetChartData, 1, 1, "Month"); err != nil {
		return err
	}
	for i, year := range matrix.Years {
		if err := c.SetCell(SheetChartData, 1, 2+i, year); err != nil {
			return err
		}
	}

	for m := 1; m <= 12; m++ {
		row := m + 1
		if err := c.SetCell(SheetChartData, row, 1, MonthAbbrev(m)); err != nil {
			return err
		}
		for i, total := range matrix.Cells[m-1] {
			if err := c.SetCell(SheetChartData, row, 2+i, total); err != nil {
				return err
			}
		}
	}

	return c.HideSheet(SheetChartData)
}

// WriteRawData writes every classified transaction to the raw-data sheet in
// ledger order.
func WriteRawData(c Canvas, txns []model.ClassifiedTransaction) error {
	headers := []string{"Date", "Description", "Amount", "Category", "Year", "Month"}
	for i, h := range headers {
		if err := c.SetCell(SheetRawData, 1, 1+i, h); err != nil {
			return err
		}
		if err := c.SetFormat(SheetRawData, 1, 1+i, FormatColumnHeader); err != nil {
			return err
		}
	}

	for i, txn := range txns {
		row := 2 + i
		values := []any{
			txn.Date.Format("2006-01-02"),
			txn.Description,
			txn.Amount,
			txn.Category,
			txn.Year,
			txn.Month,
		}
		for j, v := range values {
			if err := c.SetCell(SheetRawData, row, 1+j, v); err != nil {
				return err
			}
		}
		if err := c.SetFormat(SheetRawData, row, 3, FormatCurrency); err != nil {
			return err
		}
	}
	return nil
}
