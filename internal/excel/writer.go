package excel

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"autocfo/internal/model"
	"autocfo/internal/report"
)

// WriteReport builds the full report workbook and atomically replaces the
// file at path. On any failure the previous report (if one exists) is left
// untouched.
func WriteReport(path string, layout report.Layout, summary report.Summary, txns []model.ClassifiedTransaction, style Style, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	wb, err := NewWorkbook(style)
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}
	defer func() { _ = wb.Close() }()

	if err := report.Render(wb, layout); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	if err := report.WriteChartData(wb, summary.Matrix); err != nil {
		return fmt.Errorf("failed to write chart data: %w", err)
	}
	if err := report.WriteRawData(wb, txns); err != nil {
		return fmt.Errorf("failed to write raw data: %w", err)
	}

	if err := saveAtomic(wb, path); err != nil {
		return err
	}

	logger.Info("report written",
		"path", path,
		"transactions", len(txns),
		"categories", len(summary.Categories),
		"years", len(summary.Matrix.Years))
	return nil
}

// saveAtomic writes the workbook to a temp file in the target directory and
// renames it into place, so an interrupted run never leaves a half-written
// report at path.
func saveAtomic(wb *Workbook, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp report file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := wb.file.WriteTo(tmp); err != nil {
		cleanup()
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temp report file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to move report into place: %w", err)
	}
	return nil
}
