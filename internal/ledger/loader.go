// Package ledger reads delimited transaction files into normalized records.
package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"autocfo/internal/common"
	"autocfo/internal/config"
	"autocfo/internal/model"
)

// dateLayouts are tried in order when parsing the date column. Ledger
// exports in the wild disagree on date formats, so parsing is tolerant.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Stats counts what happened to rows during a load. Skipped and defaulted
// rows are expected operational noise, not errors.
type Stats struct {
	Rows             int // rows read, excluding the header
	Loaded           int
	SkippedRows      int // dropped: date column failed to parse
	DefaultedAmounts int // kept: amount column failed to parse, set to zero
}

// Load reads the ledger at path, renames the mapped columns to the canonical
// date/description/amount fields, and returns the parsed transactions in file
// order. Rows with unparseable dates are dropped and counted; unparseable
// amounts become zero and are counted.
func Load(path string, mapping config.ColumnMapping, logger *slog.Logger) ([]model.Transaction, Stats, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, Stats{}, fmt.Errorf("%w: %s", common.ErrLedgerMissing, path)
		}
		return nil, Stats{}, fmt.Errorf("failed to open ledger %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	txns, stats, err := parse(f, mapping, logger)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to parse ledger %s: %w", path, err)
	}
	return txns, stats, nil
}

func parse(r io.Reader, mapping config.ColumnMapping, logger *slog.Logger) ([]model.Transaction, Stats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, Stats{}, nil
		}
		return nil, Stats{}, fmt.Errorf("failed to read header: %w", err)
	}

	dateIdx, descIdx, amountIdx := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case mapping.Date:
			dateIdx = i
		case mapping.Description:
			descIdx = i
		case mapping.Amount:
			amountIdx = i
		}
	}
	if dateIdx < 0 || descIdx < 0 || amountIdx < 0 {
		return nil, Stats{}, fmt.Errorf("%w: header %v does not contain mapped columns %q/%q/%q",
			common.ErrConfigInvalid, header, mapping.Date, mapping.Description, mapping.Amount)
	}

	var txns []model.Transaction
	var stats Stats
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, stats, fmt.Errorf("failed to read row: %w", readErr)
		}
		stats.Rows++

		date, ok := parseDate(field(record, dateIdx))
		if !ok {
			stats.SkippedRows++
			logger.Warn("skipping row with unparseable date",
				"row", stats.Rows,
				"value", field(record, dateIdx))
			continue
		}

		amount, ok := parseAmount(field(record, amountIdx))
		if !ok {
			stats.DefaultedAmounts++
			logger.Warn("defaulting unparseable amount to zero",
				"row", stats.Rows,
				"value", field(record, amountIdx))
		}

		txns = append(txns, model.Transaction{
			Date:        date,
			Description: strings.TrimSpace(field(record, descIdx)),
			Amount:      amount,
		})
		stats.Loaded++
	}

	return txns, stats, nil
}

// field returns record[i], tolerating ragged rows.
func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return record[i]
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount parses a money value, tolerating currency symbols, thousands
// separators, and accounting-style parentheses for negatives. Unparseable
// values become zero with ok=false; the row itself is never dropped.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}
