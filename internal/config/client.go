// Package config loads per-client report configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"autocfo/internal/common"
	"autocfo/internal/model"
)

// DefaultReportTitle is used when the client config does not set one.
const DefaultReportTitle = "Executive Financial Report"

// Files names the ledger input and report output inside the client folder.
type Files struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// ColumnMapping names the ledger columns holding the three canonical fields.
type ColumnMapping struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// Client is the parsed config.json for one client folder.
type Client struct {
	Dir         string
	Files       Files
	Mapping     ColumnMapping
	Rules       model.RuleSet
	ReportTitle string
}

// rawClient mirrors the on-disk JSON. Required sections are RawMessage so an
// absent key can be told apart from an empty one.
type rawClient struct {
	Files         *Files           `json:"files"`
	ColumnMapping *json.RawMessage `json:"column_mapping"`
	Categories    *json.RawMessage `json:"categories"`
	ReportTitle   string           `json:"report_title"`
}

// LoadClient reads and validates <dir>/config.json.
func LoadClient(dir string) (*Client, error) {
	path := filepath.Join(dir, "config.json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrConfigMissing, path)
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var raw rawClient
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrConfigInvalid, path, err)
	}

	if raw.Categories == nil {
		return nil, fmt.Errorf("%w: %s: missing required key %q", common.ErrConfigInvalid, path, "categories")
	}
	if raw.ColumnMapping == nil {
		return nil, fmt.Errorf("%w: %s: missing required key %q", common.ErrConfigInvalid, path, "column_mapping")
	}

	var rules model.RuleSet
	if err := json.Unmarshal(*raw.Categories, &rules); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrConfigInvalid, path, err)
	}

	var mapping ColumnMapping
	if err := json.Unmarshal(*raw.ColumnMapping, &mapping); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrConfigInvalid, path, err)
	}
	for key, val := range map[string]string{
		"date":        mapping.Date,
		"description": mapping.Description,
		"amount":      mapping.Amount,
	} {
		if val == "" {
			return nil, fmt.Errorf("%w: %s: column_mapping missing %q", common.ErrConfigInvalid, path, key)
		}
	}

	cfg := &Client{
		Dir:         dir,
		Mapping:     mapping,
		Rules:       rules,
		ReportTitle: raw.ReportTitle,
	}
	if raw.Files != nil {
		cfg.Files = *raw.Files
	}
	if cfg.Files.Input == "" {
		cfg.Files.Input = "data.csv"
	}
	if cfg.Files.Output == "" {
		cfg.Files.Output = "report.xlsx"
	}
	if cfg.ReportTitle == "" {
		cfg.ReportTitle = DefaultReportTitle
	}

	return cfg, nil
}

// InputPath resolves the ledger file inside the client folder.
func (c *Client) InputPath() string {
	return filepath.Join(c.Dir, c.Files.Input)
}

// OutputPath resolves the report file inside the client folder.
func (c *Client) OutputPath() string {
	return filepath.Join(c.Dir, c.Files.Output)
}
