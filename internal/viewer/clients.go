// Package viewer is the interactive terminal dashboard for browsing client
// ledgers. It shares the loader, classifier, and aggregator with the report
// pipeline but renders to the terminal instead of a workbook.
package viewer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"autocfo/internal/config"
	"autocfo/internal/model"
)

// Client is a candidate folder found in the clients directory. A folder
// qualifies when it has a config.json or a bare data.csv.
type Client struct {
	Name      string
	Dir       string
	HasConfig bool
}

// ScanClients lists the browsable client folders under dir, sorted by name.
func ScanClients(dir string) ([]Client, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan clients directory %s: %w", dir, err)
	}

	var clients []Client
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		hasConfig := fileExists(filepath.Join(sub, "config.json"))
		if !hasConfig && !fileExists(filepath.Join(sub, "data.csv")) {
			continue
		}
		clients = append(clients, Client{
			Name:      entry.Name(),
			Dir:       sub,
			HasConfig: hasConfig,
		})
	}

	sort.Slice(clients, func(i, j int) bool { return clients[i].Name < clients[j].Name })
	return clients, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// fallbackMapping matches the conventional bare data.csv export header.
var fallbackMapping = config.ColumnMapping{
	Date:        "Date",
	Description: "Memo",
	Amount:      "Cost",
}

// fallbackRules classify bare-ledger clients that carry no config of their
// own. Unmatched descriptions land in Uncategorized as usual.
var fallbackRules = model.RuleSet{Rules: []model.CategoryRule{
	{Name: "Revenue", Keywords: []string{"stripe", "income", "deposit", "consulting"}},
	{Name: "Tech", Keywords: []string{"github", "server", "hosting", "software"}},
	{Name: "Meals", Keywords: []string{"starbucks", "food", "meal"}},
}}
