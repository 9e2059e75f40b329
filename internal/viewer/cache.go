package viewer

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"autocfo/internal/classify"
	"autocfo/internal/config"
	"autocfo/internal/ledger"
	"autocfo/internal/model"
)

// ledgerCache memoizes classified ledgers per client folder. Entries are
// keyed by the ledger path and invalidated when the file's mtime changes, so
// edits to the underlying CSV are picked up on the next selection.
type ledgerCache struct {
	entries map[string]cacheEntry
	logger  *slog.Logger
}

type cacheEntry struct {
	modTime time.Time
	txns    []model.ClassifiedTransaction
}

func newLedgerCache(logger *slog.Logger) *ledgerCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ledgerCache{
		entries: make(map[string]cacheEntry),
		logger:  logger,
	}
}

// load returns the classified transactions for a client, reading and
// classifying the ledger only when the cache is cold or stale.
func (c *ledgerCache) load(client Client) ([]model.ClassifiedTransaction, error) {
	path, mapping, rules, err := resolve(client)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if entry, ok := c.entries[path]; ok && entry.modTime.Equal(info.ModTime()) {
		return entry.txns, nil
	}

	txns, stats, err := ledger.Load(path, mapping, c.logger)
	if err != nil {
		return nil, err
	}
	if stats.SkippedRows > 0 || stats.DefaultedAmounts > 0 {
		c.logger.Warn("ledger loaded with repairs",
			"client", client.Name,
			"skipped_rows", stats.SkippedRows,
			"defaulted_amounts", stats.DefaultedAmounts)
	}

	classified := classify.All(txns, rules)
	c.entries[path] = cacheEntry{modTime: info.ModTime(), txns: classified}
	return classified, nil
}

// resolve picks the ledger path, column mapping, and rule set for a client:
// its own config.json when present, the bare data.csv conventions otherwise.
func resolve(client Client) (string, config.ColumnMapping, model.RuleSet, error) {
	if client.HasConfig {
		cfg, err := config.LoadClient(client.Dir)
		if err != nil {
			return "", config.ColumnMapping{}, model.RuleSet{}, err
		}
		return cfg.InputPath(), cfg.Mapping, cfg.Rules, nil
	}
	return filepath.Join(client.Dir, "data.csv"), fallbackMapping, fallbackRules, nil
}
