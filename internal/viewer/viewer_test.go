package viewer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestScanClients(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "zeta", "config.json"), `{}`)
	writeFile(t, filepath.Join(dir, "acme", "data.csv"), "Date,Memo,Cost\n")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0o750))
	writeFile(t, filepath.Join(dir, "stray.txt"), "not a folder")

	clients, err := ScanClients(dir)
	require.NoError(t, err)
	require.Len(t, clients, 2)

	assert.Equal(t, "acme", clients[0].Name)
	assert.False(t, clients[0].HasConfig)
	assert.Equal(t, "zeta", clients[1].Name)
	assert.True(t, clients[1].HasConfig)
}

func TestScanClientsMissingDir(t *testing.T) {
	_, err := ScanClients(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLedgerCacheInvalidatesOnChange(t *testing.T) {
	dir := t.TempDir()
	ledgerPath := filepath.Join(dir, "data.csv")
	writeFile(t, ledgerPath, "Date,Memo,Cost\n2024-01-05,STRIPE PAYOUT,500\n")

	client := Client{Name: "acme", Dir: dir}
	cache := newLedgerCache(nil)

	txns, err := cache.load(client)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "Revenue", txns[0].Category)

	// Unchanged file: served from cache.
	again, err := cache.load(client)
	require.NoError(t, err)
	assert.Len(t, again, 1)

	// Rewrite the ledger with a distinct mtime; the next load re-reads it.
	writeFile(t, ledgerPath, "Date,Memo,Cost\n2024-01-05,STRIPE PAYOUT,500\n2024-02-01,Starbucks,-8\n")
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(ledgerPath, future, future))

	reloaded, err := cache.load(client)
	require.NoError(t, err)
	require.Len(t, reloaded, 2)
	assert.Equal(t, "Meals", reloaded[1].Category)
}

func TestLedgerCacheUsesClientConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json"), `{
		"files": {"input": "ledger.csv"},
		"column_mapping": {"date": "When", "description": "What", "amount": "HowMuch"},
		"categories": {"Consulting": ["acme"]}
	}`)
	writeFile(t, filepath.Join(dir, "ledger.csv"), "When,What,HowMuch\n2024-03-01,ACME retainer,1500\n")

	cache := newLedgerCache(nil)
	txns, err := cache.load(Client{Name: "custom", Dir: dir, HasConfig: true})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "Consulting", txns[0].Category)
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "acme", "data.csv"),
		"Date,Memo,Cost\n"+
			"2024-01-05,STRIPE PAYOUT,500\n"+
			"2024-01-10,Github billing,-20\n"+
			"2024-02-01,Starbucks,-8\n"+
			"2023-06-01,Starbucks,-12\n")

	clients, err := ScanClients(dir)
	require.NoError(t, err)

	m := New(clients, nil)
	cmd := m.Init()
	require.NotNil(t, cmd)

	msg, ok := cmd().(ledgerLoadedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)

	updated, _ := m.Update(msg)
	loaded, ok := updated.(Model)
	require.True(t, ok)
	return loaded
}

func TestModelFiltersByYearAndMonth(t *testing.T) {
	m := loadedModel(t)

	// Most recent year is selected first.
	assert.Equal(t, []int{2024, 2023}, m.years)
	assert.Equal(t, 2024, m.year())
	assert.Equal(t, 0, m.month())
	assert.Len(t, m.filtered(), 3)

	summary := m.summary()
	assert.Equal(t, "500", summary.KPIs.Revenue.String())
	assert.Equal(t, "28", summary.KPIs.Expenses.String())

	// Cycle to a specific month.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	m = updated.(Model)
	assert.Equal(t, 1, m.month())
	assert.Len(t, m.filtered(), 2)

	// Cycle the year; month resets to all.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m = updated.(Model)
	assert.Equal(t, 2023, m.year())
	assert.Equal(t, 0, m.month())
	assert.Len(t, m.filtered(), 1)
}

func TestModelViewRendersDashboard(t *testing.T) {
	m := loadedModel(t)
	view := m.View()

	assert.Contains(t, view, "Clients")
	assert.Contains(t, view, "acme")
	assert.Contains(t, view, "Revenue")
	assert.Contains(t, view, "Expense Breakdown")
}

func TestModelViewWithoutClients(t *testing.T) {
	m := New(nil, nil)
	assert.Contains(t, m.View(), "No clients found")
}
