package viewer

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"autocfo/internal/model"
	"autocfo/internal/report"
)

// keyMap defines the viewer key bindings.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Year   key.Binding
	Month  key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous client")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next client")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open client")),
		Year:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "cycle year")),
		Month:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "cycle month")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	clients  Clients
	cache    *ledgerCache
	keys     keyMap
	txTable  table.Model
	err      error
	txns     []model.ClassifiedTransaction
	years    []int // descending, most recent first
	months   []int // ascending, months present in the selected year
	cursor   int
	selected int
	yearIdx  int
	monthIdx int // 0 means all months
	width    int
	height   int
}

// Clients is the scanned client list.
type Clients []Client

type ledgerLoadedMsg struct {
	err  error
	txns []model.ClassifiedTransaction
}

// New creates the viewer model over an already-scanned client list.
func New(clients []Client, logger *slog.Logger) Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Description", Width: 36},
		{Title: "Amount", Width: 12},
		{Title: "Category", Width: 16},
	}
	txTable := table.New(
		table.WithColumns(columns),
		table.WithHeight(12),
	)

	return Model{
		clients:  clients,
		cache:    newLedgerCache(logger),
		keys:     defaultKeyMap(),
		txTable:  txTable,
		selected: -1,
	}
}

// Init loads the first client, if any.
func (m Model) Init() tea.Cmd {
	if len(m.clients) == 0 {
		return nil
	}
	return m.loadClient(0)
}

func (m Model) loadClient(i int) tea.Cmd {
	client := m.clients[i]
	cache := m.cache
	return func() tea.Msg {
		txns, err := cache.load(client)
		return ledgerLoadedMsg{txns: txns, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ledgerLoadedMsg:
		m.err = msg.err
		m.txns = msg.txns
		m.selected = m.cursor
		m.years = distinctYears(m.txns)
		m.yearIdx = 0
		m.monthIdx = 0
		m.refreshFilters()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.clients)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if len(m.clients) == 0 {
				return m, nil
			}
			return m, m.loadClient(m.cursor)

		case key.Matches(msg, m.keys.Year):
			if len(m.years) > 0 {
				m.yearIdx = (m.yearIdx + 1) % len(m.years)
				m.monthIdx = 0
				m.refreshFilters()
			}
			return m, nil

		case key.Matches(msg, m.keys.Month):
			// monthIdx cycles through "all" plus each month with data.
			if len(m.months) > 0 {
				m.monthIdx = (m.monthIdx + 1) % (len(m.months) + 1)
				m.refreshTable()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.txTable, cmd = m.txTable.Update(msg)
	return m, cmd
}

// year returns the selected year, or 0 when no data is loaded.
func (m Model) year() int {
	if len(m.years) == 0 {
		return 0
	}
	return m.years[m.yearIdx]
}

// month returns the selected month, or 0 for all months.
func (m Model) month() int {
	if m.monthIdx == 0 || m.monthIdx > len(m.months) {
		return 0
	}
	return m.months[m.monthIdx-1]
}

// filtered returns the loaded transactions restricted to the active year and
// month selection.
func (m Model) filtered() []model.ClassifiedTransaction {
	year, month := m.year(), m.month()
	var out []model.ClassifiedTransaction
	for _, txn := range m.txns {
		if txn.Year != year {
			continue
		}
		if month != 0 && txn.Month != month {
			continue
		}
		out = append(out, txn)
	}
	return out
}

// summary aggregates the current filtered view.
func (m Model) summary() report.Summary {
	return report.Aggregate(m.filtered())
}

func (m *Model) refreshFilters() {
	m.months = m.months[:0]
	seen := make(map[int]bool)
	year := m.year()
	for _, txn := range m.txns {
		if txn.Year == year && !seen[txn.Month] {
			seen[txn.Month] = true
			m.months = append(m.months, txn.Month)
		}
	}
	sort.Ints(m.months)
	m.refreshTable()
}

func (m *Model) refreshTable() {
	filtered := m.filtered()
	rows := make([]table.Row, 0, len(filtered))
	for _, txn := range filtered {
		rows = append(rows, table.Row{
			txn.Date.Format("2006-01-02"),
			txn.Description,
			fmt.Sprintf("$%s", txn.Amount.StringFixed(2)),
			txn.Category,
		})
	}
	m.txTable.SetRows(rows)
	m.txTable.GotoTop()
}

func distinctYears(txns []model.ClassifiedTransaction) []int {
	seen := make(map[int]bool)
	var years []int
	for _, txn := range txns {
		if !seen[txn.Year] {
			seen[txn.Year] = true
			years = append(years, txn.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
