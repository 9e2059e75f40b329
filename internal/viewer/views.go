package viewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"autocfo/internal/report"
)

var (
	accentColor  = lipgloss.Color("#2F5597")
	revenueColor = lipgloss.Color("#4ECDC4")
	expenseColor = lipgloss.Color("#FF6B6B")
	subtleColor  = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	clientListStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtleColor).
			Padding(0, 1).
			Width(24)

	selectedClientStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor)

	kpiBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtleColor).
			Padding(0, 2).
			Width(22)

	kpiLabelStyle = lipgloss.NewStyle().Foreground(subtleColor)

	errorStyle = lipgloss.NewStyle().Foreground(expenseColor)

	helpStyle = lipgloss.NewStyle().Foreground(subtleColor)

	barStyle = lipgloss.NewStyle().Foreground(accentColor)
)

// View renders the dashboard.
func (m Model) View() string {
	if len(m.clients) == 0 {
		return errorStyle.Render("No clients found. Add a folder with a config.json or data.csv to the clients directory.") + "\n"
	}

	left := m.renderClientList()
	right := m.renderDashboard()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	help := helpStyle.Render("↑/↓ client • enter open • y year • m month • q quit")
	return lipgloss.JoinVertical(lipgloss.Left, body, help)
}

func (m Model) renderClientList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Clients"))
	b.WriteString("\n\n")
	for i, client := range m.clients {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		line := marker + client.Name
		if i == m.selected {
			line = selectedClientStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return clientListStyle.Render(b.String())
}

func (m Model) renderDashboard() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.selected < 0 {
		return helpStyle.Render("Select a client and press enter.")
	}

	summary := m.summary()

	sections := []string{
		titleStyle.Render("Executive Financial Dashboard"),
		m.renderFilterLine(),
		m.renderKPIs(summary.KPIs.Revenue, summary.KPIs.Expenses, summary.KPIs.NetProfit),
		m.renderBreakdown(summary),
		m.txTable.View(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderFilterLine() string {
	if len(m.years) == 0 {
		return helpStyle.Render("No dated transactions in this ledger.")
	}
	monthLabel := "All Months"
	if month := m.month(); month != 0 {
		monthLabel = time.Month(month).String()
	}
	return helpStyle.Render(fmt.Sprintf("%s — %d, %s", m.clients[m.selected].Name, m.year(), monthLabel))
}

func (m Model) renderKPIs(revenue, expenses, profit decimal.Decimal) string {
	box := func(label string, value decimal.Decimal, color lipgloss.Color) string {
		amount := lipgloss.NewStyle().Bold(true).Foreground(color).
			Render("$" + value.StringFixed(2))
		return kpiBoxStyle.Render(kpiLabelStyle.Render(label) + "\n" + amount)
	}

	profitColor := revenueColor
	if profit.IsNegative() {
		profitColor = expenseColor
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		box("Revenue", revenue, revenueColor),
		box("Expenses", expenses, expenseColor),
		box("Net Profit", profit, profitColor),
	)
}

// renderBreakdown draws one bar per expense category, scaled to the largest
// total in view.
func (m Model) renderBreakdown(summary report.Summary) string {
	if len(summary.Categories) == 0 {
		return helpStyle.Render("No expenses in this period.")
	}

	const barWidth = 30
	max := summary.Categories[0].Total
	if max.IsZero() || max.IsNegative() {
		max = decimal.NewFromInt(1)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Expense Breakdown"))
	b.WriteString("\n")
	for _, cat := range summary.Categories {
		filled := int(cat.Total.Div(max).InexactFloat64() * barWidth)
		if filled < 0 {
			filled = 0
		}
		if filled > barWidth {
			filled = barWidth
		}
		b.WriteString(fmt.Sprintf("%-16s %s %s\n",
			cat.Category,
			barStyle.Render(strings.Repeat("█", filled)),
			"$"+cat.Total.StringFixed(2)))
	}
	return b.String()
}
