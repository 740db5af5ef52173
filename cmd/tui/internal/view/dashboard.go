package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finvoice/internal/projection"
	"github.com/MrJamesThe3rd/finvoice/internal/tracker"
)

const (
	recentCount    = 5
	breakdownWidth = 30
)

type DashboardModel struct {
	CommonModel
	ledger *tracker.Service

	dash   projection.Dashboard
	stats  projection.ProfileStats
	recent []projection.TransactionRow
}

func NewDashboardModel(ledger *tracker.Service) DashboardModel {
	m := DashboardModel{ledger: ledger}
	m.project()

	return m
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LedgerChangedMsg:
		m.project()
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.project()
		}
	}

	return m, nil
}

func (m *DashboardModel) project() {
	state := m.ledger.Snapshot()
	m.dash = projection.BuildDashboard(state)
	m.stats = projection.BuildProfileStats(state, time.Now())

	rows := projection.TransactionRows(state.Transactions)
	m.recent = rows[:min(recentCount, len(rows))]
}

func (m DashboardModel) View() string {
	totals := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render("Income\n"+incomeStyle.Render(m.dash.Income)),
		cardStyle.Render("Expenses\n"+expenseStyle.Render(m.dash.Expenses)),
		cardStyle.Render("Balance\n"+signStyle(m.dash.BalanceClass).Render(m.dash.Balance)),
	)

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headerStyle.Render(m.Title()),
			faintStyle.Render(profileLine(m.stats)),
			"",
			totals,
			"",
			m.viewBreakdown(),
			"",
			m.viewRecent(),
			"",
			faintStyle.Render(m.ShortHelp()),
		),
	)
}

func (m DashboardModel) viewBreakdown() string {
	if len(m.dash.Breakdown) == 0 {
		return faintStyle.Render("No expenses recorded yet.")
	}

	var sb strings.Builder

	sb.WriteString("Expenses by receiver\n\n")

	for _, s := range m.dash.Breakdown {
		bar := strings.Repeat("█", int(s.Share*breakdownWidth/100))
		fmt.Fprintf(&sb, "%-20.20s %-*s %5.1f%%  %s\n", s.Receiver, breakdownWidth, bar, s.Share, s.Amount)
	}

	return sb.String()
}

func (m DashboardModel) viewRecent() string {
	if len(m.recent) == 0 {
		return faintStyle.Render("No transactions yet.")
	}

	var sb strings.Builder

	sb.WriteString("Recent transactions\n\n")

	for _, r := range m.recent {
		amount := expenseStyle.Render(r.Amount)
		if r.Income {
			amount = incomeStyle.Render(r.Amount)
		}

		fmt.Fprintf(&sb, "%-13s %-20.20s %s\n", r.Date, r.Receiver, amount)
	}

	return sb.String()
}

func profileLine(stats projection.ProfileStats) string {
	return fmt.Sprintf("%s · member since %s · %d days active", stats.Name, stats.JoinDate, stats.DaysActive)
}
