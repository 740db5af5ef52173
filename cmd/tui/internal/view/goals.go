package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finvoice/internal/goal"
	"github.com/MrJamesThe3rd/finvoice/internal/projection"
	"github.com/MrJamesThe3rd/finvoice/internal/tracker"
	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

const goalBarWidth = 40

type goalState int

const (
	goalStateList goalState = iota
	goalStateAdding
	goalStateFunding
	goalStateConfirmDelete
)

type goalFields struct {
	name      string
	target    string
	saved     string
	amount    string
	confirmed bool
}

type GoalsModel struct {
	CommonModel
	ledger *tracker.Service

	state  goalState
	cards  []projection.GoalCard
	cursor int
	form   *huh.Form
	fields *goalFields
	status string
}

func NewGoalsModel(ledger *tracker.Service) GoalsModel {
	m := GoalsModel{ledger: ledger}
	m.project()

	return m
}

func (m GoalsModel) Title() string { return "Savings Goals" }

func (m GoalsModel) ShortHelp() string {
	if m.state != goalStateList {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | ↑/↓: select | a: add goal | m: add money | d: delete"
}

func (m GoalsModel) Init() tea.Cmd {
	return nil
}

func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LedgerChangedMsg:
		m.project()
		return m, nil

	case goalResultMsg:
		m.state = goalStateList
		m.form = nil
		m.status = msg.status

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.project()

		return m, nil
	}

	if m.state == goalStateList {
		return m.updateList(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = goalStateList
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case goalStateAdding:
		return m, m.addGoalCmd(*m.fields)
	case goalStateFunding:
		return m, m.addMoneyCmd(m.cards[m.cursor].ID, m.fields.amount)
	case goalStateConfirmDelete:
		if m.fields.confirmed {
			return m, m.deleteGoalCmd(m.cards[m.cursor].ID)
		}

		m.state = goalStateList
		m.form = nil
	}

	return m, nil
}

func (m GoalsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.cards)-1 {
			m.cursor++
		}
	case "a":
		return m.startAdding()
	case "m":
		if len(m.cards) > 0 {
			return m.startFunding()
		}
	case "d":
		if len(m.cards) > 0 {
			return m.startDelete()
		}
	}

	return m, nil
}

func (m GoalsModel) startAdding() (tea.Model, tea.Cmd) {
	m.fields = &goalFields{}
	m.status = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Goal name").
				Value(&m.fields.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("target").
				Title("Target amount").
				Value(&m.fields.target).
				Validate(validatePositive),

			huh.NewInput().
				Key("saved").
				Title("Already saved (optional)").
				Placeholder("0").
				Value(&m.fields.saved).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}

					d, err := transaction.ParseAmount(s)
					if err != nil {
						return err
					}

					if d.IsNegative() {
						return fmt.Errorf("saved must not be negative")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = goalStateAdding

	return m, m.form.Init()
}

func (m GoalsModel) startFunding() (tea.Model, tea.Cmd) {
	m.fields = &goalFields{}
	m.status = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title(fmt.Sprintf("Add money to %s", m.cards[m.cursor].Name)).
				Value(&m.fields.amount).
				Validate(validatePositive),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = goalStateFunding

	return m, m.form.Init()
}

func (m GoalsModel) startDelete() (tea.Model, tea.Cmd) {
	m.fields = &goalFields{}
	m.status = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete goal %q?", m.cards[m.cursor].Name)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.fields.confirmed),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = goalStateConfirmDelete

	return m, m.form.Init()
}

func validatePositive(s string) error {
	d, err := transaction.ParseAmount(s)
	if err != nil {
		return err
	}

	if !d.IsPositive() {
		return fmt.Errorf("amount must be greater than zero")
	}

	return nil
}

func (m *GoalsModel) project() {
	m.cards = projection.GoalCards(m.ledger.Goals())

	if m.cursor >= len(m.cards) {
		m.cursor = max(len(m.cards)-1, 0)
	}
}

func (m GoalsModel) View() string {
	if m.state != goalStateList && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	parts := []string{headerStyle.Render(m.Title()), ""}

	if len(m.cards) == 0 {
		parts = append(parts, faintStyle.Render("No goals yet. Press a to add one."))
	}

	for i, c := range m.cards {
		parts = append(parts, m.viewCard(c, i == m.cursor))
	}

	if m.status != "" {
		parts = append(parts, "", m.status)
	}

	parts = append(parts, "", faintStyle.Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m GoalsModel) viewCard(c projection.GoalCard, selected bool) string {
	filled := c.BarWidth * goalBarWidth / 100
	bar := incomeStyle.Render(strings.Repeat("█", filled)) + faintStyle.Render(strings.Repeat("░", goalBarWidth-filled))

	title := c.Name
	if c.Completed {
		title += " " + incomeStyle.Render("✓ reached")
	}

	body := fmt.Sprintf("%s\n%s %s\n%s of %s · %s to go",
		title, bar, c.Percent, c.Saved, c.Target, c.Remaining)

	style := cardStyle
	if selected {
		style = style.BorderForeground(lipgloss.Color("205"))
	}

	return style.Width(goalBarWidth + 12).Render(body)
}

// Messages

type goalResultMsg struct {
	status string
	err    error
}

func (m GoalsModel) addGoalCmd(fields goalFields) tea.Cmd {
	ledger := m.ledger

	return func() tea.Msg {
		target, err := transaction.ParseAmount(fields.target)
		if err != nil {
			return goalResultMsg{err: err}
		}

		saved := decimal.Zero
		if strings.TrimSpace(fields.saved) != "" {
			if saved, err = transaction.ParseAmount(fields.saved); err != nil {
				return goalResultMsg{err: err}
			}
		}

		ctx, cancel := SaveCtx()
		defer cancel()

		g, err := ledger.AddGoal(ctx, goal.CreateParams{Name: fields.name, Target: target, Saved: saved})
		if err != nil {
			return goalResultMsg{err: err}
		}

		return goalResultMsg{status: fmt.Sprintf("Added goal %s.", g.Name)}
	}
}

func (m GoalsModel) addMoneyCmd(id, amount string) tea.Cmd {
	ledger := m.ledger

	return func() tea.Msg {
		d, err := transaction.ParseAmount(amount)
		if err != nil {
			return goalResultMsg{err: err}
		}

		ctx, cancel := SaveCtx()
		defer cancel()

		g, err := ledger.AddMoneyToGoal(ctx, id, d)
		if err != nil {
			return goalResultMsg{err: err}
		}

		status := fmt.Sprintf("Saved %s towards %s.", projection.Currency(d), g.Name)
		if goal.Completed(g) {
			status = fmt.Sprintf("%s reached!", g.Name)
		}

		return goalResultMsg{status: status}
	}
}

func (m GoalsModel) deleteGoalCmd(id string) tea.Cmd {
	ledger := m.ledger

	return func() tea.Msg {
		ctx, cancel := SaveCtx()
		defer cancel()

		if err := ledger.DeleteGoal(ctx, id); err != nil {
			return goalResultMsg{err: err}
		}

		return goalResultMsg{status: "Goal deleted."}
	}
}
