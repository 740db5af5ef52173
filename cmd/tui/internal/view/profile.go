package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finvoice/internal/projection"
	"github.com/MrJamesThe3rd/finvoice/internal/tracker"
)

type ProfileModel struct {
	CommonModel
	ledger *tracker.Service

	stats   projection.ProfileStats
	form    *huh.Form
	name    *string
	editing bool
	status  string
}

func NewProfileModel(ledger *tracker.Service) ProfileModel {
	m := ProfileModel{ledger: ledger}
	m.project()

	return m
}

func (m ProfileModel) Title() string { return "Profile" }

func (m ProfileModel) ShortHelp() string {
	if m.editing {
		return "Esc: cancel | Enter: save"
	}

	return "Esc: back | e: edit name"
}

func (m ProfileModel) Init() tea.Cmd {
	return nil
}

func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LedgerChangedMsg:
		m.project()
		return m, nil

	case profileResultMsg:
		m.editing = false
		m.form = nil
		m.status = "Name updated."

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.project()

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			if !m.editing {
				return m, Back
			}

			m.editing = false
			m.form = nil

			return m, nil
		}

		if !m.editing && msg.String() == "e" {
			return m.startEditing()
		}
	}

	if !m.editing {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveNameCmd(*m.name)
}

func (m ProfileModel) startEditing() (tea.Model, tea.Cmd) {
	m.name = new(m.stats.Name)
	m.status = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(m.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.editing = true

	return m, m.form.Init()
}

func (m *ProfileModel) project() {
	m.stats = projection.BuildProfileStats(m.ledger.Snapshot(), time.Now())
}

func (m ProfileModel) View() string {
	if m.editing && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	stats := cardStyle.Render(fmt.Sprintf(
		"Name:          %s\nMember since:  %s\nDays active:   %d\nTransactions:  %d\nGoals:         %d",
		m.stats.Name, m.stats.JoinDate, m.stats.DaysActive, m.stats.TransactionCount, m.stats.GoalCount,
	))

	parts := []string{headerStyle.Render(m.Title()), "", stats}
	if m.status != "" {
		parts = append(parts, "", m.status)
	}

	parts = append(parts, "", faintStyle.Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

type profileResultMsg struct {
	err error
}

func (m ProfileModel) saveNameCmd(name string) tea.Cmd {
	ledger := m.ledger

	return func() tea.Msg {
		ctx, cancel := SaveCtx()
		defer cancel()

		_, err := ledger.EditProfileName(ctx, name)

		return profileResultMsg{err: err}
	}
}
