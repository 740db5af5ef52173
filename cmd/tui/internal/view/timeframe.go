package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

// Timeframe is a preset date window offered by the picker.
type Timeframe int

const (
	TimeframeThisWeek Timeframe = iota
	TimeframeLastWeek
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeThisYear
	TimeframeAll
	TimeframeCustom
)

var timeframeLabels = map[Timeframe]string{
	TimeframeThisWeek:  "This Week",
	TimeframeLastWeek:  "Last Week",
	TimeframeThisMonth: "This Month",
	TimeframeLastMonth: "Last Month",
	TimeframeThisYear:  "This Year",
	TimeframeAll:       "All Time",
	TimeframeCustom:    "Custom Range",
}

func (t Timeframe) String() string {
	if label, ok := timeframeLabels[t]; ok {
		return label
	}

	return "Unknown"
}

// Range returns the inclusive calendar days covered by t as of now. Weeks
// start on Monday. It is undefined for TimeframeAll and TimeframeCustom.
func (t Timeframe) Range(now time.Time) (time.Time, time.Time) {
	today := transaction.DateOnly(now)
	sinceMonday := (int(today.Weekday()) + 6) % 7

	switch t {
	case TimeframeThisWeek:
		return today.AddDate(0, 0, -sinceMonday), today
	case TimeframeLastWeek:
		monday := today.AddDate(0, 0, -sinceMonday-7)
		return monday, monday.AddDate(0, 0, 6)
	case TimeframeThisMonth:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), today
	case TimeframeLastMonth:
		first := time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(0, 1, -1)
	case TimeframeThisYear:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), today
	}

	return time.Time{}, time.Time{}
}

// TimeframeSelectedMsg carries the chosen window as a ready-made filter.
// Filter has no date bounds when the user picked All Time.
type TimeframeSelectedMsg struct {
	Filter transaction.Filter
	Label  string
}

func selected(label string, start, end time.Time) tea.Cmd {
	return func() tea.Msg {
		return TimeframeSelectedMsg{
			Filter: transaction.Filter{StartDate: &start, EndDate: &end},
			Label:  label,
		}
	}
}

// TimeframePicker lets the user choose a preset or type a custom range.
type TimeframePicker struct {
	custom   bool
	selected Timeframe
	minFrame Timeframe
	now      func() time.Time

	inputs     [2]textinput.Model
	focusIndex int

	err error
}

// NewTimeframePicker offers every preset from minFrame onwards.
func NewTimeframePicker(minFrame Timeframe) TimeframePicker {
	newInput := func(prompt string) textinput.Model {
		in := textinput.New()
		in.Placeholder = "YYYY-MM-DD"
		in.CharLimit = 10
		in.Width = 12
		in.Prompt = prompt

		return in
	}

	return TimeframePicker{
		selected: minFrame,
		minFrame: minFrame,
		now:      time.Now,
		inputs:   [2]textinput.Model{newInput("From: "), newInput("To:   ")},
	}
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)

	switch {
	case ok && m.custom:
		return m.updateCustom(keyMsg)
	case ok:
		return m.updateSelect(keyMsg)
	case m.custom:
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selected > m.minFrame {
			m.selected--
		}
	case "down", "j":
		if m.selected < TimeframeCustom {
			m.selected++
		}
	case "enter":
		switch m.selected {
		case TimeframeCustom:
			m.custom = true
			m.focus(0)

			return m, textinput.Blink
		case TimeframeAll:
			return m, func() tea.Msg {
				return TimeframeSelectedMsg{Label: TimeframeAll.String()}
			}
		}

		start, end := m.selected.Range(m.now())

		return m, selected(m.selected.String(), start, end)
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focus((m.focusIndex + 1) % len(m.inputs))
		return m, textinput.Blink

	case "enter":
		start, end, err := m.customRange()
		if err != nil {
			m.err = err
			return m, nil
		}

		m.err = nil
		label := fmt.Sprintf("%s to %s", start.Format(time.DateOnly), end.Format(time.DateOnly))

		return m, selected(label, start, end)

	case "esc":
		m.custom = false
		m.err = nil

		return m, nil
	}

	return m.updateInputs(msg)
}

func (m TimeframePicker) customRange() (time.Time, time.Time, error) {
	start, err := transaction.ParseDate(m.inputs[0].Value())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}

	end, err := transaction.ParseDate(m.inputs[1].Value())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date is before start date")
	}

	return start, end, nil
}

func (m *TimeframePicker) focus(i int) {
	m.focusIndex = i

	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
			continue
		}

		m.inputs[j].Blur()
	}
}

func (m TimeframePicker) updateInputs(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m TimeframePicker) View() string {
	var sb strings.Builder

	if m.custom {
		fmt.Fprintf(&sb, "Enter Custom Range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)",
			m.inputs[0].View(), m.inputs[1].View())
	} else {
		sb.WriteString("Select Timeframe:\n\n")

		for tf := m.minFrame; tf <= TimeframeCustom; tf++ {
			line := "  " + tf.String()
			if tf == m.selected {
				line = headerStyle.Render("> " + tf.String())
			}

			sb.WriteString(line + "\n")
		}

		sb.WriteString("\n(Enter to select, Esc to back)")
	}

	if m.err != nil {
		sb.WriteString("\n\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return sb.String()
}

// IsSelecting reports whether the picker shows the preset list rather than
// the custom range inputs.
func (m TimeframePicker) IsSelecting() bool {
	return !m.custom
}

// Reset returns the picker to its initial selection state.
func (m *TimeframePicker) Reset() {
	m.custom = false
	m.selected = m.minFrame
	m.err = nil

	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
}
