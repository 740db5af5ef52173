package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finvoice/internal/matching"
	"github.com/MrJamesThe3rd/finvoice/internal/projection"
	"github.com/MrJamesThe3rd/finvoice/internal/tracker"
	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

type txState int

const (
	txStateTimeframe txState = iota
	txStateList
	txStateAdding
	txStateDescribing
	txStateConfirmDelete
)

// txFields backs the add form. It lives behind a pointer so huh keeps writing
// to the same values while the model is copied between updates.
type txFields struct {
	date        string
	kind        transaction.Type
	amount      string
	receiver    string
	description string
	confirmed   bool
}

type TransactionsModel struct {
	CommonModel
	ledger          *tracker.Service
	matchingService *matching.Service

	state           txState
	timeframePicker TimeframePicker
	table           table.Model
	form            *huh.Form
	fields          *txFields
	rows            []projection.TransactionRow
	pendingDelete   projection.TransactionRow

	filter     transaction.Filter
	period     string
	typeFilter *transaction.Type
	status     string
}

func NewTransactionsModel(ledger *tracker.Service, matchSvc *matching.Service) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 13},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 14},
		{Title: "Receiver", Width: 24},
		{Title: "Description", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return TransactionsModel{
		ledger:          ledger,
		matchingService: matchSvc,
		timeframePicker: NewTimeframePicker(TimeframeThisWeek),
		table:           t,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateTimeframe:
		return "Esc: back | Enter: select"
	case txStateList:
		return "Esc: back | a: add | d: delete | t: type filter | f: timeframe"
	case txStateAdding, txStateDescribing:
		return "Esc: cancel | Enter/Tab: navigate form"
	case txStateConfirmDelete:
		return "Esc: cancel"
	}

	return ""
}

func (m TransactionsModel) Init() tea.Cmd {
	return nil
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.filter = msg.Filter
		m.period = msg.Label
		m.state = txStateList
		m.project()

		return m, nil

	case LedgerChangedMsg:
		if m.state != txStateTimeframe {
			m.project()
		}

		return m, nil

	case txResultMsg:
		m.state = txStateList
		m.form = nil
		m.status = msg.status

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.project()
		m.table.Focus()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case txStateTimeframe:
		return m.updateTimeframe(msg)
	case txStateList:
		return m.updateList(msg)
	case txStateAdding:
		return m.updateAdding(msg)
	case txStateDescribing:
		return m.updateDescribing(msg)
	case txStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			return m.startAdding()
		case "d":
			return m.startDelete()
		case "t":
			m.typeFilter = nextTypeFilter(m.typeFilter)
			m.project()

			return m, nil
		case "f":
			m.state = txStateTimeframe
			m.timeframePicker.Reset()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func nextTypeFilter(current *transaction.Type) *transaction.Type {
	switch {
	case current == nil:
		return new(transaction.TypeIncome)
	case *current == transaction.TypeIncome:
		return new(transaction.TypeExpense)
	}

	return nil
}

func (m TransactionsModel) startAdding() (tea.Model, tea.Cmd) {
	m.fields = &txFields{
		date: time.Now().Format(time.DateOnly),
		kind: transaction.TypeExpense,
	}
	m.status = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fields.date).
				Validate(func(s string) error {
					_, err := transaction.ParseDate(s)
					return err
				}),

			huh.NewSelect[transaction.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", transaction.TypeExpense),
					huh.NewOption("Income", transaction.TypeIncome),
				).
				Value(&m.fields.kind),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.fields.amount).
				Validate(func(s string) error {
					d, err := transaction.ParseAmount(s)
					if err != nil {
						return err
					}

					if d.IsNegative() {
						return fmt.Errorf("amount must not be negative")
					}

					return nil
				}),

			huh.NewInput().
				Key("receiver").
				Title("Receiver").
				Value(&m.fields.receiver).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("receiver cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateAdding
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.cancelled(msg) {
		return m.backToList()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	// Pre-populate description with the last one used for this receiver.
	m.fields.description = m.matchingService.Suggest(m.fields.receiver)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Description("Leave empty for \"" + transaction.DefaultDescription + "\"").
				Value(&m.fields.description),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateDescribing

	return m, m.form.Init()
}

func (m TransactionsModel) updateDescribing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.cancelled(msg) {
		return m.backToList()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.addTxCmd(*m.fields)
}

func (m TransactionsModel) startDelete() (tea.Model, tea.Cmd) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.rows) {
		return m, nil
	}

	m.pendingDelete = m.rows[cursor]
	m.fields = &txFields{}
	m.status = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %s %s to %s?", m.pendingDelete.Date, m.pendingDelete.Amount, m.pendingDelete.Receiver)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.fields.confirmed),
		),
	).WithWidth(60).WithShowHelp(false)

	m.state = txStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.cancelled(msg) {
		return m.backToList()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !m.fields.confirmed {
		return m.backToList()
	}

	return m, m.deleteTxCmd(m.pendingDelete.ID)
}

func (m TransactionsModel) cancelled(msg tea.Msg) bool {
	keyMsg, ok := msg.(tea.KeyMsg)
	return ok && keyMsg.Type == tea.KeyEsc
}

func (m TransactionsModel) backToList() (tea.Model, tea.Cmd) {
	m.state = txStateList
	m.form = nil
	m.table.Focus()

	return m, nil
}

func (m *TransactionsModel) project() {
	filter := m.filter
	filter.Type = m.typeFilter

	m.rows = projection.TransactionRows(m.ledger.Transactions(filter))

	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		rows[i] = table.Row{r.Date, string(r.Type), r.Amount, r.Receiver, r.Description}
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m TransactionsModel) View() string {
	switch m.state {
	case txStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case txStateList:
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				headerStyle.Render(m.Title())+"  "+faintStyle.Render(m.filterLabel()),
				"",
				m.viewTable(),
				m.viewStatus(),
				faintStyle.Render(m.ShortHelp()),
			),
		)

	case txStateAdding, txStateDescribing, txStateConfirmDelete:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	return ""
}

func (m TransactionsModel) viewTable() string {
	if len(m.rows) == 0 {
		return faintStyle.Render("No transactions found.") + "\n"
	}

	return m.table.View() + "\n"
}

func (m TransactionsModel) viewStatus() string {
	if m.status == "" {
		return ""
	}

	return m.status + "\n"
}

func (m TransactionsModel) filterLabel() string {
	kind := "all types"
	if m.typeFilter != nil {
		kind = string(*m.typeFilter)
	}

	return m.period + " · " + kind
}

// Messages

type txResultMsg struct {
	status string
	err    error
}

func (m TransactionsModel) addTxCmd(fields txFields) tea.Cmd {
	ledger := m.ledger

	return func() tea.Msg {
		date, err := transaction.ParseDate(fields.date)
		if err != nil {
			return txResultMsg{err: err}
		}

		amount, err := transaction.ParseAmount(fields.amount)
		if err != nil {
			return txResultMsg{err: err}
		}

		ctx, cancel := SaveCtx()
		defer cancel()

		tx, err := ledger.AddTransaction(ctx, transaction.CreateParams{
			Date:        date,
			Amount:      amount,
			Receiver:    fields.receiver,
			Type:        fields.kind,
			Description: fields.description,
		})
		if err != nil {
			return txResultMsg{err: err}
		}

		return txResultMsg{status: fmt.Sprintf("Added %s %s.", strings.ToLower(string(tx.Type)), projection.Currency(tx.Amount))}
	}
}

func (m TransactionsModel) deleteTxCmd(id string) tea.Cmd {
	ledger := m.ledger

	return func() tea.Msg {
		ctx, cancel := SaveCtx()
		defer cancel()

		if err := ledger.DeleteTransaction(ctx, id); err != nil {
			return txResultMsg{err: err}
		}

		return txResultMsg{status: "Deleted."}
	}
}
