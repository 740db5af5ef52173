package view

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finvoice/internal/importer"
	"github.com/MrJamesThe3rd/finvoice/internal/matching"
	"github.com/MrJamesThe3rd/finvoice/internal/tracker"
)

const maxRejectedShown = 10

type importState int

const (
	importStateBankSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	ledger          *tracker.Service
	importService   *importer.Service
	matchingService *matching.Service

	state        importState
	filePicker   filepicker.Model
	selectedBank importer.Bank
	bankOptions  []importer.Bank
	bankCursor   int

	result importResultMsg
	status string
}

func NewImportModel(ledger *tracker.Service, impSvc *importer.Service, matchSvc *matching.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		ledger:          ledger,
		importService:   impSvc,
		matchingService: matchSvc,
		filePicker:      fp,
		bankOptions:     importer.Banks(),
	}
}

func (m ImportModel) Title() string { return "Import Transactions" }

func (m ImportModel) ShortHelp() string {
	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateBankSelect {
			return m.updateBankSelect(msg)
		}

	case importResultMsg:
		m.state = importStateResult
		m.result = msg

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d transactions.", msg.added)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(m.selectedBank, path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateBankSelect
		return m, nil
	case importStateResult:
		m.state = importStateBankSelect
		m.result = importResultMsg{}
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateBankSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.bankCursor > 0 {
			m.bankCursor--
		}
	case tea.KeyDown:
		if m.bankCursor < len(m.bankOptions)-1 {
			m.bankCursor++
		}
	case tea.KeyEnter:
		m.selectedBank = m.bankOptions[m.bankCursor]
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateBankSelect:
		return m.viewBankSelect()
	case importStateFilePick:
		return m.viewFilePick()
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewBankSelect() string {
	s := "Select statement format:\n\n"

	for i, bank := range m.bankOptions {
		cursor := " "
		if i == m.bankCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, string(bank))
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewFilePick() string {
	return lipgloss.NewStyle().Padding(1).Render(
		fmt.Sprintf("Select file to import (%s):\n\n%s", m.selectedBank, m.filePicker.View()),
	)
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.result.err != nil {
		return style.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	var sb strings.Builder

	sb.WriteString(incomeStyle.Render(m.status))

	if n := len(m.result.rejected); n > 0 {
		fmt.Fprintf(&sb, "\n\nSkipped %d rows:\n", n)

		for _, r := range m.result.rejected[:min(n, maxRejectedShown)] {
			sb.WriteString(faintStyle.Render("  "+r) + "\n")
		}

		if n > maxRejectedShown {
			fmt.Fprintf(&sb, "  ... and %d more\n", n-maxRejectedShown)
		}
	}

	sb.WriteString("\n\n(Esc to go back)")

	return style.Render(sb.String())
}

// Messages

type importResultMsg struct {
	added    int
	rejected []string
	err      error
}

func (m ImportModel) importCmd(bank importer.Bank, path string) tea.Cmd {
	ledger, impSvc, matchSvc := m.ledger, m.importService, m.matchingService

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		params, err := impSvc.Import(bank, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		matchSvc.Fill(params)

		ctx, cancel := SaveCtx()
		defer cancel()

		result := ledger.ImportTransactions(ctx, params)

		msg := importResultMsg{added: len(result.Added)}
		for _, r := range result.Rejected {
			msg.rejected = append(msg.rejected, fmt.Sprintf("entry %d: %v", r.Index+1, r.Err))
		}

		return msg
	}
}
