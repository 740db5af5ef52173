package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is implemented by every screen reachable from the menu.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// LedgerChangedMsg tells the active screen to re-project from the ledger.
type LedgerChangedMsg struct{}
