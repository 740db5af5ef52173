package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/finvoice/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/finvoice/internal/config"
	"github.com/MrJamesThe3rd/finvoice/internal/export"
	"github.com/MrJamesThe3rd/finvoice/internal/importer"
	"github.com/MrJamesThe3rd/finvoice/internal/kv/backend"
	"github.com/MrJamesThe3rd/finvoice/internal/ledger/store"
	"github.com/MrJamesThe3rd/finvoice/internal/matching"
	"github.com/MrJamesThe3rd/finvoice/internal/tracker"
)

type model struct {
	appName         string
	ledger          *tracker.Service
	matchingService *matching.Service
	importService   *importer.Service
	exportService   *export.Service
	changes         <-chan struct{}

	currentView View

	dashboardView    view.DashboardModel
	transactionsView view.TransactionsModel
	goalsView        view.GoalsModel
	profileView      view.ProfileModel
	importView       view.ImportModel
	exportView       view.ExportModel
}

type View int

const (
	ViewMenu         View = 0
	ViewDashboard    View = 1
	ViewTransactions View = 2
	ViewGoals        View = 3
	ViewProfile      View = 4
	ViewImport       View = 5
	ViewExport       View = 6
)

func initialModel(ledger *tracker.Service, appName string) model {
	changes := make(chan struct{}, 1)

	// Coalesce bursts into a single pending re-projection.
	ledger.Subscribe(func(tracker.Event) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	matchSvc := matching.NewService(ledger)
	impSvc := importer.NewService()
	expSvc := export.NewService(ledger)

	return model{
		appName:         appName,
		ledger:          ledger,
		matchingService: matchSvc,
		importService:   impSvc,
		exportService:   expSvc,
		changes:         changes,
		currentView:     ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return view.LedgerChangedMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.FocusMsg:
		m.ledger.Refresh()
		return m, nil
	case view.LedgerChangedMsg:
		cmd = m.updateCurrent(msg)
		return m, tea.Batch(cmd, m.waitForChange())
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	return m, m.updateCurrent(msg)
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		m.currentView = ViewDashboard
		m.dashboardView = view.NewDashboardModel(m.ledger)

		return m, m.dashboardView.Init()
	case "2":
		m.currentView = ViewTransactions
		m.transactionsView = view.NewTransactionsModel(m.ledger, m.matchingService)

		return m, m.transactionsView.Init()
	case "3":
		m.currentView = ViewGoals
		m.goalsView = view.NewGoalsModel(m.ledger)

		return m, m.goalsView.Init()
	case "4":
		m.currentView = ViewProfile
		m.profileView = view.NewProfileModel(m.ledger)

		return m, m.profileView.Init()
	case "5":
		m.currentView = ViewImport
		m.importView = view.NewImportModel(m.ledger, m.importService, m.matchingService)

		return m, m.importView.Init()
	case "6":
		m.currentView = ViewExport
		m.exportView = view.NewExportModel(m.ledger, m.exportService)

		return m, m.exportView.Init()
	}

	return m, nil
}

// updateCurrent forwards msg to the active screen. It mutates m through the
// pointer receiver so callers can batch the returned command.
func (m *model) updateCurrent(msg tea.Msg) tea.Cmd {
	var (
		newModel tea.Model
		cmd      tea.Cmd
	)

	switch m.currentView {
	case ViewDashboard:
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewTransactions:
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewGoals:
		newModel, cmd = m.goalsView.Update(msg)
		m.goalsView = newModel.(view.GoalsModel)
	case ViewProfile:
		newModel, cmd = m.profileView.Update(msg)
		m.profileView = newModel.(view.ProfileModel)
	case ViewImport:
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return cmd
}

// active returns the screen behind currentView, nil for the menu.
func (m model) active() view.View {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboardView
	case ViewTransactions:
		return m.transactionsView
	case ViewGoals:
		return m.goalsView
	case ViewProfile:
		return m.profileView
	case ViewImport:
		return m.importView
	case ViewExport:
		return m.exportView
	}

	return nil
}

func (m model) View() string {
	if m.currentView == ViewMenu {
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Dashboard\n" +
				"2. Transactions\n" +
				"3. Savings Goals\n" +
				"4. Profile\n" +
				"5. Import Statement\n" +
				"6. Export Transactions\n\n" +
				"q. Quit",
		)
	}

	if v := m.active(); v != nil {
		return v.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())

	kvStore, closeStore, err := backend.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}

	ledgerStore := store.New(kvStore, store.WithDefaultName(cfg.Profile.DefaultName))
	ledger := tracker.NewService(ledgerStore, ledgerStore.Load(ctx), tracker.WithDefaultName(cfg.Profile.DefaultName))

	go ledger.RunAutoSave(ctx, cfg.AutoSave.Interval)

	p := tea.NewProgram(initialModel(ledger, cfg.App.Name), tea.WithAltScreen(), tea.WithReportFocus())
	_, runErr := p.Run()

	cancel()

	if err := ledger.Save(context.Background()); err != nil {
		slog.Error("failed to save ledger on exit", "error", err)
	}

	if err := closeStore(); err != nil {
		slog.Error("failed to close store", "error", err)
	}

	if runErr != nil {
		slog.Error("failed to run TUI", "error", runErr)
		os.Exit(1)
	}
}
