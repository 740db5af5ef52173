package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrJamesThe3rd/finvoice/internal/config"
	finvoiceHttp "github.com/MrJamesThe3rd/finvoice/internal/http"
	dashboardHandler "github.com/MrJamesThe3rd/finvoice/internal/http/dashboard"
	exportHandler "github.com/MrJamesThe3rd/finvoice/internal/http/export"
	goalHandler "github.com/MrJamesThe3rd/finvoice/internal/http/goal"
	importHandler "github.com/MrJamesThe3rd/finvoice/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/finvoice/internal/http/matching"
	profileHandler "github.com/MrJamesThe3rd/finvoice/internal/http/profile"
	txHandler "github.com/MrJamesThe3rd/finvoice/internal/http/transaction"
	"github.com/MrJamesThe3rd/finvoice/internal/importer"
	"github.com/MrJamesThe3rd/finvoice/internal/kv/backend"
	"github.com/MrJamesThe3rd/finvoice/internal/ledger/store"
	"github.com/MrJamesThe3rd/finvoice/internal/matching"
	"github.com/MrJamesThe3rd/finvoice/internal/tracker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kvStore, closeStore, err := backend.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	ledgerStore := store.New(kvStore, store.WithDefaultName(cfg.Profile.DefaultName))

	var (
		ledger          = tracker.NewService(ledgerStore, ledgerStore.Load(ctx), tracker.WithDefaultName(cfg.Profile.DefaultName))
		matchingService = matching.NewService(ledger)
		importService   = importer.NewService()
	)

	ledger.Subscribe(func(e tracker.Event) {
		slog.Info("ledger changed", "event", e.Kind, "id", e.ID)
	})

	go ledger.RunAutoSave(ctx, cfg.AutoSave.Interval)

	router := finvoiceHttp.New(finvoiceHttp.Handlers{
		Transactions: txHandler.NewHandler(ledger),
		Goals:        goalHandler.NewHandler(ledger),
		Profile:      profileHandler.NewHandler(ledger),
		Dashboard:    dashboardHandler.NewHandler(ledger),
		Import:       importHandler.NewHandler(importService, ledger, matchingService),
		Matching:     matchingHandler.NewHandler(matchingService),
		Export:       exportHandler.NewHandler(ledger),
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	serverErr := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr, "backend", cfg.Store.Backend)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}

		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-serverErr:
		if err != nil {
			slog.Error("server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down server", "error", err)
	}

	if err := ledger.Save(shutdownCtx); err != nil {
		slog.Error("failed to save ledger on exit", "error", err)
	}
}
