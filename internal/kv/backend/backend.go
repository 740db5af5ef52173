// Package backend opens the kv.Store selected by configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/finvoice/internal/config"
	"github.com/MrJamesThe3rd/finvoice/internal/database"
	"github.com/MrJamesThe3rd/finvoice/internal/kv"
	"github.com/MrJamesThe3rd/finvoice/internal/kv/file"
	"github.com/MrJamesThe3rd/finvoice/internal/kv/memory"
	"github.com/MrJamesThe3rd/finvoice/internal/kv/postgres"
)

// Open returns the configured store and a func releasing what it holds.
func Open(ctx context.Context, cfg *config.Config) (kv.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Backend {
	case config.BackendFile:
		s, err := file.New(cfg.Store.DataDir)
		if err != nil {
			return nil, nil, err
		}

		return s, noop, nil

	case config.BackendMemory:
		return memory.New(), noop, nil

	case config.BackendPostgres:
		db, err := database.New(ctx, cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		s := postgres.New(db)
		if err := s.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}

		return s, db.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
