package backend_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finvoice/internal/config"
	"github.com/MrJamesThe3rd/finvoice/internal/kv/backend"
)

func TestOpen(t *testing.T) {
	type testCase struct {
		name    string
		backend config.Backend
		wantErr bool
	}

	tests := []testCase{
		{name: "File", backend: config.BackendFile},
		{name: "Memory", backend: config.BackendMemory},
		{name: "Unknown", backend: "redis", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Store.Backend = tt.backend
			cfg.Store.DataDir = filepath.Join(t.TempDir(), "data")

			ctx := context.Background()

			s, closeFn, err := backend.Open(ctx, cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			defer closeFn()

			require.NoError(t, s.Put(ctx, "finvoice_profile", []byte(`{}`)))

			got, err := s.Get(ctx, "finvoice_profile")
			require.NoError(t, err)
			assert.Equal(t, `{}`, string(got))
		})
	}
}

func TestOpen_FileWritesIntoDataDir(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Backend = config.BackendFile
	cfg.Store.DataDir = t.TempDir()

	s, _, err := backend.Open(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "finvoice_goals", []byte(`[]`)))

	_, err = os.Stat(filepath.Join(cfg.Store.DataDir, "finvoice_goals.json"))
	assert.NoError(t, err)
}
