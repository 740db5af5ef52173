//go:build container
// +build container

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MrJamesThe3rd/finvoice/internal/database"
	"github.com/MrJamesThe3rd/finvoice/internal/kv"
	"github.com/MrJamesThe3rd/finvoice/internal/kv/postgres"
)

func startPostgres(t *testing.T) *postgres.Store {
	t.Helper()

	ctx := context.Background()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_PASSWORD": "finvoice",
				"POSTGRES_DB":       "finvoice",
			},
			// The server logs readiness once for the init run and again after restart.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Terminate(context.Background())
	})

	host, err := c.Host(ctx)
	require.NoError(t, err)

	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://postgres:finvoice@%s:%s/finvoice?sslmode=disable", host, port.Port())

	db, err := database.New(ctx, connStr)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	s := postgres.New(db)
	require.NoError(t, s.EnsureSchema(ctx))

	return s
}

func TestStore(t *testing.T) {
	s := startPostgres(t)
	ctx := context.Background()

	t.Run("EnsureSchemaIsIdempotent", func(t *testing.T) {
		require.NoError(t, s.EnsureSchema(ctx))
	})

	t.Run("GetMissingKey", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("PutThenGet", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "ledger", []byte(`{"version":1}`)))

		got, err := s.Get(ctx, "ledger")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"version":1}`), got)
	})

	t.Run("PutOverwritesExistingKey", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "profile", []byte("first")))
		require.NoError(t, s.Put(ctx, "profile", []byte("second")))

		got, err := s.Get(ctx, "profile")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), got)
	})

	t.Run("EmptyValueIsStored", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "empty", []byte{}))

		got, err := s.Get(ctx, "empty")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
