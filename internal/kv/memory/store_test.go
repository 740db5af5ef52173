package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finvoice/internal/kv"
	"github.com/MrJamesThe3rd/finvoice/internal/kv/memory"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	value := []byte("[]")
	require.NoError(t, s.Put(ctx, "finvoice_transactions", value))

	value[0] = 'x'

	got, err := s.Get(ctx, "finvoice_transactions")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got), "stored value must not alias the caller's slice")
}
