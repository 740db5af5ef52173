// Package kv defines the key-value boundary the ledger is persisted through.
// Each key holds one opaque blob that is always replaced as a whole.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

//go:generate mockgen -source=kv.go -destination=kv_mock.go -package=kv
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
