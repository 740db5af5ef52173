package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/finvoice/internal/goal"
	"github.com/MrJamesThe3rd/finvoice/internal/kv"
	"github.com/MrJamesThe3rd/finvoice/internal/ledger"
	"github.com/MrJamesThe3rd/finvoice/internal/profile"
	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

const (
	KeyTransactions = "finvoice_transactions"
	KeyGoals        = "finvoice_goals"
	KeyProfile      = "finvoice_profile"
)

const DefaultProfileName = "Your Name"

// Store maps the ledger state onto three independent blobs.
type Store struct {
	kv          kv.Store
	defaultName string
	now         func() time.Time
}

type Option func(*Store)

// WithDefaultName sets the profile name used before the user picks one.
func WithDefaultName(name string) Option {
	return func(s *Store) { s.defaultName = name }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:          backend,
		defaultName: DefaultProfileName,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load never fails. Every blob that is missing or cannot be decoded is
// replaced by that entity's default without affecting the other two.
// A missing profile is written back at once so the join date sticks.
func (s *Store) Load(ctx context.Context) *ledger.State {
	state := &ledger.State{
		Transactions: []*transaction.Transaction{},
		Goals:        []*goal.Goal{},
		Profile:      profile.New(s.defaultName, s.now()),
	}

	if txs, ok := loadBlob(ctx, s.kv, KeyTransactions, decodeTransactions); ok {
		state.Transactions = txs
	}

	if goals, ok := loadBlob(ctx, s.kv, KeyGoals, decodeGoals); ok {
		state.Goals = goals
	}

	data, err := s.kv.Get(ctx, KeyProfile)

	switch {
	case errors.Is(err, kv.ErrNotFound):
		if err := s.put(ctx, KeyProfile, toProfileRecord(state.Profile)); err != nil {
			slog.Warn("failed to persist initial profile", "error", err)
		}
	case err != nil:
		slog.Warn("failed to read blob, using default", "key", KeyProfile, "error", err)
	default:
		p, err := decodeProfile(data)
		if err != nil {
			slog.Warn("corrupt blob, using default", "key", KeyProfile, "error", err)
			break
		}

		state.Profile = p
	}

	return state
}

// Save overwrites all three blobs. Each write is independent; every failure
// is reported.
func (s *Store) Save(ctx context.Context, state *ledger.State) error {
	txs := make([]transactionRecord, len(state.Transactions))
	for i, tx := range state.Transactions {
		txs[i] = toTransactionRecord(tx)
	}

	goals := make([]goalRecord, len(state.Goals))
	for i, g := range state.Goals {
		goals[i] = toGoalRecord(g)
	}

	return errors.Join(
		s.put(ctx, KeyTransactions, txs),
		s.put(ctx, KeyGoals, goals),
		s.put(ctx, KeyProfile, toProfileRecord(state.Profile)),
	)
}

func (s *Store) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	if err := s.kv.Put(ctx, key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	return nil
}

func loadBlob[T any](ctx context.Context, backend kv.Store, key string, decode func([]byte) (T, error)) (T, bool) {
	var zero T

	data, err := backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			slog.Warn("failed to read blob, using default", "key", key, "error", err)
		}

		return zero, false
	}

	v, err := decode(data)
	if err != nil {
		slog.Warn("corrupt blob, using default", "key", key, "error", err)
		return zero, false
	}

	return v, true
}

func decodeTransactions(data []byte) ([]*transaction.Transaction, error) {
	var records []transactionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	txs := make([]*transaction.Transaction, 0, len(records))

	for _, r := range records {
		tx, err := r.toTransaction()
		if err != nil {
			return nil, err
		}

		txs = append(txs, tx)
	}

	return txs, nil
}

func decodeGoals(data []byte) ([]*goal.Goal, error) {
	var records []goalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	goals := make([]*goal.Goal, 0, len(records))

	for _, r := range records {
		g, err := r.toGoal()
		if err != nil {
			return nil, err
		}

		goals = append(goals, g)
	}

	return goals, nil
}

func decodeProfile(data []byte) (profile.Profile, error) {
	var r profileRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return profile.Profile{}, err
	}

	return r.toProfile()
}
