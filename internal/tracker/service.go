package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finvoice/internal/goal"
	"github.com/MrJamesThe3rd/finvoice/internal/ledger"
	"github.com/MrJamesThe3rd/finvoice/internal/profile"
	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=tracker
type Repository interface {
	Save(ctx context.Context, state *ledger.State) error
}

// Service owns the ledger for the lifetime of the process. Every operation,
// including the save that follows a mutation, runs under one lock, so a save
// always writes the latest state.
type Service struct {
	mu          sync.Mutex
	repo        Repository
	state       *ledger.State
	defaultName string
	now         func() time.Time
	newID       func() string

	obsMu     sync.RWMutex
	observers []Observer
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithDefaultName tells autosave which profile name counts as untouched.
func WithDefaultName(name string) Option {
	return func(s *Service) { s.defaultName = name }
}

func NewService(repo Repository, state *ledger.State, opts ...Option) *Service {
	if state == nil {
		state = &ledger.State{}
	}

	s := &Service{
		repo:        repo,
		state:       state,
		defaultName: "Your Name",
		now:         time.Now,
		newID:       uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Subscribe registers an observer for every applied change.
func (s *Service) Subscribe(o Observer) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	s.observers = append(s.observers, o)
}

// Refresh asks observers to re-project without changing anything, e.g. when
// the UI regains focus.
func (s *Service) Refresh() {
	s.notify(Event{Kind: EventRefreshed})
}

func (s *Service) AddTransaction(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s.mu.Lock()

	tx := params.New(s.nextID(s.hasTransaction))
	s.state.Transactions = slices.Insert(s.state.Transactions, 0, tx)
	s.persist(ctx)

	out := *tx

	s.mu.Unlock()

	s.notify(Event{Kind: EventTransactionAdded, ID: out.ID})

	return &out, nil
}

// ImportResult lists what ImportTransactions stored and what it skipped.
type ImportResult struct {
	Added    []*transaction.Transaction
	Rejected []Rejection
}

// Rejection points at the params entry that failed validation.
type Rejection struct {
	Index int
	Err   error
}

// ImportTransactions adds every valid entry as if AddTransaction had been
// called for each in order, but saves once. Invalid entries are skipped.
func (s *Service) ImportTransactions(ctx context.Context, params []transaction.CreateParams) ImportResult {
	var result ImportResult

	s.mu.Lock()

	for i, p := range params {
		if err := p.Validate(); err != nil {
			result.Rejected = append(result.Rejected, Rejection{Index: i, Err: fmt.Errorf("%w: %w", ErrInvalidInput, err)})
			continue
		}

		tx := p.New(s.nextID(s.hasTransaction))
		s.state.Transactions = slices.Insert(s.state.Transactions, 0, tx)

		out := *tx
		result.Added = append(result.Added, &out)
	}

	if len(result.Added) > 0 {
		s.persist(ctx)
	}

	s.mu.Unlock()

	if len(result.Added) > 0 {
		s.notify(Event{Kind: EventTransactionsImport})
	}

	return result
}

// DeleteTransaction removes the transaction. Unknown ids are ignored.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()

	before := len(s.state.Transactions)
	s.state.Transactions = slices.DeleteFunc(s.state.Transactions, func(tx *transaction.Transaction) bool {
		return tx.ID == id
	})

	deleted := len(s.state.Transactions) != before
	if deleted {
		s.persist(ctx)
	}

	s.mu.Unlock()

	if deleted {
		s.notify(Event{Kind: EventTransactionDeleted, ID: id})
	}

	return nil
}

func (s *Service) AddGoal(ctx context.Context, params goal.CreateParams) (*goal.Goal, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s.mu.Lock()

	g := params.New(s.nextID(s.hasGoal), s.now())
	s.state.Goals = append(s.state.Goals, g)
	s.persist(ctx)

	out := *g

	s.mu.Unlock()

	s.notify(Event{Kind: EventGoalAdded, ID: out.ID})

	return &out, nil
}

// AddMoneyToGoal increases the saved amount. There is no upper bound.
func (s *Service) AddMoneyToGoal(ctx context.Context, id string, amount decimal.Decimal) (*goal.Goal, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidInput)
	}

	s.mu.Lock()

	idx := slices.IndexFunc(s.state.Goals, func(g *goal.Goal) bool { return g.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}

	g := s.state.Goals[idx]
	g.Saved = g.Saved.Add(amount)
	s.persist(ctx)

	out := *g

	s.mu.Unlock()

	s.notify(Event{Kind: EventGoalFunded, ID: id})

	return &out, nil
}

// DeleteGoal removes the goal. Unknown ids are ignored.
func (s *Service) DeleteGoal(ctx context.Context, id string) error {
	s.mu.Lock()

	before := len(s.state.Goals)
	s.state.Goals = slices.DeleteFunc(s.state.Goals, func(g *goal.Goal) bool {
		return g.ID == id
	})

	deleted := len(s.state.Goals) != before
	if deleted {
		s.persist(ctx)
	}

	s.mu.Unlock()

	if deleted {
		s.notify(Event{Kind: EventGoalDeleted, ID: id})
	}

	return nil
}

func (s *Service) EditProfileName(ctx context.Context, name string) (profile.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return profile.Profile{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	s.mu.Lock()

	s.state.Profile.Name = name
	s.persist(ctx)

	out := s.state.Profile

	s.mu.Unlock()

	s.notify(Event{Kind: EventProfileUpdated})

	return out, nil
}

// Save writes the current state regardless of whether it changed.
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, s.state); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}

	return nil
}

// RunAutoSave saves every interval until ctx is done. Ticks are skipped while
// nothing has been recorded yet.
func (s *Service) RunAutoSave(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.autoSave(ctx)
		}
	}
}

func (s *Service) autoSave(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Pristine(s.defaultName) {
		return
	}

	if err := s.repo.Save(ctx, s.state); err != nil {
		slog.Error("autosave failed", "error", err)
	}
}

// persist mirrors the state to the repository. The in-memory change stands
// even when the write fails; the next save retries it. Callers hold s.mu.
func (s *Service) persist(ctx context.Context) {
	if err := s.repo.Save(ctx, s.state); err != nil {
		slog.Error("failed to save ledger", "error", err)
	}
}

func (s *Service) notify(e Event) {
	s.obsMu.RLock()
	observers := slices.Clone(s.observers)
	s.obsMu.RUnlock()

	for _, o := range observers {
		o(e)
	}
}

func (s *Service) nextID(taken func(string) bool) string {
	for {
		if id := s.newID(); !taken(id) {
			return id
		}
	}
}

func (s *Service) hasTransaction(id string) bool {
	return slices.ContainsFunc(s.state.Transactions, func(tx *transaction.Transaction) bool { return tx.ID == id })
}

func (s *Service) hasGoal(id string) bool {
	return slices.ContainsFunc(s.state.Goals, func(g *goal.Goal) bool { return g.ID == id })
}
