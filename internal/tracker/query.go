package tracker

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finvoice/internal/goal"
	"github.com/MrJamesThe3rd/finvoice/internal/ledger"
	"github.com/MrJamesThe3rd/finvoice/internal/profile"
	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

// Transactions returns copies of the matching transactions, newest first.
func (s *Service) Transactions(filter transaction.Filter) []*transaction.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := filter.Apply(s.state.Transactions)
	out := make([]*transaction.Transaction, len(matched))

	for i, tx := range matched {
		cp := *tx
		out[i] = &cp
	}

	return out
}

func (s *Service) Transaction(id string) (*transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.state.Transactions, func(tx *transaction.Transaction) bool { return tx.ID == id })
	if idx < 0 {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}

	cp := *s.state.Transactions[idx]

	return &cp, nil
}

// Goals returns copies of every goal in creation order.
func (s *Service) Goals() []*goal.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*goal.Goal, len(s.state.Goals))

	for i, g := range s.state.Goals {
		cp := *g
		out[i] = &cp
	}

	return out
}

func (s *Service) Goal(id string) (*goal.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.state.Goals, func(g *goal.Goal) bool { return g.ID == id })
	if idx < 0 {
		return nil, fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}

	cp := *s.state.Goals[idx]

	return &cp, nil
}

func (s *Service) Profile() profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Profile
}

// Snapshot returns a deep copy of the whole ledger for projection or export.
func (s *Service) Snapshot() *ledger.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

type Summary struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	Balance          decimal.Decimal
	BalanceSign      transaction.Sign
	TransactionCount int
	GoalCount        int
	DaysActive       int
}

func (s *Service) Summary(now time.Time) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance := transaction.Balance(s.state.Transactions)

	return Summary{
		TotalIncome:      transaction.TotalIncome(s.state.Transactions),
		TotalExpenses:    transaction.TotalExpenses(s.state.Transactions),
		Balance:          balance,
		BalanceSign:      transaction.BalanceSign(balance),
		TransactionCount: len(s.state.Transactions),
		GoalCount:        len(s.state.Goals),
		DaysActive:       profile.DaysActive(s.state.Profile.JoinDate, now),
	}
}
