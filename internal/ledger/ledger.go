// Package ledger holds the aggregate that the tracker owns and the store
// adapter persists: every transaction, every goal and the profile.
package ledger

import (
	"github.com/MrJamesThe3rd/finvoice/internal/goal"
	"github.com/MrJamesThe3rd/finvoice/internal/profile"
	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

type State struct {
	Transactions []*transaction.Transaction // newest first
	Goals        []*goal.Goal               // insertion order
	Profile      profile.Profile
}

// Pristine reports whether nothing has been recorded yet.
func (s *State) Pristine(defaultName string) bool {
	return len(s.Transactions) == 0 && len(s.Goals) == 0 && s.Profile.Name == defaultName
}

// Clone returns a deep copy that shares no records with s.
func (s *State) Clone() *State {
	c := &State{
		Transactions: make([]*transaction.Transaction, len(s.Transactions)),
		Goals:        make([]*goal.Goal, len(s.Goals)),
		Profile:      s.Profile,
	}

	for i, tx := range s.Transactions {
		cp := *tx
		c.Transactions[i] = &cp
	}

	for i, g := range s.Goals {
		cp := *g
		c.Goals[i] = &cp
	}

	return c
}
