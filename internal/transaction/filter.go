package transaction

import "time"

// Filter narrows a transaction listing. Nil fields match everything; the
// date bounds are inclusive calendar days.
type Filter struct {
	Type      *Type
	StartDate *time.Time
	EndDate   *time.Time
}

func (f Filter) Match(tx *Transaction) bool {
	if f.Type != nil && tx.Type != *f.Type {
		return false
	}

	if f.StartDate != nil && tx.Date.Before(DateOnly(*f.StartDate)) {
		return false
	}

	if f.EndDate != nil && tx.Date.After(DateOnly(*f.EndDate)) {
		return false
	}

	return true
}

// Apply returns the matching transactions, preserving order.
func (f Filter) Apply(txs []*Transaction) []*Transaction {
	out := make([]*Transaction, 0, len(txs))

	for _, tx := range txs {
		if f.Match(tx) {
			out = append(out, tx)
		}
	}

	return out
}
