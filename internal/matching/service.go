package matching

import (
	"strings"

	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=history_mock.go -package=matching
type History interface {
	Transactions(filter transaction.Filter) []*transaction.Transaction
}

type Service struct {
	history History
}

func NewService(history History) *Service {
	return &Service{history: history}
}

// Suggest returns the description last used for receiver, ignoring case.
// Returns empty string if the receiver has never been given a real one.
func (s *Service) Suggest(receiver string) string {
	receiver = strings.TrimSpace(receiver)
	if receiver == "" {
		return ""
	}

	// newest first, so the first hit is the most recent
	for _, tx := range s.history.Transactions(transaction.Filter{}) {
		if !strings.EqualFold(tx.Receiver, receiver) {
			continue
		}

		if tx.Description == "" || tx.Description == transaction.DefaultDescription {
			continue
		}

		return tx.Description
	}

	return ""
}

// Fill sets a suggested description on every params entry that has none.
func (s *Service) Fill(params []transaction.CreateParams) {
	for i := range params {
		if strings.TrimSpace(params[i].Description) != "" {
			continue
		}

		params[i].Description = s.Suggest(params[i].Receiver)
	}
}
