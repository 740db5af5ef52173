package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finvoice/internal/projection"
	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

type Response struct {
	ID            string           `json:"id"`
	Date          string           `json:"date"`
	Amount        decimal.Decimal  `json:"amount"`
	Receiver      string           `json:"receiver"`
	Type          transaction.Type `json:"type"`
	Description   string           `json:"description"`
	DisplayDate   string           `json:"display_date"`
	DisplayAmount string           `json:"display_amount"`
}

// ToResponse is shared with the import handler, which echoes what it stored.
func ToResponse(tx *transaction.Transaction) Response {
	row := projection.TransactionRows([]*transaction.Transaction{tx})[0]

	return Response{
		ID:            tx.ID,
		Date:          tx.Date.Format(time.DateOnly),
		Amount:        tx.Amount,
		Receiver:      tx.Receiver,
		Type:          tx.Type,
		Description:   tx.Description,
		DisplayDate:   row.Date,
		DisplayAmount: row.Amount,
	}
}

func ToResponseList(txs []*transaction.Transaction) []Response {
	resp := make([]Response, len(txs))
	for i, tx := range txs {
		resp[i] = ToResponse(tx)
	}

	return resp
}
