package cgd

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

type amountMode int

const (
	// amountSingle is one signed column, e.g. "Montante" = "-10,00".
	amountSingle amountMode = iota
	// amountSplit is a "Débito" and a "Crédito" column.
	amountSplit
)

// Profile describes the column layout of one CGD export format.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	AmountMode amountMode
	AmountCol  string
	DebitCol   string
	CreditCol  string
}

func (p *Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	if p.AmountMode == amountSplit {
		return append(cols, p.DebitCol, p.CreditCol)
	}

	return append(cols, p.AmountCol)
}

func (p *Profile) matches(cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func (p *Profile) amount(cols colIndex, row []string) (decimal.Decimal, transaction.Type, bool) {
	if p.AmountMode == amountSingle {
		return signed(cellValue(row, cols[p.AmountCol]))
	}

	if d, t, ok := unsigned(cellValue(row, cols[p.DebitCol]), transaction.TypeExpense); ok {
		return d, t, true
	}

	return unsigned(cellValue(row, cols[p.CreditCol]), transaction.TypeIncome)
}

// profiles are tried in order, most specific first.
var profiles = []Profile{
	{
		Name:       "cartão",
		DateCol:    "Data",
		DescCol:    "Descrição",
		AmountMode: amountSplit,
		DebitCol:   "Débito",
		CreditCol:  "Crédito",
	},
	{
		Name:       "extrato",
		DateCol:    "Data mov.",
		DescCol:    "Descrição",
		AmountMode: amountSingle,
		AmountCol:  "Movimento",
	},
	{
		Name:       "conta",
		DateCol:    "Data mov.",
		DescCol:    "Descrição",
		AmountMode: amountSingle,
		AmountCol:  "Montante",
	},
}
