package transaction

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Sign classifies a balance for display.
type Sign string

const (
	SignPositive Sign = "positive"
	SignNegative Sign = "negative"
	SignZero     Sign = "zero"
)

func TotalIncome(txs []*Transaction) decimal.Decimal {
	return sumOf(txs, TypeIncome)
}

func TotalExpenses(txs []*Transaction) decimal.Decimal {
	return sumOf(txs, TypeExpense)
}

func Balance(txs []*Transaction) decimal.Decimal {
	return TotalIncome(txs).Sub(TotalExpenses(txs))
}

func BalanceSign(balance decimal.Decimal) Sign {
	switch balance.Sign() {
	case 1:
		return SignPositive
	case -1:
		return SignNegative
	}

	return SignZero
}

func sumOf(txs []*Transaction, t Type) decimal.Decimal {
	total := decimal.Zero

	for _, tx := range txs {
		if tx.Type == t {
			total = total.Add(tx.Amount)
		}
	}

	return total
}

// ReceiverTotal is the expense sum for one receiver.
type ReceiverTotal struct {
	Receiver string
	Total    decimal.Decimal
}

// ExpensesByReceiver groups expenses by receiver, ignoring case. The first
// spelling seen is kept. Results are ordered by total, largest first.
func ExpensesByReceiver(txs []*Transaction) []ReceiverTotal {
	index := make(map[string]int)

	var totals []ReceiverTotal

	for _, tx := range txs {
		if tx.Type != TypeExpense {
			continue
		}

		key := strings.ToLower(tx.Receiver)

		i, ok := index[key]
		if !ok {
			index[key] = len(totals)
			totals = append(totals, ReceiverTotal{Receiver: tx.Receiver, Total: tx.Amount})

			continue
		}

		totals[i].Total = totals[i].Total.Add(tx.Amount)
	}

	slices.SortStableFunc(totals, func(a, b ReceiverTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}

		return cmp.Compare(a.Receiver, b.Receiver)
	})

	return totals
}
