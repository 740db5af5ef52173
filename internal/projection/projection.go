// Package projection turns ledger state into display-ready values. Nothing
// here mutates or validates; callers re-project after every change.
package projection

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finvoice/internal/goal"
	"github.com/MrJamesThe3rd/finvoice/internal/ledger"
	"github.com/MrJamesThe3rd/finvoice/internal/profile"
	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

type Dashboard struct {
	Income       string
	Expenses     string
	Balance      string
	BalanceClass transaction.Sign
	Breakdown    []BreakdownSlice
}

// BreakdownSlice is one receiver's share of all expenses.
type BreakdownSlice struct {
	Receiver string
	Amount   string
	Share    float64 // percent of total expenses
}

type TransactionRow struct {
	ID          string
	Date        string
	Amount      string
	Receiver    string
	Type        transaction.Type
	Description string
	Income      bool
}

type GoalCard struct {
	ID        string
	Name      string
	Percent   string
	BarWidth  int // 0..100
	Saved     string
	Target    string
	Remaining string
	Completed bool
}

type ProfileStats struct {
	Name             string
	JoinDate         string
	TransactionCount int
	GoalCount        int
	DaysActive       int
}

func BuildDashboard(state *ledger.State) Dashboard {
	txs := state.Transactions
	expenses := transaction.TotalExpenses(txs)
	balance := transaction.Balance(txs)

	d := Dashboard{
		Income:       Currency(transaction.TotalIncome(txs)),
		Expenses:     Currency(expenses),
		Balance:      Currency(balance),
		BalanceClass: transaction.BalanceSign(balance),
	}

	for _, rt := range transaction.ExpensesByReceiver(txs) {
		share := 0.0
		if expenses.IsPositive() {
			share = rt.Total.Div(expenses).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}

		d.Breakdown = append(d.Breakdown, BreakdownSlice{
			Receiver: rt.Receiver,
			Amount:   Currency(rt.Total),
			Share:    share,
		})
	}

	return d
}

func TransactionRows(txs []*transaction.Transaction) []TransactionRow {
	rows := make([]TransactionRow, len(txs))

	for i, tx := range txs {
		income := tx.Type == transaction.TypeIncome

		rows[i] = TransactionRow{
			ID:          tx.ID,
			Date:        tx.Date.Format(dateLayout),
			Amount:      SignedCurrency(tx.Amount, income),
			Receiver:    tx.Receiver,
			Type:        tx.Type,
			Description: tx.Description,
			Income:      income,
		}
	}

	return rows
}

func GoalCards(goals []*goal.Goal) []GoalCard {
	cards := make([]GoalCard, len(goals))

	for i, g := range goals {
		pct := goal.Percent(g)

		cards[i] = GoalCard{
			ID:        g.ID,
			Name:      g.Name,
			Percent:   fmt.Sprintf("%.1f%%", pct),
			BarWidth:  int(pct),
			Saved:     Currency(g.Saved),
			Target:    Currency(g.Target),
			Remaining: Currency(goal.Remaining(g)),
			Completed: goal.Completed(g),
		}
	}

	return cards
}

func BuildProfileStats(state *ledger.State, now time.Time) ProfileStats {
	return ProfileStats{
		Name:             state.Profile.Name,
		JoinDate:         state.Profile.JoinDate.Format(dateLayout),
		TransactionCount: len(state.Transactions),
		GoalCount:        len(state.Goals),
		DaysActive:       profile.DaysActive(state.Profile.JoinDate, now),
	}
}
