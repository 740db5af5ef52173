package transaction_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

func tx(typ transaction.Type, amount string, receiver string) *transaction.Transaction {
	return &transaction.Transaction{
		ID:       receiver + amount,
		Date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.RequireFromString(amount),
		Receiver: receiver,
		Type:     typ,
	}
}

func TestTotals(t *testing.T) {
	type testCase struct {
		name         string
		txs          []*transaction.Transaction
		wantIncome   string
		wantExpenses string
		wantBalance  string
		wantSign     transaction.Sign
	}

	tests := []testCase{
		{
			name:         "Empty",
			wantIncome:   "0",
			wantExpenses: "0",
			wantBalance:  "0",
			wantSign:     transaction.SignZero,
		},
		{
			name: "IncomeAndExpense",
			txs: []*transaction.Transaction{
				tx(transaction.TypeExpense, "200", "Grocer"),
				tx(transaction.TypeIncome, "1000", "Employer"),
			},
			wantIncome:   "1000",
			wantExpenses: "200",
			wantBalance:  "800",
			wantSign:     transaction.SignPositive,
		},
		{
			name: "Overspent",
			txs: []*transaction.Transaction{
				tx(transaction.TypeExpense, "10.10", "Cafe"),
				tx(transaction.TypeExpense, "0.20", "Cafe"),
				tx(transaction.TypeIncome, "5", "Friend"),
			},
			wantIncome:   "5",
			wantExpenses: "10.3",
			wantBalance:  "-5.3",
			wantSign:     transaction.SignNegative,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			income := transaction.TotalIncome(tt.txs)
			expenses := transaction.TotalExpenses(tt.txs)
			balance := transaction.Balance(tt.txs)

			assert.True(t, decimal.RequireFromString(tt.wantIncome).Equal(income), income.String())
			assert.True(t, decimal.RequireFromString(tt.wantExpenses).Equal(expenses), expenses.String())
			assert.True(t, decimal.RequireFromString(tt.wantBalance).Equal(balance), balance.String())
			assert.True(t, income.Sub(expenses).Equal(balance))
			assert.Equal(t, tt.wantSign, transaction.BalanceSign(balance))
		})
	}
}

func TestExpensesByReceiver(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, "20", "Grocer"),
		tx(transaction.TypeIncome, "1000", "Employer"),
		tx(transaction.TypeExpense, "50", "Landlord"),
		tx(transaction.TypeExpense, "35", "grocer"),
		tx(transaction.TypeExpense, "5", "Bakery"),
		tx(transaction.TypeExpense, "5", "Arcade"),
	}

	got := transaction.ExpensesByReceiver(txs)
	require.Len(t, got, 4)

	assert.Equal(t, "Grocer", got[0].Receiver)
	assert.True(t, decimal.NewFromInt(55).Equal(got[0].Total))
	assert.Equal(t, "Landlord", got[1].Receiver)
	assert.Equal(t, "Arcade", got[2].Receiver)
	assert.Equal(t, "Bakery", got[3].Receiver)
}

func TestCreateParams_Validate(t *testing.T) {
	valid := transaction.CreateParams{
		Date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(1000),
		Receiver: "Employer",
		Type:     transaction.TypeIncome,
	}

	type testCase struct {
		name    string
		mutate  func(p *transaction.CreateParams)
		wantErr bool
	}

	tests := []testCase{
		{name: "Valid", mutate: func(p *transaction.CreateParams) {}},
		{name: "ZeroAmount", mutate: func(p *transaction.CreateParams) { p.Amount = decimal.Zero }},
		{name: "MissingDate", mutate: func(p *transaction.CreateParams) { p.Date = time.Time{} }, wantErr: true},
		{name: "NegativeAmount", mutate: func(p *transaction.CreateParams) { p.Amount = decimal.NewFromInt(-1) }, wantErr: true},
		{name: "BlankReceiver", mutate: func(p *transaction.CreateParams) { p.Receiver = "   " }, wantErr: true},
		{name: "UnknownType", mutate: func(p *transaction.CreateParams) { p.Type = "Transfer" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCreateParams_New(t *testing.T) {
	p := transaction.CreateParams{
		Date:     time.Date(2024, 3, 5, 17, 45, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(12),
		Receiver: "  Grocer ",
		Type:     transaction.TypeExpense,
	}

	got := p.New("id-1")

	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got.Date)
	assert.Equal(t, "Grocer", got.Receiver)
	assert.Equal(t, transaction.DefaultDescription, got.Description)
}

func TestParseAmount(t *testing.T) {
	d, err := transaction.ParseAmount(" 19.99 ")
	require.NoError(t, err)
	assert.Equal(t, "19.99", d.String())

	_, err = transaction.ParseAmount("")
	assert.Error(t, err)

	_, err = transaction.ParseAmount("12,50")
	assert.Error(t, err)
}

func TestParseType(t *testing.T) {
	got, err := transaction.ParseType("income")
	require.NoError(t, err)
	assert.Equal(t, transaction.TypeIncome, got)

	got, err = transaction.ParseType("Expense")
	require.NoError(t, err)
	assert.Equal(t, transaction.TypeExpense, got)

	_, err = transaction.ParseType("refund")
	assert.Error(t, err)
}

func TestFilter_Apply(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	a := tx(transaction.TypeExpense, "1", "A")
	a.Date = day(1)
	b := tx(transaction.TypeIncome, "2", "B")
	b.Date = day(5)
	c := tx(transaction.TypeExpense, "3", "C")
	c.Date = day(10)

	txs := []*transaction.Transaction{c, b, a}

	expense := transaction.TypeExpense
	start := time.Date(2024, 1, 5, 23, 0, 0, 0, time.UTC)
	end := day(10)

	assert.Equal(t, txs, transaction.Filter{}.Apply(txs))
	assert.Equal(t, []*transaction.Transaction{c, a}, transaction.Filter{Type: &expense}.Apply(txs))
	assert.Equal(t, []*transaction.Transaction{c, b}, transaction.Filter{StartDate: &start, EndDate: &end}.Apply(txs))
}
