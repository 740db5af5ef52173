package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "Income"
	TypeExpense Type = "Expense"
)

// DefaultDescription is stored when a transaction is created without one.
const DefaultDescription = "No description"

// ParseType accepts the stored spelling as well as lower-case input.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return TypeIncome, nil
	case "expense":
		return TypeExpense, nil
	}

	return "", fmt.Errorf("unknown transaction type %q", s)
}

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single recorded income or expense. It is never modified
// after creation.
type Transaction struct {
	ID          string
	Date        time.Time // UTC midnight
	Amount      decimal.Decimal
	Receiver    string
	Type        Type
	Description string
}
