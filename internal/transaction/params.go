package transaction

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	errMissingDate     = errors.New("date is required")
	errNegativeAmount  = errors.New("amount must not be negative")
	errMissingReceiver = errors.New("receiver is required")
	errMissingAmount   = errors.New("amount is required")
)

type CreateParams struct {
	Date        time.Time
	Amount      decimal.Decimal
	Receiver    string
	Type        Type
	Description string
}

// Validate reports the first constraint the params break.
func (p CreateParams) Validate() error {
	if p.Date.IsZero() {
		return errMissingDate
	}

	if p.Amount.IsNegative() {
		return errNegativeAmount
	}

	if strings.TrimSpace(p.Receiver) == "" {
		return errMissingReceiver
	}

	if !p.Type.Valid() {
		return fmt.Errorf("type must be %s or %s", TypeIncome, TypeExpense)
	}

	return nil
}

// New builds the transaction for valid params. Receiver and description are
// trimmed and the date is truncated to its calendar day.
func (p CreateParams) New(id string) *Transaction {
	desc := strings.TrimSpace(p.Description)
	if desc == "" {
		desc = DefaultDescription
	}

	return &Transaction{
		ID:          id,
		Date:        DateOnly(p.Date),
		Amount:      p.Amount,
		Receiver:    strings.TrimSpace(p.Receiver),
		Type:        p.Type,
		Description: desc,
	}
}

// ParseAmount parses user input such as "1250" or " 19.99 ".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errMissingAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}

	return d, nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (YYYY-MM-DD)", s)
	}

	return t, nil
}

// DateOnly drops the clock part of t, keeping its calendar day, as UTC midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
