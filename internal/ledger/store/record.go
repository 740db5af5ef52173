package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finvoice/internal/goal"
	"github.com/MrJamesThe3rd/finvoice/internal/profile"
	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

// Records mirror the blobs the browser version of the app wrote, so existing
// data keeps loading: dates as YYYY-MM-DD and amounts as JSON numbers.

type transactionRecord struct {
	ID          string      `json:"id"`
	Date        string      `json:"date"`
	Amount      json.Number `json:"amount"`
	Receiver    string      `json:"receiver"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
}

type goalRecord struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Target      json.Number `json:"target"`
	Saved       json.Number `json:"saved"`
	CreatedDate string      `json:"createdDate"`
}

type profileRecord struct {
	Name     string `json:"name"`
	JoinDate string `json:"joinDate"`
}

func toTransactionRecord(tx *transaction.Transaction) transactionRecord {
	return transactionRecord{
		ID:          tx.ID,
		Date:        tx.Date.Format(time.DateOnly),
		Amount:      json.Number(tx.Amount.String()),
		Receiver:    tx.Receiver,
		Type:        string(tx.Type),
		Description: tx.Description,
	}
}

func (r transactionRecord) toTransaction() (*transaction.Transaction, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("transaction without id")
	}

	date, err := parseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", r.ID, err)
	}

	amount, err := parseAmount(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("transaction %s amount: %w", r.ID, err)
	}

	typ, err := transaction.ParseType(r.Type)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", r.ID, err)
	}

	return &transaction.Transaction{
		ID:          r.ID,
		Date:        date,
		Amount:      amount,
		Receiver:    r.Receiver,
		Type:        typ,
		Description: r.Description,
	}, nil
}

func toGoalRecord(g *goal.Goal) goalRecord {
	return goalRecord{
		ID:          g.ID,
		Name:        g.Name,
		Target:      json.Number(g.Target.String()),
		Saved:       json.Number(g.Saved.String()),
		CreatedDate: g.CreatedDate.Format(time.DateOnly),
	}
}

func (r goalRecord) toGoal() (*goal.Goal, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("goal without id")
	}

	target, err := parseAmount(r.Target)
	if err != nil {
		return nil, fmt.Errorf("goal %s target: %w", r.ID, err)
	}

	saved := decimal.Zero
	if r.Saved != "" {
		if saved, err = parseAmount(r.Saved); err != nil {
			return nil, fmt.Errorf("goal %s saved: %w", r.ID, err)
		}
	}

	created, err := parseDate(r.CreatedDate)
	if err != nil {
		return nil, fmt.Errorf("goal %s: %w", r.ID, err)
	}

	return &goal.Goal{
		ID:          r.ID,
		Name:        r.Name,
		Target:      target,
		Saved:       saved,
		CreatedDate: created,
	}, nil
}

func toProfileRecord(p profile.Profile) profileRecord {
	return profileRecord{Name: p.Name, JoinDate: p.JoinDate.Format(time.DateOnly)}
}

func (r profileRecord) toProfile() (profile.Profile, error) {
	join, err := parseDate(r.JoinDate)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("profile: %w", err)
	}

	return profile.Profile{Name: r.Name, JoinDate: join}, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}

	return t, nil
}

func parseAmount(n json.Number) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, err
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative value %s", d)
	}

	return d, nil
}
