package goal

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Goal is a savings target. Saved only ever grows and may pass Target.
type Goal struct {
	ID          string
	Name        string
	Target      decimal.Decimal
	Saved       decimal.Decimal
	CreatedDate time.Time // UTC midnight
}

// Progress is Saved/Target, unclamped.
func Progress(g *Goal) decimal.Decimal {
	if !g.Target.IsPositive() {
		return decimal.Zero
	}

	return g.Saved.Div(g.Target)
}

// Percent is the progress as a percentage clamped to [0, 100].
func Percent(g *Goal) float64 {
	p := Progress(g).Mul(hundred)

	switch {
	case p.GreaterThan(hundred):
		return 100
	case p.IsNegative():
		return 0
	}

	return p.InexactFloat64()
}

func Completed(g *Goal) bool {
	return g.Saved.GreaterThanOrEqual(g.Target)
}

// Remaining is what is left to save, zero once the goal is reached.
func Remaining(g *Goal) decimal.Decimal {
	r := g.Target.Sub(g.Saved)
	if r.IsNegative() {
		return decimal.Zero
	}

	return r
}

type CreateParams struct {
	Name   string
	Target decimal.Decimal
	Saved  decimal.Decimal
}

func (p CreateParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}

	if !p.Target.IsPositive() {
		return errors.New("target must be greater than zero")
	}

	if p.Saved.IsNegative() {
		return errors.New("saved must not be negative")
	}

	return nil
}

// New builds the goal for valid params. CreatedDate is the UTC calendar day
// of created.
func (p CreateParams) New(id string, created time.Time) *Goal {
	created = created.UTC()

	return &Goal{
		ID:          id,
		Name:        strings.TrimSpace(p.Name),
		Target:      p.Target,
		Saved:       p.Saved,
		CreatedDate: time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC),
	}
}
