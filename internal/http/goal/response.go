package goal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finvoice/internal/goal"
	"github.com/MrJamesThe3rd/finvoice/internal/projection"
)

type goalResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Target      decimal.Decimal `json:"target"`
	Saved       decimal.Decimal `json:"saved"`
	Remaining   decimal.Decimal `json:"remaining"`
	Percent     float64         `json:"percent"`
	Completed   bool            `json:"completed"`
	CreatedDate string          `json:"created_date"`
	Display     displayResponse `json:"display"`
}

type displayResponse struct {
	Percent string `json:"percent"`
	Saved   string `json:"saved"`
	Target  string `json:"target"`
}

func toResponse(g *goal.Goal) goalResponse {
	card := projection.GoalCards([]*goal.Goal{g})[0]

	return goalResponse{
		ID:          g.ID,
		Name:        g.Name,
		Target:      g.Target,
		Saved:       g.Saved,
		Remaining:   goal.Remaining(g),
		Percent:     goal.Percent(g),
		Completed:   card.Completed,
		CreatedDate: g.CreatedDate.Format(time.DateOnly),
		Display: displayResponse{
			Percent: card.Percent,
			Saved:   card.Saved,
			Target:  card.Target,
		},
	}
}

func toResponseList(goals []*goal.Goal) []goalResponse {
	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = toResponse(g)
	}

	return resp
}
