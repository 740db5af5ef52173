package goal_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/finvoice/internal/goal"
)

func newGoal(target, saved int64) *goal.Goal {
	return &goal.Goal{
		ID:     "g",
		Name:   "Car",
		Target: decimal.NewFromInt(target),
		Saved:  decimal.NewFromInt(saved),
	}
}

func TestProgress(t *testing.T) {
	type testCase struct {
		name          string
		goal          *goal.Goal
		wantProgress  string
		wantPercent   float64
		wantCompleted bool
		wantRemaining string
	}

	tests := []testCase{
		{name: "Empty", goal: newGoal(5000, 0), wantProgress: "0", wantPercent: 0, wantRemaining: "5000"},
		{name: "Quarter", goal: newGoal(5000, 1250), wantProgress: "0.25", wantPercent: 25, wantRemaining: "3750"},
		{name: "Exact", goal: newGoal(5000, 5000), wantProgress: "1", wantPercent: 100, wantCompleted: true, wantRemaining: "0"},
		{name: "OverSaved", goal: newGoal(100, 150), wantProgress: "1.5", wantPercent: 100, wantCompleted: true, wantRemaining: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, decimal.RequireFromString(tt.wantProgress).Equal(goal.Progress(tt.goal)))
			assert.InDelta(t, tt.wantPercent, goal.Percent(tt.goal), 1e-9)
			assert.Equal(t, tt.wantCompleted, goal.Completed(tt.goal))
			assert.True(t, decimal.RequireFromString(tt.wantRemaining).Equal(goal.Remaining(tt.goal)))
		})
	}
}

func TestCreateParams_Validate(t *testing.T) {
	type testCase struct {
		name    string
		params  goal.CreateParams
		wantErr bool
	}

	tests := []testCase{
		{name: "Valid", params: goal.CreateParams{Name: "Car", Target: decimal.NewFromInt(5000)}},
		{name: "WithSaved", params: goal.CreateParams{Name: "Car", Target: decimal.NewFromInt(5000), Saved: decimal.NewFromInt(10)}},
		{name: "BlankName", params: goal.CreateParams{Name: " ", Target: decimal.NewFromInt(5000)}, wantErr: true},
		{name: "ZeroTarget", params: goal.CreateParams{Name: "Car"}, wantErr: true},
		{name: "NegativeTarget", params: goal.CreateParams{Name: "Car", Target: decimal.NewFromInt(-1)}, wantErr: true},
		{name: "NegativeSaved", params: goal.CreateParams{Name: "Car", Target: decimal.NewFromInt(1), Saved: decimal.NewFromInt(-1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCreateParams_New(t *testing.T) {
	g := goal.CreateParams{Name: " Car ", Target: decimal.NewFromInt(5000)}.
		New("id", time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, "Car", g.Name)
	assert.True(t, g.Saved.IsZero())
	assert.Equal(t, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), g.CreatedDate)
}

func TestCreateParams_New_UsesUTCDay(t *testing.T) {
	eastern := time.FixedZone("UTC-5", -5*60*60)

	g := goal.CreateParams{Name: "Car", Target: decimal.NewFromInt(5000)}.
		New("id", time.Date(2024, 3, 10, 20, 0, 0, 0, eastern))

	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), g.CreatedDate)
}
