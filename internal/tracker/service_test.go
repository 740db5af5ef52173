package tracker_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finvoice/internal/goal"
	"github.com/MrJamesThe3rd/finvoice/internal/ledger"
	"github.com/MrJamesThe3rd/finvoice/internal/profile"
	"github.com/MrJamesThe3rd/finvoice/internal/tracker"
	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

var now = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func sequentialIDs() func() string {
	var n int

	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newState() *ledger.State {
	return &ledger.State{Profile: profile.Profile{Name: "Your Name", JoinDate: day(2024, 1, 5)}}
}

func newService(t *testing.T, state *ledger.State) (*tracker.Service, *tracker.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := tracker.NewMockRepository(ctrl)

	svc := tracker.NewService(repo, state, tracker.WithClock(clock), tracker.WithIDGenerator(sequentialIDs()))

	return svc, repo
}

func income(date time.Time, amount int64, receiver string) transaction.CreateParams {
	return transaction.CreateParams{Date: date, Amount: decimal.NewFromInt(amount), Receiver: receiver, Type: transaction.TypeIncome}
}

func expense(date time.Time, amount int64, receiver string) transaction.CreateParams {
	return transaction.CreateParams{Date: date, Amount: decimal.NewFromInt(amount), Receiver: receiver, Type: transaction.TypeExpense}
}

func TestService_AddTransaction(t *testing.T) {
	type testCase struct {
		name    string
		params  transaction.CreateParams
		wantErr bool
	}

	tests := []testCase{
		{name: "Income", params: income(day(2024, 1, 1), 1000, "Employer")},
		{name: "ZeroAmount", params: expense(day(2024, 1, 1), 0, "Bank")},
		{name: "MissingDate", params: income(time.Time{}, 10, "Employer"), wantErr: true},
		{name: "NegativeAmount", params: income(day(2024, 1, 1), -1, "Employer"), wantErr: true},
		{name: "BlankReceiver", params: income(day(2024, 1, 1), 10, "   "), wantErr: true},
		{name: "UnknownType", params: transaction.CreateParams{Date: day(2024, 1, 1), Amount: decimal.NewFromInt(1), Receiver: "A", Type: "Gift"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t, newState())
			if !tt.wantErr {
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			}

			got, err := svc.AddTransaction(context.Background(), tt.params)

			if tt.wantErr {
				require.ErrorIs(t, err, tracker.ErrInvalidInput)
				assert.Nil(t, got)
				assert.Empty(t, svc.Transactions(transaction.Filter{}))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "id-1", got.ID)
			assert.Equal(t, transaction.DefaultDescription, got.Description)
			assert.Len(t, svc.Transactions(transaction.Filter{}), 1)
		})
	}
}

func TestService_TotalsScenario(t *testing.T) {
	svc, repo := newService(t, newState())
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	ctx := context.Background()

	_, err := svc.AddTransaction(ctx, income(day(2024, 1, 1), 1000, "Employer"))
	require.NoError(t, err)

	_, err = svc.AddTransaction(ctx, expense(day(2024, 1, 2), 200, "Grocer"))
	require.NoError(t, err)

	txs := svc.Transactions(transaction.Filter{})
	require.Len(t, txs, 2)
	assert.Equal(t, "Grocer", txs[0].Receiver)
	assert.Equal(t, "Employer", txs[1].Receiver)

	sum := svc.Summary(now)
	assert.True(t, decimal.NewFromInt(1000).Equal(sum.TotalIncome))
	assert.True(t, decimal.NewFromInt(200).Equal(sum.TotalExpenses))
	assert.True(t, decimal.NewFromInt(800).Equal(sum.Balance))
	assert.Equal(t, transaction.SignPositive, sum.BalanceSign)
	assert.Equal(t, 2, sum.TransactionCount)
	assert.Equal(t, 11, sum.DaysActive)
}

func TestService_AddTransactionOrderIgnoresInvalid(t *testing.T) {
	svc, repo := newService(t, newState())
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	ctx := context.Background()
	calls := []transaction.CreateParams{
		income(day(2024, 1, 1), 1, "A"),
		income(day(2024, 1, 1), 1, ""),
		expense(day(2024, 1, 1), 2, "B"),
		expense(day(2024, 1, 1), -2, "C"),
		income(day(2024, 1, 1), 3, "D"),
	}

	for _, p := range calls {
		_, _ = svc.AddTransaction(ctx, p)
	}

	txs := svc.Transactions(transaction.Filter{})
	require.Len(t, txs, 3)
	assert.Equal(t, []string{"D", "B", "A"}, []string{txs[0].Receiver, txs[1].Receiver, txs[2].Receiver})
}

func TestService_IDsSkipLegacyCollisions(t *testing.T) {
	state := newState()
	state.Transactions = []*transaction.Transaction{
		{ID: "id-1", Date: day(2024, 1, 1), Amount: decimal.NewFromInt(5), Receiver: "Old", Type: transaction.TypeIncome},
	}

	svc, repo := newService(t, state)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.AddTransaction(context.Background(), income(day(2024, 1, 2), 1, "New"))
	require.NoError(t, err)
	assert.Equal(t, "id-2", got.ID)
}

func TestService_DeleteTransactionIsIdempotent(t *testing.T) {
	svc, repo := newService(t, newState())
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	ctx := context.Background()

	tx, err := svc.AddTransaction(ctx, income(day(2024, 1, 1), 1, "A"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, tx.ID))
	require.NoError(t, svc.DeleteTransaction(ctx, tx.ID))
	require.NoError(t, svc.DeleteTransaction(ctx, "never-existed"))

	assert.Empty(t, svc.Transactions(transaction.Filter{}))

	_, err = svc.Transaction(tx.ID)
	assert.ErrorIs(t, err, tracker.ErrNotFound)
}

func TestService_ImportTransactions(t *testing.T) {
	svc, repo := newService(t, newState())
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	result := svc.ImportTransactions(context.Background(), []transaction.CreateParams{
		expense(day(2024, 2, 1), 10, "First"),
		expense(day(2024, 2, 2), 10, ""),
		income(day(2024, 2, 3), 20, "Last"),
	})

	require.Len(t, result.Added, 2)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, 1, result.Rejected[0].Index)
	assert.ErrorIs(t, result.Rejected[0].Err, tracker.ErrInvalidInput)

	txs := svc.Transactions(transaction.Filter{})
	require.Len(t, txs, 2)
	assert.Equal(t, "Last", txs[0].Receiver)
	assert.Equal(t, "First", txs[1].Receiver)
}

func TestService_ImportNothingValidDoesNotSave(t *testing.T) {
	svc, _ := newService(t, newState())

	result := svc.ImportTransactions(context.Background(), []transaction.CreateParams{income(time.Time{}, 1, "A")})

	assert.Empty(t, result.Added)
	assert.Len(t, result.Rejected, 1)
}

func TestService_GoalScenario(t *testing.T) {
	svc, repo := newService(t, newState())
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	ctx := context.Background()

	g, err := svc.AddGoal(ctx, goal.CreateParams{Name: "Car", Target: decimal.NewFromInt(5000)})
	require.NoError(t, err)
	assert.Equal(t, day(2024, 1, 15), g.CreatedDate)

	g, err = svc.AddMoneyToGoal(ctx, g.ID, decimal.NewFromInt(1250))
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(1250).Equal(g.Saved))
	assert.InDelta(t, 25.0, goal.Percent(g), 0.0001)
	assert.False(t, goal.Completed(g))
}

func TestService_AddMoneyToGoal(t *testing.T) {
	type testCase struct {
		name      string
		id        string
		amount    decimal.Decimal
		wantErr   error
		wantSaved decimal.Decimal
	}

	tests := []testCase{
		{name: "Monotonic", id: "g1", amount: decimal.RequireFromString("0.01"), wantSaved: decimal.RequireFromString("100.01")},
		{name: "PastTarget", id: "g1", amount: decimal.NewFromInt(1000), wantSaved: decimal.NewFromInt(1100)},
		{name: "UnknownGoal", id: "missing", amount: decimal.NewFromInt(100), wantErr: tracker.ErrNotFound, wantSaved: decimal.NewFromInt(100)},
		{name: "ZeroAmount", id: "g1", amount: decimal.Zero, wantErr: tracker.ErrInvalidInput, wantSaved: decimal.NewFromInt(100)},
		{name: "NegativeAmount", id: "g1", amount: decimal.NewFromInt(-5), wantErr: tracker.ErrInvalidInput, wantSaved: decimal.NewFromInt(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newState()
			state.Goals = []*goal.Goal{
				{ID: "g1", Name: "Trip", Target: decimal.NewFromInt(500), Saved: decimal.NewFromInt(100), CreatedDate: day(2024, 1, 1)},
			}

			svc, repo := newService(t, state)
			if tt.wantErr == nil {
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			}

			_, err := svc.AddMoneyToGoal(context.Background(), tt.id, tt.amount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			goals := svc.Goals()
			require.Len(t, goals, 1)
			assert.True(t, tt.wantSaved.Equal(goals[0].Saved), "saved = %s", goals[0].Saved)
		})
	}
}

func TestService_AddGoalValidation(t *testing.T) {
	type testCase struct {
		name   string
		params goal.CreateParams
	}

	tests := []testCase{
		{name: "BlankName", params: goal.CreateParams{Name: " ", Target: decimal.NewFromInt(1)}},
		{name: "ZeroTarget", params: goal.CreateParams{Name: "Car"}},
		{name: "NegativeSaved", params: goal.CreateParams{Name: "Car", Target: decimal.NewFromInt(1), Saved: decimal.NewFromInt(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t, newState())

			_, err := svc.AddGoal(context.Background(), tt.params)
			require.ErrorIs(t, err, tracker.ErrInvalidInput)
			assert.Empty(t, svc.Goals())
		})
	}
}

func TestService_DeleteGoal(t *testing.T) {
	state := newState()
	state.Goals = []*goal.Goal{
		{ID: "g1", Name: "Car", Target: decimal.NewFromInt(1)},
		{ID: "g2", Name: "Trip", Target: decimal.NewFromInt(1)},
	}

	svc, repo := newService(t, state)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	ctx := context.Background()

	require.NoError(t, svc.DeleteGoal(ctx, "g1"))
	require.NoError(t, svc.DeleteGoal(ctx, "g1"))

	goals := svc.Goals()
	require.Len(t, goals, 1)
	assert.Equal(t, "g2", goals[0].ID)

	_, err := svc.Goal("g1")
	assert.ErrorIs(t, err, tracker.ErrNotFound)
}

func TestService_EditProfileName(t *testing.T) {
	type testCase struct {
		name     string
		input    string
		wantErr  bool
		wantName string
	}

	tests := []testCase{
		{name: "Trimmed", input: "  Ana  ", wantName: "Ana"},
		{name: "Blank", input: "  ", wantErr: true, wantName: "Your Name"},
		{name: "Empty", input: "", wantErr: true, wantName: "Your Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t, newState())
			if !tt.wantErr {
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			}

			_, err := svc.EditProfileName(context.Background(), tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, tracker.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.wantName, svc.Profile().Name)
			assert.Equal(t, day(2024, 1, 5), svc.Profile().JoinDate)
		})
	}
}

func TestService_SaveFailureKeepsMutation(t *testing.T) {
	svc, repo := newService(t, newState())
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	tx, err := svc.AddTransaction(context.Background(), income(day(2024, 1, 1), 1, "A"))
	require.NoError(t, err)

	got, err := svc.Transaction(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Receiver)
}

func TestService_SaveWrapsError(t *testing.T) {
	svc, repo := newService(t, newState())
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	err := svc.Save(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestService_ObserversSeeEveryChange(t *testing.T) {
	svc, repo := newService(t, newState())
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	var events []tracker.Event
	svc.Subscribe(func(e tracker.Event) {
		// reading back from an observer must not deadlock
		_ = svc.Snapshot()
		events = append(events, e)
	})

	ctx := context.Background()

	tx, err := svc.AddTransaction(ctx, income(day(2024, 1, 1), 1, "A"))
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTransaction(ctx, tx.ID))
	require.NoError(t, svc.DeleteTransaction(ctx, tx.ID))

	_, err = svc.EditProfileName(ctx, " ")
	require.Error(t, err)

	svc.Refresh()

	require.Len(t, events, 3)
	assert.Equal(t, tracker.Event{Kind: tracker.EventTransactionAdded, ID: tx.ID}, events[0])
	assert.Equal(t, tracker.Event{Kind: tracker.EventTransactionDeleted, ID: tx.ID}, events[1])
	assert.Equal(t, tracker.EventRefreshed, events[2].Kind)
}

func TestService_SnapshotIsDetached(t *testing.T) {
	state := newState()
	state.Goals = []*goal.Goal{{ID: "g1", Name: "Car", Target: decimal.NewFromInt(10)}}

	svc, _ := newService(t, state)

	snap := svc.Snapshot()
	snap.Goals[0].Saved = decimal.NewFromInt(999)
	snap.Profile.Name = "Mallory"

	g, err := svc.Goal("g1")
	require.NoError(t, err)
	assert.True(t, g.Saved.IsZero())
	assert.Equal(t, "Your Name", svc.Profile().Name)
}

type countingRepo struct {
	saves atomic.Int32
}

func (r *countingRepo) Save(context.Context, *ledger.State) error {
	r.saves.Add(1)
	return nil
}

func TestService_RunAutoSave(t *testing.T) {
	type testCase struct {
		name      string
		state     func() *ledger.State
		wantSaves bool
	}

	tests := []testCase{
		{name: "PristineSkipped", state: newState, wantSaves: false},
		{
			name: "RenamedProfile",
			state: func() *ledger.State {
				s := newState()
				s.Profile.Name = "Ana"
				return s
			},
			wantSaves: true,
		},
		{
			name: "HasGoal",
			state: func() *ledger.State {
				s := newState()
				s.Goals = []*goal.Goal{{ID: "g", Name: "Car", Target: decimal.NewFromInt(1)}}
				return s
			},
			wantSaves: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &countingRepo{}
			svc := tracker.NewService(repo, tt.state())

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
			defer cancel()

			svc.RunAutoSave(ctx, 5*time.Millisecond)

			if tt.wantSaves {
				assert.Positive(t, repo.saves.Load())
			} else {
				assert.Zero(t, repo.saves.Load())
			}
		})
	}
}

func TestService_TransactionsFilter(t *testing.T) {
	svc, repo := newService(t, newState())
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	ctx := context.Background()

	for _, p := range []transaction.CreateParams{
		income(day(2024, 1, 1), 1, "A"),
		expense(day(2024, 1, 10), 2, "B"),
		expense(day(2024, 2, 1), 3, "C"),
	} {
		_, err := svc.AddTransaction(ctx, p)
		require.NoError(t, err)
	}

	typ := transaction.TypeExpense
	end := day(2024, 1, 31)

	got := svc.Transactions(transaction.Filter{Type: &typ, EndDate: &end})
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Receiver)
}
