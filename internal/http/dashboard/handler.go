package dashboard

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finvoice/internal/http/api"
	"github.com/MrJamesThe3rd/finvoice/internal/projection"
	"github.com/MrJamesThe3rd/finvoice/internal/tracker"
	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

type Handler struct {
	svc *tracker.Service
	now func() time.Time
}

func NewHandler(svc *tracker.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

type dashboardResponse struct {
	TotalIncome      decimal.Decimal     `json:"total_income"`
	TotalExpenses    decimal.Decimal     `json:"total_expenses"`
	Balance          decimal.Decimal     `json:"balance"`
	BalanceClass     transaction.Sign    `json:"balance_class"`
	TransactionCount int                 `json:"transaction_count"`
	GoalCount        int                 `json:"goal_count"`
	DaysActive       int                 `json:"days_active"`
	Display          displayResponse     `json:"display"`
	Breakdown        []breakdownResponse `json:"breakdown"`
}

type displayResponse struct {
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Balance  string `json:"balance"`
}

type breakdownResponse struct {
	Receiver string  `json:"receiver"`
	Amount   string  `json:"amount"`
	Share    float64 `json:"share"`
}

func (h *Handler) get(w http.ResponseWriter, _ *http.Request) {
	now := h.now()
	summary := h.svc.Summary(now)
	view := projection.BuildDashboard(h.svc.Snapshot())

	resp := dashboardResponse{
		TotalIncome:      summary.TotalIncome,
		TotalExpenses:    summary.TotalExpenses,
		Balance:          summary.Balance,
		BalanceClass:     summary.BalanceSign,
		TransactionCount: summary.TransactionCount,
		GoalCount:        summary.GoalCount,
		DaysActive:       summary.DaysActive,
		Display: displayResponse{
			Income:   view.Income,
			Expenses: view.Expenses,
			Balance:  view.Balance,
		},
		Breakdown: make([]breakdownResponse, len(view.Breakdown)),
	}

	for i, b := range view.Breakdown {
		resp.Breakdown[i] = breakdownResponse(b)
	}

	api.WriteJSON(w, http.StatusOK, resp)
}
