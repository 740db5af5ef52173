package profile

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finvoice/internal/http/api"
	"github.com/MrJamesThe3rd/finvoice/internal/projection"
	"github.com/MrJamesThe3rd/finvoice/internal/tracker"
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
	r.Patch("/", h.update)
}

type profileResponse struct {
	Name             string `json:"name"`
	JoinDate         string `json:"join_date"`
	TransactionCount int    `json:"transaction_count"`
	GoalCount        int    `json:"goal_count"`
	DaysActive       int    `json:"days_active"`
}

func (h *Handler) get(w http.ResponseWriter, _ *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.response())
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.svc.EditProfileName(r.Context(), req.Name); err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, h.response())
}

func (h *Handler) response() profileResponse {
	state := h.svc.Snapshot()

	return profileResponse{
		Name:             state.Profile.Name,
		JoinDate:         state.Profile.JoinDate.Format(time.DateOnly),
		TransactionCount: len(state.Transactions),
		GoalCount:        len(state.Goals),
		DaysActive:       projection.BuildProfileStats(state, h.now()).DaysActive,
	}
}
