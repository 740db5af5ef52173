package matching

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finvoice/internal/http/api"
	"github.com/MrJamesThe3rd/finvoice/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
}

type suggestResponse struct {
	Receiver    string `json:"receiver"`
	Description string `json:"description"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	receiver := r.URL.Query().Get("receiver")
	if receiver == "" {
		http.Error(w, "receiver query parameter is required", http.StatusBadRequest)
		return
	}

	api.WriteJSON(w, http.StatusOK, suggestResponse{
		Receiver:    receiver,
		Description: h.svc.Suggest(receiver),
	})
}
