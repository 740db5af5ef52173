package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finvoice/internal/export"
	"github.com/MrJamesThe3rd/finvoice/internal/http/api"
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
	r.Get("/", h.download)
	r.Get("/summary", h.summary)
}

// download streams the export as an attachment. Filters narrow the
// transactions only; a YAML export always carries profile and goals.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter, err := api.ParseFilter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state := h.svc.Snapshot()
	state.Transactions = filter.Apply(state.Transactions)

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName()))

	if format == export.FormatYAML {
		err = export.WriteYAML(w, state, h.now())
	} else {
		err = export.WriteCSV(w, state.Transactions)
	}

	if err != nil {
		slog.Error("failed to write export", "format", format, "error", err)
	}
}

type summaryResponse struct {
	Count   int    `json:"count"`
	Summary string `json:"summary"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	filter, err := api.ParseFilter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs := h.svc.Transactions(filter)

	api.WriteJSON(w, http.StatusOK, summaryResponse{
		Count:   len(txs),
		Summary: export.GenerateSummary(txs),
	})
}
