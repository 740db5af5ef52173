package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finvoice/internal/http/api"
	txhttp "github.com/MrJamesThe3rd/finvoice/internal/http/transaction"
	"github.com/MrJamesThe3rd/finvoice/internal/importer"
	"github.com/MrJamesThe3rd/finvoice/internal/matching"
	"github.com/MrJamesThe3rd/finvoice/internal/tracker"
)

const maxUpload = 10 << 20

type Handler struct {
	importSvc *importer.Service
	ledger    *tracker.Service
	matchSvc  *matching.Service
}

func NewHandler(importSvc *importer.Service, ledger *tracker.Service, matchSvc *matching.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		ledger:    ledger,
		matchSvc:  matchSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type rejectedResponse struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type importResponse struct {
	Imported     int                `json:"imported"`
	Rejected     []rejectedResponse `json:"rejected"`
	Transactions []txhttp.Response  `json:"transactions"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	bank, err := importer.ParseBank(r.FormValue("bank"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(bank, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.matchSvc.Fill(params)

	result := h.ledger.ImportTransactions(r.Context(), params)

	resp := importResponse{
		Imported:     len(result.Added),
		Rejected:     make([]rejectedResponse, len(result.Rejected)),
		Transactions: txhttp.ToResponseList(result.Added),
	}

	for i, rej := range result.Rejected {
		resp.Rejected[i] = rejectedResponse{Row: rej.Index + 1, Error: rej.Err.Error()}
	}

	api.WriteJSON(w, http.StatusCreated, resp)
}
