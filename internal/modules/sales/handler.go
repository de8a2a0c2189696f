package sales

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vpalhares/gamestock-backend/internal/apperr"
	"github.com/vpalhares/gamestock-backend/internal/modules/catalog"
)

// Handler exposes the sell and sale-history HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Put("/api/v1/games/{id}/sell", h.sellGame)
	r.Get("/api/v1/sales", h.listSales)
}

// SellRequest is the payload for selling units of a game.
type SellRequest struct {
	Quantity int `json:"quantity"`
}

// SellResponse returns the updated game together with the ledger entry
// created by the sale.
type SellResponse struct {
	Game *catalog.Game `json:"game"`
	Sale *Sale         `json:"sale"`
}

func (h *Handler) sellGame(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, apperr.Validationf("invalid game id"))
		return
	}
	var req SellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validationf("malformed request body"))
		return
	}
	g, sale, err := h.service.Sell(r.Context(), id, req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, SellResponse{Game: g, Sale: sale})
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	salesList, err := h.service.ListSales(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if salesList == nil {
		salesList = []*Sale{}
	}
	respond(w, http.StatusOK, salesList)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
}
