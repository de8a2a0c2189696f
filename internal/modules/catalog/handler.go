package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vpalhares/gamestock-backend/internal/apperr"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/api/v1/games", h.listGames)
	r.Post("/api/v1/games", h.createGame)
	r.Delete("/api/v1/games", h.resetGames)
	r.Get("/api/v1/games/{id}", h.getGame)
	r.Patch("/api/v1/games/{id}", h.updateGame)
	r.Delete("/api/v1/games/{id}", h.deleteGame)
}

func (h *Handler) listGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.service.ListGames(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if games == nil {
		games = []*Game{}
	}
	respond(w, http.StatusOK, games)
}

func (h *Handler) createGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validationf("malformed request body"))
		return
	}
	g, err := h.service.CreateGame(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, g)
}

func (h *Handler) getGame(w http.ResponseWriter, r *http.Request) {
	id, err := gameID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	g, err := h.service.GetGame(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, g)
}

func (h *Handler) updateGame(w http.ResponseWriter, r *http.Request) {
	id, err := gameID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req UpdateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validationf("malformed request body"))
		return
	}
	g, err := h.service.UpdateGame(r.Context(), id, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, g)
}

func (h *Handler) deleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := gameID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.service.DeleteGame(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "game removed"})
}

func (h *Handler) resetGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.service.Reset(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, games)
}

func gameID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperr.Validationf("invalid game id")
	}
	return id, nil
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
}
