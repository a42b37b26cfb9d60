package handlers

import (
	"net/http"

	"github.com/opencourt/courtplay/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: ps}
}

// CreateHandler handles POST /players
func (h *PlayerHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.CreatePlayer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /players/{playerID}
func (h *PlayerHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.GetPlayer(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /players
func (h *PlayerHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.ListPlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
