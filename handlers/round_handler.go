package handlers

import (
	"net/http"

	"github.com/opencourt/courtplay/services"
)

type RoundHandler struct {
	roundService services.RoundService
}

func NewRoundHandler(rs services.RoundService) *RoundHandler {
	return &RoundHandler{roundService: rs}
}

// GenerateHandler handles POST /sessions/{sessionID}/rounds
func (h *RoundHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, err := h.roundService.GenerateNextRound(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PreviewHandler handles GET /sessions/{sessionID}/rounds/next
func (h *RoundHandler) PreviewHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, err := h.roundService.PreviewNextRound(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResultHandler handles PUT /sessions/{sessionID}/games/{gameID}/result
func (h *RoundHandler) RecordResultHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RecordResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.roundService.RecordResult(r.Context(), sessionID, gameID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StandingsHandler handles GET /sessions/{sessionID}/standings
func (h *RoundHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.roundService.Standings(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RoundRobinCompleteHandler handles GET /sessions/{sessionID}/round-robin-complete
func (h *RoundHandler) RoundRobinCompleteHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	complete, err := h.roundService.RoundRobinComplete(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"complete": complete}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
