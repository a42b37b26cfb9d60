package handlers

import (
	"net/http"

	"github.com/opencourt/courtplay/services"
)

type SessionHandler struct {
	sessionService services.SessionService
}

func NewSessionHandler(ss services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: ss}
}

// CreateHandler handles POST /sessions
func (h *SessionHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateSessionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	session, err := h.sessionService.CreateSession(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"session": session}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /sessions/{sessionID}
func (h *SessionHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	session, err := h.sessionService.GetSession(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /sessions
func (h *SessionHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionService.ListSessions(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"sessions": sessions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CheckInHandler handles POST /sessions/{sessionID}/players/{playerID}/check-in
func (h *SessionHandler) CheckInHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.sessionService.CheckInPlayer(r.Context(), sessionID, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCheckedInHandler handles GET /sessions/{sessionID}/check-ins
func (h *SessionHandler) ListCheckedInHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, err := h.sessionService.ListCheckedInPlayers(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateGroupHandler handles POST /sessions/{sessionID}/groups
func (h *SessionHandler) CreateGroupHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreateGroupInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	group, err := h.sessionService.CreateGroup(r.Context(), sessionID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"group": group}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListGroupsHandler handles GET /sessions/{sessionID}/groups
func (h *SessionHandler) ListGroupsHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	groups, err := h.sessionService.ListGroups(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResetTeamsHandler handles DELETE /sessions/{sessionID}/teams
func (h *SessionHandler) ResetTeamsHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.sessionService.ResetTeams(r.Context(), sessionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CompleteHandler handles POST /sessions/{sessionID}/complete
func (h *SessionHandler) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	session, err := h.sessionService.CompleteSession(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// FormTeamsHandler handles POST /sessions/{sessionID}/teams
func (h *SessionHandler) FormTeamsHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		UseGroups bool `json:"use_groups"`
	}
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}

	teams, err := h.sessionService.FormTeams(r.Context(), sessionID, input.UseGroups)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
