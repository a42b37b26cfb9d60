package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/opencourt/courtplay/rotation"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Courtside tablets and phones connect from whatever network the
		// venue has, so the origin check stays permissive.
		return true
	},
}

type WebSocketHandler struct {
	hub    *rotation.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *rotation.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeWs upgrades the connection and subscribes the client to one session's
// event stream at /ws/sessions/{sessionID}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	sessionIDStr := chi.URLParam(r, "sessionID")
	if sessionIDStr == "" {
		http.Error(w, "missing sessionID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error to the client.
		h.logger.Error("websocket upgrade failed",
			slog.String("session_id", sessionIDStr),
			slog.Any("error", err))
		return
	}

	roomID := "session_" + sessionIDStr
	client := &rotation.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: roomID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	h.logger.Info("websocket client joined", slog.String("room", roomID))
}
