package rotation

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Event types pushed to session rooms.
const (
	EventRoundGenerated = "ROUND_GENERATED"
	EventGameCompleted  = "GAME_COMPLETED"
	EventTeamsFormed    = "TEAMS_FORMED"
)

// Message is the envelope broadcast to every client watching a session.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

// Client is one websocket subscriber in a session room.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
	Room string

	mu     sync.Mutex
	closed bool
}

// Hub fans engine output out to websocket clients grouped by session room.
// It carries no scheduling state; the engine stays pure and the hub only
// relays what the services tell it to.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	rooms  map[string]map[*Client]bool
	mu     sync.RWMutex
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			h.logger.Debug("websocket client registered",
				slog.String("room", client.Room),
				slog.Int("room_clients", len(h.rooms[client.Room])))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.Room]; ok {
				if clients[client] {
					client.closeSend()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.Room)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToRoom sends one typed message to every client in a session room.
// Slow clients with full send buffers are skipped rather than blocking the
// broadcast.
func (h *Hub) BroadcastToRoom(roomID, eventType string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[roomID]
	if !ok {
		return
	}

	raw, err := json.Marshal(Message{Type: eventType, Payload: payload, RoomID: roomID})
	if err != nil {
		h.logger.Error("failed to marshal websocket message",
			slog.String("room", roomID), slog.Any("error", err))
		return
	}

	for client := range clients {
		client.mu.Lock()
		if client.closed {
			client.mu.Unlock()
			continue
		}
		select {
		case client.Send <- raw:
		default:
			h.logger.Warn("websocket client send buffer full, dropping message",
				slog.String("room", roomID))
		}
		client.mu.Unlock()
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		close(c.Send)
		c.closed = true
	}
}

// ReadPump drains and discards inbound frames; clients are listen-only. It
// keeps the connection alive via pong handling and unregisters on error.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

// WritePump pushes queued messages and periodic pings to the connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush anything else already queued into the same frame.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
