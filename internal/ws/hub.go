// Package ws streams live score updates to subscribed clients. One hub
// serves every match; a client attaches to a single match id and receives
// that match's snapshot after each applied command.
package ws

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/engine"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/service"
)

var _ service.Broadcaster = (*Hub)(nil)

// Update is the frame written to subscribers.
type Update struct {
	Type     string          `json:"type"`
	MatchID  int64           `json:"match_id"`
	Events   []string        `json:"events,omitempty"`
	Snapshot engine.Snapshot `json:"snapshot"`
}

// Client is one subscribed connection.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	matchID int64
	send    chan []byte
}

type frame struct {
	matchID int64
	payload []byte
}

// Hub fans updates out to clients grouped by match. Membership changes and
// broadcasts all flow through Run's channels, so there is no lock to hold
// while writing.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan frame
	clients    map[*Client]bool
	log        zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan frame, 256),
		clients:    make(map[*Client]bool),
		log:        logger.With().Str("module", "ws").Str("component", "hub").Logger(),
	}
}

// Run owns the client set. Call it once, in its own goroutine; it exits when
// the context is canceled, closing every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.log.Debug().Int64("match_id", c.matchID).Int("clients", len(h.clients)).Msg("client subscribed")

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.log.Debug().Int64("match_id", c.matchID).Int("clients", len(h.clients)).Msg("client left")

		case f := <-h.broadcast:
			for c := range h.clients {
				if c.matchID != f.matchID {
					continue
				}
				select {
				case c.send <- f.payload:
				default:
					// Slow consumer; drop it rather than stall every match.
					delete(h.clients, c)
					close(c.send)
					h.log.Warn().Int64("match_id", c.matchID).Msg("dropping slow client")
				}
			}
		}
	}
}

// Publish queues a state update for everyone watching the match. It never
// blocks a scoring command; under pressure the update is dropped and the
// next one carries the full state anyway.
func (h *Hub) Publish(matchID int64, snap engine.Snapshot, events []engine.Event) {
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, string(e.Type))
	}
	payload, err := json.Marshal(Update{Type: "state", MatchID: matchID, Events: names, Snapshot: snap})
	if err != nil {
		h.log.Error().Err(err).Int64("match_id", matchID).Msg("marshal update failed")
		return
	}
	select {
	case h.broadcast <- frame{matchID: matchID, payload: payload}:
	default:
		h.log.Warn().Int64("match_id", matchID).Msg("broadcast queue full, update dropped")
	}
}

// Subscribe attaches an upgraded connection to a match, sends the current
// snapshot as a welcome frame and starts the connection's pumps.
func (h *Hub) Subscribe(conn *websocket.Conn, matchID int64, snap engine.Snapshot) {
	c := &Client{
		hub:     h,
		conn:    conn,
		matchID: matchID,
		send:    make(chan []byte, 64),
	}
	if welcome, err := json.Marshal(Update{Type: "snapshot", MatchID: matchID, Snapshot: snap}); err == nil {
		c.send <- welcome
	}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

// readPump drains (and ignores) client frames so pings and closes are
// processed; the protocol is one-way.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.hub.log.Debug().Err(err).Int64("match_id", c.matchID).Msg("read error")
			}
			return
		}
	}
}

func (c *Client) writePump() {
	defer func() {
		_ = c.conn.Close()
	}()
	for {
		payload, ok := <-c.send
		if !ok {
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
