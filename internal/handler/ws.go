package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/engine"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/service"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/pkg/response"
)

// Subscriber is the minimal contract I need from the ws hub. Local to the
// handler package for the same reason Pinger is.
type Subscriber interface {
	Subscribe(conn *websocket.Conn, matchID int64, snap engine.Snapshot)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // scoreboards embed from anywhere
	},
}

// WSHandler upgrades spectators onto the live snapshot stream for one match.
type WSHandler struct {
	matches service.MatchService
	hub     Subscriber
}

func NewWSHandler(matches service.MatchService, hub Subscriber) *WSHandler {
	return &WSHandler{matches: matches, hub: hub}
}

func (h *WSHandler) Register(r *gin.RouterGroup) {
	r.GET("/matches/:match_id/ws", h.subscribe)
}

func (h *WSHandler) subscribe(c *gin.Context) {
	id, ok := matchID(c)
	if !ok {
		return
	}
	// Resolve the snapshot before upgrading so an unknown match still gets a
	// plain 404 instead of a dropped socket.
	snap, err := h.matches.GetSnapshot(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote its own status.
		return
	}
	h.hub.Subscribe(conn, id, snap)
}
