package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/questboard/server/internal/middleware"
	ws "github.com/questboard/server/internal/websocket"
)

// WebSocketHandler upgrades authenticated clients onto the schedule
// event feed.
type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: restrict origin once the frontend host is fixed
				return true
			},
		},
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, userID.(uuid.UUID))

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
