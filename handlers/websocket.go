package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"comment-board/consumer"
	"comment-board/hub"
	"comment-board/logger"
	"comment-board/tally"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocketHandler streams board updates to live-feed clients.
type WebSocketHandler struct {
	hub   hub.ClientManager
	store tally.VoteStore
}

// NewWebSocketHandler creates a new WebSocketHandler instance
func NewWebSocketHandler(h hub.ClientManager, s tally.VoteStore) *WebSocketHandler {
	return &WebSocketHandler{hub: h, store: s}
}

func (h *WebSocketHandler) Feed(c *gin.Context) {
	ctx := c.Request.Context()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.For(ctx).WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := hub.NewWebsocketClient(conn)

	// Send initial vote counts before the hub can interleave updates.
	counts, err := h.store.Counts(ctx)
	if err != nil {
		logger.For(ctx).Errorf("Failed to get initial vote counts: %s", err)
	} else if initialJSON, err := json.Marshal(consumer.Update{Counts: counts}); err == nil {
		client.WriteMessage(websocket.TextMessage, initialJSON)
	}

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	// Keep the connection alive until an error occurs
	for {
		if _, _, err := client.ReadMessage(); err != nil {
			break
		}
	}
}
