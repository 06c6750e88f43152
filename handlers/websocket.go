package handlers

import (
	"log"
	"net/http"

	httpHandler "expenseml-server/handlers/http"
	"expenseml-server/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// RoomWSHandler groups dependencies for the live room feed
type RoomWSHandler struct {
	mgr       *ws.Manager
	jwtSecret []byte
}

func NewRoomWSHandler(mgr *ws.Manager, jwtSecret []byte) *RoomWSHandler {
	return &RoomWSHandler{mgr: mgr, jwtSecret: jwtSecret}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleRoomWS upgrades to websocket and keeps the connection open so the
// server can push room update events to the user.
// GET /ws?token=<jwt>
func (h *RoomWSHandler) HandleRoomWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	userID, err := httpHandler.UserIDFromToken(token, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.mgr.Register(userID, conn)
	log.Printf("user connected: %s", userID)

	defer func() {
		h.mgr.Unregister(userID)
		log.Printf("user disconnected: %s", userID)
	}()

	// The feed is push-only. Reads keep the connection alive and detect
	// the close handshake; client payloads are ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("user %s closed connection", userID)
			} else {
				log.Printf("read error from %s: %v", userID, err)
			}
			return
		}
	}
}
