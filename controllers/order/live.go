package ordercontrollers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/KaramYacoub/shopsphere-api/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans order updates out to connected admin dashboards.
type Hub struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]bool
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[*websocket.Conn]bool),
		logger: logger,
	}
}

// Handler upgrades the connection and keeps it registered until the client
// goes away. Incoming messages are discarded; the socket is push-only.
func (h *Hub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		h.mu.Lock()
		h.conns[conn] = true
		h.mu.Unlock()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.mu.Lock()
				delete(h.conns, conn)
				h.mu.Unlock()
				break
			}
		}
	}
}

// BroadcastOrder pushes the order snapshot to every connected client,
// dropping connections that fail to write.
func (h *Hub) BroadcastOrder(order *models.Order) {
	data, err := json.Marshal(order)
	if err != nil {
		h.logger.Warn("failed to marshal order for broadcast", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}
