package ws

import (
	"encoding/json"
	"sync"

	"go-jossydiva-api/pkg/logger"

	"github.com/gofiber/contrib/websocket"
)

// Event types pushed to connected admin consoles.
const (
	EventStockUpdate  = "stock_update"
	EventSaleRecorded = "sale_recorded"
	EventOrderStatus  = "order_status_changed"
)

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			logger.Log.Debug().Msg("websocket client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// BroadcastEvent marshals a typed payload and hands it to the hub
// loop without blocking the caller.
func (h *Hub) BroadcastEvent(eventType string, payload map[string]interface{}) {
	if h == nil {
		return
	}
	payload["type"] = eventType
	msg, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Error().Err(err).Str("event", eventType).Msg("failed to encode websocket event")
		return
	}
	go func() {
		h.Broadcast <- msg
	}()
}
