package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/sirupsen/logrus"

	"go-furniture-erp/pkg/logger"
)

// Event types pushed to connected dashboards.
const (
	EventStockUpdate         = "stock_update"
	EventPaymentRecorded     = "payment_recorded"
	EventInstallmentRecorded = "installment_recorded"
	EventSettingsUpdated     = "settings_updated"
	EventUserStatus          = "user_status_update"
)

// Notifier is what services publish through; *Hub implements it.
type Notifier interface {
	Publish(eventType string, payload map[string]interface{})
}

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
		Broadcast:  make(chan []byte, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			logger.Get().WithField("clients", len(h.Clients)).Debug("ws client connected")

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

// Publish stamps the event type and queues the message without blocking the caller.
func (h *Hub) Publish(eventType string, payload map[string]interface{}) {
	payload["type"] = eventType
	msg, err := json.Marshal(payload)
	if err != nil {
		logger.Get().WithFields(logrus.Fields{"event": eventType, "error": err.Error()}).Error("ws payload not serializable")
		return
	}
	go func() { h.Broadcast <- msg }()
}

// Discard drops every event. Used where no hub is running.
type Discard struct{}

func (Discard) Publish(string, map[string]interface{}) {}
