package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgAssessmentScored MessageType = "assessment_scored"
	MsgActionsGenerated MessageType = "actions_generated"
	MsgError            MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages dashboard WebSocket connections per organization
type Hub struct {
	// orgID -> set of dashboard connections
	conns map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one dashboard WebSocket connection
type Connection struct {
	OrgID string
	Send  chan []byte
	Hub   *Hub
}

// BroadcastMessage is a message to fan out to an organization's dashboards
type BroadcastMessage struct {
	OrgID   string
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.OrgID] == nil {
				h.conns[conn.OrgID] = make(map[*Connection]bool)
			}
			h.conns[conn.OrgID][conn] = true
			h.mu.Unlock()
			log.Printf("Dashboard connected for org %s", conn.OrgID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.conns[conn.OrgID]; ok {
				if conns[conn] {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.conns, conn.OrgID)
					}
					log.Printf("Dashboard disconnected for org %s", conn.OrgID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.OrgID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToOrg sends a message to all of an organization's dashboards
// (implements service.Broadcaster)
func (h *Hub) BroadcastToOrg(orgID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		OrgID: orgID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
