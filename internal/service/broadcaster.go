package service

// Broadcaster pushes events to connected dashboard clients. Implemented by
// the WebSocket hub; services stay decoupled from the transport.
type Broadcaster interface {
	BroadcastToOrg(orgID string, msgType string, payload interface{})
}
