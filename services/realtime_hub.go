package services

import (
	"encoding/json"
	"sync"

	"github.com/UmaKase/umakase-backend/config"
	"github.com/UmaKase/umakase-backend/models"

	"github.com/gorilla/websocket"
)

type WSClient struct {
	ProfileID string
	Conn      *websocket.Conn
}

// RealtimeHub pushes room-library updates to connected members. Sends
// are best-effort: a dead connection never fails the request that
// triggered the push.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

// Hub is the process-wide hub used by the controllers.
var Hub = NewRealtimeHub()

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.ProfileID] == nil {
		h.clients[c.ProfileID] = make(map[*WSClient]struct{})
	}
	h.clients[c.ProfileID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.ProfileID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.ProfileID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *RealtimeHub) broadcast(profileID string, payload any) {
	msg, _ := json.Marshal(payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[profileID] {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			config.Logger.Debugw("websocket push failed", "profileId", profileID, "error", err)
		}
	}
}

// BroadcastRoomUpdate tells every current member of the room that its
// library changed.
func (h *RealtimeHub) BroadcastRoomUpdate(room *models.Room, event string) {
	if room == nil {
		return
	}
	payload := map[string]string{"event": event, "roomId": room.ID}
	for _, m := range room.Members {
		h.broadcast(m.ProfileID, payload)
	}
}
