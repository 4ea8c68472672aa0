package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/fingers"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// FingersHandler broadcasts real-time finger counts via WebSocket.
type FingersHandler struct {
	detector detector.Detector
	camera   capture.Camera
	status   Status
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
}

// NewFingersHandler creates a new FingersHandler with the given detector and
// camera. A nil status omits the cooldown field from the feed.
func NewFingersHandler(d detector.Detector, c capture.Camera, status Status) *FingersHandler {
	h := &FingersHandler{
		detector: d,
		camera:   c,
		status:   status,
		clients:  make(map[*websocket.Conn]bool),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *FingersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// fingersMessage is the payload broadcast to connected clients.
type fingersMessage struct {
	HandPresent bool           `json:"handPresent"`
	Count       int            `json:"count"`
	Vector      fingers.Vector `json:"vector"`
	Handedness  string         `json:"handedness,omitempty"`
	CooldownMs  int64          `json:"cooldownMs,omitempty"`
	Timestamp   int64          `json:"timestamp"`
}

// broadcast sends finger-count data to all connected clients.
func (h *FingersHandler) broadcast() {
	ticker := time.NewTicker(66 * time.Millisecond) // ~15 FPS
	defer ticker.Stop()

	for range ticker.C {
		h.mu.RLock()
		if len(h.clients) == 0 {
			h.mu.RUnlock()
			continue
		}
		h.mu.RUnlock()

		frame, err := h.camera.ReadFrame()
		if err != nil {
			continue
		}

		hands, err := h.detector.Detect(frame)
		frame.Close()
		if err != nil {
			continue
		}

		message := fingersMessage{Timestamp: time.Now().UnixMilli()}
		if h.status != nil {
			message.CooldownMs = h.status.CooldownRemaining().Milliseconds()
		}
		if len(hands) > 0 {
			hand := hands[0]
			count, vector := fingers.Count(&hand)
			message.HandPresent = true
			message.Count = count
			message.Vector = vector
			message.Handedness = hand.Handedness
		}

		msg, _ := json.Marshal(message)

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
