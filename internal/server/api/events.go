package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/store"
)

// EventHandler serves the trigger-event audit log.
type EventHandler struct {
	store *store.Store
}

// NewEventHandler creates a new EventHandler with the given store.
func NewEventHandler(s *store.Store) *EventHandler {
	return &EventHandler{store: s}
}

type eventResponse struct {
	ID          string      `json:"id"`
	FingerCount int         `json:"finger_count"`
	Kind        action.Kind `json:"kind"`
	Parameter   string      `json:"parameter"`
	Acted       bool        `json:"acted"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ServeHTTP handles GET /api/events?limit=N, newest events first.
func (h *EventHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	events, err := h.store.Events().ListRecent(limit)
	if err != nil {
		http.Error(w, "Failed to list events", http.StatusInternalServerError)
		return
	}

	response := make([]eventResponse, 0, len(events))
	for _, e := range events {
		response = append(response, eventResponse{
			ID:          e.ID,
			FingerCount: e.FingerCount,
			Kind:        e.Kind,
			Parameter:   e.Parameter,
			Acted:       e.Acted,
			CreatedAt:   e.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, response)
}
