// Package api provides the HTTP API handlers for the Mudra gesture launcher.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/store"
)

// MappingHandler handles HTTP requests for finger-count mappings.
type MappingHandler struct {
	store *store.Store
}

// NewMappingHandler creates a new MappingHandler with the given store.
func NewMappingHandler(s *store.Store) *MappingHandler {
	return &MappingHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests.
// Expected paths: /api/mappings or /api/mappings/{count}.
func (h *MappingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/mappings")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/mappings
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	count, err := strconv.Atoi(path)
	if err != nil || count < 0 || count > 5 {
		http.Error(w, "Finger count must be 0-5", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, count)
	case http.MethodPut:
		h.put(w, r, count)
	case http.MethodDelete:
		h.delete(w, r, count)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type putMappingRequest struct {
	Kind      action.Kind `json:"kind"`
	Parameter string      `json:"parameter"`
}

type mappingResponse struct {
	FingerCount int         `json:"finger_count"`
	Kind        action.Kind `json:"kind"`
	Parameter   string      `json:"parameter"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func toMappingResponse(m *store.Mapping) mappingResponse {
	return mappingResponse{
		FingerCount: m.FingerCount,
		Kind:        m.Kind,
		Parameter:   m.Parameter,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (h *MappingHandler) list(w http.ResponseWriter, r *http.Request) {
	mappings, err := h.store.Mappings().List()
	if err != nil {
		http.Error(w, "Failed to list mappings", http.StatusInternalServerError)
		return
	}

	response := make([]mappingResponse, 0, len(mappings))
	for _, m := range mappings {
		response = append(response, toMappingResponse(m))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *MappingHandler) get(w http.ResponseWriter, r *http.Request, count int) {
	m, err := h.store.Mappings().Get(count)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Mapping not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get mapping", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toMappingResponse(m))
}

func (h *MappingHandler) put(w http.ResponseWriter, r *http.Request, count int) {
	var req putMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !req.Kind.Valid() {
		http.Error(w, "Unknown action kind", http.StatusBadRequest)
		return
	}

	desc := action.Descriptor{Kind: req.Kind, Parameter: req.Parameter}
	if err := h.store.Mappings().Upsert(count, desc); err != nil {
		http.Error(w, "Failed to save mapping", http.StatusInternalServerError)
		return
	}

	m, err := h.store.Mappings().Get(count)
	if err != nil {
		http.Error(w, "Failed to load saved mapping", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toMappingResponse(m))
}

func (h *MappingHandler) delete(w http.ResponseWriter, r *http.Request, count int) {
	if err := h.store.Mappings().Delete(count); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Mapping not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete mapping", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeJSON encodes v as the JSON response body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
