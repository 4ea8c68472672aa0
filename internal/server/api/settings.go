package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/store"
)

// SettingHandler serves key-value application settings.
type SettingHandler struct {
	store *store.Store
}

// NewSettingHandler creates a new SettingHandler with the given store.
func NewSettingHandler(s *store.Store) *SettingHandler {
	return &SettingHandler{store: s}
}

type settingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type putSettingRequest struct {
	Value string `json:"value"`
}

// ServeHTTP handles GET and PUT on /api/settings/{key}.
func (h *SettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/api/settings")
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "/") {
		http.Error(w, "Setting key required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		value, err := h.store.Settings().Get(key)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, "Setting not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to get setting", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: value})

	case http.MethodPut:
		var req putSettingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := h.store.Settings().Set(key, req.Value); err != nil {
			http.Error(w, "Failed to save setting", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: req.Value})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
