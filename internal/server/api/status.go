package api

import (
	"encoding/json"
	"net/http"

	"github.com/lokesh7385/mudra/internal/app"
)

// Controller exposes pipeline state and the detection toggle. *app.App
// satisfies it.
type Controller interface {
	Status() app.Status
	IsEnabled() bool
	SetEnabled(enabled bool) error
}

// StatusHandler serves GET /api/status.
type StatusHandler struct {
	app Controller
}

// NewStatusHandler creates a StatusHandler.
func NewStatusHandler(c Controller) *StatusHandler {
	return &StatusHandler{app: c}
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.app.Status())
}

type enabledBody struct {
	Enabled *bool `json:"enabled"`
}

// EnabledHandler serves GET and PUT /api/enabled.
type EnabledHandler struct {
	app Controller
}

// NewEnabledHandler creates an EnabledHandler.
func NewEnabledHandler(c Controller) *EnabledHandler {
	return &EnabledHandler{app: c}
}

func (h *EnabledHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodPut:
		var req enabledBody
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
			writeError(w, http.StatusBadRequest, `body must be {"enabled": true|false}`)
			return
		}
		if err := h.app.SetEnabled(*req.Enabled); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save setting")
			return
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	enabled := h.app.IsEnabled()
	writeJSON(w, http.StatusOK, enabledBody{Enabled: &enabled})
}
