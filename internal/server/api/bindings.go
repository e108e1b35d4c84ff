// Package api implements the JSON endpoints of the mudra HTTP server.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lokesh7385/mudra/internal/action"
	"github.com/lokesh7385/mudra/internal/store"
)

// EffectiveSource reports the binding in force for every action kind,
// stored or default. *plugin.ActionExecutor satisfies it.
type EffectiveSource interface {
	Effective() ([]store.Binding, error)
}

// BindingHandler handles HTTP requests for binding resources.
type BindingHandler struct {
	store     *store.Store
	effective EffectiveSource
}

// NewBindingHandler creates a BindingHandler. effective may be nil, in
// which case listings carry only stored bindings.
func NewBindingHandler(s *store.Store, effective EffectiveSource) *BindingHandler {
	return &BindingHandler{store: s, effective: effective}
}

// ServeHTTP routes /api/bindings and /api/bindings/{id}.
func (h *BindingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/bindings")
	id := strings.TrimPrefix(path, "/")

	if id == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type bindingRequest struct {
	Action       string          `json:"action"`
	PluginName   string          `json:"plugin"`
	PluginAction string          `json:"plugin_action"`
	Params       json.RawMessage `json:"params"`
	Enabled      *bool           `json:"enabled"`
}

type bindingResponse struct {
	ID           string          `json:"id,omitempty"`
	Action       string          `json:"action"`
	PluginName   string          `json:"plugin"`
	PluginAction string          `json:"plugin_action"`
	Params       json.RawMessage `json:"params"`
	Enabled      bool            `json:"enabled"`
	CreatedAt    string          `json:"created_at,omitempty"`
	// Default marks a built-in binding with no stored override.
	Default bool `json:"default,omitempty"`
}

type listBindingsResponse struct {
	Bindings  []bindingResponse `json:"bindings"`
	Effective []bindingResponse `json:"effective,omitempty"`
}

func toBindingResponse(b *store.Binding) bindingResponse {
	params := b.Params
	if params == nil {
		params = json.RawMessage("{}")
	}
	resp := bindingResponse{
		ID:           b.ID,
		Action:       b.Action.String(),
		PluginName:   b.PluginName,
		PluginAction: b.PluginAction,
		Params:       params,
		Enabled:      b.Enabled,
		Default:      b.ID == "",
	}
	if !b.CreatedAt.IsZero() {
		resp.CreatedAt = b.CreatedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}

// parseAction accepts any action kind except none.
func parseAction(name string) (action.Kind, bool) {
	k, err := action.ParseKind(name)
	if err != nil || k == action.None {
		return action.None, false
	}
	return k, true
}

// list handles GET /api/bindings.
func (h *BindingHandler) list(w http.ResponseWriter, r *http.Request) {
	stored, err := h.store.Bindings().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list bindings")
		return
	}

	response := listBindingsResponse{
		Bindings: make([]bindingResponse, 0, len(stored)),
	}
	for _, b := range stored {
		response.Bindings = append(response.Bindings, toBindingResponse(b))
	}

	if h.effective != nil {
		effective, err := h.effective.Effective()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to resolve bindings")
			return
		}
		response.Effective = make([]bindingResponse, 0, len(effective))
		for i := range effective {
			response.Effective = append(response.Effective, toBindingResponse(&effective[i]))
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/bindings/{id}.
func (h *BindingHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	b, err := h.store.Bindings().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Binding not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get binding")
		return
	}

	writeJSON(w, http.StatusOK, toBindingResponse(b))
}

// create handles POST /api/bindings.
func (h *BindingHandler) create(w http.ResponseWriter, r *http.Request) {
	var req bindingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	kind, ok := parseAction(req.Action)
	if !ok {
		writeError(w, http.StatusBadRequest, "action must be one of "+kindList())
		return
	}
	if req.PluginName == "" {
		writeError(w, http.StatusBadRequest, "plugin is required")
		return
	}
	if req.PluginAction == "" {
		writeError(w, http.StatusBadRequest, "plugin_action is required")
		return
	}
	if !validParams(req.Params) {
		writeError(w, http.StatusBadRequest, "params must be a JSON object")
		return
	}

	b := &store.Binding{
		Action:       kind,
		PluginName:   req.PluginName,
		PluginAction: req.PluginAction,
		Params:       req.Params,
		Enabled:      true,
	}
	if req.Enabled != nil {
		b.Enabled = *req.Enabled
	}

	if err := h.store.Bindings().Create(b); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "Action already has a binding")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create binding")
		return
	}

	writeJSON(w, http.StatusCreated, toBindingResponse(b))
}

// update handles PUT /api/bindings/{id}. Omitted fields keep their value.
func (h *BindingHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	b, err := h.store.Bindings().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Binding not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get binding")
		return
	}

	var req bindingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Action != "" {
		kind, ok := parseAction(req.Action)
		if !ok {
			writeError(w, http.StatusBadRequest, "action must be one of "+kindList())
			return
		}
		b.Action = kind
	}
	if req.PluginName != "" {
		b.PluginName = req.PluginName
	}
	if req.PluginAction != "" {
		b.PluginAction = req.PluginAction
	}
	if req.Params != nil {
		if !validParams(req.Params) {
			writeError(w, http.StatusBadRequest, "params must be a JSON object")
			return
		}
		b.Params = req.Params
	}
	if req.Enabled != nil {
		b.Enabled = *req.Enabled
	}

	if err := h.store.Bindings().Update(b); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "Action already has a binding")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update binding")
		return
	}

	writeJSON(w, http.StatusOK, toBindingResponse(b))
}

// delete handles DELETE /api/bindings/{id}. The action falls back to its
// default binding.
func (h *BindingHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Bindings().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Binding not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete binding")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func validParams(raw json.RawMessage) bool {
	if raw == nil {
		return true
	}
	var obj map[string]any
	return json.Unmarshal(raw, &obj) == nil && obj != nil
}

func kindList() string {
	names := make([]string, len(action.Kinds))
	for i, k := range action.Kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}
