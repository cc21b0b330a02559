package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"boardquest/internal/model"
	"boardquest/internal/service"
	"boardquest/internal/transport/rest/middleware"
)

// EventHandler handles modifier event endpoints.
type EventHandler struct {
	eventSvc *service.EventService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventSvc *service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// TriggerRequest is the request body for triggering an event.
type TriggerRequest struct {
	Type        model.EventType `json:"type"`
	DurationSec int             `json:"durationSec,omitempty"`
}

// Trigger handles POST /v1/rooms/{code}/events
func (h *EventHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	adminID := middleware.GetAdminID(r.Context())

	var req TriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Type == "" {
		writeError(w, http.StatusBadRequest, "event type is required")
		return
	}

	result, err := h.eventSvc.Trigger(r.Context(), code, adminID, req.Type, req.DurationSec)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// End handles POST /v1/rooms/{code}/events/end
func (h *EventHandler) End(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	adminID := middleware.GetAdminID(r.Context())

	if err := h.eventSvc.EndActive(r.Context(), code, adminID); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Expire handles POST /v1/rooms/{code}/events/expire. Any client observing
// a closed window may call it; duplicates are no-ops.
func (h *EventHandler) Expire(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	if err := h.eventSvc.ExpireIfDue(r.Context(), code); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
