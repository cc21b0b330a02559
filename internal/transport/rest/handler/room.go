package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"boardquest/internal/model"
	"boardquest/internal/service"
	"boardquest/internal/transport/rest/middleware"
)

// RoomHandler handles room lifecycle endpoints.
type RoomHandler struct {
	roomSvc *service.RoomService
}

// NewRoomHandler creates a new room handler.
func NewRoomHandler(roomSvc *service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// CreateRoomRequest is the request body for creating a room.
type CreateRoomRequest struct {
	SettingsOverride *model.RoomSettings `json:"settingsOverride,omitempty"`
}

// Create handles POST /v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.GetAdminID(r.Context())
	if adminID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// Empty body means default settings.
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	room, err := h.roomSvc.CreateRoom(r.Context(), adminID, req.SettingsOverride)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"roomId":   room.ID,
		"roomCode": room.Code,
	})
}

// Get handles GET /v1/rooms/{code} — the coarse polling read for positions
// and scores. Event transitions arrive by push instead.
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	room, err := h.roomSvc.GetRoom(r.Context(), code)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// JoinRequest is the request body for joining a room.
type JoinRequest struct {
	Nickname string `json:"nickname"`
}

// Join handles POST /v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Nickname == "" {
		writeError(w, http.StatusBadRequest, "nickname is required")
		return
	}

	resp, err := h.roomSvc.JoinRoom(r.Context(), code, req.Nickname)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Start handles POST /v1/rooms/{code}/start
func (h *RoomHandler) Start(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	adminID := middleware.GetAdminID(r.Context())

	room, err := h.roomSvc.StartGame(r.Context(), code, adminID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    room.Status,
		"startedAt": room.StartedAt,
	})
}

// End handles POST /v1/rooms/{code}/end
func (h *RoomHandler) End(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	adminID := middleware.GetAdminID(r.Context())

	room, err := h.roomSvc.EndGame(r.Context(), code, adminID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      room.Status,
		"endedAt":     room.EndedAt,
		"leaderboard": room.Leaderboard,
	})
}

// Delete handles DELETE /v1/rooms/{code}
func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	adminID := middleware.GetAdminID(r.Context())

	if err := h.roomSvc.DeleteRoom(r.Context(), code, adminID); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// MyRank handles GET /v1/rooms/{code}/leaderboard/me — the caller's cached
// standing plus the current top rows.
func (h *RoomHandler) MyRank(w http.ResponseWriter, r *http.Request) {
	roomCode := middleware.GetRoomCode(r.Context())
	playerID := middleware.GetPlayerID(r.Context())

	rank, top, err := h.roomSvc.PlayerRank(r.Context(), roomCode, playerID, 10)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rank": rank,
		"top":  top,
	})
}

// Leaderboard handles GET /v1/rooms/{code}/leaderboard
func (h *RoomHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	entries, err := h.roomSvc.Leaderboard(r.Context(), code)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"leaderboard": entries})
}

// Questions handles GET /v1/rooms/{code}/questions — the cached quiz pool,
// answers stripped.
func (h *RoomHandler) Questions(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	questions, err := h.roomSvc.Questions(r.Context(), code)
	if err != nil {
		writeGameError(w, err)
		return
	}
	views := make([]model.QuestionView, len(questions))
	for i, q := range questions {
		views[i] = q.View()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": views})
}
