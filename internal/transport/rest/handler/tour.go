package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"boardquest/internal/service"
	"boardquest/internal/transport/rest/middleware"
)

const tourStreamLimit = 100

// TourHandler exposes the tour chat/reaction streams. Each request opens a
// short-lived session scoped to its room and location.
type TourHandler struct {
	tourSvc *service.TourService
	roomSvc *service.RoomService
}

// NewTourHandler creates a new tour handler.
func NewTourHandler(tourSvc *service.TourService, roomSvc *service.RoomService) *TourHandler {
	return &TourHandler{tourSvc: tourSvc, roomSvc: roomSvc}
}

// MessageRequest is the request body for posting a tour chat message.
type MessageRequest struct {
	Text string `json:"text"`
}

// PostMessage handles POST /v1/rooms/{code}/tour/{location}/messages
func (h *TourHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	roomCode := middleware.GetRoomCode(r.Context())
	playerID := middleware.GetPlayerID(r.Context())
	locationID := mux.Vars(r)["location"]

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeError(w, http.StatusBadRequest, "message text is required")
		return
	}

	room, err := h.roomSvc.GetRoom(r.Context(), roomCode)
	if err != nil {
		writeGameError(w, err)
		return
	}
	nickname := ""
	if p, ok := room.Players[playerID]; ok {
		nickname = p.Nickname
	}

	sess := h.tourSvc.OpenSession(roomCode, locationID)
	defer sess.Close()

	msg, err := sess.PostMessage(r.Context(), playerID, nickname, req.Text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// ReactionRequest is the request body for posting a reaction.
type ReactionRequest struct {
	Emoji string `json:"emoji"`
}

// PostReaction handles POST /v1/rooms/{code}/tour/{location}/reactions
func (h *TourHandler) PostReaction(w http.ResponseWriter, r *http.Request) {
	roomCode := middleware.GetRoomCode(r.Context())
	playerID := middleware.GetPlayerID(r.Context())
	locationID := mux.Vars(r)["location"]

	var req ReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Emoji == "" {
		writeError(w, http.StatusBadRequest, "emoji is required")
		return
	}

	sess := h.tourSvc.OpenSession(roomCode, locationID)
	defer sess.Close()

	reaction, err := sess.PostReaction(r.Context(), playerID, req.Emoji)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, reaction)
}

// Messages handles GET /v1/rooms/{code}/tour/{location}/messages?since=<unix>
func (h *TourHandler) Messages(w http.ResponseWriter, r *http.Request) {
	roomCode := middleware.GetRoomCode(r.Context())
	locationID := mux.Vars(r)["location"]

	sess := h.tourSvc.OpenSession(roomCode, locationID)
	defer sess.Close()

	msgs, err := sess.MessagesSince(r.Context(), sinceParam(r), tourStreamLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": msgs})
}

// Reactions handles GET /v1/rooms/{code}/tour/{location}/reactions?since=<unix>
func (h *TourHandler) Reactions(w http.ResponseWriter, r *http.Request) {
	roomCode := middleware.GetRoomCode(r.Context())
	locationID := mux.Vars(r)["location"]

	sess := h.tourSvc.OpenSession(roomCode, locationID)
	defer sess.Close()

	reactions, err := sess.ReactionsSince(r.Context(), sinceParam(r), tourStreamLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reactions": reactions})
}

func sinceParam(r *http.Request) time.Time {
	if raw := r.URL.Query().Get("since"); raw != "" {
		if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return time.Unix(unix, 0)
		}
	}
	return time.Time{}
}
