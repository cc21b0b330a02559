package handler

import (
	"encoding/json"
	"net/http"

	"boardquest/internal/service"
	"boardquest/internal/transport/rest/middleware"
)

// GameHandler handles in-game action endpoints.
type GameHandler struct {
	gameSvc *service.GameService
	roomSvc *service.RoomService
}

// NewGameHandler creates a new game handler.
func NewGameHandler(gameSvc *service.GameService, roomSvc *service.RoomService) *GameHandler {
	return &GameHandler{gameSvc: gameSvc, roomSvc: roomSvc}
}

// Roll handles POST /v1/rooms/{code}/roll
func (h *GameHandler) Roll(w http.ResponseWriter, r *http.Request) {
	roomCode := middleware.GetRoomCode(r.Context())
	playerID := middleware.GetPlayerID(r.Context())

	result, err := h.gameSvc.RollDice(r.Context(), roomCode, playerID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// AnswerRequest is the request body for answering a quiz question.
type AnswerRequest struct {
	QuestionID string `json:"questionId"`
	Choice     int    `json:"choice"`
}

// Answer handles POST /v1/rooms/{code}/answers. The answer is graded here
// and queued; the ledger write happens when the player's batch flushes.
func (h *GameHandler) Answer(w http.ResponseWriter, r *http.Request) {
	roomCode := middleware.GetRoomCode(r.Context())
	playerID := middleware.GetPlayerID(r.Context())

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	questions, err := h.roomSvc.Questions(r.Context(), roomCode)
	if err != nil {
		writeGameError(w, err)
		return
	}

	var correct, found bool
	for _, q := range questions {
		if q.ID == req.QuestionID {
			correct = q.Correct(req.Choice)
			found = true
			break
		}
	}
	if !found {
		writeError(w, http.StatusNotFound, "question not in this room's pool")
		return
	}

	h.gameSvc.AnswerQuiz(roomCode, playerID, correct)

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"correct": correct,
		"queued":  true,
	})
}
