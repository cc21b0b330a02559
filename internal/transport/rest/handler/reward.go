package handler

import (
	"encoding/json"
	"net/http"

	"boardquest/internal/model"
	"boardquest/internal/service"
	"boardquest/internal/transport/rest/middleware"
)

// RewardHandler handles reward claim endpoints.
type RewardHandler struct {
	rewardSvc *service.RewardService
}

// NewRewardHandler creates a new reward handler.
func NewRewardHandler(rewardSvc *service.RewardService) *RewardHandler {
	return &RewardHandler{rewardSvc: rewardSvc}
}

// ClaimRequest is the request body for claiming a reward.
type ClaimRequest struct {
	Category model.RewardCategory `json:"category"`
}

// Claim handles POST /v1/rooms/{code}/rewards/claim
func (h *RewardHandler) Claim(w http.ResponseWriter, r *http.Request) {
	roomCode := middleware.GetRoomCode(r.Context())
	playerID := middleware.GetPlayerID(r.Context())

	var req ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	valid := false
	for _, cat := range model.RewardCategories {
		if cat == req.Category {
			valid = true
			break
		}
	}
	if !valid {
		writeError(w, http.StatusBadRequest, "unknown reward category")
		return
	}

	result, err := h.rewardSvc.Claim(r.Context(), roomCode, playerID, req.Category)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
