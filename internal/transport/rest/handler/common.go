package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"boardquest/internal/game"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeGameError maps the expected rule-violation taxonomy onto HTTP
// statuses. Gating failures carry the remaining seconds so clients can show
// "wait N more seconds" toasts; unexpected failures stay 500s.
func writeGameError(w http.ResponseWriter, err error) {
	var cooldown *game.CooldownError
	var locked *game.LockedError

	switch {
	case errors.Is(err, game.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrNotAdmin):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &cooldown):
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":         err.Error(),
			"retryAfterSec": cooldown.RemainingSec,
		})
	case errors.As(err, &locked):
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":         err.Error(),
			"nextUnlockSec": locked.NextUnlockSec,
		})
	case errors.Is(err, game.ErrRoomFull),
		errors.Is(err, game.ErrAlreadyStarted),
		errors.Is(err, game.ErrGameNotStarted),
		errors.Is(err, game.ErrGameEnded),
		errors.Is(err, game.ErrPlayerNotFound),
		errors.Is(err, game.ErrNotEnoughPlayers),
		errors.Is(err, game.ErrNoCredits),
		errors.Is(err, game.ErrEventActive),
		errors.Is(err, game.ErrEventExhausted),
		errors.Is(err, game.ErrAlreadyClaimed),
		errors.Is(err, game.ErrPlayerCapReached),
		errors.Is(err, game.ErrUnknownCategory):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
