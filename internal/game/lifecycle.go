// Package game implements the shared room state machine: lifecycle
// transitions, the dice-roll ledger, the event scheduler and the reward
// allocator. Every function here is a pure mutation of a *model.Room held in
// memory; persistence and atomicity are the caller's concern (the repository
// runs these inside a conditional-replace retry loop).
package game

import (
	"time"

	"boardquest/internal/model"
)

// NewRoom builds a fresh room in waiting status with default reward pools and
// the full event catalog remaining.
func NewRoom(id, code, adminID string, settings model.RoomSettings, now time.Time) *model.Room {
	remaining := make([]model.EventType, len(model.EventCatalog))
	copy(remaining, model.EventCatalog)

	return &model.Room{
		ID:        id,
		Code:      code,
		AdminID:   adminID,
		Status:    model.RoomWaiting,
		Settings:  settings,
		Players:   map[string]*model.Player{},
		Rewards:   model.DefaultRewardPools(settings.GameDurationSec),
		Events:    model.EventState{Remaining: remaining},
		CreatedAt: now,
	}
}

// Join admits a player into a waiting room.
func Join(room *model.Room, playerID, nickname string, now time.Time) (*model.Player, error) {
	if room.Status != model.RoomWaiting {
		return nil, ErrAlreadyStarted
	}
	if len(room.Players) >= room.Settings.MaxPlayers {
		return nil, ErrRoomFull
	}
	p := &model.Player{
		ID:       playerID,
		Nickname: nickname,
		JoinedAt: now,
	}
	room.Players[playerID] = p
	return p, nil
}

// Start transitions waiting -> playing. Only the room admin may start, and
// only with at least two players present.
func Start(room *model.Room, adminID string, now time.Time) error {
	if room.AdminID != adminID {
		return ErrNotAdmin
	}
	switch room.Status {
	case model.RoomPlaying, model.RoomFinished:
		return ErrAlreadyStarted
	}
	if len(room.Players) < 2 {
		return ErrNotEnoughPlayers
	}
	room.Status = model.RoomPlaying
	started := now
	room.StartedAt = &started
	return nil
}

// Finish transitions the room to finished and freezes the leaderboard.
// Idempotent: finishing a finished room reports false and changes nothing.
func Finish(room *model.Room, now time.Time) bool {
	if room.Status == model.RoomFinished {
		return false
	}
	// Close out a still-active event so history stays complete.
	EndActiveEvent(room, now)
	room.Status = model.RoomFinished
	ended := now
	room.EndedAt = &ended
	room.Leaderboard = ComputeLeaderboard(room)
	return true
}

// Tick performs the lazy, derived-state expiry checks: it clears an event
// whose window has closed and finishes a game whose duration has elapsed.
// Safe to call on every mutation and from racing clients; both checks are
// idempotent. Returns which transitions fired.
func Tick(room *model.Room, now time.Time) (eventEnded, gameEnded bool) {
	eventEnded = expireActiveEvent(room, now)
	if room.Status == model.RoomPlaying && room.Elapsed(now) >= room.Settings.GameDurationSec {
		gameEnded = Finish(room, now)
	}
	return eventEnded, gameEnded
}

// ensurePlaying gates every in-game mutation on lifecycle status.
func ensurePlaying(room *model.Room) error {
	switch room.Status {
	case model.RoomWaiting:
		return ErrGameNotStarted
	case model.RoomFinished:
		return ErrGameEnded
	}
	return nil
}

func player(room *model.Room, playerID string) (*model.Player, error) {
	p, ok := room.Players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}
