package game

import (
	"errors"
	"fmt"
)

// Expected, recoverable rule violations. Handlers translate these into
// user-facing responses; none of them should ever crash a client.
var (
	ErrRoomFull         = errors.New("room is full")
	ErrAlreadyStarted   = errors.New("game already started")
	ErrRoomNotFound     = errors.New("room not found")
	ErrGameNotStarted   = errors.New("game has not started")
	ErrGameEnded        = errors.New("game has ended")
	ErrPlayerNotFound   = errors.New("player not in room")
	ErrNotAdmin         = errors.New("caller is not the room admin")
	ErrNotEnoughPlayers = errors.New("need at least 2 players to start")
	ErrNoCredits        = errors.New("no dice rolls available")
	ErrEventActive      = errors.New("another event is already active")
	ErrEventExhausted   = errors.New("event already used this game")
	ErrAlreadyClaimed   = errors.New("already claimed from this category")
	ErrPlayerCapReached = errors.New("player reached the reward cap")
	ErrUnknownCategory  = errors.New("unknown reward category")
)

// CooldownError rejects a roll attempted before the cooldown elapsed.
type CooldownError struct {
	RemainingSec int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("dice cooldown active, wait %ds", e.RemainingSec)
}

// LockedError rejects a claim when every unlocked unit is already taken.
type LockedError struct {
	// NextUnlockSec is seconds until the next tranche opens, -1 when the
	// pool capacity itself is exhausted.
	NextUnlockSec int
}

func (e *LockedError) Error() string {
	if e.NextUnlockSec < 0 {
		return "reward pool exhausted"
	}
	return fmt.Sprintf("reward not yet unlocked, next in %ds", e.NextUnlockSec)
}
