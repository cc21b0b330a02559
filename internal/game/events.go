package game

import (
	"time"

	"boardquest/internal/model"
)

// TriggerResult reports what triggering an event did.
type TriggerResult struct {
	Type model.EventType `json:"type"`
	// Instant is true for fire-and-forget events that never occupy the
	// active slot.
	Instant bool `json:"instant"`
	// ExpiresAt is set for duration-based events.
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// TriggerEvent activates an event from the remaining catalog. Instant events
// (free_dice, lose_dice) adjust every player's credits immediately; the rest
// occupy the single active slot for durationSec (DefaultEventDurationSec when
// zero). Each type fires at most once per game.
func TriggerEvent(room *model.Room, t model.EventType, durationSec int, now time.Time) (*TriggerResult, error) {
	if err := ensurePlaying(room); err != nil {
		return nil, err
	}
	if !consumeRemaining(room, t) {
		return nil, ErrEventExhausted
	}

	if t.Instant() {
		applyInstant(room, t)
		room.Events.History = append(room.Events.History, model.EventRecord{
			Type:      t,
			StartedAt: now,
			EndedAt:   now,
		})
		return &TriggerResult{Type: t, Instant: true}, nil
	}

	if room.Events.ActiveType(now) != "" {
		// Put the tag back; the trigger did not happen.
		room.Events.Remaining = append(room.Events.Remaining, t)
		return nil, ErrEventActive
	}
	// A stale expired event may still sit in the slot if no mutation ran
	// since its window closed.
	expireActiveEvent(room, now)

	if durationSec <= 0 {
		durationSec = model.DefaultEventDurationSec
	}
	room.Events.Active = &model.ActiveEvent{
		Type:        t,
		StartedAt:   now,
		DurationSec: durationSec,
	}
	exp := room.Events.Active.ExpiresAt()
	return &TriggerResult{Type: t, ExpiresAt: &exp}, nil
}

// EndActiveEvent terminates the active event early, appending it to history.
// Idempotent: reports false when no event is active.
func EndActiveEvent(room *model.Room, now time.Time) bool {
	if room.Events.Active == nil {
		return false
	}
	ev := room.Events.Active
	ended := now
	// A racing late end after natural expiry must not stretch the window.
	if exp := ev.ExpiresAt(); ended.After(exp) {
		ended = exp
	}
	room.Events.History = append(room.Events.History, model.EventRecord{
		Type:      ev.Type,
		StartedAt: ev.StartedAt,
		EndedAt:   ended,
	})
	room.Events.Active = nil
	return true
}

// expireActiveEvent clears an event whose window has closed. Idempotent.
func expireActiveEvent(room *model.Room, now time.Time) bool {
	if room.Events.Active == nil || !room.Events.Active.Expired(now) {
		return false
	}
	return EndActiveEvent(room, now)
}

func consumeRemaining(room *model.Room, t model.EventType) bool {
	for i, r := range room.Events.Remaining {
		if r == t {
			room.Events.Remaining = append(room.Events.Remaining[:i], room.Events.Remaining[i+1:]...)
			return true
		}
	}
	return false
}

func applyInstant(room *model.Room, t model.EventType) {
	for _, p := range room.Players {
		switch t {
		case model.EventFreeDice:
			p.FreeDiceRolls++
		case model.EventLoseDice:
			// Take from the free pool first, floor at zero overall.
			if p.FreeDiceRolls > 0 {
				p.FreeDiceRolls--
			} else if p.DiceRolls > 0 {
				p.DiceRolls--
			}
		}
	}
}
