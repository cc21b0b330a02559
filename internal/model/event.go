package model

import "time"

// EventType tags the fixed catalog of modifier events. The string values are
// part of the persisted schema and must not be renamed without a migration.
type EventType string

const (
	EventDiceDouble     EventType = "dice_double"
	EventScoreDouble    EventType = "score_double"
	EventQuizBonus      EventType = "quiz_bonus"
	EventFreeDice       EventType = "free_dice"
	EventLoseDice       EventType = "lose_dice"
	EventPenaltyWrong   EventType = "penalty_wrong"
	EventNoScore        EventType = "no_score"
	EventLowDicePenalty EventType = "low_dice_penalty"
)

// EventCatalog lists every event type, each triggerable at most once per game.
var EventCatalog = []EventType{
	EventDiceDouble,
	EventScoreDouble,
	EventQuizBonus,
	EventFreeDice,
	EventLoseDice,
	EventPenaltyWrong,
	EventNoScore,
	EventLowDicePenalty,
}

// Instant reports whether the event applies its effect immediately to every
// player's credits and never occupies the active slot.
func (t EventType) Instant() bool {
	return t == EventFreeDice || t == EventLoseDice
}

// DefaultEventDurationSec is how long a duration-based event stays active
// unless the trigger request overrides it.
const DefaultEventDurationSec = 75

// ActiveEvent is the single currently-in-effect modifier. Expiry is derived
// from StartedAt+Duration by readers; no timer owns it.
type ActiveEvent struct {
	Type        EventType `json:"type" bson:"type"`
	StartedAt   time.Time `json:"startedAt" bson:"startedAt"`
	DurationSec int       `json:"durationSec" bson:"durationSec"`
}

// ExpiresAt returns the instant the event stops applying.
func (e *ActiveEvent) ExpiresAt() time.Time {
	return e.StartedAt.Add(time.Duration(e.DurationSec) * time.Second)
}

// Expired reports whether the event window has closed at now.
func (e *ActiveEvent) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt())
}

// EventRecord is one entry of the append-only history, display/audit only.
type EventRecord struct {
	Type      EventType `json:"type" bson:"type"`
	StartedAt time.Time `json:"startedAt" bson:"startedAt"`
	EndedAt   time.Time `json:"endedAt" bson:"endedAt"`
}

// EventState holds the scheduler's view: at most one active event, the tags
// not yet used this game, and the past-event log.
type EventState struct {
	Active    *ActiveEvent  `json:"activeEvent,omitempty" bson:"activeEvent,omitempty"`
	Remaining []EventType   `json:"remainingEvents" bson:"remainingEvents"`
	History   []EventRecord `json:"eventHistory,omitempty" bson:"eventHistory,omitempty"`
}

// ActiveType returns the live event type at now, or "" when none applies.
// Callers use this instead of per-player effect flags so a stale cached copy
// can never disagree with the authoritative event.
func (s *EventState) ActiveType(now time.Time) EventType {
	if s.Active == nil || s.Active.Expired(now) {
		return ""
	}
	return s.Active.Type
}
