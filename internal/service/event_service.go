package service

import (
	"context"
	"time"

	"boardquest/internal/game"
	"boardquest/internal/model"
	"boardquest/internal/repository"
)

// EventService admits modifier events into the single active slot. Only the
// room admin triggers and ends events; expiry may be performed by anyone who
// observes a closed window.
type EventService struct {
	roomRepo    repository.RoomRepo
	broadcaster Broadcaster
}

// NewEventService creates a new event service.
func NewEventService(roomRepo repository.RoomRepo) *EventService {
	return &EventService{roomRepo: roomRepo}
}

// SetBroadcaster sets the broadcaster for WebSocket events.
func (s *EventService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Trigger activates an event from the remaining catalog.
func (s *EventService) Trigger(ctx context.Context, roomCode, adminID string, t model.EventType, durationSec int) (*game.TriggerResult, error) {
	var result *game.TriggerResult
	_, err := s.roomRepo.Mutate(ctx, roomCode, func(r *model.Room) error {
		if r.AdminID != adminID {
			return game.ErrNotAdmin
		}
		game.Tick(r, time.Now())
		res, err := game.TriggerEvent(r, t, durationSec, time.Now())
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		// Event state must reach players by push, not polling: quiz-answer
		// correctness depends on seeing the freshest active event.
		s.broadcaster.BroadcastToAll(roomCode, "event_started", result)
	}
	return result, nil
}

// EndActive terminates the active event early on admin action.
func (s *EventService) EndActive(ctx context.Context, roomCode, adminID string) error {
	var ended bool
	room, err := s.roomRepo.Mutate(ctx, roomCode, func(r *model.Room) error {
		if r.AdminID != adminID {
			return game.ErrNotAdmin
		}
		ended = game.EndActiveEvent(r, time.Now())
		return nil
	})
	if err != nil {
		return err
	}
	if ended {
		s.broadcastEnded(roomCode, room)
	}
	return nil
}

// ExpireIfDue clears an event whose window has closed. Any client may call
// it; duplicate attempts are no-ops.
func (s *EventService) ExpireIfDue(ctx context.Context, roomCode string) error {
	var eventEnded bool
	room, err := s.roomRepo.Mutate(ctx, roomCode, func(r *model.Room) error {
		eventEnded, _ = game.Tick(r, time.Now())
		return nil
	})
	if err != nil {
		return err
	}
	if eventEnded {
		s.broadcastEnded(roomCode, room)
	}
	return nil
}

func (s *EventService) broadcastEnded(roomCode string, room *model.Room) {
	if s.broadcaster == nil {
		return
	}
	last := room.Events.History[len(room.Events.History)-1]
	s.broadcaster.BroadcastToAll(roomCode, "event_ended", map[string]interface{}{
		"type":    last.Type,
		"endedAt": last.EndedAt,
	})
}
