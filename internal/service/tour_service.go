package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"boardquest/internal/model"
	"boardquest/internal/repository"
)

// TourService hands out explicit sessions over the tour chat and reaction
// streams. A session is scoped to one room and location and must be closed
// by its opener; there is no process-wide "current tour" state, so observing
// several rooms in one process behaves predictably.
type TourService struct {
	tourRepo repository.TourRepo

	mu   sync.Mutex
	open map[string]*TourSession
}

// NewTourService creates a new tour service.
func NewTourService(tourRepo repository.TourRepo) *TourService {
	return &TourService{
		tourRepo: tourRepo,
		open:     make(map[string]*TourSession),
	}
}

// OpenSession opens a live view onto one room/location stream pair.
func (s *TourService) OpenSession(roomCode, locationID string) *TourSession {
	sess := &TourSession{
		id:         "ts_" + uuid.New().String()[:8],
		roomCode:   roomCode,
		locationID: locationID,
		svc:        s,
	}
	s.mu.Lock()
	s.open[sess.id] = sess
	s.mu.Unlock()
	return sess
}

func (s *TourService) closeSession(sess *TourSession) {
	s.mu.Lock()
	delete(s.open, sess.id)
	s.mu.Unlock()
}

// OpenSessions reports how many sessions are currently live.
func (s *TourService) OpenSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.open)
}

// TourSession is one opened stream view with an explicit lifecycle.
type TourSession struct {
	id         string
	roomCode   string
	locationID string
	svc        *TourService

	closedMu sync.Mutex
	closed   bool
}

// ErrSessionClosed rejects operations on a closed session.
var ErrSessionClosed = errors.New("tour session closed")

func (t *TourSession) ensureOpen() error {
	t.closedMu.Lock()
	defer t.closedMu.Unlock()
	if t.closed {
		return ErrSessionClosed
	}
	return nil
}

// PostMessage appends one chat message to the stream.
func (t *TourSession) PostMessage(ctx context.Context, playerID, nickname, text string) (*model.TourMessage, error) {
	if err := t.ensureOpen(); err != nil {
		return nil, err
	}
	msg := &model.TourMessage{
		ID:         "tm_" + uuid.New().String()[:12],
		RoomCode:   t.roomCode,
		LocationID: t.locationID,
		PlayerID:   playerID,
		Nickname:   nickname,
		Text:       text,
		SentAt:     time.Now(),
	}
	if err := t.svc.tourRepo.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// PostReaction appends one emoji reaction to the stream.
func (t *TourSession) PostReaction(ctx context.Context, playerID, emoji string) (*model.TourReaction, error) {
	if err := t.ensureOpen(); err != nil {
		return nil, err
	}
	reaction := &model.TourReaction{
		ID:         "tr_" + uuid.New().String()[:12],
		RoomCode:   t.roomCode,
		LocationID: t.locationID,
		PlayerID:   playerID,
		Emoji:      emoji,
		SentAt:     time.Now(),
	}
	if err := t.svc.tourRepo.AppendReaction(ctx, reaction); err != nil {
		return nil, err
	}
	return reaction, nil
}

// MessagesSince reads the chat stream forward from a point in time.
func (t *TourSession) MessagesSince(ctx context.Context, since time.Time, limit int) ([]*model.TourMessage, error) {
	if err := t.ensureOpen(); err != nil {
		return nil, err
	}
	return t.svc.tourRepo.MessagesSince(ctx, t.roomCode, t.locationID, since, limit)
}

// ReactionsSince reads the reaction stream forward from a point in time.
func (t *TourSession) ReactionsSince(ctx context.Context, since time.Time, limit int) ([]*model.TourReaction, error) {
	if err := t.ensureOpen(); err != nil {
		return nil, err
	}
	return t.svc.tourRepo.ReactionsSince(ctx, t.roomCode, t.locationID, since, limit)
}

// Close releases the session; further operations fail.
func (t *TourSession) Close() {
	t.closedMu.Lock()
	already := t.closed
	t.closed = true
	t.closedMu.Unlock()
	if !already {
		t.svc.closeSession(t)
	}
}
