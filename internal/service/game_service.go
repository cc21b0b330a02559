package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"boardquest/internal/cache"
	"boardquest/internal/game"
	"boardquest/internal/model"
	"boardquest/internal/repository"
)

// GameService orchestrates in-game actions: dice rolls and quiz answers.
// Every mutation runs inside the room repo's conditional-write loop so
// concurrent players cannot lose updates.
type GameService struct {
	roomRepo    repository.RoomRepo
	leaderboard cache.LeaderboardCache
	broadcaster Broadcaster
	batcher     *AnswerBatcher

	// die draws one uniform face in [1,6]; swappable in tests.
	die func() int
}

// NewGameService creates a new game service.
func NewGameService(roomRepo repository.RoomRepo, leaderboard cache.LeaderboardCache) *GameService {
	s := &GameService{
		roomRepo:    roomRepo,
		leaderboard: leaderboard,
		die:         func() int { return rand.Intn(6) + 1 },
	}
	s.batcher = NewAnswerBatcher(s.settleAnswers, DefaultFlushDelay, DefaultMaxBatch)
	return s
}

// SetBroadcaster sets the broadcaster for WebSocket events.
func (s *GameService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Batcher exposes the answer queue for shutdown draining.
func (s *GameService) Batcher() *AnswerBatcher {
	return s.batcher
}

// RollDice spends one credit and moves the player. The raw face is returned
// for the UI even when an event doubles the movement.
func (s *GameService) RollDice(ctx context.Context, roomCode, playerID string) (*game.RollResult, error) {
	face := s.die()

	var result *game.RollResult
	room, err := s.roomRepo.Mutate(ctx, roomCode, func(r *model.Room) error {
		game.Tick(r, time.Now())
		res, err := game.ApplyRoll(r, playerID, face, time.Now())
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.refreshLeaderboard(ctx, room)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAll(roomCode, "dice_rolled", map[string]interface{}{
			"playerId": playerID,
			"face":     result.Face,
			"movement": result.Movement,
			"position": result.Position,
			"lapped":   result.Lapped,
		})
	}
	return result, nil
}

// AnswerQuiz enqueues one graded answer. Rapid answers coalesce into a
// single ledger write; the active event is re-read when the batch flushes,
// not now.
func (s *GameService) AnswerQuiz(roomCode, playerID string, correct bool) {
	s.batcher.Enqueue(roomCode, playerID, correct)
}

// settleAnswers is the batch flush: one conditional write settles every
// answer queued for this player against the event live at flush time.
func (s *GameService) settleAnswers(ctx context.Context, roomCode, playerID string, correct, incorrect int) {
	var result *game.QuizResult
	room, err := s.roomRepo.Mutate(ctx, roomCode, func(r *model.Room) error {
		game.Tick(r, time.Now())
		res, err := game.ApplyQuizAnswers(r, playerID, correct, incorrect, time.Now())
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		// Expected when the game ended between enqueue and flush.
		log.Debug().Err(err).Str("room", roomCode).Str("player", playerID).
			Msg("quiz batch dropped")
		return
	}

	s.refreshLeaderboard(ctx, room)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToPlayer(roomCode, playerID, "quiz_settled", map[string]interface{}{
			"creditsGranted": result.CreditsGranted,
			"scoreDelta":     result.ScoreDelta,
			"credits":        result.Credits,
			"score":          result.Score,
		})
	}
}

// refreshLeaderboard mirrors the current scores into the Redis ZSET and
// pushes the ranking to the admin console.
func (s *GameService) refreshLeaderboard(ctx context.Context, room *model.Room) {
	entries := game.ComputeLeaderboard(room)
	for _, e := range entries {
		if err := s.leaderboard.UpdateScore(ctx, room.Code, e.PlayerID, e.Score); err != nil {
			log.Warn().Err(err).Str("room", room.Code).Msg("leaderboard cache update failed")
			break
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAdmin(room.Code, "leaderboard_update", map[string]interface{}{
			"leaderboard": entries,
		})
	}
}
