package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"boardquest/internal/cache"
	"boardquest/internal/game"
	"boardquest/internal/model"
	"boardquest/internal/repository"
)

// RoomService owns the room lifecycle: creation, admission, start and end.
type RoomService struct {
	roomRepo      repository.RoomRepo
	questionRepo  repository.QuestionRepo
	roomCache     cache.RoomCache
	questionCache cache.QuestionCache
	leaderboard   cache.LeaderboardCache
	authSvc       *AuthService
	broadcaster   Broadcaster
}

// NewRoomService creates a new room service.
func NewRoomService(
	roomRepo repository.RoomRepo,
	questionRepo repository.QuestionRepo,
	roomCache cache.RoomCache,
	questionCache cache.QuestionCache,
	leaderboard cache.LeaderboardCache,
	authSvc *AuthService,
) *RoomService {
	return &RoomService{
		roomRepo:      roomRepo,
		questionRepo:  questionRepo,
		roomCache:     roomCache,
		questionCache: questionCache,
		leaderboard:   leaderboard,
		authSvc:       authSvc,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events.
func (s *RoomService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// CreateRoom seeds a fresh waiting room with a unique join code, default
// reward pools and the full event catalog, and draws its question set.
func (s *RoomService) CreateRoom(ctx context.Context, adminID string, overrides *model.RoomSettings) (*model.Room, error) {
	code, err := s.generateRoomCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate room code: %w", err)
	}

	settings := model.DefaultSettings()
	if overrides != nil {
		applySettingsOverrides(&settings, overrides)
	}

	room := game.NewRoom("rm_"+uuid.New().String()[:12], code, adminID, settings, time.Now())

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	meta := &cache.RoomMeta{
		RoomID:    room.ID,
		AdminID:   adminID,
		Status:    room.Status,
		CreatedAt: room.CreatedAt,
	}
	if err := s.roomCache.SetMeta(ctx, code, meta); err != nil {
		return nil, fmt.Errorf("failed to cache room: %w", err)
	}

	// Draw the quiz pool once per room; players read it from the cache.
	questions, err := s.questionRepo.List(ctx, settings.TotalQuestions)
	if err != nil {
		return nil, fmt.Errorf("failed to draw questions: %w", err)
	}
	if err := s.questionCache.SetPool(ctx, code, questions); err != nil {
		return nil, fmt.Errorf("failed to cache questions: %w", err)
	}

	return room, nil
}

// GetRoom retrieves a room by code, performing the lazy duration expiry if
// this reader happens to observe a game past its end time.
func (s *RoomService) GetRoom(ctx context.Context, code string) (*model.Room, error) {
	room, err := s.roomRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, game.ErrRoomNotFound
	}

	now := time.Now()
	if room.Status == model.RoomPlaying && room.Elapsed(now) >= room.Settings.GameDurationSec {
		return s.expireGame(ctx, code)
	}
	return room, nil
}

// JoinRoom admits a player and issues their room-scoped token.
func (s *RoomService) JoinRoom(ctx context.Context, code, nickname string) (*model.JoinResponse, error) {
	playerID := "p_" + uuid.New().String()[:8]

	var joined *model.Player
	room, err := s.roomRepo.Mutate(ctx, code, func(r *model.Room) error {
		game.Tick(r, time.Now())
		p, err := game.Join(r, playerID, nickname, time.Now())
		if err != nil {
			return err
		}
		joined = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.authSvc.GeneratePlayerToken(code, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.leaderboard.UpdateScore(ctx, code, playerID, 0); err != nil {
		return nil, fmt.Errorf("failed to init leaderboard: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAdmin(code, "player_joined", map[string]interface{}{
			"playerId": playerID,
			"nickname": nickname,
			"players":  len(room.Players),
		})
	}

	return &model.JoinResponse{
		PlayerID: playerID,
		Token:    token,
		Room:     room,
		Player:   joined,
	}, nil
}

// StartGame transitions waiting -> playing. Admin only, needs two players.
func (s *RoomService) StartGame(ctx context.Context, code, adminID string) (*model.Room, error) {
	room, err := s.roomRepo.Mutate(ctx, code, func(r *model.Room) error {
		return game.Start(r, adminID, time.Now())
	})
	if err != nil {
		return nil, err
	}

	if err := s.roomCache.SetStatus(ctx, code, model.RoomPlaying); err != nil {
		log.Warn().Err(err).Str("room", code).Msg("failed to mirror status to cache")
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAll(code, "game_started", map[string]interface{}{
			"startedAt":       room.StartedAt,
			"gameDurationSec": room.Settings.GameDurationSec,
		})
	}
	return room, nil
}

// EndGame finishes the game on explicit admin action.
func (s *RoomService) EndGame(ctx context.Context, code, adminID string) (*model.Room, error) {
	room, err := s.roomRepo.Mutate(ctx, code, func(r *model.Room) error {
		if r.AdminID != adminID {
			return game.ErrNotAdmin
		}
		game.Finish(r, time.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.afterFinish(ctx, room)
	return room, nil
}

// expireGame is the opportunistic duration expiry; duplicate attempts from
// racing clients converge on the same finished state.
func (s *RoomService) expireGame(ctx context.Context, code string) (*model.Room, error) {
	var ended bool
	room, err := s.roomRepo.Mutate(ctx, code, func(r *model.Room) error {
		_, ended = game.Tick(r, time.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	if ended {
		s.afterFinish(ctx, room)
	}
	return room, nil
}

func (s *RoomService) afterFinish(ctx context.Context, room *model.Room) {
	if err := s.roomCache.SetStatus(ctx, room.Code, model.RoomFinished); err != nil {
		log.Warn().Err(err).Str("room", room.Code).Msg("failed to mirror status to cache")
	}
	if s.broadcaster != nil {
		// Clients redirect to the end-of-game view on this message.
		s.broadcaster.BroadcastToAll(room.Code, "game_ended", map[string]interface{}{
			"endedAt":     room.EndedAt,
			"leaderboard": room.Leaderboard,
		})
		// Grace period so the final push drains before connections drop.
		code := room.Code
		time.AfterFunc(5*time.Second, func() {
			s.broadcaster.DisconnectRoom(code)
		})
	}
}

// DeleteRoom removes a room and all of its cached projections. The code
// becomes reusable immediately.
func (s *RoomService) DeleteRoom(ctx context.Context, code, adminID string) error {
	room, err := s.roomRepo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if room == nil {
		return game.ErrRoomNotFound
	}
	if room.AdminID != adminID {
		return game.ErrNotAdmin
	}

	if err := s.roomRepo.Delete(ctx, code); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if err := s.roomCache.Delete(ctx, code); err != nil {
		log.Warn().Err(err).Str("room", code).Msg("failed to evict room meta")
	}
	if err := s.questionCache.DeletePool(ctx, code); err != nil {
		log.Warn().Err(err).Str("room", code).Msg("failed to evict question pool")
	}
	if err := s.leaderboard.Delete(ctx, code); err != nil {
		log.Warn().Err(err).Str("room", code).Msg("failed to evict leaderboard")
	}
	if s.broadcaster != nil {
		s.broadcaster.DisconnectRoom(code)
	}
	return nil
}

// PlayerRank reads a player's standing from the cached ZSET along with the
// current top rows.
func (s *RoomService) PlayerRank(ctx context.Context, code, playerID string, top int) (int64, []cache.RankedPlayer, error) {
	rank, err := s.leaderboard.GetRank(ctx, code, playerID)
	if err != nil {
		return 0, nil, err
	}
	leaders, err := s.leaderboard.GetTop(ctx, code, top)
	if err != nil {
		return 0, nil, err
	}
	return rank, leaders, nil
}

// Leaderboard reads the cached ranking, falling back to the room document.
func (s *RoomService) Leaderboard(ctx context.Context, code string) ([]model.LeaderboardEntry, error) {
	room, err := s.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.Status == model.RoomFinished && room.Leaderboard != nil {
		return room.Leaderboard, nil
	}
	return game.ComputeLeaderboard(room), nil
}

// Questions returns the room's cached question set, re-drawing on a miss.
func (s *RoomService) Questions(ctx context.Context, code string) ([]*model.QuizQuestion, error) {
	questions, err := s.questionCache.GetPool(ctx, code)
	if err != nil {
		return nil, err
	}
	if questions != nil {
		return questions, nil
	}
	room, err := s.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	questions, err = s.questionRepo.List(ctx, room.Settings.TotalQuestions)
	if err != nil {
		return nil, err
	}
	if err := s.questionCache.SetPool(ctx, code, questions); err != nil {
		log.Warn().Err(err).Str("room", code).Msg("failed to cache questions")
	}
	return questions, nil
}

// generateRoomCode creates a 6-char code from [A-Z0-9].
func (s *RoomService) generateRoomCode(ctx context.Context) (string, error) {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const codeLen = 6

	for attempts := 0; attempts < 10; attempts++ {
		b := make([]byte, codeLen)
		if _, err := rand.Read(b); err != nil {
			return "", err
		}

		code := make([]byte, codeLen)
		for i := range code {
			code[i] = chars[int(b[i])%len(chars)]
		}
		codeStr := string(code)

		exists, err := s.roomCache.Exists(ctx, codeStr)
		if err != nil {
			return "", err
		}
		if !exists {
			return codeStr, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique room code")
}

func applySettingsOverrides(settings, overrides *model.RoomSettings) {
	if overrides.MaxPlayers > 0 {
		settings.MaxPlayers = overrides.MaxPlayers
	}
	if overrides.TotalQuestions > 0 {
		settings.TotalQuestions = overrides.TotalQuestions
	}
	if overrides.GameDurationSec > 0 {
		settings.GameDurationSec = overrides.GameDurationSec
	}
	if overrides.DiceCooldownSec > 0 {
		settings.DiceCooldownSec = overrides.DiceCooldownSec
	}
}
