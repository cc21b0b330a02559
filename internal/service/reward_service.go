package service

import (
	"context"
	"time"

	"boardquest/internal/game"
	"boardquest/internal/model"
	"boardquest/internal/repository"
)

// RewardService gates prize claims against the time-phased unlock schedule
// and per-player caps. The claim is a conditional transaction, so a client
// retry after a timeout cannot take two units.
type RewardService struct {
	roomRepo    repository.RoomRepo
	broadcaster Broadcaster
}

// NewRewardService creates a new reward service.
func NewRewardService(roomRepo repository.RoomRepo) *RewardService {
	return &RewardService{roomRepo: roomRepo}
}

// SetBroadcaster sets the broadcaster for WebSocket events.
func (s *RewardService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Claim takes one unit from a category pool for the player.
func (s *RewardService) Claim(ctx context.Context, roomCode, playerID string, category model.RewardCategory) (*game.ClaimResult, error) {
	var result *game.ClaimResult
	_, err := s.roomRepo.Mutate(ctx, roomCode, func(r *model.Room) error {
		game.Tick(r, time.Now())
		res, err := game.ClaimReward(r, playerID, category, time.Now())
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
		s.broadcaster.BroadcastToAll(roomCode, "reward_claimed", map[string]interface{}{
			"playerId": playerID,
			"category": result.Category,
			"claimed":  result.Claimed,
			"total":    result.Total,
		})
	}
	return result, nil
}
