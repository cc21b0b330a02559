package game

import (
	"time"

	"boardquest/internal/model"
)

// ClaimResult reports a successful reward claim.
type ClaimResult struct {
	Category model.RewardCategory `json:"category"`
	// Claimed is the pool's claimed count after this claim.
	Claimed int `json:"claimed"`
	Total   int `json:"total"`
	// PlayerClaims is how many categories the player has now claimed from.
	PlayerClaims int `json:"playerClaims"`
}

// ClaimReward takes one unit from a category pool. A unit is claimable only
// while claimed < count(unlockTimes <= elapsed); the unlocked count is
// re-derived from the wall clock on every attempt, never cached. A player may
// appear once per category and succeed in at most MaxRewardsPerPlayer
// categories over the whole game.
func ClaimReward(room *model.Room, playerID string, category model.RewardCategory, now time.Time) (*ClaimResult, error) {
	if err := ensurePlaying(room); err != nil {
		return nil, err
	}
	if _, err := player(room, playerID); err != nil {
		return nil, err
	}
	pool, ok := room.Rewards[category]
	if !ok {
		return nil, ErrUnknownCategory
	}

	if pool.HasClaimant(playerID) {
		return nil, ErrAlreadyClaimed
	}
	if claimCount(room, playerID) >= model.MaxRewardsPerPlayer {
		return nil, ErrPlayerCapReached
	}

	elapsed := room.Elapsed(now)
	unlocked := pool.UnlockedCount(elapsed)
	if unlocked > pool.Total {
		unlocked = pool.Total
	}
	if pool.Claimed >= unlocked {
		return nil, &LockedError{NextUnlockSec: pool.NextUnlockIn(elapsed)}
	}

	pool.Claimed++
	pool.ClaimedBy = append(pool.ClaimedBy, playerID)

	return &ClaimResult{
		Category:     category,
		Claimed:      pool.Claimed,
		Total:        pool.Total,
		PlayerClaims: claimCount(room, playerID),
	}, nil
}

// claimCount counts the categories a player has successfully claimed from.
func claimCount(room *model.Room, playerID string) int {
	n := 0
	for _, pool := range room.Rewards {
		if pool.HasClaimant(playerID) {
			n++
		}
	}
	return n
}
