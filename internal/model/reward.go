package model

// RewardCategory tags the four fixed prize pools. The string values are part
// of the persisted schema and must not be renamed without a migration.
type RewardCategory string

const (
	RewardMysteryGiftBox RewardCategory = "mysteryGiftBox"
	RewardPepsi          RewardCategory = "pepsi"
	RewardCheetos        RewardCategory = "cheetos"
	RewardCandies        RewardCategory = "candies"
)

// RewardCategories lists every pool in display order.
var RewardCategories = []RewardCategory{
	RewardMysteryGiftBox,
	RewardPepsi,
	RewardCheetos,
	RewardCandies,
}

// MaxRewardsPerPlayer caps successful claims per player across all categories.
const MaxRewardsPerPlayer = 2

// TotalTiles is the logical board size; tile 24 is tile 0 (lap completion).
const TotalTiles = 24

// rewardTiles maps board tile index to the category claimable there. Fixed,
// not derived.
var rewardTiles = map[int]RewardCategory{
	5:  RewardPepsi,
	9:  RewardCandies,
	14: RewardMysteryGiftBox,
	19: RewardCheetos,
}

// RewardTileFor returns the category claimable on a tile, if any.
func RewardTileFor(tile int) (RewardCategory, bool) {
	c, ok := rewardTiles[tile]
	return c, ok
}

// RewardTileIndices returns the reward tile indices in ascending order.
func RewardTileIndices() []int {
	return []int{5, 9, 14, 19}
}

// RewardPool is one prize category: a fixed capacity unlocked in tranches
// over elapsed game time.
type RewardPool struct {
	Total   int      `json:"total" bson:"total"`
	Claimed int      `json:"claimed" bson:"claimed"`
	// ClaimedBy is append-only; a player appears at most once per category.
	ClaimedBy []string `json:"claimedBy" bson:"claimedBy"`
	// UnlockTimes is an ascending list of elapsed-seconds thresholds. The
	// number of units claimable at elapsed t is the count of thresholds <= t.
	UnlockTimes []int `json:"unlockTimes" bson:"unlockTimes"`
}

// UnlockedCount returns how many units are claimable at elapsed seconds.
// Always re-derived from the clock, never cached.
func (p *RewardPool) UnlockedCount(elapsedSec int) int {
	n := 0
	for _, t := range p.UnlockTimes {
		if t <= elapsedSec {
			n++
		}
	}
	return n
}

// NextUnlockIn returns seconds until the next locked tranche opens, or -1
// when everything is already unlocked.
func (p *RewardPool) NextUnlockIn(elapsedSec int) int {
	for _, t := range p.UnlockTimes {
		if t > elapsedSec {
			return t - elapsedSec
		}
	}
	return -1
}

// HasClaimant reports whether the player already claimed from this pool.
func (p *RewardPool) HasClaimant(playerID string) bool {
	for _, id := range p.ClaimedBy {
		if id == playerID {
			return true
		}
	}
	return false
}

var defaultPoolTotals = map[RewardCategory]int{
	RewardMysteryGiftBox: 5,
	RewardPepsi:          10,
	RewardCheetos:        10,
	RewardCandies:        15,
}

// DefaultRewardPools seeds the four pools with unlock schedules spread evenly
// across the game duration, first tranche open at t=0.
func DefaultRewardPools(gameDurationSec int) map[RewardCategory]*RewardPool {
	pools := make(map[RewardCategory]*RewardPool, len(RewardCategories))
	for _, cat := range RewardCategories {
		total := defaultPoolTotals[cat]
		times := make([]int, total)
		for i := range times {
			times[i] = i * gameDurationSec / total
		}
		pools[cat] = &RewardPool{
			Total:       total,
			ClaimedBy:   []string{},
			UnlockTimes: times,
		}
	}
	return pools
}
