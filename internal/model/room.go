package model

import "time"

type RoomStatus string

const (
	RoomWaiting  RoomStatus = "waiting"
	RoomPlaying  RoomStatus = "playing"
	RoomFinished RoomStatus = "finished"
)

// RoomSettings is fixed at room creation and never mutated afterwards.
type RoomSettings struct {
	MaxPlayers      int   `json:"maxPlayers" bson:"maxPlayers"`
	TotalQuestions  int   `json:"totalQuestions" bson:"totalQuestions"`
	GameDurationSec int   `json:"gameDurationSec" bson:"gameDurationSec"`
	TotalEvents     int   `json:"totalEvents" bson:"totalEvents"`
	TotalTiles      int   `json:"totalTiles" bson:"totalTiles"`
	RewardTiles     []int `json:"rewardTiles" bson:"rewardTiles"`
	DiceCooldownSec int   `json:"diceCooldownSec" bson:"diceCooldownSec"`
}

// DefaultSettings returns the standard board configuration.
func DefaultSettings() RoomSettings {
	return RoomSettings{
		MaxPlayers:      20,
		TotalQuestions:  30,
		GameDurationSec: 300,
		TotalEvents:     len(EventCatalog),
		TotalTiles:      TotalTiles,
		RewardTiles:     RewardTileIndices(),
		DiceCooldownSec: 10,
	}
}

// Room is the root aggregate for one game session. It is the single source of
// truth: players, reward pools and event state are value-embedded, and every
// mutation goes through a conditional replace keyed on Version.
type Room struct {
	ID        string                         `json:"roomId" bson:"_id"`
	Code      string                         `json:"roomCode" bson:"code"`
	AdminID   string                         `json:"adminId" bson:"adminId"`
	Status    RoomStatus                     `json:"status" bson:"status"`
	Settings  RoomSettings                   `json:"settings" bson:"settings"`
	Players   map[string]*Player             `json:"players" bson:"players"`
	Rewards   map[RewardCategory]*RewardPool `json:"rewards" bson:"rewards"`
	Events    EventState                     `json:"events" bson:"events"`
	CreatedAt time.Time                      `json:"createdAt" bson:"createdAt"`
	StartedAt *time.Time                     `json:"startedAt,omitempty" bson:"startedAt,omitempty"`
	EndedAt   *time.Time                     `json:"endedAt,omitempty" bson:"endedAt,omitempty"`

	// Leaderboard is a display projection refreshed after score changes,
	// never read back for rules.
	Leaderboard []LeaderboardEntry `json:"leaderboard,omitempty" bson:"leaderboard,omitempty"`

	// Version guards the optimistic replace; bumped on every committed write.
	Version int64 `json:"-" bson:"version"`
}

// Elapsed returns whole seconds since the game started, or 0 before start.
func (r *Room) Elapsed(now time.Time) int {
	if r.StartedAt == nil {
		return 0
	}
	return int(now.Sub(*r.StartedAt) / time.Second)
}

// LeaderboardEntry is one row of the cached score/position projection.
type LeaderboardEntry struct {
	PlayerID string `json:"playerId" bson:"playerId"`
	Nickname string `json:"nickname" bson:"nickname"`
	Score    int    `json:"score" bson:"score"`
	Position int    `json:"position" bson:"position"`
	Rank     int    `json:"rank" bson:"rank"`
}
