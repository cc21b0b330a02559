package game

import (
	"sort"

	"boardquest/internal/model"
)

// ComputeLeaderboard projects the players into ranked display rows: score
// descending, then absolute board progress, then join order.
func ComputeLeaderboard(room *model.Room) []model.LeaderboardEntry {
	players := make([]*model.Player, 0, len(room.Players))
	for _, p := range room.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.AbsolutePosition != b.AbsolutePosition {
			return a.AbsolutePosition > b.AbsolutePosition
		}
		return a.JoinedAt.Before(b.JoinedAt)
	})

	entries := make([]model.LeaderboardEntry, len(players))
	for i, p := range players {
		entries[i] = model.LeaderboardEntry{
			PlayerID: p.ID,
			Nickname: p.Nickname,
			Score:    p.Score,
			Position: p.Position,
			Rank:     i + 1,
		}
	}
	return entries
}
