package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardquest/internal/model"
)

func TestLeaderboardOrdering(t *testing.T) {
	room := newTestRoom(t)
	room.Players["p1"].Score = 10
	room.Players["p2"].Score = 25
	room.Players["p3"] = &model.Player{
		ID: "p3", Nickname: "Chi", Score: 10, AbsolutePosition: 30, Position: 6,
		JoinedAt: t0,
	}

	entries := ComputeLeaderboard(room)
	require.Len(t, entries, 3)
	assert.Equal(t, "p2", entries[0].PlayerID)
	assert.Equal(t, 1, entries[0].Rank)
	// Tie on score: p3's board progress beats p1's.
	assert.Equal(t, "p3", entries[1].PlayerID)
	assert.Equal(t, "p1", entries[2].PlayerID)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestLeaderboardFrozenAtFinish(t *testing.T) {
	room := newTestRoom(t)
	room.Players["p1"].Score = 5
	require.True(t, Finish(room, t0.Add(time.Minute)))

	frozen := room.Leaderboard
	require.Len(t, frozen, 2)

	// Later score mutation attempts fail and the projection stays put.
	_, err := ApplyQuizAnswers(room, "p1", 1, 0, t0.Add(2*time.Minute))
	assert.ErrorIs(t, err, ErrGameEnded)
	assert.Equal(t, frozen, room.Leaderboard)
}
