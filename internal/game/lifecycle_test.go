package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardquest/internal/model"
)

var t0 = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

// newTestRoom returns a playing room with two players, started at t0.
func newTestRoom(t *testing.T) *model.Room {
	t.Helper()
	room := NewRoom("r1", "ABC123", "admin1", model.DefaultSettings(), t0.Add(-time.Minute))
	_, err := Join(room, "p1", "An", t0.Add(-time.Minute))
	require.NoError(t, err)
	_, err = Join(room, "p2", "Binh", t0.Add(-30*time.Second))
	require.NoError(t, err)
	require.NoError(t, Start(room, "admin1", t0))
	return room
}

func TestNewRoomDefaults(t *testing.T) {
	room := NewRoom("r1", "ABC123", "admin1", model.DefaultSettings(), t0)

	assert.Equal(t, model.RoomWaiting, room.Status)
	assert.Len(t, room.Events.Remaining, 8)
	assert.Nil(t, room.Events.Active)
	assert.Len(t, room.Rewards, 4)
	for _, cat := range model.RewardCategories {
		pool := room.Rewards[cat]
		require.NotNil(t, pool)
		assert.Equal(t, 0, pool.Claimed)
		assert.Len(t, pool.UnlockTimes, pool.Total)
		assert.Equal(t, 0, pool.UnlockTimes[0], "first tranche opens at t=0")
	}
}

func TestJoinGating(t *testing.T) {
	settings := model.DefaultSettings()
	settings.MaxPlayers = 2
	room := NewRoom("r1", "ABC123", "admin1", settings, t0)

	p, err := Join(room, "p1", "An", t0)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Position)
	assert.Equal(t, 0, p.Credits())
	assert.Equal(t, 0, p.Score)

	_, err = Join(room, "p2", "Binh", t0)
	require.NoError(t, err)

	_, err = Join(room, "p3", "Chi", t0)
	assert.ErrorIs(t, err, ErrRoomFull)

	require.NoError(t, Start(room, "admin1", t0))
	_, err = Join(room, "p3", "Chi", t0)
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestStartGating(t *testing.T) {
	room := NewRoom("r1", "ABC123", "admin1", model.DefaultSettings(), t0)
	_, err := Join(room, "p1", "An", t0)
	require.NoError(t, err)

	assert.ErrorIs(t, Start(room, "someone-else", t0), ErrNotAdmin)
	assert.ErrorIs(t, Start(room, "admin1", t0), ErrNotEnoughPlayers)

	_, err = Join(room, "p2", "Binh", t0)
	require.NoError(t, err)
	require.NoError(t, Start(room, "admin1", t0))
	assert.Equal(t, model.RoomPlaying, room.Status)
	require.NotNil(t, room.StartedAt)

	assert.ErrorIs(t, Start(room, "admin1", t0), ErrAlreadyStarted)
}

func TestFinishIsIdempotent(t *testing.T) {
	room := newTestRoom(t)
	room.Players["p1"].Score = 7

	assert.True(t, Finish(room, t0.Add(time.Minute)))
	assert.Equal(t, model.RoomFinished, room.Status)
	require.NotNil(t, room.EndedAt)
	require.Len(t, room.Leaderboard, 2)
	assert.Equal(t, "p1", room.Leaderboard[0].PlayerID)

	endedAt := *room.EndedAt
	assert.False(t, Finish(room, t0.Add(2*time.Minute)), "second finish is a no-op")
	assert.Equal(t, endedAt, *room.EndedAt)
}

func TestTickExpiresGameByDuration(t *testing.T) {
	room := newTestRoom(t)
	dur := time.Duration(room.Settings.GameDurationSec) * time.Second

	_, ended := Tick(room, t0.Add(dur-time.Second))
	assert.False(t, ended)
	assert.Equal(t, model.RoomPlaying, room.Status)

	_, ended = Tick(room, t0.Add(dur+time.Second))
	assert.True(t, ended)
	assert.Equal(t, model.RoomFinished, room.Status)

	// A racing client ticking again sees the same final state.
	_, ended = Tick(room, t0.Add(dur+2*time.Second))
	assert.False(t, ended)
	assert.Equal(t, model.RoomFinished, room.Status)
}

func TestFinishClosesActiveEvent(t *testing.T) {
	room := newTestRoom(t)
	_, err := TriggerEvent(room, model.EventNoScore, 0, t0.Add(time.Second))
	require.NoError(t, err)

	require.True(t, Finish(room, t0.Add(10*time.Second)))
	assert.Nil(t, room.Events.Active)
	require.Len(t, room.Events.History, 1)
	assert.Equal(t, model.EventNoScore, room.Events.History[0].Type)
}

func TestMutationsRejectedAfterFinish(t *testing.T) {
	room := newTestRoom(t)
	room.Players["p1"].DiceRolls = 1
	require.True(t, Finish(room, t0.Add(time.Second)))

	now := t0.Add(2 * time.Second)
	_, err := ApplyRoll(room, "p1", 4, now)
	assert.ErrorIs(t, err, ErrGameEnded)
	_, err = ApplyQuizAnswers(room, "p1", 1, 0, now)
	assert.ErrorIs(t, err, ErrGameEnded)
	_, err = TriggerEvent(room, model.EventQuizBonus, 0, now)
	assert.ErrorIs(t, err, ErrGameEnded)
	_, err = ClaimReward(room, "p1", model.RewardPepsi, now)
	assert.ErrorIs(t, err, ErrGameEnded)
}
