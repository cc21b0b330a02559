package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardquest/internal/model"
)

func TestApplyRollBasicMove(t *testing.T) {
	room := newTestRoom(t)
	p := room.Players["p1"]
	p.DiceRolls = 1

	res, err := ApplyRoll(room, "p1", 4, t0.Add(time.Second))
	require.NoError(t, err)

	assert.Equal(t, 4, res.Face)
	assert.Equal(t, 4, res.Movement)
	assert.Equal(t, 4, res.ScoreDelta)
	assert.Equal(t, 4, p.Position)
	assert.Equal(t, 4, p.AbsolutePosition)
	assert.Equal(t, 4, p.Score)
	assert.Equal(t, 0, p.Credits())
	assert.False(t, res.Lapped)
}

func TestApplyRollGating(t *testing.T) {
	room := newTestRoom(t)

	_, err := ApplyRoll(room, "ghost", 3, t0)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = ApplyRoll(room, "p1", 3, t0)
	assert.ErrorIs(t, err, ErrNoCredits)
}

func TestCooldownRejectsAndLeavesStateUntouched(t *testing.T) {
	room := newTestRoom(t)
	p := room.Players["p1"]
	p.DiceRolls = 2

	_, err := ApplyRoll(room, "p1", 3, t0.Add(time.Second))
	require.NoError(t, err)

	before := *p
	_, err = ApplyRoll(room, "p1", 5, t0.Add(3*time.Second))
	var cd *CooldownError
	require.ErrorAs(t, err, &cd)
	assert.Equal(t, 8, cd.RemainingSec)
	assert.Equal(t, before, *p, "rejected roll must not change state")

	// Exactly at the cooldown boundary the roll goes through.
	_, err = ApplyRoll(room, "p1", 5, t0.Add(11*time.Second))
	require.NoError(t, err)
}

func TestFreeCreditsSpentFirst(t *testing.T) {
	room := newTestRoom(t)
	p := room.Players["p1"]
	p.DiceRolls = 1
	p.FreeDiceRolls = 1

	_, err := ApplyRoll(room, "p1", 2, t0.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, 0, p.FreeDiceRolls)
	assert.Equal(t, 1, p.DiceRolls)
}

func TestDiceDoubleDoublesMovementNotScoreTwice(t *testing.T) {
	room := newTestRoom(t)
	p := room.Players["p1"]
	p.DiceRolls = 1

	_, err := TriggerEvent(room, model.EventDiceDouble, 0, t0.Add(time.Second))
	require.NoError(t, err)

	res, err := ApplyRoll(room, "p1", 4, t0.Add(2*time.Second))
	require.NoError(t, err)

	assert.Equal(t, 4, res.Face, "UI shows the raw face")
	assert.Equal(t, 8, res.Movement)
	assert.Equal(t, 8, p.Score, "score follows movement, score_double is not active")
	assert.Equal(t, 0, p.Credits())
}

func TestDiceDoublePersistsForFullWindow(t *testing.T) {
	room := newTestRoom(t)
	p := room.Players["p1"]
	p.DiceRolls = 3
	room.Settings.DiceCooldownSec = 1

	_, err := TriggerEvent(room, model.EventDiceDouble, 75, t0.Add(time.Second))
	require.NoError(t, err)

	res1, err := ApplyRoll(room, "p1", 3, t0.Add(10*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 6, res1.Movement, "first roll in window doubled")

	res2, err := ApplyRoll(room, "p1", 5, t0.Add(20*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 10, res2.Movement, "event is not consumed by use")

	// After the 75s window the multiplier is gone.
	res3, err := ApplyRoll(room, "p1", 5, t0.Add(80*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 5, res3.Movement)
}

func TestLowDicePenaltyInspectsRawFace(t *testing.T) {
	room := newTestRoom(t)
	p := room.Players["p1"]
	p.DiceRolls = 2
	p.Score = 10
	room.Settings.DiceCooldownSec = 1

	_, err := TriggerEvent(room, model.EventLowDicePenalty, 0, t0.Add(time.Second))
	require.NoError(t, err)

	// Face 3 < 5: gain 3, penalty 3, net 0.
	res, err := ApplyRoll(room, "p1", 3, t0.Add(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 0, res.ScoreDelta)
	assert.Equal(t, 10, p.Score)

	// Face 5 escapes the penalty.
	res, err = ApplyRoll(room, "p1", 5, t0.Add(5*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 5, res.ScoreDelta)
	assert.Equal(t, 15, p.Score)
}

func TestScoreFlooredAtZero(t *testing.T) {
	room := newTestRoom(t)
	p := room.Players["p1"]
	p.DiceRolls = 1
	p.Score = 0

	_, err := TriggerEvent(room, model.EventLowDicePenalty, 0, t0.Add(time.Second))
	require.NoError(t, err)

	// Gain 1, penalty 3: the floor keeps the score at 0, not -2.
	res, err := ApplyRoll(room, "p1", 1, t0.Add(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 0, p.Score)
	assert.Equal(t, 0, res.Score)
}

func TestNoScoreEventSuppressesGain(t *testing.T) {
	room := newTestRoom(t)
	p := room.Players["p1"]
	p.DiceRolls = 1

	_, err := TriggerEvent(room, model.EventNoScore, 0, t0.Add(time.Second))
	require.NoError(t, err)

	res, err := ApplyRoll(room, "p1", 6, t0.Add(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 6, res.Movement)
	assert.Equal(t, 0, res.ScoreDelta)
	assert.Equal(t, 0, p.Score)
}

func TestScoreDoubleDoublesEffectiveMovement(t *testing.T) {
	room := newTestRoom(t)
	p := room.Players["p1"]
	p.DiceRolls = 1

	_, err := TriggerEvent(room, model.EventScoreDouble, 0, t0.Add(time.Second))
	require.NoError(t, err)

	res, err := ApplyRoll(room, "p1", 4, t0.Add(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 4, res.Movement)
	assert.Equal(t, 8, res.ScoreDelta)
}

func TestPositionLapConsistency(t *testing.T) {
	room := newTestRoom(t)
	p := room.Players["p1"]
	p.DiceRolls = 10
	room.Settings.DiceCooldownSec = 0

	now := t0
	for i, face := range []int{6, 6, 6, 5, 1, 6, 4} {
		now = now.Add(time.Second)
		res, err := ApplyRoll(room, "p1", face, now)
		require.NoError(t, err, "roll %d", i)
		assert.Equal(t, p.AbsolutePosition%room.Settings.TotalTiles, p.Position)
		assert.Equal(t, res.Position, p.Position)
	}
	// 6+6+6+5+1+6+4 = 34 -> one lap, tile 10.
	assert.Equal(t, 34, p.AbsolutePosition)
	assert.Equal(t, 10, p.Position)
}

func TestExactLapLandsOnTileZero(t *testing.T) {
	room := newTestRoom(t)
	p := room.Players["p1"]
	p.DiceRolls = 1
	p.AbsolutePosition = 18
	p.Position = 18

	_, err := TriggerEvent(room, model.EventDiceDouble, 0, t0.Add(time.Second))
	require.NoError(t, err)

	res, err := ApplyRoll(room, "p1", 3, t0.Add(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 24, p.AbsolutePosition)
	assert.Equal(t, 0, p.Position, "tile 24 is tile 0")
	assert.True(t, res.Lapped)
}

func TestRollReportsRewardTile(t *testing.T) {
	room := newTestRoom(t)
	p := room.Players["p1"]
	p.DiceRolls = 1
	p.AbsolutePosition = 3
	p.Position = 3

	res, err := ApplyRoll(room, "p1", 2, t0.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, model.RewardPepsi, res.RewardTile, "tile 5 carries pepsi")
}

func TestQuizAnswerGrants(t *testing.T) {
	room := newTestRoom(t)
	p := room.Players["p1"]

	res, err := ApplyQuizAnswers(room, "p1", 1, 0, t0.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, res.CreditsGranted)
	assert.Equal(t, 1, p.DiceRolls)

	// Under quiz_bonus a correct answer grants two credits.
	_, err = TriggerEvent(room, model.EventQuizBonus, 75, t0.Add(2*time.Second))
	require.NoError(t, err)
	res, err = ApplyQuizAnswers(room, "p1", 1, 0, t0.Add(3*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2, res.CreditsGranted)
	assert.Equal(t, 3, p.DiceRolls)

	// After expiry the grant drops back to one.
	res, err = ApplyQuizAnswers(room, "p1", 1, 0, t0.Add(80*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, res.CreditsGranted)
}

func TestWrongAnswerPenaltyOnlyUnderEvent(t *testing.T) {
	room := newTestRoom(t)
	p := room.Players["p1"]
	p.Score = 7

	res, err := ApplyQuizAnswers(room, "p1", 0, 1, t0.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, 0, res.ScoreDelta)
	assert.Equal(t, 7, p.Score)

	_, err = TriggerEvent(room, model.EventPenaltyWrong, 0, t0.Add(2*time.Second))
	require.NoError(t, err)

	res, err = ApplyQuizAnswers(room, "p1", 0, 1, t0.Add(3*time.Second))
	require.NoError(t, err)
	assert.Equal(t, -5, res.ScoreDelta)
	assert.Equal(t, 2, p.Score)

	// Floor at zero: two more wrong answers cannot go negative.
	res, err = ApplyQuizAnswers(room, "p1", 0, 2, t0.Add(4*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 0, p.Score)
	assert.Equal(t, -2, res.ScoreDelta)
}

func TestQuizBatchMixedAnswers(t *testing.T) {
	room := newTestRoom(t)
	p := room.Players["p1"]
	p.Score = 20

	_, err := TriggerEvent(room, model.EventPenaltyWrong, 0, t0.Add(time.Second))
	require.NoError(t, err)

	res, err := ApplyQuizAnswers(room, "p1", 3, 2, t0.Add(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 3, res.CreditsGranted)
	assert.Equal(t, 10, p.Score)
	assert.Equal(t, 3, p.Credits())
}
