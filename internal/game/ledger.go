package game

import (
	"time"

	"boardquest/internal/model"
)

// RollResult reports what one dice roll did to the board state.
type RollResult struct {
	// Face is the raw die value shown to the roller, before any doubling.
	Face int `json:"face"`
	// Movement is the effective number of tiles advanced.
	Movement int `json:"movement"`
	// ScoreDelta is the net score change, penalty included.
	ScoreDelta int `json:"scoreDelta"`
	// Lapped reports whether the move crossed tile 0.
	Lapped   bool `json:"lapped"`
	Position int  `json:"position"`
	Score    int  `json:"score"`
	Credits  int  `json:"credits"`
	// RewardTile is the category on the landing tile, if any.
	RewardTile model.RewardCategory `json:"rewardTile,omitempty"`
}

const lowDicePenaltyPoints = 3
const wrongAnswerPenaltyPoints = 5

// ApplyRoll spends one credit and advances the player by the rolled face,
// applying whichever modifier event is live at now. The face must already be
// drawn by the caller (uniform in [1,6]); keeping the draw outside makes the
// ledger arithmetic deterministic.
func ApplyRoll(room *model.Room, playerID string, face int, now time.Time) (*RollResult, error) {
	if err := ensurePlaying(room); err != nil {
		return nil, err
	}
	p, err := player(room, playerID)
	if err != nil {
		return nil, err
	}
	if p.Credits() <= 0 {
		return nil, ErrNoCredits
	}
	if p.LastDiceRollAt != nil {
		cooldown := time.Duration(room.Settings.DiceCooldownSec) * time.Second
		if since := now.Sub(*p.LastDiceRollAt); since < cooldown {
			remaining := int((cooldown - since + time.Second - 1) / time.Second)
			return nil, &CooldownError{RemainingSec: remaining}
		}
	}

	active := room.Events.ActiveType(now)

	movement := face
	if active == model.EventDiceDouble {
		// The multiplier holds for every roll inside the event window,
		// not just the first one.
		movement = 2 * face
	}

	// Free credits are spent before quiz-earned ones; the pools are fungible
	// so the order is not observable.
	if p.FreeDiceRolls > 0 {
		p.FreeDiceRolls--
	} else {
		p.DiceRolls--
	}

	tiles := room.Settings.TotalTiles
	prevAbs := p.AbsolutePosition
	p.AbsolutePosition += movement
	p.Position = p.AbsolutePosition % tiles
	lapped := p.AbsolutePosition/tiles > prevAbs/tiles

	gain := movement
	switch active {
	case model.EventNoScore:
		gain = 0
	case model.EventScoreDouble:
		gain = 2 * movement
	}

	penalty := 0
	// The penalty inspects the raw face, not the post-doubling movement.
	if active == model.EventLowDicePenalty && face < 5 {
		penalty = lowDicePenaltyPoints
	}

	p.Score += gain
	p.Score -= penalty
	if p.Score < 0 {
		p.Score = 0
	}

	rolled := now
	p.LastDiceRollAt = &rolled

	res := &RollResult{
		Face:       face,
		Movement:   movement,
		ScoreDelta: gain - penalty,
		Lapped:     lapped,
		Position:   p.Position,
		Score:      p.Score,
		Credits:    p.Credits(),
	}
	if cat, ok := model.RewardTileFor(p.Position); ok {
		res.RewardTile = cat
	}
	return res, nil
}

// QuizResult reports the ledger effect of a batch of quiz answers.
type QuizResult struct {
	CreditsGranted int `json:"creditsGranted"`
	ScoreDelta     int `json:"scoreDelta"`
	Score          int `json:"score"`
	Credits        int `json:"credits"`
}

// ApplyQuizAnswers settles a batch of correct/incorrect answers against the
// event that is live at now. Batches are coalesced upstream; passing the
// flush-time clock here is what keeps a stale event from leaking into the
// grant arithmetic.
func ApplyQuizAnswers(room *model.Room, playerID string, correct, incorrect int, now time.Time) (*QuizResult, error) {
	if err := ensurePlaying(room); err != nil {
		return nil, err
	}
	p, err := player(room, playerID)
	if err != nil {
		return nil, err
	}

	active := room.Events.ActiveType(now)

	perCorrect := 1
	if active == model.EventQuizBonus {
		perCorrect = 2
	}
	granted := correct * perCorrect
	p.DiceRolls += granted

	penalty := 0
	if active == model.EventPenaltyWrong {
		penalty = incorrect * wrongAnswerPenaltyPoints
	}
	before := p.Score
	p.Score -= penalty
	if p.Score < 0 {
		p.Score = 0
	}

	return &QuizResult{
		CreditsGranted: granted,
		ScoreDelta:     p.Score - before,
		Score:          p.Score,
		Credits:        p.Credits(),
	}, nil
}
