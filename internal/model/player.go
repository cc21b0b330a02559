package model

import "time"

// Player is a participant embedded in a Room, keyed by ID in Room.Players.
//
// Position is always AbsolutePosition mod the board size; AbsolutePosition is
// the unbounded forward-progress counter used to tell a lap apart from
// standing still, never for scoring. Score and both credit pools are floored
// at zero by every deduction.
type Player struct {
	ID               string     `json:"id" bson:"id"`
	Nickname         string     `json:"nickname" bson:"nickname"`
	Position         int        `json:"position" bson:"position"`
	AbsolutePosition int        `json:"absolutePosition" bson:"absolutePosition"`
	Score            int        `json:"score" bson:"score"`
	DiceRolls        int        `json:"diceRolls" bson:"diceRolls"`
	FreeDiceRolls    int        `json:"freeDiceRolls" bson:"freeDiceRolls"`
	LastDiceRollAt   *time.Time `json:"lastDiceRollAt,omitempty" bson:"lastDiceRollAt,omitempty"`
	JoinedAt         time.Time  `json:"joinedAt" bson:"joinedAt"`
}

// Credits is the total number of rolls the player can make. The two pools are
// fungible in effect.
func (p *Player) Credits() int {
	return p.DiceRolls + p.FreeDiceRolls
}
