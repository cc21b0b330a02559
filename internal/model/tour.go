package model

import "time"

// TourMessage is one entry of the append-only chat stream scoped to a room
// and a tour location. Messages are never edited or deleted.
type TourMessage struct {
	ID         string    `json:"id" bson:"_id"`
	RoomCode   string    `json:"roomCode" bson:"roomCode"`
	LocationID string    `json:"locationId" bson:"locationId"`
	PlayerID   string    `json:"playerId" bson:"playerId"`
	Nickname   string    `json:"nickname" bson:"nickname"`
	Text       string    `json:"text" bson:"text"`
	SentAt     time.Time `json:"sentAt" bson:"sentAt"`
}

// TourReaction is one entry of the append-only reaction stream.
type TourReaction struct {
	ID         string    `json:"id" bson:"_id"`
	RoomCode   string    `json:"roomCode" bson:"roomCode"`
	LocationID string    `json:"locationId" bson:"locationId"`
	PlayerID   string    `json:"playerId" bson:"playerId"`
	Emoji      string    `json:"emoji" bson:"emoji"`
	SentAt     time.Time `json:"sentAt" bson:"sentAt"`
}
