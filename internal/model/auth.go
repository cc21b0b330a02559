package model

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are JWT claims for the admin console.
type AdminClaims struct {
	AdminID string `json:"adminId"`
	jwt.RegisteredClaims
}

// PlayerClaims are room-scoped JWT claims issued on join.
type PlayerClaims struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for admin login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token   string `json:"token"`
	AdminID string `json:"adminId"`
}

// JoinResponse is returned when a player joins a room.
type JoinResponse struct {
	PlayerID string  `json:"playerId"`
	Token    string  `json:"token"`
	Room     *Room   `json:"room"`
	Player   *Player `json:"player"`
}
