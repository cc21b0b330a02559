package service

// Broadcaster pushes state changes to connected clients (avoids an import
// cycle with the ws package). Players rely on push for active-event state;
// everything else they may also poll.
type Broadcaster interface {
	BroadcastToAdmin(roomCode string, msgType string, payload interface{})
	BroadcastToPlayer(roomCode, playerID string, msgType string, payload interface{})
	BroadcastToAll(roomCode string, msgType string, payload interface{})
	DisconnectRoom(roomCode string)
}
