package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// MessageType defines the type of WebSocket message.
type MessageType string

// Admin message types.
const (
	MsgPlayerJoined      MessageType = "player_joined"
	MsgPlayerLeft        MessageType = "player_left"
	MsgLeaderboardUpdate MessageType = "leaderboard_update"
)

// Room-wide message types.
const (
	MsgGameStarted   MessageType = "game_started"
	MsgGameEnded     MessageType = "game_ended"
	MsgEventStarted  MessageType = "event_started"
	MsgEventEnded    MessageType = "event_ended"
	MsgDiceRolled    MessageType = "dice_rolled"
	MsgRewardClaimed MessageType = "reward_claimed"
	MsgQuizSettled   MessageType = "quiz_settled"
)

// Message is the WebSocket envelope format.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections for rooms. The admin console subscribes
// to everything; players receive the room-wide stream, most importantly the
// active-event transitions their quiz arithmetic depends on.
type Hub struct {
	adminConns  map[string]*Connection
	playerConns map[string]map[string]*Connection // roomCode -> playerID -> conn

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection.
type Connection struct {
	RoomCode string
	PlayerID string // empty for admin connections
	IsAdmin  bool
	Send     chan []byte
	Hub      *Hub
}

// BroadcastMessage is a message to broadcast.
type BroadcastMessage struct {
	RoomCode string
	ToAdmin  bool
	ToPlayer string // empty means all players, specific ID means one player
	Message  *Message
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	h := &Hub{
		adminConns:  make(map[string]*Connection),
		playerConns: make(map[string]map[string]*Connection),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		broadcast:   make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if conn.IsAdmin {
				h.adminConns[conn.RoomCode] = conn
				log.Info().Str("room", conn.RoomCode).Msg("admin connected")
			} else {
				if h.playerConns[conn.RoomCode] == nil {
					h.playerConns[conn.RoomCode] = make(map[string]*Connection)
				}
				h.playerConns[conn.RoomCode][conn.PlayerID] = conn
				log.Info().Str("room", conn.RoomCode).Str("player", conn.PlayerID).Msg("player connected")
			}
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conn.IsAdmin {
				if existing, ok := h.adminConns[conn.RoomCode]; ok && existing == conn {
					delete(h.adminConns, conn.RoomCode)
					close(conn.Send)
					log.Info().Str("room", conn.RoomCode).Msg("admin disconnected")
				}
			} else {
				if players, ok := h.playerConns[conn.RoomCode]; ok {
					if existing, ok := players[conn.PlayerID]; ok && existing == conn {
						delete(players, conn.PlayerID)
						close(conn.Send)
						log.Info().Str("room", conn.RoomCode).Str("player", conn.PlayerID).Msg("player disconnected")
						h.notifyAdminPlayerLeft(conn.RoomCode, conn.PlayerID)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			if msg.ToAdmin {
				h.send(h.adminConns[msg.RoomCode], data)
			} else if msg.ToPlayer != "" {
				if players, ok := h.playerConns[msg.RoomCode]; ok {
					h.send(players[msg.ToPlayer], data)
				}
			} else {
				// Room-wide: every player plus the admin console.
				if players, ok := h.playerConns[msg.RoomCode]; ok {
					for _, conn := range players {
						h.send(conn, data)
					}
				}
				h.send(h.adminConns[msg.RoomCode], data)
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) send(conn *Connection, data []byte) {
	if conn == nil {
		return
	}
	select {
	case conn.Send <- data:
	default:
		// Drop message if buffer full.
	}
}

// Register adds a connection.
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection.
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToAdmin sends a message to the room admin (implements service.Broadcaster).
func (h *Hub) BroadcastToAdmin(roomCode string, msgType string, payload interface{}) {
	h.enqueue(&BroadcastMessage{RoomCode: roomCode, ToAdmin: true}, msgType, payload)
}

// BroadcastToPlayer sends a message to a specific player (implements service.Broadcaster).
func (h *Hub) BroadcastToPlayer(roomCode, playerID string, msgType string, payload interface{}) {
	h.enqueue(&BroadcastMessage{RoomCode: roomCode, ToPlayer: playerID}, msgType, payload)
}

// BroadcastToAll sends a message to everyone in a room (implements service.Broadcaster).
func (h *Hub) BroadcastToAll(roomCode string, msgType string, payload interface{}) {
	h.enqueue(&BroadcastMessage{RoomCode: roomCode}, msgType, payload)
}

// DisconnectRoom drops every connection of a room (implements service.Broadcaster).
func (h *Hub) DisconnectRoom(roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conn, ok := h.adminConns[roomCode]; ok {
		delete(h.adminConns, roomCode)
		close(conn.Send)
	}
	for id, conn := range h.playerConns[roomCode] {
		delete(h.playerConns[roomCode], id)
		close(conn.Send)
	}
	delete(h.playerConns, roomCode)
}

func (h *Hub) enqueue(msg *BroadcastMessage, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	msg.Message = &Message{
		Type:    MessageType(msgType),
		Payload: data,
	}
	h.broadcast <- msg
}

func (h *Hub) notifyAdminPlayerLeft(roomCode, playerID string) {
	if conn, ok := h.adminConns[roomCode]; ok {
		data, _ := json.Marshal(&Message{
			Type:    MsgPlayerLeft,
			Payload: json.RawMessage(`{"playerId":"` + playerID + `"}`),
		})
		h.send(conn, data)
	}
}
