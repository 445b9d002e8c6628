package server

// Note: game events (game_update, hand_update, card_played, ...) are named in
// internal/game/events.go and are sent as WebSocket messages with the same
// envelope.

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
// These are used for client-server communication protocol
const (
	// Client to server messages
	MessageTypeCreateRoom       MessageType = "create_room"
	MessageTypeJoinRoom         MessageType = "join_room"
	MessageTypeStartGame        MessageType = "start_game"
	MessageTypeRetryLevel       MessageType = "retry_level"
	MessageTypePlayCard         MessageType = "play_card"
	MessageTypeProposeShuriken  MessageType = "propose_shuriken"
	MessageTypeVoteShuriken     MessageType = "vote_shuriken"
	MessageTypeShurikenContinue MessageType = "shuriken_continue"
	MessageTypeStartNextLevel   MessageType = "start_next_level"
	MessageTypeAdminAction      MessageType = "admin_action"

	// Server to client acknowledgments (echo the request's requestId)
	MessageTypeRoomCreated MessageType = "room_created"
	MessageTypeRoomJoined  MessageType = "room_joined"
	MessageTypeError       MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
