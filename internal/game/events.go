package game

// Outbound event names. These are part of the wire protocol.
const (
	EventUpdatePlayers  = "update_players"
	EventAdminPlayers   = "admin_players_update"
	EventGameUpdate     = "game_update"
	EventHandUpdate     = "hand_update"
	EventGameError      = "game_error"
	EventPlayerKicked   = "player_kicked"
	EventShurikenEffect = "shuriken_effect"
	EventGameMessage    = "game_message"
	EventGameOver       = "game_over"
	EventCardPlayed     = "card_played"
	EventLevelWon       = "level_won"
)

// Messenger delivers outbound events to connections. Implementations must
// never block: the engine mutates state between sends and a slow client must
// not stall the room.
type Messenger interface {
	// Send delivers a named event to a single connection. Unknown ids are
	// dropped silently.
	Send(connID, event string, payload any)

	// Disconnect forcibly closes a connection.
	Disconnect(connID string)
}

// GameUpdate is the sanitized full-state broadcast sent after every mutation.
type GameUpdate struct {
	GameState State        `json:"gameState"`
	Players   []PlayerInfo `json:"players"`
	HostID    string       `json:"hostId"`
}

// HandUpdate is the private per-player hand delta.
type HandUpdate struct {
	Cards []int `json:"cards"`
}

// PlayError is broadcast when a card is played out of order. Distraction
// decoys reuse the type with only Message set.
type PlayError struct {
	Message          string `json:"message,omitempty"`
	WrongCard        int    `json:"wrongCard,omitempty"`
	PlayedBy         string `json:"playedBy,omitempty"`
	ShouldHavePlayed int    `json:"shouldHavePlayed,omitempty"`
	OwnerOfLowest    string `json:"ownerOfLowest,omitempty"`
}

// KickNotice is sent to a kicked player just before their connection closes.
type KickNotice struct {
	Message string `json:"message"`
}

// ShurikenEffect carries the reveal's discard batch.
type ShurikenEffect struct {
	DiscardedCards []ShurikenDiscard `json:"discardedCards"`
}

// GameMessage is a plain text broadcast.
type GameMessage struct {
	Text string `json:"text"`
}

// GameOver announces a win or loss.
type GameOver struct {
	Won bool `json:"won"`
}

// CardPlayed announces a successful play.
type CardPlayed struct {
	Card   int    `json:"card"`
	Player string `json:"player"`
}

// LevelWon announces a cleared level along with the celebration sound all
// clients should play before the host advances the game.
type LevelWon struct {
	Level   int `json:"level"`
	SoundID int `json:"soundId"`
}

// JoinAck is the acknowledgment payload for create_room and join_room.
type JoinAck struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	RoomCode  string       `json:"roomId,omitempty"`
	Players   []PlayerInfo `json:"players,omitempty"`
	GameState *State       `json:"gameState,omitempty"`
	HostID    string       `json:"hostId,omitempty"`
	IsAdmin   bool         `json:"isAdmin"`
}
