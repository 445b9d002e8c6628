package game

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/mindwave-games/mindwave/internal/roomcode"
)

// Room-lookup and credential rejections surfaced through create/join acks.
var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room is full")
	ErrGameInProgress     = errors.New("game already in progress")
	ErrBadCredential      = errors.New("incorrect credential")
	ErrCredentialRequired = errors.New("credential required")
)

// Registry owns the live room table and the connection-to-player index.
// It is only ever touched from the engine goroutine, so it needs no locking.
type Registry struct {
	rooms   map[string]*Room
	players map[string]*Player
	codes   *roomcode.Generator
	logger  *log.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(codes *roomcode.Generator, logger *log.Logger) *Registry {
	return &Registry{
		rooms:   make(map[string]*Room),
		players: make(map[string]*Player),
		codes:   codes,
		logger:  logger.WithPrefix("registry"),
	}
}

// Room returns the room with the given code, or nil.
func (reg *Registry) Room(code string) *Room {
	return reg.rooms[code]
}

// Lookup resolves a connection id to its player and room. Either may be nil.
func (reg *Registry) Lookup(connID string) (*Player, *Room) {
	player := reg.players[connID]
	if player == nil {
		return nil, nil
	}
	return player, reg.rooms[player.RoomCode]
}

// CreateRoom creates a room with a fresh code and the given player as host.
func (reg *Registry) CreateRoom(player *Player) *Room {
	code := reg.codes.Generate(func(c string) bool {
		return reg.rooms[c] != nil
	})
	player.RoomCode = code

	room := NewRoom(code, player)
	reg.rooms[code] = room
	reg.players[player.ID] = player

	reg.logger.Info("room created", "code", code, "host", player.Name)
	return room
}

// JoinRoom adds a player to an existing room. Joining is rejected once the
// game has left the lobby or the room is at capacity.
func (reg *Registry) JoinRoom(code string, player *Player) (*Room, error) {
	room := reg.rooms[code]
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if room.State.Status != StatusWaiting {
		return nil, ErrGameInProgress
	}
	if len(room.Players) >= RoomCapacity {
		return nil, ErrRoomFull
	}

	player.RoomCode = code
	room.Players = append(room.Players, player)
	reg.players[player.ID] = player

	reg.logger.Info("player joined", "code", code, "player", player.Name, "players", len(room.Players))
	return room, nil
}

// RemovePlayer detaches a connection from its room. It returns the room the
// player was in (nil after the last player leaves, since the room is torn
// down) together with the removed player, and reports whether the host role
// moved to another member.
func (reg *Registry) RemovePlayer(connID string) (room *Room, removed *Player, hostChanged bool) {
	player := reg.players[connID]
	if player == nil {
		return nil, nil, false
	}
	delete(reg.players, connID)

	room = reg.rooms[player.RoomCode]
	if room == nil {
		return nil, player, false
	}

	for i, p := range room.Players {
		if p.ID == connID {
			room.Players = append(room.Players[:i], room.Players[i+1:]...)
			break
		}
	}

	if len(room.Players) == 0 {
		delete(reg.rooms, room.Code)
		reg.logger.Info("room destroyed", "code", room.Code)
		return nil, player, false
	}

	if room.HostID == connID {
		room.HostID = room.Players[0].ID
		hostChanged = true
		reg.logger.Info("host reassigned", "code", room.Code, "host", room.Players[0].Name)
	}

	return room, player, hostChanged
}

// RoomCount returns the number of live rooms.
func (reg *Registry) RoomCount() int {
	return len(reg.rooms)
}
