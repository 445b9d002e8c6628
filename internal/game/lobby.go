package game

// CreateRoom handles a create_room request and returns the acknowledgment
// payload for the requesting connection.
func (e *Engine) CreateRoom(connID, name, credential string) JoinAck {
	isAdmin, err := e.admin.Authenticate(name, credential)
	if err != nil {
		return JoinAck{Success: false, Message: err.Error()}
	}

	player := &Player{ID: connID, Name: name, Hand: []int{}, IsAdmin: isAdmin}
	room := e.registry.CreateRoom(player)

	return e.joinAck(room, isAdmin)
}

// JoinRoom handles a join_room request. Room-lookup rejections take
// precedence over credential rejections, matching the ack taxonomy.
func (e *Engine) JoinRoom(connID, code, name, credential string) JoinAck {
	if room := e.registry.Room(code); room == nil {
		return JoinAck{Success: false, Message: ErrRoomNotFound.Error()}
	} else if room.State.Status != StatusWaiting {
		return JoinAck{Success: false, Message: ErrGameInProgress.Error()}
	} else if len(room.Players) >= RoomCapacity {
		return JoinAck{Success: false, Message: ErrRoomFull.Error()}
	}

	isAdmin, err := e.admin.Authenticate(name, credential)
	if err != nil {
		return JoinAck{Success: false, Message: err.Error()}
	}

	player := &Player{ID: connID, Name: name, Hand: []int{}, IsAdmin: isAdmin}
	room, joinErr := e.registry.JoinRoom(code, player)
	if joinErr != nil {
		return JoinAck{Success: false, Message: joinErr.Error()}
	}

	// A single privileged identity at a time: a fresh successful admin
	// authentication demotes every other admin in the room.
	if isAdmin {
		for _, p := range room.Players {
			if p.ID != player.ID {
				p.IsAdmin = false
			}
		}
	}

	e.broadcast(room, EventUpdatePlayers, room.SanitizedPlayers())
	e.broadcastAdminPlayers(room)

	return e.joinAck(room, isAdmin)
}

func (e *Engine) joinAck(room *Room, isAdmin bool) JoinAck {
	state := room.State.Clone()
	return JoinAck{
		Success:   true,
		RoomCode:  room.Code,
		Players:   room.SanitizedPlayers(),
		GameState: &state,
		HostID:    room.HostID,
		IsAdmin:   isAdmin,
	}
}

// RemovePlayer handles a disconnected connection: room membership, host
// reassignment, and any shuriken vote the player was part of.
func (e *Engine) RemovePlayer(connID string) {
	room, player, _ := e.registry.RemovePlayer(connID)
	if player == nil || room == nil {
		return
	}

	e.pruneAfterDeparture(room, connID)

	// Pruning can fire a shuriken or resume play, and the host may have
	// moved; push the full state unconditionally.
	e.broadcastGameUpdate(room)
	e.broadcast(room, EventUpdatePlayers, room.SanitizedPlayers())
}

// pruneAfterDeparture drops a departed player from any in-flight consensus
// tracking and re-evaluates the all-voted / all-ready conditions, which may
// now hold with one fewer participant.
func (e *Engine) pruneAfterDeparture(room *Room, connID string) {
	if room.State.ShurikenVote.Active {
		delete(room.State.ShurikenVote.Votes, connID)
		if len(room.State.ShurikenVote.Votes) == len(room.Players) {
			e.executeShuriken(room)
		}
	}

	if room.State.Status == StatusShurikenReveal && room.State.ShurikenReveal != nil {
		reveal := room.State.ShurikenReveal
		for i, id := range reveal.ReadyPlayers {
			if id == connID {
				reveal.ReadyPlayers = append(reveal.ReadyPlayers[:i], reveal.ReadyPlayers[i+1:]...)
				break
			}
		}
		if len(reveal.ReadyPlayers) == len(room.Players) {
			e.finishShurikenReveal(room)
		}
	}
}

// StartGame begins a fresh game at level 1. Host only; rejected while a
// level is active.
func (e *Engine) StartGame(connID string) {
	player, room := e.registry.Lookup(connID)
	if player == nil || room == nil || room.HostID != connID {
		return
	}
	if !canStart(room.State.Status) {
		return
	}

	room.State.Status = StatusPlaying
	room.State.Level = 1
	room.State.LastGameResult = nil
	room.State.Lives = 0
	room.State.Shurikens = 0
	room.State.ShurikenVote = ShurikenVote{Votes: map[string]bool{}}

	e.startLevel(room)
}

// RetryLevel restarts at the level the last game was lost on. Host only.
func (e *Engine) RetryLevel(connID string) {
	player, room := e.registry.Lookup(connID)
	if player == nil || room == nil || room.HostID != connID {
		return
	}
	if !canStart(room.State.Status) {
		return
	}

	level := room.State.Level
	if room.State.LastGameResult != nil {
		level = room.State.LastGameResult.Level
	}

	room.State.Status = StatusPlaying
	room.State.Level = level
	room.State.LastGameResult = nil
	room.State.Lives = 0
	room.State.Shurikens = 0
	room.State.ShurikenVote = ShurikenVote{Votes: map[string]bool{}}

	e.startLevel(room)
}

// canStart reports whether a start/retry may deal a level: never while one
// is already active or being revealed.
func canStart(status Status) bool {
	return status == StatusWaiting || status == StatusWon
}

// StartNextLevel deals the next level once the host signals the celebration
// is over. Host only; the status stays playing throughout the celebration, so
// the celebration itself is recognized by the empty board.
func (e *Engine) StartNextLevel(connID string) {
	player, room := e.registry.Lookup(connID)
	if player == nil || room == nil || room.HostID != connID {
		return
	}
	if room.State.Status != StatusPlaying || room.TotalCards() != 0 {
		return
	}
	e.startLevel(room)
}
