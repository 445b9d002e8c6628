package game

// Room is a live game session. Players are kept in join order, which is also
// the iteration order for broadcasts and the size input for bonus schedules.
type Room struct {
	Code    string
	HostID  string
	Players []*Player
	State   State

	history []snapshot

	// generation invalidates deferred redeal timers; it is bumped on every
	// redeal, reset and admin level change.
	generation int
}

// NewRoom creates a room owned by the given host player.
func NewRoom(code string, host *Player) *Room {
	return &Room{
		Code:    code,
		HostID:  host.ID,
		Players: []*Player{host},
		State:   NewState(),
	}
}

// Player returns the member with the given connection id, or nil.
func (r *Room) Player(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// TotalCards counts the cards remaining across all hands.
func (r *Room) TotalCards() int {
	total := 0
	for _, p := range r.Players {
		total += len(p.Hand)
	}
	return total
}

// LowestHeld returns the global minimum card across all hands and the name
// of its owner. ok is false when every hand is empty.
func (r *Room) LowestHeld() (card int, owner string, ok bool) {
	for _, p := range r.Players {
		if low, has := p.LowestCard(); has && (!ok || low < card) {
			card, owner, ok = low, p.Name, true
		}
	}
	return card, owner, ok
}

// SanitizedPlayers is the public player list: hands hidden unless training
// mode is on.
func (r *Room) SanitizedPlayers() []PlayerInfo {
	infos := make([]PlayerInfo, len(r.Players))
	for i, p := range r.Players {
		infos[i] = p.info(r.State.TrainingMode)
	}
	return infos
}

// FullPlayers is the unsanitized player list sent to admin connections.
func (r *Room) FullPlayers() []PlayerInfo {
	infos := make([]PlayerInfo, len(r.Players))
	for i, p := range r.Players {
		infos[i] = p.info(true)
	}
	return infos
}

// Admins returns the members holding the admin flag.
func (r *Room) Admins() []*Player {
	var admins []*Player
	for _, p := range r.Players {
		if p.IsAdmin {
			admins = append(admins, p)
		}
	}
	return admins
}

// snapshot is one undo history entry: an independent copy of the game state
// and of every hand.
type snapshot struct {
	state State
	hands map[string][]int
}

// SaveHistory pushes a deep copy of the current state and hands, dropping
// the oldest entry beyond HistoryDepth.
func (r *Room) SaveHistory() {
	entry := snapshot{
		state: r.State.Clone(),
		hands: make(map[string][]int, len(r.Players)),
	}
	for _, p := range r.Players {
		entry.hands[p.ID] = append([]int(nil), p.Hand...)
	}

	r.history = append(r.history, entry)
	if len(r.history) > HistoryDepth {
		r.history = r.history[1:]
	}
}

// RestoreHistory pops the most recent snapshot back into live state. It
// reports false when the stack is empty.
func (r *Room) RestoreHistory() bool {
	if len(r.history) == 0 {
		return false
	}
	entry := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]

	r.State = entry.state
	for _, p := range r.Players {
		if hand, ok := entry.hands[p.ID]; ok {
			p.Hand = append([]int(nil), hand...)
		}
	}
	return true
}

// ClearHistory empties the undo stack.
func (r *Room) ClearHistory() {
	r.history = nil
}

// HistoryLen returns the undo stack depth.
func (r *Room) HistoryLen() int {
	return len(r.history)
}
