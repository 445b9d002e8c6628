package game

// Status is the lifecycle state of a room's game.
type Status string

const (
	StatusWaiting        Status = "waiting"
	StatusPlaying        Status = "playing"
	StatusPaused         Status = "paused"
	StatusShurikenReveal Status = "shuriken_reveal"
	StatusWon            Status = "won"
)

const (
	// MaxLevel is the final level; clearing it wins the game.
	MaxLevel = 12

	// RoomCapacity is the maximum number of players per room.
	RoomCapacity = 7

	// MaxShurikens caps the shuriken count at bonus time.
	MaxShurikens = 3

	// HistoryDepth bounds the undo stack; oldest snapshots are dropped first.
	HistoryDepth = 10
)

// ShurikenVote tracks an in-flight shuriken proposal. Votes only ever holds
// affirmative entries: a negative vote closes the whole vote immediately.
type ShurikenVote struct {
	Active     bool            `json:"active"`
	ProposedBy string          `json:"proposedBy,omitempty"`
	Votes      map[string]bool `json:"votes"`
}

// ShurikenDiscard records one player's lowest card given up to a shuriken.
type ShurikenDiscard struct {
	Player string `json:"player"`
	Card   int    `json:"card"`
}

// ShurikenReveal holds the discard batch shown to everyone plus the set of
// players who have acknowledged it. Ordinary play is suspended until the
// ready set covers the whole room.
type ShurikenReveal struct {
	DiscardedCards []ShurikenDiscard `json:"discardedCards"`
	ReadyPlayers   []string          `json:"readyPlayers"`
}

// ShurikenUsage is one archived reveal, kept per level.
type ShurikenUsage struct {
	DiscardedCards []ShurikenDiscard `json:"discardedCards"`
}

// DiscardEvent records the collateral of one erroneous play: the card that
// triggered it and every card discarded as provably unplayable.
type DiscardEvent struct {
	CausedBy  int   `json:"causedBy"`
	Discarded []int `json:"discarded"`
}

// GameResult is the outcome of the last finished game.
type GameResult struct {
	Won   bool `json:"won"`
	Level int  `json:"level"`
}

// State is the full game state of a room. It is serialized verbatim into
// game_update broadcasts, so field names are part of the wire protocol.
type State struct {
	Status               Status            `json:"status"`
	Level                int               `json:"level"`
	Lives                int               `json:"lives"`
	Shurikens            int               `json:"shurikens"`
	CurrentPile          []int             `json:"currentPile"`
	ShurikenVote         ShurikenVote      `json:"shurikenVote"`
	ShurikenReveal       *ShurikenReveal   `json:"shurikenRevealData,omitempty"`
	ShurikenUsageHistory []ShurikenUsage   `json:"shurikenUsageHistory"`
	DiscardedPile        []DiscardEvent    `json:"discardedPile"`
	LastPlayedBy         string            `json:"lastPlayedBy,omitempty"`
	LastGameResult       *GameResult       `json:"lastGameResult,omitempty"`
	TrainingMode         bool              `json:"trainingMode"`
	InvincibleMode       bool              `json:"invincibleMode"`
}

// NewState returns the state of a freshly created room.
func NewState() State {
	return State{
		Status:               StatusWaiting,
		Level:                1,
		Lives:                0,
		Shurikens:            1,
		CurrentPile:          []int{},
		ShurikenVote:         ShurikenVote{Votes: map[string]bool{}},
		ShurikenUsageHistory: []ShurikenUsage{},
		DiscardedPile:        []DiscardEvent{},
	}
}

// Clone returns a deep copy sharing no slices or maps with the receiver.
// Undo snapshots rely on this to avoid aliasing live state.
func (s State) Clone() State {
	out := s

	out.CurrentPile = append([]int(nil), s.CurrentPile...)

	out.ShurikenVote.Votes = make(map[string]bool, len(s.ShurikenVote.Votes))
	for id, v := range s.ShurikenVote.Votes {
		out.ShurikenVote.Votes[id] = v
	}

	if s.ShurikenReveal != nil {
		reveal := ShurikenReveal{
			DiscardedCards: append([]ShurikenDiscard(nil), s.ShurikenReveal.DiscardedCards...),
			ReadyPlayers:   append([]string(nil), s.ShurikenReveal.ReadyPlayers...),
		}
		out.ShurikenReveal = &reveal
	}

	out.ShurikenUsageHistory = make([]ShurikenUsage, len(s.ShurikenUsageHistory))
	for i, u := range s.ShurikenUsageHistory {
		out.ShurikenUsageHistory[i] = ShurikenUsage{
			DiscardedCards: append([]ShurikenDiscard(nil), u.DiscardedCards...),
		}
	}

	out.DiscardedPile = make([]DiscardEvent, len(s.DiscardedPile))
	for i, d := range s.DiscardedPile {
		out.DiscardedPile[i] = DiscardEvent{
			CausedBy:  d.CausedBy,
			Discarded: append([]int(nil), d.Discarded...),
		}
	}

	if s.LastGameResult != nil {
		result := *s.LastGameResult
		out.LastGameResult = &result
	}

	return out
}
