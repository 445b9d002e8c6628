package game

import "slices"

// Player is a connected room member. The hand is kept sorted ascending, so
// its first element is always the player's lowest card.
type Player struct {
	ID       string
	Name     string
	RoomCode string
	Hand     []int
	IsAdmin  bool
}

// HasCard reports whether value is currently in the hand.
func (p *Player) HasCard(value int) bool {
	_, found := slices.BinarySearch(p.Hand, value)
	return found
}

// RemoveCard takes value out of the hand, preserving sort order.
func (p *Player) RemoveCard(value int) {
	if i, found := slices.BinarySearch(p.Hand, value); found {
		p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	}
}

// LowestCard returns the smallest held card, or false for an empty hand.
func (p *Player) LowestCard() (int, bool) {
	if len(p.Hand) == 0 {
		return 0, false
	}
	return p.Hand[0], true
}

// PlayerInfo is the client-facing view of a player. Hand is only populated
// for admin feeds and, in training mode, for everyone.
type PlayerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsAdmin   bool   `json:"isAdmin"`
	CardCount int    `json:"cardCount"`
	Hand      []int  `json:"hand,omitempty"`
}

func (p *Player) info(includeHand bool) PlayerInfo {
	info := PlayerInfo{
		ID:        p.ID,
		Name:      p.Name,
		IsAdmin:   p.IsAdmin,
		CardCount: len(p.Hand),
	}
	if includeHand {
		info.Hand = append([]int(nil), p.Hand...)
	}
	return info
}
