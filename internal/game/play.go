package game

import "slices"

// PlayCard handles a play_card request from a connection.
func (e *Engine) PlayCard(connID string, value int) {
	player, room := e.registry.Lookup(connID)
	if player == nil || room == nil {
		return
	}
	e.playCard(room, player, value)
}

// playCard runs the turn validator and cascade algorithm. A card that is not
// in the hand, or a room not in the playing state, is ignored outright: no
// state change and no history entry.
func (e *Engine) playCard(room *Room, player *Player, value int) {
	if room.State.Status != StatusPlaying {
		return
	}
	if !player.HasCard(value) {
		return
	}

	room.SaveHistory()

	lowest, lowestOwner, _ := room.LowestHeld()

	if value > lowest {
		e.failedPlay(room, player, value, lowest, lowestOwner)
	} else {
		// Hands hold globally unique values, so equality means this is
		// literally the smallest card anyone holds.
		player.RemoveCard(value)
		room.State.CurrentPile = append(room.State.CurrentPile, value)
		room.State.LastPlayedBy = player.Name

		e.sendHand(player)
		e.broadcast(room, EventCardPlayed, CardPlayed{Card: value, Player: player.Name})
	}

	if room.TotalCards() == 0 && room.State.Status == StatusPlaying {
		e.advanceLevel(room)
	}

	e.broadcastGameUpdate(room)
}

// failedPlay applies the error path: life loss, possible game over, and the
// cascading discard of every card lower than the misplayed one.
func (e *Engine) failedPlay(room *Room, player *Player, value, lowest int, lowestOwner string) {
	if !room.State.InvincibleMode {
		room.State.Lives--
	}

	e.broadcast(room, EventGameError, PlayError{
		WrongCard:        value,
		PlayedBy:         player.Name,
		ShouldHavePlayed: lowest,
		OwnerOfLowest:    lowestOwner,
	})

	// Lost only below zero; zero lives is still alive.
	if room.State.Lives < 0 {
		room.State.Status = StatusWaiting
		room.State.LastGameResult = &GameResult{Won: false, Level: room.State.Level}

		e.broadcastGameUpdate(room)
		e.broadcast(room, EventGameOver, GameOver{Won: false})
		return
	}

	player.RemoveCard(value)

	// Every card lower than the misplay should already have been played;
	// discard them across all hands as one recorded event.
	var discarded []int
	for _, p := range room.Players {
		i := 0
		for i < len(p.Hand) && p.Hand[i] < value {
			i++
		}
		if i > 0 {
			discarded = append(discarded, p.Hand[:i]...)
			p.Hand = append([]int(nil), p.Hand[i:]...)
		}
	}
	slices.Sort(discarded)
	if discarded == nil {
		discarded = []int{}
	}

	room.State.DiscardedPile = append(room.State.DiscardedPile, DiscardEvent{
		CausedBy:  value,
		Discarded: discarded,
	})

	for _, p := range room.Players {
		e.sendHand(p)
	}
}

// advanceLevel increments the level, applies end-of-level bonuses, and
// announces either the win or the celebration. The next level is not dealt
// here: the host signals start_next_level once the celebration finishes.
// Returns true when the game was won outright.
func (e *Engine) advanceLevel(room *Room) bool {
	room.State.Level++

	if room.State.Level > MaxLevel {
		room.State.Status = StatusWon
		e.broadcast(room, EventGameOver, GameOver{Won: true})
		return true
	}

	e.applyLevelBonuses(room, room.State.Level-1)

	e.broadcast(room, EventLevelWon, LevelWon{
		Level:   room.State.Level,
		SoundID: e.rng.IntN(celebrationSounds) + 1,
	})
	return false
}
