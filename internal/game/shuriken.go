package game

import (
	"fmt"
	"slices"
)

// ProposeShuriken opens a vote to spend a shuriken. Requires an available
// shuriken, an active level, and no vote already in flight. The proposer is
// recorded as an affirmative vote immediately.
func (e *Engine) ProposeShuriken(connID string) {
	player, room := e.registry.Lookup(connID)
	if player == nil || room == nil {
		return
	}
	if room.State.Status != StatusPlaying {
		return
	}
	if room.State.Shurikens <= 0 || room.State.ShurikenVote.Active {
		return
	}

	room.State.ShurikenVote = ShurikenVote{
		Active:     true,
		ProposedBy: player.Name,
		Votes:      map[string]bool{player.ID: true},
	}

	e.broadcastGameUpdate(room)
}

// VoteShuriken records one player's vote. A single negative vote cancels the
// proposal on the spot; the shuriken fires only once every current player
// has voted yes.
func (e *Engine) VoteShuriken(connID string, accept bool) {
	player, room := e.registry.Lookup(connID)
	if player == nil || room == nil {
		return
	}
	if !room.State.ShurikenVote.Active {
		return
	}

	if !accept {
		room.State.ShurikenVote = ShurikenVote{Votes: map[string]bool{}}
		e.broadcast(room, EventGameMessage, GameMessage{
			Text: fmt.Sprintf("%s declined the shuriken.", player.Name),
		})
		e.broadcastGameUpdate(room)
		return
	}

	room.State.ShurikenVote.Votes[connID] = true
	if len(room.State.ShurikenVote.Votes) == len(room.Players) {
		e.executeShuriken(room)
	}

	e.broadcastGameUpdate(room)
}

// executeShuriken spends the shuriken: every non-empty hand gives up its
// lowest card, the batch is revealed to the room, and the game pauses in
// shuriken_reveal until every player acknowledges.
func (e *Engine) executeShuriken(room *Room) {
	room.State.Shurikens--
	room.State.ShurikenVote = ShurikenVote{Votes: map[string]bool{}}

	var discarded []ShurikenDiscard
	for _, p := range room.Players {
		low, ok := p.LowestCard()
		if !ok {
			continue
		}
		p.RemoveCard(low)
		discarded = append(discarded, ShurikenDiscard{Player: p.Name, Card: low})
		e.sendHand(p)
	}

	room.State.Status = StatusShurikenReveal
	room.State.ShurikenReveal = &ShurikenReveal{
		DiscardedCards: discarded,
		ReadyPlayers:   []string{},
	}

	e.broadcast(room, EventShurikenEffect, ShurikenEffect{DiscardedCards: discarded})
}

// ShurikenContinue acknowledges the reveal for one player. Play resumes once
// everyone has acknowledged.
func (e *Engine) ShurikenContinue(connID string) {
	player, room := e.registry.Lookup(connID)
	if player == nil || room == nil {
		return
	}
	if room.State.Status != StatusShurikenReveal || room.State.ShurikenReveal == nil {
		return
	}

	reveal := room.State.ShurikenReveal
	if !slices.Contains(reveal.ReadyPlayers, connID) {
		reveal.ReadyPlayers = append(reveal.ReadyPlayers, connID)
	}

	if len(reveal.ReadyPlayers) == len(room.Players) {
		e.finishShurikenReveal(room)
	}

	e.broadcastGameUpdate(room)
}

// finishShurikenReveal resumes play, archives the discard batch, and only
// now checks level completion, so every client saw the reveal before any
// level transition fires. A completion here redeals after a short delay
// rather than waiting for the host.
func (e *Engine) finishShurikenReveal(room *Room) {
	room.State.Status = StatusPlaying

	reveal := room.State.ShurikenReveal
	room.State.ShurikenUsageHistory = append(room.State.ShurikenUsageHistory, ShurikenUsage{
		DiscardedCards: reveal.DiscardedCards,
	})
	room.State.ShurikenReveal = nil

	if room.TotalCards() == 0 {
		if !e.advanceLevel(room) {
			e.scheduleRedeal(room)
		}
	}
}
