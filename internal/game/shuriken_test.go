package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposeShuriken(t *testing.T) {
	e, msg, _ := newTestEngine(t)
	room, ids := setupRoom(t, e, "p1", "p2", "p3")
	dealHands(t, room, []int{7}, []int{42}, []int{3})
	msg.reset()

	e.ProposeShuriken(ids[1])

	vote := room.State.ShurikenVote
	require.True(t, vote.Active)
	assert.Equal(t, "p2", vote.ProposedBy)
	assert.Equal(t, map[string]bool{ids[1]: true}, vote.Votes, "proposer counts as an immediate yes")
	assert.NotEmpty(t, msg.eventsOf(EventGameUpdate))
}

func TestProposeShurikenRequiresStock(t *testing.T) {
	e, _, _ := newTestEngine(t)
	room, ids := setupRoom(t, e, "p1", "p2")
	dealHands(t, room, []int{7}, []int{42})
	room.State.Shurikens = 0

	e.ProposeShuriken(ids[0])

	assert.False(t, room.State.ShurikenVote.Active)
}

func TestProposeShurikenIgnoredOutsidePlay(t *testing.T) {
	e, _, _ := newTestEngine(t)
	room, ids := setupRoom(t, e, "p1", "p2")

	e.ProposeShuriken(ids[0])

	assert.False(t, room.State.ShurikenVote.Active)
}

func TestShurikenVoteDeclined(t *testing.T) {
	e, msg, _ := newTestEngine(t)
	room, ids := setupRoom(t, e, "p1", "p2", "p3")
	dealHands(t, room, []int{7}, []int{42}, []int{3})

	e.ProposeShuriken(ids[0])
	msg.reset()
	e.VoteShuriken(ids[2], false)

	assert.False(t, room.State.ShurikenVote.Active)
	assert.Equal(t, 1, room.State.Shurikens, "a declined vote costs nothing")

	msgs := msg.eventsOf(EventGameMessage)
	require.NotEmpty(t, msgs)
	assert.Equal(t, GameMessage{Text: "p3 declined the shuriken."}, msgs[0].Payload)

	// Hands untouched.
	assert.Equal(t, []int{7}, room.Players[0].Hand)
}

func TestShurikenUnanimousVoteExecutes(t *testing.T) {
	e, msg, _ := newTestEngine(t)
	room, ids := setupRoom(t, e, "p1", "p2", "p3")
	dealHands(t, room, []int{7, 50}, []int{42}, []int{3, 90})

	e.ProposeShuriken(ids[0])
	e.VoteShuriken(ids[1], true)
	require.Equal(t, StatusPlaying, room.State.Status, "still waiting on the last vote")
	msg.reset()
	e.VoteShuriken(ids[2], true)

	assert.Equal(t, 0, room.State.Shurikens)
	assert.Equal(t, StatusShurikenReveal, room.State.Status)
	assert.False(t, room.State.ShurikenVote.Active)

	// Each non-empty hand loses its lowest card.
	assert.Equal(t, []int{50}, room.Players[0].Hand)
	assert.Empty(t, room.Players[1].Hand)
	assert.Equal(t, []int{90}, room.Players[2].Hand)

	require.NotNil(t, room.State.ShurikenReveal)
	want := []ShurikenDiscard{
		{Player: "p1", Card: 7},
		{Player: "p2", Card: 42},
		{Player: "p3", Card: 3},
	}
	assert.Equal(t, want, room.State.ShurikenReveal.DiscardedCards)
	assert.Empty(t, room.State.ShurikenReveal.ReadyPlayers)

	effects := msg.eventsOf(EventShurikenEffect)
	require.Len(t, effects, 3)
	assert.Equal(t, ShurikenEffect{DiscardedCards: want}, effects[0].Payload)
}

func TestShurikenSkipsEmptyHands(t *testing.T) {
	e, _, _ := newTestEngine(t)
	room, ids := setupRoom(t, e, "p1", "p2")
	dealHands(t, room, []int{}, []int{42, 90})

	e.ProposeShuriken(ids[0])
	e.VoteShuriken(ids[1], true)

	require.NotNil(t, room.State.ShurikenReveal)
	assert.Equal(t, []ShurikenDiscard{{Player: "p2", Card: 42}}, room.State.ShurikenReveal.DiscardedCards)
}

func TestShurikenRevealWaitsForEveryone(t *testing.T) {
	e, _, _ := newTestEngine(t)
	room, ids := setupRoom(t, e, "p1", "p2", "p3")
	dealHands(t, room, []int{7, 50}, []int{42}, []int{3, 90})

	e.ProposeShuriken(ids[0])
	e.VoteShuriken(ids[1], true)
	e.VoteShuriken(ids[2], true)
	require.Equal(t, StatusShurikenReveal, room.State.Status)

	e.ShurikenContinue(ids[0])
	e.ShurikenContinue(ids[0]) // duplicate ack is idempotent
	assert.Equal(t, StatusShurikenReveal, room.State.Status)
	assert.Len(t, room.State.ShurikenReveal.ReadyPlayers, 1)

	e.ShurikenContinue(ids[1])
	e.ShurikenContinue(ids[2])

	assert.Equal(t, StatusPlaying, room.State.Status)
	assert.Nil(t, room.State.ShurikenReveal)
	require.Len(t, room.State.ShurikenUsageHistory, 1)
	assert.Len(t, room.State.ShurikenUsageHistory[0].DiscardedCards, 3)
}

func TestShurikenEmptyingBoardDefersCompletion(t *testing.T) {
	e, msg, clock := newTestEngine(t)
	room, ids := setupRoom(t, e, "p1", "p2")
	dealHands(t, room, []int{7}, []int{42})

	e.ProposeShuriken(ids[0])
	msg.reset()
	e.VoteShuriken(ids[1], true)

	// The shuriken emptied every hand, but the level must not complete until
	// every player has acknowledged the reveal.
	require.Equal(t, StatusShurikenReveal, room.State.Status)
	assert.Equal(t, 1, room.State.Level)
	assert.Empty(t, msg.eventsOf(EventLevelWon))

	e.ShurikenContinue(ids[0])
	e.ShurikenContinue(ids[1])

	assert.Equal(t, 2, room.State.Level)
	assert.NotEmpty(t, msg.eventsOf(EventLevelWon))
	assert.Zero(t, room.TotalCards(), "redeal is deferred, not immediate")

	// The deferred redeal fires after the celebration delay.
	clock.Advance(2 * time.Second).MustWait(context.Background())
	e.drainInbox()

	assert.Equal(t, 4, room.TotalCards())
}

func TestDeferredRedealSkippedAfterReset(t *testing.T) {
	e, _, clock := newTestEngine(t)
	room, ids := setupRoom(t, e, "p1", "p2")
	dealHands(t, room, []int{7}, []int{42})

	e.ProposeShuriken(ids[0])
	e.VoteShuriken(ids[1], true)
	e.ShurikenContinue(ids[0])
	e.ShurikenContinue(ids[1])
	require.Equal(t, 2, room.State.Level)

	// A fresh deal bumps the room generation, so the pending redeal from the
	// shuriken completion must not clobber it.
	e.StartNextLevel(ids[0])
	require.Equal(t, 4, room.TotalCards())
	before := append([]int(nil), room.Players[0].Hand...)

	clock.Advance(2 * time.Second).MustWait(context.Background())
	e.drainInbox()

	assert.Equal(t, before, room.Players[0].Hand, "stale redeal must be a no-op")
}

func TestDepartureCompletesPendingVote(t *testing.T) {
	e, msg, _ := newTestEngine(t)
	room, ids := setupRoom(t, e, "p1", "p2", "p3")
	dealHands(t, room, []int{7}, []int{42}, []int{3, 90})

	e.ProposeShuriken(ids[0])
	e.VoteShuriken(ids[1], true)
	require.True(t, room.State.ShurikenVote.Active)
	msg.reset()

	// The only player yet to vote disconnects: the remaining votes are now
	// unanimous and the shuriken fires.
	e.RemovePlayer(ids[2])

	assert.Equal(t, 0, room.State.Shurikens)
	assert.Equal(t, StatusShurikenReveal, room.State.Status)
	assert.Len(t, room.Players, 2)

	// The remaining players must see the transition, not just the effect.
	updates := msg.eventsOf(EventGameUpdate)
	require.NotEmpty(t, updates, "departure-triggered shuriken must broadcast game_update")
	gu := updates[len(updates)-1].Payload.(GameUpdate)
	assert.Equal(t, StatusShurikenReveal, gu.GameState.Status)
	assert.Equal(t, 0, gu.GameState.Shurikens)
}

func TestDepartureCompletesReveal(t *testing.T) {
	e, msg, _ := newTestEngine(t)
	room, ids := setupRoom(t, e, "p1", "p2", "p3")
	dealHands(t, room, []int{7, 50}, []int{42, 60}, []int{3, 90})

	e.ProposeShuriken(ids[0])
	e.VoteShuriken(ids[1], true)
	e.VoteShuriken(ids[2], true)
	e.ShurikenContinue(ids[0])
	e.ShurikenContinue(ids[1])
	require.Equal(t, StatusShurikenReveal, room.State.Status)
	msg.reset()

	e.RemovePlayer(ids[2])

	assert.Equal(t, StatusPlaying, room.State.Status)
	assert.Nil(t, room.State.ShurikenReveal)

	updates := msg.eventsOf(EventGameUpdate)
	require.NotEmpty(t, updates, "resuming play on departure must broadcast game_update")
	gu := updates[len(updates)-1].Payload.(GameUpdate)
	assert.Equal(t, StatusPlaying, gu.GameState.Status)
	assert.Nil(t, gu.GameState.ShurikenReveal)
}
