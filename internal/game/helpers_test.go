package game

import (
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/mindwave-games/mindwave/internal/randutil"
	"github.com/mindwave-games/mindwave/internal/roomcode"
)

const (
	testAdminName   = "Overseer"
	testAdminSecret = "sesame"
)

type sentEvent struct {
	ConnID  string
	Event   string
	Payload any
}

// fakeMessenger records every outbound event for assertions.
type fakeMessenger struct {
	events       []sentEvent
	disconnected []string
}

func (f *fakeMessenger) Send(connID, event string, payload any) {
	f.events = append(f.events, sentEvent{ConnID: connID, Event: event, Payload: payload})
}

func (f *fakeMessenger) Disconnect(connID string) {
	f.disconnected = append(f.disconnected, connID)
}

func (f *fakeMessenger) reset() {
	f.events = nil
	f.disconnected = nil
}

// eventsOf returns all recorded events with the given name.
func (f *fakeMessenger) eventsOf(event string) []sentEvent {
	var out []sentEvent
	for _, e := range f.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// eventsFor returns all recorded events of one name sent to one connection.
func (f *fakeMessenger) eventsFor(connID, event string) []sentEvent {
	var out []sentEvent
	for _, e := range f.eventsOf(event) {
		if e.ConnID == connID {
			out = append(out, e)
		}
	}
	return out
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestEngine(t *testing.T) (*Engine, *fakeMessenger, *quartz.Mock) {
	t.Helper()

	rng := randutil.New(42)
	msg := &fakeMessenger{}
	clock := quartz.NewMock(t)
	registry := NewRegistry(roomcode.NewGenerator(rng), testLogger())
	engine := NewEngine(registry, msg, AdminPolicy{
		Names:  []string{testAdminName},
		Secret: testAdminSecret,
	}, clock, rng, testLogger())

	return engine, msg, clock
}

// drainInbox runs everything queued onto the engine goroutine. Tests call
// engine methods directly, so deferred work scheduled via Do has to be
// pumped by hand.
func (e *Engine) drainInbox() {
	for {
		select {
		case fn := <-e.inbox:
			fn()
		default:
			return
		}
	}
}

// setupRoom creates a room with the given player names. Connection ids are
// "conn-1", "conn-2", ... in name order; the first player is the host.
func setupRoom(t *testing.T, e *Engine, names ...string) (*Room, []string) {
	t.Helper()
	require.NotEmpty(t, names)

	ids := make([]string, len(names))
	ids[0] = "conn-1"
	ack := e.CreateRoom(ids[0], names[0], "")
	require.True(t, ack.Success)

	for i := 1; i < len(names); i++ {
		ids[i] = fmt.Sprintf("conn-%d", i+1)
		joinAck := e.JoinRoom(ids[i], ack.RoomCode, names[i], "")
		require.True(t, joinAck.Success, "join failed: %s", joinAck.Message)
	}

	room := e.registry.Room(ack.RoomCode)
	require.NotNil(t, room)
	return room, ids
}

// dealHands puts the room into an active level with fixed hands, bypassing
// the shuffled deal. Hands must be sorted ascending.
func dealHands(t *testing.T, room *Room, hands ...[]int) {
	t.Helper()
	require.Len(t, hands, len(room.Players))

	room.State.Status = StatusPlaying
	for i, hand := range hands {
		room.Players[i].Hand = append([]int(nil), hand...)
	}
}
