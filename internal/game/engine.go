package game

import (
	"context"
	rand "math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/mindwave-games/mindwave/internal/deck"
)

const (
	// kickDisconnectDelay lets the player_kicked notification flush before
	// the connection is torn down.
	kickDisconnectDelay = 500 * time.Millisecond

	// celebrationRedealDelay spaces a deferred redeal far enough from the
	// reveal that every client has seen the discarded cards.
	celebrationRedealDelay = 2 * time.Second

	celebrationSounds = 10
)

// AdminPolicy decides which identities can hold the admin flag. An identity
// is privileged when its name is listed and the shared secret is configured.
type AdminPolicy struct {
	Names  []string
	Secret string
}

// Authenticate checks a join/create attempt against the policy. It returns
// whether the player gets the admin flag, or a credential rejection for a
// privileged name with a wrong or missing secret.
func (ap AdminPolicy) Authenticate(name, credential string) (bool, error) {
	if !slices.Contains(ap.Names, name) || ap.Secret == "" {
		return false, nil
	}
	switch credential {
	case ap.Secret:
		return true, nil
	case "":
		return false, ErrCredentialRequired
	default:
		return false, ErrBadCredential
	}
}

// Engine drives every room. All state mutation happens on the single Run
// goroutine: connection handlers and timers post closures into the inbox and
// each one executes to completion before the next, so no locks are needed
// anywhere in this package.
type Engine struct {
	registry *Registry
	msg      Messenger
	admin    AdminPolicy
	clock    quartz.Clock
	rng      *rand.Rand
	logger   *log.Logger
	inbox    chan func()
}

// NewEngine creates an engine. The clock is injectable so tests can control
// the kick and redeal timers.
func NewEngine(registry *Registry, msg Messenger, admin AdminPolicy, clock quartz.Clock, rng *rand.Rand, logger *log.Logger) *Engine {
	return &Engine{
		registry: registry,
		msg:      msg,
		admin:    admin,
		clock:    clock,
		rng:      rng,
		logger:   logger.WithPrefix("engine"),
		inbox:    make(chan func(), 256),
	}
}

// Run consumes the inbox until the context is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-e.inbox:
			fn()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Do schedules fn onto the engine goroutine.
func (e *Engine) Do(fn func()) {
	e.inbox <- fn
}

// after schedules fn back onto the engine goroutine once d has elapsed.
func (e *Engine) after(d time.Duration, fn func()) {
	e.clock.AfterFunc(d, func() {
		e.Do(fn)
	})
}

// Registry exposes the room table, for transport-level cleanup paths.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// broadcast sends an event to every member of a room.
func (e *Engine) broadcast(room *Room, event string, payload any) {
	for _, p := range room.Players {
		e.msg.Send(p.ID, event, payload)
	}
}

// broadcastGameUpdate pushes the sanitized full state to the room and the
// unsanitized hand feed to admin connections.
func (e *Engine) broadcastGameUpdate(room *Room) {
	e.broadcast(room, EventGameUpdate, GameUpdate{
		GameState: room.State,
		Players:   room.SanitizedPlayers(),
		HostID:    room.HostID,
	})
	e.broadcastAdminPlayers(room)
}

func (e *Engine) broadcastAdminPlayers(room *Room) {
	admins := room.Admins()
	if len(admins) == 0 {
		return
	}
	full := room.FullPlayers()
	for _, admin := range admins {
		e.msg.Send(admin.ID, EventAdminPlayers, full)
	}
}

func (e *Engine) sendHand(p *Player) {
	e.msg.Send(p.ID, EventHandUpdate, HandUpdate{Cards: append([]int(nil), p.Hand...)})
}

// startLevel deals a fresh level: every player receives level cards from a
// newly shuffled deck and the per-level piles are cleared.
func (e *Engine) startLevel(room *Room) {
	room.generation++

	d := deck.New(e.rng)
	for _, p := range room.Players {
		p.Hand = d.Deal(room.State.Level)
	}

	room.State.CurrentPile = []int{}
	room.State.DiscardedPile = []DiscardEvent{}
	room.State.ShurikenUsageHistory = []ShurikenUsage{}
	room.State.LastPlayedBy = ""

	e.logger.Info("level dealt", "room", room.Code, "level", room.State.Level, "players", len(room.Players))

	e.broadcastGameUpdate(room)
	for _, p := range room.Players {
		e.sendHand(p)
	}
}

// scheduleRedeal arms a deferred redeal that survives only as long as the
// room stays on the same generation and is still mid-game. Resets, admin
// level changes and ordinary redeals all invalidate it.
func (e *Engine) scheduleRedeal(room *Room) {
	generation := room.generation
	code := room.Code
	e.after(celebrationRedealDelay, func() {
		r := e.registry.Room(code)
		if r == nil || r.generation != generation {
			return
		}
		if r.State.Status != StatusPlaying {
			return
		}
		e.startLevel(r)
	})
}
