package game

import "fmt"

// Admin action types accepted in admin_action messages.
const (
	AdminSetLevel         = "setLevel"
	AdminSetLives         = "setLives"
	AdminSetShurikens     = "setShurikens"
	AdminTogglePause      = "togglePause"
	AdminToggleTraining   = "toggleTraining"
	AdminToggleInvincible = "toggleInvincible"
	AdminBroadcastMessage = "broadcastMessage"
	AdminReset            = "reset"
	AdminKick             = "kick"
	AdminForcePlay        = "forcePlay"
	AdminRenamePlayer     = "renamePlayer"
	AdminSkipLevel        = "skipLevel"
	AdminDistract         = "distract"
	AdminUndo             = "undo"
)

// AdminCommand is a normalized admin_action. IntValue and StrValue carry the
// action's value depending on its type.
type AdminCommand struct {
	Type     string
	TargetID string
	IntValue int
	StrValue string
}

// HandleAdmin applies a privileged out-of-band mutation. Requests from
// connections without the admin flag are ignored. Every accepted action ends
// with a full state broadcast plus the unsanitized admin feed.
func (e *Engine) HandleAdmin(connID string, cmd AdminCommand) {
	player, room := e.registry.Lookup(connID)
	if player == nil || room == nil || !player.IsAdmin {
		return
	}

	e.logger.Info("admin action", "room", room.Code, "admin", player.Name, "type", cmd.Type)

	switch cmd.Type {
	case AdminSetLevel:
		level := cmd.IntValue
		if level < 1 {
			level = 1
		} else if level > MaxLevel {
			level = MaxLevel
		}
		room.State.Level = level
		if room.State.Status == StatusPlaying || room.State.Status == StatusPaused {
			e.startLevel(room)
		}

	case AdminSetLives:
		room.State.Lives = cmd.IntValue

	case AdminSetShurikens:
		room.State.Shurikens = cmd.IntValue

	case AdminTogglePause:
		switch room.State.Status {
		case StatusPlaying:
			room.State.Status = StatusPaused
		case StatusPaused:
			room.State.Status = StatusPlaying
		}

	case AdminToggleTraining:
		room.State.TrainingMode = !room.State.TrainingMode

	case AdminToggleInvincible:
		room.State.InvincibleMode = !room.State.InvincibleMode

	case AdminBroadcastMessage:
		if cmd.StrValue != "" {
			e.broadcast(room, EventGameMessage, GameMessage{Text: "📢 ADMIN: " + cmd.StrValue})
		}

	case AdminReset:
		e.resetRoom(room)

	case AdminKick:
		if e.kickPlayer(room, cmd.TargetID) {
			// Room torn down with the kick; nothing left to broadcast.
			return
		}

	case AdminForcePlay:
		if target := room.Player(cmd.TargetID); target != nil && len(target.Hand) > 0 {
			card := cmd.IntValue
			if !target.HasCard(card) {
				card = target.Hand[0]
			}
			e.playCard(room, target, card)
		}

	case AdminRenamePlayer:
		if target := room.Player(cmd.TargetID); target != nil && cmd.StrValue != "" {
			target.Name = cmd.StrValue
		}

	case AdminSkipLevel:
		e.skipLevel(room)

	case AdminDistract:
		// Decoy error with no state effect.
		e.broadcast(room, EventGameError, PlayError{Message: "⚡ ATTENTION! ⚡"})

	case AdminUndo:
		if room.RestoreHistory() {
			for _, p := range room.Players {
				e.sendHand(p)
			}
		}
	}

	e.broadcastGameUpdate(room)
}

// resetRoom returns a room to the lobby: hands, pile, history, and result
// are all cleared.
func (e *Engine) resetRoom(room *Room) {
	room.generation++

	state := NewState()
	state.Shurikens = 0
	room.State = state
	room.ClearHistory()

	for _, p := range room.Players {
		p.Hand = []int{}
		e.sendHand(p)
	}
}

// kickPlayer removes the target, notifies them, and closes their connection
// after a short delay so the notification flushes first. Reports whether the
// room was destroyed in the process.
func (e *Engine) kickPlayer(room *Room, targetID string) (roomGone bool) {
	target := room.Player(targetID)
	if target == nil {
		return false
	}

	e.msg.Send(targetID, EventPlayerKicked, KickNotice{
		Message: "You have been removed from the game by the administrator.",
	})

	remaining, _, _ := e.registry.RemovePlayer(targetID)

	e.after(kickDisconnectDelay, func() {
		e.msg.Disconnect(targetID)
	})

	if remaining == nil {
		return true
	}

	e.pruneAfterDeparture(remaining, targetID)
	e.broadcast(remaining, EventUpdatePlayers, remaining.SanitizedPlayers())
	return false
}

// skipLevel empties the board and runs the normal end-of-level path, then
// redeals after the celebration delay instead of waiting for the host.
func (e *Engine) skipLevel(room *Room) {
	for _, p := range room.Players {
		p.Hand = []int{}
	}
	room.State.CurrentPile = []int{}

	finished := room.State.Level
	if finished < MaxLevel {
		e.broadcast(room, EventGameMessage, GameMessage{
			Text: fmt.Sprintf("⏩ Level %d skipped by the admin!", finished),
		})
	}

	if !e.advanceLevel(room) {
		e.scheduleRedeal(room)
	}
}
