package server

import (
	"encoding/json"
	"time"

	"github.com/mindwave-games/mindwave/internal/game"
)

// Message is the base WebSocket envelope. RequestID correlates the ack-style
// responses used for room creation and joining.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type CreateRoomData struct {
	Name       string `json:"name"`
	Credential string `json:"credential,omitempty"`
}

type JoinRoomData struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Credential string `json:"credential,omitempty"`
}

type PlayCardData struct {
	Value int `json:"value"`
}

type VoteShurikenData struct {
	Accept bool `json:"accept"`
}

// AdminActionData carries a privileged action. Value is an int for the
// set/forcePlay actions and a string for broadcastMessage/renamePlayer, so it
// stays raw until the type is known.
type AdminActionData struct {
	Type     string          `json:"type"`
	Value    json.RawMessage `json:"value,omitempty"`
	TargetID string          `json:"targetId,omitempty"`
}

// Command normalizes the raw payload into an engine admin command.
func (d AdminActionData) Command() game.AdminCommand {
	cmd := game.AdminCommand{Type: d.Type, TargetID: d.TargetID}
	if len(d.Value) == 0 {
		return cmd
	}
	if err := json.Unmarshal(d.Value, &cmd.IntValue); err != nil {
		_ = json.Unmarshal(d.Value, &cmd.StrValue) // Not an int; string or nothing
	}
	return cmd
}

// ErrorData is sent for malformed or unroutable messages.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
