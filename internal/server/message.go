package server

import (
	"encoding/json"
	"time"

	"github.com/finnb0y/virtualchips/internal/engine"
	"github.com/finnb0y/virtualchips/internal/state"
)

// MessageType identifies a server-to-client message.
type MessageType string

const (
	MessageTypeWelcome      MessageType = "welcome"
	MessageTypeState        MessageType = "state"
	MessageTypeActionResult MessageType = "action_result"
	MessageTypeError        MessageType = "error"
)

// Envelope is the client-to-server wire frame. Type is either "hello" for
// authentication or one of the engine action kinds; Payload carries the
// type-specific fields.
type Envelope struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"requestId,omitempty"`
}

// EnvelopeTypeHello authenticates a connection by access code before any
// action is accepted.
const EnvelopeTypeHello = "hello"

// Message is the server-to-client wire frame.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message with the current timestamp.
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

// Client → Server payloads

type HelloData struct {
	AccessCode string `json:"accessCode"`
}

// Server → Client payloads

type WelcomeData struct {
	SenderID string `json:"senderId"`
	Dealer   bool   `json:"dealer"`
	TableID  string `json:"tableId,omitempty"`
}

type ActionResultData struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StateData is the broadcast view of the aggregate. Balances are public by
// design: every player can audit every stack.
type StateData struct {
	Tournament *state.Tournament            `json:"tournament"`
	Players    map[string]*state.Player     `json:"players"`
	Tables     map[string]*state.TableState `json:"tables"`
}

// StateMessage wraps a snapshot for broadcast.
func StateMessage(s *state.State) (*Message, error) {
	return NewMessage(MessageTypeState, StateData{
		Tournament: s.Tournament,
		Players:    s.Players,
		Tables:     s.Tables,
	})
}

// ActionResultMessage reports the outcome of a submitted action back to the
// submitting connection.
func ActionResultMessage(res engine.Result, requestID string) *Message {
	msg, _ := NewMessage(MessageTypeActionResult, ActionResultData{
		Applied: res.Applied,
		Reason:  string(res.Reason),
	})
	msg.RequestID = requestID
	return msg
}
