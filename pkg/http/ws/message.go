package ws

import (
	"encoding/json"
	"fmt"
)

// MessageType constants for WebSocket protocol.
const (
	// Client -> Server
	TypeSelectKind      = "select_kind"
	TypeNextQuestion    = "next_question"
	TypeRequestQuestion = "request_question"
	TypeSubmitAnswer    = "submit_answer"
	TypeRevealAnswer    = "reveal_answer"

	// Server -> Client
	TypeQuestion    = "question"
	TypeGradeResult = "grade_result"
	TypeAnswerKey   = "answer_key"
	TypeError       = "error"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	RequestID string          `json:"request_id,omitempty"`
}

// NewMessage marshals payload into a typed message.
func NewMessage(msgType string, payload interface{}, requestID string) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}
	return Message{Type: msgType, Payload: raw, RequestID: requestID}, nil
}

// Decode unmarshals the payload into v. An empty payload leaves v untouched.
func (m Message) Decode(v interface{}) error {
	if len(m.Payload) == 0 || string(m.Payload) == "null" {
		return nil
	}
	return json.Unmarshal(m.Payload, v)
}

// Client Messages (incoming)

type SelectKindPayload struct {
	Kind string `json:"kind"`
}

// SubmitAnswerPayload carries the field matching the current question's kind.
type SubmitAnswerPayload struct {
	Selected   *int        `json:"selected,omitempty"`   // multiple-choice option
	RegionID   string      `json:"region_id,omitempty"`  // hotspot region
	Placements map[int]int `json:"placements,omitempty"` // drag-drop target -> item
}

// Server Messages (outgoing)

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
