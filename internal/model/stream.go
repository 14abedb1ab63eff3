package model

import (
	"encoding/json"
	"fmt"
)

// EventType discriminates the events written to a generation stream.
type EventType string

const (
	EventChunk EventType = "chunk"
	EventDone  EventType = "done"
	EventError EventType = "error"
)

// StreamEvent is one unit of output on a generation stream. A stream carries
// zero or more chunk events followed by exactly one done or error event.
type StreamEvent struct {
	Type    EventType
	Content string // chunk text
	Message string // error message, user facing
	Payload any    // final result of a done event, flattened into the JSON object
}

// IsTerminal reports whether the event ends the stream.
func (e StreamEvent) IsTerminal() bool {
	return e.Type == EventDone || e.Type == EventError
}

// ChunkEvent builds a chunk event.
func ChunkEvent(content string) StreamEvent {
	return StreamEvent{Type: EventChunk, Content: content}
}

// DoneEvent builds a terminal success event carrying the final payload.
func DoneEvent(payload any) StreamEvent {
	return StreamEvent{Type: EventDone, Payload: payload}
}

// ErrorEvent builds a terminal failure event.
func ErrorEvent(message string) StreamEvent {
	return StreamEvent{Type: EventError, Message: message}
}

// MarshalJSON renders `{"type":"chunk","content":...}`, `{"type":"error","message":...}`
// or `{"type":"done", ...payload fields}`.
func (e StreamEvent) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case EventChunk:
		return json.Marshal(struct {
			Type    EventType `json:"type"`
			Content string    `json:"content"`
		}{e.Type, e.Content})
	case EventError:
		return json.Marshal(struct {
			Type    EventType `json:"type"`
			Message string    `json:"message"`
		}{e.Type, e.Message})
	case EventDone:
		fields := map[string]any{}
		if e.Payload != nil {
			raw, err := json.Marshal(e.Payload)
			if err != nil {
				return nil, fmt.Errorf("marshal done payload: %w", err)
			}
			if err := json.Unmarshal(raw, &fields); err != nil {
				return nil, fmt.Errorf("done payload must be a JSON object: %w", err)
			}
		}
		fields["type"] = EventDone
		return json.Marshal(fields)
	default:
		return nil, fmt.Errorf("unknown stream event type %q", e.Type)
	}
}

// ReplyResult is the final payload of a tutor reply or regeneration stream.
type ReplyResult struct {
	MessageID    string `json:"messageId"`
	MessageIndex int    `json:"messageIndex"`
	Content      string `json:"content"`
	Depth        int    `json:"depth"`
}

// SummaryResult is the final payload of a topic summary stream.
type SummaryResult struct {
	SummaryEntry
	Depth  int  `json:"depth"`
	Cached bool `json:"cached"`
}
