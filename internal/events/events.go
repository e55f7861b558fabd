package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	// TypeRunFinished is emitted once a run has been scored.
	TypeRunFinished = "run_finished"
)

// Event is a typed notification with a JSON payload.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type selects the handlers that receive the event
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// RunFinishedPayload is the payload of a TypeRunFinished event.
type RunFinishedPayload struct {
	Email     string   `json:"email"`
	Presented []string `json:"presented"`
	Answers   []string `json:"answers"`
	Score     int      `json:"score"`
	Status    string   `json:"status"`
}

// Handler reacts to events of the types it is registered for.
type Handler interface {
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// Emitter publishes events.
type Emitter interface {
	Emit(ctx context.Context, event *Event) error
}
