package eventbus

import (
	"encoding/json"
	"fmt"

	"github.com/amirasaad/corebank/pkg/domain/events"
)

// Envelope is the wire form of an event on external buses.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Marshal wraps event in an envelope.
func Marshal(event events.Event) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", event.Type(), err)
	}
	return json.Marshal(Envelope{Type: event.Type(), Payload: payload})
}

// Unmarshal decodes an envelope back into its concrete event.
func Unmarshal(data []byte) (events.Event, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return events.Decode(env.Type, env.Payload)
}
