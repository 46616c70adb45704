package broadcast

import (
	"encoding/json"
	"fmt"
)

// Envelope is the frame every websocket message travels in, both directions.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Encode wraps payload in an Envelope. A nil payload leaves data out.
func Encode(event string, payload any) ([]byte, error) {
	env := Envelope{Type: event}
	switch p := payload.(type) {
	case nil:
	case json.RawMessage:
		env.Data = p
	default:
		data, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", event, err)
		}
		env.Data = data
	}
	return json.Marshal(env)
}

func Decode(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return env, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return env, fmt.Errorf("decode envelope: missing type")
	}
	return env, nil
}
