package signal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/tidwall/gjson"
)

var (
	ErrBadFrame   = errors.New("bad frame")
	ErrBadPayload = errors.New("bad payload")
)

// Envelope is the wire shape of every frame in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// DecodeEnvelope peeks the event name without decoding the payload.
func DecodeEnvelope(frame []byte) (Envelope, error) {
	if !gjson.ValidBytes(frame) {
		return Envelope{}, fmt.Errorf("%w: invalid json", ErrBadFrame)
	}
	event := gjson.GetBytes(frame, "event")
	if event.Type != gjson.String || event.Str == "" {
		return Envelope{}, fmt.Errorf("%w: missing event", ErrBadFrame)
	}
	env := Envelope{Event: event.Str}
	if data := gjson.GetBytes(frame, "data"); data.Exists() {
		env.Data = json.RawMessage(data.Raw)
	}
	return env, nil
}

func EncodeEnvelope(event string, payload any) (core.Frame, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event, err)
	}
	b, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return nil, fmt.Errorf("encode %s envelope: %w", event, err)
	}
	return b, nil
}

// RoomName accepts either a bare string or {"roomName": "..."}.
func (e Envelope) RoomName() (string, error) {
	data := gjson.ParseBytes(e.Data)
	switch {
	case data.Type == gjson.String:
		return data.Str, nil
	case data.IsObject():
		if name := data.Get("roomName"); name.Type == gjson.String {
			return name.Str, nil
		}
	}
	return "", fmt.Errorf("%w: %s expects a room name", ErrBadPayload, e.Event)
}

func (e Envelope) Decode(v any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("%w: %s has no data", ErrBadPayload, e.Event)
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}
