package signal

import (
	stdjson "encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/goccy/go-json"
)

var (
	ErrUnknownEvent = errors.New("unknown event")
	ErrNoEventName  = errors.New("missing event name")
)

// wireEnvelope is the frame layout in both directions:
// {"event": "<name>", "data": <payload>}.
type wireEnvelope struct {
	Event string             `json:"event"`
	Data  stdjson.RawMessage `json:"data,omitempty"`
}

// DecodeInbound parses a client frame into a typed inbound event.
func DecodeInbound(frame []byte) (core.Inbound, error) {
	var env wireEnvelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return core.Inbound{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Event == "" {
		return core.Inbound{}, ErrNoEventName
	}
	in := core.Inbound{Name: env.Event}

	var err error
	switch env.Event {
	case core.EventJoin:
		in.Payload, err = decodeData[core.JoinPayload](env.Data)
	case core.EventSendMessage:
		in.Payload, err = decodeData[core.SendMessagePayload](env.Data)
	case core.EventTyping:
		in.Payload, err = decodeData[core.TypingPayload](env.Data)
	case core.EventCallUser:
		in.Payload, err = decodeData[core.CallUserPayload](env.Data)
	case core.EventAnswerCall:
		in.Payload, err = decodeData[core.AnswerCallPayload](env.Data)
	case core.EventRejectCall, core.EventEndCall:
		in.Payload, err = decodeData[core.TargetPayload](env.Data)
	case core.EventPing:
	default:
		return in, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Event)
	}
	if err != nil {
		return in, fmt.Errorf("decode %s: %w", env.Event, err)
	}
	return in, nil
}

func decodeData[T any](data stdjson.RawMessage) (T, error) {
	var v T
	if len(data) == 0 || string(data) == "null" {
		return v, nil
	}
	err := json.Unmarshal(data, &v)
	return v, err
}

// EncodeOutbound renders an outbound event as a text frame.
func EncodeOutbound(ev core.Outbound) (core.Frame, error) {
	env := wireEnvelope{Event: ev.Name}
	if ev.Payload != nil {
		data, err := json.Marshal(ev.Payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", ev.Name, err)
		}
		env.Data = data
	}
	b, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return b, nil
}
