package orch

import (
	"github.com/dkeye/Huddle/internal/app"
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/rs/zerolog/log"
)

type connState int

const (
	stateUnjoined connState = iota
	stateJoined
)

// Stats is a point-in-time view of the connection table.
type Stats struct {
	Connections int `json:"connections"`
	Joined      int `json:"joined"`
	Rooms       int `json:"rooms"`
}

// Orchestrator owns the per-connection lifecycle and hands events to the
// presence, messaging and signaling components. It is not safe for
// concurrent use; the Dispatcher serializes every call.
type Orchestrator struct {
	Registry  *app.Registry
	Presence  *app.Presence
	Messenger *app.Messenger
	Signaling *app.Signaling

	// Absent ids are either not connected yet or terminated.
	states map[domain.ConnID]connState
}

func New(reg *app.Registry) *Orchestrator {
	return &Orchestrator{
		Registry:  reg,
		Presence:  &app.Presence{Dir: reg},
		Messenger: &app.Messenger{Dir: reg, IDs: app.NewMessageIDs()},
		Signaling: &app.Signaling{Dir: reg},
		states:    make(map[domain.ConnID]connState),
	}
}

// Handle runs one inbound event for the connection in sess.
func (o *Orchestrator) Handle(sess core.Session, in core.Inbound) core.Result {
	var res core.Result
	switch p := in.Payload.(type) {
	case core.JoinPayload:
		res = o.Join(sess.ID, p)
	case core.SendMessagePayload:
		res = o.Messenger.Route(sess.ID, p.ReceiverID, p.Text, p.Time)
	case core.TypingPayload:
		res = o.Messenger.SetTyping(sess.ID, p.ReceiverID, p.IsTyping)
	case core.CallUserPayload:
		res = o.Signaling.Initiate(sess.ID, app.CallRequest{
			Callee: p.UserToCall,
			Signal: p.SignalData,
			From:   p.From,
			Name:   p.Name,
			Kind:   p.CallType,
		})
	case core.AnswerCallPayload:
		res = o.Signaling.Accept(sess.ID, p.To, p.Signal)
	case core.TargetPayload:
		switch in.Name {
		case core.EventRejectCall:
			res = o.Signaling.Reject(sess.ID, p.To)
		case core.EventEndCall:
			res = o.Signaling.Terminate(sess.ID, p.To)
		default:
			res = core.Dropped(core.OutcomeIgnored)
		}
	default:
		res = core.Dropped(core.OutcomeIgnored)
	}

	ev := log.Debug()
	if res.Outcome != core.OutcomeDelivered {
		ev = log.Info()
	}
	ev.Str("module", "orch").
		Str("sid", string(sess.ID)).
		Str("client", sess.Client).
		Str("event", in.Name).
		Bool("joined", o.joined(sess.ID)).
		Str("outcome", res.Outcome.String()).
		Int("deliveries", len(res.Deliveries)).
		Msg("handled")
	return res
}
