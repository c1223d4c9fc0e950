package app

import (
	"encoding/json"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// Signaling forwards call setup payloads between two connections without
// looking inside them. It keeps no call state: accept, reject and end are
// trusted to target a real pending call.
type Signaling struct {
	Dir core.Directory
}

// CallRequest is what a caller supplies with call_user.
type CallRequest struct {
	Callee domain.ConnID
	Signal json.RawMessage
	From   domain.ConnID
	Name   string
	Kind   string
}

func (s *Signaling) Initiate(caller domain.ConnID, req CallRequest) core.Result {
	self, ok := s.Dir.Lookup(caller)
	if !ok {
		return core.Dropped(core.OutcomeSenderAbsent)
	}
	if _, ok := s.Dir.Lookup(req.Callee); !ok {
		return core.Dropped(core.OutcomeRecipientAbsent)
	}

	from := req.From
	if from == "" {
		from = self.ID
	}
	name := req.Name
	if name == "" {
		name = self.Username
	}
	kind := domain.CallKindOr(req.Kind)

	return core.Delivered(
		core.Delivery{To: req.Callee, Event: core.Outbound{
			Name:    core.EventIncomingCall,
			Payload: core.IncomingCall{Signal: req.Signal, From: from, Name: name, CallType: kind},
		}},
		core.Delivery{To: req.Callee, Event: core.Outbound{
			Name:    core.EventCallNotification,
			Payload: core.CallNotification{From: name, FromID: from, CallType: kind},
		}},
	)
}

// Accept sends the callee's signal back to the caller, unwrapped.
func (s *Signaling) Accept(accepter, caller domain.ConnID, signal json.RawMessage) core.Result {
	var payload any
	if len(signal) > 0 {
		payload = signal
	}
	return s.forward(accepter, caller, core.Outbound{Name: core.EventCallAccepted, Payload: payload})
}

func (s *Signaling) Reject(accepter, caller domain.ConnID) core.Result {
	return s.forward(accepter, caller, core.Outbound{Name: core.EventCallRejected})
}

func (s *Signaling) Terminate(ender, other domain.ConnID) core.Result {
	return s.forward(ender, other, core.Outbound{Name: core.EventCallEnded})
}

func (s *Signaling) forward(from, to domain.ConnID, ev core.Outbound) core.Result {
	if _, ok := s.Dir.Lookup(from); !ok {
		return core.Dropped(core.OutcomeSenderAbsent)
	}
	if _, ok := s.Dir.Lookup(to); !ok {
		return core.Dropped(core.OutcomeRecipientAbsent)
	}
	return core.Delivered(core.Delivery{To: to, Event: ev})
}
