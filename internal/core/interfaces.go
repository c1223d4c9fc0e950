package core

import "github.com/dkeye/Huddle/internal/domain"

// Outcome tells what a handler did with an inbound event.
type Outcome int

const (
	// OutcomeDelivered means at least the primary recipient got an event.
	OutcomeDelivered Outcome = iota
	// OutcomeRecipientAbsent means the target is not in the registry; dropped silently.
	OutcomeRecipientAbsent
	// OutcomeSenderAbsent means the sender has not joined (or already left); no-op.
	OutcomeSenderAbsent
	// OutcomeIgnored covers malformed events and transitions the lifecycle forbids.
	OutcomeIgnored
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeRecipientAbsent:
		return "recipient_absent"
	case OutcomeSenderAbsent:
		return "sender_absent"
	case OutcomeIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Delivery is one outbound event addressed to one connection.
type Delivery struct {
	To    domain.ConnID
	Event Outbound
}

// Result is what every handler returns instead of pushing to sockets itself.
type Result struct {
	Outcome    Outcome
	Deliveries []Delivery
}

func Delivered(ds ...Delivery) Result {
	return Result{Outcome: OutcomeDelivered, Deliveries: ds}
}

func Dropped(o Outcome) Result {
	return Result{Outcome: o}
}

// Directory is the only view of connection state other components get.
type Directory interface {
	Register(id domain.ConnID, username string, room domain.RoomID) domain.Connection
	Lookup(id domain.ConnID) (domain.Connection, bool)
	Unregister(id domain.ConnID) (domain.Connection, bool)
	MembersOf(room domain.RoomID) []domain.Connection
}

// Deliverer pushes outbound events to live transport endpoints.
type Deliverer interface {
	Deliver(ds []Delivery)
}
