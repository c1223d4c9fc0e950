package app

import (
	"github.com/dkeye/Huddle/internal/domain"
)

// BackpressureAction is what to do with an event that did not fit into a
// connection's send buffer. The zero value drops it.
type BackpressureAction int

const (
	DropFrame BackpressureAction = iota
	KickMember
)

// Policy decides what happens to a connection whose send buffer is full.
type Policy interface {
	OnBackPressure(id domain.ConnID, event string) BackpressureAction
}

// DropPolicy loses the event and keeps the connection.
type DropPolicy struct{}

func (DropPolicy) OnBackPressure(domain.ConnID, string) BackpressureAction {
	return DropFrame
}

// KickPolicy closes slow connections; their disconnect runs the usual leave path.
type KickPolicy struct{}

func (KickPolicy) OnBackPressure(domain.ConnID, string) BackpressureAction {
	return KickMember
}

// PolicyByName maps the backpressure config value to a Policy.
func PolicyByName(name string) Policy {
	switch name {
	case "kick":
		return KickPolicy{}
	default:
		return DropPolicy{}
	}
}
