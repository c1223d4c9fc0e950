package app

import (
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// Presence turns registry transitions into room-scoped events.
type Presence struct {
	Dir core.Directory
}

// Joined sends the fresh roster to the whole room, self included, and a
// user_joined notice to everyone but the joiner.
func (p *Presence) Joined(conn domain.Connection) []core.Delivery {
	members := p.Dir.MembersOf(conn.RoomID)
	out := roster(members)
	notice := core.Outbound{
		Name:    core.EventUserJoined,
		Payload: core.UserPresence{Username: conn.Username, UserID: conn.ID},
	}
	for _, m := range members {
		if m.ID == conn.ID {
			continue
		}
		out = append(out, core.Delivery{To: m.ID, Event: notice})
	}
	return out
}

// Left must be called after conn was unregistered.
func (p *Presence) Left(conn domain.Connection) []core.Delivery {
	members := p.Dir.MembersOf(conn.RoomID)
	out := roster(members)
	notice := core.Outbound{
		Name:    core.EventUserLeft,
		Payload: core.UserPresence{Username: conn.Username, UserID: conn.ID},
	}
	for _, m := range members {
		out = append(out, core.Delivery{To: m.ID, Event: notice})
	}
	return out
}

// Refreshed resends the roster only, e.g. after a member changed its name.
func (p *Presence) Refreshed(room domain.RoomID) []core.Delivery {
	members := p.Dir.MembersOf(room)
	return roster(members)
}

func roster(members []domain.Connection) []core.Delivery {
	// One snapshot shared by every recipient of the same transition.
	ev := core.Outbound{Name: core.EventUserList, Payload: members}
	out := make([]core.Delivery, 0, 2*len(members))
	for _, m := range members {
		out = append(out, core.Delivery{To: m.ID, Event: ev})
	}
	return out
}
