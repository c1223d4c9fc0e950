package orch

import (
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/rs/zerolog/log"
)

// Connect marks a transport session as live but not yet joined.
func (o *Orchestrator) Connect(sid domain.ConnID) {
	if _, ok := o.states[sid]; ok {
		return
	}
	o.states[sid] = stateUnjoined
	log.Info().Str("module", "orch").Str("sid", string(sid)).Msg("connected")
}

// Join registers the connection in a room. A connection keeps its first
// room for life; a repeated join into the same room only refreshes the
// display name and roster.
func (o *Orchestrator) Join(sid domain.ConnID, p core.JoinPayload) core.Result {
	state, ok := o.states[sid]
	if !ok {
		return core.Dropped(core.OutcomeIgnored)
	}
	username := p.Username
	roomID := domain.RoomID(p.RoomID)

	if state == stateJoined {
		cur, ok := o.Registry.Lookup(sid)
		if !ok || cur.RoomID != roomID {
			log.Warn().Str("module", "orch").Str("sid", string(sid)).
				Str("room", string(cur.RoomID)).Str("to_room", string(roomID)).
				Msg("room switch refused")
			return core.Dropped(core.OutcomeIgnored)
		}
		o.Registry.Register(sid, username, roomID)
		return core.Delivered(o.Presence.Refreshed(roomID)...)
	}

	conn := o.Registry.Register(sid, username, roomID)
	o.states[sid] = stateJoined
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomID)).Msg("added to room")
	return core.Delivered(o.Presence.Joined(conn)...)
}

// Disconnect terminates the connection. The leave path runs at most once;
// unjoined connections leave silently.
func (o *Orchestrator) Disconnect(sid domain.ConnID) core.Result {
	if _, ok := o.states[sid]; !ok {
		return core.Dropped(core.OutcomeSenderAbsent)
	}
	delete(o.states, sid)

	conn, ok := o.Registry.Unregister(sid)
	if !ok {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Msg("disconnected before join")
		return core.Dropped(core.OutcomeSenderAbsent)
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(conn.RoomID)).Msg("removed from room")
	return core.Delivered(o.Presence.Left(conn)...)
}

func (o *Orchestrator) joined(sid domain.ConnID) bool {
	s, ok := o.states[sid]
	return ok && s == stateJoined
}

// Stats summarizes the connection table.
func (o *Orchestrator) Stats() Stats {
	return Stats{
		Connections: len(o.states),
		Joined:      o.Registry.Len(),
		Rooms:       len(o.Registry.Rooms()),
	}
}
