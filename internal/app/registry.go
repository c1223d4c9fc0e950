package app

import (
	"sort"
	"sync"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/rs/zerolog/log"
)

type connEntry struct {
	conn domain.Connection
	seq  uint64
}

// Registry is the source of truth for who is online and where.
// Writes come from the dispatcher only; the lock keeps HTTP reads safe.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.ConnID]*connEntry
	seq   uint64
}

var _ core.Directory = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[domain.ConnID]*connEntry),
	}
}

// Register inserts or overwrites the record for id. An overwrite keeps the
// original roster position.
func (r *Registry) Register(id domain.ConnID, username string, room domain.RoomID) domain.Connection {
	r.mu.Lock()
	defer r.mu.Unlock()
	conn := domain.Connection{ID: id, Username: username, RoomID: room}
	if e, ok := r.conns[id]; ok {
		e.conn = conn
	} else {
		r.seq++
		r.conns[id] = &connEntry{conn: conn, seq: r.seq}
	}
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Str("username", username).Str("room", string(room)).Msg("registered")
	return conn
}

func (r *Registry) Lookup(id domain.ConnID) (domain.Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.conns[id]; ok {
		return e.conn, true
	}
	return domain.Connection{}, false
}

func (r *Registry) Unregister(id domain.ConnID) (domain.Connection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[id]
	if !ok {
		return domain.Connection{}, false
	}
	delete(r.conns, id)
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Str("room", string(e.conn.RoomID)).Msg("unregistered")
	return e.conn, true
}

// MembersOf scans the whole registry. Rooms are chat sized, so that is fine.
func (r *Registry) MembersOf(room domain.RoomID) []domain.Connection {
	r.mu.RLock()
	entries := make([]connEntry, 0, len(r.conns))
	for _, e := range r.conns {
		if e.conn.RoomID == room {
			entries = append(entries, *e)
		}
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]domain.Connection, len(entries))
	for i, e := range entries {
		out[i] = e.conn
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Rooms lists every non-empty room, sorted by id.
func (r *Registry) Rooms() []domain.RoomInfo {
	r.mu.RLock()
	counts := make(map[domain.RoomID]int)
	for _, e := range r.conns {
		counts[e.conn.RoomID]++
	}
	r.mu.RUnlock()

	out := make([]domain.RoomInfo, 0, len(counts))
	for id, n := range counts {
		out = append(out, domain.RoomInfo{ID: id, MemberCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
