package signal

import (
	"errors"
	"sync"

	"github.com/dkeye/Huddle/internal/app"
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/rs/zerolog/log"
)

// Hub maps connection ids to live sockets and performs deliveries.
type Hub struct {
	mu     sync.RWMutex
	conns  map[domain.ConnID]core.SignalConnection
	policy app.Policy
}

var _ core.Deliverer = (*Hub)(nil)

func NewHub(policy app.Policy) *Hub {
	if policy == nil {
		policy = app.DropPolicy{}
	}
	return &Hub{
		conns:  make(map[domain.ConnID]core.SignalConnection),
		policy: policy,
	}
}

func (h *Hub) Attach(id domain.ConnID, conn core.SignalConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[id] = conn
}

func (h *Hub) Detach(id domain.ConnID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// CloseAll closes every attached socket; their read loops then report the
// disconnects.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	conns := make([]core.SignalConnection, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()
	for _, c := range conns {
		c.Close()
	}
}

// Deliver never blocks: a full send buffer is handed to the policy.
func (h *Hub) Deliver(ds []core.Delivery) {
	for _, d := range ds {
		h.mu.RLock()
		conn, ok := h.conns[d.To]
		h.mu.RUnlock()
		if !ok {
			log.Debug().Str("module", "signal.hub").Str("sid", string(d.To)).Str("event", d.Event.Name).Msg("no endpoint, dropped")
			continue
		}
		frame, err := EncodeOutbound(d.Event)
		if err != nil {
			log.Error().Err(err).Str("module", "signal.hub").Str("event", d.Event.Name).Msg("encode")
			continue
		}
		h.send(d.To, conn, d.Event.Name, frame)
	}
}

func (h *Hub) send(id domain.ConnID, conn core.SignalConnection, event string, frame core.Frame) {
	err := conn.TrySend(frame)
	if err == nil {
		return
	}
	if !errors.Is(err, ErrBackpressure) {
		log.Debug().Err(err).Str("module", "signal.hub").Str("sid", string(id)).Str("event", event).Msg("send failed")
		return
	}
	switch h.policy.OnBackPressure(id, event) {
	case app.KickMember:
		log.Warn().Str("module", "signal.hub").Str("sid", string(id)).Str("event", event).Msg("slow connection kicked")
		conn.Close()
	default:
		log.Warn().Str("module", "signal.hub").Str("sid", string(id)).Str("event", event).Msg("send buffer full, event dropped")
	}
}
