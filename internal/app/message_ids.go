package app

import (
	"sync"
	"time"

	"github.com/dkeye/Huddle/internal/domain"
)

// MessageIDs hands out millisecond timestamps, bumped when two messages
// land in the same millisecond so ids never repeat.
type MessageIDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewMessageIDs() *MessageIDs {
	return &MessageIDs{now: time.Now}
}

func (g *MessageIDs) Next() domain.MessageID {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return domain.MessageID(id)
}
