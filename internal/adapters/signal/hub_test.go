package signal

import (
	"testing"

	"github.com/dkeye/Huddle/internal/app"
	"github.com/dkeye/Huddle/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	frames []core.Frame
	full   bool
	closed bool
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	if f.closed {
		return ErrClosed
	}
	if f.full {
		return ErrBackpressure
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() { f.closed = true }

func TestHub_DeliverEncodesPerRecipient(t *testing.T) {
	h := NewHub(nil)
	a, b := &fakeConn{}, &fakeConn{}
	h.Attach("a", a)
	h.Attach("b", b)

	h.Deliver([]core.Delivery{
		{To: "a", Event: core.Outbound{Name: core.EventCallEnded}},
		{To: "b", Event: core.Outbound{Name: core.EventCallRejected}},
		{To: "ghost", Event: core.Outbound{Name: core.EventCallEnded}},
	})

	require.Len(t, a.frames, 1)
	assert.JSONEq(t, `{"event":"call_ended"}`, string(a.frames[0]))
	require.Len(t, b.frames, 1)
	assert.JSONEq(t, `{"event":"call_rejected"}`, string(b.frames[0]))
	assert.Equal(t, 2, h.Len())
}

func TestHub_BackpressurePolicy(t *testing.T) {
	drop := NewHub(app.DropPolicy{})
	slow := &fakeConn{full: true}
	drop.Attach("s", slow)
	drop.Deliver([]core.Delivery{{To: "s", Event: core.Outbound{Name: core.EventPong}}})
	assert.False(t, slow.closed)

	kick := NewHub(app.KickPolicy{})
	slow = &fakeConn{full: true}
	kick.Attach("s", slow)
	kick.Deliver([]core.Delivery{{To: "s", Event: core.Outbound{Name: core.EventPong}}})
	assert.True(t, slow.closed)
}

func TestHub_DetachAndCloseAll(t *testing.T) {
	h := NewHub(nil)
	a, b := &fakeConn{}, &fakeConn{}
	h.Attach("a", a)
	h.Attach("b", b)
	h.Detach("a")
	h.Deliver([]core.Delivery{{To: "a", Event: core.Outbound{Name: core.EventPong}}})
	assert.Empty(t, a.frames)

	h.CloseAll()
	assert.True(t, b.closed)
	assert.False(t, a.closed)
}
