package orch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/Huddle/internal/app"
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu sync.Mutex
	ds []core.Delivery
}

func (r *recorder) Deliver(ds []core.Delivery) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ds = append(r.ds, ds...)
}

func (r *recorder) to(id domain.ConnID) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, d := range r.ds {
		if d.To == id {
			out = append(out, d.Event.Name)
		}
	}
	return out
}

func startDispatcher(t *testing.T) (*Dispatcher, *recorder) {
	t.Helper()
	rec := &recorder{}
	d := NewDispatcher(New(app.NewRegistry()), rec, 16)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = d.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return d, rec
}

func TestDispatcher_ProcessesInOrder(t *testing.T) {
	d, rec := startDispatcher(t)
	ctx := context.Background()
	a := core.Session{ID: "A"}
	b := core.Session{ID: "B"}

	require.NoError(t, d.Connect(ctx, a))
	require.NoError(t, d.Connect(ctx, b))
	require.NoError(t, d.Submit(ctx, a, core.Inbound{Name: core.EventJoin, Payload: core.JoinPayload{Username: "alice", RoomID: "lobby"}}))
	require.NoError(t, d.Submit(ctx, b, core.Inbound{Name: core.EventJoin, Payload: core.JoinPayload{Username: "bob", RoomID: "lobby"}}))
	for _, typing := range []bool{true, false, true} {
		require.NoError(t, d.Submit(ctx, a, core.Inbound{Name: core.EventTyping, Payload: core.TypingPayload{ReceiverID: "B", IsTyping: typing}}))
	}

	// A roster query goes through the same mailbox, so it runs after all of the above.
	members, err := d.Roster(ctx, "lobby")
	require.NoError(t, err)
	assert.Len(t, members, 2)

	assert.Equal(t, []string{core.EventUserList, core.EventUserList, core.EventUserJoined}, rec.to("A"))
	assert.Equal(t, []string{core.EventUserList, core.EventUserTyping, core.EventUserTyping, core.EventUserTyping}, rec.to("B"))

	rec.mu.Lock()
	last := rec.ds[len(rec.ds)-1]
	rec.mu.Unlock()
	assert.True(t, last.Event.Payload.(core.UserTyping).IsTyping)
}

func TestDispatcher_Disconnect(t *testing.T) {
	d, rec := startDispatcher(t)
	ctx := context.Background()
	a := core.Session{ID: "A"}
	b := core.Session{ID: "B"}
	for _, s := range []core.Session{a, b} {
		require.NoError(t, d.Connect(ctx, s))
		require.NoError(t, d.Submit(ctx, s, core.Inbound{Name: core.EventJoin, Payload: core.JoinPayload{Username: string(s.ID), RoomID: "lobby"}}))
	}
	require.NoError(t, d.Disconnect(ctx, b))

	members, err := d.Roster(ctx, "lobby")
	require.NoError(t, err)
	assert.Equal(t, []domain.ConnID{"A"}, ids(members))
	assert.Contains(t, rec.to("A"), core.EventUserLeft)

	st, err := d.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Connections: 1, Joined: 1, Rooms: 1}, st)
}

func TestDispatcher_StoppedRefusesWork(t *testing.T) {
	d := NewDispatcher(New(app.NewRegistry()), &recorder{}, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, d.Run(ctx))

	// Fill the mailbox so the next submit has to wait, then observe the stop.
	for i := 0; i < cap(d.mailbox); i++ {
		d.mailbox <- envelope{}
	}
	err := d.Connect(context.Background(), core.Session{ID: "A"})
	assert.ErrorIs(t, err, ErrStopped)

	qctx, qcancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer qcancel()
	_, err = d.Roster(qctx, "lobby")
	assert.Error(t, err)
	_, err = d.Stats(qctx)
	assert.Error(t, err)
}
