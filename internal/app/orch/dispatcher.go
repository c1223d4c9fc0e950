package orch

import (
	"context"
	"errors"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrStopped = errors.New("dispatcher stopped")

type envelopeKind int

const (
	kindConnect envelopeKind = iota
	kindEvent
	kindDisconnect
	kindQuery
)

type envelope struct {
	kind  envelopeKind
	sess  core.Session
	in    core.Inbound
	query func(*Orchestrator)
}

// Dispatcher is the single writer of connection state. Every envelope runs
// to completion before the next one starts, and the deliveries it produced
// are handed to Out in order.
type Dispatcher struct {
	Orch *Orchestrator
	Out  core.Deliverer

	mailbox chan envelope
	done    chan struct{}
}

func NewDispatcher(o *Orchestrator, out core.Deliverer, size int) *Dispatcher {
	if size <= 0 {
		size = 1024
	}
	return &Dispatcher{
		Orch:    o,
		Out:     out,
		mailbox: make(chan envelope, size),
		done:    make(chan struct{}),
	}
}

// Run processes the mailbox until ctx is done.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer close(d.done)
	log.Info().Str("module", "orch.dispatcher").Msg("dispatcher started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "orch.dispatcher").Msg("dispatcher stopped")
			return nil
		case env := <-d.mailbox:
			d.process(env)
		}
	}
}

func (d *Dispatcher) process(env envelope) {
	var res core.Result
	switch env.kind {
	case kindConnect:
		d.Orch.Connect(env.sess.ID)
		return
	case kindEvent:
		res = d.Orch.Handle(env.sess, env.in)
	case kindDisconnect:
		res = d.Orch.Disconnect(env.sess.ID)
	case kindQuery:
		env.query(d.Orch)
		return
	}
	if len(res.Deliveries) > 0 && d.Out != nil {
		d.Out.Deliver(res.Deliveries)
	}
}

func (d *Dispatcher) submit(ctx context.Context, env envelope) error {
	select {
	case d.mailbox <- env:
		return nil
	case <-d.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) Connect(ctx context.Context, sess core.Session) error {
	return d.submit(ctx, envelope{kind: kindConnect, sess: sess})
}

func (d *Dispatcher) Submit(ctx context.Context, sess core.Session, in core.Inbound) error {
	return d.submit(ctx, envelope{kind: kindEvent, sess: sess, in: in})
}

func (d *Dispatcher) Disconnect(ctx context.Context, sess core.Session) error {
	return d.submit(ctx, envelope{kind: kindDisconnect, sess: sess})
}

// Roster reads a room's member list in line with the event stream.
func (d *Dispatcher) Roster(ctx context.Context, room domain.RoomID) ([]domain.Connection, error) {
	reply := make(chan []domain.Connection, 1)
	err := d.submit(ctx, envelope{kind: kindQuery, query: func(o *Orchestrator) {
		reply <- o.Registry.MembersOf(room)
	}})
	if err != nil {
		return nil, err
	}
	select {
	case members := <-reply:
		return members, nil
	case <-d.done:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stats reads connection counters in line with the event stream.
func (d *Dispatcher) Stats(ctx context.Context) (Stats, error) {
	reply := make(chan Stats, 1)
	err := d.submit(ctx, envelope{kind: kindQuery, query: func(o *Orchestrator) {
		reply <- o.Stats()
	}})
	if err != nil {
		return Stats{}, err
	}
	select {
	case st := <-reply:
		return st, nil
	case <-d.done:
		return Stats{}, ErrStopped
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}
}
