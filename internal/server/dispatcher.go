package server

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/finnb0y/virtualchips/internal/engine"
	"github.com/finnb0y/virtualchips/internal/state"
	"github.com/finnb0y/virtualchips/internal/store"
)

// Dispatcher serializes all actions through a single goroutine. Every
// mutation of the aggregate goes engine.Apply -> store.Save -> notify, in
// that order, so connections, the blind scheduler, and the dealer console
// share one total order without touching locks in the engine.
type Dispatcher struct {
	engine *engine.Engine
	store  store.Store
	logger *log.Logger
	inbox  chan request

	mu      sync.RWMutex
	current *state.State
	notify  func(*state.State)
}

type request struct {
	msg   engine.Message
	reply chan engine.Result
}

// NewDispatcher creates a dispatcher over an initial snapshot.
func NewDispatcher(eng *engine.Engine, st store.Store, logger *log.Logger, initial *state.State) *Dispatcher {
	return &Dispatcher{
		engine:  eng,
		store:   st,
		logger:  logger.WithPrefix("dispatch"),
		inbox:   make(chan request, 64),
		current: initial,
	}
}

// OnApply registers a callback invoked with the new snapshot after every
// applied action. Must be called before Run.
func (d *Dispatcher) OnApply(fn func(*state.State)) {
	d.notify = fn
}

// Snapshot returns the latest committed snapshot. Safe for concurrent use;
// callers must treat the result as read-only.
func (d *Dispatcher) Snapshot() *state.State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current
}

// Submit queues one action and waits for its result.
func (d *Dispatcher) Submit(ctx context.Context, msg engine.Message) (engine.Result, error) {
	req := request{msg: msg, reply: make(chan engine.Result, 1)}
	select {
	case d.inbox <- req:
	case <-ctx.Done():
		return engine.Result{}, ctx.Err()
	}
	select {
	case res := <-req.reply:
		return res, nil
	case <-ctx.Done():
		return engine.Result{}, ctx.Err()
	}
}

// Run processes actions until ctx is cancelled. It is the only goroutine
// that writes the snapshot.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-d.inbox:
			d.apply(ctx, req)
		}
	}
}

func (d *Dispatcher) apply(ctx context.Context, req request) {
	next, res := d.engine.Apply(d.Snapshot(), req.msg)

	if !res.Applied {
		d.logger.Debug("action rejected",
			"kind", actionKind(req.msg), "sender", req.msg.SenderID, "reason", res.Reason)
		req.reply <- res
		return
	}

	// The in-memory snapshot is authoritative; a failed save costs crash
	// recovery fidelity, not correctness.
	if err := d.store.Save(ctx, next); err != nil {
		d.logger.Error("failed to persist snapshot", "error", err)
	}

	d.mu.Lock()
	d.current = next
	d.mu.Unlock()

	d.logger.Info("action applied", "kind", actionKind(req.msg), "sender", req.msg.SenderID)
	if d.notify != nil {
		d.notify(next)
	}
	req.reply <- res
}

func actionKind(msg engine.Message) engine.Kind {
	if msg.Action == nil {
		return ""
	}
	return msg.Action.Kind()
}
