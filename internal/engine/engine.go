// Package engine is the table action engine: a pure reducer that validates
// one action message against an aggregate snapshot and produces the next
// snapshot. It never blocks and holds no locks; callers must apply actions
// for a table in a single total order.
package engine

import (
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/finnb0y/virtualchips/internal/state"
)

// Engine applies action messages to aggregate snapshots.
type Engine struct {
	clock quartz.Clock
	newID func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects the clock used for bet-log timestamps.
func WithClock(c quartz.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithIDGenerator injects the id generator used for new players and tables.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// New creates an Engine with a real clock and uuid ids.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock: quartz.NewReal(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply validates msg against s and returns the resulting snapshot. On
// rejection the original snapshot is returned unchanged; on success the
// returned snapshot is a fresh structural copy and s is untouched either way.
func (e *Engine) Apply(s *state.State, msg Message) (*state.State, Result) {
	if s == nil || msg.Action == nil {
		return s, reject(ReasonMalformed)
	}

	next := s.Clone()
	var res Result
	switch a := msg.Action.(type) {
	case StartHand:
		res = e.startHand(next, a)
	case Bet:
		res = e.bet(next, msg.SenderID, a.Amount)
	case Raise:
		res = e.raise(next, msg.SenderID, a.Amount)
	case Call:
		res = e.call(next, msg.SenderID)
	case Check:
		res = e.check(next, msg.SenderID)
	case Fold:
		res = e.fold(next, msg.SenderID)
	case AdvanceBettingRound:
		res = e.advanceBettingRound(next, a)
	case StartPotDistribution:
		res = e.startPotDistribution(next, a)
	case TogglePotWinner:
		res = e.togglePotWinner(next, a)
	case DeliverCurrentPot:
		res = e.deliverCurrentPot(next, a)
	case DeliverAllEligiblePots:
		res = e.deliverAllEligiblePots(next, a)
	case AwardPot:
		res = e.awardPot(next, a)
	case MoveDealerButton:
		res = e.moveDealerButton(next, a)
	case AdvanceBlindLevel:
		res = e.advanceBlindLevel(next, a)
	case RebuyPlayer:
		res = e.rebuyPlayer(next, a)
	case ReentryPlayer:
		res = e.reentryPlayer(next, a)
	case MovePlayer:
		res = e.movePlayer(next, a)
	case RemovePlayer:
		res = e.removePlayer(next, a)
	case AutoBalance:
		res = e.autoBalance(next)
	case RegisterPlayer:
		res = e.registerPlayer(next, a)
	case CreateTable:
		res = e.createTable(next, a)
	default:
		res = reject(ReasonMalformed)
	}

	if !res.Applied {
		return s, res
	}
	return next, res
}
