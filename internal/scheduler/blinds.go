// Package scheduler drives blind-level progression. It never touches the
// aggregate: when a level's clock runs out it emits an ADVANCE_BLIND_LEVEL
// action into the same ordered stream as every other action, and the engine
// decides what that means.
package scheduler

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/finnb0y/virtualchips/internal/engine"
	"github.com/finnb0y/virtualchips/internal/state"
)

// EmitFunc feeds an action into the dispatcher stream. It reports whether
// the action was accepted; a table at its last level stops being scheduled.
type EmitFunc func(engine.Message) bool

// Scheduler wakes when the earliest table's blind level expires.
type Scheduler struct {
	clock    quartz.Clock
	logger   *log.Logger
	emit     EmitFunc
	snapshot func() *state.State

	due map[string]time.Time
}

// New creates a Scheduler. snapshot must return the latest committed
// aggregate; emit must route into the single-writer dispatcher.
func New(clock quartz.Clock, logger *log.Logger, snapshot func() *state.State, emit EmitFunc) *Scheduler {
	return &Scheduler{
		clock:    clock,
		logger:   logger.WithPrefix("blinds"),
		emit:     emit,
		snapshot: snapshot,
		due:      make(map[string]time.Time),
	}
}

// Run blocks until ctx is cancelled, emitting level advances as they come
// due. Tables appearing later are picked up on the next wake.
func (s *Scheduler) Run(ctx context.Context) error {
	const resync = time.Minute // poll floor so new tables get scheduled

	for {
		wait := s.step(s.clock.Now())
		if wait <= 0 || wait > resync {
			wait = resync
		}
		timer := s.clock.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// step emits advances for every table whose level has expired as of now and
// returns how long until the next one is due (zero when nothing is pending).
func (s *Scheduler) step(now time.Time) time.Duration {
	snap := s.snapshot()
	if snap == nil {
		return 0
	}

	seen := make(map[string]bool, len(snap.Tables))
	for id, table := range snap.Tables {
		seen[id] = true
		dur := levelDuration(snap, table)
		if dur <= 0 {
			delete(s.due, id)
			continue
		}
		if _, ok := s.due[id]; !ok {
			s.due[id] = now.Add(dur)
			continue
		}
		if !s.due[id].After(now) {
			ok := s.emit(engine.Message{
				SenderID: "scheduler",
				Action:   engine.AdvanceBlindLevel{TableID: id},
			})
			if !ok {
				s.logger.Debug("table at final blind level", "table", id)
				delete(s.due, id)
				continue
			}
			// The emit advanced the level synchronously; retime with the
			// new level's duration, not the one that just elapsed.
			dur = 0
			if fresh := s.snapshot(); fresh != nil {
				if ft, found := fresh.Tables[id]; found {
					dur = levelDuration(fresh, ft)
					s.logger.Info("blind level advanced", "table", id, "level", ft.CurrentBlindLevel+1)
				}
			}
			if dur <= 0 {
				delete(s.due, id)
				continue
			}
			s.due[id] = now.Add(dur)
		}
	}
	for id := range s.due {
		if !seen[id] {
			delete(s.due, id)
		}
	}

	var next time.Duration
	for _, at := range s.due {
		d := at.Sub(now)
		if next == 0 || d < next {
			next = d
		}
	}
	return next
}

func levelDuration(snap *state.State, table *state.TableState) time.Duration {
	level := snap.Tournament.Config.Level(table.CurrentBlindLevel)
	return time.Duration(level.DurationMinutes) * time.Minute
}
