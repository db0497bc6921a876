package scheduler

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finnb0y/virtualchips/internal/engine"
	"github.com/finnb0y/virtualchips/internal/state"
)

func schedulerFixture(t *testing.T, durationMinutes int) (*Scheduler, *state.State, *[]engine.Message) {
	t.Helper()

	snap := state.NewState(&state.Tournament{
		ID: "tourney",
		Config: state.TournamentConfig{
			BlindStructure: []state.BlindLevel{
				{SmallBlind: 25, BigBlind: 50, DurationMinutes: durationMinutes},
				{SmallBlind: 50, BigBlind: 100, DurationMinutes: durationMinutes},
			},
		},
	})
	snap.Tables["t1"] = &state.TableState{ID: "t1", TournamentID: "tourney"}

	var emitted []engine.Message
	logger := log.New(io.Discard)
	s := New(quartz.NewMock(t), logger, func() *state.State { return snap }, func(m engine.Message) bool {
		emitted = append(emitted, m)
		return true
	})
	return s, snap, &emitted
}

func TestStepSchedulesBeforeItFires(t *testing.T) {
	t.Parallel()
	s, _, emitted := schedulerFixture(t, 20)

	t0 := time.Date(2026, 8, 25, 19, 0, 0, 0, time.UTC)
	wait := s.step(t0)
	assert.Equal(t, 20*time.Minute, wait)
	assert.Empty(t, *emitted, "first sighting schedules, never fires")
}

func TestStepEmitsWhenLevelExpires(t *testing.T) {
	t.Parallel()
	s, _, emitted := schedulerFixture(t, 20)

	t0 := time.Date(2026, 8, 25, 19, 0, 0, 0, time.UTC)
	s.step(t0)
	s.step(t0.Add(20 * time.Minute))

	require.Len(t, *emitted, 1)
	msg := (*emitted)[0]
	assert.Equal(t, engine.AdvanceBlindLevel{TableID: "t1"}, msg.Action)
	assert.Equal(t, "scheduler", msg.SenderID)

	// Not due again until another full level has passed.
	s.step(t0.Add(21 * time.Minute))
	assert.Len(t, *emitted, 1)
	s.step(t0.Add(40 * time.Minute))
	assert.Len(t, *emitted, 2)
}

func TestStepRetimesWithNewLevelDuration(t *testing.T) {
	t.Parallel()

	snap := state.NewState(&state.Tournament{
		ID: "tourney",
		Config: state.TournamentConfig{
			BlindStructure: []state.BlindLevel{
				{SmallBlind: 25, BigBlind: 50, DurationMinutes: 20},
				{SmallBlind: 50, BigBlind: 100, DurationMinutes: 40},
				{SmallBlind: 100, BigBlind: 200, DurationMinutes: 40},
			},
		},
	})
	snap.Tables["t1"] = &state.TableState{ID: "t1", TournamentID: "tourney"}

	// The emit applies the advance the way the dispatcher does, so the
	// snapshot the scheduler re-reads already carries the new level.
	emitted := 0
	s := New(quartz.NewMock(t), log.New(io.Discard), func() *state.State { return snap }, func(engine.Message) bool {
		emitted++
		snap.Tables["t1"].CurrentBlindLevel++
		return true
	})

	t0 := time.Date(2026, 8, 25, 19, 0, 0, 0, time.UTC)
	s.step(t0)
	s.step(t0.Add(20 * time.Minute))
	require.Equal(t, 1, emitted)

	// Level 2 lasts 40 minutes; firing again at the old 20-minute cadence
	// would cut it in half.
	s.step(t0.Add(40 * time.Minute))
	assert.Equal(t, 1, emitted, "level 2 must run its full 40 minutes")
	s.step(t0.Add(60 * time.Minute))
	assert.Equal(t, 2, emitted)
}

func TestStepSkipsUntimedLevels(t *testing.T) {
	t.Parallel()
	s, _, emitted := schedulerFixture(t, 0)

	wait := s.step(time.Now())
	assert.Zero(t, wait)
	assert.Empty(t, *emitted)
}

func TestStepStopsAfterRejection(t *testing.T) {
	t.Parallel()
	s, _, _ := schedulerFixture(t, 20)
	rejections := 0
	s.emit = func(engine.Message) bool {
		rejections++
		return false
	}

	t0 := time.Now()
	s.step(t0)
	s.step(t0.Add(20 * time.Minute))
	require.Equal(t, 1, rejections)

	// The table fell out of the schedule; it gets re-added on sighting but
	// never double-fires.
	s.step(t0.Add(20 * time.Minute))
	s.step(t0.Add(25 * time.Minute))
	assert.Equal(t, 1, rejections)
}
