package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finnb0y/virtualchips/internal/state"
)

func renderFixture() *state.State {
	s := state.NewState(&state.Tournament{
		ID:   "tourney",
		Name: "Friday Night",
		Config: state.TournamentConfig{
			BlindStructure: []state.BlindLevel{{SmallBlind: 25, BigBlind: 50}},
		},
	})
	s.Tables["tbl"] = &state.TableState{
		ID:                   "tbl",
		TournamentID:         "tourney",
		Pot:                  75,
		Round:                state.RoundPreFlop,
		HandInProgress:       true,
		DealerButtonPosition: 2,
		CurrentTurn:          "p3",
	}
	seats := map[string]int{"p1": 2, "p2": 3, "p3": 5}
	for id, seat := range seats {
		s.Players[id] = &state.Player{
			ID: id, Name: id, Balance: 10000, Status: state.StatusActive,
			TableID: "tbl", SeatNumber: seat,
		}
	}
	s.Players["p2"].CurrentBet = 50
	return s
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	out := RenderTable(renderFixture(), "tbl")
	assert.Contains(t, out, "Friday Night")
	assert.Contains(t, out, "blinds 25/50")
	assert.Contains(t, out, "round: PRE_FLOP")
	assert.Contains(t, out, "pot: 75")
	assert.Contains(t, out, "bet 50")
	assert.Contains(t, out, "p3", "acting player listed")
}

func TestRenderTableMarkersAndDistribution(t *testing.T) {
	t.Parallel()

	s := renderFixture()
	s.Tables["tbl"].Distribution = &state.PotDistribution{
		Pots: []state.Pot{
			{Amount: 150, EligiblePlayerIDs: []string{"p1", "p2", "p3"}},
			{Amount: 60, EligiblePlayerIDs: []string{"p2", "p3"}},
		},
	}

	out := RenderTable(s, "tbl")
	assert.Contains(t, out, "pot 1: 150 (3 eligible)")
	assert.Contains(t, out, "pot 2: 60 (2 eligible)")
	assert.Contains(t, out, "distributing")
}

func TestRenderTableUnknownTable(t *testing.T) {
	t.Parallel()
	assert.Empty(t, RenderTable(renderFixture(), "nope"))
}
