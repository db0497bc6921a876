package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finnb0y/virtualchips/internal/state"
)

func TestMoveDealerButton(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 10000, 10000, 10000)

	f.apply(t, "dealer", MoveDealerButton{TableID: "t1"})
	assert.Equal(t, 3, f.table().DealerButtonPosition)
	f.apply(t, "dealer", MoveDealerButton{TableID: "t1"})
	assert.Equal(t, 5, f.table().DealerButtonPosition)
	f.apply(t, "dealer", MoveDealerButton{TableID: "t1"})
	assert.Equal(t, 2, f.table().DealerButtonPosition, "wraps past the last seat")
}

func TestMoveDealerButtonSkipsEliminatedPlayers(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 10000, 10000, 10000)
	f.player("p2").Status = state.StatusOut

	f.apply(t, "dealer", MoveDealerButton{TableID: "t1"})
	assert.Equal(t, 5, f.table().DealerButtonPosition)
}

func TestAdvanceBlindLevel(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 10000, 10000)

	f.apply(t, "dealer", AdvanceBlindLevel{TableID: "t1"})
	assert.Equal(t, 1, f.table().CurrentBlindLevel)
	f.apply(t, "dealer", AdvanceBlindLevel{TableID: "t1"})
	assert.Equal(t, 2, f.table().CurrentBlindLevel)
	f.reject(t, "dealer", AdvanceBlindLevel{TableID: "t1"}, ReasonLastBlindLevel)
}

func TestRebuyPlayer(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 10000, 10000)
	p := f.player("p1")
	p.Balance = 0
	p.Status = state.StatusOut

	f.apply(t, "dealer", RebuyPlayer{PlayerID: "p1"})
	p = f.player("p1")
	assert.Equal(t, 10000, p.Balance)
	assert.Equal(t, 1, p.Rebuys)
	assert.Equal(t, 20, p.TotalInvested)
	assert.Equal(t, state.StatusSitting, p.Status)

	f.apply(t, "dealer", RebuyPlayer{PlayerID: "p1"})
	f.reject(t, "dealer", RebuyPlayer{PlayerID: "p1"}, ReasonRebuyLimit)
}

func TestRebuyRefusedMidHand(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 10000, 10000)
	f.apply(t, "dealer", StartHand{TableID: "t1"})
	f.reject(t, "dealer", RebuyPlayer{PlayerID: "p1"}, ReasonHandInProgress)
}

func TestReentryPlayer(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 10000, 10000)
	f.reject(t, "dealer", ReentryPlayer{PlayerID: "p1"}, ReasonNotEliminated)

	p := f.player("p1")
	p.Balance = 0
	p.Status = state.StatusOut

	f.apply(t, "dealer", ReentryPlayer{PlayerID: "p1"})
	p = f.player("p1")
	assert.Equal(t, 10000, p.Balance)
	assert.Equal(t, state.StatusSitting, p.Status)
	assert.Equal(t, 20, p.TotalInvested)
}

func TestMovePlayer(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 10000, 10000, 10000)
	f.st.Tables["t2"] = &state.TableState{ID: "t2", TournamentID: "tourney", PlayersActed: map[string]bool{}}

	f.apply(t, "dealer", MovePlayer{PlayerID: "p1", TableID: "t2", SeatNumber: 4})
	assert.Equal(t, "t2", f.player("p1").TableID)
	assert.Equal(t, 4, f.player("p1").SeatNumber)

	// Seat 1 is the dealer's.
	f.reject(t, "dealer", MovePlayer{PlayerID: "p2", TableID: "t2", SeatNumber: 1}, ReasonSeatUnavailable)
	f.reject(t, "dealer", MovePlayer{PlayerID: "p2", TableID: "t2", SeatNumber: 4}, ReasonSeatUnavailable)

	// Seat 0 auto-assigns the first free player seat.
	f.apply(t, "dealer", MovePlayer{PlayerID: "p2", TableID: "t2"})
	assert.Equal(t, 2, f.player("p2").SeatNumber)
}

func TestMovePlayerRefusedMidHand(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 10000, 10000)
	f.st.Tables["t2"] = &state.TableState{ID: "t2", TournamentID: "tourney", PlayersActed: map[string]bool{}}
	f.apply(t, "dealer", StartHand{TableID: "t1"})
	f.reject(t, "dealer", MovePlayer{PlayerID: "p1", TableID: "t2", SeatNumber: 4}, ReasonHandInProgress)
}

func TestRemovePlayer(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 10000, 10000)

	f.apply(t, "dealer", RemovePlayer{PlayerID: "p1"})
	assert.NotContains(t, f.st.Players, "p1")
	f.reject(t, "dealer", RemovePlayer{PlayerID: "p1"}, ReasonUnknownPlayer)
}

func TestAutoBalanceEvensTables(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 10000, 10000, 10000, 10000, 10000)
	f.st.Tables["t2"] = &state.TableState{ID: "t2", TournamentID: "tourney", PlayersActed: map[string]bool{}}

	f.apply(t, "dealer", AutoBalance{})

	assert.Len(t, f.st.ActivePlayersAtTable("t1"), 3)
	assert.Len(t, f.st.ActivePlayersAtTable("t2"), 2)
	for _, p := range f.st.ActivePlayersAtTable("t2") {
		assert.GreaterOrEqual(t, p.SeatNumber, 2, "seat 1 stays reserved")
	}

	f.reject(t, "dealer", AutoBalance{}, ReasonAlreadyBalanced)
}

func TestRegisterPlayerAndCreateTable(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.apply(t, "director", CreateTable{DealerAccessCode: "code-1"})
	require.Len(t, f.st.Tables, 2)
	for id, tbl := range f.st.Tables {
		if id == "t1" {
			continue
		}
		assert.Equal(t, "code-1", tbl.DealerAccessCode)
		assert.Equal(t, "dealer:"+id, tbl.DealerID)
	}

	f.apply(t, "director", RegisterPlayer{PersonID: "person-9", Name: "Dana"})
	var dana *state.Player
	for _, p := range f.st.Players {
		if p.Name == "Dana" {
			dana = p
		}
	}
	require.NotNil(t, dana)
	assert.Equal(t, 10000, dana.Balance)
	assert.Equal(t, state.StatusSitting, dana.Status)
	assert.Equal(t, "tourney", dana.TournamentID)
	assert.NotEmpty(t, dana.AccessCode)
	assert.Equal(t, 20, dana.TotalInvested)

	f.reject(t, "director", RegisterPlayer{}, ReasonMalformed)
}
