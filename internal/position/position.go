// Package position resolves dealer, blind and first-to-act seats from the
// dealer button. All functions take players already filtered for the hand and
// sorted by ascending seat number; results are indices into that slice.
package position

import "github.com/finnb0y/virtualchips/internal/state"

// Positions holds the resolved indices for a new hand.
type Positions struct {
	Dealer     int
	SmallBlind int
	BigBlind   int
	FirstToAct int // pre-flop
}

// Calculate resolves positions for a new hand given the button seat.
//
// The dealer is the active player seated at or after the button (wrapping to
// the first seat). Heads-up the dealer posts the small blind and acts first
// pre-flop; with three or more players the blinds are the next two seats and
// the player after the big blind opens.
//
// Returns false when fewer than two players are eligible; the caller must
// abort the hand start.
func Calculate(active []*state.Player, buttonSeat int) (Positions, bool) {
	n := len(active)
	if n < 2 {
		return Positions{}, false
	}

	dealer := 0
	for i, p := range active {
		if p.SeatNumber >= buttonSeat {
			dealer = i
			break
		}
	}

	if n == 2 {
		// Heads-up: button is the small blind and opens pre-flop.
		return Positions{
			Dealer:     dealer,
			SmallBlind: dealer,
			BigBlind:   (dealer + 1) % n,
			FirstToAct: dealer,
		}, true
	}

	return Positions{
		Dealer:     dealer,
		SmallBlind: (dealer + 1) % n,
		BigBlind:   (dealer + 2) % n,
		FirstToAct: (dealer + 3) % n,
	}, true
}

// PostFlopFirstToAct returns the index of the first player who can still act
// strictly after the button seat, wrapping. Used to open FLOP, TURN and RIVER
// action. Returns -1 when nobody can act.
func PostFlopFirstToAct(players []*state.Player, buttonSeat int) int {
	n := len(players)
	start := n
	for i, p := range players {
		if p.SeatNumber > buttonSeat {
			start = i
			break
		}
	}
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if players[idx].CanAct() {
			return idx
		}
	}
	return -1
}

// NextButtonSeat returns the seat the button moves to. With no button placed
// yet (currentSeat 0) it bootstraps onto the first active player's seat;
// otherwise it advances to the next active seat after the current one,
// wrapping.
func NextButtonSeat(active []*state.Player, currentSeat int) int {
	if len(active) == 0 {
		return currentSeat
	}
	if currentSeat == 0 {
		return active[0].SeatNumber
	}
	for _, p := range active {
		if p.SeatNumber > currentSeat {
			return p.SeatNumber
		}
	}
	return active[0].SeatNumber
}

// NextToAct returns the index of the next player who can act strictly after
// the given seat, wrapping. Returns -1 when nobody can act.
func NextToAct(players []*state.Player, afterSeat int) int {
	return PostFlopFirstToAct(players, afterSeat)
}
