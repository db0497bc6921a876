// Package round decides whether a betting round is closed.
package round

import (
	"github.com/finnb0y/virtualchips/internal/pot"
	"github.com/finnb0y/virtualchips/internal/state"
)

// IsComplete reports whether the current betting round on the table is over
// and control should return to the dealer.
//
// The checks run in a fixed order:
//  1. one or zero players still hold a claim on the pot (hand decided);
//  2. nobody at all can act (everyone all-in or capped);
//  3. some player who can act has not matched the highest bet;
//  4. some player who can act has not taken an action this street;
//  5. the last aggressor has not had the action return to them. The big
//     blind is recorded as the initial aggressor without being marked as
//     acted, which is what guarantees them a closing option pre-flop; an
//     aggressor who is now all-in is automatically satisfied.
func IsComplete(players []*state.Player, table *state.TableState) bool {
	inHand := 0
	for _, p := range players {
		if p.InHand() {
			inHand++
		}
	}
	if inHand <= 1 {
		return true
	}

	if pot.AllAllInOrCapped(players) {
		return true
	}

	maxBet := state.MaxCurrentBet(players)
	for _, p := range players {
		if p.CanAct() && p.CurrentBet != maxBet {
			return false
		}
	}

	for _, p := range players {
		if p.CanAct() && !table.PlayersActed[p.ID] {
			return false
		}
	}

	if table.LastAggressorID != "" && !table.PlayersActed[table.LastAggressorID] {
		for _, p := range players {
			if p.ID == table.LastAggressorID && p.Status != state.StatusAllIn {
				return false
			}
		}
	}

	return true
}
