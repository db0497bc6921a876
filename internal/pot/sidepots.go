// Package pot partitions a table pot into ordered side pots by contribution
// tier. Folded players' chips still fund the pots they paid into, but folded
// players are never eligible to win anything.
package pot

import (
	"sort"

	"github.com/finnb0y/virtualchips/internal/state"
)

// PlayerBet is one player's whole-hand contribution, projected for the
// calculator.
type PlayerBet struct {
	PlayerID string
	Amount   int
	Folded   bool
}

// PrepareBets projects the current hand's contributions and fold status for
// CalculateSidePots. Players who put nothing in are omitted.
func PrepareBets(players []*state.Player) []PlayerBet {
	bets := make([]PlayerBet, 0, len(players))
	for _, p := range players {
		if p.TotalContributed == 0 {
			continue
		}
		bets = append(bets, PlayerBet{
			PlayerID: p.ID,
			Amount:   p.TotalContributed,
			Folded:   !p.InHand(),
		})
	}
	return bets
}

// CalculateSidePots splits totalPot into ordered pots, lowest contribution
// tier first. Tier boundaries are the distinct contribution levels of the
// players still in the hand; each pot takes every contributor's chips between
// the previous boundary and its own, and is winnable only by in-hand players
// who contributed at least that much. The pot amounts always sum to totalPot:
// folded chips above the top tier land in the last (most restricted) pot.
func CalculateSidePots(bets []PlayerBet, totalPot int) []state.Pot {
	tierSet := make(map[int]bool)
	for _, b := range bets {
		if !b.Folded && b.Amount > 0 {
			tierSet[b.Amount] = true
		}
	}
	tiers := make([]int, 0, len(tierSet))
	for t := range tierSet {
		tiers = append(tiers, t)
	}
	sort.Ints(tiers)

	var pots []state.Pot
	prev := 0
	for _, tier := range tiers {
		p := state.Pot{}
		for _, b := range bets {
			slice := min(b.Amount, tier) - min(b.Amount, prev)
			if slice > 0 {
				p.Amount += slice
			}
			if !b.Folded && b.Amount >= tier {
				p.EligiblePlayerIDs = append(p.EligiblePlayerIDs, b.PlayerID)
			}
		}
		if p.Amount > 0 && len(p.EligiblePlayerIDs) > 0 {
			pots = append(pots, p)
		}
		prev = tier
	}

	if len(pots) == 0 {
		// Nobody left in the hand or nothing contributed: one pot holding
		// whatever is on the table.
		return []state.Pot{{Amount: totalPot}}
	}

	// Folded contributions above the top tier belong to the last pot.
	sum := 0
	for _, p := range pots {
		sum += p.Amount
	}
	if rem := totalPot - sum; rem > 0 {
		pots[len(pots)-1].Amount += rem
	}
	return pots
}

// AllAllInOrCapped reports that no player at the table can take another
// action: everyone is folded, all-in, out or sitting out. The count must be
// exactly zero — with a single player left to act the round is still open,
// that player may owe chips.
func AllAllInOrCapped(players []*state.Player) bool {
	for _, p := range players {
		if p.CanAct() {
			return false
		}
	}
	return true
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
