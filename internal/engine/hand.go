package engine

import (
	"github.com/finnb0y/virtualchips/internal/position"
	"github.com/finnb0y/virtualchips/internal/round"
	"github.com/finnb0y/virtualchips/internal/state"
)

func (e *Engine) startHand(s *state.State, a StartHand) Result {
	table, ok := s.Tables[a.TableID]
	if !ok {
		return reject(ReasonUnknownTable)
	}
	if table.HandInProgress {
		return reject(ReasonHandInProgress)
	}

	// Broke players are eliminated before dealing.
	for _, p := range s.PlayersAtTable(table.ID) {
		if p.Balance <= 0 {
			p.Status = state.StatusOut
		}
	}

	eligible := s.ActivePlayersAtTable(table.ID)
	if len(eligible) < 2 {
		return reject(ReasonNotEnoughPlayers)
	}

	button := table.DealerButtonPosition
	if button == 0 {
		button = position.NextButtonSeat(eligible, 0)
	}
	pos, ok := position.Calculate(eligible, button)
	if !ok {
		return reject(ReasonNotEnoughPlayers)
	}

	table.ResetForNewHand()
	table.DealerButtonPosition = button
	for _, p := range s.PlayersAtTable(table.ID) {
		p.CurrentBet = 0
		p.TotalContributed = 0
		if p.Status != state.StatusOut {
			p.Status = state.StatusActive
		}
	}

	level := s.Tournament.Config.Level(table.CurrentBlindLevel)

	if level.Ante > 0 {
		for _, p := range eligible {
			table.Pot += payAnte(p, level.Ante)
		}
	}

	// Blinds are capped at the payer's stack; a short post is allowed and
	// flips the payer to all-in.
	table.Pot += eligible[pos.SmallBlind].Pay(level.SmallBlind)
	table.Pot += eligible[pos.BigBlind].Pay(level.BigBlind)

	table.HandInProgress = true
	table.Round = state.RoundPreFlop
	table.CurrentBet = level.BigBlind
	table.LastRaiseAmount = level.BigBlind
	// The big blind is the initial aggressor but is not marked as acted,
	// which is what gives them the pre-flop option.
	table.LastAggressorID = eligible[pos.BigBlind].ID

	opener := eligible[pos.FirstToAct]
	if opener.CanAct() {
		table.CurrentTurn = opener.ID
	} else if idx := position.NextToAct(eligible, opener.SeatNumber); idx >= 0 {
		table.CurrentTurn = eligible[idx].ID
	}
	if round.IsComplete(s.PlayersAtTable(table.ID), table) {
		table.CurrentTurn = ""
	}
	return applied()
}

// payAnte takes the ante straight into the pot. Antes count toward the
// hand contribution but not toward the street bet.
func payAnte(p *state.Player, ante int) int {
	if ante > p.Balance {
		ante = p.Balance
	}
	if ante <= 0 {
		return 0
	}
	p.Balance -= ante
	p.TotalContributed += ante
	if p.Balance == 0 {
		p.Status = state.StatusAllIn
	}
	return ante
}

func (e *Engine) advanceBettingRound(s *state.State, a AdvanceBettingRound) Result {
	table, ok := s.Tables[a.TableID]
	if !ok {
		return reject(ReasonUnknownTable)
	}
	if !table.HandInProgress {
		return reject(ReasonNoHand)
	}
	if table.Round == state.RoundShowdown {
		return reject(ReasonShowdownReached)
	}

	table.Round = table.Round.Next()
	table.ResetForNewStreet()
	for _, p := range s.PlayersAtTable(table.ID) {
		p.CurrentBet = 0
	}

	table.CurrentTurn = ""
	if table.Round != state.RoundShowdown {
		eligible := s.ActivePlayersAtTable(table.ID)
		if idx := position.PostFlopFirstToAct(eligible, table.DealerButtonPosition); idx >= 0 {
			table.CurrentTurn = eligible[idx].ID
		}
	}
	return applied()
}

// endHand closes the hand: per-hand table state is wiped (absorbing any
// odd-chip remainder left in the pot) and every player is reclassified by
// balance.
func endHand(s *state.State, table *state.TableState) {
	table.ResetForNewHand()
	for _, p := range s.PlayersAtTable(table.ID) {
		p.CurrentBet = 0
		p.TotalContributed = 0
		if p.Balance <= 0 {
			p.Status = state.StatusOut
		} else {
			p.Status = state.StatusSitting
		}
	}
}
