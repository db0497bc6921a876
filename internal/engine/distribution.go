package engine

import (
	"github.com/finnb0y/virtualchips/internal/pot"
	"github.com/finnb0y/virtualchips/internal/state"
)

func (e *Engine) startPotDistribution(s *state.State, a StartPotDistribution) Result {
	table, ok := s.Tables[a.TableID]
	if !ok {
		return reject(ReasonUnknownTable)
	}
	if !table.HandInProgress {
		return reject(ReasonNoHand)
	}
	if table.Distribution != nil {
		return reject(ReasonDistributionActive)
	}

	bets := pot.PrepareBets(s.PlayersAtTable(table.ID))
	table.Distribution = &state.PotDistribution{
		Pots: pot.CalculateSidePots(bets, table.Pot),
	}
	table.CurrentTurn = ""
	return applied()
}

func (e *Engine) togglePotWinner(s *state.State, a TogglePotWinner) Result {
	table, ok := s.Tables[a.TableID]
	if !ok {
		return reject(ReasonUnknownTable)
	}
	current := table.Distribution.Current()
	if current == nil {
		return reject(ReasonNoDistribution)
	}
	if _, ok := s.Players[a.PlayerID]; !ok {
		return reject(ReasonUnknownPlayer)
	}
	if !current.Eligible(a.PlayerID) {
		return reject(ReasonNotEligible)
	}

	pd := table.Distribution
	for i, id := range pd.SelectedWinnerIDs {
		if id == a.PlayerID {
			pd.SelectedWinnerIDs = append(pd.SelectedWinnerIDs[:i], pd.SelectedWinnerIDs[i+1:]...)
			return applied()
		}
	}
	pd.SelectedWinnerIDs = append(pd.SelectedWinnerIDs, a.PlayerID)
	return applied()
}

func (e *Engine) deliverCurrentPot(s *state.State, a DeliverCurrentPot) Result {
	table, ok := s.Tables[a.TableID]
	if !ok {
		return reject(ReasonUnknownTable)
	}
	pd := table.Distribution
	current := pd.Current()
	if current == nil {
		return reject(ReasonNoDistribution)
	}
	if len(pd.SelectedWinnerIDs) == 0 {
		return reject(ReasonNoWinnersSelected)
	}

	// Floor split; a remainder chip stays behind and is absorbed when the
	// hand ends, never minted to a player.
	share := current.Amount / len(pd.SelectedWinnerIDs)
	for _, id := range pd.SelectedWinnerIDs {
		if w, ok := s.Players[id]; ok {
			w.Balance += share
		}
	}
	table.Pot -= current.Amount
	if table.Pot < 0 {
		table.Pot = 0
	}

	pd.CurrentPotIndex++
	pd.SelectedWinnerIDs = nil
	if pd.Current() == nil {
		endHand(s, table)
	}
	return applied()
}

// deliverAllEligiblePots hands every remaining pot the winner is eligible for
// to that single winner. Pots the winner is not eligible for are not paid out;
// this path cannot split a pot between simultaneous winners — that is the
// manual toggle/deliver workflow's job.
func (e *Engine) deliverAllEligiblePots(s *state.State, a DeliverAllEligiblePots) Result {
	table, ok := s.Tables[a.TableID]
	if !ok {
		return reject(ReasonUnknownTable)
	}
	pd := table.Distribution
	if pd == nil || pd.Current() == nil {
		return reject(ReasonNoDistribution)
	}
	winner, ok := s.Players[a.WinnerID]
	if !ok {
		return reject(ReasonUnknownPlayer)
	}

	for _, p := range pd.Pots[pd.CurrentPotIndex:] {
		if !p.Eligible(a.WinnerID) {
			continue
		}
		winner.Balance += p.Amount
		table.Pot -= p.Amount
		if table.Pot < 0 {
			table.Pot = 0
		}
	}
	endHand(s, table)
	return applied()
}

// awardPot is the legacy shortcut for hands with a single pot: the entire
// table pot goes to one player, bypassing side-pot accounting. Mutually
// exclusive with a running distribution workflow.
func (e *Engine) awardPot(s *state.State, a AwardPot) Result {
	winner, ok := s.Players[a.WinnerID]
	if !ok {
		return reject(ReasonUnknownPlayer)
	}
	table, ok := s.Tables[winner.TableID]
	if !ok {
		return reject(ReasonUnknownTable)
	}
	if !table.HandInProgress {
		return reject(ReasonNoHand)
	}
	if table.Distribution != nil {
		return reject(ReasonDistributionActive)
	}

	winner.Balance += table.Pot
	table.Pot = 0
	for _, p := range s.PlayersAtTable(table.ID) {
		p.CurrentBet = 0
	}
	endHand(s, table)
	return applied()
}
