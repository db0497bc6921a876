package engine

import (
	"github.com/finnb0y/virtualchips/internal/position"
	"github.com/finnb0y/virtualchips/internal/round"
	"github.com/finnb0y/virtualchips/internal/state"
)

// actingPlayer validates the common preconditions for an in-round player
// action: known player, known table, live hand, their turn, able to act.
func (e *Engine) actingPlayer(s *state.State, senderID string) (*state.Player, *state.TableState, RejectReason) {
	p, ok := s.Players[senderID]
	if !ok {
		return nil, nil, ReasonUnknownPlayer
	}
	table, ok := s.Tables[p.TableID]
	if !ok {
		return nil, nil, ReasonUnknownTable
	}
	if !table.HandInProgress {
		return nil, nil, ReasonNoHand
	}
	if table.CurrentTurn != senderID {
		return nil, nil, ReasonNotYourTurn
	}
	if !p.CanAct() {
		return nil, nil, ReasonCannotAct
	}
	return p, table, ReasonNone
}

func (e *Engine) bet(s *state.State, senderID string, amount int) Result {
	p, table, why := e.actingPlayer(s, senderID)
	if why != ReasonNone {
		return reject(why)
	}
	if amount <= 0 {
		return reject(ReasonBadAmount)
	}
	e.payIntoPot(s, table, p, amount, state.ActionBet)
	e.finishPlayerAction(s, table, p)
	return applied()
}

func (e *Engine) raise(s *state.State, senderID string, amount int) Result {
	p, table, why := e.actingPlayer(s, senderID)
	if why != ReasonNone {
		return reject(why)
	}
	if amount <= 0 {
		return reject(ReasonBadAmount)
	}
	callAmount := table.CurrentBet - p.CurrentBet
	if callAmount < 0 {
		callAmount = 0
	}
	e.payIntoPot(s, table, p, callAmount+amount, state.ActionRaise)
	e.finishPlayerAction(s, table, p)
	return applied()
}

// payIntoPot moves chips for a bet or raise, clamped at the player's balance,
// and updates the aggression trackers. Only a payment whose resulting street
// bet strictly exceeds the table bet counts as a raise: a call-only payment,
// even one capped by a short stack, never reopens the action.
func (e *Engine) payIntoPot(s *state.State, table *state.TableState, p *state.Player, amount int, kind state.BetActionKind) {
	paid := p.Pay(amount)
	table.Pot += paid

	if p.CurrentBet > table.CurrentBet {
		table.LastRaiseAmount = p.CurrentBet - table.CurrentBet
		table.CurrentBet = p.CurrentBet
		table.LastAggressorID = p.ID
		// Everyone else owes a response to the new bet.
		table.PlayersActed = map[string]bool{p.ID: true}
	} else {
		table.MarkActed(p.ID)
	}

	if p.Status == state.StatusAllIn {
		kind = state.ActionAllIn
	}
	e.logAction(table, p, kind, paid)
}

func (e *Engine) call(s *state.State, senderID string) Result {
	p, table, why := e.actingPlayer(s, senderID)
	if why != ReasonNone {
		return reject(why)
	}
	toCall := state.MaxCurrentBet(s.PlayersAtTable(table.ID)) - p.CurrentBet
	if toCall < 0 {
		toCall = 0
	}
	paid := p.Pay(toCall)
	table.Pot += paid
	table.MarkActed(p.ID)

	kind := state.ActionCall
	if p.Status == state.StatusAllIn {
		kind = state.ActionAllIn
	}
	e.logAction(table, p, kind, paid)
	e.finishPlayerAction(s, table, p)
	return applied()
}

func (e *Engine) check(s *state.State, senderID string) Result {
	p, table, why := e.actingPlayer(s, senderID)
	if why != ReasonNone {
		return reject(why)
	}
	if p.CurrentBet != state.MaxCurrentBet(s.PlayersAtTable(table.ID)) {
		return reject(ReasonCannotCheck)
	}
	table.MarkActed(p.ID)
	e.logAction(table, p, state.ActionCheck, 0)
	e.finishPlayerAction(s, table, p)
	return applied()
}

func (e *Engine) fold(s *state.State, senderID string) Result {
	p, table, why := e.actingPlayer(s, senderID)
	if why != ReasonNone {
		return reject(why)
	}
	p.Status = state.StatusFolded
	table.MarkActed(p.ID)
	e.logAction(table, p, state.ActionFold, 0)
	e.finishPlayerAction(s, table, p)
	return applied()
}

// finishPlayerAction resolves who acts next: the dealer regains control when
// the round is closed, otherwise the next player who can act.
func (e *Engine) finishPlayerAction(s *state.State, table *state.TableState, p *state.Player) {
	players := s.PlayersAtTable(table.ID)
	if round.IsComplete(players, table) {
		table.CurrentTurn = ""
		return
	}
	if idx := position.NextToAct(players, p.SeatNumber); idx >= 0 {
		table.CurrentTurn = players[idx].ID
	} else {
		table.CurrentTurn = ""
	}
}

func (e *Engine) logAction(table *state.TableState, p *state.Player, kind state.BetActionKind, amount int) {
	table.BetActions = append(table.BetActions, state.BetAction{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Action:     kind,
		Amount:     amount,
		Timestamp:  e.clock.Now(),
		Round:      table.Round,
	})
}
