package engine

import (
	"sort"

	"github.com/finnb0y/virtualchips/internal/position"
	"github.com/finnb0y/virtualchips/internal/state"
)

func (e *Engine) moveDealerButton(s *state.State, a MoveDealerButton) Result {
	table, ok := s.Tables[a.TableID]
	if !ok {
		return reject(ReasonUnknownTable)
	}
	active := s.ActivePlayersAtTable(table.ID)
	if len(active) == 0 {
		return reject(ReasonNotEnoughPlayers)
	}
	table.DealerButtonPosition = position.NextButtonSeat(active, table.DealerButtonPosition)
	return applied()
}

func (e *Engine) advanceBlindLevel(s *state.State, a AdvanceBlindLevel) Result {
	table, ok := s.Tables[a.TableID]
	if !ok {
		return reject(ReasonUnknownTable)
	}
	if table.CurrentBlindLevel+1 >= len(s.Tournament.Config.BlindStructure) {
		return reject(ReasonLastBlindLevel)
	}
	table.CurrentBlindLevel++
	return applied()
}

func (e *Engine) rebuyPlayer(s *state.State, a RebuyPlayer) Result {
	p, ok := s.Players[a.PlayerID]
	if !ok {
		return reject(ReasonUnknownPlayer)
	}
	if p.InHand() {
		return reject(ReasonHandInProgress)
	}
	cfg := s.Tournament.Config
	if p.Rebuys >= cfg.MaxRebuys {
		return reject(ReasonRebuyLimit)
	}
	chips := cfg.RebuyChips
	if chips == 0 {
		chips = cfg.StartingStack
	}
	p.Balance += chips
	p.Rebuys++
	p.TotalInvested += cfg.RebuyCost
	if p.Status == state.StatusOut {
		p.Status = state.StatusSitting
	}
	return applied()
}

func (e *Engine) reentryPlayer(s *state.State, a ReentryPlayer) Result {
	p, ok := s.Players[a.PlayerID]
	if !ok {
		return reject(ReasonUnknownPlayer)
	}
	if p.Status != state.StatusOut {
		return reject(ReasonNotEliminated)
	}
	cfg := s.Tournament.Config
	p.Balance = cfg.StartingStack
	p.CurrentBet = 0
	p.TotalContributed = 0
	p.Status = state.StatusSitting
	p.TotalInvested += cfg.BuyInCost
	return applied()
}

func (e *Engine) movePlayer(s *state.State, a MovePlayer) Result {
	p, ok := s.Players[a.PlayerID]
	if !ok {
		return reject(ReasonUnknownPlayer)
	}
	if _, ok := s.Tables[a.TableID]; !ok {
		return reject(ReasonUnknownTable)
	}
	if p.InHand() {
		return reject(ReasonHandInProgress)
	}

	seat := a.SeatNumber
	if seat == 0 {
		seat = firstFreeSeat(s, a.TableID)
		if seat == 0 {
			return reject(ReasonSeatUnavailable)
		}
	}
	// Seat 1 belongs to the dealer, never to a player.
	if seat == 1 || s.SeatTaken(a.TableID, seat) {
		return reject(ReasonSeatUnavailable)
	}
	p.TableID = a.TableID
	p.SeatNumber = seat
	return applied()
}

func (e *Engine) removePlayer(s *state.State, a RemovePlayer) Result {
	p, ok := s.Players[a.PlayerID]
	if !ok {
		return reject(ReasonUnknownPlayer)
	}
	if p.InHand() {
		return reject(ReasonHandInProgress)
	}
	delete(s.Players, a.PlayerID)
	return applied()
}

// autoBalance relocates sitting players from the fullest table to the
// emptiest until the spread is at most one. Players in a live hand stay put.
func (e *Engine) autoBalance(s *state.State) Result {
	tableIDs := make([]string, 0, len(s.Tables))
	for id := range s.Tables {
		tableIDs = append(tableIDs, id)
	}
	sort.Strings(tableIDs)
	if len(tableIDs) < 2 {
		return reject(ReasonAlreadyBalanced)
	}

	moved := false
	for {
		var fullest, emptiest string
		maxCount, minCount := -1, int(^uint(0)>>1)
		for _, id := range tableIDs {
			n := len(s.ActivePlayersAtTable(id))
			if n > maxCount {
				maxCount, fullest = n, id
			}
			if n < minCount {
				minCount, emptiest = n, id
			}
		}
		if maxCount-minCount <= 1 {
			break
		}

		var mover *state.Player
		for _, p := range s.ActivePlayersAtTable(fullest) {
			if !p.InHand() {
				mover = p
				break
			}
		}
		seat := firstFreeSeat(s, emptiest)
		if mover == nil || seat == 0 {
			break
		}
		mover.TableID = emptiest
		mover.SeatNumber = seat
		moved = true
	}

	if !moved {
		return reject(ReasonAlreadyBalanced)
	}
	return applied()
}

func (e *Engine) registerPlayer(s *state.State, a RegisterPlayer) Result {
	if a.Name == "" {
		return reject(ReasonMalformed)
	}
	cfg := s.Tournament.Config
	accessCode := a.AccessCode
	if accessCode == "" {
		accessCode = e.newID()
	}
	p := &state.Player{
		ID:            e.newID(),
		PersonID:      a.PersonID,
		TournamentID:  s.Tournament.ID,
		Name:          a.Name,
		Balance:       cfg.StartingStack,
		Status:        state.StatusSitting,
		AccessCode:    accessCode,
		TotalInvested: cfg.BuyInCost,
	}
	s.Players[p.ID] = p
	return applied()
}

func (e *Engine) createTable(s *state.State, a CreateTable) Result {
	code := a.DealerAccessCode
	if code == "" {
		code = e.newID()
	}
	t := &state.TableState{
		ID:               e.newID(),
		TournamentID:     s.Tournament.ID,
		PlayersActed:     make(map[string]bool),
		DealerAccessCode: code,
	}
	// The dealer acts under a table-scoped identity, not a player id.
	t.DealerID = "dealer:" + t.ID
	s.Tables[t.ID] = t
	return applied()
}

// firstFreeSeat returns the lowest open player seat (2..10) at a table, or 0
// when the table is full.
func firstFreeSeat(s *state.State, tableID string) int {
	for seat := 2; seat <= 10; seat++ {
		if !s.SeatTaken(tableID, seat) {
			return seat
		}
	}
	return 0
}
