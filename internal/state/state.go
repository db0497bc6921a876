package state

import "sort"

// State is one immutable snapshot of the (tournament, players, tables)
// aggregate. The engine never mutates a snapshot it was given: handlers work
// on a Clone and return it, so callers can diff, persist or discard snapshots
// freely.
type State struct {
	Tournament *Tournament            `json:"tournament"`
	Players    map[string]*Player     `json:"players"`
	Tables     map[string]*TableState `json:"tables"`
}

// NewState returns an empty snapshot for a tournament.
func NewState(t *Tournament) *State {
	return &State{
		Tournament: t,
		Players:    make(map[string]*Player),
		Tables:     make(map[string]*TableState),
	}
}

// Clone deep-copies the snapshot, entities included.
func (s *State) Clone() *State {
	out := &State{
		Players: make(map[string]*Player, len(s.Players)),
		Tables:  make(map[string]*TableState, len(s.Tables)),
	}
	if s.Tournament != nil {
		t := *s.Tournament
		t.Config.BlindStructure = append([]BlindLevel(nil), s.Tournament.Config.BlindStructure...)
		out.Tournament = &t
	}
	for id, p := range s.Players {
		cp := *p
		out.Players[id] = &cp
	}
	for id, tbl := range s.Tables {
		ct := *tbl
		ct.BetActions = append([]BetAction(nil), tbl.BetActions...)
		ct.PlayersActed = make(map[string]bool, len(tbl.PlayersActed))
		for pid, v := range tbl.PlayersActed {
			ct.PlayersActed[pid] = v
		}
		if tbl.Distribution != nil {
			cd := *tbl.Distribution
			cd.SelectedWinnerIDs = append([]string(nil), tbl.Distribution.SelectedWinnerIDs...)
			cd.Pots = make([]Pot, len(tbl.Distribution.Pots))
			for i, pot := range tbl.Distribution.Pots {
				cd.Pots[i] = Pot{
					Amount:            pot.Amount,
					EligiblePlayerIDs: append([]string(nil), pot.EligiblePlayerIDs...),
				}
			}
			ct.Distribution = &cd
		}
		out.Tables[id] = &ct
	}
	return out
}

// PlayersAtTable returns the players seated at a table, sorted by ascending
// seat number. Seat order is the canonical action order everywhere.
func (s *State) PlayersAtTable(tableID string) []*Player {
	var out []*Player
	for _, p := range s.Players {
		if p.TableID == tableID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeatNumber < out[j].SeatNumber })
	return out
}

// ActivePlayersAtTable returns the seat-ordered players eligible to be dealt
// into a new hand (everyone seated who is not eliminated).
func (s *State) ActivePlayersAtTable(tableID string) []*Player {
	var out []*Player
	for _, p := range s.PlayersAtTable(tableID) {
		if p.Status != StatusOut {
			out = append(out, p)
		}
	}
	return out
}

// SeatTaken reports whether a seat at a table is occupied. Seat 1 is the
// dealer's and always counts as taken.
func (s *State) SeatTaken(tableID string, seat int) bool {
	if seat == 1 {
		return true
	}
	for _, p := range s.Players {
		if p.TableID == tableID && p.SeatNumber == seat {
			return true
		}
	}
	return false
}

// MaxCurrentBet returns the highest street bet among the given players.
func MaxCurrentBet(players []*Player) int {
	max := 0
	for _, p := range players {
		if p.CurrentBet > max {
			max = p.CurrentBet
		}
	}
	return max
}
