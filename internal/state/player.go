package state

// PlayerStatus represents where a player is in the tournament lifecycle.
type PlayerStatus string

const (
	StatusSitting PlayerStatus = "SITTING" // seated, waiting for the next hand
	StatusActive  PlayerStatus = "ACTIVE"  // dealt into the current hand, can still act
	StatusFolded  PlayerStatus = "FOLDED"  // out of the current hand
	StatusAllIn   PlayerStatus = "ALL_IN"  // committed all chips this hand
	StatusOut     PlayerStatus = "OUT"     // eliminated; only rebuy/re-entry resets this
)

// Player is a tournament participant's chip-state.
type Player struct {
	ID               string       `json:"id"`
	PersonID         string       `json:"personId"`
	TournamentID     string       `json:"tournamentId"`
	Name             string       `json:"name"`
	Balance          int          `json:"balance"`
	CurrentBet       int          `json:"currentBet"`       // chips committed this street
	TotalContributed int          `json:"totalContributed"` // chips committed this hand
	Status           PlayerStatus `json:"status"`
	TableID          string       `json:"tableId,omitempty"`
	SeatNumber       int          `json:"seatNumber"` // seat 1 is the dealer seat, never a player
	AccessCode       string       `json:"accessCode"`
	Rebuys           int          `json:"rebuys"`
	HasAddon         bool         `json:"hasAddon"`
	TotalInvested    int          `json:"totalInvested"`
}

// CanAct reports whether the player may take a betting action right now.
// Folded, all-in, eliminated and not-yet-dealt-in players cannot.
func (p *Player) CanAct() bool {
	return p.Status == StatusActive
}

// InHand reports whether the player still holds a claim on the pot this hand.
func (p *Player) InHand() bool {
	return p.Status == StatusActive || p.Status == StatusAllIn
}

// Pay moves up to amount chips from the player's balance into the current
// street, capped at the balance. It returns the amount actually paid and
// flips the player to ALL_IN when the balance hits zero.
func (p *Player) Pay(amount int) int {
	if amount > p.Balance {
		amount = p.Balance
	}
	if amount <= 0 {
		return 0
	}
	p.Balance -= amount
	p.CurrentBet += amount
	p.TotalContributed += amount
	if p.Balance == 0 {
		p.Status = StatusAllIn
	}
	return amount
}
