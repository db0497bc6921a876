package state

import "time"

// BettingRound represents the current street. The zero value means no hand
// is running (or the table is between streets).
type BettingRound string

const (
	RoundNone     BettingRound = ""
	RoundPreFlop  BettingRound = "PRE_FLOP"
	RoundFlop     BettingRound = "FLOP"
	RoundTurn     BettingRound = "TURN"
	RoundRiver    BettingRound = "RIVER"
	RoundShowdown BettingRound = "SHOWDOWN"
)

// Next returns the street that follows, in fixed order. Showdown is terminal.
func (r BettingRound) Next() BettingRound {
	switch r {
	case RoundPreFlop:
		return RoundFlop
	case RoundFlop:
		return RoundTurn
	case RoundTurn:
		return RoundRiver
	case RoundRiver:
		return RoundShowdown
	default:
		return r
	}
}

// BetActionKind labels entries in the per-hand bet log.
type BetActionKind string

const (
	ActionBet   BetActionKind = "BET"
	ActionCall  BetActionKind = "CALL"
	ActionRaise BetActionKind = "RAISE"
	ActionCheck BetActionKind = "CHECK"
	ActionFold  BetActionKind = "FOLD"
	ActionAllIn BetActionKind = "ALL_IN"
)

// BetAction is one append-only bet-log entry. The log lives for a single hand
// and is cleared when the next hand starts.
type BetAction struct {
	PlayerID   string        `json:"playerId"`
	PlayerName string        `json:"playerName"`
	Action     BetActionKind `json:"action"`
	Amount     int           `json:"amount"`
	Timestamp  time.Time     `json:"timestamp"`
	Round      BettingRound  `json:"bettingRound"`
}

// Pot is one (main or side) pot with the players allowed to win it.
type Pot struct {
	Amount            int      `json:"amount"`
	EligiblePlayerIDs []string `json:"eligiblePlayerIds"`
}

// Eligible reports whether playerID may win this pot.
func (p Pot) Eligible(playerID string) bool {
	for _, id := range p.EligiblePlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// PotDistribution is the in-flight manual payout workflow: pots are delivered
// one at a time, lowest tier first, with winners toggled per pot.
type PotDistribution struct {
	Pots              []Pot    `json:"pots"`
	CurrentPotIndex   int      `json:"currentPotIndex"`
	SelectedWinnerIDs []string `json:"selectedWinnerIds"`
}

// Current returns the pot being distributed, or nil once all are delivered.
func (pd *PotDistribution) Current() *Pot {
	if pd == nil || pd.CurrentPotIndex < 0 || pd.CurrentPotIndex >= len(pd.Pots) {
		return nil
	}
	return &pd.Pots[pd.CurrentPotIndex]
}

// TableState is the betting state of one physical table.
type TableState struct {
	ID                   string           `json:"id"`
	TournamentID         string           `json:"tournamentId"`
	Pot                  int              `json:"pot"`
	CurrentTurn          string           `json:"currentTurn,omitempty"` // player id, "" = dealer has control
	DealerID             string           `json:"dealerId,omitempty"`
	DealerButtonPosition int              `json:"dealerButtonPosition"` // seat number, 0 = not yet placed
	CurrentBlindLevel    int              `json:"currentBlindLevel"`
	Round                BettingRound     `json:"bettingRound"`
	CurrentBet           int              `json:"currentBet"` // table-level street bet to match
	LastRaiseAmount      int              `json:"lastRaiseAmount"`
	HandInProgress       bool             `json:"handInProgress"`
	LastAggressorID      string           `json:"lastAggressorId,omitempty"`
	PlayersActed         map[string]bool  `json:"playersActedInRound"`
	Distribution         *PotDistribution `json:"potDistribution,omitempty"`
	BetActions           []BetAction      `json:"betActions"`
	DealerAccessCode     string           `json:"dealerAccessCode"`
}

// ResetForNewHand clears every per-hand field. The dealer button and blind
// level survive across hands.
func (t *TableState) ResetForNewHand() {
	t.Pot = 0
	t.CurrentTurn = ""
	t.Round = RoundNone
	t.CurrentBet = 0
	t.LastRaiseAmount = 0
	t.HandInProgress = false
	t.LastAggressorID = ""
	t.PlayersActed = make(map[string]bool)
	t.Distribution = nil
	t.BetActions = nil
}

// ResetForNewStreet clears the per-street trackers when play advances to the
// next street; the pot and per-hand contributions are untouched.
func (t *TableState) ResetForNewStreet() {
	t.CurrentBet = 0
	t.LastRaiseAmount = 0
	t.LastAggressorID = ""
	t.PlayersActed = make(map[string]bool)
}

// MarkActed records that a player has taken an action this street.
func (t *TableState) MarkActed(playerID string) {
	if t.PlayersActed == nil {
		t.PlayersActed = make(map[string]bool)
	}
	t.PlayersActed[playerID] = true
}
