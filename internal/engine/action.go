package engine

// Kind identifies an action on the wire.
type Kind string

const (
	KindStartHand              Kind = "START_HAND"
	KindBet                    Kind = "BET"
	KindRaise                  Kind = "RAISE"
	KindCall                   Kind = "CALL"
	KindCheck                  Kind = "CHECK"
	KindFold                   Kind = "FOLD"
	KindAdvanceBettingRound    Kind = "ADVANCE_BETTING_ROUND"
	KindStartPotDistribution   Kind = "START_POT_DISTRIBUTION"
	KindTogglePotWinner        Kind = "TOGGLE_POT_WINNER"
	KindDeliverCurrentPot      Kind = "DELIVER_CURRENT_POT"
	KindDeliverAllEligiblePots Kind = "DELIVER_ALL_ELIGIBLE_POTS"
	KindAwardPot               Kind = "AWARD_POT"
	KindMoveDealerButton       Kind = "MOVE_DEALER_BUTTON"
	KindAdvanceBlindLevel      Kind = "ADVANCE_BLIND_LEVEL"
	KindRebuyPlayer            Kind = "REBUY_PLAYER"
	KindReentryPlayer          Kind = "REENTRY_PLAYER"
	KindMovePlayer             Kind = "MOVE_PLAYER"
	KindRemovePlayer           Kind = "REMOVE_PLAYER"
	KindAutoBalance            Kind = "AUTO_BALANCE"
	KindRegisterPlayer         Kind = "REGISTER_PLAYER"
	KindCreateTable            Kind = "CREATE_TABLE"
)

// Action is the closed set of things the engine can be asked to do. One
// concrete type per kind keeps dispatch exhaustive instead of switching over
// raw strings.
type Action interface {
	Kind() Kind
}

// Message pairs an action with the authenticated sender. The engine trusts
// SenderID; authentication happens upstream.
type Message struct {
	SenderID string
	Action   Action
}

// StartHand begins a new hand at a table: eliminates broke players, places
// the button, posts antes and blinds, and hands the turn to the opener.
type StartHand struct {
	TableID string `json:"tableId"`
}

// Bet opens the betting for the sender with the given amount.
type Bet struct {
	Amount int `json:"amount"`
}

// Raise increases the table bet: the sender pays the call amount plus Amount
// on top, capped at their balance.
type Raise struct {
	Amount int `json:"amount"`
}

// Call matches the highest outstanding bet, capped at the sender's balance.
type Call struct{}

// Check passes the action without betting. Legal only when nothing is owed.
type Check struct{}

// Fold withdraws the sender from the hand.
type Fold struct{}

// AdvanceBettingRound moves the table to the next street.
type AdvanceBettingRound struct {
	TableID string `json:"tableId"`
}

// StartPotDistribution snapshots the side pots for manual delivery.
type StartPotDistribution struct {
	TableID string `json:"tableId"`
}

// TogglePotWinner toggles a player in the current pot's winner selection.
type TogglePotWinner struct {
	TableID  string `json:"tableId"`
	PlayerID string `json:"playerId"`
}

// DeliverCurrentPot splits the current pot among the selected winners and
// advances to the next pot, ending the hand after the last one.
type DeliverCurrentPot struct {
	TableID string `json:"tableId"`
}

// DeliverAllEligiblePots awards every remaining pot the winner is eligible
// for to that single winner, then ends the hand. It cannot split a pot; true
// split pots go through TogglePotWinner + DeliverCurrentPot.
type DeliverAllEligiblePots struct {
	TableID  string `json:"tableId"`
	WinnerID string `json:"winnerId"`
}

// AwardPot is the legacy single-pot shortcut: the whole table pot goes to
// one player with no side-pot accounting. Reserved for hands with no all-in.
type AwardPot struct {
	WinnerID string `json:"winnerId"`
}

// MoveDealerButton advances the button to the next active seat.
type MoveDealerButton struct {
	TableID string `json:"tableId"`
}

// AdvanceBlindLevel moves the table to the next configured blind level.
type AdvanceBlindLevel struct {
	TableID string `json:"tableId"`
}

// RebuyPlayer adds rebuy chips to a busted or sitting player.
type RebuyPlayer struct {
	PlayerID string `json:"playerId"`
}

// ReentryPlayer resets an eliminated player to a fresh starting stack.
type ReentryPlayer struct {
	PlayerID string `json:"playerId"`
}

// MovePlayer seats a player at a table. Seat 0 means first free seat; seat 1
// belongs to the dealer and is never assignable.
type MovePlayer struct {
	PlayerID   string `json:"playerId"`
	TableID    string `json:"tableId"`
	SeatNumber int    `json:"seatNumber,omitempty"`
}

// RemovePlayer deletes a player from the tournament.
type RemovePlayer struct {
	PlayerID string `json:"playerId"`
}

// AutoBalance evens out player counts across tables by relocating players
// who are not in a hand.
type AutoBalance struct{}

// RegisterPlayer creates a tournament entry with the starting stack.
type RegisterPlayer struct {
	PersonID   string `json:"personId"`
	Name       string `json:"name"`
	AccessCode string `json:"accessCode,omitempty"`
}

// CreateTable adds a table to the tournament.
type CreateTable struct {
	DealerAccessCode string `json:"dealerAccessCode,omitempty"`
}

func (StartHand) Kind() Kind              { return KindStartHand }
func (Bet) Kind() Kind                    { return KindBet }
func (Raise) Kind() Kind                  { return KindRaise }
func (Call) Kind() Kind                   { return KindCall }
func (Check) Kind() Kind                  { return KindCheck }
func (Fold) Kind() Kind                   { return KindFold }
func (AdvanceBettingRound) Kind() Kind    { return KindAdvanceBettingRound }
func (StartPotDistribution) Kind() Kind   { return KindStartPotDistribution }
func (TogglePotWinner) Kind() Kind        { return KindTogglePotWinner }
func (DeliverCurrentPot) Kind() Kind      { return KindDeliverCurrentPot }
func (DeliverAllEligiblePots) Kind() Kind { return KindDeliverAllEligiblePots }
func (AwardPot) Kind() Kind               { return KindAwardPot }
func (MoveDealerButton) Kind() Kind       { return KindMoveDealerButton }
func (AdvanceBlindLevel) Kind() Kind      { return KindAdvanceBlindLevel }
func (RebuyPlayer) Kind() Kind            { return KindRebuyPlayer }
func (ReentryPlayer) Kind() Kind          { return KindReentryPlayer }
func (MovePlayer) Kind() Kind             { return KindMovePlayer }
func (RemovePlayer) Kind() Kind           { return KindRemovePlayer }
func (AutoBalance) Kind() Kind            { return KindAutoBalance }
func (RegisterPlayer) Kind() Kind         { return KindRegisterPlayer }
func (CreateTable) Kind() Kind            { return KindCreateTable }
