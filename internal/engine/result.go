package engine

// RejectReason says why an action was ignored. Rejections are not errors:
// the aggregate is simply left untouched, matching the engine's contract that
// illegal domain actions degrade to no-ops. The reason lets callers and tests
// tell "not your turn" apart from "malformed".
type RejectReason string

const (
	ReasonNone               RejectReason = ""
	ReasonMalformed          RejectReason = "MALFORMED"
	ReasonUnknownPlayer      RejectReason = "UNKNOWN_PLAYER"
	ReasonUnknownTable       RejectReason = "UNKNOWN_TABLE"
	ReasonNotYourTurn        RejectReason = "NOT_YOUR_TURN"
	ReasonCannotAct          RejectReason = "CANNOT_ACT"
	ReasonCannotCheck        RejectReason = "CANNOT_CHECK"
	ReasonBadAmount          RejectReason = "BAD_AMOUNT"
	ReasonNoHand             RejectReason = "NO_HAND_IN_PROGRESS"
	ReasonHandInProgress     RejectReason = "HAND_IN_PROGRESS"
	ReasonNotEnoughPlayers   RejectReason = "NOT_ENOUGH_PLAYERS"
	ReasonShowdownReached    RejectReason = "SHOWDOWN_REACHED"
	ReasonNoDistribution     RejectReason = "NO_DISTRIBUTION"
	ReasonDistributionActive RejectReason = "DISTRIBUTION_ACTIVE"
	ReasonNotEligible        RejectReason = "NOT_ELIGIBLE"
	ReasonNoWinnersSelected  RejectReason = "NO_WINNERS_SELECTED"
	ReasonSeatUnavailable    RejectReason = "SEAT_UNAVAILABLE"
	ReasonRebuyLimit         RejectReason = "REBUY_LIMIT"
	ReasonNotEliminated      RejectReason = "NOT_ELIMINATED"
	ReasonLastBlindLevel     RejectReason = "LAST_BLIND_LEVEL"
	ReasonAlreadyBalanced    RejectReason = "ALREADY_BALANCED"
)

// Result reports the outcome of one Apply.
type Result struct {
	Applied bool
	Reason  RejectReason
}

func applied() Result              { return Result{Applied: true} }
func reject(r RejectReason) Result { return Result{Reason: r} }
