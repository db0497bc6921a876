package engine

import (
	"encoding/json"
	"fmt"
)

// DecodeAction turns a wire envelope's kind and payload into a typed Action.
// Unknown kinds and bad payloads are errors for the transport to report; they
// never reach Apply.
func DecodeAction(kind Kind, payload json.RawMessage) (Action, error) {
	var a Action
	switch kind {
	case KindStartHand:
		a = &StartHand{}
	case KindBet:
		a = &Bet{}
	case KindRaise:
		a = &Raise{}
	case KindCall:
		a = &Call{}
	case KindCheck:
		a = &Check{}
	case KindFold:
		a = &Fold{}
	case KindAdvanceBettingRound:
		a = &AdvanceBettingRound{}
	case KindStartPotDistribution:
		a = &StartPotDistribution{}
	case KindTogglePotWinner:
		a = &TogglePotWinner{}
	case KindDeliverCurrentPot:
		a = &DeliverCurrentPot{}
	case KindDeliverAllEligiblePots:
		a = &DeliverAllEligiblePots{}
	case KindAwardPot:
		a = &AwardPot{}
	case KindMoveDealerButton:
		a = &MoveDealerButton{}
	case KindAdvanceBlindLevel:
		a = &AdvanceBlindLevel{}
	case KindRebuyPlayer:
		a = &RebuyPlayer{}
	case KindReentryPlayer:
		a = &ReentryPlayer{}
	case KindMovePlayer:
		a = &MovePlayer{}
	case KindRemovePlayer:
		a = &RemovePlayer{}
	case KindAutoBalance:
		a = &AutoBalance{}
	case KindRegisterPlayer:
		a = &RegisterPlayer{}
	case KindCreateTable:
		a = &CreateTable{}
	default:
		return nil, fmt.Errorf("unknown action kind %q", kind)
	}

	if len(payload) > 0 {
		if err := json.Unmarshal(payload, a); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", kind, err)
		}
	}
	return deref(a), nil
}

// deref unwraps the pointers Unmarshal needed; Apply dispatches on the value
// types.
func deref(a Action) Action {
	switch v := a.(type) {
	case *StartHand:
		return *v
	case *Bet:
		return *v
	case *Raise:
		return *v
	case *Call:
		return *v
	case *Check:
		return *v
	case *Fold:
		return *v
	case *AdvanceBettingRound:
		return *v
	case *StartPotDistribution:
		return *v
	case *TogglePotWinner:
		return *v
	case *DeliverCurrentPot:
		return *v
	case *DeliverAllEligiblePots:
		return *v
	case *AwardPot:
		return *v
	case *MoveDealerButton:
		return *v
	case *AdvanceBlindLevel:
		return *v
	case *RebuyPlayer:
		return *v
	case *ReentryPlayer:
		return *v
	case *MovePlayer:
		return *v
	case *RemovePlayer:
		return *v
	case *AutoBalance:
		return *v
	case *RegisterPlayer:
		return *v
	case *CreateTable:
		return *v
	default:
		return a
	}
}
