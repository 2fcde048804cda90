package nakama

import (
	"github.com/supplanter-wood/pablo/internal/app"
)

// errorCode maps an app error onto the wire code clients branch on.
func errorCode(err error) string {
	switch app.Classify(err) {
	case app.KindCapacity:
		return "room_full"
	case app.KindRuleViolation:
		return "rule_violation"
	case app.KindResourceExhaustion:
		return "round_unrecoverable"
	default:
		return "invalid_request"
	}
}

// opCodeFor maps app event kinds onto wire op codes. Unknown kinds return 0
// and are not broadcast.
func opCodeFor(kind app.EventKind) int64 {
	switch kind {
	case app.EventRoundStarted:
		return OpRoundStarted
	case app.EventCardPeeked:
		return OpCardPeeked
	case app.EventPeekFinished:
		return OpPeekFinished
	case app.EventPlayBegan:
		return OpPlayBegan
	case app.EventCardDrawn:
		return OpCardDrawn
	case app.EventDrawRevealed:
		return OpDrawRevealed
	case app.EventDeckRecycled:
		return OpDeckRecycled
	case app.EventCardPlaced:
		return OpCardPlaced
	case app.EventDrawDiscarded:
		return OpDrawDiscarded
	case app.EventMatchResolved:
		return OpMatchResolved
	case app.EventCardSpied:
		return OpCardSpied
	case app.EventCardsSwapped:
		return OpCardsSwapped
	case app.EventPabloCalled:
		return OpPabloCalled
	case app.EventTurnEnded:
		return OpTurnEnded
	case app.EventRoundScored:
		return OpRoundScored
	case app.EventRoundAborted:
		return OpRoundAborted
	default:
		return 0
	}
}
