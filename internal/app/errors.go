package app

import "errors"

// Engine errors. Every operation validates its preconditions and fails with
// one of these rather than silently no-opping; all of them are deterministic
// given the same state and input. The adapter maps them to transport codes,
// the engine never produces user-facing strings.
var (
	// Capacity errors, rejected at join time.
	ErrRoomFull        = errors.New("room full")
	ErrDuplicatePlayer = errors.New("player already seated")

	// Rule violations, rejected with state unchanged.
	ErrWrongPhase         = errors.New("operation not valid in current phase")
	ErrNotYourTurn        = errors.New("actor is not the acting player")
	ErrTooFewPlayers      = errors.New("not enough players to start")
	ErrRemoveDuringRound  = errors.New("players can only be removed in lobby")
	ErrCardAlreadyDrawn   = errors.New("a drawn card is already staged")
	ErrNoDrawnCard        = errors.New("no drawn card staged")
	ErrPabloAlreadyCalled = errors.New("pablo already called this round")
	ErrMatchWindowClosed  = errors.New("no match window open")
	ErrMatchLimitReached  = errors.New("match attempt limit reached")
	ErrTrickNotArmed      = errors.New("no trick armed for actor")
	ErrWrongTrick         = errors.New("armed trick does not allow this action")
	ErrPeekExhausted      = errors.New("no initial peeks remaining")

	// Validation errors, malformed or out-of-range input.
	ErrUnknownPlayer = errors.New("player not found")
	ErrInvalidSlot   = errors.New("slot index out of range")
	ErrEmptySlot     = errors.New("slot is empty")
	ErrInvalidSource = errors.New("draw source unavailable")

	// Resource exhaustion, fatal to the current round.
	ErrRoundUnrecoverable = errors.New("deck and discard exhausted")
)

// ErrorKind classifies engine errors per the handling taxonomy.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindRuleViolation
	KindCapacity
	KindResourceExhaustion
)

// Classify maps an engine error to its taxonomy kind.
func Classify(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrUnknownPlayer),
		errors.Is(err, ErrInvalidSlot),
		errors.Is(err, ErrEmptySlot),
		errors.Is(err, ErrInvalidSource):
		return KindValidation
	case errors.Is(err, ErrRoomFull), errors.Is(err, ErrDuplicatePlayer):
		return KindCapacity
	case errors.Is(err, ErrRoundUnrecoverable):
		return KindResourceExhaustion
	case errors.Is(err, ErrWrongPhase),
		errors.Is(err, ErrNotYourTurn),
		errors.Is(err, ErrTooFewPlayers),
		errors.Is(err, ErrRemoveDuringRound),
		errors.Is(err, ErrCardAlreadyDrawn),
		errors.Is(err, ErrNoDrawnCard),
		errors.Is(err, ErrPabloAlreadyCalled),
		errors.Is(err, ErrMatchWindowClosed),
		errors.Is(err, ErrMatchLimitReached),
		errors.Is(err, ErrTrickNotArmed),
		errors.Is(err, ErrWrongTrick),
		errors.Is(err, ErrPeekExhausted):
		return KindRuleViolation
	}
	return KindUnknown
}
