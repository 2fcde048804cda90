package domain

// Phase represents the lifecycle stage of a Pablo round.
type Phase string

const (
	// PhaseLobby is the pre-round state where players can join and leave.
	PhaseLobby Phase = "lobby"
	// PhaseDeal is the transient state while cards are dealt.
	PhaseDeal Phase = "deal"
	// PhasePeek is the pre-play window where players peek at their own cards.
	PhasePeek Phase = "peek"
	// PhasePlay is the active turn-taking state.
	PhasePlay Phase = "play"
	// PhaseFinalTurn is the countdown after a Pablo call.
	PhaseFinalTurn Phase = "finalTurn"
	// PhaseScoring is the state where round scores are resolved.
	PhaseScoring Phase = "scoring"
	// PhaseGameOver is terminal for the room's match series.
	PhaseGameOver Phase = "gameOver"
)

// InRound reports whether the phase is inside an active round, i.e. cards
// have been dealt and not yet collected.
func (p Phase) InRound() bool {
	switch p {
	case PhaseDeal, PhasePeek, PhasePlay, PhaseFinalTurn, PhaseScoring:
		return true
	}
	return false
}

// TurnTaking reports whether the phase accepts turn actions.
func (p Phase) TurnTaking() bool {
	return p == PhasePlay || p == PhaseFinalTurn
}
