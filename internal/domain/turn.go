package domain

// DrawSource identifies where a turn's card was drawn from.
type DrawSource string

const (
	SourceDeck    DrawSource = "deck"
	SourceDiscard DrawSource = "discard"
)

// TurnContext is the transient bookkeeping for one player's turn. It is
// created when the turn starts and discarded when the turn completes; it is
// never persisted, so stale per-turn reveals cannot leak across turns.
type TurnContext struct {
	PlayerID string

	DrawSource DrawSource
	// DrawnCard is staged after a draw and before placement. It belongs to
	// the drawer but sits in no zone slice until resolved.
	DrawnCard *Card

	ReplacedSlots []int

	// Match window state. The window opens when the turn's first card
	// reaches the discard pile and closes at turn end or after a success.
	MatchWindowOpen bool
	MatchAttempts   int
	MatchValid      bool

	// Trick armed by a successful match on a trick rank.
	ActiveTrick TrickKind
	TrickHolder string
	TrickTarget TrickTarget

	// EphemeralReveals maps observer id to card ids temporarily revealed to
	// them this turn.
	EphemeralReveals map[string]map[string]struct{}

	Complete bool
}

// TrickTarget records which card a trick acted on, for the audit trail.
type TrickTarget struct {
	PlayerID string
	Slot     int
}

// NewTurnContext starts a fresh turn for the given player.
func NewTurnContext(playerID string) *TurnContext {
	return &TurnContext{
		PlayerID:         playerID,
		EphemeralReveals: make(map[string]map[string]struct{}),
	}
}

// Reveal grants the observer temporary visibility of a card for the rest of
// the turn.
func (t *TurnContext) Reveal(observerID string, card *Card) {
	set, ok := t.EphemeralReveals[observerID]
	if !ok {
		set = make(map[string]struct{})
		t.EphemeralReveals[observerID] = set
	}
	set[card.ID] = struct{}{}
	card.RevealTo(observerID)
}

// RevealedTo reports whether the observer was granted visibility of the card
// id during this turn.
func (t *TurnContext) RevealedTo(observerID, cardID string) bool {
	set, ok := t.EphemeralReveals[observerID]
	if !ok {
		return false
	}
	_, ok = set[cardID]
	return ok
}

// TrickArmedFor reports whether the player holds an unused trick this turn.
func (t *TurnContext) TrickArmedFor(playerID string) bool {
	return t.ActiveTrick != TrickNone && t.TrickHolder == playerID
}
