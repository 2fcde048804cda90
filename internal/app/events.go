package app

import "github.com/supplanter-wood/pablo/internal/domain"

// EventKind identifies emitted engine events for adapter dispatch.
type EventKind string

const (
	EventRoundStarted  EventKind = "round_started"
	EventCardPeeked    EventKind = "card_peeked"
	EventPeekFinished  EventKind = "peek_finished"
	EventPlayBegan     EventKind = "play_began"
	EventCardDrawn     EventKind = "card_drawn"
	EventDrawRevealed  EventKind = "draw_revealed"
	EventDeckRecycled  EventKind = "deck_recycled"
	EventCardPlaced    EventKind = "card_placed"
	EventDrawDiscarded EventKind = "draw_discarded"
	EventMatchResolved EventKind = "match_resolved"
	EventCardSpied     EventKind = "card_spied"
	EventCardsSwapped  EventKind = "cards_swapped"
	EventPabloCalled   EventKind = "pablo_called"
	EventTurnEnded     EventKind = "turn_ended"
	EventRoundScored   EventKind = "round_scored"
	EventRoundAborted  EventKind = "round_aborted"
)

// Event is an engine event with optional targeted recipients. Empty
// Recipients means broadcast; payloads carrying hidden card identity are
// always targeted.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string
}

// CardFact is a revealed card identity inside a targeted payload.
type CardFact struct {
	ID    string      `json:"id"`
	Rank  domain.Rank `json:"rank"`
	Suit  domain.Suit `json:"suit"`
	Value int         `json:"value"`
}

func cardFact(c *domain.Card) CardFact {
	return CardFact{ID: c.ID, Rank: c.Rank, Suit: c.Suit, Value: c.Value}
}

type RoundStartedPayload struct {
	RoundNumber int      `json:"roundNumber"`
	TurnOrder   []string `json:"turnOrder"`
	DealerSeat  int      `json:"dealerSeat"`
}

// CardPeekedPayload is private to the peeking player.
type CardPeekedPayload struct {
	PlayerID string   `json:"playerId"`
	Slot     int      `json:"slot"`
	Card     CardFact `json:"card"`
}

type PeekFinishedPayload struct {
	PlayerID string `json:"playerId"`
}

type PlayBeganPayload struct {
	FirstTurnID string `json:"firstTurnId"`
}

// CardDrawnPayload is public; it names the source but not the card.
type CardDrawnPayload struct {
	PlayerID string            `json:"playerId"`
	Source   domain.DrawSource `json:"source"`
}

// DrawRevealedPayload is private to the drawer.
type DrawRevealedPayload struct {
	PlayerID string   `json:"playerId"`
	Card     CardFact `json:"card"`
}

type DeckRecycledPayload struct {
	Recovered int `json:"recovered"`
}

// CardPlacedPayload is public; the displaced card identity is public by
// construction because it lands on the discard pile.
type CardPlacedPayload struct {
	PlayerID  string   `json:"playerId"`
	Slot      int      `json:"slot"`
	Displaced CardFact `json:"displaced"`
}

type DrawDiscardedPayload struct {
	PlayerID string   `json:"playerId"`
	Card     CardFact `json:"card"`
}

type MatchResolvedPayload struct {
	PlayerID string           `json:"playerId"`
	Slot     int              `json:"slot"`
	Valid    bool             `json:"valid"`
	Trick    domain.TrickKind `json:"trick,omitempty"`
	// Discarded is set on a valid match: the grid card that left the grid.
	Discarded *CardFact `json:"discarded,omitempty"`
}

// CardSpiedPayload is private to the spying player.
type CardSpiedPayload struct {
	PlayerID string   `json:"playerId"`
	TargetID string   `json:"targetId"`
	Slot     int      `json:"slot"`
	Card     CardFact `json:"card"`
}

// CardsSwappedPayload is public; identities stay hidden, only positions move.
type CardsSwappedPayload struct {
	PlayerID string `json:"playerId"`
	OwnSlot  int    `json:"ownSlot"`
	TargetID string `json:"targetId"`
	Slot     int    `json:"slot"`
}

type PabloCalledPayload struct {
	CallerID            string `json:"callerId"`
	FinalTurnsRemaining int    `json:"finalTurnsRemaining"`
}

type TurnEndedPayload struct {
	PlayerID            string `json:"playerId"`
	NextTurnID          string `json:"nextTurnId"`
	FinalTurnsRemaining int    `json:"finalTurnsRemaining"`
}

// ScoreLine is one player's scoring result.
type ScoreLine struct {
	PlayerID   string `json:"playerId"`
	RoundScore int    `json:"roundScore"`
	TotalScore int    `json:"totalScore"`
}

type RoundScoredPayload struct {
	Scores    []ScoreLine `json:"scores"`
	WinnerIDs []string    `json:"winnerIds"`
	GameOver  bool        `json:"gameOver"`
}

type RoundAbortedPayload struct {
	Reason string `json:"reason"`
}
