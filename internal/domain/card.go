package domain

import "github.com/google/uuid"

// Rank identifies a card rank.
type Rank string

const (
	RankAce   Rank = "A"
	Rank2     Rank = "2"
	Rank3     Rank = "3"
	Rank4     Rank = "4"
	Rank5     Rank = "5"
	Rank6     Rank = "6"
	Rank7     Rank = "7"
	Rank8     Rank = "8"
	Rank9     Rank = "9"
	Rank10    Rank = "10"
	RankJack  Rank = "J"
	RankQueen Rank = "Q"
	RankKing  Rank = "K"
	RankJoker Rank = "Joker"
)

// Suit identifies a card suit.
type Suit string

const (
	SuitSpades   Suit = "S"
	SuitHearts   Suit = "H"
	SuitDiamonds Suit = "D"
	SuitClubs    Suit = "C"
	// SuitJoker marks the suitless joker cards.
	SuitJoker Suit = "X"
)

// StandardRanks lists the non-joker ranks in deal order.
var StandardRanks = []Rank{
	RankAce, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7,
	Rank8, Rank9, Rank10, RankJack, RankQueen, RankKing,
}

// StandardSuits lists the four suits.
var StandardSuits = []Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

// Location tracks which zone currently holds a card. A card is in exactly
// one zone at a time.
type Location string

const (
	LocationDeck    Location = "deck"
	LocationDiscard Location = "discard"
	LocationGrid    Location = "grid"
)

// Card is a single hidden-truth card. Identity (ID) is stable for the life
// of a round; ownership and location change as the card moves between zones.
type Card struct {
	ID       string
	Rank     Rank
	Suit     Suit
	Value    int
	FaceUp   bool
	OwnerID  string // empty while in deck or discard
	Location Location

	// RevealedTo holds observer ids granted temporary visibility this turn.
	// Distinct from FaceUp, which is permanent and public.
	RevealedTo map[string]struct{}
}

// NewCard creates a face-down card in the deck zone.
func NewCard(rank Rank, suit Suit, value int) *Card {
	return &Card{
		ID:         uuid.NewString(),
		Rank:       rank,
		Suit:       suit,
		Value:      value,
		Location:   LocationDeck,
		RevealedTo: make(map[string]struct{}),
	}
}

// RevealTo grants an observer temporary visibility of the card.
func (c *Card) RevealTo(observerID string) {
	c.RevealedTo[observerID] = struct{}{}
}

// RevealedToObserver reports whether the observer currently has temporary
// visibility of the card.
func (c *Card) RevealedToObserver(observerID string) bool {
	_, ok := c.RevealedTo[observerID]
	return ok
}

// ClearReveals drops all temporary visibility grants. Called at turn end so
// stale reveals never leak across turns.
func (c *Card) ClearReveals() {
	for k := range c.RevealedTo {
		delete(c.RevealedTo, k)
	}
}

// moveTo reassigns the card's zone and owner in one step.
func (c *Card) moveTo(loc Location, ownerID string) {
	c.Location = loc
	c.OwnerID = ownerID
}
