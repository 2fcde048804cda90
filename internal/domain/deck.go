package domain

import (
	"errors"
	"math/rand"
)

// ErrDeckExhausted is returned by Draw when no cards remain. Callers recover
// by reshuffling the discard pile (minus its top card) back into the deck;
// if the discard cannot cover it either, the round is unrecoverable.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is the ordered face-down draw pile. Cards are drawn from the end of
// the slice. The shuffle is a deterministic permutation of Seed so the same
// seed always reproduces the same order.
type Deck struct {
	Cards     []*Card
	Seed      int64
	DrawCount int
}

// NewDeck builds a full shuffled deck for the given rule table.
func NewDeck(seed int64, rules Rules) *Deck {
	cards := make([]*Card, 0, rules.DeckSize())
	for _, suit := range StandardSuits {
		for _, rank := range StandardRanks {
			cards = append(cards, NewCard(rank, suit, rules.ValueOf(rank)))
		}
	}
	for i := 0; i < rules.JokersPerDeck; i++ {
		cards = append(cards, NewCard(RankJoker, SuitJoker, rules.ValueOf(RankJoker)))
	}

	d := &Deck{Cards: cards, Seed: seed}
	d.shuffle(rand.New(rand.NewSource(seed)))
	return d
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (*Card, error) {
	if len(d.Cards) == 0 {
		return nil, ErrDeckExhausted
	}
	card := d.Cards[len(d.Cards)-1]
	d.Cards = d.Cards[:len(d.Cards)-1]
	d.DrawCount++
	return card, nil
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.Cards)
}

// ReshuffleFromDiscard moves every discard card except the current top back
// into the deck and reshuffles. The permutation is derived from the round
// seed and the running draw counter, so replays stay deterministic. Returns
// the number of cards recovered.
func (d *Deck) ReshuffleFromDiscard(discard *Discard) int {
	if len(discard.Cards) <= 1 {
		return 0
	}
	recovered := discard.Cards[:len(discard.Cards)-1]
	top := discard.Cards[len(discard.Cards)-1]

	for _, c := range recovered {
		c.FaceUp = false
		c.ClearReveals()
		c.moveTo(LocationDeck, "")
		d.Cards = append(d.Cards, c)
	}
	discard.Cards = []*Card{top}

	d.shuffle(rand.New(rand.NewSource(d.Seed + int64(d.DrawCount))))
	return len(recovered)
}

func (d *Deck) shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Discard is the ordered face-up pile. The last element is the public top.
type Discard struct {
	Cards []*Card
}

// Push places a card on top of the pile face-up.
func (p *Discard) Push(card *Card) {
	card.FaceUp = true
	card.moveTo(LocationDiscard, "")
	p.Cards = append(p.Cards, card)
}

// PopTop removes and returns the top card, or nil when empty.
func (p *Discard) PopTop() *Card {
	if len(p.Cards) == 0 {
		return nil
	}
	card := p.Cards[len(p.Cards)-1]
	p.Cards = p.Cards[:len(p.Cards)-1]
	return card
}

// Top returns the top card without removing it, or nil when empty.
func (p *Discard) Top() *Card {
	if len(p.Cards) == 0 {
		return nil
	}
	return p.Cards[len(p.Cards)-1]
}

// Len returns the number of discarded cards.
func (p *Discard) Len() int {
	return len(p.Cards)
}
