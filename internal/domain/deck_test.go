package domain

import "testing"

func TestNewDeckSize(t *testing.T) {
	rules := DefaultRules()
	deck := NewDeck(1, rules)
	if deck.Len() != 54 {
		t.Fatalf("deck size = %d, want 54", deck.Len())
	}

	jokers := 0
	for _, c := range deck.Cards {
		if c.Rank == RankJoker {
			jokers++
			if c.Value != 0 {
				t.Fatalf("joker value = %d, want 0", c.Value)
			}
		}
	}
	if jokers != rules.JokersPerDeck {
		t.Fatalf("jokers = %d, want %d", jokers, rules.JokersPerDeck)
	}
}

func TestNewDeckDeterministicOrder(t *testing.T) {
	rules := DefaultRules()
	a := NewDeck(42, rules)
	b := NewDeck(42, rules)

	for i := range a.Cards {
		if a.Cards[i].Rank != b.Cards[i].Rank || a.Cards[i].Suit != b.Cards[i].Suit {
			t.Fatalf("card %d differs: %s%s vs %s%s", i,
				a.Cards[i].Rank, a.Cards[i].Suit, b.Cards[i].Rank, b.Cards[i].Suit)
		}
	}

	c := NewDeck(43, rules)
	same := true
	for i := range a.Cards {
		if a.Cards[i].Rank != c.Cards[i].Rank || a.Cards[i].Suit != c.Cards[i].Suit {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("seeds 42 and 43 produced identical orders")
	}
}

func TestDrawExhaustion(t *testing.T) {
	deck := &Deck{}
	if _, err := deck.Draw(); err != ErrDeckExhausted {
		t.Fatalf("draw on empty deck error = %v, want ErrDeckExhausted", err)
	}
}

func TestReshuffleFromDiscardKeepsTop(t *testing.T) {
	rules := DefaultRules()
	deck := &Deck{Seed: 7}

	discard := &Discard{}
	below := NewCard(Rank5, SuitHearts, rules.ValueOf(Rank5))
	top := NewCard(RankKing, SuitSpades, rules.ValueOf(RankKing))
	discard.Push(below)
	discard.Push(top)

	recovered := deck.ReshuffleFromDiscard(discard)
	if recovered != 1 {
		t.Fatalf("recovered = %d, want 1", recovered)
	}
	if deck.Len() != 1 {
		t.Fatalf("deck size = %d, want 1", deck.Len())
	}
	if discard.Len() != 1 {
		t.Fatalf("discard size = %d, want 1", discard.Len())
	}
	if discard.Top() != top {
		t.Fatalf("discard top changed after reshuffle")
	}
	if deck.Cards[0] != below {
		t.Fatalf("reshuffled card is not the former below-top card")
	}
	if deck.Cards[0].FaceUp {
		t.Fatalf("reshuffled card should be face-down again")
	}
	if deck.Cards[0].Location != LocationDeck {
		t.Fatalf("reshuffled card location = %s, want deck", deck.Cards[0].Location)
	}
}

func TestReshuffleFromDiscardNothingToRecover(t *testing.T) {
	deck := &Deck{}
	discard := &Discard{}
	discard.Push(NewCard(Rank2, SuitClubs, 2))

	if n := deck.ReshuffleFromDiscard(discard); n != 0 {
		t.Fatalf("recovered = %d, want 0", n)
	}
	if discard.Len() != 1 {
		t.Fatalf("discard size = %d, want 1", discard.Len())
	}
}
