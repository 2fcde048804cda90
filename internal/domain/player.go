package domain

// Slot is one fixed position in a player's grid. A slot is either occupied
// by a card or a hole left behind by a successful match; slot indices are
// stable identifiers referenced by place, match and trick actions.
type Slot struct {
	Card *Card
}

// Empty reports whether the slot is a hole.
func (s Slot) Empty() bool {
	return s.Card == nil
}

// Player holds the hidden-truth state for one seat in the room.
type Player struct {
	ID        string
	Name      string
	Seat      int
	Connected bool

	HasCalledPablo bool
	Grid           []Slot

	// KnownCards holds card ids this player has legitimately learned, by
	// peeking, placing their own draw, or spying.
	KnownCards map[string]struct{}

	PeeksUsed int
	PeekDone  bool

	TotalScore int
	// RoundScore is nil until scoring resolves for the round.
	RoundScore *int
}

// NewPlayer creates a connected player with no grid.
func NewPlayer(id, name string, seat int) *Player {
	return &Player{
		ID:         id,
		Name:       name,
		Seat:       seat,
		Connected:  true,
		KnownCards: make(map[string]struct{}),
	}
}

// GridSize returns the number of occupied slots.
func (p *Player) GridSize() int {
	n := 0
	for _, s := range p.Grid {
		if !s.Empty() {
			n++
		}
	}
	return n
}

// Learn records a card id in the player's known set.
func (p *Player) Learn(cardID string) {
	p.KnownCards[cardID] = struct{}{}
}

// Knows reports whether the player has learned the card's identity.
func (p *Player) Knows(cardID string) bool {
	_, ok := p.KnownCards[cardID]
	return ok
}

// ValidSlot reports whether idx is within the player's grid.
func (p *Player) ValidSlot(idx int) bool {
	return idx >= 0 && idx < len(p.Grid)
}

// GridValue sums the scoring values of the occupied slots.
func (p *Player) GridValue() int {
	total := 0
	for _, s := range p.Grid {
		if !s.Empty() {
			total += s.Card.Value
		}
	}
	return total
}

// ResetForRound clears per-round transient state while preserving identity,
// seat, connection and cumulative score.
func (p *Player) ResetForRound() {
	p.HasCalledPablo = false
	p.Grid = nil
	p.KnownCards = make(map[string]struct{})
	p.PeeksUsed = 0
	p.PeekDone = false
	p.RoundScore = nil
}
