package domain

import (
	"fmt"
	"sort"
)

// RoundContext tracks turn order and round progression.
type RoundContext struct {
	TurnOrder        []string
	CurrentTurnIndex int

	// PabloCallerID is empty until a player calls Pablo.
	PabloCallerID string
	// FinalTurnsRemaining is -1 until a Pablo call starts the countdown.
	FinalTurnsRemaining int

	Seed        int64
	DealerIndex int
}

// GameState is the authoritative hidden truth for one room. Only the engine
// service mutates it; everything clients see is derived by projection.
type GameState struct {
	RoundNumber int
	Phase       Phase

	Deck    *Deck
	Discard *Discard
	Players map[string]*Player

	Round RoundContext
	// Turn is nil outside an active turn.
	Turn *TurnContext

	Rules Rules
	Audit AuditLog
}

// NewGameState creates an empty lobby-phase room with the given rule table.
func NewGameState(rules Rules) *GameState {
	return &GameState{
		Phase:   PhaseLobby,
		Deck:    &Deck{},
		Discard: &Discard{},
		Players: make(map[string]*Player),
		Round:   RoundContext{FinalTurnsRemaining: -1},
		Rules:   rules,
	}
}

// CurrentPlayerID returns the acting player's id, or "" outside a round.
func (g *GameState) CurrentPlayerID() string {
	if len(g.Round.TurnOrder) == 0 {
		return ""
	}
	return g.Round.TurnOrder[g.Round.CurrentTurnIndex]
}

// SeatedPlayers returns the players ordered by seat.
func (g *GameState) SeatedPlayers() []*Player {
	out := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seat < out[j].Seat })
	return out
}

// NextFreeSeat returns the lowest unoccupied seat index.
func (g *GameState) NextFreeSeat() int {
	taken := make(map[int]bool, len(g.Players))
	for _, p := range g.Players {
		taken[p.Seat] = true
	}
	for seat := 0; ; seat++ {
		if !taken[seat] {
			return seat
		}
	}
}

// PabloCalled reports whether the final-turn countdown has been triggered.
func (g *GameState) PabloCalled() bool {
	return g.Round.PabloCallerID != ""
}

// CheckConservation verifies the core invariant: every card id appears in
// exactly one of deck, discard, staged draw, or one player's grid, with a
// location field agreeing with the zone that holds it. During an active
// round it also verifies no card was lost against the rule table's deck
// size. Intended for tests and debug assertions after every operation.
func (g *GameState) CheckConservation() error {
	seen := make(map[string]string)
	note := func(c *Card, zone string, loc Location) error {
		if prev, dup := seen[c.ID]; dup {
			return fmt.Errorf("card %s (%s%s) in both %s and %s", c.ID, c.Rank, c.Suit, prev, zone)
		}
		seen[c.ID] = zone
		if c.Location != loc {
			return fmt.Errorf("card %s in %s but location says %s", c.ID, zone, c.Location)
		}
		return nil
	}

	for _, c := range g.Deck.Cards {
		if err := note(c, "deck", LocationDeck); err != nil {
			return err
		}
		if c.OwnerID != "" {
			return fmt.Errorf("deck card %s has owner %s", c.ID, c.OwnerID)
		}
	}
	for _, c := range g.Discard.Cards {
		if err := note(c, "discard", LocationDiscard); err != nil {
			return err
		}
		if !c.FaceUp {
			return fmt.Errorf("discard card %s is face-down", c.ID)
		}
	}
	for _, p := range g.Players {
		for i, s := range p.Grid {
			if s.Empty() {
				continue
			}
			if err := note(s.Card, "grid:"+p.ID, LocationGrid); err != nil {
				return err
			}
			if s.Card.OwnerID != p.ID {
				return fmt.Errorf("grid card %s in slot %d of %s owned by %q", s.Card.ID, i, p.ID, s.Card.OwnerID)
			}
		}
	}
	if g.Turn != nil && g.Turn.DrawnCard != nil {
		if err := note(g.Turn.DrawnCard, "staged", LocationGrid); err != nil {
			return err
		}
	}

	if g.Phase.InRound() {
		if want := g.Rules.DeckSize(); len(seen) != want {
			return fmt.Errorf("card count = %d, want %d", len(seen), want)
		}
	}
	return nil
}
