package bot

import (
	"fmt"

	"github.com/supplanter-wood/pablo/internal/domain"
)

// GoodBot is the baseline strategy. It peeks its first slots, draws from the
// discard only when the top card is cheap, replaces its worst known card,
// matches only on certain knowledge and calls Pablo once its whole grid is
// known and low.
type GoodBot struct {
	Tuning Tuning
}

func (b *GoodBot) NextAction(g *domain.GameState, playerID string) (Action, error) {
	p, ok := g.Players[playerID]
	if !ok {
		return Action{}, fmt.Errorf("bot %s is not seated", playerID)
	}

	if g.Phase == domain.PhasePeek {
		return b.peekAction(g, p), nil
	}
	if !g.Phase.TurnTaking() || g.CurrentPlayerID() != playerID || g.Turn == nil {
		return Action{Kind: ActionWait}, nil
	}

	t := g.Turn
	if t.TrickArmedFor(playerID) {
		return b.trickAction(g, p), nil
	}
	if t.DrawnCard != nil {
		if slot, ok := b.placement(g, p, t.DrawnCard); ok {
			return Action{Kind: ActionPlace, Slot: slot}, nil
		}
		return Action{Kind: ActionDiscard}, nil
	}
	if t.MatchWindowOpen {
		if t.MatchAttempts < g.Rules.MatchAttemptsPerTurn {
			if slot, ok := b.matchCandidate(g, p); ok {
				return Action{Kind: ActionMatch, Slot: slot}, nil
			}
		}
		return Action{Kind: ActionEndTurn}, nil
	}
	if t.DrawSource != "" {
		// Draw already resolved this turn (for example a spent trick).
		return Action{Kind: ActionEndTurn}, nil
	}

	// Turn start: call or draw.
	if b.shouldCallPablo(g, p) {
		return Action{Kind: ActionCallPablo}, nil
	}
	return Action{Kind: ActionDraw, Source: b.drawSource(g, p)}, nil
}

func (b *GoodBot) peekAction(g *domain.GameState, p *domain.Player) Action {
	if p.PeekDone {
		return Action{Kind: ActionWait}
	}
	if p.PeeksUsed < g.Rules.InitialPeeks && p.PeeksUsed < p.GridSize() {
		return Action{Kind: ActionPeek, Slot: p.PeeksUsed}
	}
	return Action{Kind: ActionCompletePeek}
}

// knownValue returns a grid card's value when the bot may legitimately use
// it.
func knownValue(p *domain.Player, slot domain.Slot) (int, bool) {
	if slot.Empty() {
		return 0, false
	}
	if slot.Card.FaceUp || p.Knows(slot.Card.ID) {
		return slot.Card.Value, true
	}
	return 0, false
}

// worstKnown finds the bot's highest-valued known card.
func worstKnown(p *domain.Player) (slot, value int, ok bool) {
	value = -1
	for i, s := range p.Grid {
		if v, known := knownValue(p, s); known && v > value {
			slot, value, ok = i, v, true
		}
	}
	return slot, value, ok
}

func (b *GoodBot) drawSource(g *domain.GameState, p *domain.Player) domain.DrawSource {
	top := g.Discard.Top()
	if top == nil || top.Value > b.Tuning.DiscardTakeMax {
		return domain.SourceDeck
	}
	if _, worst, ok := worstKnown(p); ok && worst > top.Value {
		return domain.SourceDiscard
	}
	return domain.SourceDeck
}

func (b *GoodBot) placement(g *domain.GameState, p *domain.Player, drawn *domain.Card) (int, bool) {
	if slot, worst, ok := worstKnown(p); ok && drawn.Value < worst {
		return slot, true
	}
	if drawn.Value <= b.Tuning.GambleValue {
		for i, s := range p.Grid {
			if _, known := knownValue(p, s); !known && !s.Empty() {
				return i, true
			}
		}
	}
	return 0, false
}

func (b *GoodBot) matchCandidate(g *domain.GameState, p *domain.Player) (int, bool) {
	top := g.Discard.Top()
	if top == nil {
		return 0, false
	}
	for i, s := range p.Grid {
		if s.Empty() {
			continue
		}
		if _, known := knownValue(p, s); known && s.Card.Rank == top.Rank {
			return i, true
		}
	}
	return 0, false
}

func (b *GoodBot) shouldCallPablo(g *domain.GameState, p *domain.Player) bool {
	if g.Phase != domain.PhasePlay || g.PabloCalled() {
		return false
	}
	sum, unknown := 0, 0
	for _, s := range p.Grid {
		if s.Empty() {
			continue
		}
		if v, known := knownValue(p, s); known {
			sum += v
		} else {
			unknown++
		}
	}
	if unknown > b.Tuning.CallWithUnknowns {
		return false
	}
	return sum+unknown*b.Tuning.UnknownEstimate <= b.Tuning.CallThreshold
}

func (b *GoodBot) trickAction(g *domain.GameState, p *domain.Player) Action {
	switch g.Turn.ActiveTrick {
	case domain.TrickSpy:
		// Learning an own unknown card beats learning an opponent's.
		for i, s := range p.Grid {
			if s.Empty() {
				continue
			}
			if _, known := knownValue(p, s); !known {
				return Action{Kind: ActionSpy, TargetID: p.ID, TargetSlot: i}
			}
		}
		if target, slot, ok := firstOpponentSlot(g, p.ID); ok {
			return Action{Kind: ActionSpy, TargetID: target, TargetSlot: slot}
		}
	case domain.TrickSwap:
		own, _, ok := worstKnown(p)
		if !ok {
			break
		}
		if target, slot, tok := firstOpponentSlot(g, p.ID); tok {
			return Action{Kind: ActionSwap, Slot: own, TargetID: target, TargetSlot: slot}
		}
	}
	// No useful target; forfeit the trick and move on.
	return Action{Kind: ActionEndTurn}
}

func firstOpponentSlot(g *domain.GameState, selfID string) (playerID string, slot int, ok bool) {
	for _, other := range g.SeatedPlayers() {
		if other.ID == selfID {
			continue
		}
		for i, s := range other.Grid {
			if !s.Empty() {
				return other.ID, i, true
			}
		}
	}
	return "", 0, false
}
