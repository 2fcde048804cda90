package bot

import (
	"github.com/supplanter-wood/pablo/internal/domain"
)

// SmartBot layers opponent awareness on top of GoodBot: it spies the leader,
// swaps its worst card onto whoever is closest to winning, and calls Pablo
// on expectation rather than certainty.
type SmartBot struct {
	GoodBot
}

func (b *SmartBot) NextAction(g *domain.GameState, playerID string) (Action, error) {
	p, ok := g.Players[playerID]
	if ok && g.Phase.TurnTaking() && g.Turn != nil && g.Turn.TrickArmedFor(playerID) {
		return b.trickAction(g, p), nil
	}
	return b.GoodBot.NextAction(g, playerID)
}

func (b *SmartBot) trickAction(g *domain.GameState, p *domain.Player) Action {
	switch g.Turn.ActiveTrick {
	case domain.TrickSpy:
		for i, s := range p.Grid {
			if s.Empty() {
				continue
			}
			if _, known := knownValue(p, s); !known {
				return Action{Kind: ActionSpy, TargetID: p.ID, TargetSlot: i}
			}
		}
		if target, slot, ok := b.leaderSlot(g, p.ID); ok {
			return Action{Kind: ActionSpy, TargetID: target, TargetSlot: slot}
		}
	case domain.TrickSwap:
		own, _, ok := worstKnown(p)
		if !ok {
			break
		}
		if target, slot, tok := b.leaderSlot(g, p.ID); tok {
			return Action{Kind: ActionSwap, Slot: own, TargetID: target, TargetSlot: slot}
		}
	}
	return Action{Kind: ActionEndTurn}
}

// leaderSlot targets the opponent with the fewest grid cards, the one most
// likely to be about to call Pablo. The Pablo caller outranks everyone.
func (b *SmartBot) leaderSlot(g *domain.GameState, selfID string) (playerID string, slot int, ok bool) {
	var leader *domain.Player
	for _, other := range g.SeatedPlayers() {
		if other.ID == selfID {
			continue
		}
		occupied := 0
		for _, s := range other.Grid {
			if !s.Empty() {
				occupied++
			}
		}
		if occupied == 0 {
			continue
		}
		if other.ID == g.Round.PabloCallerID {
			leader = other
			break
		}
		if leader == nil || occupied < occupiedSlots(leader) {
			leader = other
		}
	}
	if leader == nil {
		return "", 0, false
	}
	for i, s := range leader.Grid {
		if !s.Empty() {
			return leader.ID, i, true
		}
	}
	return "", 0, false
}

func occupiedSlots(p *domain.Player) int {
	n := 0
	for _, s := range p.Grid {
		if !s.Empty() {
			n++
		}
	}
	return n
}
