package projection

import (
	"fmt"

	"github.com/supplanter-wood/pablo/internal/domain"
)

// Project maps hidden state plus an observer identity to that observer's
// public view. A grid card's identity is revealed only when it is face-up,
// or the observer has legitimately learned it (knownCards), or it was
// temporarily revealed to them during the current turn. Everything else is
// an opaque placeholder.
//
// Project must be recomputed per observer per broadcast tick and its result
// must never be cached across observers.
func Project(g *domain.GameState, observerID string) View {
	view := View{
		ObserverID:  observerID,
		Phase:       g.Phase,
		RoundNumber: g.RoundNumber,
		DeckCount:   g.Deck.Len(),
		Discard:     DiscardView{Count: g.Discard.Len()},
	}

	if top := g.Discard.Top(); top != nil {
		view.Discard.Top = &CardFaceView{Rank: string(top.Rank), Suit: string(top.Suit), Value: top.Value}
	}

	currentID := g.CurrentPlayerID()
	if g.Phase.TurnTaking() {
		view.Round.CurrentTurnID = currentID
	}
	if len(g.Round.TurnOrder) > 0 {
		view.Round.TurnOrder = append([]string(nil), g.Round.TurnOrder...)
	}
	if g.PabloCalled() {
		view.Round.PabloCallerID = g.Round.PabloCallerID
		remaining := g.Round.FinalTurnsRemaining
		view.Round.FinalTurnsRemaining = &remaining
	}

	observer := g.Players[observerID]
	for _, p := range g.SeatedPlayers() {
		pv := PlayerView{
			ID:             p.ID,
			Name:           p.Name,
			Seat:           p.Seat,
			Connected:      p.Connected,
			HasCalledPablo: p.HasCalledPablo,
			IsTurn:         g.Phase.TurnTaking() && p.ID == currentID,
			GridSize:       p.GridSize(),
			TotalScore:     p.TotalScore,
		}
		if p.RoundScore != nil {
			rs := *p.RoundScore
			pv.RoundScore = &rs
		}
		pv.Grid = make([]SlotView, len(p.Grid))
		for i, slot := range p.Grid {
			pv.Grid[i] = projectSlot(g, observer, p, slot, i)
		}
		view.Players = append(view.Players, pv)
	}

	if g.Turn != nil && g.Turn.PlayerID == observerID && g.Turn.DrawnCard != nil {
		c := g.Turn.DrawnCard
		view.DrawnCard = &CardFaceView{Rank: string(c.Rank), Suit: string(c.Suit), Value: c.Value}
	}

	return view
}

func projectSlot(g *domain.GameState, observer *domain.Player, owner *domain.Player, slot domain.Slot, idx int) SlotView {
	sv := SlotView{PlaceholderID: placeholderID(owner.ID, idx)}
	if slot.Empty() {
		sv.Empty = true
		return sv
	}

	card := slot.Card
	visible := card.FaceUp
	if !visible && observer != nil {
		if observer.Knows(card.ID) {
			visible = true
		} else if g.Turn != nil && g.Turn.RevealedTo(observer.ID, card.ID) {
			visible = true
		}
	}
	if !visible {
		return sv
	}

	sv.Known = true
	sv.Rank = string(card.Rank)
	sv.Suit = string(card.Suit)
	sv.Value = card.Value
	return sv
}

// placeholderID is stable per (player, slot) so clients can address card
// backs across updates without identity leakage.
func placeholderID(playerID string, slot int) string {
	return fmt.Sprintf("g%s-c%d", playerID, slot)
}
