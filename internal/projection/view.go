// Package projection derives the redacted, observer-specific public view
// from a room's hidden truth. Project is a pure function of (state,
// observer): it allocates a fresh value on every call and never receives or
// returns structures shared with the engine, so a view computed for one
// observer can never bleed into another's.
package projection

import "github.com/supplanter-wood/pablo/internal/domain"

// SlotView is one grid position as an observer may see it. When Known is
// false only the stable placeholder id is carried, so clients can render a
// card back without learning its identity.
type SlotView struct {
	PlaceholderID string `json:"placeholderId"`
	Empty         bool   `json:"empty,omitempty"`
	Known         bool   `json:"known,omitempty"`
	Rank          string `json:"rank,omitempty"`
	Suit          string `json:"suit,omitempty"`
	Value         int    `json:"value,omitempty"`
}

// CardFaceView is a fully revealed card (discard top, own staged draw).
type CardFaceView struct {
	Rank  string `json:"rank"`
	Suit  string `json:"suit"`
	Value int    `json:"value"`
}

// PlayerView is one seat as an observer may see it.
type PlayerView struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Seat           int        `json:"seat"`
	Connected      bool       `json:"connected"`
	HasCalledPablo bool       `json:"hasCalledPablo"`
	IsTurn         bool       `json:"isTurn"`
	GridSize       int        `json:"gridSize"`
	Grid           []SlotView `json:"grid"`
	TotalScore     int        `json:"totalScore"`
	RoundScore     *int       `json:"roundScore,omitempty"`
}

// DiscardView exposes the discard pile: top identity plus count. Discard
// cards are face-up by construction, so the top is always public.
type DiscardView struct {
	Count int           `json:"count"`
	Top   *CardFaceView `json:"top,omitempty"`
}

// RoundView exposes the public round context. Hidden round fields (deck
// order, seeds) never appear here.
type RoundView struct {
	CurrentTurnID       string   `json:"currentTurnId,omitempty"`
	TurnOrder           []string `json:"turnOrder,omitempty"`
	PabloCallerID       string   `json:"pabloCallerId,omitempty"`
	FinalTurnsRemaining *int     `json:"finalTurnsRemaining,omitempty"`
}

// View is the complete public projection for one observer.
type View struct {
	ObserverID  string       `json:"observerId"`
	Phase       domain.Phase `json:"phase"`
	RoundNumber int          `json:"roundNumber"`
	DeckCount   int          `json:"deckCount"`
	Discard     DiscardView  `json:"discard"`
	Players     []PlayerView `json:"players"`
	Round       RoundView    `json:"round"`
	// DrawnCard is set only when the observer is the turn holder with a
	// staged draw; no other observer ever sees it.
	DrawnCard *CardFaceView `json:"drawnCard,omitempty"`
}

// Self returns the observer's own player view, or nil for spectators.
func (v View) Self() *PlayerView {
	for i := range v.Players {
		if v.Players[i].ID == v.ObserverID {
			return &v.Players[i]
		}
	}
	return nil
}
