package app

import (
	"github.com/supplanter-wood/pablo/internal/domain"
)

// Service contains the Pablo engine use-cases operating on hidden state. It
// is the only component that mutates a room's GameState; the Nakama match
// loop gives each room single-writer discipline, so the service itself holds
// no locks.
type Service struct {
	rules domain.Rules
}

// NewService constructs a Service with the given rule table.
func NewService(rules domain.Rules) *Service {
	return &Service{rules: rules}
}

// Rules exposes the rule table the service was built with.
func (s *Service) Rules() domain.Rules {
	return s.rules
}

// NewRoom creates the hidden state for a fresh room in lobby phase.
func (s *Service) NewRoom() *domain.GameState {
	return domain.NewGameState(s.rules)
}

// AddPlayer seats a new player. Valid only in lobby phase.
func (s *Service) AddPlayer(g *domain.GameState, id, name string) (*domain.Player, error) {
	if g.Phase != domain.PhaseLobby {
		return nil, ErrWrongPhase
	}
	if _, ok := g.Players[id]; ok {
		return nil, ErrDuplicatePlayer
	}
	if len(g.Players) >= s.rules.MaxPlayers {
		return nil, ErrRoomFull
	}

	p := domain.NewPlayer(id, name, g.NextFreeSeat())
	g.Players[id] = p
	g.Audit.Record("player_added", id, map[string]any{"seat": p.Seat, "name": name})
	return p, nil
}

// RemovePlayer deletes a player outright. Deletion is only permitted in
// lobby phase; mid-round departures go through MarkDisconnected so the seat,
// grid and score survive for reconnection.
func (s *Service) RemovePlayer(g *domain.GameState, id string) error {
	if _, ok := g.Players[id]; !ok {
		return ErrUnknownPlayer
	}
	if g.Phase != domain.PhaseLobby {
		return ErrRemoveDuringRound
	}
	delete(g.Players, id)
	g.Audit.Record("player_removed", id, nil)
	return nil
}

// MarkDisconnected flags a player as away without touching grid, score or
// turn order.
func (s *Service) MarkDisconnected(g *domain.GameState, id string) error {
	p, ok := g.Players[id]
	if !ok {
		return ErrUnknownPlayer
	}
	p.Connected = false
	g.Audit.Record("player_disconnected", id, nil)
	return nil
}

// MarkReconnected restores a player's connection flag.
func (s *Service) MarkReconnected(g *domain.GameState, id string) error {
	p, ok := g.Players[id]
	if !ok {
		return ErrUnknownPlayer
	}
	p.Connected = true
	g.Audit.Record("player_reconnected", id, nil)
	return nil
}

// StartRound deals a new round from a fresh seeded deck. Valid only in
// lobby phase with enough players. Turn order starts left of the dealer.
func (s *Service) StartRound(g *domain.GameState, seed int64) ([]Event, error) {
	if g.Phase != domain.PhaseLobby {
		return nil, ErrWrongPhase
	}
	if len(g.Players) < s.rules.MinPlayers {
		return nil, ErrTooFewPlayers
	}

	seated := g.SeatedPlayers()
	order := make([]string, 0, len(seated))
	start := (g.Round.DealerIndex + 1) % len(seated)
	for i := 0; i < len(seated); i++ {
		order = append(order, seated[(start+i)%len(seated)].ID)
	}

	g.Round.TurnOrder = order
	g.Round.CurrentTurnIndex = 0
	g.Round.PabloCallerID = ""
	g.Round.FinalTurnsRemaining = -1
	g.Round.Seed = seed

	g.Deck = domain.NewDeck(seed, s.rules)
	g.Discard = &domain.Discard{}
	g.Turn = nil
	g.Phase = domain.PhaseDeal
	g.Audit.Record("round_started", "", map[string]any{"round": g.RoundNumber, "seed": seed})

	if err := s.dealCards(g, order, s.rules.CardsPerPlayer); err != nil {
		return nil, err
	}

	g.Phase = domain.PhasePeek
	return []Event{{
		Kind: EventRoundStarted,
		Payload: RoundStartedPayload{
			RoundNumber: g.RoundNumber,
			TurnOrder:   order,
			DealerSeat:  g.Round.DealerIndex,
		},
	}}, nil
}

// dealCards pops perPlayer cards per player from the deck in turn order.
func (s *Service) dealCards(g *domain.GameState, playerIDs []string, perPlayer int) error {
	for _, pid := range playerIDs {
		p := g.Players[pid]
		p.Grid = make([]domain.Slot, 0, perPlayer)
		for i := 0; i < perPlayer; i++ {
			card, err := g.Deck.Draw()
			if err != nil {
				// Should not occur with a correctly sized deck for <=6 players.
				return ErrRoundUnrecoverable
			}
			card.OwnerID = pid
			card.Location = domain.LocationGrid
			p.Grid = append(p.Grid, domain.Slot{Card: card})
		}
	}
	return nil
}

// PeekCard reveals one of the peeking player's own cards to them during the
// peek phase, up to the rule table's initial peek budget.
func (s *Service) PeekCard(g *domain.GameState, playerID string, slot int) ([]Event, error) {
	if g.Phase != domain.PhasePeek {
		return nil, ErrWrongPhase
	}
	p, ok := g.Players[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if p.PeeksUsed >= s.rules.InitialPeeks {
		return nil, ErrPeekExhausted
	}
	if !p.ValidSlot(slot) {
		return nil, ErrInvalidSlot
	}
	card := p.Grid[slot].Card
	if card == nil {
		return nil, ErrEmptySlot
	}

	p.PeeksUsed++
	p.Learn(card.ID)
	if p.PeeksUsed >= s.rules.InitialPeeks {
		p.PeekDone = true
	}
	g.Audit.Record("card_peeked", playerID, map[string]any{"slot": slot})

	events := []Event{{
		Kind:       EventCardPeeked,
		Payload:    CardPeekedPayload{PlayerID: playerID, Slot: slot, Card: cardFact(card)},
		Recipients: []string{playerID},
	}}
	events = append(events, s.maybeBeginPlay(g)...)
	return events, nil
}

// CompletePeek marks a player ready before the peek budget is spent.
func (s *Service) CompletePeek(g *domain.GameState, playerID string) ([]Event, error) {
	if g.Phase != domain.PhasePeek {
		return nil, ErrWrongPhase
	}
	p, ok := g.Players[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if p.PeekDone {
		return nil, nil
	}
	p.PeekDone = true
	g.Audit.Record("peek_finished", playerID, nil)

	events := []Event{{
		Kind:    EventPeekFinished,
		Payload: PeekFinishedPayload{PlayerID: playerID},
	}}
	events = append(events, s.maybeBeginPlay(g)...)
	return events, nil
}

// maybeBeginPlay advances peek to play once every player is ready.
func (s *Service) maybeBeginPlay(g *domain.GameState) []Event {
	for _, p := range g.Players {
		if !p.PeekDone {
			return nil
		}
	}
	g.Phase = domain.PhasePlay
	g.Turn = domain.NewTurnContext(g.CurrentPlayerID())
	g.Audit.Record("play_began", g.CurrentPlayerID(), nil)
	return []Event{{
		Kind:    EventPlayBegan,
		Payload: PlayBeganPayload{FirstTurnID: g.CurrentPlayerID()},
	}}
}

// DrawCard draws from the deck or the discard top and stages the card in
// the turn context. Placement is a separate committed action so the player
// can inspect the card first. Deck exhaustion recycles the discard pile
// below its top card; if the discard cannot cover it the round is lost.
func (s *Service) DrawCard(g *domain.GameState, playerID string, source domain.DrawSource) ([]Event, error) {
	if !g.Phase.TurnTaking() {
		return nil, ErrWrongPhase
	}
	if g.CurrentPlayerID() != playerID || g.Turn == nil || g.Turn.PlayerID != playerID {
		return nil, ErrNotYourTurn
	}
	if g.Turn.DrawnCard != nil || g.Turn.DrawSource != "" {
		return nil, ErrCardAlreadyDrawn
	}

	var events []Event
	var card *domain.Card
	switch source {
	case domain.SourceDeck:
		drawn, err := g.Deck.Draw()
		if err != nil {
			recovered := g.Deck.ReshuffleFromDiscard(g.Discard)
			if recovered == 0 {
				return nil, ErrRoundUnrecoverable
			}
			g.Audit.Record("deck_recycled", "", map[string]any{"recovered": recovered})
			events = append(events, Event{
				Kind:    EventDeckRecycled,
				Payload: DeckRecycledPayload{Recovered: recovered},
			})
			drawn, err = g.Deck.Draw()
			if err != nil {
				return nil, ErrRoundUnrecoverable
			}
		}
		card = drawn
	case domain.SourceDiscard:
		card = g.Discard.PopTop()
		if card == nil {
			return nil, ErrInvalidSource
		}
		card.FaceUp = false
	default:
		return nil, ErrInvalidSource
	}

	card.OwnerID = playerID
	card.Location = domain.LocationGrid
	g.Turn.DrawSource = source
	g.Turn.DrawnCard = card
	g.Turn.Reveal(playerID, card)
	g.Audit.Record("card_drawn", playerID, map[string]any{"source": string(source)})

	events = append(events,
		Event{
			Kind:    EventCardDrawn,
			Payload: CardDrawnPayload{PlayerID: playerID, Source: source},
		},
		Event{
			Kind:       EventDrawRevealed,
			Payload:    DrawRevealedPayload{PlayerID: playerID, Card: cardFact(card)},
			Recipients: []string{playerID},
		},
	)
	return events, nil
}

// PlaceDrawnCard swaps the staged card into an occupied grid slot; the
// displaced card goes to the discard face-up, which opens the match window.
func (s *Service) PlaceDrawnCard(g *domain.GameState, playerID string, slot int) ([]Event, error) {
	if !g.Phase.TurnTaking() {
		return nil, ErrWrongPhase
	}
	if g.CurrentPlayerID() != playerID || g.Turn == nil || g.Turn.PlayerID != playerID {
		return nil, ErrNotYourTurn
	}
	card := g.Turn.DrawnCard
	if card == nil {
		return nil, ErrNoDrawnCard
	}
	p := g.Players[playerID]
	if !p.ValidSlot(slot) {
		return nil, ErrInvalidSlot
	}
	displaced := p.Grid[slot].Card
	if displaced == nil {
		// Holes earned by matching stay holes.
		return nil, ErrEmptySlot
	}

	g.Discard.Push(displaced)
	p.Grid[slot] = domain.Slot{Card: card}
	p.Learn(card.ID)

	g.Turn.DrawnCard = nil
	g.Turn.ReplacedSlots = append(g.Turn.ReplacedSlots, slot)
	s.openMatchWindow(g)
	g.Audit.Record("card_placed", playerID, map[string]any{"slot": slot})

	return []Event{{
		Kind:    EventCardPlaced,
		Payload: CardPlacedPayload{PlayerID: playerID, Slot: slot, Displaced: cardFact(displaced)},
	}}, nil
}

// DiscardDrawnCard sends the staged card straight to the discard pile,
// opening the match window.
func (s *Service) DiscardDrawnCard(g *domain.GameState, playerID string) ([]Event, error) {
	if !g.Phase.TurnTaking() {
		return nil, ErrWrongPhase
	}
	if g.CurrentPlayerID() != playerID || g.Turn == nil || g.Turn.PlayerID != playerID {
		return nil, ErrNotYourTurn
	}
	card := g.Turn.DrawnCard
	if card == nil {
		return nil, ErrNoDrawnCard
	}

	g.Discard.Push(card)
	g.Turn.DrawnCard = nil
	s.openMatchWindow(g)
	g.Audit.Record("draw_discarded", playerID, nil)

	return []Event{{
		Kind:    EventDrawDiscarded,
		Payload: DrawDiscardedPayload{PlayerID: playerID, Card: cardFact(card)},
	}}, nil
}

func (s *Service) openMatchWindow(g *domain.GameState) {
	g.Turn.MatchWindowOpen = true
	g.Turn.MatchValid = false
}

// AttemptMatch lets any seated player claim that one of their
// grid cards matches the discard top by rank. A correct match discards that
// grid card, leaving a hole, and may arm a trick for the matcher. A miss is
// recorded and, if the rule table says so, penalized with drawn cards.
func (s *Service) AttemptMatch(g *domain.GameState, playerID string, slot int) ([]Event, error) {
	if !g.Phase.TurnTaking() {
		return nil, ErrWrongPhase
	}
	if g.Turn == nil || !g.Turn.MatchWindowOpen {
		return nil, ErrMatchWindowClosed
	}
	if g.Turn.MatchAttempts >= s.rules.MatchAttemptsPerTurn {
		return nil, ErrMatchLimitReached
	}
	p, ok := g.Players[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if !p.ValidSlot(slot) {
		return nil, ErrInvalidSlot
	}
	card := p.Grid[slot].Card
	if card == nil {
		return nil, ErrEmptySlot
	}
	top := g.Discard.Top()
	if top == nil {
		return nil, ErrMatchWindowClosed
	}

	g.Turn.MatchAttempts++
	payload := MatchResolvedPayload{PlayerID: playerID, Slot: slot}

	if card.Rank == top.Rank {
		g.Turn.MatchValid = true
		g.Turn.MatchWindowOpen = false
		p.Grid[slot] = domain.Slot{}
		g.Discard.Push(card)

		trick := s.rules.TrickFor(card.Rank)
		if trick != domain.TrickNone {
			g.Turn.ActiveTrick = trick
			g.Turn.TrickHolder = playerID
		}

		fact := cardFact(card)
		payload.Valid = true
		payload.Trick = trick
		payload.Discarded = &fact
		g.Audit.Record("match_hit", playerID, map[string]any{"slot": slot, "trick": string(trick)})
		return []Event{{Kind: EventMatchResolved, Payload: payload}}, nil
	}

	g.Turn.MatchValid = false
	g.Audit.Record("match_miss", playerID, map[string]any{"slot": slot})
	events := []Event{{Kind: EventMatchResolved, Payload: payload}}

	for i := 0; i < s.rules.FailedMatchPenaltyCards; i++ {
		penalty, err := g.Deck.Draw()
		if err != nil {
			break
		}
		penalty.OwnerID = playerID
		penalty.Location = domain.LocationGrid
		p.Grid = append(p.Grid, domain.Slot{Card: penalty})
	}
	return events, nil
}

// SpyCard spends an armed spy trick: the matcher privately learns any one
// grid card.
func (s *Service) SpyCard(g *domain.GameState, playerID, targetID string, slot int) ([]Event, error) {
	if !g.Phase.TurnTaking() {
		return nil, ErrWrongPhase
	}
	if g.Turn == nil || !g.Turn.TrickArmedFor(playerID) {
		return nil, ErrTrickNotArmed
	}
	if g.Turn.ActiveTrick != domain.TrickSpy {
		return nil, ErrWrongTrick
	}
	target, ok := g.Players[targetID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if !target.ValidSlot(slot) {
		return nil, ErrInvalidSlot
	}
	card := target.Grid[slot].Card
	if card == nil {
		return nil, ErrEmptySlot
	}

	p := g.Players[playerID]
	p.Learn(card.ID)
	g.Turn.Reveal(playerID, card)
	g.Turn.ActiveTrick = domain.TrickNone
	g.Turn.TrickHolder = ""
	g.Turn.TrickTarget = domain.TrickTarget{PlayerID: targetID, Slot: slot}
	g.Audit.Record("card_spied", playerID, map[string]any{"target": targetID, "slot": slot})

	return []Event{{
		Kind:       EventCardSpied,
		Payload:    CardSpiedPayload{PlayerID: playerID, TargetID: targetID, Slot: slot, Card: cardFact(card)},
		Recipients: []string{playerID},
	}}, nil
}

// SwapCards spends an armed swap trick: the matcher exchanges one of their
// own grid cards with any other grid card, sight unseen.
func (s *Service) SwapCards(g *domain.GameState, playerID string, ownSlot int, targetID string, targetSlot int) ([]Event, error) {
	if !g.Phase.TurnTaking() {
		return nil, ErrWrongPhase
	}
	if g.Turn == nil || !g.Turn.TrickArmedFor(playerID) {
		return nil, ErrTrickNotArmed
	}
	if g.Turn.ActiveTrick != domain.TrickSwap {
		return nil, ErrWrongTrick
	}
	p := g.Players[playerID]
	target, ok := g.Players[targetID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if !p.ValidSlot(ownSlot) || !target.ValidSlot(targetSlot) {
		return nil, ErrInvalidSlot
	}
	own := p.Grid[ownSlot].Card
	theirs := target.Grid[targetSlot].Card
	if own == nil || theirs == nil {
		return nil, ErrEmptySlot
	}

	own.OwnerID = targetID
	theirs.OwnerID = playerID
	p.Grid[ownSlot] = domain.Slot{Card: theirs}
	target.Grid[targetSlot] = domain.Slot{Card: own}

	g.Turn.ActiveTrick = domain.TrickNone
	g.Turn.TrickHolder = ""
	g.Turn.TrickTarget = domain.TrickTarget{PlayerID: targetID, Slot: targetSlot}
	g.Audit.Record("cards_swapped", playerID, map[string]any{
		"ownSlot": ownSlot, "target": targetID, "targetSlot": targetSlot,
	})

	return []Event{{
		Kind:    EventCardsSwapped,
		Payload: CardsSwappedPayload{PlayerID: playerID, OwnSlot: ownSlot, TargetID: targetID, Slot: targetSlot},
	}}, nil
}

// CallPablo declares the round's end: every other player gets exactly one
// more turn. Calling is a turn action, valid for the acting player before
// drawing, once per round.
func (s *Service) CallPablo(g *domain.GameState, playerID string) ([]Event, error) {
	if g.Phase != domain.PhasePlay {
		return nil, ErrWrongPhase
	}
	if g.CurrentPlayerID() != playerID || g.Turn == nil || g.Turn.PlayerID != playerID {
		return nil, ErrNotYourTurn
	}
	if g.Turn.DrawnCard != nil {
		return nil, ErrCardAlreadyDrawn
	}
	if g.PabloCalled() {
		return nil, ErrPabloAlreadyCalled
	}
	p := g.Players[playerID]

	p.HasCalledPablo = true
	g.Round.PabloCallerID = playerID
	g.Round.FinalTurnsRemaining = len(g.Round.TurnOrder) - 1
	g.Phase = domain.PhaseFinalTurn
	g.Audit.Record("pablo_called", playerID, map[string]any{"finalTurns": g.Round.FinalTurnsRemaining})

	events := []Event{{
		Kind:    EventPabloCalled,
		Payload: PabloCalledPayload{CallerID: playerID, FinalTurnsRemaining: g.Round.FinalTurnsRemaining},
	}}

	// Calling consumes the caller's turn; the countdown burns down on the
	// other players' turns.
	s.passTurn(g)
	return events, nil
}

// EndTurn completes the acting player's turn. A still-staged drawn card is
// auto-discarded first, so turn-timer expiry can run the same path as a
// client intent. In the final-turn phase the countdown decrements; at zero
// the round moves to scoring.
func (s *Service) EndTurn(g *domain.GameState, playerID string) ([]Event, error) {
	if !g.Phase.TurnTaking() {
		return nil, ErrWrongPhase
	}
	if g.CurrentPlayerID() != playerID || g.Turn == nil || g.Turn.PlayerID != playerID {
		return nil, ErrNotYourTurn
	}

	var events []Event
	if g.Turn.DrawnCard != nil {
		evs, err := s.DiscardDrawnCard(g, playerID)
		if err != nil {
			return nil, err
		}
		events = append(events, evs...)
	}

	if g.Phase == domain.PhaseFinalTurn {
		g.Round.FinalTurnsRemaining--
		if g.Round.FinalTurnsRemaining <= 0 {
			g.Turn.Complete = true
			s.clearTurnReveals(g)
			g.Turn = nil
			g.Phase = domain.PhaseScoring
			g.Audit.Record("turn_ended", playerID, map[string]any{"scoring": true})
			events = append(events, Event{
				Kind:    EventTurnEnded,
				Payload: TurnEndedPayload{PlayerID: playerID, FinalTurnsRemaining: 0},
			})
			return events, nil
		}
	}

	s.passTurn(g)
	g.Audit.Record("turn_ended", playerID, map[string]any{"next": g.CurrentPlayerID()})
	events = append(events, Event{
		Kind: EventTurnEnded,
		Payload: TurnEndedPayload{
			PlayerID:            playerID,
			NextTurnID:          g.CurrentPlayerID(),
			FinalTurnsRemaining: g.Round.FinalTurnsRemaining,
		},
	})
	return events, nil
}

// passTurn hands the turn to the next player in order, discarding the old
// turn context and its ephemeral reveals.
func (s *Service) passTurn(g *domain.GameState) {
	if g.Turn != nil {
		g.Turn.Complete = true
		s.clearTurnReveals(g)
	}
	g.Round.CurrentTurnIndex = (g.Round.CurrentTurnIndex + 1) % len(g.Round.TurnOrder)
	g.Turn = domain.NewTurnContext(g.CurrentPlayerID())
}

// clearTurnReveals drops per-card temporary visibility granted this turn.
func (s *Service) clearTurnReveals(g *domain.GameState) {
	for _, p := range g.Players {
		for _, slot := range p.Grid {
			if !slot.Empty() {
				slot.Card.ClearReveals()
			}
		}
	}
	for _, c := range g.Discard.Cards {
		c.ClearReveals()
	}
	for _, c := range g.Deck.Cards {
		c.ClearReveals()
	}
}

// ResolveScoring computes round scores, applies the Pablo bonus or penalty,
// flips every grid card face-up, and decides whether the series continues.
func (s *Service) ResolveScoring(g *domain.GameState) ([]Event, error) {
	if g.Phase != domain.PhaseScoring {
		return nil, ErrWrongPhase
	}

	for _, p := range g.Players {
		for _, slot := range p.Grid {
			if !slot.Empty() {
				slot.Card.FaceUp = true
			}
		}
	}

	raw := make(map[string]int, len(g.Players))
	for id, p := range g.Players {
		raw[id] = p.GridValue()
	}

	// The caller wins the bonus only with the strictly lowest raw score.
	if caller := g.Round.PabloCallerID; caller != "" {
		lowestUnique := true
		for id, v := range raw {
			if id == caller {
				continue
			}
			if v <= raw[caller] {
				lowestUnique = false
				break
			}
		}
		if lowestUnique {
			raw[caller] += s.rules.PabloWinBonus
		} else {
			raw[caller] += s.rules.FalsePabloPenalty
		}
	}

	lines := make([]ScoreLine, 0, len(g.Players))
	best := 0
	for i, p := range g.SeatedPlayers() {
		score := raw[p.ID]
		rs := score
		p.RoundScore = &rs
		p.TotalScore += score
		lines = append(lines, ScoreLine{PlayerID: p.ID, RoundScore: score, TotalScore: p.TotalScore})
		if i == 0 || score < best {
			best = score
		}
	}
	var winners []string
	for _, line := range lines {
		if line.RoundScore == best {
			winners = append(winners, line.PlayerID)
		}
	}

	gameOver := g.RoundNumber+1 >= s.rules.MaxRounds
	for _, p := range g.Players {
		if p.TotalScore >= s.rules.TargetScore {
			gameOver = true
		}
	}

	if gameOver {
		g.Phase = domain.PhaseGameOver
	} else {
		g.Phase = domain.PhaseLobby
	}
	g.Audit.Record("round_scored", "", map[string]any{"winners": winners, "gameOver": gameOver})

	return []Event{{
		Kind:    EventRoundScored,
		Payload: RoundScoredPayload{Scores: lines, WinnerIDs: winners, GameOver: gameOver},
	}}, nil
}

// ResetForNextRound clears per-round transient state, rotates the dealer
// and advances the round counter. Cumulative scores and player identity
// survive. Valid only in lobby phase after a scored round.
func (s *Service) ResetForNextRound(g *domain.GameState, seed int64) error {
	if g.Phase != domain.PhaseLobby {
		return ErrWrongPhase
	}
	g.RoundNumber++
	if n := len(g.Players); n > 0 {
		g.Round.DealerIndex = (g.Round.DealerIndex + 1) % n
	}
	g.Round.PabloCallerID = ""
	g.Round.FinalTurnsRemaining = -1
	g.Round.Seed = seed
	g.Round.TurnOrder = nil
	g.Round.CurrentTurnIndex = 0
	g.Deck = &domain.Deck{Seed: seed}
	g.Discard = &domain.Discard{}
	g.Turn = nil
	for _, p := range g.Players {
		p.ResetForRound()
	}
	g.Audit.Record("round_reset", "", map[string]any{"round": g.RoundNumber})
	return nil
}

/// AbortRound handles the unrecoverable deck exhaustion path: the round is
// thrown away, scores untouched, and the room returns to lobby.
func (s *Service) AbortRound(g *domain.GameState, reason string) ([]Event, error) {
	if !g.Phase.InRound() {
		return nil, ErrWrongPhase
	}
	g.Deck = &domain.Deck{}
	g.Discard = &domain.Discard{}
	g.Turn = nil
	g.Round.TurnOrder = nil
	g.Round.CurrentTurnIndex = 0
	g.Round.PabloCallerID = ""
	g.Round.FinalTurnsRemaining = -1
	for _, p := range g.Players {
		p.ResetForRound()
	}
	g.Phase = domain.PhaseLobby
	g.Audit.Record("round_aborted", "", map[string]any{"reason": reason})

	return []Event{{
		Kind:    EventRoundAborted,
		Payload: RoundAbortedPayload{Reason: reason},
	}}, nil
}
