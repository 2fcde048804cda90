package domain

// TrickKind names the special ability a successful match can arm.
type TrickKind string

const (
	TrickNone TrickKind = ""
	// TrickSpy lets the matcher privately look at any one grid card.
	TrickSpy TrickKind = "spy"
	// TrickSwap lets the matcher exchange two grid cards sight unseen.
	TrickSwap TrickKind = "swap"
)

// Rules is the configurable rule table for a room. Scoring values, trick
// grants and thresholds are data, not hardcoded constants, so variants can
// be played without touching the engine.
type Rules struct {
	MaxPlayers int
	MinPlayers int

	CardsPerPlayer int
	InitialPeeks   int
	JokersPerDeck  int

	// MatchAttemptsPerTurn caps attempts within one post-discard window.
	MatchAttemptsPerTurn int
	// FailedMatchPenaltyCards are drawn into the grid on a miss (0 disables).
	FailedMatchPenaltyCards int

	CardValues map[Rank]int
	TrickRanks map[Rank]TrickKind

	// PabloWinBonus is added to the caller's round score when the caller has
	// the strictly lowest score (normally negative).
	PabloWinBonus int
	// FalsePabloPenalty is added to the caller's round score otherwise.
	FalsePabloPenalty int

	// A game ends when any total reaches TargetScore or MaxRounds rounds
	// have been scored.
	TargetScore int
	MaxRounds   int
}

// DefaultRules returns the standard Pablo rule table.
func DefaultRules() Rules {
	return Rules{
		MaxPlayers:           6,
		MinPlayers:           2,
		CardsPerPlayer:       4,
		InitialPeeks:         2,
		JokersPerDeck:        2,
		MatchAttemptsPerTurn: 1,
		CardValues: map[Rank]int{
			RankAce: 1, Rank2: 2, Rank3: 3, Rank4: 4, Rank5: 5,
			Rank6: 6, Rank7: 7, Rank8: 8, Rank9: 9, Rank10: 10,
			RankJack: 11, RankQueen: 12, RankKing: 13, RankJoker: 0,
		},
		TrickRanks: map[Rank]TrickKind{
			RankJack:  TrickSpy,
			RankQueen: TrickSwap,
		},
		PabloWinBonus:     -5,
		FalsePabloPenalty: 10,
		TargetScore:       100,
		MaxRounds:         10,
	}
}

// ValueOf returns the scoring value for a rank.
func (r Rules) ValueOf(rank Rank) int {
	return r.CardValues[rank]
}

// TrickFor returns the trick a matched rank arms, or TrickNone.
func (r Rules) TrickFor(rank Rank) TrickKind {
	return r.TrickRanks[rank]
}

// DeckSize returns the number of cards a full deck holds under these rules.
func (r Rules) DeckSize() int {
	return len(StandardRanks)*len(StandardSuits) + r.JokersPerDeck
}
