package nakama

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartRound   int64 = 1
	OpPeekCard     int64 = 2
	OpCompletePeek int64 = 3
	OpDrawCard     int64 = 4
	OpPlaceCard    int64 = 5
	OpDiscardDrawn int64 = 6
	OpAttemptMatch int64 = 7
	OpSpyCard      int64 = 8
	OpSwapCards    int64 = 9
	OpCallPablo    int64 = 10
	OpEndTurn      int64 = 11
	OpPing         int64 = 12

	// Server -> Client events
	OpStateSync     int64 = 101 // per-observer view, always targeted
	OpPlayerJoined  int64 = 102
	OpPlayerLeft    int64 = 103
	OpRoundStarted  int64 = 104
	OpCardPeeked    int64 = 105 // send privately
	OpCardDrawn     int64 = 106
	OpDrawRevealed  int64 = 107 // send privately
	OpDeckRecycled  int64 = 108
	OpCardPlaced    int64 = 109
	OpDrawDiscarded int64 = 110
	OpMatchResolved int64 = 111
	OpCardSpied     int64 = 112 // send privately
	OpCardsSwapped  int64 = 113
	OpPabloCalled   int64 = 114
	OpTurnEnded     int64 = 115
	OpRoundScored   int64 = 116
	OpRoundAborted  int64 = 117
	OpGameError     int64 = 118
	OpPeekFinished  int64 = 119
	OpPlayBegan     int64 = 120
	OpGameOver      int64 = 121
	OpPong          int64 = 122
)
