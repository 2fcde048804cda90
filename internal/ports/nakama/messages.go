package nakama

// Client request payloads, JSON-encoded in the match data frame.

type PeekCardRequest struct {
	Slot int `json:"slot"`
}

type DrawCardRequest struct {
	// Source is "deck" or "discard".
	Source string `json:"source"`
}

type PlaceCardRequest struct {
	Slot int `json:"slot"`
}

type AttemptMatchRequest struct {
	Slot int `json:"slot"`
}

type SpyCardRequest struct {
	TargetID string `json:"targetId"`
	Slot     int    `json:"slot"`
}

type SwapCardsRequest struct {
	OwnSlot    int    `json:"ownSlot"`
	TargetID   string `json:"targetId"`
	TargetSlot int    `json:"targetSlot"`
}

// Server event payloads that do not come straight from an app event.

type PlayerJoinedEvent struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Rejoined bool   `json:"rejoined"`
}

type PlayerLeftEvent struct {
	UserID string `json:"userId"`
	// Seated is true when the player stays in the round as disconnected.
	Seated bool `json:"seated"`
}

type GameErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PongEvent struct {
	Tick int64 `json:"tick"`
}

type GameOverEvent struct {
	WinnerIDs []string       `json:"winnerIds"`
	Totals    map[string]int `json:"totals"`
	Rounds    int            `json:"rounds"`
}
