package bot

import (
	"fmt"
	"strings"

	"github.com/supplanter-wood/pablo/internal/domain"
)

// ActionKind enumerates the moves a bot can ask the room to perform.
type ActionKind string

const (
	// ActionWait means the bot has nothing to do right now.
	ActionWait         ActionKind = "wait"
	ActionPeek         ActionKind = "peek"
	ActionCompletePeek ActionKind = "completePeek"
	ActionDraw         ActionKind = "draw"
	ActionPlace        ActionKind = "place"
	ActionDiscard      ActionKind = "discard"
	ActionMatch        ActionKind = "match"
	ActionSpy          ActionKind = "spy"
	ActionSwap         ActionKind = "swap"
	ActionCallPablo    ActionKind = "callPablo"
	ActionEndTurn      ActionKind = "endTurn"
)

// Action is one decision. Only the fields the Kind needs are set.
type Action struct {
	Kind       ActionKind
	Source     domain.DrawSource
	Slot       int
	TargetID   string
	TargetSlot int
}

// Brain is the interface that all bot strategies must implement. NextAction
// is called repeatedly; the room executes each action and asks again until
// the bot's turn is over or the brain returns ActionWait.
//
// Strategies receive the full room state but honest levels only act on cards
// the bot has legitimately learned (face-up, peeked, or revealed).
type Brain interface {
	NextAction(g *domain.GameState, playerID string) (Action, error)
}

// BotLevel selects a strategy.
type BotLevel int

const (
	BotLevelGood BotLevel = iota
	BotLevelSmart
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelGood:
		return &GoodBot{Tuning: DefaultTuning}, nil
	case BotLevelSmart:
		return &SmartBot{GoodBot: GoodBot{Tuning: SmartTuning}}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// IDPrefix marks bot user ids apart from real Nakama user ids.
const IDPrefix = "bot-"

var botNames = []string{"Paco", "Lola", "Rico", "Mmomo", "Suzy", "Nino"}

// Identity returns a stable id and display name for the nth bot in a room.
func Identity(n int) (id, name string) {
	name = botNames[n%len(botNames)]
	return fmt.Sprintf("%s%d", IDPrefix, n+1), name
}

// IsBot reports whether a user id belongs to a bot.
func IsBot(id string) bool {
	return strings.HasPrefix(id, IDPrefix)
}
