package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/supplanter-wood/pablo/internal/domain"
)

// GameConfig carries the server-side tunables for a room. Zero values mean
// "use the built-in rule table", so a partial config file only overrides
// what it names.
type GameConfig struct {
	MaxPlayers        int `json:"max_players"`
	MinPlayers        int `json:"min_players"`
	CardsPerPlayer    int `json:"cards_per_player"`
	InitialPeeks      int `json:"initial_peeks"`
	JokersPerDeck     int `json:"jokers_per_deck"`
	PabloWinBonus     int `json:"pablo_win_bonus"`
	FalsePabloPenalty int `json:"false_pablo_penalty"`
	TargetScore       int `json:"target_score"`
	MaxRounds         int `json:"max_rounds"`

	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before adding a bot to a solo human lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	BotActionDelayMillis    int `json:"bot_action_delay_millis"`

	RejoinTokenTTLMinutes int    `json:"rejoin_token_ttl_minutes"`
	LeaderboardID         string `json:"leaderboard_id"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path. A missing
// file is not an error; the built-in defaults apply.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		c, err := readGameConfig(path)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

func readGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GameConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}

	var c GameConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	return &c, nil
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return &GameConfig{}
	}
	return cfg
}

// Rules maps the loaded config onto the rule table, overriding only the
// fields the config file set.
func (c *GameConfig) Rules() domain.Rules {
	r := domain.DefaultRules()
	if c == nil {
		return r
	}
	if c.MaxPlayers > 0 {
		r.MaxPlayers = c.MaxPlayers
	}
	if c.MinPlayers > 0 {
		r.MinPlayers = c.MinPlayers
	}
	if c.CardsPerPlayer > 0 {
		r.CardsPerPlayer = c.CardsPerPlayer
	}
	if c.InitialPeeks > 0 {
		r.InitialPeeks = c.InitialPeeks
	}
	if c.JokersPerDeck > 0 {
		r.JokersPerDeck = c.JokersPerDeck
	}
	if c.PabloWinBonus != 0 {
		r.PabloWinBonus = c.PabloWinBonus
	}
	if c.FalsePabloPenalty != 0 {
		r.FalsePabloPenalty = c.FalsePabloPenalty
	}
	if c.TargetScore > 0 {
		r.TargetScore = c.TargetScore
	}
	if c.MaxRounds > 0 {
		r.MaxRounds = c.MaxRounds
	}
	return r
}

// TurnDuration returns the per-turn deadline in seconds, defaulting when
// unset.
func (c *GameConfig) TurnDuration() int {
	if c == nil || c.TurnDurationSeconds <= 0 {
		return 30
	}
	return c.TurnDurationSeconds
}

// BotActionDelay returns the artificial bot "thinking" delay in
// milliseconds.
func (c *GameConfig) BotActionDelay() int {
	if c == nil || c.BotActionDelayMillis <= 0 {
		return 800
	}
	return c.BotActionDelayMillis
}

// Leaderboard returns the leaderboard id score reports are written to.
func (c *GameConfig) Leaderboard() string {
	if c == nil || c.LeaderboardID == "" {
		return "pablo_wins"
	}
	return c.LeaderboardID
}
