package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/supplanter-wood/pablo/internal/config"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig("data/pablo_config.json"); err != nil {
		return err
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNamePablo, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(), nil
	}); err != nil {
		return err
	}

	stats := NewNakamaStatsAdapter(nk, config.GetGameConfig().Leaderboard())
	if err := stats.EnsureLeaderboard(ctx); err != nil {
		logger.Warn("InitModule: Could not ensure leaderboard: %v", err)
	}

	logger.Info("Pablo Go module loaded.")
	return nil
}
