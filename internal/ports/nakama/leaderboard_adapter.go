package nakama

import (
	"context"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/supplanter-wood/pablo/internal/bot"
	"github.com/supplanter-wood/pablo/internal/ports"
)

// NakamaStatsAdapter reports finished games onto a Nakama leaderboard, one
// win record per winner.
type NakamaStatsAdapter struct {
	nk            runtime.NakamaModule
	leaderboardID string
}

func NewNakamaStatsAdapter(nk runtime.NakamaModule, leaderboardID string) *NakamaStatsAdapter {
	return &NakamaStatsAdapter{nk: nk, leaderboardID: leaderboardID}
}

// EnsureLeaderboard creates the wins leaderboard if it does not exist yet.
// Creation is idempotent on the Nakama side.
func (a *NakamaStatsAdapter) EnsureLeaderboard(ctx context.Context) error {
	return a.nk.LeaderboardCreate(ctx, a.leaderboardID, true, "desc", "incr", "", nil, false)
}

func (a *NakamaStatsAdapter) ReportGame(ctx context.Context, result ports.RoundResult) error {
	for _, winnerID := range result.WinnerIDs {
		if bot.IsBot(winnerID) {
			continue
		}
		metadata := map[string]interface{}{
			"match_id": result.MatchID,
			"rounds":   result.Rounds,
			"total":    result.Totals[winnerID],
		}
		if _, err := a.nk.LeaderboardRecordWrite(ctx, a.leaderboardID, winnerID, "", 1, 0, metadata, nil); err != nil {
			return err
		}
	}
	return nil
}
