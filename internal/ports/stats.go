package ports

import "context"

// RoundResult summarizes a finished series for reporting.
type RoundResult struct {
	MatchID   string
	WinnerIDs []string
	// Totals maps player id to their final series total, lower is better.
	Totals map[string]int
	Rounds int
}

// StatsPort reports finished games to an external ranking system. Bots are
// filtered out by the adapter.
type StatsPort interface {
	ReportGame(ctx context.Context, result RoundResult) error
}
