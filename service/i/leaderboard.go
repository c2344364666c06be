package i

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LeaderboardEntry is one ranked player on a board size.
type LeaderboardEntry struct {
	Rank     int64
	PlayerID uuid.UUID
	Best     time.Duration
}

// Leaderboard keeps the best completion time per player for each board size.
type Leaderboard interface {
	// Submit records elapsed for the player if it beats their previous best.
	Submit(ctx context.Context, width, height int, playerID uuid.UUID, elapsed time.Duration) error

	// Top returns up to limit entries, fastest first.
	Top(ctx context.Context, width, height int, limit int64) ([]LeaderboardEntry, error)
}
