package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// PlayerRepo defines the interface for player persistence operations.
type PlayerRepo interface {
	// Save inserts a player. A taken handle yields dmn.ErrHandleConflict.
	Save(ctx context.Context, player *dmn.Player) error

	// ByID retrieves a player by their unique ID.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Player, error)

	// ByHandle retrieves a player by their handle.
	ByHandle(ctx context.Context, handle string) (*dmn.Player, error)
}

// RunRepo stores finished runs.
type RunRepo interface {
	Save(ctx context.Context, run *dmn.Run) error

	// ByPlayer returns the most recent runs of a player, newest first.
	ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]*dmn.Run, error)
}
