package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// GameSessionManager owns the running single-player game sessions. Every
// call taking a session ID also takes the calling player's ID and fails for
// sessions owned by someone else.
type GameSessionManager interface {
	// NewSession generates a maze and places the player on its start.
	// Zero dimensions select the configured default size.
	NewSession(ctx context.Context, playerID uuid.UUID, width, height int) (game.State, error)

	// State returns the current state of a session.
	State(ctx context.Context, sessionID, playerID uuid.UUID) (game.State, error)

	// Move applies one step. Illegal steps leave the board unchanged.
	Move(ctx context.Context, sessionID, playerID uuid.UUID, d maze.Direction) (game.State, error)

	// Solution returns the shortest route from the player to the goal
	// without moving the player.
	Solution(ctx context.Context, sessionID, playerID uuid.UUID) ([]maze.Direction, error)

	// AutoSolve starts replaying the solution in the background.
	AutoSolve(ctx context.Context, sessionID, playerID uuid.UUID) (game.State, error)

	// CancelAutoSolve stops a running replay. The steps already taken stay.
	CancelAutoSolve(ctx context.Context, sessionID, playerID uuid.UUID) (game.State, error)

	// Retry replaces the maze with a fresh one of the same size.
	Retry(ctx context.Context, sessionID, playerID uuid.UUID) (game.State, error)

	// Close drops a session.
	Close(ctx context.Context, sessionID, playerID uuid.UUID) error

	// StopAll cancels every replay and drops every session.
	StopAll()
}
