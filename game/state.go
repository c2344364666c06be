package game

import (
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// Position is a cell coordinate, origin at the top-left corner.
type Position struct {
	X int
	Y int
}

// PositionOf returns the coordinate of c.
func PositionOf(c *maze.Cell) Position {
	return Position{X: c.X, Y: c.Y}
}

// State is a point-in-time view of a game session.
type State struct {
	SessionID   uuid.UUID
	Width       int
	Height      int
	Cells       []maze.CellType // row-major
	Player      Position
	Start       Position
	Goal        Position
	Started     bool
	Finished    bool
	AutoSolving bool
	Moves       int
	Elapsed     time.Duration
}

// Snapshot captures the board part of a State.
func Snapshot(id uuid.UUID, b *maze.Board) State {
	return State{
		SessionID: id,
		Width:     b.Width(),
		Height:    b.Height(),
		Cells:     b.Types(),
		Player:    PositionOf(b.Player()),
		Start:     PositionOf(b.Start()),
		Goal:      PositionOf(b.Goal()),
	}
}
