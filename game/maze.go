package game

import "github.com/beka-birhanu/vinom-maze/maze"

// Board defines what the movement controller needs from a maze board.
type Board interface {
	// MovePlayer moves the player one step. Illegal moves report false
	// without error; only an unknown direction fails.
	MovePlayer(d maze.Direction) (bool, error)

	// Solve returns the shortest route from the player to the goal.
	Solve() []maze.Direction

	// Won reports whether the player has reached the top row.
	Won() bool
}

// Encoder serializes game state for clients.
type Encoder interface {
	MarshalState(State) ([]byte, error)
	UnmarshalState([]byte) (State, error)
}

var _ Board = (*maze.Board)(nil)
