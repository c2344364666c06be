/*
Package maze provides the board of a single-player maze game.

A Board is a rectangular grid of wall and path cells. It is carved into a
perfect maze on construction: a randomized growing-tree walk seeded just below
the top-right corner digs single-width corridors, keeping the border closed
except for the goal opening on the top row and the entry on the bottom row.

The board tracks one player token, validates single-step moves and finds the
shortest route from the token to the goal with a breadth-first search.
*/
package maze

import (
	"errors"
	"math/rand"
	"strings"
	"time"
)

const (
	minDimension = 5
	maxDimension = 99
)

// ErrInvalidDimensions is returned by New for sizes outside [5, 99].
var ErrInvalidDimensions = errors.New("invalid maze dimensions")

// Rand is the uniform random source used while carving the maze.
type Rand interface {
	Intn(n int) int
}

// Option configures a Board before it is generated.
type Option func(*Board)

// WithRand sets the random source used for generation.
func WithRand(r Rand) Option {
	return func(b *Board) {
		b.rng = r
	}
}

// Board owns the grid, the start and goal cells and the player token.
type Board struct {
	width  int
	height int
	cells  []*Cell // row-major, index y*width+x
	start  *Cell
	goal   *Cell
	player *Cell
	rng    Rand
}

// New allocates a width x height board and carves a maze into it.
func New(width, height int, opts ...Option) (*Board, error) {
	if min(width, height) < minDimension || max(width, height) > maxDimension {
		return nil, ErrInvalidDimensions
	}

	b := &Board{
		width:  width,
		height: height,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	b.init()
	return b, nil
}

func (b *Board) init() {
	b.cells = make([]*Cell, 0, b.width*b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			b.cells = append(b.cells, &Cell{X: x, Y: y, typ: Wall, board: b})
		}
	}

	b.carve()

	b.goal = b.Cell(b.width-2, 0).Dig()

	above := b.Cell(1, b.height-2)
	for !above.IsPath() {
		above = above.Right()
	}
	b.start = above.Bottom()
	b.SetPlayer(b.start)
}

// carve grows corridors from the seed below the top-right corner until no
// wall can be dug without opening a second route.
func (b *Board) carve() {
	points := []*Cell{b.Cell(b.width-2, 1).Dig()}
	var next *Cell

	for next != nil || len(points) > 0 {
		cell := next
		if cell == nil {
			i := b.rng.Intn(len(points))
			cell = points[i]
			points[i] = points[len(points)-1]
			points = points[:len(points)-1]
		}

		targets := digTargets(cell)
		if len(targets) == 0 {
			next = nil
			continue
		}

		next = targets[b.rng.Intn(len(targets))].Dig()
		if len(targets) > 1 {
			points = append(points, cell)
		}
	}
}

// digTargets lists the walls around c that can be dug. A wall qualifies only
// when more than two of its own neighbors are walls, so digging it can never
// join two corridors.
func digTargets(c *Cell) []*Cell {
	var targets []*Cell
	for _, n := range c.Around() {
		if n != nil && n.IsWall() && n.wallNeighbors() > 2 {
			targets = append(targets, n)
		}
	}
	return targets
}

// Width is the number of columns.
func (b *Board) Width() int { return b.width }

// Height is the number of rows.
func (b *Board) Height() int { return b.height }

// Start is the bottom-row cell the player begins on.
func (b *Board) Start() *Cell { return b.start }

// Goal is the top-row opening.
func (b *Board) Goal() *Cell { return b.goal }

// Player is the cell holding the token.
func (b *Board) Player() *Cell { return b.player }

// Cell returns the cell at (x, y), or nil outside the board.
func (b *Board) Cell(x, y int) *Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return nil
	}
	return b.cells[y*b.width+x]
}

// Types returns a row-major copy of every cell type.
func (b *Board) Types() []CellType {
	types := make([]CellType, len(b.cells))
	for i, c := range b.cells {
		types[i] = c.typ
	}
	return types
}

// SetPlayer moves the token to c without checking adjacency or passability.
func (b *Board) SetPlayer(c *Cell) {
	if b.player != nil {
		b.player.typ = Path
	}
	c.typ = Player
	b.player = c
}

// MovePlayerUp steps the token up and reports whether it moved.
func (b *Board) MovePlayerUp() bool { return b.moveTo(b.player.Top()) }

// MovePlayerRight steps the token right and reports whether it moved.
func (b *Board) MovePlayerRight() bool { return b.moveTo(b.player.Right()) }

// MovePlayerDown steps the token down and reports whether it moved.
func (b *Board) MovePlayerDown() bool { return b.moveTo(b.player.Bottom()) }

// MovePlayerLeft steps the token left and reports whether it moved.
func (b *Board) MovePlayerLeft() bool { return b.moveTo(b.player.Left()) }

// MovePlayer moves the token one step in d. Walls and the board edge leave the
// board untouched; only an unknown direction is an error.
func (b *Board) MovePlayer(d Direction) (bool, error) {
	target, err := b.player.NeighborByDir(d)
	if err != nil {
		return false, err
	}
	return b.moveTo(target), nil
}

func (b *Board) moveTo(c *Cell) bool {
	if c == nil || !c.IsPath() {
		return false
	}
	b.SetPlayer(c)
	return true
}

// Won reports whether the token stands on the top row.
func (b *Board) Won() bool {
	return b.player.Y == 0
}

// String renders the board with '#' for walls and '@' for the player.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			switch b.Cell(x, y).typ {
			case Wall:
				sb.WriteByte('#')
			case Player:
				sb.WriteByte('@')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
