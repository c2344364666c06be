package maze

import "fmt"

// CellType tags what occupies a grid position.
type CellType int

const (
	Path   CellType = iota // Path is a traversable cell.
	Wall                   // Wall blocks movement.
	Player                 // Player marks the cell holding the token.
)

func (t CellType) String() string {
	switch t {
	case Path:
		return "path"
	case Wall:
		return "wall"
	case Player:
		return "player"
	default:
		return fmt.Sprintf("CellType(%d)", int(t))
	}
}

// Cell is a single grid position. The board pointer is only used to resolve
// neighbors; the board owns every cell.
type Cell struct {
	X, Y  int
	typ   CellType
	board *Board
}

// Type returns the current type tag of the cell.
func (c *Cell) Type() CellType {
	return c.typ
}

// Dig turns the cell into a path and returns it.
func (c *Cell) Dig() *Cell {
	c.typ = Path
	return c
}

// Top returns the cell above, or nil at the top border.
func (c *Cell) Top() *Cell {
	return c.board.Cell(c.X, c.Y-1)
}

// Right returns the cell to the right, or nil at the right border.
func (c *Cell) Right() *Cell {
	return c.board.Cell(c.X+1, c.Y)
}

// Bottom returns the cell below, or nil at the bottom border.
func (c *Cell) Bottom() *Cell {
	return c.board.Cell(c.X, c.Y+1)
}

// Left returns the cell to the left, or nil at the left border.
func (c *Cell) Left() *Cell {
	return c.board.Cell(c.X-1, c.Y)
}

// Around returns the four neighbors indexed by Direction. Missing neighbors
// stay in place as nil.
func (c *Cell) Around() [4]*Cell {
	return [4]*Cell{c.Top(), c.Right(), c.Bottom(), c.Left()}
}

func (c *Cell) IsPath() bool   { return c.typ == Path }
func (c *Cell) IsWall() bool   { return c.typ == Wall }
func (c *Cell) IsPlayer() bool { return c.typ == Player }

// NeighborByDir resolves the neighbor in direction d.
func (c *Cell) NeighborByDir(d Direction) (*Cell, error) {
	switch d {
	case Up:
		return c.Top(), nil
	case Right:
		return c.Right(), nil
	case Down:
		return c.Bottom(), nil
	case Left:
		return c.Left(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
}

// wallNeighbors counts the in-bounds neighbors that are still walls.
func (c *Cell) wallNeighbors() int {
	count := 0
	for _, n := range c.Around() {
		if n != nil && n.IsWall() {
			count++
		}
	}
	return count
}

func (c *Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
