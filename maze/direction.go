package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Direction encodes a single step on the board. The numeric values are part of
// the public contract: 0=up, 1=right, 2=down, 3=left.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

var (
	ErrInvalidDirection = errors.New("invalid direction")

	directionNames = [...]string{"up", "right", "down", "left"}
)

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection accepts either a direction name (case-insensitive) or its
// numeric code.
func ParseDirection(s string) (Direction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range directionNames {
		if name == n || name == fmt.Sprint(i) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}
