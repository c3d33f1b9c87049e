// Package core provides the connectivity engine for the pipes puzzle.
// This package is UI-agnostic and deterministic.
package core

import "fmt"

// Direction is a port direction or a rotation amount, in degrees.
// Only 0, 90, 180 and 270 are valid.
type Direction int

const (
	East  Direction = 0
	South Direction = 90
	West  Direction = 180
	North Direction = 270
)

// Directions lists every valid direction in clockwise order starting east.
var Directions = [4]Direction{East, South, West, North}

// NormalizeDirection maps any multiple of 90 (including negatives) onto
// 0, 90, 180 or 270. The second return is false for non-multiples of 90.
func NormalizeDirection(deg int) (Direction, bool) {
	if deg%90 != 0 {
		return East, false
	}
	d := deg % 360
	if d < 0 {
		d += 360
	}
	return Direction(d), true
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d == East || d == South || d == West || d == North
}

// Rotate returns d turned clockwise by the given amount.
func (d Direction) Rotate(by Direction) Direction {
	return Direction((int(d) + int(by)) % 360)
}

// Clockwise returns d turned a quarter clockwise.
func (d Direction) Clockwise() Direction {
	return d.Rotate(South)
}

// Opposite returns the direction facing back.
func (d Direction) Opposite() Direction {
	return d.Rotate(West)
}

// Offset returns the (dRow, dCol) step for moving one cell in this direction.
// Rows grow downward.
func (d Direction) Offset() (dRow, dCol int) {
	switch d {
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	case North:
		return -1, 0
	default:
		return 0, 0
	}
}

// index returns the bit position of d in a PortSet.
func (d Direction) index() uint {
	return uint(d / 90)
}

// String returns the compass name of the direction.
func (d Direction) String() string {
	switch d {
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	case North:
		return "North"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Pos is a cell address on the grid.
type Pos struct {
	Row int
	Col int
}

// P is a convenience constructor for Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// Step returns the neighbouring position in direction d.
func (p Pos) Step(d Direction) Pos {
	dr, dc := d.Offset()
	return Pos{Row: p.Row + dr, Col: p.Col + dc}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}
