package core

import "errors"

var (
	// ErrInvalidPosition is returned for addresses outside the grid.
	ErrInvalidPosition = errors.New("position out of bounds")
	// ErrFixedCell is returned when mutating a fixed cell (start and end included).
	ErrFixedCell = errors.New("cell is fixed")
)

// Pipe is a single pipe segment on the board.
// Connectivity is never stored here; see Evaluate.
type Pipe struct {
	Type      PipeType
	Direction Direction
	Fixed     bool
}

// IsFixed reports whether the player may not rotate this pipe.
// Start and end pipes are always fixed regardless of the stored flag.
func (p Pipe) IsFixed() bool {
	return p.Fixed || p.Type == Start || p.Type == End
}

// Rotated returns a copy turned a quarter clockwise.
func (p Pipe) Rotated() Pipe {
	p.Direction = p.Direction.Clockwise()
	return p
}

// Grid is the puzzle board. Cells are stored row-major: index = row*W + col.
// Dimensions are fixed for the lifetime of a Grid.
type Grid struct {
	W     int
	H     int
	Cells []Pipe
}

// MaxStageSize is the largest width or height a grid may have.
const MaxStageSize = 100

// NewGrid creates a w×h grid filled with empty, unfixed cells.
// Each dimension is clamped to 0..MaxStageSize.
func NewGrid(w, h int) *Grid {
	w = min(max(w, 0), MaxStageSize)
	h = min(max(h, 0), MaxStageSize)
	return &Grid{
		W:     w,
		H:     h,
		Cells: make([]Pipe, w*h),
	}
}

func (g *Grid) index(p Pos) int {
	return p.Row*g.W + p.Col
}

// InBounds returns true if the position is within the grid.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.H && p.Col >= 0 && p.Col < g.W
}

// Get returns the pipe at p. The bool is false when p is out of bounds.
func (g *Grid) Get(p Pos) (Pipe, bool) {
	if !g.InBounds(p) {
		return Pipe{}, false
	}
	return g.Cells[g.index(p)], true
}

// Set replaces the pipe at p. Fixed cells cannot be replaced.
func (g *Grid) Set(p Pos, pipe Pipe) error {
	if !g.InBounds(p) {
		return ErrInvalidPosition
	}
	if g.Cells[g.index(p)].IsFixed() {
		return ErrFixedCell
	}
	g.Cells[g.index(p)] = pipe
	return nil
}

// Place writes a pipe at p regardless of what was there.
// Intended for loaders and the editor, not for gameplay.
func (g *Grid) Place(p Pos, pipe Pipe) error {
	if !g.InBounds(p) {
		return ErrInvalidPosition
	}
	g.Cells[g.index(p)] = pipe
	return nil
}

// Neighbor returns the position one step from p in direction d.
// The bool is false when that position is outside the grid.
func (g *Grid) Neighbor(p Pos, d Direction) (Pos, bool) {
	n := p.Step(d)
	return n, g.InBounds(n)
}

// Find returns the positions of all cells of the given type in row-major order.
func (g *Grid) Find(t PipeType) []Pos {
	var out []Pos
	for row := 0; row < g.H; row++ {
		for col := 0; col < g.W; col++ {
			if g.Cells[row*g.W+col].Type == t {
				out = append(out, P(row, col))
			}
		}
	}
	return out
}

// Sources returns all start cells.
func (g *Grid) Sources() []Pos {
	return g.Find(Start)
}

// Sinks returns all end cells.
func (g *Grid) Sinks() []Pos {
	return g.Find(End)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Pipe, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		W:     g.W,
		H:     g.H,
		Cells: cells,
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, cell := range g.Cells {
		if cell != other.Cells[i] {
			return false
		}
	}
	return true
}
