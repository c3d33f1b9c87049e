package core

// Board owns a grid for one play session and applies player rotations.
// A Board is not safe for concurrent use; each session owns its own.
type Board struct {
	grid      *Grid
	result    Result
	rotations int
}

// NewBoard takes ownership of g and evaluates it once.
func NewBoard(g *Grid) *Board {
	return &Board{
		grid:   g,
		result: Evaluate(g),
	}
}

// Rotate turns the pipe at (row, col) a quarter clockwise and re-evaluates.
// Out-of-bounds and fixed cells return ErrInvalidPosition or ErrFixedCell
// together with the unchanged current result.
func (b *Board) Rotate(row, col int) (Result, error) {
	p := P(row, col)
	pipe, ok := b.grid.Get(p)
	if !ok {
		return b.result, ErrInvalidPosition
	}
	if pipe.IsFixed() {
		return b.result, ErrFixedCell
	}
	if err := b.grid.Set(p, pipe.Rotated()); err != nil {
		return b.result, err
	}
	b.rotations++
	b.result = Evaluate(b.grid)
	return b.result, nil
}

// Result returns the most recent evaluation.
func (b *Board) Result() Result {
	return b.result
}

// Solved reports whether the board is currently solved.
func (b *Board) Solved() bool {
	return b.result.Solved
}

// Rotations returns the number of accepted rotations since construction.
func (b *Board) Rotations() int {
	return b.rotations
}

// Grid returns a copy of the board's grid for rendering.
func (b *Board) Grid() *Grid {
	return b.grid.Clone()
}

// Pipe returns the pipe at (row, col).
func (b *Board) Pipe(row, col int) (Pipe, bool) {
	return b.grid.Get(P(row, col))
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.grid.W }

// Height returns the number of rows.
func (b *Board) Height() int { return b.grid.H }
