package core

import "fmt"

// Editor size limits.
const (
	MinEditorSize = 1
	MaxEditorSize = 10
)

// Editor builds stages. Unlike Board it may change any cell, fixed or not.
type Editor struct {
	grid *Grid
}

// NewEditor creates a w×h editor filled with unfixed straight pipes.
func NewEditor(w, h int) (*Editor, error) {
	if err := checkEditorSize(w, h); err != nil {
		return nil, err
	}
	g := NewGrid(w, h)
	for i := range g.Cells {
		g.Cells[i] = Pipe{Type: Straight}
	}
	return &Editor{grid: g}, nil
}

// EditGrid starts an editor on a copy of g.
func EditGrid(g *Grid) *Editor {
	return &Editor{grid: g.Clone()}
}

func checkEditorSize(w, h int) error {
	if w < MinEditorSize || w > MaxEditorSize || h < MinEditorSize || h > MaxEditorSize {
		return fmt.Errorf("editor size %dx%d outside %d..%d", w, h, MinEditorSize, MaxEditorSize)
	}
	return nil
}

// Place puts a fresh pipe of type t at p with direction 0.
func (e *Editor) Place(p Pos, t PipeType, fixed bool) error {
	return e.grid.Place(p, Pipe{Type: t, Fixed: fixed})
}

// Turn rotates the pipe at p a quarter clockwise, ignoring the fixed flag.
func (e *Editor) Turn(p Pos) error {
	pipe, ok := e.grid.Get(p)
	if !ok {
		return ErrInvalidPosition
	}
	return e.grid.Place(p, pipe.Rotated())
}

// Resize swaps in a new w×h grid, keeping the overlapping cells.
// New cells are unfixed straight pipes.
func (e *Editor) Resize(w, h int) error {
	if err := checkEditorSize(w, h); err != nil {
		return err
	}
	next := NewGrid(w, h)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			if pipe, ok := e.grid.Get(P(row, col)); ok {
				next.Cells[row*w+col] = pipe
			} else {
				next.Cells[row*w+col] = Pipe{Type: Straight}
			}
		}
	}
	e.grid = next
	return nil
}

// Grid returns a copy of the grid being edited.
func (e *Editor) Grid() *Grid {
	return e.grid.Clone()
}

// Stage exports the edited grid.
func (e *Editor) Stage(id, name string) Stage {
	return ToStage(id, name, e.grid)
}
