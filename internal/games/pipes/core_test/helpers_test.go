package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
)

// cell is shorthand for building test grids.
type cell struct {
	t     core.PipeType
	dir   core.Direction
	fixed bool
}

// buildGrid creates a grid from rows of cells.
func buildGrid(t *testing.T, rows [][]cell) *core.Grid {
	t.Helper()
	h := len(rows)
	w := 0
	if h > 0 {
		w = len(rows[0])
	}
	g := core.NewGrid(w, h)
	for r, row := range rows {
		for c, spec := range row {
			if err := g.Place(core.P(r, c), core.Pipe{Type: spec.t, Direction: spec.dir, Fixed: spec.fixed}); err != nil {
				t.Fatalf("Place(%d,%d) failed: %v", r, c, err)
			}
		}
	}
	return g
}

// straightLine is the 1x3 start-straight-end grid.
func straightLine(t *testing.T) *core.Grid {
	return buildGrid(t, [][]cell{{
		{t: core.Start},
		{t: core.Straight},
		{t: core.End},
	}})
}

func maskRow(res core.Result, row int) []bool {
	return res.Connected[row]
}

func equalBools(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
