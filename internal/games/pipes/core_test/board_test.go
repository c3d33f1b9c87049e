package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
)

func TestBoardRotateBreaksAndRestores(t *testing.T) {
	b := core.NewBoard(straightLine(t))
	if !b.Solved() {
		t.Fatal("expected initial straight path to be solved")
	}

	res, err := b.Rotate(0, 1)
	if err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	if res.Solved {
		t.Error("expected rotation to break the path")
	}
	if want := []bool{true, false, false}; !equalBools(maskRow(res, 0), want) {
		t.Errorf("connected = %v, want %v", maskRow(res, 0), want)
	}
	if p, _ := b.Pipe(0, 1); p.Direction != 90 {
		t.Errorf("direction = %d, want 90", p.Direction)
	}

	res, err = b.Rotate(0, 1)
	if err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	if !res.Solved {
		t.Error("straight at 180 should reconnect the path")
	}
	if b.Rotations() != 2 {
		t.Errorf("Rotations() = %d, want 2", b.Rotations())
	}
}

func TestBoardRotateFixedCell(t *testing.T) {
	tests := []struct {
		name string
		row  int
		col  int
		grid func(t *testing.T) *core.Grid
	}{
		{"start", 0, 0, straightLine},
		{"end", 0, 2, straightLine},
		{"fixed straight", 0, 1, func(t *testing.T) *core.Grid {
			return buildGrid(t, [][]cell{{
				{t: core.Start},
				{t: core.Straight, fixed: true},
				{t: core.End},
			}})
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := core.NewBoard(tc.grid(t))
			before := b.Grid()
			prev := b.Result()

			res, err := b.Rotate(tc.row, tc.col)
			if !errors.Is(err, core.ErrFixedCell) {
				t.Fatalf("expected ErrFixedCell, got %v", err)
			}
			if !res.Equal(prev) {
				t.Error("rejected rotation changed the result")
			}
			if !b.Grid().Equal(before) {
				t.Error("rejected rotation changed the grid")
			}
			if b.Rotations() != 0 {
				t.Errorf("Rotations() = %d, want 0", b.Rotations())
			}
		})
	}
}

func TestBoardRotateOutOfBounds(t *testing.T) {
	b := core.NewBoard(straightLine(t))
	before := b.Grid()

	for _, pos := range []core.Pos{core.P(-1, 0), core.P(0, 3), core.P(1, 0), core.P(0, -1)} {
		res, err := b.Rotate(pos.Row, pos.Col)
		if !errors.Is(err, core.ErrInvalidPosition) {
			t.Errorf("Rotate%s: expected ErrInvalidPosition, got %v", pos, err)
		}
		if !res.Solved {
			t.Errorf("Rotate%s: result changed", pos)
		}
	}
	if !b.Grid().Equal(before) {
		t.Error("out-of-bounds rotation changed the grid")
	}
}

func TestBoardRotateEmptyCell(t *testing.T) {
	g := buildGrid(t, [][]cell{{{t: core.Start}, {t: core.Empty}, {t: core.End}}})
	b := core.NewBoard(g)

	res, err := b.Rotate(0, 1)
	if err != nil {
		t.Fatalf("rotating an empty cell should be allowed: %v", err)
	}
	if res.Solved {
		t.Error("empty cell cannot carry flow")
	}
	if p, _ := b.Pipe(0, 1); p.Type != core.Empty || p.Direction != 90 {
		t.Errorf("unexpected pipe after rotate: %+v", p)
	}
}

func TestBoardGridIsCopy(t *testing.T) {
	b := core.NewBoard(straightLine(t))
	g := b.Grid()
	_ = g.Place(core.P(0, 1), core.Pipe{Type: core.Empty})

	if p, _ := b.Pipe(0, 1); p.Type != core.Straight {
		t.Error("mutating the returned grid affected the board")
	}
	if b.Width() != 3 || b.Height() != 1 {
		t.Errorf("size = %dx%d, want 3x1", b.Width(), b.Height())
	}
}

func TestGridSetAndPlace(t *testing.T) {
	g := straightLine(t)

	if err := g.Set(core.P(0, 0), core.Pipe{Type: core.Straight}); !errors.Is(err, core.ErrFixedCell) {
		t.Errorf("Set on start: expected ErrFixedCell, got %v", err)
	}
	if err := g.Set(core.P(5, 5), core.Pipe{}); !errors.Is(err, core.ErrInvalidPosition) {
		t.Errorf("Set out of bounds: expected ErrInvalidPosition, got %v", err)
	}
	if err := g.Set(core.P(0, 1), core.Pipe{Type: core.Cross}); err != nil {
		t.Errorf("Set on free cell: %v", err)
	}
	if err := g.Place(core.P(0, 0), core.Pipe{Type: core.Empty}); err != nil {
		t.Errorf("Place should overwrite fixed cells: %v", err)
	}
	if got := len(g.Sources()); got != 0 {
		t.Errorf("Sources() = %d after overwrite, want 0", got)
	}
}
