package core_test

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
)

func TestNewEditorLimits(t *testing.T) {
	tests := []struct {
		w, h int
		ok   bool
	}{
		{1, 1, true},
		{10, 10, true},
		{4, 6, true},
		{0, 4, false},
		{4, 11, false},
	}

	for _, tc := range tests {
		_, err := core.NewEditor(tc.w, tc.h)
		if (err == nil) != tc.ok {
			t.Errorf("NewEditor(%d,%d) err = %v, want ok=%v", tc.w, tc.h, err, tc.ok)
		}
	}
}

func TestEditorDefaultsToStraight(t *testing.T) {
	e, err := core.NewEditor(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range e.Grid().Cells {
		if p.Type != core.Straight || p.Direction != 0 || p.Fixed {
			t.Fatalf("unexpected default cell %+v", p)
		}
	}
}

func TestEditorPlaceAndTurn(t *testing.T) {
	e, _ := core.NewEditor(3, 1)

	if err := e.Turn(core.P(0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := e.Place(core.P(0, 0), core.Start, true); err != nil {
		t.Fatal(err)
	}
	if p, _ := e.Grid().Get(core.P(0, 0)); p.Type != core.Start || p.Direction != 0 {
		t.Errorf("placed pipe should reset direction, got %+v", p)
	}

	if err := e.Turn(core.P(0, 0)); err != nil {
		t.Errorf("editor should turn fixed cells: %v", err)
	}
	if p, _ := e.Grid().Get(core.P(0, 0)); p.Direction != 90 {
		t.Errorf("direction after turn = %d, want 90", p.Direction)
	}

	if err := e.Turn(core.P(2, 2)); err == nil {
		t.Error("expected error turning outside the grid")
	}
}

func TestEditorResizeKeepsOverlap(t *testing.T) {
	e, _ := core.NewEditor(2, 2)
	_ = e.Place(core.P(0, 0), core.Cross, false)
	_ = e.Place(core.P(1, 1), core.End, true)

	if err := e.Resize(3, 1); err != nil {
		t.Fatal(err)
	}
	g := e.Grid()
	if g.W != 3 || g.H != 1 {
		t.Fatalf("size = %dx%d, want 3x1", g.W, g.H)
	}
	if p, _ := g.Get(core.P(0, 0)); p.Type != core.Cross {
		t.Errorf("kept cell = %v, want cross", p.Type)
	}
	if p, _ := g.Get(core.P(0, 2)); p.Type != core.Straight {
		t.Errorf("new cell = %v, want straight", p.Type)
	}
	if len(g.Sinks()) != 0 {
		t.Error("cell outside the new bounds should be dropped")
	}

	if err := e.Resize(11, 1); err == nil {
		t.Error("expected resize past the limit to fail")
	}
}

func TestEditorStage(t *testing.T) {
	e, _ := core.NewEditor(3, 1)
	_ = e.Place(core.P(0, 0), core.Start, true)
	_ = e.Place(core.P(0, 2), core.End, true)

	s := e.Stage("custom", "Custom")
	if s.ID != "custom" || s.Width != 3 || s.Height != 1 {
		t.Errorf("unexpected stage header %+v", s)
	}
	g, _ := core.FromStage(s)
	if !core.Evaluate(g).Solved {
		t.Error("edited stage should be solved")
	}
}

func TestRenderASCII(t *testing.T) {
	g := straightLine(t)
	if got := core.RenderASCII(g, core.Evaluate(g)); got != "▶━━━◁" {
		t.Errorf("solved render = %q", got)
	}

	b := core.NewBoard(straightLine(t))
	res, _ := b.Rotate(0, 1)
	if got := core.RenderASCII(b.Grid(), res); got != "▶━│ ◁" {
		t.Errorf("broken render = %q", got)
	}

	multi := buildGrid(t, [][]cell{
		{{t: core.Cross}},
		{{t: core.Empty}},
	})
	lines := strings.Split(core.RenderASCII(multi, core.Evaluate(multi)), "\n")
	if len(lines) != 2 || lines[0] != "┼" || lines[1] != "·" {
		t.Errorf("multi-row render = %q", lines)
	}
}
