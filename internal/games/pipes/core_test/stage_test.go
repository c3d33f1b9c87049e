package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
)

func anomalyCodes(as []core.Anomaly) []string {
	codes := make([]string, len(as))
	for i, a := range as {
		codes[i] = a.Code
	}
	return codes
}

func hasCode(as []core.Anomaly, code string) bool {
	for _, a := range as {
		if a.Code == code {
			return true
		}
	}
	return false
}

func TestFromStageWellFormed(t *testing.T) {
	s := core.Stage{
		ID: "line", Name: "Line", Width: 3, Height: 1,
		Pipes: [][]core.PipeSpec{{
			{Type: "start", Fixed: true},
			{Type: "straight", Direction: 90},
			{Type: "end", Fixed: true},
		}},
	}

	g, anomalies := core.FromStage(s)
	if len(anomalies) != 0 {
		t.Fatalf("unexpected anomalies: %v", anomalyCodes(anomalies))
	}
	if g.W != 3 || g.H != 1 {
		t.Fatalf("size = %dx%d, want 3x1", g.W, g.H)
	}
	if p, _ := g.Get(core.P(0, 1)); p.Type != core.Straight || p.Direction != 90 {
		t.Errorf("cell (0,1) = %+v", p)
	}
}

func TestFromStageRepairs(t *testing.T) {
	tests := []struct {
		name  string
		stage core.Stage
		code  string
		check func(t *testing.T, g *core.Grid)
	}{
		{
			name:  "missing rows padded",
			stage: core.Stage{Width: 2, Height: 2, Pipes: [][]core.PipeSpec{{{Type: "cross"}, {Type: "cross"}}}},
			code:  core.AnomalyMissingRows,
			check: func(t *testing.T, g *core.Grid) {
				if p, _ := g.Get(core.P(1, 1)); p.Type != core.Empty {
					t.Errorf("padded cell = %v, want empty", p.Type)
				}
			},
		},
		{
			name: "extra rows dropped",
			stage: core.Stage{Width: 1, Height: 1, Pipes: [][]core.PipeSpec{
				{{Type: "cross"}}, {{Type: "tee"}},
			}},
			code: core.AnomalyExtraRows,
			check: func(t *testing.T, g *core.Grid) {
				if g.H != 1 {
					t.Errorf("height = %d, want 1", g.H)
				}
			},
		},
		{
			name:  "short row padded",
			stage: core.Stage{Width: 3, Height: 1, Pipes: [][]core.PipeSpec{{{Type: "start"}}}},
			code:  core.AnomalyShortRow,
			check: func(t *testing.T, g *core.Grid) {
				if p, _ := g.Get(core.P(0, 2)); p.Type != core.Empty {
					t.Errorf("padded cell = %v, want empty", p.Type)
				}
			},
		},
		{
			name:  "long row truncated",
			stage: core.Stage{Width: 1, Height: 1, Pipes: [][]core.PipeSpec{{{Type: "start"}, {Type: "end"}}}},
			code:  core.AnomalyLongRow,
			check: func(t *testing.T, g *core.Grid) {
				if len(g.Sinks()) != 0 {
					t.Error("truncated end should be gone")
				}
			},
		},
		{
			name:  "unknown type",
			stage: core.Stage{Width: 1, Height: 1, Pipes: [][]core.PipeSpec{{{Type: "valve"}}}},
			code:  core.AnomalyUnknownType,
			check: func(t *testing.T, g *core.Grid) {
				if p, _ := g.Get(core.P(0, 0)); p.Type != core.Empty {
					t.Errorf("unknown type became %v, want empty", p.Type)
				}
			},
		},
		{
			name:  "direction out of range",
			stage: core.Stage{Width: 1, Height: 1, Pipes: [][]core.PipeSpec{{{Type: "corner", Direction: 450}}}},
			code:  core.AnomalyBadDirection,
			check: func(t *testing.T, g *core.Grid) {
				if p, _ := g.Get(core.P(0, 0)); p.Direction != 90 {
					t.Errorf("direction = %d, want 90", p.Direction)
				}
			},
		},
		{
			name:  "direction not a quarter turn",
			stage: core.Stage{Width: 1, Height: 1, Pipes: [][]core.PipeSpec{{{Type: "corner", Direction: 45}}}},
			code:  core.AnomalyBadDirection,
			check: func(t *testing.T, g *core.Grid) {
				if p, _ := g.Get(core.P(0, 0)); p.Direction != 0 {
					t.Errorf("direction = %d, want 0", p.Direction)
				}
			},
		},
		{
			name:  "oversized width",
			stage: core.Stage{Width: 100000, Height: 100000},
			code:  core.AnomalyOversize,
			check: func(t *testing.T, g *core.Grid) {
				if g.W != core.MaxStageSize || g.H != core.MaxStageSize {
					t.Errorf("size = %dx%d, want %dx%d", g.W, g.H, core.MaxStageSize, core.MaxStageSize)
				}
			},
		},
		{
			name:  "negative size",
			stage: core.Stage{Width: -2, Height: 1, Pipes: [][]core.PipeSpec{{}}},
			code:  core.AnomalyNegativeSize,
			check: func(t *testing.T, g *core.Grid) {
				if g.W != 0 {
					t.Errorf("width = %d, want 0", g.W)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, anomalies := core.FromStage(tc.stage)
			if !hasCode(anomalies, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, anomalyCodes(anomalies))
			}
			tc.check(t, g)
		})
	}
}

func TestFromStageNullCellIsEmpty(t *testing.T) {
	s := core.Stage{Width: 1, Height: 1, Pipes: [][]core.PipeSpec{{{}}}}

	g, anomalies := core.FromStage(s)
	if len(anomalies) != 0 {
		t.Errorf("blank cell should not be an anomaly, got %v", anomalyCodes(anomalies))
	}
	if p, _ := g.Get(core.P(0, 0)); p.Type != core.Empty {
		t.Errorf("blank cell = %v, want empty", p.Type)
	}
}

func TestAnomalyError(t *testing.T) {
	a := core.Anomaly{Code: core.AnomalyUnknownType, Row: 0, Col: 1, Message: "bad"}
	if got := a.Error(); got != "[UNKNOWN_TYPE] bad" {
		t.Errorf("Error() = %q", got)
	}
}

func TestToStageRoundTrip(t *testing.T) {
	g := buildGrid(t, [][]cell{
		{{t: core.Start}, {t: core.Corner, dir: 90}},
		{{t: core.Tee, dir: 180, fixed: true}, {t: core.End, dir: 270}},
	})

	s := core.ToStage("id", "name", g)
	if s.Pipes[0][0].Type != "start" || !s.Pipes[0][0].Fixed {
		t.Errorf("start exported as %+v", s.Pipes[0][0])
	}

	back, anomalies := core.FromStage(s)
	if len(anomalies) != 0 {
		t.Fatalf("unexpected anomalies: %v", anomalyCodes(anomalies))
	}
	if !core.Evaluate(back).Equal(core.Evaluate(g)) {
		t.Error("exported stage evaluates differently")
	}
	if p, _ := back.Get(core.P(1, 0)); p.Type != core.Tee || p.Direction != 180 || !p.Fixed {
		t.Errorf("tee exported as %+v", p)
	}
}

func TestFromStageOverflowingSize(t *testing.T) {
	g, anomalies := core.FromStage(core.Stage{Width: 1 << 62, Height: 4})
	if !hasCode(anomalies, core.AnomalyOversize) {
		t.Fatalf("anomalies = %v, want %s", anomalyCodes(anomalies), core.AnomalyOversize)
	}
	if g.W != core.MaxStageSize || g.H != 4 {
		t.Fatalf("size = %dx%d, want %dx4", g.W, g.H, core.MaxStageSize)
	}
	if len(g.Cells) != g.W*g.H {
		t.Fatalf("len(Cells) = %d, want %d", len(g.Cells), g.W*g.H)
	}
	if _, ok := g.Get(core.P(3, core.MaxStageSize-1)); !ok {
		t.Error("last cell should be addressable")
	}
	if res := core.Evaluate(g); !res.Solved || len(res.Connected) != 4 {
		t.Errorf("empty oversized board: solved=%v rows=%d", res.Solved, len(res.Connected))
	}
}

func TestNewGridClampsSize(t *testing.T) {
	g := core.NewGrid(core.MaxStageSize+1, -3)
	if g.W != core.MaxStageSize || g.H != 0 || len(g.Cells) != 0 {
		t.Errorf("NewGrid = %dx%d with %d cells", g.W, g.H, len(g.Cells))
	}
}
