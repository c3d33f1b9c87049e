package pipes

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/tui-pipes/internal/core"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/levels"
	"github.com/vovakirdan/tui-pipes/internal/logging"
	"github.com/vovakirdan/tui-pipes/internal/progress"
)

func lineLevel(id, name string) levels.Level {
	return levels.Level{
		ID: id, Name: name, Width: 3, Height: 1,
		Pipes: [][]core.PipeSpec{{
			{Type: "start", Fixed: true},
			{Type: "straight", Direction: 90},
			{Type: "end", Fixed: true},
		}},
	}
}

func newTestGame(t *testing.T, tracker progress.Tracker) *Game {
	t.Helper()
	catalog := levels.NewCatalog(
		lineLevel("a", "A"),
		lineLevel("b", "B"),
		levels.Level{ID: "c", Name: "Open", Width: 2, Height: 1, Pipes: [][]core.PipeSpec{{
			{Type: "start", Fixed: true},
			{Type: "straight"},
		}}},
	)
	g := New(context.Background(), catalog, Options{
		Tracker:     tracker,
		Logger:      logging.Discard(),
		ClearBanner: 100 * time.Millisecond,
	})
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30})
	return g
}

func step(g *Game, actions ...platformcore.Action) platformcore.StepResult {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func render(g *Game) *platformcore.Screen {
	s := platformcore.NewScreen(80, 24)
	g.Render(s)
	return s
}

func TestRotateClearsAndAdvances(t *testing.T) {
	tracker := progress.NewMemory()
	g := newTestGame(t, tracker)

	step(g, platformcore.ActionRight)
	if g.Cursor() != core.P(0, 1) {
		t.Fatalf("cursor = %v, want (0,1)", g.Cursor())
	}

	res := step(g, platformcore.ActionRotate)
	if !res.Cleared || !res.State.Solved {
		t.Fatalf("expected rotation to clear the stage, got %+v", res)
	}
	if ok, _ := tracker.IsCleared(context.Background(), "a"); !ok {
		t.Error("clear should be recorded in the tracker")
	}
	if !g.ShowingBanner() {
		t.Error("banner should be showing after a clear")
	}
	if !strings.Contains(render(g).String(), "Stage Clear!") {
		t.Error("rendered screen should show the clear banner")
	}

	// 100ms at 30 ticks per second is three ticks.
	step(g)
	step(g)
	if g.State().StageID != "a" {
		t.Fatalf("advanced too early to %s", g.State().StageID)
	}
	step(g)
	if g.State().StageID != "b" {
		t.Errorf("stage = %s, want b", g.State().StageID)
	}
	if g.Cursor() != core.P(0, 0) {
		t.Error("cursor should reset on a new stage")
	}
}

func TestBannerSkip(t *testing.T) {
	g := newTestGame(t, nil)
	step(g, platformcore.ActionRight)
	step(g, platformcore.ActionRotate)

	step(g, platformcore.ActionConfirm)
	if g.ShowingBanner() || g.State().StageID != "b" {
		t.Errorf("confirm should skip the banner, state %+v", g.State())
	}
}

func TestRotateFixedShowsStatus(t *testing.T) {
	g := newTestGame(t, nil)

	res := step(g, platformcore.ActionRotate)
	if res.Cleared || res.State.Rotations != 0 {
		t.Errorf("rotating the start should be rejected, got %+v", res)
	}
	if row := render(g).Row(23); !strings.Contains(row, "fixed") {
		t.Errorf("status row = %q", row)
	}

	step(g, platformcore.ActionRight)
	if row := render(g).Row(23); strings.Contains(row, "fixed") {
		t.Error("error status should clear when the cursor moves")
	}
}

func TestCursorWraps(t *testing.T) {
	g := newTestGame(t, nil)

	step(g, platformcore.ActionLeft)
	if g.Cursor() != core.P(0, 2) {
		t.Errorf("cursor = %v, want (0,2)", g.Cursor())
	}
	step(g, platformcore.ActionUp)
	if g.Cursor() != core.P(0, 2) {
		t.Errorf("single row board should keep the row, got %v", g.Cursor())
	}
}

func TestNextRestartAndFinish(t *testing.T) {
	g := newTestGame(t, nil)

	step(g, platformcore.ActionRight)
	step(g, platformcore.ActionRotate)
	step(g, platformcore.ActionConfirm)

	step(g, platformcore.ActionRestart)
	if st := g.State(); st.StageID != "b" || st.Rotations != 0 {
		t.Errorf("restart should reload the same stage, got %+v", st)
	}

	step(g, platformcore.ActionNext)
	st := g.State()
	if st.StageID != "c" || !st.Solved {
		t.Fatalf("sinkless stage should load solved, got %+v", st)
	}
	res := step(g, platformcore.ActionRight, platformcore.ActionRotate)
	if res.Cleared {
		t.Error("sinkless stage must never report a clear")
	}

	step(g, platformcore.ActionNext)
	if !g.State().Finished {
		t.Fatal("expected the game to finish after the last stage")
	}
	if !strings.Contains(render(g).String(), "All stages cleared!") {
		t.Error("finished screen should say so")
	}

	step(g, platformcore.ActionRestart)
	if st := g.State(); st.Finished || st.StageID != "a" {
		t.Errorf("restart after finishing should go back to the first stage, got %+v", st)
	}
}

func TestStart(t *testing.T) {
	g := newTestGame(t, nil)

	if err := g.Start("b"); err != nil {
		t.Fatalf("Start(b) failed: %v", err)
	}
	if g.Level().ID != "b" {
		t.Errorf("level = %s, want b", g.Level().ID)
	}
	if err := g.Start("missing"); err == nil {
		t.Error("expected error for unknown stage")
	}
}

func TestHUDMarksClearedStage(t *testing.T) {
	tracker := progress.NewMemory()
	if err := tracker.RecordCleared(context.Background(), "a"); err != nil {
		t.Fatal(err)
	}
	g := newTestGame(t, tracker)

	hud := render(g).Row(0)
	if !strings.Contains(hud, "Stage 1/3: A") || !strings.Contains(hud, "✓") {
		t.Errorf("HUD = %q", hud)
	}
}

func TestRenderBoard(t *testing.T) {
	g := newTestGame(t, nil)
	s := render(g)

	if !strings.Contains(s.String(), "▶━│ ◁") {
		t.Errorf("board not rendered:\n%s", s.String())
	}

	small := platformcore.NewScreen(20, 6)
	g.Render(small)
	if !strings.Contains(small.String(), "small") {
		t.Errorf("tiny screen should show a resize hint:\n%s", small.String())
	}
}

func TestLogsToContextLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.New(&buf, log.InfoLevel))

	catalog := levels.NewCatalog(levels.Level{ID: "odd", Name: "Odd", Width: 2, Height: 1, Pipes: [][]core.PipeSpec{{
		{Type: "start", Fixed: true},
		{Type: "valve"},
	}}})
	g := New(ctx, catalog, Options{})
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30})

	out := buf.String()
	if !strings.Contains(out, "stage data repaired") || !strings.Contains(out, "UNKNOWN_TYPE") {
		t.Errorf("repair warning not logged through ctx: %q", out)
	}
}
