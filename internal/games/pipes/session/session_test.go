package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
	"github.com/vovakirdan/tui-pipes/internal/logging"
	"github.com/vovakirdan/tui-pipes/internal/storage"
)

// countingTracker records every call.
type countingTracker struct {
	recorded []string
	err      error
}

func (c *countingTracker) RecordCleared(_ context.Context, id string) error {
	c.recorded = append(c.recorded, id)
	return c.err
}

func (c *countingTracker) IsCleared(_ context.Context, id string) (bool, error) {
	for _, r := range c.recorded {
		if r == id {
			return true, nil
		}
	}
	return false, nil
}

type memRecorder struct {
	entries []storage.ClearEntry
}

func (m *memRecorder) SaveClear(_ context.Context, e storage.ClearEntry) (int64, error) {
	m.entries = append(m.entries, e)
	return int64(len(m.entries)), nil
}

func line(middleDir int) core.Stage {
	return core.Stage{
		ID: "line", Name: "Line", Width: 3, Height: 1,
		Pipes: [][]core.PipeSpec{{
			{Type: "start"},
			{Type: "straight", Direction: middleDir},
			{Type: "end"},
		}},
	}
}

func TestRotateRecordsClearOnTransition(t *testing.T) {
	ctx := context.Background()
	tracker := &countingTracker{}
	rec := &memRecorder{}

	s := New(line(90), WithTracker(tracker), WithRecorder(rec), WithLogger(logging.Discard()), WithPlayer("alice"))
	if s.Solved() {
		t.Fatal("stage should start unsolved")
	}

	out, err := s.Rotate(ctx, 0, 1)
	if err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	if !out.Cleared || !out.Result.Solved {
		t.Fatalf("expected clear, got %+v", out)
	}
	if len(tracker.recorded) != 1 || tracker.recorded[0] != "line" {
		t.Errorf("tracker calls = %v", tracker.recorded)
	}
	if len(rec.entries) != 1 || rec.entries[0].Rotations != 1 || rec.entries[0].Player != "alice" {
		t.Errorf("recorder entries = %+v", rec.entries)
	}

	// Breaking and repairing the path is a second clear.
	s.Rotate(ctx, 0, 1)
	out, _ = s.Rotate(ctx, 0, 1)
	if !out.Cleared {
		t.Error("expected second clear after breaking and repairing")
	}
	if len(tracker.recorded) != 2 || s.Clears() != 2 {
		t.Errorf("expected 2 clears, got tracker=%d session=%d", len(tracker.recorded), s.Clears())
	}
}

func TestLoadTimeSolvedIsNotAClear(t *testing.T) {
	ctx := context.Background()
	tracker := &countingTracker{}

	s := New(line(0), WithTracker(tracker), WithLogger(logging.Discard()))
	if !s.Solved() {
		t.Fatal("stage should start solved")
	}

	out, err := s.Rotate(ctx, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if out.Cleared {
		t.Error("breaking a solved board is not a clear")
	}
	if len(tracker.recorded) != 0 {
		t.Errorf("tracker should not be called, got %v", tracker.recorded)
	}
}

func TestSinklessStageNeverRecords(t *testing.T) {
	ctx := context.Background()
	tracker := &countingTracker{}
	stage := core.Stage{ID: "open", Width: 2, Height: 1, Pipes: [][]core.PipeSpec{{{Type: "start"}, {Type: "corner"}}}}

	s := New(stage, WithTracker(tracker), WithLogger(logging.Discard()))
	for i := 0; i < 4; i++ {
		out, err := s.Rotate(ctx, 0, 1)
		if err != nil {
			t.Fatal(err)
		}
		if !out.Result.Solved || out.Cleared {
			t.Fatalf("rotation %d: %+v", i, out)
		}
	}
	if len(tracker.recorded) != 0 {
		t.Errorf("tracker should not be called, got %v", tracker.recorded)
	}
}

func TestRotateRejected(t *testing.T) {
	ctx := context.Background()
	var events []RotateEvent
	s := New(line(90), WithLogger(logging.Discard()), WithHooks(Hooks{
		OnRotate: func(_ context.Context, e RotateEvent) { events = append(events, e) },
	}))

	_, err := s.Rotate(ctx, 0, 0)
	if !errors.Is(err, core.ErrFixedCell) {
		t.Errorf("expected ErrFixedCell, got %v", err)
	}
	_, err = s.Rotate(ctx, 4, 4)
	if !errors.Is(err, core.ErrInvalidPosition) {
		t.Errorf("expected ErrInvalidPosition, got %v", err)
	}
	if s.Rotations() != 0 {
		t.Errorf("Rotations() = %d, want 0", s.Rotations())
	}
	if len(events) != 2 || events[0].Err == nil {
		t.Errorf("expected 2 rejected rotate events, got %+v", events)
	}
}

func TestTrackerFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	tracker := &countingTracker{err: errors.New("disk full")}
	s := New(line(90), WithTracker(tracker), WithLogger(logging.New(&buf, log.InfoLevel)))

	out, err := s.Rotate(context.Background(), 0, 1)
	if err != nil {
		t.Fatalf("tracker failure should not fail the rotation: %v", err)
	}
	if !out.Cleared {
		t.Error("expected clear")
	}
	if !strings.Contains(buf.String(), "disk full") {
		t.Errorf("expected tracker error in log, got %q", buf.String())
	}
}

func TestAnomaliesAreLogged(t *testing.T) {
	var buf bytes.Buffer
	stage := line(45)
	stage.Height = 2

	s := New(stage, WithLogger(logging.New(&buf, log.WarnLevel)))

	if len(s.Anomalies()) != 2 {
		t.Errorf("expected 2 anomalies, got %v", s.Anomalies())
	}
	if !strings.Contains(buf.String(), core.AnomalyBadDirection) || !strings.Contains(buf.String(), core.AnomalyMissingRows) {
		t.Errorf("expected anomaly codes in log, got %q", buf.String())
	}
}

func TestClearHookAndClock(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	var cleared []ClearEvent

	s := New(line(90),
		WithLogger(logging.Discard()),
		WithClock(func() time.Time { return now }),
		WithHooks(Hooks{OnClear: func(_ context.Context, e ClearEvent) { cleared = append(cleared, e) }}),
	)

	now = start.Add(3 * time.Second)
	s.Rotate(context.Background(), 0, 1)

	if len(cleared) != 1 || cleared[0].Duration != 3*time.Second || cleared[0].StageID != "line" {
		t.Errorf("unexpected clear events %+v", cleared)
	}
	if ok, _ := s.Cleared(context.Background()); !ok {
		t.Error("default memory tracker should report the clear")
	}
}
