// Package session runs one play-through of a stage: it owns the Board,
// reports clears to the progress tracker and stores clear records.
package session

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
	"github.com/vovakirdan/tui-pipes/internal/progress"
	"github.com/vovakirdan/tui-pipes/internal/storage"
)

// Recorder stores finished plays. *storage.Store satisfies it.
type Recorder interface {
	SaveClear(ctx context.Context, e storage.ClearEntry) (int64, error)
}

// RotateEvent describes a rotation attempt.
type RotateEvent struct {
	StageID string
	Pos     core.Pos
	Err     error
	Solved  bool
}

// ClearEvent describes a stage being cleared.
type ClearEvent struct {
	StageID   string
	Player    string
	Rotations int
	Duration  time.Duration
}

// Hooks are optional callbacks for observers such as metrics.
type Hooks struct {
	OnRotate func(ctx context.Context, e RotateEvent)
	OnClear  func(ctx context.Context, e ClearEvent)
}

// Outcome is what a rotation produced.
type Outcome struct {
	Result core.Result
	// Cleared is true only when this rotation took the board from unsolved to solved.
	Cleared bool
}

// Session is a single play of one stage. Not safe for concurrent use.
type Session struct {
	stage     core.Stage
	board     *core.Board
	anomalies []core.Anomaly

	tracker  progress.Tracker
	recorder Recorder
	hooks    Hooks
	logger   *log.Logger
	player   string
	now      func() time.Time

	started time.Time
	clears  int
}

type Option func(*Session)

// WithTracker sets where clears are recorded.
func WithTracker(t progress.Tracker) Option {
	return func(s *Session) { s.tracker = t }
}

// WithRecorder sets where clear records are saved.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithHooks installs lifecycle callbacks.
func WithHooks(h Hooks) Option {
	return func(s *Session) { s.hooks = h }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithPlayer names the player in records.
func WithPlayer(player string) Option {
	return func(s *Session) { s.player = player }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New starts a session on a stage snapshot. Malformed stage data is repaired
// and each repair is logged as a warning.
func New(stage core.Stage, opts ...Option) *Session {
	s := &Session{
		stage:   stage,
		tracker: progress.NewMemory(),
		logger:  log.Default(),
		player:  "local",
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	grid, anomalies := core.FromStage(stage)
	for _, a := range anomalies {
		s.logger.Warn("stage data repaired", "stage", stage.ID, "code", a.Code, "msg", a.Message)
	}

	s.board = core.NewBoard(grid)
	s.anomalies = anomalies
	s.started = s.now()

	s.logger.Debug("session started",
		"stage", stage.ID,
		"size", grid.W*grid.H,
		"solved", s.board.Solved(),
	)
	return s
}

// Rotate turns the pipe at (row, col). Rejected rotations return the core
// error and the unchanged result. A false to true change of Solved records
// the clear; tracker and recorder failures are logged, not returned.
func (s *Session) Rotate(ctx context.Context, row, col int) (Outcome, error) {
	wasSolved := s.board.Solved()

	res, err := s.board.Rotate(row, col)
	if s.hooks.OnRotate != nil {
		s.hooks.OnRotate(ctx, RotateEvent{StageID: s.stage.ID, Pos: core.P(row, col), Err: err, Solved: res.Solved})
	}
	if err != nil {
		s.logger.Debug("rotation rejected", "stage", s.stage.ID, "row", row, "col", col, "err", err)
		return Outcome{Result: res}, err
	}

	out := Outcome{Result: res}
	if !wasSolved && res.Solved {
		out.Cleared = true
		s.onClear(ctx)
	}
	return out, nil
}

func (s *Session) onClear(ctx context.Context) {
	s.clears++
	ev := ClearEvent{
		StageID:   s.stage.ID,
		Player:    s.player,
		Rotations: s.board.Rotations(),
		Duration:  s.now().Sub(s.started),
	}

	s.logger.Info("stage cleared", "stage", ev.StageID, "rotations", ev.Rotations, "duration", ev.Duration.Round(time.Millisecond))

	if err := s.tracker.RecordCleared(ctx, s.stage.ID); err != nil {
		s.logger.Error("failed to record clear", "stage", s.stage.ID, "err", err)
	}

	if s.recorder != nil {
		_, err := s.recorder.SaveClear(ctx, storage.ClearEntry{
			Player:    ev.Player,
			StageID:   ev.StageID,
			Rotations: ev.Rotations,
			Duration:  ev.Duration,
		})
		if err != nil {
			s.logger.Error("failed to save clear record", "stage", s.stage.ID, "err", err)
		}
	}

	if s.hooks.OnClear != nil {
		s.hooks.OnClear(ctx, ev)
	}
}

// Stage returns the stage snapshot the session was built from.
func (s *Session) Stage() core.Stage { return s.stage }

// Board exposes the board for rendering. Mutate it only through Rotate.
func (s *Session) Board() *core.Board { return s.board }

// Result returns the latest evaluation.
func (s *Session) Result() core.Result { return s.board.Result() }

// Solved reports whether the board is currently solved.
func (s *Session) Solved() bool { return s.board.Solved() }

// Rotations returns the accepted rotation count.
func (s *Session) Rotations() int { return s.board.Rotations() }

// Clears returns how many times this session went from unsolved to solved.
func (s *Session) Clears() int { return s.clears }

// Anomalies returns the repairs made while loading the stage.
func (s *Session) Anomalies() []core.Anomaly { return s.anomalies }

// Elapsed returns the time since the session started.
func (s *Session) Elapsed() time.Duration { return s.now().Sub(s.started) }

// Cleared asks the tracker whether the stage was cleared before or during this session.
func (s *Session) Cleared(ctx context.Context) (bool, error) {
	return s.tracker.IsCleared(ctx, s.stage.ID)
}
