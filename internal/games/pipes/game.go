// Package pipes provides the playable pipe-rotation puzzle: cursor movement,
// rotation through a session, the clear banner and stage progression.
package pipes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/tui-pipes/internal/core"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/levels"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/session"
	"github.com/vovakirdan/tui-pipes/internal/logging"
	"github.com/vovakirdan/tui-pipes/internal/progress"
)

// Options configures a Game. Zero values fall back to defaults.
type Options struct {
	Tracker     progress.Tracker
	Recorder    session.Recorder
	Hooks       session.Hooks
	Logger      *log.Logger
	Player      string
	Palette     *platformcore.Palette
	ClearBanner time.Duration
}

// Game plays through a catalog of stages, one session at a time.
type Game struct {
	ctx     context.Context
	catalog *levels.Catalog
	opts    Options
	palette platformcore.Palette

	index  int
	level  levels.Level
	sess   *session.Session
	cursor core.Pos

	// Status line under the board. Errors clear on the next move or rotation.
	status      string
	statusError bool

	bannerTicks int
	finished    bool

	// clearedBefore caches the tracker answer for the HUD.
	clearedBefore bool

	tickRate int
	screenW  int
	screenH  int
}

// New creates a game over the catalog. ctx is passed to every tracker and
// recorder call made during play; without Options.Logger the game logs to
// the logger carried by ctx.
func New(ctx context.Context, catalog *levels.Catalog, opts Options) *Game {
	if opts.Tracker == nil {
		opts.Tracker = progress.NewMemory()
	}
	if opts.Logger == nil {
		opts.Logger = logging.FromContext(ctx)
	}
	if opts.Player == "" {
		opts.Player = "local"
	}
	if opts.ClearBanner <= 0 {
		opts.ClearBanner = 2 * time.Second
	}
	palette := platformcore.DefaultPalette()
	if opts.Palette != nil {
		palette = *opts.Palette
	}

	cfg := platformcore.DefaultConfig()
	return &Game{
		ctx:      ctx,
		catalog:  catalog,
		opts:     opts,
		palette:  palette,
		tickRate: cfg.TickRate,
		screenW:  cfg.ScreenW,
		screenH:  cfg.ScreenH,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "pipes"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Pipes"
}

// Reset applies the runtime config and reloads the current stage.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	if cfg.TickRate > 0 {
		g.tickRate = cfg.TickRate
	}
	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.load(g.index)
}

// Resize changes the render area without touching play state.
func (g *Game) Resize(w, h int) {
	if w > 0 {
		g.screenW = w
	}
	if h > 0 {
		g.screenH = h
	}
}

// Start jumps to the stage with the given ID.
func (g *Game) Start(id string) error {
	i := g.catalog.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("pipes: unknown stage %q", id)
	}
	g.load(i)
	return nil
}

func (g *Game) load(i int) {
	g.bannerTicks = 0
	g.status = ""
	g.statusError = false
	g.cursor = core.P(0, 0)

	lvl, ok := g.catalog.At(i)
	if !ok {
		g.finished = true
		g.sess = nil
		return
	}

	g.finished = false
	g.index = i
	g.level = lvl
	g.sess = session.New(lvl.Stage(),
		session.WithTracker(g.opts.Tracker),
		session.WithRecorder(g.opts.Recorder),
		session.WithHooks(g.opts.Hooks),
		session.WithLogger(g.opts.Logger),
		session.WithPlayer(g.opts.Player),
	)
	cleared, err := g.sess.Cleared(g.ctx)
	if err != nil {
		g.opts.Logger.Warn("cannot read progress", "stage", lvl.ID, "err", err)
	}
	g.clearedBefore = cleared

	if g.sess.Solved() && len(g.sess.Board().Grid().Sinks()) == 0 {
		g.setStatus("This stage has no ends. Press N to move on.", false)
	}
}

func (g *Game) advance() {
	g.load(g.index + 1)
}

// Step applies one tick of input.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.sess == nil && !g.finished {
		g.load(g.index)
	}
	if g.finished {
		if in.Has(platformcore.ActionRestart) {
			g.load(0)
		}
		return platformcore.StepResult{State: g.State()}
	}

	if g.bannerTicks > 0 {
		g.bannerTicks--
		skip := in.Has(platformcore.ActionConfirm) || in.Has(platformcore.ActionRotate) || in.Has(platformcore.ActionNext)
		if skip || g.bannerTicks == 0 {
			g.advance()
		}
		return platformcore.StepResult{State: g.State()}
	}

	switch {
	case in.Has(platformcore.ActionRestart):
		g.load(g.index)
		return platformcore.StepResult{State: g.State()}
	case in.Has(platformcore.ActionNext):
		g.advance()
		return platformcore.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	var cleared bool
	if in.Has(platformcore.ActionRotate) {
		cleared = g.rotate()
	}
	return platformcore.StepResult{State: g.State(), Cleared: cleared}
}

func (g *Game) moveCursor(in platformcore.InputFrame) {
	b := g.sess.Board()
	if b.Width() == 0 || b.Height() == 0 {
		return
	}
	row, col := g.cursor.Row, g.cursor.Col
	if in.Has(platformcore.ActionUp) {
		row--
	}
	if in.Has(platformcore.ActionDown) {
		row++
	}
	if in.Has(platformcore.ActionLeft) {
		col--
	}
	if in.Has(platformcore.ActionRight) {
		col++
	}
	next := core.P(
		platformcore.Wrap(row, b.Height()),
		platformcore.Wrap(col, b.Width()),
	)
	if next != g.cursor && g.statusError {
		g.setStatus("", false)
	}
	g.cursor = next
}

func (g *Game) rotate() bool {
	out, err := g.sess.Rotate(g.ctx, g.cursor.Row, g.cursor.Col)
	switch {
	case errors.Is(err, core.ErrFixedCell):
		g.setStatus("That pipe is fixed in place.", true)
		return false
	case errors.Is(err, core.ErrInvalidPosition):
		g.setStatus("Nothing to rotate here.", true)
		return false
	case err != nil:
		g.setStatus(err.Error(), true)
		return false
	}

	g.setStatus("", false)
	if out.Cleared {
		g.clearedBefore = true
		g.bannerTicks = bannerTicks(g.opts.ClearBanner, g.tickRate)
	}
	return out.Cleared
}

func (g *Game) setStatus(msg string, isErr bool) {
	g.status = msg
	g.statusError = isErr
}

func bannerTicks(d time.Duration, tickRate int) int {
	n := int(d * time.Duration(tickRate) / time.Second)
	if n < 1 {
		n = 1
	}
	return n
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.sess == nil {
		return platformcore.GameState{Finished: g.finished}
	}
	return platformcore.GameState{
		StageID:   g.level.ID,
		Rotations: g.sess.Rotations(),
		Solved:    g.sess.Solved(),
		Finished:  g.finished,
	}
}

// Session returns the active session, or nil once every stage has been played.
func (g *Game) Session() *session.Session { return g.sess }

// Level returns the stage being played.
func (g *Game) Level() levels.Level { return g.level }

// Cursor returns the selected cell.
func (g *Game) Cursor() core.Pos { return g.cursor }

// ShowingBanner reports whether the clear banner is up.
func (g *Game) ShowingBanner() bool { return g.bannerTicks > 0 }
