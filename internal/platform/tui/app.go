package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pipes/internal/core"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/levels"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/session"
	"github.com/vovakirdan/tui-pipes/internal/logging"
	"github.com/vovakirdan/tui-pipes/internal/progress"
)

// AppDeps wires an AppModel to the stage catalog and persistence.
// Recorder and Records may be nil. A nil Logger means the one carried by the
// context passed to NewAppModel.
type AppDeps struct {
	Catalog     *levels.Catalog
	Tracker     progress.Tracker
	Recorder    session.Recorder
	Records     RecordSource
	Hooks       session.Hooks
	Theme       Theme
	Logger      *log.Logger
	Player      string
	ClearBanner time.Duration
}

type appScreen int

const (
	screenPicker appScreen = iota
	screenGame
	screenRecords
)

// AppModel manages the full session flow: picker -> game -> picker, with
// the records board one key away. It backs `pipes menu` and SSH sessions.
type AppModel struct {
	ctx      context.Context
	deps     AppDeps
	config   core.RuntimeConfig
	screen   appScreen
	picker   StagePickerModel
	game     *pipes.Game
	play     *GameModel
	records  RecordsModel
	quitting bool
}

// NewAppModel creates the top-level model.
func NewAppModel(ctx context.Context, deps AppDeps, cfg core.RuntimeConfig) AppModel {
	if deps.Tracker == nil {
		deps.Tracker = progress.NewMemory()
	}
	if deps.Logger == nil {
		deps.Logger = logging.FromContext(ctx)
	}

	palette := deps.Theme.Palette
	game := pipes.New(ctx, deps.Catalog, pipes.Options{
		Tracker:     deps.Tracker,
		Recorder:    deps.Recorder,
		Hooks:       deps.Hooks,
		Logger:      deps.Logger,
		Player:      deps.Player,
		Palette:     &palette,
		ClearBanner: deps.ClearBanner,
	})

	m := AppModel{
		ctx:    ctx,
		deps:   deps,
		config: cfg,
		game:   game,
	}
	m.picker = m.newPicker()
	return m
}

func (m AppModel) newPicker() StagePickerModel {
	entries, err := PickerEntries(m.ctx, m.deps.Catalog, m.deps.Tracker)
	if err != nil {
		m.deps.Logger.Warn("cannot read progress", "player", m.deps.Player, "err", err)
		entries, _ = PickerEntries(m.ctx, m.deps.Catalog, progress.NewMemory())
	}
	return NewStagePickerModel(entries, m.deps.Theme, m.config.ScreenW, m.config.ScreenH)
}

// Init initializes the session.
func (m AppModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenRecords:
		return m.updateRecords(msg)
	default:
		return m.updatePicker(msg)
	}
}

func (m AppModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.picker.Update(msg)
	if p, ok := next.(StagePickerModel); ok {
		m.picker = p
	}

	if m.picker.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.picker.WantsRecords() {
		m.records = NewRecordsModel(m.ctx, m.deps.Records, m.picker.entries, m.deps.Theme, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenRecords
		return m, m.records.Init()
	}

	if sel := m.picker.Selected(); sel != nil {
		m.game.Reset(m.config)
		if err := m.game.Start(sel.ID); err != nil {
			m.deps.Logger.Error("cannot start stage", "stage", sel.ID, "err", err)
			m.picker = m.newPicker()
			return m, nil
		}
		play := NewGameModel(m.game, m.deps.Theme, m.config)
		m.play = &play
		m.screen = screenGame
		return m, m.play.Init()
	}

	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	if g, ok := next.(GameModel); ok {
		m.play = &g
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.BackToMenu() {
		m.play = nil
		m.screen = screenPicker
		m.picker = m.newPicker()
		return m, m.picker.Init()
	}

	return m, cmd
}

func (m AppModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.records.Update(msg)
	if r, ok := next.(RecordsModel); ok {
		m.records = r
	}

	if m.records.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.records.IsGoingBack() {
		m.screen = screenPicker
		m.picker = m.newPicker()
		return m, m.picker.Init()
	}

	return m, cmd
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.play.View()
	case screenRecords:
		return m.records.View()
	default:
		return m.picker.View()
	}
}

// RunApp runs the full session flow in the current terminal.
func RunApp(ctx context.Context, deps AppDeps, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewAppModel(ctx, deps, cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
