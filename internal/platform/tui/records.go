package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pipes/internal/storage"
)

// Records board layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the stage sidebar
	sidebarWidth       = 24
	maxRecords         = 100
)

// RecordSource returns the best clears of a stage. *storage.Store satisfies it.
type RecordSource interface {
	BestClears(ctx context.Context, stageID string, limit int) ([]storage.ClearEntry, error)
}

// RecordsKeyMap defines the key bindings for the records board.
type RecordsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextStage key.Binding
	PrevStage key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextStage, k.PrevStage, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextStage, k.PrevStage},
		{k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextStage: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next stage"),
		),
		PrevStage: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev stage"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordsModel shows the fewest-rotation clears per stage.
type RecordsModel struct {
	ctx         context.Context
	stages      []PickerEntry
	stageCursor int
	source      RecordSource
	records     []storage.ClearEntry
	loadErr     error
	table       table.Model
	help        help.Model
	keys        RecordsKeyMap
	theme       Theme
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
	standalone  bool
}

// NewRecordsModel creates a records board. A nil source shows an empty board.
func NewRecordsModel(ctx context.Context, source RecordSource, stages []PickerEntry, theme Theme, width, height int) RecordsModel {
	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		ctx:         ctx,
		stages:      stages,
		source:      source,
		keys:        DefaultRecordsKeyMap(),
		help:        h,
		theme:       theme,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadRecords()
	return m
}

func (m *RecordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 12},
		{Title: "Turns", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 14},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if extra := tableWidth - 56; extra > 0 {
		columns[1].Width += min(extra, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.TableBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(m.theme.TableSelectFg).
		Background(m.theme.TableSelectBg).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *RecordsModel) loadRecords() {
	m.records = nil
	m.loadErr = nil
	if m.source != nil && len(m.stages) > 0 {
		m.records, m.loadErr = m.source.BestClears(m.ctx, m.stages[m.stageCursor].ID, maxRecords)
	}
	m.updateTableRows()
}

func (m *RecordsModel) updateTableRows() {
	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Player,
			fmt.Sprintf("%d", r.Rotations),
			formatDuration(r.Duration),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func formatDuration(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records board.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextStage):
			if len(m.stages) > 0 {
				m.stageCursor = (m.stageCursor + 1) % len(m.stages)
				m.loadRecords()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevStage):
			if len(m.stages) > 0 {
				m.stageCursor = (m.stageCursor - 1 + len(m.stages)) % len(m.stages)
				m.loadRecords()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records board.
func (m RecordsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RECORDS"
	if len(m.stages) > 0 {
		title = fmt.Sprintf("RECORDS - %s", m.stages[m.stageCursor].Name)
	}
	b.WriteString(m.theme.MenuTitle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(m.theme.MenuControls.Render(m.help.View(m.keys)))

	return b.String()
}

func (m RecordsModel) boxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.TableBorder).
		Padding(0, 1)
}

func (m RecordsModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Stages\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, st := range m.stages {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.stageCursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		sidebar.WriteString(style.Render(cursor + truncate(st.Name, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.boxStyle().Width(sidebarWidth).Render(sidebar.String()),
		"  ",
		m.boxStyle().Render(m.renderTableContent()),
	)
}

func (m RecordsModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.stages) > 0 {
		tab := fmt.Sprintf("< %s >", truncate(m.stages[m.stageCursor].Name, m.width-8))
		b.WriteString(centerText(m.theme.MenuItemActive.Render(tab), m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(centerText(m.boxStyle().Render(m.renderTableContent()), m.width))
	return b.String()
}

func (m RecordsModel) renderTableContent() string {
	empty := lipgloss.NewStyle().Italic(true).Padding(2, 4).Inherit(m.theme.MenuDescription)
	switch {
	case m.loadErr != nil:
		return empty.Render("Could not load records:\n" + m.loadErr.Error())
	case len(m.records) == 0:
		return empty.Render("No clears recorded yet.\nSolve this stage to set a record!")
	}
	return m.table.View()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 2 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if the user wants the stage picker.
func (m RecordsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m RecordsModel) IsQuitting() bool {
	return m.quitting
}

// RunRecords runs the records board in the current terminal.
// Returns true if the user wants to go back to the picker.
func RunRecords(ctx context.Context, source RecordSource, stages []PickerEntry, theme Theme, width, height int) (goBack bool, err error) {
	model := NewRecordsModel(ctx, source, stages, theme, width, height)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(RecordsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
