package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/levels"
	"github.com/vovakirdan/tui-pipes/internal/progress"
)

// PickerEntry is one row of the stage picker.
type PickerEntry struct {
	ID      string
	Name    string
	Width   int
	Height  int
	Cleared bool
}

// PickerEntries lists the catalog with each stage's cleared flag.
func PickerEntries(ctx context.Context, catalog *levels.Catalog, tracker progress.Tracker) ([]PickerEntry, error) {
	cleared, err := progress.ClearSet(ctx, tracker, catalog.IDs())
	if err != nil {
		return nil, err
	}

	all := catalog.All()
	entries := make([]PickerEntry, len(all))
	for i, l := range all {
		entries[i] = PickerEntry{
			ID:      l.ID,
			Name:    l.Name,
			Width:   l.Width,
			Height:  l.Height,
			Cleared: cleared[l.ID],
		}
	}
	return entries, nil
}

// StagePickerModel lets the player choose a stage.
type StagePickerModel struct {
	entries      []PickerEntry
	cursor       int
	scrollOffset int
	width        int
	height       int
	keyMapper    *KeyMapper
	theme        Theme
	selected     *PickerEntry
	quitting     bool
	records      bool
	// standalone pickers own the program and quit once a choice is made.
	standalone bool
}

// NewStagePickerModel creates a picker. The cursor starts on the first
// stage not yet cleared.
func NewStagePickerModel(entries []PickerEntry, theme Theme, width, height int) StagePickerModel {
	m := StagePickerModel{
		entries:   entries,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		theme:     theme,
	}
	for i, e := range entries {
		if !e.Cleared {
			m.cursor = i
			break
		}
	}
	m.updateScroll()
	return m
}

// Init initializes the model.
func (m StagePickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m StagePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m StagePickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.entries)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.entries) > 0 {
			e := m.entries[m.cursor]
			m.selected = &e
			if m.standalone {
				return m, tea.Quit
			}
		}
	case MenuActionRecords:
		m.records = true
		if m.standalone {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m StagePickerModel) visibleItems() int {
	return max(3, m.height-10)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *StagePickerModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the stage list.
func (m StagePickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("P I P E S"), m.width))
	b.WriteString("\n\n")

	cleared := 0
	for _, e := range m.entries {
		if e.Cleared {
			cleared++
		}
	}
	subtitle := fmt.Sprintf("Select a stage  (%d/%d cleared)", cleared, len(m.entries))
	b.WriteString(centerText(m.theme.MenuDescription.Render(subtitle), m.width))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("No stages found"), m.width))
		b.WriteString("\n")
	}

	end := min(len(m.entries), m.scrollOffset+m.visibleItems())
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		b.WriteString(centerText(m.renderEntry(i), m.width))
		b.WriteString("\n")
	}
	if end < len(m.entries) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := m.theme.MenuControls.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Records  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func (m StagePickerModel) renderEntry(i int) string {
	e := m.entries[i]
	cursor := "  "
	style := m.theme.MenuItemNormal
	if i == m.cursor {
		cursor = "> "
		style = m.theme.MenuItemActive
	}

	mark := "  "
	if e.Cleared {
		mark = m.theme.MenuCleared.Render("✓ ")
	}
	size := m.theme.MenuDescription.Render(fmt.Sprintf(" %dx%d", e.Width, e.Height))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		style.Render(fmt.Sprintf("%s%2d. ", cursor, i+1)),
		mark,
		style.Render(e.Name),
		size,
	)
}

// Selected returns the chosen stage, or nil if none yet.
func (m StagePickerModel) Selected() *PickerEntry {
	return m.selected
}

// IsQuitting returns true if the user left the picker.
func (m StagePickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsRecords returns true if the user asked for the records board.
func (m StagePickerModel) WantsRecords() bool {
	return m.records
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// PickerResult holds the outcome of a standalone picker run.
type PickerResult struct {
	StageID      string
	WantsRecords bool
	Quit         bool
}

// RunStagePicker runs the picker in the current terminal.
func RunStagePicker(entries []PickerEntry, theme Theme, width, height int) (PickerResult, error) {
	model := NewStagePickerModel(entries, theme, width, height)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}
	m, ok := finalModel.(StagePickerModel)
	if !ok || m.IsQuitting() {
		return PickerResult{Quit: true}, nil
	}
	if m.WantsRecords() {
		return PickerResult{WantsRecords: true}, nil
	}
	if sel := m.Selected(); sel != nil {
		return PickerResult{StageID: sel.ID}, nil
	}
	return PickerResult{Quit: true}, nil
}
