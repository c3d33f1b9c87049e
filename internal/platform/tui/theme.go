package tui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pipes/internal/core"
)

// Theme contains every visual style used by the pipes frontends.
type Theme struct {
	Name string

	// Palette assigns abstract colors to board elements.
	Palette core.Palette
	// Colors turns abstract colors into terminal styles.
	Colors map[core.Color]lipgloss.Style

	// Stage picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuCleared     lipgloss.Style
	MenuControls    lipgloss.Style

	// Records table styles
	TableBorder   lipgloss.Color
	TableSelectFg lipgloss.Color
	TableSelectBg lipgloss.Color
}

func foregrounds(codes map[core.Color]string) map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(codes)+1)
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for c, code := range codes {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return styles
}

// ClassicTheme uses the 16 basic ANSI colors and works on any terminal.
func ClassicTheme() Theme {
	return Theme{
		Name:    "classic",
		Palette: core.DefaultPalette(),
		Colors: foregrounds(map[core.Color]string{
			core.ColorRed:           "1",
			core.ColorGreen:         "2",
			core.ColorYellow:        "3",
			core.ColorBlue:          "4",
			core.ColorMagenta:       "5",
			core.ColorCyan:          "6",
			core.ColorWhite:         "7",
			core.ColorBrightRed:     "9",
			core.ColorBrightGreen:   "10",
			core.ColorBrightYellow:  "11",
			core.ColorBrightBlue:    "12",
			core.ColorBrightMagenta: "13",
			core.ColorBrightCyan:    "14",
			core.ColorBrightWhite:   "15",
			core.ColorOrange:        "208",
			core.ColorGray:          "245",
		}),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuCleared:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		MenuControls:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		TableBorder:   lipgloss.Color("240"),
		TableSelectFg: lipgloss.Color("229"),
		TableSelectBg: lipgloss.Color("57"),
	}
}

// NeonTheme brightens the water and the ends.
func NeonTheme() Theme {
	theme := ClassicTheme()
	theme.Name = "neon"
	theme.Colors[core.ColorBrightCyan] = lipgloss.NewStyle().Foreground(lipgloss.Color("87")).Bold(true)
	theme.Colors[core.ColorBrightGreen] = lipgloss.NewStyle().Foreground(lipgloss.Color("118"))
	theme.Colors[core.ColorOrange] = lipgloss.NewStyle().Foreground(lipgloss.Color("199"))
	theme.Colors[core.ColorBrightYellow] = lipgloss.NewStyle().Foreground(lipgloss.Color("227"))
	theme.Colors[core.ColorBlue] = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("199")).Bold(true)
	return theme
}

// PastelTheme uses softer tones.
func PastelTheme() Theme {
	theme := ClassicTheme()
	theme.Name = "pastel"
	theme.Colors[core.ColorBrightCyan] = lipgloss.NewStyle().Foreground(lipgloss.Color("123"))
	theme.Colors[core.ColorBrightGreen] = lipgloss.NewStyle().Foreground(lipgloss.Color("157"))
	theme.Colors[core.ColorOrange] = lipgloss.NewStyle().Foreground(lipgloss.Color("218"))
	theme.Colors[core.ColorBrightYellow] = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	theme.Colors[core.ColorBlue] = lipgloss.NewStyle().Foreground(lipgloss.Color("183"))
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("218")).Bold(true)
	return theme
}

// MonochromeTheme relies on weight instead of hue.
func MonochromeTheme() Theme {
	theme := ClassicTheme()
	theme.Name = "monochrome"
	for c := range theme.Colors {
		theme.Colors[c] = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	}
	theme.Colors[core.ColorDefault] = lipgloss.NewStyle()
	theme.Colors[core.ColorBrightCyan] = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.Colors[core.ColorBrightYellow] = lipgloss.NewStyle().Reverse(true)
	theme.Colors[core.ColorGray] = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	theme.MenuTitle = lipgloss.NewStyle().Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Reverse(true)
	theme.MenuCleared = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	return theme
}

var themes = map[string]func() Theme{
	"classic":    ClassicTheme,
	"neon":       NeonTheme,
	"pastel":     PastelTheme,
	"monochrome": MonochromeTheme,
}

// ThemeByName returns the named theme. Unknown names give the classic theme
// and false.
func ThemeByName(name string) (Theme, bool) {
	if f, ok := themes[name]; ok {
		return f(), true
	}
	return ClassicTheme(), false
}

// ThemeNames returns the available theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Style returns the style for an abstract color.
func (t Theme) Style(c core.Color) lipgloss.Style {
	if s, ok := t.Colors[c]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
