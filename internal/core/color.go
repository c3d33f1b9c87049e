package core

// Color is an abstract foreground color for a screen cell.
// The TUI theme decides how each one looks.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Palette assigns colors to board elements.
type Palette struct {
	Frame  Color
	Pipe   Color // unconnected, rotatable pipe
	Fixed  Color // unconnected pipe the player cannot turn
	Flow   Color // pipe reached from a source
	Source Color
	Sink   Color
	Cursor Color
	Text   Color
	Hint   Color
	Banner Color
	Error  Color
}

// DefaultPalette is used when a game is not given one.
func DefaultPalette() Palette {
	return Palette{
		Frame:  ColorGray,
		Pipe:   ColorWhite,
		Fixed:  ColorBlue,
		Flow:   ColorBrightCyan,
		Source: ColorBrightGreen,
		Sink:   ColorOrange,
		Cursor: ColorBrightYellow,
		Text:   ColorCyan,
		Hint:   ColorGray,
		Banner: ColorBrightGreen,
		Error:  ColorBrightRed,
	}
}
