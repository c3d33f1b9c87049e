package core

import "strings"

// Glyph tables indexed by PortSet mask (East=1, South=2, West=4, North=8).
var (
	lightGlyphs = [16]rune{'·', '╶', '╷', '┌', '╴', '─', '┐', '┬', '╵', '└', '│', '├', '┘', '┴', '┤', '┼'}
	heavyGlyphs = [16]rune{'·', '╺', '╻', '┏', '╸', '━', '┓', '┳', '╹', '┗', '┃', '┣', '┛', '┻', '┫', '╋'}
)

// Glyph returns the box-drawing rune for a pipe. Connected pipes use heavy
// lines. Start and end pipes are triangles pointing at their port.
func Glyph(p Pipe, connected bool) rune {
	ports := ActualPorts(p)
	switch p.Type {
	case Start:
		return arrow(ports, '▶', '▼', '◀', '▲')
	case End:
		return arrow(ports, '▷', '▽', '◁', '△')
	}
	if connected {
		return heavyGlyphs[ports&0xF]
	}
	return lightGlyphs[ports&0xF]
}

func arrow(ports PortSet, e, s, w, n rune) rune {
	switch {
	case ports.Has(East):
		return e
	case ports.Has(South):
		return s
	case ports.Has(West):
		return w
	default:
		return n
	}
}

// Connector returns the rune drawn between a cell and its east neighbour.
func Connector(p Pipe, connected bool) rune {
	if !ActualPorts(p).Has(East) {
		return ' '
	}
	if connected {
		return '━'
	}
	return '─'
}

// RenderASCII draws the grid as text, two columns per cell.
func RenderASCII(g *Grid, res Result) string {
	var sb strings.Builder
	for row := 0; row < g.H; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < g.W; col++ {
			p := g.Cells[row*g.W+col]
			c := res.IsConnected(P(row, col))
			sb.WriteRune(Glyph(p, c))
			if col < g.W-1 {
				sb.WriteRune(Connector(p, c))
			}
		}
	}
	return sb.String()
}
