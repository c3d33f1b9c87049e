package pipes

import (
	"fmt"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/tui-pipes/internal/core"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
)

const (
	hudHeight = 4
	// cellW is the number of columns per grid cell: the glyph and its east connector.
	cellW = 2
)

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.finished {
		g.renderOverlay(dst, "All stages cleared!", "R: play again | B: stages | Q: quit")
		return
	}
	if g.sess == nil {
		return
	}

	frame, ok := g.boardFrame(dst)
	if !ok {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBoard(dst, frame)
	g.renderStatus(dst)

	if g.bannerTicks > 0 {
		next := "Last stage!"
		if lvl, ok := g.catalog.Next(g.level.ID); ok {
			next = "Next: " + lvl.Name
		}
		g.renderOverlay(dst, "Stage Clear!", fmt.Sprintf("%d rotations | %s", g.sess.Rotations(), next))
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " Pipes"
	if g.sess != nil && !g.finished {
		hud = fmt.Sprintf(" Pipes | Stage %d/%d: %s | Rotations: %d",
			g.index+1, g.catalog.Len(), g.level.Name, g.sess.Rotations())
		if g.clearedBefore {
			hud += " | ✓"
		}
	}
	dst.DrawTextWithColor(0, 0, hud, g.palette.Text)
	dst.DrawHLine(0, 1, dst.Width(), '─', g.palette.Frame)
	dst.DrawTextWithColor(0, 2, " ←↑↓→: Move | Space: Rotate | R: Restart | N: Next | B: Stages | Q: Quit", g.palette.Hint)
	dst.DrawHLine(0, 3, dst.Width(), '─', g.palette.Frame)
}

// boardFrame returns the box around the board, centered below the HUD.
func (g *Game) boardFrame(dst *platformcore.Screen) (platformcore.Rect, bool) {
	b := g.sess.Board()
	w := b.Width()*cellW + 3
	h := b.Height() + 2

	area := platformcore.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-1)
	if !area.Fits(w, h) {
		return platformcore.Rect{}, false
	}
	return area.CenterIn(w, h), true
}

func (g *Game) renderBoard(dst *platformcore.Screen, frame platformcore.Rect) {
	dst.DrawBox(frame, g.palette.Frame)

	b := g.sess.Board()
	res := b.Result()
	originX := frame.X + 2
	originY := frame.Y + 1

	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			p, _ := b.Pipe(row, col)
			pos := core.P(row, col)
			connected := res.IsConnected(pos)
			x := originX + col*cellW
			y := originY + row

			color := g.pipeColor(p, connected)
			if pos == g.cursor {
				color = g.palette.Cursor
			}
			dst.SetWithColor(x, y, core.Glyph(p, connected), color)

			if col < b.Width()-1 {
				lineColor := g.palette.Pipe
				if connected {
					lineColor = g.palette.Flow
				}
				dst.SetWithColor(x+1, y, core.Connector(p, connected), lineColor)
			}
		}
	}

	if b.Width() > 0 && b.Height() > 0 {
		cx := originX + g.cursor.Col*cellW
		cy := originY + g.cursor.Row
		dst.SetWithColor(cx, frame.Y, '▾', g.palette.Cursor)
		dst.SetWithColor(cx, frame.Bottom()-1, '▴', g.palette.Cursor)
		dst.SetWithColor(frame.X, cy, '▸', g.palette.Cursor)
		dst.SetWithColor(frame.Right()-1, cy, '◂', g.palette.Cursor)
	}
}

func (g *Game) pipeColor(p core.Pipe, connected bool) platformcore.Color {
	switch {
	case p.Type == core.Start:
		return g.palette.Source
	case p.Type == core.End && !connected:
		return g.palette.Sink
	case connected:
		return g.palette.Flow
	case p.IsFixed():
		return g.palette.Fixed
	default:
		return g.palette.Pipe
	}
}

func (g *Game) renderStatus(dst *platformcore.Screen) {
	y := dst.Height() - 1
	if g.status != "" {
		color := g.palette.Hint
		if g.statusError {
			color = g.palette.Error
		}
		dst.DrawTextWithColor(1, y, g.status, color)
		return
	}

	res := g.sess.Result()
	msg := fmt.Sprintf("Ends reached: %d/%d", len(res.ReachedSinks), len(res.Sinks))
	if res.Solved {
		msg += " | Solved"
	}
	dst.DrawTextWithColor(1, y, msg, g.palette.Hint)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := platformcore.Max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 4
	box := platformcore.NewRect(0, 0, dst.Width(), dst.Height()).CenterIn(w, 5)

	dst.FillRect(box, platformcore.Cell{Rune: ' '})
	dst.DrawBox(box, g.palette.Banner)
	dst.DrawTextCentered(box.Y+1, line1, g.palette.Banner)
	dst.DrawTextCentered(box.Y+3, line2, g.palette.Text)
}
