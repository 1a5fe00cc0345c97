package term

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Pong/internal/pong"
)

var (
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorSlateGray)
	styleLeft   = tcell.StyleDefault.Foreground(tcell.ColorIndianRed)
	styleRight  = tcell.StyleDefault.Foreground(tcell.ColorSteelBlue)
	styleBall   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// grid maps court coordinates onto the inner cells of the court box. Row 0 of
// the screen holds the score line and the last row the status line.
type grid struct {
	x0, y0 int // top-left inner cell
	w, h   int // inner size in cells
}

func newGrid(sw, sh int) grid {
	return grid{x0: 1, y0: 2, w: max(sw-2, 1), h: max(sh-4, 1)}
}

func (g grid) col(x float64) int {
	f := (x + pong.CourtHalfWidth) / (2 * pong.CourtHalfWidth)
	c := int(math.Round(f * float64(g.w-1)))
	return g.x0 + min(max(c, 0), g.w-1)
}

func (g grid) row(y float64) int {
	f := (pong.CourtHalfHeight - y) / (2 * pong.CourtHalfHeight)
	r := int(math.Round(f * float64(g.h-1)))
	return g.y0 + min(max(r, 0), g.h-1)
}

func putStr(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func putCentred(s tcell.Screen, cx, y int, str string, style tcell.Style) {
	putStr(s, cx-len([]rune(str))/2, y, str, style)
}

func (t *Terminal) draw() {
	s := t.screen
	s.Clear()
	sw, sh := s.Size()
	g := newGrid(sw, sh)
	snap := t.sim.Snapshot()

	t.drawBox(g)
	t.drawPaddle(g, &snap.Left, styleLeft)
	t.drawPaddle(g, &snap.Right, styleRight)

	cx := g.x0 + g.w/2
	if snap.Phase == pong.PhasePlaying {
		s.SetContent(g.col(snap.Ball.Pos.X), g.row(snap.Ball.Pos.Y), '●', nil, styleBall)
		putCentred(s, cx, 0, scoreLine(snap.Score), styleText)
	} else {
		t.drawStartScreen(g, &snap)
	}

	putStr(s, 1, sh-1, fmt.Sprintf("T=%d  %.0f u/s  %s", snap.Tick, snap.Ball.Speed(), t.status), styleDim)
	s.Show()
}

func scoreLine(sc pong.Score) string {
	return fmt.Sprintf("LEFT %2d  :  %-2d RIGHT", sc.Left, sc.Right)
}

func (t *Terminal) drawBox(g grid) {
	s := t.screen
	top, bottom := g.y0-1, g.y0+g.h
	left, right := g.x0-1, g.x0+g.w
	for x := left; x <= right; x++ {
		s.SetContent(x, top, '─', nil, styleBorder)
		s.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := top + 1; y < bottom; y++ {
		s.SetContent(left, y, '│', nil, styleBorder)
		s.SetContent(right, y, '│', nil, styleBorder)
	}
	s.SetContent(left, top, '┌', nil, styleBorder)
	s.SetContent(right, top, '┐', nil, styleBorder)
	s.SetContent(left, bottom, '└', nil, styleBorder)
	s.SetContent(right, bottom, '┘', nil, styleBorder)

	cx := g.col(0)
	for y := g.y0; y < g.y0+g.h; y += 2 {
		s.SetContent(cx, y, '┊', nil, styleBorder)
	}
}

func (t *Terminal) drawPaddle(g grid, p *pong.Paddle, style tcell.Style) {
	x := g.col(p.Pos.X)
	for y := g.row(p.Pos.Y + p.Half.Y); y <= g.row(p.Pos.Y-p.Half.Y); y++ {
		t.screen.SetContent(x, y, '█', nil, style)
	}
}

func (t *Terminal) drawStartScreen(g grid, snap *pong.Snapshot) {
	s := t.screen
	cx := g.x0 + g.w/2
	y := g.y0 + g.h/4
	putCentred(s, cx, y, "P O N G", styleText)
	y += 2
	if snap.Winner != pong.SideNone {
		style := styleLeft
		if snap.Winner == pong.SideRight {
			style = styleRight
		}
		putCentred(s, cx, y, fmt.Sprintf("%s WINS  %s", strings.ToUpper(snap.Winner.String()), snap.FinalScore), style)
		y += 2
	}
	putCentred(s, cx, y, "press any key to serve", styleText)
	y += 2
	k := t.keys
	putCentred(s, cx, y, fmt.Sprintf("left %s/%s   right %s/%s", k.LeftUp, k.LeftDown, k.RightUp, k.RightDown), styleDim)
	putCentred(s, cx, y+1, fmt.Sprintf("%s quits here, Ctrl+C quits anywhere", k.Exit), styleDim)
}
