package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Pong/internal/config"
	"github.com/Garsondee/Pong/internal/pong"
	"github.com/Garsondee/Pong/internal/sound"
)

// borderWidth is the pixel gap between the window edge and the court.
const borderWidth = 24

// hudKey toggles the debug overlay. It is reserved and never reaches the match.
const hudKey = ebiten.KeyF1

var (
	backgroundColor = color.RGBA{R: 12, G: 14, B: 16, A: 255}
	courtColor      = color.RGBA{R: 18, G: 24, B: 28, A: 255}
	lineColor       = color.RGBA{R: 70, G: 90, B: 100, A: 255}
	ballColor       = color.RGBA{R: 240, G: 240, B: 230, A: 255}
	textColor       = color.RGBA{R: 220, G: 225, B: 230, A: 255}
	dimTextColor    = color.RGBA{R: 130, G: 140, B: 150, A: 255}
)

// Game hosts a pong.Sim in an ebiten window: it samples the keyboard, steps the
// simulation once per ebiten tick and renders the result.
type Game struct {
	width  int
	height int
	view   view

	sim    *pong.Sim
	keys   *keyMap
	bind   config.Keys
	events *EventLog
	audio  *audioBank // nil when audio is disabled
	log    *slog.Logger
	face   *text.GoXFace

	showHUD     bool
	lastSpeedUp int // tick of the most recent escalation
}

// New builds a game from cfg. cfg must already be validated.
func New(cfg config.Config, log *slog.Logger) *Game {
	var opts []pong.Option
	if cfg.Seed != 0 {
		opts = append(opts, pong.WithSeed(cfg.Seed))
	}
	courtW := int(2 * pong.CourtHalfWidth)
	courtH := int(2 * pong.CourtHalfHeight)
	g := &Game{
		width:   borderWidth + courtW + borderWidth + logPanelWidth,
		height:  borderWidth + courtH + borderWidth,
		view:    view{offX: borderWidth, offY: borderWidth},
		sim:     pong.NewSim(cfg.ToRules(), opts...),
		keys:    newKeyMap(cfg.Keys, hudKey),
		bind:    cfg.Keys,
		events:  NewEventLog(),
		log:     log,
		face:    text.NewGoXFace(basicfont.Face7x13),
		showHUD: true,
	}
	if cfg.Audio.Enabled {
		g.audio = newAudioBank(cfg.Audio.Volume)
	}
	log.Info("game ready", "seed", g.sim.Seed(), "audio", cfg.Audio.Enabled)
	return g
}

// WindowSize returns the window size for a display scale factor.
func (g *Game) WindowSize(scale float64) (int, int) {
	return int(float64(g.width) * scale), int(float64(g.height) * scale)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(hudKey) {
		g.showHUD = !g.showHUD
	}

	in := g.keys.poll()
	out := g.sim.Step(in, tickDT(ebiten.TPS()))
	g.report(out)

	if out.Exit {
		g.log.Info("exit requested")
		return ebiten.Termination
	}
	return nil
}

// tickDT is the simulated time of one Update. ebiten calls Update a fixed
// number of times per second and catches up after slow frames, so each call
// covers exactly 1/TPS seconds.
func tickDT(tps int) float64 {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1 / float64(tps)
}

// report forwards a tick's outcome to the event panel, the logger and audio.
func (g *Game) report(out pong.Outcome) {
	snap := g.sim.Snapshot()
	for _, e := range describe(out, snap) {
		g.events.Add(e)
	}
	if out.SpeedUp {
		g.lastSpeedUp = out.Tick
		g.log.Debug("speed up", "tick", out.Tick, "speed", snap.Ball.Speed())
	}
	if out.Scorer != pong.SideNone {
		g.log.Info("point", "match", snap.Match, "side", out.Scorer, "tick", out.Tick)
	}
	if t := out.Transition; t.Changed() {
		switch t.To {
		case pong.PhasePlaying:
			g.log.Info("match started", "match", snap.Match)
		case pong.PhaseStartScreen:
			g.log.Info("match won", "match", snap.Match, "winner", t.Winner, "score", snap.FinalScore.String())
		}
	}
	if g.audio != nil {
		for _, c := range sound.CuesFor(out) {
			g.audio.play(c)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	snap := g.sim.Snapshot()

	g.drawCourt(screen)
	g.drawPaddle(screen, &snap.Left)
	g.drawPaddle(screen, &snap.Right)
	if snap.Phase == pong.PhasePlaying {
		x, y, w, h := g.view.rect(snap.Ball.Pos, snap.Ball.Half)
		vector.FillRect(screen, x, y, w, h, ballColor, false)
		g.drawScore(screen, snap.Score)
	} else {
		g.drawStartScreen(screen, &snap)
	}

	g.events.Draw(screen, g.width-logPanelWidth, g.height)
	if g.showHUD {
		g.drawHUD(screen, &snap)
	}
}

func (g *Game) drawCourt(screen *ebiten.Image) {
	ox, oy := float32(g.view.offX), float32(g.view.offY)
	cw, ch := float32(2*pong.CourtHalfWidth), float32(2*pong.CourtHalfHeight)
	vector.FillRect(screen, ox, oy, cw, ch, courtColor, false)
	vector.StrokeRect(screen, ox-1, oy-1, cw+2, ch+2, 2.0, lineColor, false)

	// Dashed centre line.
	const dash, gap = 14, 10
	cx := ox + cw/2
	for y := float32(0); y < ch; y += dash + gap {
		end := min(y+dash, ch)
		vector.StrokeLine(screen, cx, oy+y, cx, oy+end, 2.0, lineColor, false)
	}
}

func (g *Game) drawPaddle(screen *ebiten.Image, p *pong.Paddle) {
	x, y, w, h := g.view.rect(p.Pos, p.Half)
	vector.FillRect(screen, x, y, w, h, sideColor(p.Side), false)
}

func (g *Game) drawScore(screen *ebiten.Image, s pong.Score) {
	cx := g.view.offX + pong.CourtHalfWidth
	g.drawText(screen, fmt.Sprint(s.Left), cx-60, g.view.offY+16, 4, text.AlignCenter, textColor)
	g.drawText(screen, fmt.Sprint(s.Right), cx+60, g.view.offY+16, 4, text.AlignCenter, textColor)
}

func (g *Game) drawStartScreen(screen *ebiten.Image, snap *pong.Snapshot) {
	cx := g.view.offX + pong.CourtHalfWidth
	y := g.view.offY + 90
	g.drawText(screen, "PONG", cx, y, 6, text.AlignCenter, textColor)
	y += 110
	if snap.Winner != pong.SideNone {
		msg := fmt.Sprintf("%s WINS  %s", strings.ToUpper(snap.Winner.String()), snap.FinalScore)
		g.drawText(screen, msg, cx, y, 3, text.AlignCenter, sideColor(snap.Winner))
		y += 60
	}
	g.drawText(screen, "press any key to serve", cx, y, 2, text.AlignCenter, textColor)
	y += 50
	for _, line := range controlsLegend(g.bind) {
		g.drawText(screen, line, cx, y, 1, text.AlignCenter, dimTextColor)
		y += 18
	}
}

// controlsLegend describes the bindings on the start screen.
func controlsLegend(k config.Keys) []string {
	return []string{
		fmt.Sprintf("left paddle: %s / %s", k.LeftUp, k.LeftDown),
		fmt.Sprintf("right paddle: %s / %s", k.RightUp, k.RightDown),
		fmt.Sprintf("%s quits from this screen", k.Exit),
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, snap *pong.Snapshot) {
	lines := []string{
		fmt.Sprintf("T=%d  phase=%s", snap.Tick, snap.Phase),
		fmt.Sprintf("ball %.0f u/s  round %.1fs", snap.Ball.Speed(), snap.Round.Elapsed),
	}
	if snap.Phase == pong.PhasePlaying {
		lines = append(lines, "match "+snap.Match.String()[:8])
	}
	if g.lastSpeedUp > 0 && snap.Tick-g.lastSpeedUp < 90 {
		lines = append(lines, "SPEED UP")
	}
	lines = append(lines, "[F1] toggle HUD")

	const lineH = 16
	x := g.view.offX + 6
	y := g.view.offY + 2*pong.CourtHalfHeight - float64(len(lines)*lineH) - 4
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, int(x), int(y)+i*lineH)
	}
}

func (g *Game) drawText(dst *ebiten.Image, s string, x, y, scale float64, align text.Align, c color.Color) {
	op := &text.DrawOptions{}
	op.PrimaryAlign = align
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, g.face, op)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
