package march

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/penguin-march/internal/config"
	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/host"
	"github.com/vovakirdan/penguin-march/internal/sim/enemy"
	"github.com/vovakirdan/penguin-march/internal/sim/player"
	"github.com/vovakirdan/penguin-march/internal/sim/session"
	"github.com/vovakirdan/penguin-march/internal/sim/sink"
)

// Screen cells per world unit. Terminal cells are about twice as tall as
// they are wide.
const (
	cellsX = 4.0
	cellsY = 2.0

	// CameraLead is how far ahead of the player the camera centres.
	CameraLead = 1.0
)

// Visual characters for rendering.
const (
	GroundChar     = '█'
	LedgeChar      = '▀'
	SpikeChar      = '^'
	PitChar        = '~'
	FinishChar     = '▒'
	PlayerChar     = '█'
	EnemyChar      = '▓'
	KOChar         = 'x'
	ProjectileChar = '■'
	HeartFull      = '♥'
	HeartEmpty     = '♡'
)

// camera maps world coordinates to screen cells.
type camera struct {
	centerX float64
	w, h    int
}

// cell converts a world point. The world origin row sits three rows above
// the bottom of the screen.
func (c camera) cell(p core.Vec2) (int, int) {
	x := (p.X-c.centerX)*cellsX + float64(c.w)/2
	y := float64(c.h-3) - p.Y*cellsY
	return int(math.Floor(x)), int(math.Floor(y))
}

// rect converts a world box given by its bottom-left corner.
func (c camera) rect(b config.Box) core.Rect {
	x0, y1 := c.cell(core.V(b.X, b.Y))
	x1, y0 := c.cell(core.V(b.X+b.W, b.Y+b.H))
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

func (c camera) centered(at core.Vec2, w, h float64) core.Rect {
	return c.rect(config.Box{X: at.X - w/2, Y: at.Y - h/2, W: w, H: h})
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.session.Snapshot()
	cam := camera{centerX: snap.Player.Position.X + CameraLead, w: dst.Width(), h: dst.Height()}

	for _, s := range g.world.Statics() {
		g.drawStatic(dst, cam, s)
	}
	for _, e := range snap.Enemies {
		g.drawEnemy(dst, cam, e)
	}
	for _, p := range snap.Projectiles {
		dst.DrawRect(cam.centered(p.Position, host.ProjectileSize, host.ProjectileSize), ProjectileChar, core.ColorOrange)
	}
	g.drawPlayer(dst, cam, snap)
	g.drawHUD(dst, snap)

	switch {
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case snap.PlayerState == player.Won && g.scene.hasVictory:
		drawCenteredMessage(dst, g.scene.victory[0], g.scene.victory[1])
	case snap.PlayerState == player.GameOverPending || snap.PlayerState == player.GameOverFinished:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Knocked out: %d  |  Restarting in %.0fs", snap.Knockouts, math.Ceil(snap.ReloadIn)))
	}
}

func (g *Game) drawStatic(dst *core.Screen, cam camera, s host.Static) {
	r := cam.rect(s.Box)
	switch s.Kind {
	case host.KindGround:
		if s.Box.H < 1 {
			dst.DrawRect(r, LedgeChar, core.ColorGray)
			return
		}
		dst.DrawRect(r, GroundChar, core.ColorGray)
	case host.KindHazard:
		dst.DrawRect(r, SpikeChar, core.ColorRed)
	case host.KindLethal:
		dst.DrawRect(r, PitChar, core.ColorBrightRed)
	case host.KindFinish:
		dst.DrawRect(r, FinishChar, core.ColorGreen)
	}
}

func (g *Game) drawEnemy(dst *core.Screen, cam camera, e session.EnemySnapshot) {
	r := cam.centered(e.Position, host.EnemyW, host.EnemyH)
	if e.State == enemy.KOed {
		if !g.scene.flashing(e.ID, sink.CueKO) {
			dst.DrawRect(r, KOChar, core.ColorGray)
		}
		return
	}
	dst.DrawRect(r, EnemyChar, core.ColorYellow)
	eye := r.X
	if e.Velocity > 0 {
		eye = r.Right() - 1
	}
	dst.SetColored(eye, r.Y, 'o', core.ColorWhite)
}

func (g *Game) drawPlayer(dst *core.Screen, cam camera, snap session.Snapshot) {
	p := snap.Player
	if g.scene.flashing(p.ID, sink.CueHit) {
		return
	}
	color := core.ColorBrightCyan
	if !p.Alive {
		color = core.ColorGray
	}
	r := cam.centered(p.Position, host.PlayerW, host.PlayerH)
	dst.DrawRect(r, PlayerChar, color)

	beak := r.Right()
	if !p.FacingRight {
		beak = r.X - 1
	}
	if g.scene.flashing(p.ID, sink.CueThrow) {
		dst.SetColored(beak, r.Y+1, ProjectileChar, core.ColorOrange)
		return
	}
	dst.SetColored(beak, r.Y, '>', core.ColorOrange)
	if !p.FacingRight {
		dst.SetColored(beak, r.Y, '<', core.ColorOrange)
	}
}

// drawHUD draws hearts, the knockout counter and the last sound.
func (g *Game) drawHUD(dst *core.Screen, snap session.Snapshot) {
	var hearts strings.Builder
	for i := range snap.Player.MaxHealth {
		if i < snap.Player.Health {
			hearts.WriteRune(HeartFull)
		} else {
			hearts.WriteRune(HeartEmpty)
		}
	}
	dst.DrawTextColored(1, 0, hearts.String(), core.ColorRed)

	dst.DrawText(snap.Player.MaxHealth+3, 0, fmt.Sprintf("KO %d", snap.Knockouts))
	if snap.Marching > 0 {
		dst.DrawTextColored(snap.Player.MaxHealth+10, 0, "THE MARCH IS COMING", core.ColorBrightYellow)
	}
	if g.scene.hasSound {
		caption := "♪ " + g.scene.sound.String()
		dst.DrawTextColored(dst.Width()-len([]rune(caption))-1, 0, caption, core.ColorCyan)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
