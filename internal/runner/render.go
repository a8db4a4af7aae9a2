package runner

import (
	"fmt"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/runner/world"
)

// World-to-screen projection. Terminal cells are roughly twice as tall
// as they are wide, so the vertical scale is larger to keep shapes
// square-ish.
const (
	unitsPerCol = 24.0
	unitsPerRow = 32.0
	groundRows  = 6 // Rows reserved below the surface baseline
)

// Visual characters for rendering
const (
	GroundChar   = '═'
	CapLeftChar  = '╞'
	CapRightChar = '╡'
	SpikeChar    = '▲'
	BlockChar    = '▓'
	PlaneChar    = '▬'
	PickupChar   = '●'
	HitboxChar   = '·'
)

// viewWidth returns the camera width in world units.
func (g *Game) viewWidth() float64 {
	return float64(g.runtime.ScreenW) * unitsPerCol
}

// groundRow returns the screen row of the surface baseline (world Y 0).
func (g *Game) groundRow() int {
	return g.runtime.ScreenH - groundRows
}

// toCol converts a world X to a screen column.
func (g *Game) toCol(wx float64) int {
	return int((wx - g.world.Scroll()) / unitsPerCol)
}

// toRow converts a world Y to a screen row. Y grows downward in both
// spaces, so this is a straight scale off the baseline.
func (g *Game) toRow(wy float64) int {
	return g.groundRow() + int(wy/unitsPerRow)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.drawTerrain(dst)
	g.drawObstacles(dst)
	g.drawPickups(dst)
	g.drawPlayer(dst)
	if g.world.HitboxesVisible() {
		g.drawHitboxes(dst)
	}
	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.sess.GameOver() {
		sub := fmt.Sprintf("Score: %d  |  R restart, S scores", g.sess.Score())
		if cause := g.sess.EndCause().String(); cause != "" {
			sub = fmt.Sprintf("You %s  |  %s", cause, sub)
		}
		g.drawCenteredMessage(dst, "GAME OVER", sub)
	}
}

// drawTerrain renders each pattern's surface, skipping registered pits.
// End caps get distinct glyphs so pattern seams read on screen.
func (g *Game) drawTerrain(dst *core.Screen) {
	w := dst.Width()
	for _, p := range g.world.Patterns() {
		row := g.toRow(p.SurfaceY)
		startCol := g.toCol(p.Start)
		endCol := g.toCol(p.End())
		if endCol < 0 || startCol >= w {
			continue
		}
		for col := core.Max(startCol, 0); col <= core.Min(endCol, w-1); col++ {
			wx := g.world.Scroll() + float64(col)*unitsPerCol
			if g.world.IsOverPit(wx) {
				continue
			}
			ch := GroundChar
			switch col {
			case startCol:
				ch = CapLeftChar
			case endCol:
				ch = CapRightChar
			}
			dst.SetColored(col, row, ch, core.ColorGreen)
		}
	}
}

// drawObstacles renders the non-ground colliders at their current
// positions, movers included.
func (g *Game) drawObstacles(dst *core.Screen) {
	for _, c := range g.world.Obstacles() {
		var ch rune
		var color core.Color
		switch c.Kind {
		case world.KindSpike:
			ch, color = SpikeChar, core.ColorBrightRed
		case world.KindBlock:
			ch, color = BlockChar, core.ColorYellow
		case world.KindPlane:
			ch, color = PlaneChar, core.ColorBrightMagenta
		default:
			continue
		}
		g.fillBox(dst, c.Box, ch, color)
	}
}

// fillBox paints every screen cell covered by a world box. Boxes smaller
// than one cell still paint a single cell.
func (g *Game) fillBox(dst *core.Screen, b core.Box, ch rune, color core.Color) {
	left, right := g.toCol(b.X), g.toCol(b.Right())
	top, bottom := g.toRow(b.Y), g.toRow(b.Bottom())
	if right <= left {
		right = left + 1
	}
	if bottom <= top {
		bottom = top + 1
	}
	for row := top; row < bottom; row++ {
		for col := left; col < right; col++ {
			dst.SetColored(col, row, ch, color)
		}
	}
}

func (g *Game) drawPickups(dst *core.Screen) {
	for _, p := range g.world.Pickups() {
		if p.Collected {
			continue
		}
		dst.SetColored(g.toCol(p.X), g.toRow(p.Y), PickupChar, core.ColorBrightYellow)
	}
}

// drawPlayer renders the animated sprite. While invincible the sprite
// turns yellow; in the final warning stretch it blinks.
func (g *Game) drawPlayer(dst *core.Screen) {
	if g.sess.Blink() {
		return
	}
	color := core.ColorBrightCyan
	if g.sess.Invincible() {
		color = core.ColorBrightYellow
	}
	if g.player.Dead() {
		color = core.ColorGray
	}

	box := g.player.Box()
	col := g.toCol(box.X)
	row := g.toRow(box.Y)
	for dy, line := range g.animator.Sprite() {
		dx := 0
		for _, r := range line {
			if r != ' ' {
				dst.SetColored(col+dx, row+dy, r, color)
			}
			dx++
		}
	}
}

// drawHitboxes outlines every live collider plus the player's box.
func (g *Game) drawHitboxes(dst *core.Screen) {
	outline := func(b core.Box) {
		left, right := g.toCol(b.X), g.toCol(b.Right())
		top, bottom := g.toRow(b.Y), g.toRow(b.Bottom())
		for col := left; col <= right; col++ {
			dst.Set(col, top, HitboxChar)
			dst.Set(col, bottom, HitboxChar)
		}
		for row := top; row <= bottom; row++ {
			dst.Set(left, row, HitboxChar)
			dst.Set(right, row, HitboxChar)
		}
	}
	for _, c := range g.world.Colliders() {
		outline(c.Box)
	}
	outline(g.player.Box())
}

func (g *Game) drawHUD(dst *core.Screen) {
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", g.sess.Score()))

	right := fmt.Sprintf(" Spd: %.0f ", g.world.Speed())
	if g.sess.Invincible() {
		right = fmt.Sprintf(" ★ %.1fs %s", g.sess.InvincibilityLeft(), right)
	}
	dst.DrawText(dst.Width()-len([]rune(right))-2, 0, right)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
