// Package player implements the runner avatar: a vertical physics body
// with a multi-jump budget and hold-to-extend jumps. Horizontal motion is
// driven by the world scroll; the player only ever accelerates on Y.
package player

import (
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// State is the player's movement state.
type State int

const (
	StateGrounded State = iota
	StateAirborne
	StateDead
)

// String returns a short name for the state.
func (s State) String() string {
	switch s {
	case StateGrounded:
		return "grounded"
	case StateAirborne:
		return "airborne"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Player is the simulated avatar. X is the horizontal center, Y the feet
// position; Y grows downward, so a negative VY means ascending.
type Player struct {
	X, Y float64
	VY   float64

	cfg     config.PhysicsConfig
	width   float64
	height  float64
	stepTol float64

	state     State
	jumpsUsed int
	holding   bool
	holdLeft  float64
}

// New creates a player at rest on the surface at (x, surfaceY).
func New(phys config.PhysicsConfig, body config.PlayerConfig, stepTolerance float64) *Player {
	p := &Player{
		cfg:     phys,
		width:   body.Width,
		height:  body.Height,
		stepTol: stepTolerance,
	}
	p.Reset(body.StartX, 0)
	return p
}

// Reset places the player grounded at (x, surfaceY) with full jumps.
func (p *Player) Reset(x, surfaceY float64) {
	p.X = x
	p.Y = surfaceY
	p.VY = 0
	p.state = StateGrounded
	p.jumpsUsed = 0
	p.holding = false
	p.holdLeft = 0
}

// State returns the current movement state.
func (p *Player) State() State { return p.state }

// OnGround reports whether the player is standing on a surface.
func (p *Player) OnGround() bool { return p.state == StateGrounded }

// Dead reports whether the player has been killed.
func (p *Player) Dead() bool { return p.state == StateDead }

// JumpsLeft returns the remaining jump budget.
func (p *Player) JumpsLeft() int {
	n := p.cfg.MaxJumps - p.jumpsUsed
	if n < 0 {
		return 0
	}
	return n
}

// Box returns the player's collision box in world space.
func (p *Player) Box() core.Box {
	return core.NewBox(p.X-p.width/2, p.Y-p.height, p.width, p.height)
}

// JumpPressed starts a jump. The ground jump is always available and
// free; the jump budget covers additional mid-air jumps only, so it is
// consumed exclusively by jumps initiated while airborne. Every jump
// gives the full impulse and a fresh hold window. Returns true if a
// jump actually started.
func (p *Player) JumpPressed() bool {
	if p.state == StateDead {
		return false
	}
	if p.state == StateAirborne {
		if p.jumpsUsed >= p.cfg.MaxJumps {
			return false
		}
		p.jumpsUsed++
	}
	p.VY = -p.cfg.JumpSpeed
	p.state = StateAirborne
	p.holding = true
	p.holdLeft = p.cfg.MaxJumpHold
	return true
}

// JumpReleased ends the hold-to-extend window early.
func (p *Player) JumpReleased() {
	p.holding = false
}

// Advance moves the player horizontally. The caller supplies the already
// scaled speed; any lead clamping against the camera happens there too.
func (p *Player) Advance(dt, speed float64) {
	if p.state == StateDead {
		return
	}
	p.X += speed * dt
}

// Integrate advances the vertical simulation by dt against the surface
// at the player's current X.
//
// Grounded players snap to small surface steps within the tolerance and
// walk off edges when the surface drops away. Airborne players land only
// by crossing the surface from above within this tick; a body already
// below the surface is never pulled up onto it.
func (p *Player) Integrate(dt, surfaceY float64) {
	switch p.state {
	case StateDead:
		p.fall(dt)
		p.Y += p.VY * dt

	case StateGrounded:
		diff := surfaceY - p.Y
		switch {
		case diff > p.stepTol:
			// Surface fell away underfoot
			p.state = StateAirborne
			p.VY = 0
		case diff >= -p.stepTol:
			p.Y = surfaceY
		default:
			// A rise past the tolerance is a wall, not a step. The
			// horizontal clamp keeps the player from entering it; hold
			// position here.
		}

	case StateAirborne:
		p.fall(dt)
		prevY := p.Y
		p.Y += p.VY * dt
		if p.VY >= 0 && prevY <= surfaceY && p.Y >= surfaceY {
			p.land(surfaceY)
		}
	}
}

// fall applies gravity, reduced while a jump is held and ascending.
func (p *Player) fall(dt float64) {
	g := p.cfg.Gravity
	if p.holding && p.VY < 0 && p.holdLeft > 0 {
		g *= p.cfg.HoldGravityFactor
		p.holdLeft -= dt
		if p.holdLeft <= 0 {
			p.holding = false
		}
	}
	p.VY += g * dt
	if p.VY > p.cfg.MaxFallSpeed {
		p.VY = p.cfg.MaxFallSpeed
	}
}

// land settles the player onto a surface and restores the jump budget.
func (p *Player) land(surfaceY float64) {
	p.Y = surfaceY
	p.VY = 0
	p.state = StateGrounded
	p.jumpsUsed = 0
	p.holding = false
}

// LandOn forces a landing at y, used when the player comes down on top
// of a standable obstacle rather than the pattern surface.
func (p *Player) LandOn(y float64) {
	if p.state == StateDead {
		return
	}
	p.land(y)
}

// Kill transitions the player to the dead state. Vertical velocity is
// preserved so the body keeps its arc during the death sequence.
func (p *Player) Kill() {
	p.state = StateDead
	p.holding = false
}
