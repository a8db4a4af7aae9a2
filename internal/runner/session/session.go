// Package session owns the run's outcome state: score, power-ups, the
// death sequence, and game-over resolution. Each tick the resolver scans
// the world state produced by the physics step and translates contacts
// into landings, clamps, score changes, or a game over.
package session

import (
	"math"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/runner/player"
	"github.com/vovakirdan/tui-runner/internal/runner/world"
)

// Cause classifies how a run ended.
type Cause int

const (
	CauseNone Cause = iota
	CauseHazard
	CausePit
	CauseFell
)

// String returns the cause label used on the game-over screen and in
// the run log.
func (c Cause) String() string {
	switch c {
	case CauseHazard:
		return "hit hazard"
	case CausePit:
		return "fell into pit"
	case CauseFell:
		return "fell behind"
	default:
		return ""
	}
}

// offCameraDrop is how far below the surface baseline the player may
// fall before the off-screen check queues a game over.
const offCameraDrop = 800.0

// pickupRadius is the radial fallback for pickup collection, covering
// fast passes where box overlap misses between ticks.
const pickupRadius = 56.0

// Session is the per-run outcome state machine. It never mutates the
// world's terrain; it only reads colliders and writes to the player and
// to its own counters.
type Session struct {
	cfg      config.RunnerConfig
	animator Animator
	sound    SoundPlayer

	score   int
	pickups int

	distanceTier int
	powerTier    int

	invincibleFor float64
	elapsed       float64

	controlsOn bool
	gameOver   bool
	cause      Cause

	gracePending bool
	graceLeft    float64

	deathPending bool
	deathLeft    float64
	deathCause   Cause
}

// New creates a session. Nil collaborators are replaced with no-ops,
// and an animator missing the run cycle is degraded to a no-op rather
// than spamming it with requests it cannot serve.
func New(cfg config.RunnerConfig, animator Animator, sound SoundPlayer) *Session {
	if animator == nil || !hasAnimation(animator, AnimRun) {
		animator = NopAnimator{}
	}
	if sound == nil {
		sound = NopSound{}
	}
	s := &Session{cfg: cfg, animator: animator, sound: sound}
	s.Reset()
	return s
}

func hasAnimation(a Animator, name string) bool {
	for _, n := range a.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Reset clears all run state for a fresh start.
func (s *Session) Reset() {
	s.score = 0
	s.pickups = 0
	s.distanceTier = 0
	s.powerTier = 0
	s.invincibleFor = 0
	s.elapsed = 0
	s.controlsOn = true
	s.gameOver = false
	s.cause = CauseNone
	s.gracePending = false
	s.graceLeft = 0
	s.deathPending = false
	s.deathLeft = 0
	s.deathCause = CauseNone
	s.animator.SetTimeScale(1)
	s.animator.Play(AnimRun, true, 0)
}

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Pickups returns the number of collected pickups.
func (s *Session) Pickups() int { return s.pickups }

// GameOver reports whether the run has ended.
func (s *Session) GameOver() bool { return s.gameOver }

// EndCause returns how the run ended, or CauseNone while it is live.
func (s *Session) EndCause() Cause { return s.cause }

// ControlsEnabled reports whether player input should be applied. False
// during the death sequence and after game over.
func (s *Session) ControlsEnabled() bool { return s.controlsOn }

// Invincible reports whether lethal contact is currently suppressed.
func (s *Session) Invincible() bool { return s.invincibleFor > 0 }

// InvincibilityLeft returns the remaining invincibility in seconds.
func (s *Session) InvincibilityLeft() float64 { return s.invincibleFor }

// Blink reports whether the invincibility warning cue should show this
// tick. It alternates at a fixed cadence during the final stretch.
func (s *Session) Blink() bool {
	if s.invincibleFor <= 0 || s.invincibleFor > s.cfg.Score.BlinkWarning {
		return false
	}
	return int(s.elapsed*8)%2 == 0
}

// NotifyJump lets the driving loop report a started jump so the session
// can cue animation and audio without owning input.
func (s *Session) NotifyJump() {
	s.animator.Play(AnimJump, false, 0)
	s.sound.Play(SoundJump)
}

// ForceGameOver ends the run immediately, bypassing the on-pattern
// suppression rule. Used by lethal contact and the pit fall.
func (s *Session) ForceGameOver(cause Cause) {
	s.finish(cause)
}

func (s *Session) finish(cause Cause) {
	if s.gameOver {
		return
	}
	s.gameOver = true
	s.cause = cause
	s.controlsOn = false
	s.gracePending = false
	s.deathPending = false
	s.animator.PauseTrack(0)
	s.sound.Play(SoundGameOver)
}

// startDeath begins the lethal-contact sequence: controls off, vertical
// velocity zeroed, the die animation, and a delayed forced game over.
func (s *Session) startDeath(pl *player.Player, cause Cause) {
	if s.deathPending || s.gameOver {
		return
	}
	s.controlsOn = false
	pl.Kill()
	pl.VY = 0
	s.animator.Play(AnimDie, false, 0)
	s.sound.Play(SoundDeath)
	s.deathPending = true
	s.deathLeft = s.cfg.Session.DeathDelay
	s.deathCause = cause
}

// Resolve runs the per-tick outcome pass. prevBottom is the player's
// bottom edge before this tick's integration, needed for the
// crossing-only landing test. cameraLeft is the world X of the camera's
// left edge.
func (s *Session) Resolve(w *world.Manager, pl *player.Player, prevBottom, cameraLeft, dt float64) {
	if s.gameOver {
		return
	}
	s.elapsed += dt
	if s.invincibleFor > 0 {
		s.invincibleFor -= dt
		if s.invincibleFor <= 0 {
			s.invincibleFor = 0
			s.animator.SetTimeScale(1)
		}
	}

	if s.deathPending {
		s.deathLeft -= dt
		if s.deathLeft <= 0 {
			s.finish(s.deathCause)
		}
		return
	}

	box := pl.Box()
	half := box.W / 2

	// Per-obstacle pass: landing and side blocking. Lethal kinds turn
	// either contact into the death sequence instead.
	for _, c := range w.Obstacles() {
		if !c.Box.OverlapsX(box) {
			continue
		}
		top := c.Box.Y

		// Landing: bottom edge crossed the top while descending.
		if pl.VY >= 0 && prevBottom <= top && pl.Y >= top && pl.Y <= c.Box.Bottom() {
			if c.Kind.Lethal() {
				if !s.Invincible() {
					s.startDeath(pl, CauseHazard)
					return
				}
				continue
			}
			pl.LandOn(top)
			box = pl.Box()
			continue
		}

		// Side block: overlapping with the bottom below the top edge.
		if pl.Y > top && box.Y < c.Box.Bottom() {
			if c.Kind.Lethal() {
				if !s.Invincible() {
					s.startDeath(pl, CauseHazard)
					return
				}
				continue
			}
			if limit := c.Box.X - half; pl.X > limit {
				pl.X = limit
				box = pl.Box()
			}
		}
	}

	// Broad sweep: any lethal intersection the per-obstacle tests missed.
	if !s.Invincible() {
		for _, c := range w.Obstacles() {
			if c.Kind.Lethal() && c.Box.Intersects(box) {
				s.startDeath(pl, CauseHazard)
				return
			}
		}
	}

	// Pit fall: inside a pit span, falling fast, and meaningfully below
	// the pattern's nominal surface.
	if w.IsOverPit(pl.X) && pl.VY > s.cfg.Session.PitFallSpeed {
		surf, ok := w.PatternSurfaceAt(pl.X)
		if ok && pl.Y > surf+s.cfg.Session.PitFallDepth {
			pl.Kill()
			s.finish(CausePit)
			return
		}
	}

	s.resolveOffCamera(w, pl, cameraLeft, dt)
	if s.gameOver {
		return
	}

	s.collectPickups(w, box)
	s.scoreDistance(w.Scroll())
}

// resolveOffCamera queues a soft game over when the player falls behind
// the camera or far below the playfield, fires it after the grace delay,
// and cancels it when the condition clears in time. At fire time the
// game over is still suppressed if the player is on-pattern and grounded.
func (s *Session) resolveOffCamera(w *world.Manager, pl *player.Player, cameraLeft, dt float64) {
	offCamera := pl.X+pl.Box().W/2 < cameraLeft || pl.Y > offCameraDrop

	if !offCamera {
		s.gracePending = false
		return
	}
	if !s.gracePending {
		s.gracePending = true
		s.graceLeft = s.cfg.Session.GraceDelay
		return
	}
	s.graceLeft -= dt
	if s.graceLeft > 0 {
		return
	}
	s.gracePending = false
	if w.IsOnPattern(pl.X) && pl.OnGround() {
		return
	}
	pl.Kill()
	s.finish(CauseFell)
}

// collectPickups awards points for every pickup the player touches this
// tick. The radial fallback catches near misses at high scroll speeds.
func (s *Session) collectPickups(w *world.Manager, box core.Box) {
	cx := box.X + box.W/2
	cy := box.Y + box.H/2
	for i, pk := range w.Pickups() {
		if pk.Collected {
			continue
		}
		hit := pk.Box().Intersects(box)
		if !hit {
			dx, dy := pk.X-cx, pk.Y-cy
			hit = math.Sqrt(dx*dx+dy*dy) < pickupRadius
		}
		if hit && w.CollectPickup(i) {
			s.pickups++
			s.addScore(s.cfg.Score.PickupPoints)
			s.sound.Play(SoundPickup)
		}
	}
}

// scoreDistance awards points for every distance tier crossed since the
// last tick. A fast tick that crosses several tiers scores all of them.
func (s *Session) scoreDistance(distance float64) {
	if s.cfg.Score.DistanceStep <= 0 {
		return
	}
	tier := int(distance / s.cfg.Score.DistanceStep)
	if tier > s.distanceTier {
		s.addScore((tier - s.distanceTier) * s.cfg.Score.DistancePoints)
		s.distanceTier = tier
	}
}

// addScore applies a score delta and activates at most one power-up per
// call, no matter how many power-up tiers the delta crossed.
func (s *Session) addScore(points int) {
	if points <= 0 {
		return
	}
	s.score += points
	if s.cfg.Score.PowerupTier <= 0 {
		return
	}
	tier := s.score / s.cfg.Score.PowerupTier
	if tier > s.powerTier {
		s.powerTier = tier
		s.invincibleFor = s.cfg.Score.InvincibilityDuration
		s.sound.Play(SoundPowerup)
	}
}
