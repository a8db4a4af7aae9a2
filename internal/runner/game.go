// Package runner implements a side-scrolling endless runner. The player
// auto-advances through procedurally assembled terrain patterns, jumping
// over pits and hazards, collecting pickups, and surviving as long as
// the accelerating scroll allows.
package runner

import (
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/runner/player"
	"github.com/vovakirdan/tui-runner/internal/runner/session"
	"github.com/vovakirdan/tui-runner/internal/runner/world"
)

func init() {
	registry.Register("runner", func() registry.Game { return New() })
}

// configPath stores the custom config path set via CLI.
var configPath string
var difficultyPreset config.DifficultyPreset
var soundPlayer session.SoundPlayer = session.NopSound{}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = "" // Use config default
	}
}

// SetSoundPlayer installs the audio backend. The default is silent; the
// platform wires the synth once the speaker initializes.
func SetSoundPlayer(p session.SoundPlayer) {
	if p != nil {
		soundPlayer = p
	}
}

// Game implements the endless runner game logic.
type Game struct {
	runtime  core.RuntimeConfig
	cfg      config.RunnerConfig
	world    *world.Manager
	player   *player.Player
	sess     *session.Session
	animator *Animator

	paused bool
	ticks  int
}

// New creates a runner game instance. State is populated on Reset.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "runner"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pattern Runner"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		cfg = config.DefaultRunnerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyRunnerPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	if g.world == nil {
		g.world = world.NewManager(cfg, runtime.Seed)
	} else {
		g.world.Reset(runtime.Seed)
	}
	g.world.Extend(cfg.World.SpawnAhead, 0, 0)

	if g.player == nil {
		g.player = player.New(cfg.Physics, cfg.Player, cfg.World.StepTolerance)
	}
	g.player.Reset(cfg.Player.StartX, g.world.SurfaceYAt(cfg.Player.StartX))

	g.animator = NewAnimator()
	g.sess = session.New(cfg, g.animator, soundPlayer)

	g.paused = false
	g.ticks = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sess.GameOver() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionHitboxes) {
		g.world.ToggleHitboxDebug()
	}

	g.ticks++
	dt := g.runtime.Dt()

	// World first: scroll advances and terrain is paved ahead before the
	// player moves into it.
	scroll, speed := g.world.Update(dt, g.sess.Score(), g.ticks)
	g.world.Extend(scroll+g.viewWidth()+g.cfg.World.SpawnAhead, g.sess.Score(), g.ticks)

	if g.sess.ControlsEnabled() {
		g.applyInput(in)
	}

	prevBottom := g.player.Y
	g.player.Advance(dt, speed*g.cfg.World.PlayerSpeedFactor)
	if lead := scroll + g.cfg.Player.StartX + g.cfg.World.MaxLead; g.player.X > lead {
		g.player.X = lead
	}
	g.player.Integrate(dt, g.world.SurfaceYAt(g.player.X))

	g.sess.Resolve(g.world, g.player, prevBottom, scroll, dt)

	g.animate(dt)

	return core.StepResult{State: g.State()}
}

// applyInput translates the tick's input frame into player actions.
// Terminals deliver no key-up events, so the platform synthesizes the
// Held flag from key-repeat timing; release is inferred from its absence.
func (g *Game) applyInput(in core.InputFrame) {
	if in.Has(core.ActionJump) {
		if g.player.JumpPressed() {
			g.sess.NotifyJump()
		}
	} else if !in.IsHeld(core.ActionJump) {
		g.player.JumpReleased()
	}
}

// animate keeps the sprite in sync with the movement state.
func (g *Game) animate(dt float64) {
	if !g.player.Dead() {
		switch {
		case g.player.OnGround():
			g.animator.Play(session.AnimRun, true, 0)
		case g.player.VY < 0:
			g.animator.Play(session.AnimJump, false, 0)
		default:
			g.animator.Play(session.AnimFall, false, 0)
		}
	}
	g.animator.Update(dt)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.sess.Score(),
		GameOver: g.sess.GameOver(),
		Paused:   g.paused,
	}
}

// RunStats describes a finished (or in-progress) run for score storage.
type RunStats struct {
	Score    int
	Distance float64
	Pickups  int
	Cause    string
}

// Stats returns the current run's statistics.
func (g *Game) Stats() RunStats {
	return RunStats{
		Score:    g.sess.Score(),
		Distance: g.world.Scroll(),
		Pickups:  g.sess.Pickups(),
		Cause:    g.sess.EndCause().String(),
	}
}
