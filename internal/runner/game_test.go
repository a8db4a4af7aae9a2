package runner

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/runner/pattern"
	"github.com/vovakirdan/tui-runner/internal/runner/player"
	"github.com/vovakirdan/tui-runner/internal/runner/session"
	"github.com/vovakirdan/tui-runner/internal/runner/world"
)

// sim is a fixed-terrain harness mirroring Step's update order without
// the random pattern generation, so scenarios can pin exact geometry.
type sim struct {
	cfg config.RunnerConfig
	w   *world.Manager
	pl  *player.Player
	s   *session.Session
}

func newSim(t *testing.T, specs ...pattern.Spec) *sim {
	t.Helper()
	cfg := config.DefaultRunnerConfig()
	// Constant speed keeps scenarios analytic.
	cfg.World.SpeedAccel = 0
	cfg.Difficulty.Enabled = false

	w := world.NewManager(cfg, 1)
	x := 0.0
	for _, spec := range specs {
		placed, err := w.AddPattern(
			func(pattern.Context) (pattern.Spec, error) { return spec, nil }, x)
		if err != nil {
			t.Fatalf("AddPattern: %v", err)
		}
		x = placed.End()
	}

	pl := player.New(cfg.Physics, cfg.Player, cfg.World.StepTolerance)
	pl.Reset(cfg.Player.StartX, w.SurfaceYAt(cfg.Player.StartX))
	return &sim{cfg: cfg, w: w, pl: pl, s: session.New(cfg, nil, nil)}
}

func (m *sim) step(dt float64) {
	scroll, speed := m.w.Update(dt, m.s.Score(), 0)
	prev := m.pl.Y
	m.pl.Advance(dt, speed*m.cfg.World.PlayerSpeedFactor)
	m.pl.Integrate(dt, m.w.SurfaceYAt(m.pl.X))
	m.s.Resolve(m.w, m.pl, prev, scroll, dt)
}

func plainSpec(length float64) pattern.Spec {
	return pattern.Spec{Name: "flat", Length: length, CapLeft: 34, CapRight: 34}
}

func TestRunOnFlatGround(t *testing.T) {
	m := newSim(t, plainSpec(700))

	const dt = 1.0 / 120.0
	startX := m.pl.X
	for i := 0; i < 120; i++ { // One simulated second
		m.step(dt)
	}

	wantAdvance := m.cfg.World.BaseSpeed * m.cfg.World.PlayerSpeedFactor
	if got := m.pl.X - startX; math.Abs(got-wantAdvance) > 1e-6 {
		t.Errorf("advance = %v, want %v", got, wantAdvance)
	}
	if !m.pl.OnGround() {
		t.Error("player left the ground without input")
	}
	if m.pl.Y != 0 {
		t.Errorf("Y = %v, want 0 on flat ground", m.pl.Y)
	}
	if m.s.GameOver() {
		t.Error("game over on flat ground")
	}
}

func TestJumpRelandsOnSchedule(t *testing.T) {
	m := newSim(t, plainSpec(2000))

	const dt = 1.0 / 120.0
	m.pl.JumpPressed()
	m.pl.JumpReleased()

	// Under constant gravity the flight time is 2*jumpSpeed/gravity.
	expected := 2 * m.cfg.Physics.JumpSpeed / m.cfg.Physics.Gravity
	elapsed := 0.0
	for !m.pl.OnGround() && elapsed < 3.0 {
		m.step(dt)
		elapsed += dt
	}

	if !m.pl.OnGround() {
		t.Fatalf("never relanded, Y = %v", m.pl.Y)
	}
	if math.Abs(elapsed-expected) > 0.1 {
		t.Errorf("relanded after %.3fs, want about %.3fs", elapsed, expected)
	}
	if m.pl.Y != 0 {
		t.Errorf("relanded at Y = %v, want 0", m.pl.Y)
	}
}

func TestFallIntoPitEndsRun(t *testing.T) {
	// A pit of width 300 at the very start of the second pattern.
	second := pattern.Spec{
		Name:   "gap",
		Length: 700,
		Pits:   []pattern.PitSpec{{OffsetX: 0, Width: 300}},
	}
	m := newSim(t, plainSpec(700), second)

	const dt = 1.0 / 60.0
	for i := 0; i < 600 && !m.s.GameOver(); i++ {
		m.step(dt)
	}

	if !m.s.GameOver() {
		t.Fatal("run never ended at the pit")
	}
	if m.s.EndCause() != session.CausePit {
		t.Errorf("cause = %q, want %q", m.s.EndCause(), session.CausePit)
	}
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists("runner") {
		t.Fatal("runner not registered")
	}
	g, err := registry.Create("runner")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "runner" || g.Title() == "" {
		t.Errorf("unexpected identity: %q / %q", g.ID(), g.Title())
	}

	games := registry.List()
	if len(games) != 1 || games[0].ID != "runner" {
		t.Errorf("List() = %v, want exactly the runner", games)
	}
}

func runTicks(g *Game, n, jumpEvery int) {
	for i := 0; i < n; i++ {
		in := core.NewInputFrame()
		if jumpEvery > 0 && i%jumpEvery == 0 {
			in.Set(core.ActionJump)
		}
		g.Step(in)
	}
}

func TestStepIsDeterministicForSeed(t *testing.T) {
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}

	a, b := New(), New()
	a.Reset(rt)
	b.Reset(rt)
	runTicks(a, 900, 35)
	runTicks(b, 900, 35)

	if a.State() != b.State() {
		t.Errorf("states diverged: %+v vs %+v", a.State(), b.State())
	}
	if a.player.X != b.player.X || a.player.Y != b.player.Y {
		t.Errorf("player positions diverged: (%v, %v) vs (%v, %v)",
			a.player.X, a.player.Y, b.player.X, b.player.Y)
	}
	if a.world.Scroll() != b.world.Scroll() {
		t.Errorf("scroll diverged: %v vs %v", a.world.Scroll(), b.world.Scroll())
	}
}

func TestResetStartsFreshRun(t *testing.T) {
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}

	g := New()
	g.Reset(rt)
	runTicks(g, 600, 0) // No jumps: the run ends sooner or later

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 8})
	st := g.State()
	if st.GameOver || st.Score != 0 {
		t.Errorf("state after reset = %+v, want fresh run", st)
	}
	if !g.player.OnGround() {
		t.Error("player not grounded after reset")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	g := New()
	g.Reset(rt)
	runTicks(g, 10, 0)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("pause did not engage")
	}

	x := g.player.X
	scroll := g.world.Scroll()
	runTicks(g, 30, 0)
	if g.player.X != x || g.world.Scroll() != scroll {
		t.Error("simulation advanced while paused")
	}

	pause = core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if g.State().Paused {
		t.Error("pause did not release")
	}
}

func TestRenderDrawsHUDAndPlayer(t *testing.T) {
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	g := New()
	g.Reset(rt)
	runTicks(g, 5, 0)

	dst := core.NewScreen(80, 24)
	g.Render(dst)

	if got := dst.Row(0); !containsScore(got) {
		t.Errorf("HUD row missing score: %q", got)
	}

	// Some ground must be visible near the baseline; patterns may raise
	// or lower their surface by a row or two.
	found := false
	for row := g.groundRow() - 3; row <= g.groundRow()+3 && !found; row++ {
		for x := 0; x < 80; x++ {
			r := dst.Get(x, row)
			if r == GroundChar || r == CapLeftChar || r == CapRightChar {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no terrain rendered near the surface rows")
	}
}

func containsScore(row string) bool {
	for i := 0; i+5 <= len(row); i++ {
		if row[i:i+5] == "Score" {
			return true
		}
	}
	return false
}
