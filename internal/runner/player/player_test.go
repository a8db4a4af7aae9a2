package player

import (
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
)

func testPhysics() config.PhysicsConfig {
	return config.PhysicsConfig{
		Gravity:           4000,
		JumpSpeed:         1400,
		HoldGravityFactor: 0.45,
		MaxJumpHold:       0.25,
		MaxFallSpeed:      3200,
		MaxJumps:          2,
	}
}

func testBody() config.PlayerConfig {
	return config.PlayerConfig{Width: 48, Height: 96, StartX: 300}
}

func newTestPlayer() *Player {
	return New(testPhysics(), testBody(), 40)
}

const dt = 1.0 / 60.0

func TestJumpBudget(t *testing.T) {
	p := newTestPlayer()

	// The ground jump is free: it never touches the airborne budget.
	if !p.JumpPressed() {
		t.Fatal("ground jump refused")
	}
	if p.State() != StateAirborne {
		t.Fatalf("state after jump = %v, want airborne", p.State())
	}
	if p.JumpsLeft() != 2 {
		t.Fatalf("JumpsLeft after ground jump = %d, want 2", p.JumpsLeft())
	}

	// The budget covers additional mid-air jumps only.
	if !p.JumpPressed() {
		t.Fatal("first airborne jump refused")
	}
	if !p.JumpPressed() {
		t.Fatal("second airborne jump refused")
	}
	if p.JumpPressed() {
		t.Error("third airborne jump accepted, budget is 2")
	}
	if p.JumpsLeft() != 0 {
		t.Errorf("JumpsLeft = %d, want 0", p.JumpsLeft())
	}
}

func TestLandingRestoresJumps(t *testing.T) {
	p := newTestPlayer()
	p.JumpPressed()
	p.JumpPressed()
	p.JumpReleased()

	// Simulate until the player comes back down to the surface.
	for i := 0; i < 600 && p.State() == StateAirborne; i++ {
		p.Integrate(dt, 0)
	}
	if p.State() != StateGrounded {
		t.Fatalf("never landed, state = %v, Y = %v, VY = %v", p.State(), p.Y, p.VY)
	}
	if p.Y != 0 {
		t.Errorf("landed at Y = %v, want 0", p.Y)
	}
	if p.JumpsLeft() != 2 {
		t.Errorf("JumpsLeft after landing = %d, want 2", p.JumpsLeft())
	}
}

func TestHoldExtendsJump(t *testing.T) {
	apex := func(hold bool) float64 {
		p := newTestPlayer()
		p.JumpPressed()
		if !hold {
			p.JumpReleased()
		}
		min := p.Y
		for i := 0; i < 600 && p.State() == StateAirborne; i++ {
			p.Integrate(dt, 0)
			if p.Y < min {
				min = p.Y
			}
		}
		return min
	}

	tapped := apex(false)
	held := apex(true)
	// Y grows downward, so a higher jump reaches a smaller Y.
	if held >= tapped {
		t.Errorf("held apex %v not above tapped apex %v", held, tapped)
	}
}

func TestHoldBudgetIsFinite(t *testing.T) {
	p := newTestPlayer()
	p.JumpPressed()

	// Never release: the reduced-gravity window must still expire.
	elapsed := 0.0
	for i := 0; i < 600 && p.State() == StateAirborne; i++ {
		p.Integrate(dt, 0)
		elapsed += dt
	}
	if p.State() != StateGrounded {
		t.Fatalf("player never landed while holding, Y = %v", p.Y)
	}
	if elapsed > 2.0 {
		t.Errorf("airborne for %vs with an expired hold window", elapsed)
	}
}

func TestLandingIsCrossingOnly(t *testing.T) {
	p := newTestPlayer()
	p.JumpPressed()
	p.JumpReleased()

	// Place the player below the surface while falling. It must keep
	// falling, never snap up.
	for p.VY < 0 {
		p.Integrate(dt, -1e9)
	}
	p.Y = 100 // Feet 100 units below the surface at Y=0
	yBefore := p.Y
	p.Integrate(dt, 0)
	if p.State() == StateGrounded {
		t.Fatal("landed from below the surface")
	}
	if p.Y <= yBefore {
		t.Errorf("Y moved up from %v to %v without crossing", yBefore, p.Y)
	}
}

func TestFastFallStillLands(t *testing.T) {
	p := newTestPlayer()
	p.JumpPressed()
	p.JumpReleased()
	p.VY = testPhysics().MaxFallSpeed
	p.Y = -10 // Just above the surface, falling at terminal velocity

	p.Integrate(dt, 0)
	if p.State() != StateGrounded {
		t.Fatalf("tunneled through the surface: Y = %v, state = %v", p.Y, p.State())
	}
	if p.Y != 0 {
		t.Errorf("landed at %v, want 0", p.Y)
	}
}

func TestMaxFallSpeedClamped(t *testing.T) {
	p := newTestPlayer()
	p.JumpPressed()
	p.JumpReleased()

	for i := 0; i < 300; i++ {
		p.Integrate(dt, 1e9)
	}
	if p.VY > testPhysics().MaxFallSpeed {
		t.Errorf("VY = %v exceeds max fall speed %v", p.VY, testPhysics().MaxFallSpeed)
	}
}

func TestWalkOffEdge(t *testing.T) {
	p := newTestPlayer()
	if p.State() != StateGrounded {
		t.Fatal("player should start grounded")
	}

	// The surface drops far below the step tolerance: free fall begins.
	p.Integrate(dt, 4000)
	if p.State() != StateAirborne {
		t.Fatalf("state = %v after surface dropped away, want airborne", p.State())
	}
	if p.JumpsLeft() != 2 {
		t.Errorf("walking off an edge consumed jumps: left = %d", p.JumpsLeft())
	}
}

func TestStepTolerance(t *testing.T) {
	for _, tc := range []struct {
		name      string
		surfaceY  float64
		wantY     float64
		wantState State
	}{
		{"small drop snaps down", 30, 30, StateGrounded},
		{"small rise snaps up", -30, -30, StateGrounded},
		{"big drop falls", 200, 0, StateAirborne},
		{"big rise holds position", -200, 0, StateGrounded},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPlayer()
			p.Integrate(dt, tc.surfaceY)
			if p.Y != tc.wantY {
				t.Errorf("Y = %v, want %v", p.Y, tc.wantY)
			}
			if p.State() != tc.wantState {
				t.Errorf("state = %v, want %v", p.State(), tc.wantState)
			}
		})
	}
}

func TestDeadPlayerIgnoresInput(t *testing.T) {
	p := newTestPlayer()
	p.Kill()

	if p.JumpPressed() {
		t.Error("dead player accepted a jump")
	}
	x := p.X
	p.Advance(dt, 500)
	if p.X != x {
		t.Error("dead player advanced horizontally")
	}

	// Still subject to gravity during the death sequence.
	y := p.Y
	p.Integrate(dt, 0)
	p.Integrate(dt, 0)
	if p.Y <= y {
		t.Error("dead player did not fall")
	}
}

func TestLandOnObstacle(t *testing.T) {
	p := newTestPlayer()
	p.JumpPressed()
	p.JumpPressed()
	p.LandOn(-60)

	if p.State() != StateGrounded {
		t.Fatalf("state = %v, want grounded", p.State())
	}
	if p.Y != -60 {
		t.Errorf("Y = %v, want -60", p.Y)
	}
	if p.JumpsLeft() != 2 {
		t.Errorf("JumpsLeft = %d, want 2", p.JumpsLeft())
	}
}
