package pattern

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
)

func testContext(seed int64, startX float64) Context {
	return Context{
		StartX: startX,
		Rng:    rand.New(rand.NewSource(seed)),
		Cfg:    config.DefaultRunnerConfig().Patterns,
	}
}

// checkSpec asserts the geometry contract every factory must satisfy.
func checkSpec(t *testing.T, s Spec) {
	t.Helper()
	vl := s.VisualLength()
	if vl <= 0 || math.IsNaN(vl) {
		t.Fatalf("%s: visual length = %v", s.Name, vl)
	}
	if s.Length < 0 || s.CapLeft < 0 || s.CapRight < 0 {
		t.Fatalf("%s: negative span component: %+v", s.Name, s)
	}
	for _, p := range s.Pits {
		if p.OffsetX < 0 || p.OffsetX+p.Width > vl+1e-9 {
			t.Errorf("%s: pit [%v, +%v] outside [0, %v]", s.Name, p.OffsetX, p.Width, vl)
		}
		if p.Width <= 0 {
			t.Errorf("%s: pit with width %v", s.Name, p.Width)
		}
	}
	for _, h := range s.Hazards {
		if h.OffsetX < 0 || h.OffsetX+h.Width > vl+1e-9 {
			t.Errorf("%s: hazard [%v, +%v] outside [0, %v]", s.Name, h.OffsetX, h.Width, vl)
		}
		if h.Width <= 0 || h.Height <= 0 {
			t.Errorf("%s: hazard with zero size: %+v", s.Name, h)
		}
	}
	for _, p := range s.Pickups {
		if p.OffsetX < 0 || p.OffsetX > vl+1e-9 {
			t.Errorf("%s: pickup at %v outside [0, %v]", s.Name, p.OffsetX, vl)
		}
	}
	for _, m := range s.Movers {
		if m.OffsetX < 0 || m.OffsetX > vl+1e-9 {
			t.Errorf("%s: mover at %v outside [0, %v]", s.Name, m.OffsetX, vl)
		}
	}
}

func TestFactoriesProduceValidGeometry(t *testing.T) {
	for name, f := range Variants() {
		t.Run(name, func(t *testing.T) {
			for seed := int64(0); seed < 200; seed++ {
				s, err := f(testContext(seed, 5000))
				if err != nil {
					t.Fatalf("seed %d: %v", seed, err)
				}
				checkSpec(t, s)
			}
		})
	}
}

func TestFactoriesAreDeterministic(t *testing.T) {
	for name, f := range Variants() {
		a, errA := f(testContext(99, 5000))
		b, errB := f(testContext(99, 5000))
		if errA != nil || errB != nil {
			t.Fatalf("%s: %v / %v", name, errA, errB)
		}
		if a.Name != b.Name || a.Length != b.Length || a.SurfaceOffset != b.SurfaceOffset ||
			len(a.Pits) != len(b.Pits) || len(a.Hazards) != len(b.Hazards) ||
			len(a.Pickups) != len(b.Pickups) || len(a.Movers) != len(b.Movers) {
			t.Errorf("%s: same seed produced different specs:\n%+v\n%+v", name, a, b)
		}
	}
}

func TestDifficultyLabels(t *testing.T) {
	want := map[string]Difficulty{
		"plain":  Easy,
		"blocks": Easy,
		"gaps":   Medium,
		"spikes": Medium,
		"plane":  Hard,
		"mixed":  Hard,
	}
	for name, f := range Variants() {
		s, err := f(testContext(1, 5000))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if s.Difficulty != want[name] {
			t.Errorf("%s: difficulty = %v, want %v", name, s.Difficulty, want[name])
		}
	}
}

func TestGapRunKeepsLandingRoom(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Patterns
	for seed := int64(0); seed < 200; seed++ {
		s, err := GapRun(testContext(seed, 5000))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		minLead := s.CapLeft + 2*cfg.TileWidth
		for _, p := range s.Pits {
			if p.OffsetX < minLead-1e-9 {
				t.Errorf("seed %d: pit at %v, want at least %v of leading ground", seed, p.OffsetX, minLead)
			}
		}
	}
}

func TestNormalizeClampsAndRejects(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Patterns

	s := Spec{
		Name:    "weird",
		Length:  10, // Below one tile
		Pits:    []PitSpec{{OffsetX: -50, Width: 40}, {OffsetX: 20, Width: 0}},
		Hazards: []HazardSpec{{OffsetX: 1e6, Width: 40, Height: 40}},
	}
	if err := s.normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if s.Length < cfg.TileWidth {
		t.Errorf("length = %v, want clamped to at least one tile", s.Length)
	}
	checkSpec(t, s)

	bad := Spec{Name: "nan", Length: math.NaN()}
	if err := bad.normalize(cfg); err == nil {
		t.Error("NaN length accepted")
	}
}

func TestSelectorExcludesPlaneBeforeDangerDistance(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	sel := NewSelector(cfg.Patterns, config.NewDifficultyManager(cfg.Difficulty))
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 500; i++ {
		f := sel.Pick(rng, cfg.Patterns.DangerDistance-1, 0, 0)
		s, err := f(testContext(int64(i), 0))
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if len(s.Movers) > 0 {
			t.Fatalf("draw %d: plane variant picked before the danger distance", i)
		}
	}
}

func TestSelectorCoversVariantsAfterThreshold(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	sel := NewSelector(cfg.Patterns, config.NewDifficultyManager(cfg.Difficulty))
	rng := rand.New(rand.NewSource(3))

	seen := map[string]bool{}
	for i := 0; i < 2000; i++ {
		f := sel.Pick(rng, cfg.Patterns.DangerDistance*2, 10000, 10000)
		s, err := f(testContext(int64(i), cfg.Patterns.DangerDistance*2))
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		seen[s.Name] = true
	}
	for name := range Variants() {
		if !seen[name] {
			t.Errorf("variant %q never selected in 2000 draws", name)
		}
	}
}

func TestSelectorFallsBackToPlainOnZeroWeights(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Patterns.PlainWeight = 0
	cfg.Patterns.GapWeight = 0
	cfg.Patterns.SpikeWeight = 0
	cfg.Patterns.BlockWeight = 0
	cfg.Patterns.PlaneWeight = 0
	cfg.Patterns.MixedWeight = 0

	sel := NewSelector(cfg.Patterns, nil)
	f := sel.Pick(rand.New(rand.NewSource(1)), 0, 0, 0)
	s, err := f(testContext(1, 0))
	if err != nil {
		t.Fatalf("fallback factory: %v", err)
	}
	if s.Name != "plain" {
		t.Errorf("fallback variant = %q, want plain", s.Name)
	}
}
