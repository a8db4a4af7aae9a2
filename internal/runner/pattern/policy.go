package pattern

import (
	"math/rand"

	"github.com/vovakirdan/tui-runner/internal/config"
)

// Selector implements the variant-selection policy: a weighted random
// choice among the factory set, with the hazard share growing after the
// configured danger distance. The plane variant is excluded entirely
// before that distance. The Medium+-before-threshold substitution is the
// caller's job (the world checks the produced spec's difficulty), since a
// factory is free to return whatever its contract says.
type Selector struct {
	cfg  config.PatternsConfig
	diff *config.DifficultyManager
}

// NewSelector creates a selector over the built-in factory set.
func NewSelector(cfg config.PatternsConfig, diff *config.DifficultyManager) *Selector {
	return &Selector{cfg: cfg, diff: diff}
}

type weighted struct {
	factory Factory
	weight  int
	hazard  bool
	plane   bool
}

// Pick chooses the factory for the next pattern starting at startX.
// score and ticks feed the difficulty ramp.
func (s *Selector) Pick(rng *rand.Rand, startX float64, score, ticks int) Factory {
	candidates := []weighted{
		{factory: PlainGround, weight: s.cfg.PlainWeight},
		{factory: BlockRun, weight: s.cfg.BlockWeight},
		{factory: GapRun, weight: s.cfg.GapWeight, hazard: true},
		{factory: SpikeRun, weight: s.cfg.SpikeWeight, hazard: true},
		{factory: PlaneRun, weight: s.cfg.PlaneWeight, hazard: true, plane: true},
		{factory: MixedDanger, weight: s.cfg.MixedWeight, hazard: true},
	}

	early := startX < s.cfg.DangerDistance

	total := 0
	for i := range candidates {
		c := &candidates[i]
		if c.plane && early {
			c.weight = 0
			continue
		}
		if c.hazard && !early && s.diff != nil {
			c.weight = s.diff.HazardWeight(c.weight, score, ticks)
		}
		if c.weight < 0 {
			c.weight = 0
		}
		total += c.weight
	}

	if total <= 0 {
		return PlainGround
	}

	roll := rng.Intn(total)
	for _, c := range candidates {
		if roll < c.weight {
			return c.factory
		}
		roll -= c.weight
	}
	return PlainGround
}

// Variants returns the named factory set, for the pattern debug command.
func Variants() map[string]Factory {
	return map[string]Factory{
		"plain":  PlainGround,
		"gaps":   GapRun,
		"spikes": SpikeRun,
		"blocks": BlockRun,
		"plane":  PlaneRun,
		"mixed":  MixedDanger,
	}
}
