// Package pattern defines the authored world segments the runner world is
// assembled from. A pattern is a self-contained strip of ground with optional
// pits, hazards, pickups, and moving hazards, described in local coordinates.
// Factories are stateless: the same inputs and RNG draws produce the same spec.
package pattern

import (
	"errors"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-runner/internal/config"
)

// Difficulty tags how dangerous a pattern is. The selection policy
// substitutes anything above Easy with plain ground early in the run.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// String returns a human-readable name for the difficulty.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// HazardKind distinguishes collider behavior in the resolver.
type HazardKind int

const (
	HazardSpike HazardKind = iota // Lethal on any contact
	HazardBlock                   // Solid and landable, blocks from the side
	HazardPlane                   // Lethal, moves horizontally above the ground
)

// Lethal returns true if touching this hazard kills the player.
func (k HazardKind) Lethal() bool {
	return k == HazardSpike || k == HazardPlane
}

// PitSpec is a gap with no ground, in pattern-local coordinates.
type PitSpec struct {
	OffsetX float64
	Width   float64
}

// HazardSpec is a static collider box in pattern-local coordinates.
// OffsetX is measured from the visual left edge (left cap included);
// the box sits on the surface.
type HazardSpec struct {
	OffsetX float64
	Width   float64
	Height  float64
	Kind    HazardKind
}

// PickupSpec is a collectible in pattern-local coordinates.
// OffsetY is relative to the surface top (negative = above the ground).
type PickupSpec struct {
	OffsetX float64
	OffsetY float64
}

// MoverSpec is a horizontally-translating lethal hazard (the plane).
// It oscillates around OffsetX with the given amplitude and speed,
// flying Altitude units above the surface.
type MoverSpec struct {
	OffsetX   float64
	Width     float64
	Height    float64
	Altitude  float64
	Amplitude float64
	Speed     float64
}

// Spec is the full description of one pattern, produced by a Factory.
// Immutable once placed; the world manager translates it to world
// coordinates.
type Spec struct {
	Name          string     // Variant name, for logs and the pattern CLI
	Length        float64    // Nominal extent: tiles only, caps excluded
	CapLeft       float64    // Left end cap width (drawn at negative local X)
	CapRight      float64    // Right end cap width
	Difficulty    Difficulty // Danger tag consumed by the selection policy
	SurfaceOffset float64    // Vertical offset from the anchor to the surface top
	Pits          []PitSpec
	Hazards       []HazardSpec
	Pickups       []PickupSpec
	Movers        []MoverSpec
}

// VisualLength returns the rendered width including both end caps.
// This, not Length, is the authoritative span for placement: the left
// cap extends past the anchor and the player can stand on it.
func (s Spec) VisualLength() float64 {
	return s.CapLeft + s.Length + s.CapRight
}

// Context carries everything a factory needs at call time.
type Context struct {
	StartX float64                // World X hint: factories may gate hazards on it
	Rng    *rand.Rand             // Injected so tests can seed deterministically
	Cfg    config.PatternsConfig  // Geometry and probability knobs
	Level  float64                // Difficulty level in [0, 1]
}

// Factory produces a pattern spec. It must not mutate shared state.
type Factory func(ctx Context) (Spec, error)

// ErrBadGeometry is returned when a factory cannot produce a valid spec.
var ErrBadGeometry = errors.New("pattern: invalid geometry")

// normalize clamps a spec into a valid, playable shape. Factories call it
// before returning so the world manager never has to defend against
// degenerate geometry. Returns ErrBadGeometry only for unrecoverable
// input (NaN dimensions).
func (s *Spec) normalize(cfg config.PatternsConfig) error {
	if math.IsNaN(s.Length) || math.IsNaN(s.SurfaceOffset) {
		return ErrBadGeometry
	}

	// Clamp to a minimum of one tile
	if s.Length < cfg.TileWidth {
		s.Length = cfg.TileWidth
	}
	if s.CapLeft < 0 || math.IsNaN(s.CapLeft) {
		s.CapLeft = 0
	}
	if s.CapRight < 0 || math.IsNaN(s.CapRight) {
		s.CapRight = 0
	}

	visual := s.VisualLength()

	// Hazards wider than the pattern are clamped, never passed through
	hazards := s.Hazards[:0]
	for _, h := range s.Hazards {
		if math.IsNaN(h.OffsetX) || math.IsNaN(h.Width) || math.IsNaN(h.Height) {
			continue
		}
		if h.Width <= 0 || h.Height <= 0 {
			continue
		}
		if h.OffsetX < 0 {
			h.OffsetX = 0
		}
		if h.OffsetX >= visual {
			continue
		}
		if h.OffsetX+h.Width > visual {
			h.Width = visual - h.OffsetX
		}
		hazards = append(hazards, h)
	}
	s.Hazards = hazards

	pits := s.Pits[:0]
	for _, p := range s.Pits {
		if math.IsNaN(p.OffsetX) || math.IsNaN(p.Width) || p.Width <= 0 {
			continue
		}
		if p.OffsetX < 0 {
			p.OffsetX = 0
		}
		if p.OffsetX >= visual {
			continue
		}
		if p.OffsetX+p.Width > visual {
			p.Width = visual - p.OffsetX
		}
		pits = append(pits, p)
	}
	s.Pits = pits

	pickups := s.Pickups[:0]
	for _, p := range s.Pickups {
		if math.IsNaN(p.OffsetX) || math.IsNaN(p.OffsetY) {
			continue
		}
		if p.OffsetX < 0 || p.OffsetX >= visual {
			continue
		}
		pickups = append(pickups, p)
	}
	s.Pickups = pickups

	movers := s.Movers[:0]
	for _, m := range s.Movers {
		if math.IsNaN(m.OffsetX) || math.IsNaN(m.Amplitude) || math.IsNaN(m.Speed) {
			continue
		}
		if m.Width <= 0 || m.Height <= 0 {
			continue
		}
		movers = append(movers, m)
	}
	s.Movers = movers

	return nil
}
