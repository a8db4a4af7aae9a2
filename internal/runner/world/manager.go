package world

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/runner/pattern"
)

// GroundStripHeight is the thickness of the landable ground collider.
const GroundStripHeight = 8.0

// PlacedPattern records where a pattern spec ended up in the world.
// Never mutated after creation; removed only by garbage collection or a
// full reset.
type PlacedPattern struct {
	Start      float64 // World X of the visual left edge (caps included)
	Span       float64 // Visual length: the authoritative placement span
	SurfaceY   float64 // World Y of the landable surface top
	Name       string
	Difficulty pattern.Difficulty
}

// End returns the world X just past the pattern's visual right edge.
func (p PlacedPattern) End() float64 {
	return p.Start + p.Span
}

// Pit is a span with explicitly no ground. Tracked independently of
// colliders: it represents absence, not presence.
type Pit struct {
	X     float64
	Width float64
}

// Contains reports whether the world X falls inside the pit span.
func (p Pit) Contains(x float64) bool {
	return x >= p.X && x < p.X+p.Width
}

// Pickup is a collectible at a fixed world position.
type Pickup struct {
	X, Y      float64 // Center position
	Collected bool
}

// Box returns the pickup's collision box.
func (p Pickup) Box() core.Box {
	const r = 24.0
	return core.NewBox(p.X-r, p.Y-r, 2*r, 2*r)
}

// mover is a horizontally-oscillating hazard that owns its collider
// handle. Its box is re-derived from the current visual position every
// tick it exists.
type mover struct {
	handle    Handle
	centerX   float64
	topY      float64
	width     float64
	height    float64
	amplitude float64
	speed     float64
	phase     float64
}

// x returns the mover's current center X.
func (m *mover) x() float64 {
	return m.centerX + m.amplitude*math.Sin(m.phase)
}

// Manager is the terrain database of the game. It owns the ordered
// placement of patterns, the collider arena, pits, pickups, and the
// scroll/speed state. Only the Manager mutates these; the resolver reads.
type Manager struct {
	cfg      config.RunnerConfig
	rng      *rand.Rand
	selector *pattern.Selector
	diff     *config.DifficultyManager

	colliders arena
	patterns  []PlacedPattern
	pits      []Pit
	pickups   []Pickup
	movers    []mover

	scroll   float64
	speed    float64 // Accumulated base speed, before difficulty scaling
	effSpeed float64 // Last effective scroll speed returned by Update
	nextX    float64 // Anchor for the next pattern placed by Extend

	showHitboxes  bool
	substitutions int // Factory failures recovered with plain ground
}

// NewManager creates a world manager with a seeded RNG.
func NewManager(cfg config.RunnerConfig, seed int64) *Manager {
	diff := config.NewDifficultyManager(cfg.Difficulty)
	m := &Manager{
		cfg:      cfg,
		diff:     diff,
		selector: pattern.NewSelector(cfg.Patterns, diff),
	}
	m.Reset(seed)
	return m
}

// Reset clears all patterns, colliders, pits, and pickups, and restores
// scroll and speed to their initial values.
func (m *Manager) Reset(seed int64) {
	m.rng = rand.New(rand.NewSource(seed))
	m.colliders.reset()
	m.patterns = m.patterns[:0]
	m.pits = m.pits[:0]
	m.pickups = m.pickups[:0]
	m.movers = m.movers[:0]
	m.scroll = 0
	m.speed = m.cfg.World.BaseSpeed
	m.effSpeed = m.cfg.World.BaseSpeed
	m.nextX = 0
	m.substitutions = 0
}

// Scroll returns the cumulative camera advance.
func (m *Manager) Scroll() float64 { return m.scroll }

// Speed returns the current effective scroll speed.
func (m *Manager) Speed() float64 { return m.effSpeed }

// AddPattern invokes the factory and registers the produced pattern at
// startX (the visual left edge). On factory error nothing is registered:
// the staging commit below guarantees no partial state. Direct placement
// runs at the base difficulty level; Extend is the ramped path.
func (m *Manager) AddPattern(f pattern.Factory, startX float64) (*PlacedPattern, error) {
	spec, err := f(m.factoryContext(startX, 0, 0))
	if err != nil {
		return nil, err
	}
	placed := m.place(spec, startX)
	return placed, nil
}

// factoryContext assembles the call-time inputs for a factory. The
// difficulty level tracks run progress so hazard density ramps along
// with the selector's weights.
func (m *Manager) factoryContext(startX float64, score, ticks int) pattern.Context {
	return pattern.Context{
		StartX: startX,
		Rng:    m.rng,
		Cfg:    m.cfg.Patterns,
		Level:  m.diff.Level(score, ticks),
	}
}

// place commits a validated spec into world state. All derived geometry
// is computed before any list is touched, so a panic in derivation could
// never leave half a pattern registered.
func (m *Manager) place(spec pattern.Spec, startX float64) *PlacedPattern {
	surfaceY := spec.SurfaceOffset
	placed := PlacedPattern{
		Start:      startX,
		Span:       spec.VisualLength(),
		SurfaceY:   surfaceY,
		Name:       spec.Name,
		Difficulty: spec.Difficulty,
	}

	// Stage: ground strips are the pattern span minus its pits
	type stagedBox struct {
		box  core.Box
		kind ColliderKind
	}
	var staged []stagedBox
	for _, seg := range groundSegments(placed, spec.Pits) {
		staged = append(staged, stagedBox{
			box:  core.NewBox(seg.X, surfaceY, seg.Width, GroundStripHeight),
			kind: KindGround,
		})
	}
	for _, h := range spec.Hazards {
		kind := KindSpike
		if h.Kind == pattern.HazardBlock {
			kind = KindBlock
		}
		staged = append(staged, stagedBox{
			box:  core.NewBox(startX+h.OffsetX, surfaceY-h.Height, h.Width, h.Height),
			kind: kind,
		})
	}

	var stagedPits []Pit
	for _, p := range spec.Pits {
		stagedPits = append(stagedPits, Pit{X: startX + p.OffsetX, Width: p.Width})
	}

	var stagedPickups []Pickup
	for _, p := range spec.Pickups {
		stagedPickups = append(stagedPickups, Pickup{
			X: startX + p.OffsetX,
			Y: surfaceY + p.OffsetY,
		})
	}

	var stagedMovers []mover
	for _, mv := range spec.Movers {
		stagedMovers = append(stagedMovers, mover{
			handle:    NoHandle,
			centerX:   startX + mv.OffsetX,
			topY:      surfaceY - mv.Altitude - mv.Height,
			width:     mv.Width,
			height:    mv.Height,
			amplitude: mv.Amplitude,
			speed:     mv.Speed,
			phase:     m.rng.Float64() * 2 * math.Pi,
		})
	}

	// Commit
	m.patterns = append(m.patterns, placed)
	for _, s := range staged {
		m.colliders.add(s.box, s.kind)
	}
	m.pits = append(m.pits, stagedPits...)
	m.pickups = append(m.pickups, stagedPickups...)
	for _, mv := range stagedMovers {
		mv.handle = m.colliders.add(
			core.NewBox(mv.x()-mv.width/2, mv.topY, mv.width, mv.height),
			KindPlane,
		)
		m.movers = append(m.movers, mv)
	}

	return &m.patterns[len(m.patterns)-1]
}

// segment is a contiguous run of ground inside a pattern span.
type segment struct {
	X, Width float64
}

// groundSegments subtracts the pits from the pattern span, producing the
// landable strips. Pits are pattern-local and already clamped.
func groundSegments(p PlacedPattern, pits []pattern.PitSpec) []segment {
	segs := []segment{{X: p.Start, Width: p.Span}}
	for _, pit := range pits {
		pitStart := p.Start + pit.OffsetX
		pitEnd := pitStart + pit.Width

		var next []segment
		for _, s := range segs {
			segEnd := s.X + s.Width
			if pitEnd <= s.X || pitStart >= segEnd {
				next = append(next, s)
				continue
			}
			if pitStart > s.X {
				next = append(next, segment{X: s.X, Width: pitStart - s.X})
			}
			if pitEnd < segEnd {
				next = append(next, segment{X: pitEnd, Width: segEnd - pitEnd})
			}
		}
		segs = next
	}
	return segs
}

// Update advances the world by one tick: accelerates and scrolls the
// camera, moves the oscillating hazards (keeping their collider boxes in
// sync with their visual position), and garbage-collects stale state.
// Must be called before physics integration each frame. The returned
// speed is the effective scroll speed: the accumulated acceleration
// scaled by the difficulty multiplier for the current progress.
func (m *Manager) Update(dt float64, score, ticks int) (scroll, speed float64) {
	m.speed += m.cfg.World.SpeedAccel * dt
	if cap := m.cfg.World.MaxSpeed; cap > 0 && m.speed > cap {
		m.speed = cap
	}
	effective := m.diff.Speed(m.speed, score, ticks)
	if cap := m.cfg.World.MaxSpeed; cap > 0 && effective > cap {
		effective = cap
	}
	m.effSpeed = effective
	m.scroll += effective * dt

	for i := range m.movers {
		mv := &m.movers[i]
		if mv.amplitude > 0 {
			mv.phase += dt * mv.speed / mv.amplitude
		}
		if c := m.colliders.get(mv.handle); c != nil {
			c.Box.X = mv.x() - mv.width/2
		}
	}

	m.collectGarbage()
	return m.scroll, effective
}

// collectGarbage drops colliders, patterns, pits, and pickups that are
// fully behind the camera by more than the safety margin.
func (m *Manager) collectGarbage() {
	cutoff := m.scroll - m.cfg.World.GCMargin

	removed := m.colliders.collect(cutoff)
	if len(removed) > 0 {
		gone := make(map[Handle]bool, len(removed))
		for _, h := range removed {
			gone[h] = true
		}
		live := m.movers[:0]
		for _, mv := range m.movers {
			if !gone[mv.handle] {
				live = append(live, mv)
			}
		}
		m.movers = live
	}

	patterns := m.patterns[:0]
	for _, p := range m.patterns {
		if p.End() >= cutoff {
			patterns = append(patterns, p)
		}
	}
	m.patterns = patterns

	pits := m.pits[:0]
	for _, p := range m.pits {
		if p.X+p.Width >= cutoff {
			pits = append(pits, p)
		}
	}
	m.pits = pits

	pickups := m.pickups[:0]
	for _, p := range m.pickups {
		if p.X >= cutoff && !p.Collected {
			pickups = append(pickups, p)
		}
	}
	m.pickups = pickups
}

// Extend keeps the world paved up to untilX, selecting variants through
// the policy. A factory failure or a too-early Medium+ spec is substituted
// with plain ground — the run never stops for a generation problem.
func (m *Manager) Extend(untilX float64, score, ticks int) {
	for m.nextX < untilX {
		f := m.selector.Pick(m.rng, m.nextX, score, ticks)

		spec, err := f(m.factoryContext(m.nextX, score, ticks))
		early := m.nextX < m.cfg.Patterns.DangerDistance
		if err != nil || (early && spec.Difficulty != pattern.Easy) {
			m.substitutions++
			spec, err = pattern.PlainGround(m.factoryContext(m.nextX, score, ticks))
			if err != nil {
				// PlainGround only fails on NaN config, which sanitize prevents
				return
			}
		}

		m.place(spec, m.nextX)
		m.nextX += spec.VisualLength()
	}
}

// IsOnPattern reports whether worldX falls within any placed pattern's
// registered visual span. Used to suppress false game-overs.
func (m *Manager) IsOnPattern(worldX float64) bool {
	for _, p := range m.patterns {
		if worldX >= p.Start && worldX <= p.End() {
			return true
		}
	}
	return false
}

// SurfaceYAt returns the landable surface Y for the pattern containing
// worldX. Over a pit, or outside every pattern, it returns the void
// fallback far below the play area so an unsupported player free-falls.
func (m *Manager) SurfaceYAt(worldX float64) float64 {
	if m.IsOverPit(worldX) {
		return m.cfg.World.VoidDepth
	}
	for _, p := range m.patterns {
		if worldX >= p.Start && worldX <= p.End() {
			return p.SurfaceY
		}
	}
	return m.cfg.World.VoidDepth
}

// PatternSurfaceAt returns the surface Y of the pattern containing
// worldX, ignoring pits. The pit-fall test measures depth against the
// pattern's nominal surface, not the void fallback.
func (m *Manager) PatternSurfaceAt(worldX float64) (float64, bool) {
	for _, p := range m.patterns {
		if worldX >= p.Start && worldX <= p.End() {
			return p.SurfaceY, true
		}
	}
	return 0, false
}

// IsOverPit reports whether worldX is inside any registered pit span.
// Intentionally independent of pattern membership: a pit lives inside an
// otherwise-registered span.
func (m *Manager) IsOverPit(worldX float64) bool {
	for _, p := range m.pits {
		if p.Contains(worldX) {
			return true
		}
	}
	return false
}

// Obstacles returns the non-ground colliders in insertion order for the
// resolver to scan.
func (m *Manager) Obstacles() []Collider {
	return m.colliders.ordered(func(c Collider) bool { return c.Kind != KindGround })
}

// Colliders returns every live collider, ground strips included. Used by
// the hitbox debug overlay.
func (m *Manager) Colliders() []Collider {
	return m.colliders.ordered(func(Collider) bool { return true })
}

// Pickups returns the live pickups. Indexes are valid until the next
// Update call.
func (m *Manager) Pickups() []Pickup {
	return m.pickups
}

// CollectPickup marks the pickup at index i as collected. Returns false
// if it was already collected.
func (m *Manager) CollectPickup(i int) bool {
	if i < 0 || i >= len(m.pickups) || m.pickups[i].Collected {
		return false
	}
	m.pickups[i].Collected = true
	return true
}

// Patterns returns the placed patterns, oldest first.
func (m *Manager) Patterns() []PlacedPattern {
	return m.patterns
}

// Pits returns the registered pit spans.
func (m *Manager) Pits() []Pit {
	return m.pits
}

// ToggleHitboxDebug flips the collider overlay and returns the new state.
// Purely a rendering concern: collision outcomes are unaffected.
func (m *Manager) ToggleHitboxDebug() bool {
	m.showHitboxes = !m.showHitboxes
	return m.showHitboxes
}

// HitboxesVisible reports whether the debug overlay is on.
func (m *Manager) HitboxesVisible() bool {
	return m.showHitboxes
}

// Substitutions reports how many patterns were replaced with plain ground
// (factory failures plus early-game difficulty substitutions).
func (m *Manager) Substitutions() int {
	return m.substitutions
}
