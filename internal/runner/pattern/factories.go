package pattern

// The factory set. Each factory is a pure function of its Context: all
// randomness comes from the injected RNG, all geometry from the config.
// Invariant across any draw: every pit, hazard, and pickup lands inside
// [0, VisualLength] after normalize.

// PlainGround produces a flat, safe strip: tiles, caps, optional pickups.
// Also the substitution target whenever another factory fails or a danger
// pattern is requested too early.
func PlainGround(ctx Context) (Spec, error) {
	s := Spec{
		Name:          "plain",
		Length:        tileRun(ctx),
		CapLeft:       ctx.Cfg.CapWidth,
		CapRight:      ctx.Cfg.CapWidth,
		Difficulty:    Easy,
		SurfaceOffset: surfaceOffset(ctx),
	}

	if ctx.Rng.Float64() < ctx.Cfg.PickupChance {
		s.Pickups = pickupRow(ctx, s, 0.25, 3+ctx.Rng.Intn(3))
	}

	err := s.normalize(ctx.Cfg)
	return s, err
}

// GapRun carves one or two pits into the strip. The leading ground is
// always at least two tiles so the player has room to land before the
// first gap.
func GapRun(ctx Context) (Spec, error) {
	s := Spec{
		Name:          "gaps",
		Length:        tileRun(ctx) + 4*ctx.Cfg.TileWidth,
		CapLeft:       ctx.Cfg.CapWidth,
		CapRight:      ctx.Cfg.CapWidth,
		Difficulty:    Medium,
		SurfaceOffset: surfaceOffset(ctx),
	}

	tile := ctx.Cfg.TileWidth
	pits := 1 + ctx.Rng.Intn(2)
	cursor := s.CapLeft + 2*tile
	for i := 0; i < pits; i++ {
		width := tile * (1.5 + ctx.Rng.Float64()*1.5)
		if cursor+width > s.VisualLength()-2*tile {
			break
		}
		s.Pits = append(s.Pits, PitSpec{OffsetX: cursor, Width: width})

		// A pickup arc over the gap rewards clean jumps
		if ctx.Rng.Float64() < ctx.Cfg.PickupChance {
			s.Pickups = append(s.Pickups,
				PickupSpec{OffsetX: cursor + width*0.5, OffsetY: -110},
			)
		}
		cursor += width + 2*tile + ctx.Rng.Float64()*2*tile
	}

	err := s.normalize(ctx.Cfg)
	return s, err
}

// SpikeRun plants lethal spike clusters on the ground. Early in the run
// (before the danger threshold) the factory holds back to a single cluster.
func SpikeRun(ctx Context) (Spec, error) {
	s := Spec{
		Name:          "spikes",
		Length:        tileRun(ctx) + 2*ctx.Cfg.TileWidth,
		CapLeft:       ctx.Cfg.CapWidth,
		CapRight:      ctx.Cfg.CapWidth,
		Difficulty:    Medium,
		SurfaceOffset: surfaceOffset(ctx),
	}

	tile := ctx.Cfg.TileWidth
	clusters := 1
	if ctx.StartX >= ctx.Cfg.DangerDistance {
		clusters += ctx.Rng.Intn(2 + int(ctx.Level*2))
	}

	cursor := s.CapLeft + 2*tile
	for i := 0; i < clusters; i++ {
		width := tile * (0.5 + ctx.Rng.Float64()*0.5)
		if cursor+width > s.VisualLength()-tile {
			break
		}
		s.Hazards = append(s.Hazards, HazardSpec{
			OffsetX: cursor,
			Width:   width,
			Height:  40 + ctx.Rng.Float64()*30,
			Kind:    HazardSpike,
		})
		cursor += width + 2.5*tile + ctx.Rng.Float64()*2*tile
	}

	err := s.normalize(ctx.Cfg)
	return s, err
}

// BlockRun stacks solid, landable crates the player can jump onto or must
// jump over. Not lethal, so it is allowed from the very start.
func BlockRun(ctx Context) (Spec, error) {
	s := Spec{
		Name:          "blocks",
		Length:        tileRun(ctx) + 2*ctx.Cfg.TileWidth,
		CapLeft:       ctx.Cfg.CapWidth,
		CapRight:      ctx.Cfg.CapWidth,
		Difficulty:    Easy,
		SurfaceOffset: surfaceOffset(ctx),
	}

	tile := ctx.Cfg.TileWidth
	blocks := 1 + ctx.Rng.Intn(2)
	cursor := s.CapLeft + 2.5*tile
	for i := 0; i < blocks; i++ {
		width := tile * (0.8 + ctx.Rng.Float64()*0.6)
		if cursor+width > s.VisualLength()-tile {
			break
		}
		height := 60 + ctx.Rng.Float64()*60
		s.Hazards = append(s.Hazards, HazardSpec{
			OffsetX: cursor,
			Width:   width,
			Height:  height,
			Kind:    HazardBlock,
		})

		// Pickup perched on top of the crate
		if ctx.Rng.Float64() < ctx.Cfg.PickupChance {
			s.Pickups = append(s.Pickups, PickupSpec{
				OffsetX: cursor + width*0.5,
				OffsetY: -(height + 40),
			})
		}
		cursor += width + 3*tile + ctx.Rng.Float64()*2*tile
	}

	err := s.normalize(ctx.Cfg)
	return s, err
}

// PlaneRun adds a horizontally-oscillating lethal plane above the strip.
// The selection policy never picks it before the danger threshold.
func PlaneRun(ctx Context) (Spec, error) {
	s := Spec{
		Name:          "plane",
		Length:        tileRun(ctx) + 4*ctx.Cfg.TileWidth,
		CapLeft:       ctx.Cfg.CapWidth,
		CapRight:      ctx.Cfg.CapWidth,
		Difficulty:    Hard,
		SurfaceOffset: surfaceOffset(ctx),
	}

	tile := ctx.Cfg.TileWidth
	center := s.VisualLength() * (0.35 + ctx.Rng.Float64()*0.3)
	s.Movers = append(s.Movers, MoverSpec{
		OffsetX:   center,
		Width:     2 * tile,
		Height:    40,
		Altitude:  90 + ctx.Rng.Float64()*60,
		Amplitude: 2*tile + ctx.Rng.Float64()*3*tile,
		Speed:     120 + ctx.Rng.Float64()*120,
	})

	err := s.normalize(ctx.Cfg)
	return s, err
}

// MixedDanger combines a pit with spikes on the far side. The hardest
// static variant.
func MixedDanger(ctx Context) (Spec, error) {
	s := Spec{
		Name:          "mixed",
		Length:        tileRun(ctx) + 5*ctx.Cfg.TileWidth,
		CapLeft:       ctx.Cfg.CapWidth,
		CapRight:      ctx.Cfg.CapWidth,
		Difficulty:    Hard,
		SurfaceOffset: surfaceOffset(ctx),
	}

	tile := ctx.Cfg.TileWidth
	pitStart := s.CapLeft + 2*tile
	pitWidth := tile * (1.5 + ctx.Rng.Float64())
	s.Pits = append(s.Pits, PitSpec{OffsetX: pitStart, Width: pitWidth})

	spikeStart := pitStart + pitWidth + 1.5*tile
	s.Hazards = append(s.Hazards, HazardSpec{
		OffsetX: spikeStart,
		Width:   tile * 0.6,
		Height:  50 + ctx.Rng.Float64()*25,
		Kind:    HazardSpike,
	})

	if ctx.Rng.Float64() < ctx.Cfg.PickupChance {
		s.Pickups = append(s.Pickups,
			PickupSpec{OffsetX: pitStart + pitWidth*0.5, OffsetY: -120},
			PickupSpec{OffsetX: spikeStart + tile*2, OffsetY: -60},
		)
	}

	err := s.normalize(ctx.Cfg)
	return s, err
}

// tileRun draws a random tile count within the configured range and
// returns its width in world units.
func tileRun(ctx Context) float64 {
	tiles := ctx.Cfg.MinTiles
	if ctx.Cfg.MaxTiles > ctx.Cfg.MinTiles {
		tiles += ctx.Rng.Intn(ctx.Cfg.MaxTiles - ctx.Cfg.MinTiles + 1)
	}
	return float64(tiles) * ctx.Cfg.TileWidth
}

// surfaceOffset picks a small vertical offset for the pattern surface.
// Rises stay within the player's step tolerance; drops can be larger
// since the player simply falls onto the lower surface.
func surfaceOffset(ctx Context) float64 {
	switch ctx.Rng.Intn(5) {
	case 0:
		return -30 // Raised
	case 1:
		return 30 // Lowered
	case 2:
		return 60 // Lowered more
	default:
		return 0
	}
}

// pickupRow lays out n pickups hovering over the strip, starting at the
// given fraction of the visual length.
func pickupRow(ctx Context, s Spec, startFrac float64, n int) []PickupSpec {
	spacing := ctx.Cfg.TileWidth * 1.2
	x := s.VisualLength() * startFrac
	row := make([]PickupSpec, 0, n)
	for i := 0; i < n; i++ {
		if x >= s.VisualLength() {
			break
		}
		row = append(row, PickupSpec{OffsetX: x, OffsetY: -70})
		x += spacing
	}
	return row
}
