package main

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/runner/pattern"
)

var (
	flagPatternLevel float64
	flagPatternAt    float64
)

var patternCmd = &cobra.Command{
	Use:   "pattern <variant>",
	Short: "Inspect a generated terrain pattern",
	Long: `Generate one terrain pattern and print its geometry.

Useful for tuning pattern configs: shows the geometry a factory produces
for a given seed, difficulty level, and world position.

Run without arguments to list the available variants.

Examples:
  runner pattern spikes
  runner pattern gaps --seed 7
  runner pattern plane --level 0.8 --at 5000`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPattern,
}

func init() {
	patternCmd.Flags().Float64Var(&flagPatternLevel, "level", 0.5, "Difficulty level in [0, 1]")
	patternCmd.Flags().Float64Var(&flagPatternAt, "at", 5000, "World X position hint for the factory")
}

func runPattern(cmd *cobra.Command, args []string) {
	variants := pattern.Variants()

	if len(args) == 0 {
		names := make([]string, 0, len(variants))
		for name := range variants {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("Available variants:")
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
		return
	}

	name := args[0]
	factory, ok := variants[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", name)
		fmt.Fprintln(os.Stderr, "Run 'runner pattern' to list variants.")
		os.Exit(1)
	}

	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		cfg = config.DefaultRunnerConfig()
	}

	seed := flagSeed
	if seed == 0 {
		seed = 1
	}

	ctx := pattern.Context{
		StartX: flagPatternAt,
		Rng:    rand.New(rand.NewSource(seed)),
		Cfg:    cfg.Patterns,
		Level:  flagPatternLevel,
	}

	spec, err := factory(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating pattern: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Pattern:    %s (%s)\n", spec.Name, spec.Difficulty)
	fmt.Printf("Span:       %.0f units (caps %.0f + %.0f, tiles %.0f)\n",
		spec.VisualLength(), spec.CapLeft, spec.CapRight, spec.Length)
	fmt.Printf("Surface:    %+.0f units from anchor\n", spec.SurfaceOffset)
	fmt.Printf("Seed:       %d, level %.2f, at x=%.0f\n", seed, flagPatternLevel, flagPatternAt)
	fmt.Println()

	if len(spec.Pits) > 0 {
		fmt.Println("Pits:")
		for _, p := range spec.Pits {
			fmt.Printf("  at %+7.0f  width %.0f\n", p.OffsetX, p.Width)
		}
	}
	if len(spec.Hazards) > 0 {
		fmt.Println("Hazards:")
		for _, h := range spec.Hazards {
			fmt.Printf("  at %+7.0f  %.0fx%.0f  %s\n", h.OffsetX, h.Width, h.Height, hazardLabel(h.Kind))
		}
	}
	if len(spec.Movers) > 0 {
		fmt.Println("Movers:")
		for _, m := range spec.Movers {
			fmt.Printf("  at %+7.0f  %.0fx%.0f  altitude %.0f  amplitude %.0f  speed %.1f\n",
				m.OffsetX, m.Width, m.Height, m.Altitude, m.Amplitude, m.Speed)
		}
	}
	if len(spec.Pickups) > 0 {
		fmt.Println("Pickups:")
		for _, p := range spec.Pickups {
			fmt.Printf("  at %+7.0f  height %+.0f\n", p.OffsetX, p.OffsetY)
		}
	}

	fmt.Println()
	fmt.Println(renderStrip(spec))
}

func hazardLabel(k pattern.HazardKind) string {
	if k.Lethal() {
		return "spike (lethal)"
	}
	return "block"
}

// renderStrip draws a one-line ASCII profile of the pattern: ground,
// pits, and hazard markers, at roughly one column per 24 units.
func renderStrip(spec pattern.Spec) string {
	const unitsPerCol = 24.0

	cols := int(spec.VisualLength()/unitsPerCol) + 1
	strip := make([]rune, cols)
	for i := range strip {
		strip[i] = '='
	}

	mark := func(offset, width float64, r rune) {
		from := int(offset / unitsPerCol)
		to := int((offset + width) / unitsPerCol)
		for c := from; c <= to && c < cols; c++ {
			if c >= 0 {
				strip[c] = r
			}
		}
	}

	for _, p := range spec.Pits {
		mark(p.OffsetX, p.Width, ' ')
	}
	for _, h := range spec.Hazards {
		r := 'B'
		if h.Kind.Lethal() {
			r = '^'
		}
		mark(h.OffsetX, h.Width, r)
	}
	for _, m := range spec.Movers {
		mark(m.OffsetX-m.Width/2, m.Width, '~')
	}
	for _, p := range spec.Pickups {
		c := int(p.OffsetX / unitsPerCol)
		if c >= 0 && c < cols && strip[c] == '=' {
			strip[c] = 'o'
		}
	}

	return "|" + strings.TrimRight(string(strip), " ") + "|"
}
