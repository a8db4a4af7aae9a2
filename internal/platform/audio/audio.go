// Package audio synthesizes the runner's sound effects with beep.
// All sounds are generated procedurally, no asset files are needed.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-runner/internal/runner/session"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Player manages game audio. It implements session.SoundPlayer.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates a new audio player. Call Initialize before use.
func NewPlayer() *Player {
	return &Player{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup stops all sounds.
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	p.mixer.Clear()
	p.initialized = false
}

// Play queues a one-shot sound effect for the given kind.
func (p *Player) Play(kind session.SoundKind) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	var streamer beep.Streamer
	switch kind {
	case session.SoundJump:
		streamer = beep.Take(sampleRate.N(time.Millisecond*120), NewSweepGenerator(sampleRate, 220, 660, time.Millisecond*120))
	case session.SoundPickup:
		streamer = beep.Take(sampleRate.N(time.Millisecond*160), NewChimeGenerator(sampleRate, 987.77, 1318.51))
	case session.SoundPowerup:
		streamer = beep.Take(sampleRate.N(time.Millisecond*350), NewChimeGenerator(sampleRate, 880, 1760))
	case session.SoundDeath:
		streamer = beep.Take(sampleRate.N(time.Millisecond*300), NewCrashGenerator(sampleRate))
	case session.SoundGameOver:
		streamer = beep.Take(sampleRate.N(time.Millisecond*500), NewSweepGenerator(sampleRate, 440, 110, time.Millisecond*500))
	default:
		return
	}
	p.mixer.Add(streamer)
}

// SweepGenerator generates a frequency sweep between two pitches.
type SweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	samples  int
	pos      int
}

// NewSweepGenerator creates a sweep from one frequency to another over dur.
func NewSweepGenerator(sr beep.SampleRate, from, to float64, dur time.Duration) *SweepGenerator {
	return &SweepGenerator{
		sr:      sr,
		from:    from,
		to:      to,
		samples: sr.N(dur),
	}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		progress := math.Min(float64(g.pos)/float64(g.samples), 1.0)
		freq := g.from + (g.to-g.from)*progress

		// Fade out towards the end of the sweep
		envelope := 0.25 * (1.0 - progress*0.7)
		sample := envelope * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}

// ChimeGenerator generates a two-tone chime, fundamental plus overtone.
type ChimeGenerator struct {
	sr         beep.SampleRate
	fund, over float64
	pos        int
}

// NewChimeGenerator creates a chime with the given fundamental and overtone.
func NewChimeGenerator(sr beep.SampleRate, fund, over float64) *ChimeGenerator {
	return &ChimeGenerator{
		sr:   sr,
		fund: fund,
		over: over,
	}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 10)
		sample := envelope * (0.2*math.Sin(2*math.Pi*g.fund*t) + 0.08*math.Sin(2*math.Pi*g.over*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// CrashGenerator generates a noisy impact with a low rumble.
type CrashGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

// NewCrashGenerator creates a crash sound generator.
func NewCrashGenerator(sr beep.SampleRate) *CrashGenerator {
	return &CrashGenerator{
		sr:   sr,
		seed: time.Now().UnixNano(),
	}
}

func (g *CrashGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 8)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		rumble := 0.3 * math.Sin(2*math.Pi*70*t)

		sample := envelope * (0.25*noise + rumble)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *CrashGenerator) Err() error {
	return nil
}
