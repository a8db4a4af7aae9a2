package runner

import (
	"sort"

	"github.com/vovakirdan/tui-runner/internal/runner/session"
)

// spriteFrame is one 2x3 cell pose of the player character.
type spriteFrame [3]string

// animation is a named frame sequence with per-frame duration.
type animation struct {
	frames   []spriteFrame
	interval float64 // Seconds per frame
	loop     bool
}

var animations = map[string]animation{
	session.AnimRun: {
		frames: []spriteFrame{
			{"◆█", "██", "╱╲"},
			{"◆█", "██", "╲╱"},
		},
		interval: 0.12,
		loop:     true,
	},
	session.AnimJump: {
		frames:   []spriteFrame{{"◆█", "██", "╱╱"}},
		interval: 0.1,
	},
	session.AnimFall: {
		frames:   []spriteFrame{{"◆█", "██", "╲╲"}},
		interval: 0.1,
	},
	session.AnimDie: {
		frames:   []spriteFrame{{"✕█", "██", "__"}},
		interval: 0.1,
	},
}

// Animator cycles player sprite frames. It implements the session's
// animation collaborator; unknown names and tracks other than 0 are
// ignored since the runner has a single animated entity.
type Animator struct {
	current   string
	anim      animation
	frame     int
	elapsed   float64
	paused    bool
	timeScale float64
}

// NewAnimator starts on the run cycle.
func NewAnimator() *Animator {
	a := &Animator{timeScale: 1}
	a.Play(session.AnimRun, true, 0)
	return a
}

// Play switches to the named animation. Re-requesting the current
// animation is a no-op so per-tick state-driven requests don't restart
// the cycle.
func (a *Animator) Play(name string, loop bool, track int) {
	if track != 0 || name == a.current {
		return
	}
	anim, ok := animations[name]
	if !ok {
		return
	}
	anim.loop = loop || anim.loop
	a.current = name
	a.anim = anim
	a.frame = 0
	a.elapsed = 0
	a.paused = false
}

// PauseTrack freezes the current frame.
func (a *Animator) PauseTrack(track int) {
	if track == 0 {
		a.paused = true
	}
}

// ResumeTrack resumes a paused animation.
func (a *Animator) ResumeTrack(track int) {
	if track == 0 {
		a.paused = false
	}
}

// SetTimeScale scales playback speed.
func (a *Animator) SetTimeScale(scale float64) {
	if scale > 0 {
		a.timeScale = scale
	}
}

// Names lists the available animations, sorted for stable output.
func (a *Animator) Names() []string {
	names := make([]string, 0, len(animations))
	for name := range animations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Update advances the frame clock by dt.
func (a *Animator) Update(dt float64) {
	if a.paused || len(a.anim.frames) == 0 {
		return
	}
	a.elapsed += dt * a.timeScale
	for a.elapsed >= a.anim.interval {
		a.elapsed -= a.anim.interval
		if a.frame+1 < len(a.anim.frames) {
			a.frame++
		} else if a.anim.loop {
			a.frame = 0
		}
	}
}

// Sprite returns the rows of the current frame.
func (a *Animator) Sprite() spriteFrame {
	if len(a.anim.frames) == 0 {
		return spriteFrame{}
	}
	return a.anim.frames[a.frame]
}
