package session

// Animation names requested by the session. An animator is free to map
// them onto whatever frames it has; unknown names should be ignored.
const (
	AnimRun  = "run"
	AnimJump = "jump"
	AnimFall = "fall"
	AnimDie  = "die"
)

// Animator receives animation requests from the session. The TUI layer
// implements it with sprite frame cycling; tests use the no-op.
type Animator interface {
	// Play starts the named animation on the given track.
	Play(name string, loop bool, track int)
	// PauseTrack freezes a track in place.
	PauseTrack(track int)
	// ResumeTrack resumes a paused track.
	ResumeTrack(track int)
	// SetTimeScale scales playback speed for all tracks.
	SetTimeScale(scale float64)
	// Names lists the animations the animator can actually play.
	Names() []string
}

// SoundKind identifies a one-shot sound effect.
type SoundKind int

const (
	SoundJump SoundKind = iota
	SoundPickup
	SoundPowerup
	SoundDeath
	SoundGameOver
)

// SoundPlayer plays one-shot effects. Playback failures are swallowed;
// audio degrades silently.
type SoundPlayer interface {
	Play(kind SoundKind)
}

// NopAnimator ignores all animation requests.
type NopAnimator struct{}

func (NopAnimator) Play(string, bool, int) {}
func (NopAnimator) PauseTrack(int)         {}
func (NopAnimator) ResumeTrack(int)        {}
func (NopAnimator) SetTimeScale(float64)   {}
func (NopAnimator) Names() []string        { return nil }

// NopSound ignores all sound requests.
type NopSound struct{}

func (NopSound) Play(SoundKind) {}
