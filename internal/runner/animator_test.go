package runner

import (
	"testing"

	"github.com/vovakirdan/tui-runner/internal/runner/session"
)

func TestAnimatorCyclesRunFrames(t *testing.T) {
	a := NewAnimator()

	first := a.Sprite()
	a.Update(0.12)
	second := a.Sprite()
	if first == second {
		t.Fatal("run cycle did not advance after one interval")
	}

	// Loops back to the first frame.
	a.Update(0.12)
	if a.Sprite() != first {
		t.Error("run cycle did not loop")
	}
}

func TestAnimatorPlayDedupesCurrent(t *testing.T) {
	a := NewAnimator()
	a.Update(0.12)
	frame := a.frame

	a.Play(session.AnimRun, true, 0)
	if a.frame != frame {
		t.Error("re-requesting the current animation restarted it")
	}
}

func TestAnimatorIgnoresUnknownNameAndTrack(t *testing.T) {
	a := NewAnimator()

	a.Play("warp", false, 0)
	if a.current != session.AnimRun {
		t.Errorf("unknown name switched animation to %q", a.current)
	}

	a.Play(session.AnimDie, false, 1)
	if a.current != session.AnimRun {
		t.Errorf("nonzero track switched animation to %q", a.current)
	}
}

func TestAnimatorNonLoopHoldsLastFrame(t *testing.T) {
	a := NewAnimator()
	a.Play(session.AnimDie, false, 0)

	a.Update(1.0)
	last := a.Sprite()
	a.Update(1.0)
	if a.Sprite() != last {
		t.Error("non-looping animation did not hold its last frame")
	}
}

func TestAnimatorPauseAndTimeScale(t *testing.T) {
	a := NewAnimator()

	a.PauseTrack(0)
	a.Update(1.0)
	if a.frame != 0 {
		t.Error("paused animator advanced")
	}

	a.ResumeTrack(0)
	a.SetTimeScale(2)
	a.Update(0.07) // 0.14 of scaled time, one interval
	if a.frame != 1 {
		t.Errorf("frame = %d, want 1 after one scaled interval", a.frame)
	}
}

func TestAnimatorNamesCoverSessionSet(t *testing.T) {
	a := NewAnimator()
	names := a.Names()

	want := map[string]bool{
		session.AnimRun:  false,
		session.AnimJump: false,
		session.AnimFall: false,
		session.AnimDie:  false,
	}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, seen := range want {
		if !seen {
			t.Errorf("Names() missing %q", n)
		}
	}
}
