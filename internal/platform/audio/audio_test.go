package audio

import (
	"math"
	"testing"
	"time"
)

func streamAll(t *testing.T, g interface {
	Stream([][2]float64) (int, bool)
	Err() error
}, samples int) [][2]float64 {
	t.Helper()
	buf := make([][2]float64, samples)
	n, ok := g.Stream(buf)
	if !ok || n != samples {
		t.Fatalf("Stream returned (%d, %v), want (%d, true)", n, ok, samples)
	}
	if err := g.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	return buf
}

func TestSweepGeneratorStaysInRange(t *testing.T) {
	g := NewSweepGenerator(sampleRate, 220, 660, time.Millisecond*120)
	buf := streamAll(t, g, sampleRate.N(time.Millisecond*120))

	for i, s := range buf {
		if math.Abs(s[0]) > 1.0 || math.Abs(s[1]) > 1.0 {
			t.Fatalf("sample %d out of range: %v", i, s)
		}
		if s[0] != s[1] {
			t.Fatalf("sample %d not mono: %v", i, s)
		}
	}
}

func TestChimeGeneratorDecays(t *testing.T) {
	g := NewChimeGenerator(sampleRate, 880, 1760)
	buf := streamAll(t, g, sampleRate.N(time.Millisecond*350))

	early := peakAmplitude(buf[:len(buf)/4])
	late := peakAmplitude(buf[3*len(buf)/4:])
	if late >= early {
		t.Fatalf("chime should decay: early peak %f, late peak %f", early, late)
	}
}

func TestCrashGeneratorDecays(t *testing.T) {
	g := NewCrashGenerator(sampleRate)
	buf := streamAll(t, g, sampleRate.N(time.Millisecond*300))

	early := peakAmplitude(buf[:len(buf)/4])
	late := peakAmplitude(buf[3*len(buf)/4:])
	if late >= early {
		t.Fatalf("crash should decay: early peak %f, late peak %f", early, late)
	}
	if early == 0 {
		t.Fatal("crash produced silence")
	}
}

func TestPlayBeforeInitializeIsSafe(t *testing.T) {
	p := NewPlayer()
	// Must not panic without a speaker.
	p.Play(0)
	p.Cleanup()
}

func peakAmplitude(buf [][2]float64) float64 {
	peak := 0.0
	for _, s := range buf {
		if a := math.Abs(s[0]); a > peak {
			peak = a
		}
	}
	return peak
}
