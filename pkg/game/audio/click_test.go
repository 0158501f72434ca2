package audio

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gopxl/beep"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestClick_Length(t *testing.T) {
	rate := beep.SampleRate(44100)
	got := drain(NewClick(rate, rand.New(rand.NewSource(1))))
	if want := rate.N(clickDuration); len(got) != want {
		t.Errorf("click length = %d samples, want %d", len(got), want)
	}
}

func TestClick_InRangeAndDecays(t *testing.T) {
	samples := drain(NewClick(beep.SampleRate(44100), rand.New(rand.NewSource(7))))
	for i, s := range samples {
		if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
			t.Fatalf("sample %d = %v, want mono in [-1, 1]", i, s)
		}
	}

	peak := func(from, to int) float64 {
		m := 0.0
		for _, s := range samples[from:to] {
			m = math.Max(m, math.Abs(s[0]))
		}
		return m
	}
	q := len(samples) / 4
	if head, tail := peak(0, q), peak(3*q, len(samples)); tail >= head {
		t.Errorf("tail peak %.3f should be below head peak %.3f", tail, head)
	}
}

func TestClick_NoError(t *testing.T) {
	if err := NewClick(beep.SampleRate(22050), rand.New(rand.NewSource(1))).Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestClicker_SilentUntilInitialized(t *testing.T) {
	c := NewClicker()
	c.PlayClick("S1")
	c.ShowSwitch("S1", true)
	c.Cleanup()
	if c.Played() != 0 {
		t.Errorf("Played() = %d, want 0 before Initialize", c.Played())
	}
}
