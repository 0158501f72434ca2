// Package audio plays the switch click through the system speaker.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

const (
	sampleRate    = beep.SampleRate(44100)
	clickDuration = 25 * time.Millisecond
	clickFreq     = 2400.0
)

// click is a short tick: a high tone plus noise under an exponential decay
type click struct {
	rng      *rand.Rand
	rate     beep.SampleRate
	freq     float64
	phase    float64
	position int
	total    int
	decay    float64
}

// NewClick creates a click streamer. rng drives the noise component.
func NewClick(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	total := rate.N(clickDuration)
	return &click{
		rng:   rng,
		rate:  rate,
		freq:  clickFreq,
		total: total,
		// fall to about 1% by the end
		decay: math.Log(100) / float64(total),
	}
}

func (c *click) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if c.position >= c.total {
			return i, i > 0
		}
		env := math.Exp(-c.decay * float64(c.position))
		tone := math.Sin(2 * math.Pi * c.phase)
		noise := c.rng.Float64()*2 - 1
		val := env * (0.6*tone + 0.4*noise) * 0.5

		samples[i][0] = val
		samples[i][1] = val

		c.phase += c.freq / float64(c.rate)
		c.phase -= math.Floor(c.phase)
		c.position++
	}
	return len(samples), true
}

func (c *click) Err() error { return nil }
