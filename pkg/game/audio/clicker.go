package audio

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Clicker plays the switch click. It does nothing until Initialize succeeds,
// so a station without a sound device still runs.
type Clicker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rng         *rand.Rand
	initialized bool
	played      int
}

// NewClicker creates an uninitialised clicker
func NewClicker() *Clicker {
	return &Clicker{
		mixer: &beep.Mixer{},
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Initialize opens the speaker
func (c *Clicker) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Cleanup silences anything still playing
func (c *Clicker) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

// PlayClick queues a click
func (c *Clicker) PlayClick(string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Add(NewClick(sampleRate, c.rng))
	speaker.Unlock()
	c.played++
}

// ShowSwitch is a no-op; the clicker has no visuals
func (c *Clicker) ShowSwitch(string, bool) {}

// Played returns how many clicks were queued
func (c *Clicker) Played() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.played
}
