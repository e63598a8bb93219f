package audio

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// ErrNotStarted is returned when playback is requested before Start.
var ErrNotStarted = errors.New("audio: engine not started")

// Engine owns the speaker and plays one stimulus stream at a time through a
// volume stage.
type Engine struct {
	mu          sync.Mutex
	sampleRate  beep.SampleRate
	volume      *effects.Volume
	initialized bool
}

// NewEngine creates an engine for the given sample rate.
func NewEngine(sampleRate int) *Engine {
	return &Engine{sampleRate: beep.SampleRate(sampleRate)}
}

// Start initializes the speaker with a 100ms buffer. Calling it again is a
// no-op.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.initialized {
		return nil
	}
	if err := speaker.Init(e.sampleRate, e.sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	e.initialized = true
	return nil
}

// Play routes s through a volume stage at level and starts playback,
// replacing whatever was playing before. done runs on the speaker goroutine
// once s drains; an endless streamer plays until Stop.
func (e *Engine) Play(s beep.Streamer, level float64, done func()) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return ErrNotStarted
	}

	vol := NewVolume(s, level)

	// speaker.Clear takes the speaker lock itself.
	speaker.Clear()

	e.volume = vol
	if done != nil {
		speaker.Play(beep.Seq(vol, beep.Callback(done)))
	} else {
		speaker.Play(vol)
	}
	return nil
}

// SetVolume changes the playback level of the current stream.
func (e *Engine) SetVolume(level float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.volume == nil {
		return
	}
	speaker.Lock()
	if level <= 0 {
		e.volume.Silent = true
		e.volume.Volume = 0
	} else {
		e.volume.Silent = false
		e.volume.Volume = math.Log2(level)
	}
	speaker.Unlock()
}

// Stop silences and detaches the current stream. The speaker itself stays
// open; beep provides no way to close it.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return
	}
	speaker.Clear()
	e.volume = nil
}

// NewVolume wraps s in a base-2 volume stage. Zero or negative levels mute
// the stream rather than passing -Inf to the effect.
func NewVolume(s beep.Streamer, level float64) *effects.Volume {
	if level <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(level), Silent: false}
}
