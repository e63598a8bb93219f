package stimulus

import (
	"math"
	"sync/atomic"
	"time"
)

// PaperURL is the study the stimulus parameters come from.
const PaperURL = "https://www.pnas.org/doi/10.1073/pnas.2529565123"

// Config holds the stimulus parameters: a pure carrier tone played for
// ToneDuration at the start of every PulseInterval. At the defaults that is
// a 1 kHz tone for 1 ms every 25 ms, i.e. 40 pulses per second.
type Config struct {
	SampleRate    int
	ToneFrequency float64
	ToneDuration  time.Duration
	PulseInterval time.Duration
	Amplitude     float64

	// Continuous disables pulsing and emits an unbroken carrier tone.
	Continuous bool
}

// DefaultConfig returns the parameters from the paper.
func DefaultConfig() Config {
	return Config{
		SampleRate:    44100,
		ToneFrequency: 1000,
		ToneDuration:  time.Millisecond,
		PulseInterval: 25 * time.Millisecond,
		Amplitude:     0.5,
	}
}

// SamplesPerTone is the pulse length in samples (44 at the defaults).
func (c Config) SamplesPerTone() int {
	return int(float64(c.SampleRate) * c.ToneDuration.Seconds())
}

// SamplesPerInterval is the pulse-to-pulse spacing in samples (1102 at the defaults).
func (c Config) SamplesPerInterval() int {
	return int(float64(c.SampleRate) * c.PulseInterval.Seconds())
}

// PulseRate returns pulses per second.
func (c Config) PulseRate() float64 {
	return 1.0 / c.PulseInterval.Seconds()
}

// Sample returns the stimulus value at an absolute sample position.
// The function is pure, so any block of the signal can be produced
// independently and playback position is just an integer.
func (c Config) Sample(pos int) float64 {
	if c.Continuous {
		t := float64(pos) / float64(c.SampleRate)
		return c.Amplitude * math.Sin(2*math.Pi*c.ToneFrequency*t)
	}

	perTone := c.SamplesPerTone()
	perInterval := c.SamplesPerInterval()
	if perTone <= 0 || perInterval <= 0 {
		return 0
	}

	posInInterval := pos % perInterval
	if posInInterval >= perTone {
		return 0 // silence between pulses
	}

	tLocal := float64(posInInterval) / float64(c.SampleRate)
	s := c.Amplitude * math.Sin(2*math.Pi*c.ToneFrequency*tLocal)

	// Short linear fade at both ends of the pulse to avoid clicks.
	fade := perTone / 4
	if fade > 0 {
		if posInInterval < fade {
			s *= float64(posInInterval) / float64(fade)
		} else if posInInterval > perTone-fade {
			s *= float64(perTone-posInInterval) / float64(fade)
		}
	}
	return s
}

// Synthesize renders n samples of the stimulus starting at position 0.
func (c Config) Synthesize(n int) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = c.Sample(i)
	}
	return buf
}

// Streamer adapts the stimulus to the beep streamer contract, duplicating
// the mono signal into both channels. It never ends; wrap it in beep.Take
// for a fixed playing time. The position is atomic so progress can be read
// while the speaker goroutine streams.
type Streamer struct {
	cfg Config
	pos atomic.Int64
}

func NewStreamer(cfg Config) *Streamer {
	return &Streamer{cfg: cfg}
}

func (s *Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	pos := s.pos.Load()
	for i := range samples {
		v := s.cfg.Sample(int(pos) + i)
		samples[i][0] = v
		samples[i][1] = v
	}
	s.pos.Add(int64(len(samples)))
	return len(samples), true
}

func (s *Streamer) Err() error { return nil }

// Pos returns the number of samples streamed so far.
func (s *Streamer) Pos() int64 { return s.pos.Load() }

// Elapsed converts the streamed position to wall time. Whole seconds and
// the sub-second remainder are converted separately so the nanosecond math
// stays in range over multi-day sessions.
func (s *Streamer) Elapsed() time.Duration {
	pos := s.Pos()
	rate := int64(s.cfg.SampleRate)
	whole := time.Duration(pos/rate) * time.Second
	frac := time.Duration(pos%rate) * time.Second / time.Duration(rate)
	return whole + frac
}
