package stimulus

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// TestDefaultConfigDerived verifies the derived sample counts at the paper parameters.
func TestDefaultConfigDerived(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.SamplesPerTone(); got != 44 {
		t.Errorf("Expected 44 samples per tone, got %d", got)
	}
	if got := cfg.SamplesPerInterval(); got != 1102 {
		t.Errorf("Expected 1102 samples per interval, got %d", got)
	}
	if got := cfg.PulseRate(); got != 40 {
		t.Errorf("Expected pulse rate 40, got %v", got)
	}
}

// TestSampleSilenceBetweenPulses verifies the signal is exactly zero outside the pulse window.
func TestSampleSilenceBetweenPulses(t *testing.T) {
	cfg := DefaultConfig()
	perTone := cfg.SamplesPerTone()
	perInterval := cfg.SamplesPerInterval()

	for pos := perTone; pos < perInterval; pos++ {
		if v := cfg.Sample(pos); v != 0 {
			t.Fatalf("Expected silence at position %d, got %v", pos, v)
		}
	}
}

// TestSampleAmplitudeBound verifies no sample exceeds the configured amplitude.
func TestSampleAmplitudeBound(t *testing.T) {
	cfg := DefaultConfig()
	n := 5 * cfg.SamplesPerInterval()

	for pos := 0; pos < n; pos++ {
		if v := math.Abs(cfg.Sample(pos)); v > cfg.Amplitude {
			t.Fatalf("Sample at %d exceeds amplitude: |%v| > %v", pos, v, cfg.Amplitude)
		}
	}
}

// TestSampleFadeIn verifies the envelope starts a pulse from zero.
func TestSampleFadeIn(t *testing.T) {
	cfg := DefaultConfig()

	if v := cfg.Sample(0); v != 0 {
		t.Errorf("Expected pulse to start at zero, got %v", v)
	}
	if v := cfg.Sample(cfg.SamplesPerInterval()); v != 0 {
		t.Errorf("Expected second pulse to start at zero, got %v", v)
	}
}

// TestSamplePulsePeriodicity verifies consecutive intervals carry the same pulse.
func TestSamplePulsePeriodicity(t *testing.T) {
	cfg := DefaultConfig()
	perInterval := cfg.SamplesPerInterval()

	for pos := 0; pos < perInterval; pos += 7 {
		a := cfg.Sample(pos)
		b := cfg.Sample(pos + perInterval)
		if a != b {
			t.Fatalf("Expected Sample(%d) == Sample(%d), got %v vs %v", pos, pos+perInterval, a, b)
		}
	}
}

// TestSamplePulseHasEnergy verifies the pulse window actually carries signal.
func TestSamplePulseHasEnergy(t *testing.T) {
	cfg := DefaultConfig()

	var peak float64
	for pos := 0; pos < cfg.SamplesPerTone(); pos++ {
		if v := math.Abs(cfg.Sample(pos)); v > peak {
			peak = v
		}
	}
	if peak < cfg.Amplitude*0.8 {
		t.Errorf("Expected pulse peak near %v, got %v", cfg.Amplitude, peak)
	}
}

// TestContinuousTone verifies continuous mode produces an unbroken sine.
func TestContinuousTone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Continuous = true

	// 0.1 s covers exactly 100 carrier cycles, so the RMS should be very
	// close to amplitude/sqrt(2).
	n := cfg.SampleRate / 10
	var sum float64
	for pos := 0; pos < n; pos++ {
		v := cfg.Sample(pos)
		sum += v * v
	}
	rms := math.Sqrt(sum / float64(n))
	want := cfg.Amplitude / math.Sqrt2
	if math.Abs(rms-want) > 0.01 {
		t.Errorf("Expected RMS near %v, got %v", want, rms)
	}
}

// TestSynthesizeMatchesSample verifies buffer synthesis agrees with positional sampling.
func TestSynthesizeMatchesSample(t *testing.T) {
	cfg := DefaultConfig()
	buf := cfg.Synthesize(200)

	if len(buf) != 200 {
		t.Fatalf("Expected 200 samples, got %d", len(buf))
	}
	for i, v := range buf {
		if v != cfg.Sample(i) {
			t.Fatalf("Expected buf[%d] == Sample(%d), got %v vs %v", i, i, v, cfg.Sample(i))
		}
	}
}

// TestStreamerStereoAndProgress verifies the streamer duplicates channels and tracks position.
func TestStreamerStereoAndProgress(t *testing.T) {
	cfg := DefaultConfig()
	s := NewStreamer(cfg)

	buf := make([][2]float64, 512)
	n, ok := s.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("Expected full stream (512, true), got (%d, %v)", n, ok)
	}
	for i := range buf {
		if buf[i][0] != buf[i][1] {
			t.Fatalf("Expected identical channels at %d, got %v vs %v", i, buf[i][0], buf[i][1])
		}
		if buf[i][0] != cfg.Sample(i) {
			t.Fatalf("Expected Sample(%d) in stream, got %v", i, buf[i][0])
		}
	}
	if got := s.Pos(); got != 512 {
		t.Errorf("Expected position 512, got %d", got)
	}

	// The next block continues where the first stopped.
	n, ok = s.Stream(buf[:64])
	if n != 64 || !ok {
		t.Fatalf("Expected (64, true), got (%d, %v)", n, ok)
	}
	if buf[0][0] != cfg.Sample(512) {
		t.Errorf("Expected stream to resume at position 512, got %v vs %v", buf[0][0], cfg.Sample(512))
	}
	if s.Err() != nil {
		t.Errorf("Expected nil streamer error, got %v", s.Err())
	}
}

// TestStreamerElapsedLongSession verifies elapsed time stays exact at
// positions deep into a multi-day run, where naive position-times-second
// arithmetic overflows.
func TestStreamerElapsedLongSession(t *testing.T) {
	cfg := DefaultConfig()
	s := NewStreamer(cfg)

	s.pos.Store(int64(cfg.SampleRate) * 3600 * 100)
	if got := s.Elapsed(); got != 100*time.Hour {
		t.Errorf("Expected 100h elapsed, got %s", got)
	}

	s.pos.Store(int64(cfg.SampleRate)*3600*100 + int64(cfg.SampleRate)/2)
	want := 100*time.Hour + 500*time.Millisecond
	if got := s.Elapsed(); got != want {
		t.Errorf("Expected %s elapsed, got %s", want, got)
	}
}

// TestStreamerBounded verifies a Take-wrapped streamer drains after exactly
// the requested number of samples, the shape duration-limited playback
// relies on.
func TestStreamerBounded(t *testing.T) {
	cfg := DefaultConfig()
	bounded := beep.Take(100, NewStreamer(cfg))

	buf := make([][2]float64, 64)
	n, ok := bounded.Stream(buf)
	if n != 64 || !ok {
		t.Fatalf("Expected (64, true), got (%d, %v)", n, ok)
	}
	n, ok = bounded.Stream(buf)
	if n != 36 || !ok {
		t.Fatalf("Expected the remaining (36, true), got (%d, %v)", n, ok)
	}
	n, ok = bounded.Stream(buf)
	if n != 0 || ok {
		t.Errorf("Expected a drained stream (0, false), got (%d, %v)", n, ok)
	}
}
