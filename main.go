package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pnassound/fortyhz/internal/app"
	"github.com/pnassound/fortyhz/internal/artifact"
	"github.com/pnassound/fortyhz/internal/audio"
	"github.com/pnassound/fortyhz/internal/state"
	"github.com/pnassound/fortyhz/internal/stimulus"
)

func main() {
	cfg := stimulus.DefaultConfig()

	duration := flag.Duration("duration", 0, "how long to play; 0 plays until interrupted")
	volume := flag.Float64("volume", 1.0, "playback level between 0 and 1")
	tone := flag.Float64("tone", cfg.ToneFrequency, "carrier tone frequency in Hz")
	continuous := flag.Bool("continuous", false, "play an unpulsed reference tone instead of the pulse train")
	wavPath := flag.String("wav", "", "render the stimulus to this wav file instead of playing it")
	wavSeconds := flag.Float64("wav-seconds", 60, "seconds of audio to render with -wav")
	debug := flag.Bool("debug", false, "enable debug logging to ./fortyhz-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via FORTYHZ_STDIO_LOG")
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack
	// traces) to a file so headless runs are diagnosable.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("FORTYHZ_STDIO_LOG")
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	// Local file logger when debug enabled
	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./fortyhz-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	if *volume < 0 || *volume > 1 {
		fmt.Println("volume must be between 0 and 1")
		os.Exit(2)
	}
	if *tone <= 0 || *tone >= float64(cfg.SampleRate)/2 {
		fmt.Printf("tone must be between 0 and %d Hz\n", cfg.SampleRate/2)
		os.Exit(2)
	}
	cfg.ToneFrequency = *tone
	cfg.Continuous = *continuous

	printBanner(cfg, *volume, *duration, *wavPath != "")

	if *wavPath != "" {
		if *wavSeconds <= 0 {
			fmt.Println("wav-seconds must be positive")
			os.Exit(2)
		}
		n := int(*wavSeconds * float64(cfg.SampleRate))
		logger.Infof("main", "rendering %d samples to %s", n, *wavPath)
		if err := artifact.WriteWAV(*wavPath, cfg.Synthesize(n), cfg.SampleRate); err != nil {
			fmt.Println("wav render error:", err)
			os.Exit(1)
		}
		fmt.Println("Wrote", *wavPath)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	engine := audio.NewEngine(cfg.SampleRate)

	a := app.New(store, engine)
	a.Logger = logger

	err := a.Run(ctx, app.Session{Config: cfg, Volume: *volume, Duration: *duration})
	switch {
	case err == nil:
		fmt.Println("Playback complete.")
	case errors.Is(err, context.Canceled):
		fmt.Println()
		fmt.Println("Stopped.")
	default:
		fmt.Println("playback error:", err)
		os.Exit(1)
	}
}

func printBanner(cfg stimulus.Config, volume float64, duration time.Duration, toWAV bool) {
	fmt.Println("========================================")
	fmt.Println("  40Hz Auditory Stimulation Generator")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("Based on PNAS paper specifications:")
	fmt.Printf("  - Tone frequency: %g Hz\n", cfg.ToneFrequency)
	fmt.Printf("  - Tone duration:  %g ms\n", durationMs(cfg.ToneDuration))
	fmt.Printf("  - Stimulus rate:  %g Hz (every %g ms)\n", cfg.PulseRate(), durationMs(cfg.PulseInterval))
	fmt.Printf("  - Sample rate:    %d Hz\n", cfg.SampleRate)
	fmt.Println()
	if cfg.Continuous {
		fmt.Println("Mode: continuous tone (for testing)")
	}
	switch {
	case toWAV:
	case duration > 0:
		fmt.Printf("Playing for %s at volume %.2f\n", duration, volume)
	default:
		fmt.Printf("Playing at volume %.2f, press Ctrl+C to stop\n", volume)
	}
	fmt.Println()
	fmt.Println("WARNING: This is for research/educational purposes only.")
	fmt.Println("         Consult a medical professional before use.")
	fmt.Println("========================================")
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
