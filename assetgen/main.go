package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pnassound/fortyhz/internal/app"
	"github.com/pnassound/fortyhz/internal/artifact"
	"github.com/pnassound/fortyhz/internal/render"
	"github.com/pnassound/fortyhz/internal/stimulus"
	"github.com/pnassound/fortyhz/internal/system"
)

func main() {
	outDir := flag.String("out", "Assets", "output directory for generated assets")
	preview := flag.Bool("preview", false, "blit the icon to /dev/fb0 and hold until interrupted")
	debug := flag.Bool("debug", false, "enable debug logging to ./assetgen-debug.log")
	flag.Parse()

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./assetgen-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	cfg := render.DefaultIconConfig()
	stim := stimulus.DefaultConfig()

	icon := render.Icon(cfg)
	iconPath := filepath.Join(*outDir, "AppIcon-1024.png")
	if err := artifact.WritePNG(iconPath, icon); err != nil {
		fmt.Println("icon write error:", err)
		os.Exit(1)
	}
	fmt.Println("Wrote", iconPath)

	svgPath := filepath.Join(*outDir, "AppIcon.svg")
	if err := artifact.WriteSVG(svgPath, render.SVGIcon(cfg)); err != nil {
		fmt.Println("vector icon write error:", err)
		os.Exit(1)
	}
	fmt.Println("Wrote", svgPath)

	card, err := render.ReferenceCard(referenceInfo(stim))
	if err != nil {
		fmt.Println("reference card error:", err)
		os.Exit(1)
	}
	cardPath := filepath.Join(*outDir, "ReferenceCard.png")
	if err := artifact.WritePNG(cardPath, card); err != nil {
		fmt.Println("reference card write error:", err)
		os.Exit(1)
	}
	fmt.Println("Wrote", cardPath)

	mags, binHz := stimulus.MagnitudeSpectrum(stim.Synthesize(stim.SampleRate), stim.SampleRate)
	spectrumPath := filepath.Join(*outDir, "SpectrumCard.png")
	if err := artifact.WritePNG(spectrumPath, render.SpectrumCard(mags, binHz)); err != nil {
		fmt.Println("spectrum card write error:", err)
		os.Exit(1)
	}
	fmt.Println("Wrote", spectrumPath)

	if *preview {
		runPreview(icon, logger)
	}
}

func referenceInfo(stim stimulus.Config) render.CardInfo {
	ms := func(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
	return render.CardInfo{
		Title:    "40Hz Auditory Stimulation",
		Subtitle: "Gamma entrainment stimulus",
		Params: []render.CardParam{
			{Label: "Tone frequency", Value: fmt.Sprintf("%g Hz", stim.ToneFrequency)},
			{Label: "Tone duration", Value: fmt.Sprintf("%g ms", ms(stim.ToneDuration))},
			{Label: "Pulse rate", Value: fmt.Sprintf("%g Hz", stim.PulseRate())},
			{Label: "Pulse interval", Value: fmt.Sprintf("%g ms", ms(stim.PulseInterval))},
			{Label: "Sample rate", Value: fmt.Sprintf("%d Hz", stim.SampleRate)},
			{Label: "Amplitude", Value: fmt.Sprintf("%.2f", stim.Amplitude)},
		},
		Footer: []string{
			"Research and educational use only.",
			"Consult a medical professional before use.",
		},
		QRPayload: stimulus.PaperURL,
		QRCaption: "Scan for the paper",
	}
}

// runPreview holds the icon on the framebuffer until the process is
// interrupted, switching the console out of and back into text mode around
// the blit.
func runPreview(icon *image.RGBA, logger app.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := &render.Preview{Logger: logger}
	if err := p.Open(); err != nil {
		fmt.Println("framebuffer open error:", err)
		os.Exit(1)
	}
	defer p.Close()

	fmt.Println("Previewing on /dev/fb0, press Ctrl+C to exit")

	_ = system.SetGraphicsModeWithLog(logger)
	_ = system.HideCursorWithLog(logger)
	defer func() {
		_ = system.ShowCursorWithLog(logger)
		_ = system.RestoreTextModeWithLog(logger)
	}()

	p.Show(icon)
	<-ctx.Done()
}
