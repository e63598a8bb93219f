package app

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/pnassound/fortyhz/internal/audio"
	"github.com/pnassound/fortyhz/internal/state"
	"github.com/pnassound/fortyhz/internal/stimulus"
)

// Session describes one playback run.
type Session struct {
	Config   stimulus.Config
	Volume   float64
	Duration time.Duration // 0 means play until cancelled
}

type App struct {
	Store  *state.Store
	Engine *audio.Engine
	Logger Logger

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, engine *audio.Engine) *App {
	return &App{Store: store, Engine: engine, Logger: NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running. The playback callback and signal
// handling both funnel through here so the run loop unwinds exactly once.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// resetExit clears exit state left over from a previous session: a stale
// buffered value is dropped before the exit gate reopens, so it cannot end
// the next run.
func (app *App) resetExit() {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	select {
	case <-app.exitCh:
	default:
	}
	app.exitOnce.Store(false)
}

// Run plays the session until it drains, the context is cancelled, or Exit
// is called. It owns the engine lifecycle and keeps the store updated with
// playback progress once per second.
func (app *App) Run(ctx context.Context, session Session) error {
	app.resetExit()

	app.Store.UpdateStimulus(state.StimulusInfo{
		ToneFrequency: session.Config.ToneFrequency,
		PulseRate:     session.Config.PulseRate(),
		SampleRate:    session.Config.SampleRate,
		Continuous:    session.Config.Continuous,
	})

	if err := app.Engine.Start(); err != nil {
		app.Logger.Errorf("app", "engine start error: %v", err)
		app.Store.SetError(err.Error())
		return err
	}
	defer app.Engine.Stop()

	streamer := stimulus.NewStreamer(session.Config)
	var playable beep.Streamer = streamer
	if session.Duration > 0 {
		n := beep.SampleRate(session.Config.SampleRate).N(session.Duration)
		playable = beep.Take(n, streamer)
	}
	if err := app.Engine.Play(playable, session.Volume, func() { app.Exit(nil) }); err != nil {
		app.Logger.Errorf("app", "play error: %v", err)
		app.Store.SetError(err.Error())
		return err
	}
	app.Store.SetPhase(state.PLAYING)
	app.Store.UpdateSession(state.SessionInfo{Volume: session.Volume})
	app.Logger.Infof("app", "playback started, volume=%.2f duration=%s", session.Volume, session.Duration)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			app.Store.SetPhase(state.CANCELLED)
			app.Logger.Infof("app", "playback cancelled")
			return ctx.Err()
		case err := <-app.exitCh:
			if err != nil {
				app.Store.SetError(err.Error())
				app.Logger.Errorf("app", "playback error: %v", err)
				return err
			}
			app.Store.SetPhase(state.DONE)
			app.Logger.Infof("app", "playback complete")
			return nil
		case <-ticker.C:
			played := streamer.Pos()
			app.Store.UpdateSession(state.SessionInfo{
				Volume:        session.Volume,
				SamplesPlayed: played,
				Elapsed:       streamer.Elapsed(),
			})
			app.Logger.Infof("app", "heartbeat, samples=%d elapsed=%s", played, streamer.Elapsed().Round(time.Millisecond))
		}
	}
}

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

type FileLogger struct{ w io.Writer }

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	writeLog(l.w, "INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	writeLog(l.w, "ERROR", component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}
