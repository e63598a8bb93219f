package state

import (
	"sync"
	"time"
)

type Phase int

const (
	BOOTING Phase = iota
	PLAYING
	DONE
	ERROR
	CANCELLED
)

type StimulusInfo struct {
	ToneFrequency float64
	PulseRate     float64
	SampleRate    int
	Continuous    bool
}

type SessionInfo struct {
	Volume        float64
	SamplesPlayed int64
	Elapsed       time.Duration
	Err           string
}

type State struct {
	Phase    Phase
	Stimulus StimulusInfo
	Session  SessionInfo
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

func (store *Store) UpdateStimulus(stimulus StimulusInfo) {
	store.mu.Lock()
	store.state.Stimulus = stimulus
	store.mu.Unlock()
}

func (store *Store) UpdateSession(session SessionInfo) {
	store.mu.Lock()
	store.state.Session = session
	store.mu.Unlock()
}

func (store *Store) SetError(message string) {
	store.mu.Lock()
	store.state.Phase = ERROR
	store.state.Session.Err = message
	store.mu.Unlock()
}
