package state

import (
	"maps"
	"sync"
	"time"
)

type Phase int

const (
	IDLE Phase = iota
	RENDERING
	DONE
	ERROR
)

func (p Phase) String() string {
	switch p {
	case IDLE:
		return "idle"
	case RENDERING:
		return "rendering"
	case DONE:
		return "done"
	case ERROR:
		return "error"
	default:
		return "unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// RenderInfo describes the most recently finished render.
type RenderInfo struct {
	Theme    string        `json:"theme"`
	Language string        `json:"language"`
	Lines    int           `json:"lines"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Bytes    int           `json:"bytes"`
	Duration time.Duration `json:"duration_ns"`
	Err      string        `json:"error,omitempty"`
}

type Counters struct {
	Started   uint64 `json:"started"`
	Succeeded uint64 `json:"succeeded"`
	Failed    uint64 `json:"failed"`
	Recovered uint64 `json:"recovered"`
	InFlight  int    `json:"in_flight"`
}

type State struct {
	Phase    Phase             `json:"phase"`
	Counters Counters          `json:"counters"`
	Last     RenderInfo        `json:"last"`
	ByTheme  map[string]uint64 `json:"by_theme"`
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: IDLE, ByTheme: map[string]uint64{}}}
}

// Snapshot returns a copy that is safe to read after the lock is released.
func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	snap := store.state
	snap.ByTheme = maps.Clone(store.state.ByTheme)
	return snap
}

// Begin records a render that has started.
func (store *Store) Begin() {
	store.mu.Lock()
	store.state.Counters.Started++
	store.state.Counters.InFlight++
	store.state.Phase = RENDERING
	store.mu.Unlock()
}

// Finish records the outcome of a render started with Begin.
func (store *Store) Finish(info RenderInfo, recovered bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	c := &store.state.Counters
	if c.InFlight > 0 {
		c.InFlight--
	}
	if info.Err != "" {
		c.Failed++
		store.state.Phase = ERROR
	} else {
		c.Succeeded++
		store.state.Phase = DONE
		if info.Theme != "" {
			store.state.ByTheme[info.Theme]++
		}
	}
	if recovered {
		c.Recovered++
	}
	if c.InFlight > 0 {
		store.state.Phase = RENDERING
	}
	store.state.Last = info
}
