// Package state provides thread-safe tracking of a plan's targets as the
// night goes on.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-astrotool/internal/coord"
	"github.com/litescript/ls-astrotool/internal/plan"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventRise EventType = "RISE"
	EventSet  EventType = "SET"
	EventTier EventType = "TIER"
)

// Event represents a target crossing the horizon or changing airmass tier
// between two observations.
type Event struct {
	Type      EventType         `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Target    string            `json:"target"`
	OldTier   coord.AirmassTier `json:"old_tier"`
	NewTier   coord.AirmassTier `json:"new_tier"`
}

// TargetHistory tracks recent altitude and airmass for one target.
type TargetHistory struct {
	Target          string
	AltitudeHistory []TimeSeries
	AirmassHistory  []TimeSeries
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// Manager handles all shared live state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	plan           *plan.Plan
	current        *Observation
	lastUpdate     time.Time
	lastError      error
	updateDuration time.Duration

	// Previous positions for event detection, keyed by target name.
	prev map[string]Position

	targetHistory map[string]*TargetHistory
	maxTargetHist int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxTargetHist   int
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxTargetHist:   120, // two hours at one observation a minute
		MaxEvents:       50,
		RefreshInterval: time.Minute,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxTargetHist:   cfg.MaxTargetHist,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		targetHistory:   make(map[string]*TargetHistory),
		prev:            make(map[string]Position),
	}
}

// SetPlan replaces the plan that Watch observes.
func (m *Manager) SetPlan(p *plan.Plan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plan = p
}

// Plan returns the watched plan.
func (m *Manager) Plan() *plan.Plan {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.plan
}

// Update atomically records a new observation. A nil observation only
// records the error.
func (m *Manager) Update(obs *Observation, took time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastUpdate = time.Now()
	m.lastError = err
	m.updateDuration = took

	if obs == nil {
		return
	}

	m.detectEvents(obs)
	m.current = obs

	m.updateTargetHistory(obs)

	m.prev = make(map[string]Position, len(obs.Positions))
	for _, p := range obs.Positions {
		m.prev[p.Target] = p
	}
}

// detectEvents compares obs with the previous observation. Targets seen
// for the first time produce no event.
func (m *Manager) detectEvents(obs *Observation) {
	for _, p := range obs.Positions {
		prev, ok := m.prev[p.Target]
		if !ok {
			continue
		}
		e := Event{Timestamp: obs.Timestamp, Target: p.Target, OldTier: prev.Tier, NewTier: p.Tier}
		switch {
		case !prev.Up() && p.Up():
			e.Type = EventRise
		case prev.Up() && !p.Up():
			e.Type = EventSet
		case prev.Tier != p.Tier:
			e.Type = EventTier
		default:
			continue
		}
		m.addEvent(e)
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

func (m *Manager) updateTargetHistory(obs *Observation) {
	for _, p := range obs.Positions {
		hist, ok := m.targetHistory[p.Target]
		if !ok {
			hist = &TargetHistory{
				Target:          p.Target,
				AltitudeHistory: make([]TimeSeries, 0, m.maxTargetHist),
				AirmassHistory:  make([]TimeSeries, 0, m.maxTargetHist),
			}
			m.targetHistory[p.Target] = hist
		}

		ts := obs.Timestamp
		hist.AltitudeHistory = append(hist.AltitudeHistory, TimeSeries{Timestamp: ts, Value: p.Altitude})
		if len(hist.AltitudeHistory) > m.maxTargetHist {
			hist.AltitudeHistory = hist.AltitudeHistory[1:]
		}

		if p.Up() {
			hist.AirmassHistory = append(hist.AirmassHistory, TimeSeries{Timestamp: ts, Value: p.Airmass})
			if len(hist.AirmassHistory) > m.maxTargetHist {
				hist.AirmassHistory = hist.AirmassHistory[1:]
			}
		}
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Data           *Observation
	LastUpdate     time.Time
	LastError      error
	UpdateDuration time.Duration
	Events         []Event
	Rates          map[string]float64 // degrees per hour, by target
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rates := make(map[string]float64, len(m.targetHistory))
	for name := range m.targetHistory {
		rates[name] = m.altitudeRate(name)
	}

	return Snapshot{
		Data:           m.current,
		LastUpdate:     m.lastUpdate,
		LastError:      m.lastError,
		UpdateDuration: m.updateDuration,
		Events:         m.getEventsOrdered(),
		Rates:          rates,
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		result[i] = m.events[(m.eventWriteAt+i)%m.maxEvents]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// TargetHistory returns a copy of the history for one target, or nil.
func (m *Manager) TargetHistory(name string) *TargetHistory {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hist, ok := m.targetHistory[name]
	if !ok {
		return nil
	}
	out := &TargetHistory{
		Target:          hist.Target,
		AltitudeHistory: make([]TimeSeries, len(hist.AltitudeHistory)),
		AirmassHistory:  make([]TimeSeries, len(hist.AirmassHistory)),
	}
	copy(out.AltitudeHistory, hist.AltitudeHistory)
	copy(out.AirmassHistory, hist.AirmassHistory)
	return out
}

// AltitudeRate estimates how fast a target is climbing, in degrees per
// hour, from its last two observations. It is 0 without enough history.
func (m *Manager) AltitudeRate(name string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.altitudeRate(name)
}

func (m *Manager) altitudeRate(name string) float64 {
	hist, ok := m.targetHistory[name]
	if !ok || len(hist.AltitudeHistory) < 2 {
		return 0
	}
	n := len(hist.AltitudeHistory)
	p1, p2 := hist.AltitudeHistory[n-2], hist.AltitudeHistory[n-1]

	hours := p2.Timestamp.Sub(p1.Timestamp).Hours()
	if hours <= 0 {
		return 0
	}
	return (p2.Value - p1.Value) / hours
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true once an observation has been recorded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
