package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/litescript/ls-astrotool/internal/astrotime"
	"github.com/litescript/ls-astrotool/internal/catalog"
	"github.com/litescript/ls-astrotool/internal/coord"
	"github.com/litescript/ls-astrotool/internal/ephem"
	"github.com/litescript/ls-astrotool/internal/plan"
	"github.com/litescript/ls-astrotool/internal/site"
)

var t0 = time.Date(2023, 1, 14, 18, 0, 0, 0, time.UTC)

func pos(name string, alt float64) Position {
	x := coord.Airmass(alt)
	return Position{Target: name, Altitude: alt, Airmass: x, Tier: coord.TierFor(x)}
}

func observation(at time.Time, positions ...Position) *Observation {
	return &Observation{Timestamp: at, Positions: positions}
}

func TestNewManager(t *testing.T) {
	cfg := DefaultConfig()
	m := NewManager(cfg)

	if m.RefreshInterval() != cfg.RefreshInterval {
		t.Errorf("RefreshInterval = %v, want %v", m.RefreshInterval(), cfg.RefreshInterval)
	}
	if m.HasData() {
		t.Error("HasData should be false initially")
	}
	m.SetRefreshInterval(time.Second)
	if m.RefreshInterval() != time.Second {
		t.Errorf("SetRefreshInterval not applied: %v", m.RefreshInterval())
	}
}

func TestManager_Update(t *testing.T) {
	m := NewManager(DefaultConfig())
	obs := observation(t0, pos("Vega", 20))

	m.Update(obs, 5*time.Millisecond, nil)
	if !m.HasData() {
		t.Fatal("HasData should be true after Update")
	}
	snap := m.Snapshot()
	if snap.Data != obs {
		t.Error("Snapshot Data doesn't match")
	}
	if snap.UpdateDuration != 5*time.Millisecond {
		t.Errorf("UpdateDuration = %v", snap.UpdateDuration)
	}
	if len(snap.Events) != 0 {
		t.Errorf("first observation produced events: %v", snap.Events)
	}
}

func TestManager_UpdateWithError(t *testing.T) {
	m := NewManager(DefaultConfig())
	boom := errors.New("boom")
	m.Update(nil, 0, boom)

	snap := m.Snapshot()
	if snap.Data != nil || snap.LastError != boom {
		t.Errorf("snapshot = %+v", snap)
	}
	if m.HasData() {
		t.Error("HasData should stay false after a failed update")
	}
}

func TestDetectEvents(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		want     EventType
	}{
		{"rise", -2, 3, EventRise},
		{"set", 1, -1, EventSet},
		{"tier change", 40, 70, EventTier},
		{"no change", 70, 72, ""},
		{"still down", -10, -5, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewManager(DefaultConfig())
			m.Update(observation(t0, pos("Vega", tc.from)), 0, nil)
			m.Update(observation(t0.Add(time.Minute), pos("Vega", tc.to)), 0, nil)

			events := m.RecentEvents(10)
			if tc.want == "" {
				if len(events) != 0 {
					t.Errorf("events = %v, want none", events)
				}
				return
			}
			if len(events) != 1 || events[0].Type != tc.want || events[0].Target != "Vega" {
				t.Fatalf("events = %v, want one %s", events, tc.want)
			}
			if !events[0].Timestamp.Equal(t0.Add(time.Minute)) {
				t.Errorf("event time = %v", events[0].Timestamp)
			}
		})
	}
}

func TestEventRingBuffer(t *testing.T) {
	m := NewManager(Config{MaxTargetHist: 10, MaxEvents: 3})
	alt := -1.0
	for i := 0; i < 6; i++ {
		m.Update(observation(t0.Add(time.Duration(i)*time.Minute), pos("Deneb", alt)), 0, nil)
		alt = -alt
	}

	events := m.Snapshot().Events
	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(events))
	}
	for i := 1; i < len(events); i++ {
		if !events[i].Timestamp.After(events[i-1].Timestamp) {
			t.Errorf("events out of order: %v", events)
		}
	}
	if last := m.RecentEvents(1); len(last) != 1 || !last[0].Timestamp.Equal(t0.Add(5*time.Minute)) {
		t.Errorf("RecentEvents(1) = %v", last)
	}
}

func TestTargetHistoryAndRate(t *testing.T) {
	m := NewManager(Config{MaxTargetHist: 3, MaxEvents: 10})
	for i, alt := range []float64{-4, 2, 8, 14} {
		m.Update(observation(t0.Add(time.Duration(i)*30*time.Minute), pos("Rigel", alt)), 0, nil)
	}

	hist := m.TargetHistory("Rigel")
	if hist == nil {
		t.Fatal("no history for Rigel")
	}
	if len(hist.AltitudeHistory) != 3 || hist.AltitudeHistory[0].Value != 2 {
		t.Errorf("AltitudeHistory = %v", hist.AltitudeHistory)
	}
	if len(hist.AirmassHistory) != 3 {
		t.Errorf("AirmassHistory has %d points, want 3", len(hist.AirmassHistory))
	}
	if got := m.AltitudeRate("Rigel"); got != 12 {
		t.Errorf("AltitudeRate = %v, want 12", got)
	}
	if got := m.Snapshot().Rates["Rigel"]; got != 12 {
		t.Errorf("Snapshot rate = %v, want 12", got)
	}
	if m.AltitudeRate("Nobody") != 0 || m.TargetHistory("Nobody") != nil {
		t.Error("unknown target should have no history")
	}
}

func TestConcurrentAccess(t *testing.T) {
	m := NewManager(DefaultConfig())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			m.Update(observation(t0.Add(time.Duration(i)*time.Minute), pos("Vega", float64(i))), 0, nil)
		}(i)
		go func() {
			defer wg.Done()
			_ = m.Snapshot()
			_ = m.AltitudeRate("Vega")
		}()
	}
	wg.Wait()
}

func testPlan(t *testing.T) *plan.Plan {
	t.Helper()
	night, err := plan.NewNight(astrotime.New(2023, 1, 14, 0, 0, 0), 18, 7, 1)
	if err != nil {
		t.Fatal(err)
	}
	resolver := ephem.NewResolver(ephem.New(nil), catalog.Default())
	p, err := plan.Scan(context.Background(), site.Greenwich, []string{"Capella", "Sirius"}, resolver, night)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestObserve(t *testing.T) {
	p := testPlan(t)
	obs, err := Observe(p, t0)
	if err != nil {
		t.Fatal(err)
	}

	if len(obs.Positions) != 2 {
		t.Fatalf("got %d positions, want 2", len(obs.Positions))
	}
	capella, ok := obs.Position("Capella")
	if !ok || !capella.Up() {
		t.Errorf("Capella should be up from Greenwich: %+v", capella)
	}
	// Sirius rises near 18:45 UT from Greenwich in mid-January.
	sirius, ok := obs.Position("Sirius")
	if !ok || sirius.Up() {
		t.Errorf("Sirius should still be down at 18:00 UT: %+v", sirius)
	}
	if _, ok := obs.Position("Vulcan"); ok {
		t.Error("unexpected position for Vulcan")
	}

	for _, empty := range []*plan.Plan{nil, {Site: site.Greenwich}} {
		if _, err := Observe(empty, t0); !errors.Is(err, ErrNothingToObserve) {
			t.Errorf("Observe(%v): err = %v, want ErrNothingToObserve", empty, err)
		}
	}
}

func TestWatch(t *testing.T) {
	p := testPlan(t)
	m := NewManager(Config{MaxTargetHist: 10, MaxEvents: 10, RefreshInterval: time.Millisecond})
	m.SetPlan(p)

	clock := t0.Add(-30 * time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var snaps []Snapshot
	m.Watch(ctx, func() time.Time {
		clock = clock.Add(30 * time.Minute)
		return clock
	}, func(s Snapshot) {
		snaps = append(snaps, s)
		if len(snaps) == 4 {
			cancel()
		}
	})

	if len(snaps) < 4 {
		t.Fatalf("got %d snapshots, want at least 4", len(snaps))
	}
	if !m.HasData() {
		t.Error("Watch recorded no data")
	}
	var rose bool
	for _, e := range m.RecentEvents(10) {
		if e.Type == EventRise && e.Target == "Sirius" {
			rose = true
		}
	}
	if !rose {
		t.Errorf("expected Sirius to rise during the watch: %v", m.RecentEvents(10))
	}
	if last := snaps[len(snaps)-1]; last.LastError != nil {
		t.Errorf("LastError = %v", last.LastError)
	}
}

func TestWatchRecordsErrorsAndSwappedPlan(t *testing.T) {
	m := NewManager(Config{MaxTargetHist: 10, MaxEvents: 10, RefreshInterval: time.Millisecond})
	m.SetPlan(&plan.Plan{Site: site.Greenwich})

	p := testPlan(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var snaps []Snapshot
	m.Watch(ctx, func() time.Time { return t0 }, func(s Snapshot) {
		snaps = append(snaps, s)
		switch len(snaps) {
		case 1:
			m.SetPlan(p)
		case 2:
			cancel()
		}
	})

	if len(snaps) < 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}
	if !errors.Is(snaps[0].LastError, ErrNothingToObserve) || snaps[0].Data != nil {
		t.Errorf("first snapshot = %+v, want ErrNothingToObserve", snaps[0])
	}
	if snaps[1].LastError != nil || snaps[1].Data == nil || len(snaps[1].Data.Positions) != 2 {
		t.Errorf("second snapshot = %+v, want both targets", snaps[1])
	}
}
