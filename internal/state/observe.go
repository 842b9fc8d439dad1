package state

import (
	"context"
	"errors"
	"time"

	"github.com/litescript/ls-astrotool/internal/astrotime"
	"github.com/litescript/ls-astrotool/internal/coord"
	"github.com/litescript/ls-astrotool/internal/plan"
)

// ErrNothingToObserve is recorded when the watched plan has no targets.
var ErrNothingToObserve = errors.New("no targets to observe")

// Position is where one target stands at an observation.
type Position struct {
	Target   string
	Altitude float64
	Azimuth  float64
	Airmass  float64
	Tier     coord.AirmassTier
}

// Up reports whether the target is above the horizon.
func (p Position) Up() bool { return coord.ValidAirmass(p.Airmass) }

// Observation is every plan target's position at one moment.
type Observation struct {
	Timestamp time.Time
	LST       float64
	Positions []Position
}

// Position returns the named target's position.
func (o *Observation) Position(name string) (Position, bool) {
	for _, p := range o.Positions {
		if p.Target == name {
			return p, true
		}
	}
	return Position{}, false
}

// Observe places each of the plan's targets in the sky at t.
func Observe(p *plan.Plan, t time.Time) (*Observation, error) {
	if p == nil || len(p.Targets) == 0 {
		return nil, ErrNothingToObserve
	}
	at := astrotime.FromTime(t)
	lst := at.LST(p.Site.Longitude)
	obs := &Observation{
		Timestamp: t,
		LST:       lst.Hours(),
		Positions: make([]Position, 0, len(p.Targets)),
	}
	for _, target := range p.Targets {
		hz := target.Coord.ToHorizontal(lst, p.Site)
		x := hz.Airmass()
		obs.Positions = append(obs.Positions, Position{
			Target:   target.Name(),
			Altitude: hz.Altitude.Degrees(),
			Azimuth:  hz.Azimuth.Degrees(),
			Airmass:  x,
			Tier:     coord.TierFor(x),
		})
	}
	return obs, nil
}

// Watch observes the current plan now and then every refresh interval,
// handing each snapshot to send until ctx is done. A plan swapped in with
// SetPlan is picked up on the next observation.
func (m *Manager) Watch(ctx context.Context, now func() time.Time, send func(Snapshot)) {
	observe := func() {
		start := time.Now()
		obs, err := Observe(m.Plan(), now())
		m.Update(obs, time.Since(start), err)
		send(m.Snapshot())
	}

	observe()
	ticker := time.NewTicker(m.RefreshInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			observe()
		}
	}
}
