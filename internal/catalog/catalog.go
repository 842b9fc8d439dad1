// Package catalog resolves bright-star names to J2000 equatorial
// coordinates.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/litescript/ls-astrotool/internal/angle"
	"github.com/litescript/ls-astrotool/internal/astrotime"
	"github.com/litescript/ls-astrotool/internal/coord"
	"github.com/litescript/ls-astrotool/internal/ephem"
)

// entry is one catalog line: sexagesimal J2000 position and V magnitude.
type entry struct {
	name string
	ra   string
	dec  string
	mag  float64
}

// Catalog is an immutable star list keyed by case-insensitive name.
type Catalog struct {
	stars  []coord.Equatorial
	byName map[string]int
}

// New builds a catalog from stars. Duplicate names keep the first entry.
func New(stars []coord.Equatorial) *Catalog {
	c := &Catalog{byName: make(map[string]int, len(stars))}
	for _, s := range stars {
		key := strings.ToLower(strings.TrimSpace(s.Name))
		if _, dup := c.byName[key]; dup || key == "" {
			continue
		}
		c.byName[key] = len(c.stars)
		c.stars = append(c.stars, s)
	}
	return c
}

// Default returns the built-in bright-star catalog.
func Default() *Catalog {
	return defaultCatalog
}

var defaultCatalog = func() *Catalog {
	stars := make([]coord.Equatorial, 0, len(brightStars))
	for _, e := range brightStars {
		ra, err := angle.ParseHMS(e.ra)
		if err != nil {
			panic(fmt.Sprintf("catalog: %s: %v", e.name, err))
		}
		dec, err := angle.ParseDMS(e.dec)
		if err != nil {
			panic(fmt.Sprintf("catalog: %s: %v", e.name, err))
		}
		stars = append(stars, coord.NewEquatorial(e.name, ra, dec, e.mag))
	}
	return New(stars)
}()

// Name implements ephem.Provider.
func (c *Catalog) Name() string { return "catalog" }

// Lookup returns the J2000 coordinate of a star.
func (c *Catalog) Lookup(name string) (coord.Equatorial, error) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return coord.Equatorial{}, &ephem.UnknownBodyError{Name: name}
	}
	return c.stars[i], nil
}

// Resolve implements ephem.Provider. Catalog positions are J2000 whatever
// the instant; callers advance them with OnDate.
func (c *Catalog) Resolve(name string, _ astrotime.Instant) (coord.Equatorial, error) {
	return c.Lookup(name)
}

// Len returns the number of stars.
func (c *Catalog) Len() int { return len(c.stars) }

// Names returns all star names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.stars))
	for i, s := range c.stars {
		names[i] = s.Name
	}
	sort.Strings(names)
	return names
}

// Brighter returns stars with magnitude at or below limit, brightest first.
func (c *Catalog) Brighter(limit float64) []coord.Equatorial {
	var out []coord.Equatorial
	for _, s := range c.stars {
		if s.Magnitude <= limit {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Magnitude < out[j].Magnitude
	})
	return out
}

// Nearest returns the catalog star closest to eq and its separation in
// degrees.
func (c *Catalog) Nearest(eq coord.Equatorial) (coord.Equatorial, float64, bool) {
	if len(c.stars) == 0 {
		return coord.Equatorial{}, 0, false
	}
	best, bestSep := 0, eq.Separation(c.stars[0])
	for i := 1; i < len(c.stars); i++ {
		if sep := eq.Separation(c.stars[i]); sep < bestSep {
			best, bestSep = i, sep
		}
	}
	return c.stars[best], bestSep, true
}
