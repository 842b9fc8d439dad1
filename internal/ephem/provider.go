package ephem

import (
	"errors"
	"strings"

	"github.com/litescript/ls-astrotool/internal/astrotime"
	"github.com/litescript/ls-astrotool/internal/coord"
)

// Provider resolves object names to equatorial coordinates.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// Resolve returns the coordinate of name at the instant. Unknown names
	// must yield an error matching ErrUnknownBody.
	Resolve(name string, at astrotime.Instant) (coord.Equatorial, error)
}

// Mode selects which providers a Resolver consults.
type Mode int

const (
	ModeAuto    Mode = iota // Solar system first, then the star catalog
	ModeBodies              // Solar system bodies only
	ModeCatalog             // Star catalog only
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeBodies:
		return "bodies"
	case ModeCatalog:
		return "catalog"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string.
func ParseMode(s string) Mode {
	switch strings.ToLower(s) {
	case "bodies":
		return ModeBodies
	case "catalog":
		return ModeCatalog
	default:
		return ModeAuto
	}
}

// Resolver tries each provider in order and returns the first hit.
type Resolver struct {
	providers []Provider
}

// NewResolver chains providers in the given order. Nil providers are
// skipped.
func NewResolver(providers ...Provider) *Resolver {
	r := &Resolver{}
	for _, p := range providers {
		if p != nil {
			r.providers = append(r.providers, p)
		}
	}
	return r
}

// ForMode builds a resolver over bodies and stars as selected by mode.
func ForMode(mode Mode, bodies, stars Provider) *Resolver {
	switch mode {
	case ModeBodies:
		return NewResolver(bodies)
	case ModeCatalog:
		return NewResolver(stars)
	default:
		return NewResolver(bodies, stars)
	}
}

// Name implements Provider.
func (r *Resolver) Name() string {
	names := make([]string, len(r.providers))
	for i, p := range r.providers {
		names[i] = p.Name()
	}
	return strings.Join(names, "+")
}

// Resolve implements Provider. Errors other than an unknown name stop the
// search.
func (r *Resolver) Resolve(name string, at astrotime.Instant) (coord.Equatorial, error) {
	for _, p := range r.providers {
		eq, err := p.Resolve(name, at)
		if err == nil {
			return eq, nil
		}
		if !errors.Is(err, ErrUnknownBody) {
			return coord.Equatorial{}, err
		}
	}
	return coord.Equatorial{}, &UnknownBodyError{Name: name}
}
