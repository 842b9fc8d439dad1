package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astrotool/internal/angle"
	"github.com/litescript/ls-astrotool/internal/astrotime"
	"github.com/litescript/ls-astrotool/internal/coord"
)

var errNoTarget = errors.New("give a target name or both --ra and --dec")

// parseInstant reads s, defaulting to now.
func parseInstant(s string) (astrotime.Instant, error) {
	if s == "" {
		return astrotime.Now(), nil
	}
	return astrotime.Parse(s)
}

// targetFlags resolves a coordinate from --ra/--dec or a catalog name.
type targetFlags struct {
	ra  string
	dec string
}

func (f *targetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ra, "ra", "", "right ascension, e.g. 05h16m41.36s")
	cmd.Flags().StringVar(&f.dec, "dec", "", "declination, e.g. +45°59'52.8\"")
}

// resolve returns the target named by args[0], or the --ra/--dec position
// as a J2000 coordinate.
func (f *targetFlags) resolve(a *app, args []string, at astrotime.Instant) (coord.Equatorial, error) {
	if f.ra != "" || f.dec != "" {
		if f.ra == "" || f.dec == "" {
			return coord.Equatorial{}, errNoTarget
		}
		ra, err := angle.ParseHMS(f.ra)
		if err != nil {
			return coord.Equatorial{}, fmt.Errorf("--ra: %w", err)
		}
		dec, err := angle.ParseDMS(f.dec)
		if err != nil {
			return coord.Equatorial{}, fmt.Errorf("--dec: %w", err)
		}
		name := "target"
		if len(args) > 0 {
			name = args[0]
		}
		return coord.NewEquatorial(name, ra, dec, math.NaN()), nil
	}
	if len(args) == 0 {
		return coord.Equatorial{}, errNoTarget
	}
	return a.resolver.Resolve(args[0], at)
}
