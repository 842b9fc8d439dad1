package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astrotool/internal/astrotime"
	"github.com/litescript/ls-astrotool/internal/ephem"
	"github.com/litescript/ls-astrotool/internal/site"
)

func newEphemCmd() *cobra.Command {
	var atFlag string
	cmd := &cobra.Command{
		Use:   "ephem [body]",
		Short: "Show solar-system body positions from orbital elements",
		Long:  "Show the geocentric position, distance and magnitude of a body, or of every body in the element table when none is named.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			loc, err := a.location()
			if err != nil {
				return err
			}
			at, err := parseInstant(atFlag)
			if err != nil {
				return err
			}

			bodies := a.bodies.Bodies()
			if len(args) == 1 {
				bodies = args[:1]
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s UT @ %s\n", at, loc.Name)
			fmt.Fprintf(out, "%-10s %-14s %-16s %9s %6s %7s\n", "Body", "RA", "Dec", "Dist AU", "V", "Alt")
			for _, name := range bodies {
				row, err := ephemRow(a.bodies, name, at, loc)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, row)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&atFlag, "at", "", "UT instant (default now)")
	return cmd
}

func ephemRow(e *ephem.Ephemeris, name string, at astrotime.Instant, loc site.Location) (string, error) {
	eq, err := e.Position(name, at)
	if err != nil {
		return "", err
	}
	dist, err := e.Distance(name, at)
	if err != nil {
		return "", err
	}
	mag := "-"
	if eq.HasMagnitude() {
		mag = fmt.Sprintf("%.1f", eq.Magnitude)
	}
	alt := "down"
	if h := eq.Altitude(at.LST(loc.Longitude), loc); h >= 0 {
		alt = fmt.Sprintf("%.1f°", h)
	}
	return fmt.Sprintf("%-10s %-14s %-16s %9.4f %6s %7s", eq.Name, eq.RA, eq.Dec, dist, mag, alt), nil
}
