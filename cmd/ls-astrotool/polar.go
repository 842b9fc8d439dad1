package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astrotool/internal/plan"
)

func newPolarCmd() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "polar",
		Short: "Pole star position for a polar-scope reticle",
		Long:  "Show where the hemisphere's pole star (Polaris or Sigma Octantis) sits in a polar-scope reticle at an instant (default now): its hour angle, clock position and distance from the celestial pole.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			loc, err := a.location()
			if err != nil {
				return err
			}
			when, err := parseInstant(at)
			if err != nil {
				return err
			}

			star, err := a.stars.Lookup(plan.PoleStar(loc))
			if err != nil {
				return err
			}
			if star, err = star.OnDate(when.DecimalYear()); err != nil {
				return err
			}
			lst := when.LST(loc.Longitude)
			r := plan.PolarScope(star, lst)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "site        %s\n", loc)
			fmt.Fprintf(out, "instant     %s UT\n", when)
			fmt.Fprintf(out, "lst         %s\n", lst)
			fmt.Fprintf(out, "star        %s (%s, %s)\n", r.Star, star.RA, star.Dec)
			fmt.Fprintf(out, "hour angle  %s\n", r.HourAngle)
			fmt.Fprintf(out, "clock       %.1f o'clock\n", r.Clock)
			fmt.Fprintf(out, "distance    %.1f′ from the pole\n", r.Distance)
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "UT instant (default now)")
	return cmd
}
