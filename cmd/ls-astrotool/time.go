package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "time [instant]",
		Short: "Show Julian day, sidereal time and day of year",
		Long:  "Show the Julian day, Greenwich and local sidereal time, and day of year for a UT instant (default now). Instants are YYYY-MM-DD[Thh:mm[:ss]]; a bare date means noon UT.",
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
			var s string
			if len(args) == 1 {
				s = args[0]
			}
			at, err := parseInstant(s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "instant  %s UT\n", at)
			fmt.Fprintf(out, "jd       %.6f\n", at.JulianDay())
			fmt.Fprintf(out, "gmst     %s\n", at.GMST())
			fmt.Fprintf(out, "lst      %s (%s)\n", at.LST(loc.Longitude), loc.Name)
			fmt.Fprintf(out, "doy      %d\n", at.DayOfYear())
			return nil
		},
	}
}
