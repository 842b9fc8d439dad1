package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astrotool/internal/coord"
)

func newCoordsCmd() *cobra.Command {
	var (
		target targetFlags
		atFlag string
	)
	cmd := &cobra.Command{
		Use:   "coords [name]",
		Short: "Show where a target stands in the local sky",
		Long:  "Resolve a star or solar-system body (or take --ra/--dec at J2000), advance it to the date, and show hour angle, altitude, azimuth and airmass at the configured site.",
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
			eq, err := target.resolve(a, args, at)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "target      %s\n", eq)
			if eq.Catalog() {
				if eq, err = eq.OnDate(at.DecimalYear()); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "on date     α=%s δ=%s (epoch %.2f)\n", eq.RA, eq.Dec, eq.Epoch)

			lst := at.LST(loc.Longitude)
			hz := eq.ToHorizontal(lst, loc)
			fmt.Fprintf(out, "site        %s\n", loc)
			fmt.Fprintf(out, "instant     %s UT\n", at)
			fmt.Fprintf(out, "lst         %s\n", lst)
			fmt.Fprintf(out, "hour angle  %s\n", eq.HourAngle(lst))
			fmt.Fprintf(out, "altitude    %s\n", hz.Altitude)
			fmt.Fprintf(out, "azimuth     %s\n", hz.Azimuth)
			if x := hz.Airmass(); coord.ValidAirmass(x) {
				fmt.Fprintf(out, "airmass     %.3f (%s)\n", x, coord.TierFor(x))
			} else {
				fmt.Fprintln(out, "airmass     below horizon")
			}
			if star, sep, ok := a.stars.Nearest(eq); ok && !strings.EqualFold(star.Name, eq.Name) {
				fmt.Fprintf(out, "nearest     %s (%.1f°)\n", star.Name, sep)
			}
			return nil
		},
	}
	target.register(cmd)
	cmd.Flags().StringVar(&atFlag, "at", "", "UT instant (default now)")
	return cmd
}
