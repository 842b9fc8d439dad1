package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astrotool/internal/coord"
)

// namedThresholds are the altitudes --threshold accepts by name.
var namedThresholds = map[string]float64{
	"horizon":      coord.Horizon,
	"civil":        coord.CivilTwilight,
	"nautical":     coord.NauticalTwilight,
	"astronomical": coord.AstronomicalTwilight,
}

// parseThreshold reads an altitude in degrees or one of the named twilights.
func parseThreshold(s string) (float64, error) {
	if h0, ok := namedThresholds[strings.ToLower(strings.TrimSpace(s))]; ok {
		return h0, nil
	}
	h0, err := strconv.ParseFloat(s, 64)
	if err != nil || h0 < -90 || h0 > 90 {
		return 0, fmt.Errorf("threshold %q: want degrees in [-90,90] or horizon, civil, nautical, astronomical", s)
	}
	return h0, nil
}

func newRiseSetCmd() *cobra.Command {
	var (
		target    targetFlags
		dateFlag  string
		threshold string
	)
	cmd := &cobra.Command{
		Use:   "riseset [name]",
		Short: "Show rise, transit and set times for a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h0, err := parseThreshold(threshold)
			if err != nil {
				return err
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			loc, err := a.location()
			if err != nil {
				return err
			}
			date, err := parseInstant(dateFlag)
			if err != nil {
				return err
			}
			eq, err := target.resolve(a, args, date)
			if err != nil {
				return err
			}
			if eq.Catalog() {
				if eq, err = eq.OnDate(date.DecimalYear()); err != nil {
					return err
				}
			}

			w := eq.Window(loc, date.Midnight(), h0)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s at %s on %s, threshold %.2f°\n", eq.Name, loc.Name, date.Midnight().String()[:10], h0)
			switch {
			case w.AlwaysAbove:
				fmt.Fprintln(out, "  always above threshold")
			case w.NeverRises:
				fmt.Fprintln(out, "  never rises above threshold")
			default:
				fmt.Fprintf(out, "  rise     %s UT\n", w.Rise)
			}
			fmt.Fprintf(out, "  transit  %s UT (altitude %.1f°)\n", w.Transit, w.MaxAltitude)
			if !w.AlwaysAbove && !w.NeverRises {
				fmt.Fprintf(out, "  set      %s UT\n", w.Set)
			}
			return nil
		},
	}
	target.register(cmd)
	cmd.Flags().StringVar(&dateFlag, "date", "", "UT date (default today)")
	cmd.Flags().StringVar(&threshold, "threshold", "horizon", "altitude in degrees or horizon, civil, nautical, astronomical")
	return cmd
}
