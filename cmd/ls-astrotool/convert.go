package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astrotool/internal/angle"
)

func newConvertCmd() *cobra.Command {
	var radians bool
	cmd := &cobra.Command{
		Use:   "convert <angle>",
		Short: "Show an angle as degrees, radians, DMS and HMS",
		Long: `Convert an angle between representations. Accepted forms:
  12h30m45.5s, +45°30'15", -45:30:15, 123.456`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := angle.Parse(args[0])
			if err != nil {
				return err
			}
			if radians && a.Kind() == angle.KindDegrees {
				a = angle.Radians(a.Degrees())
			}
			writeConversion(cmd, a)
			return nil
		},
	}
	cmd.Flags().BoolVar(&radians, "radians", false, "read plain numbers as radians")
	return cmd
}

func writeConversion(cmd *cobra.Command, a angle.Angle) {
	out := cmd.OutOrStdout()
	deg := a.Degrees()
	fmt.Fprintf(out, "input    %s (%s)\n", a, a.Kind())
	fmt.Fprintf(out, "degrees  %.6f\n", deg)
	fmt.Fprintf(out, "radians  %.6f\n", a.Radians())
	fmt.Fprintf(out, "dms      %s\n", angle.FormatDMS(angle.DegToDMS(deg), 2))
	fmt.Fprintf(out, "hms      %s\n", angle.FormatHMS(angle.DegToHMS(deg), 3))
}
