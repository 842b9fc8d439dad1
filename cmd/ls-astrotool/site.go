package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astrotool/internal/site"
)

func newSiteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Manage saved observing sites",
		Long:  "List, add and remove observing sites. Saved sites live in the sites file (sites_file in config.toml); built-in sites are always available.",
	}
	cmd.AddCommand(newSiteListCmd(), newSiteAddCmd(), newSiteRmCmd())
	return cmd
}

func newSiteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and saved sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			saved, err := a.sites.List()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLATITUDE\tLONGITUDE\tELEVATION\tSOURCE")
			for _, loc := range site.Builtin {
				writeSiteRow(w, loc, "builtin")
			}
			for _, loc := range saved {
				writeSiteRow(w, loc, "saved")
			}
			return w.Flush()
		},
	}
}

func writeSiteRow(w *tabwriter.Writer, loc site.Location, source string) {
	elev := "-"
	if loc.HasElevation() {
		elev = fmt.Sprintf("%.0f m", loc.Elevation)
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", loc.Name, loc.Latitude, loc.Longitude, elev, source)
}

func newSiteAddCmd() *cobra.Command {
	var elevation float64
	cmd := &cobra.Command{
		Use:   "add <name> <latitude> <longitude>",
		Short: "Save a site",
		Long:  `Save a site by name. Latitude and longitude take any angle form, e.g. "+51:28:40" or "-0.0015"; longitude is east-positive.`,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("elevation") {
				elevation = math.NaN()
			}
			loc, err := site.Parse(args[0], args[1], args[2], elevation)
			if err != nil {
				return err
			}
			if err := a.sites.Put(loc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s to %s\n", loc, a.sites.Path())
			return nil
		},
	}
	cmd.Flags().Float64Var(&elevation, "elevation", 0, "elevation in metres (default unknown)")
	return cmd
}

func newSiteRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a saved site",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			if err := a.sites.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}
}
