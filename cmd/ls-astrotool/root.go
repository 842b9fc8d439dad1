package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/litescript/ls-astrotool/internal/catalog"
	"github.com/litescript/ls-astrotool/internal/config"
	"github.com/litescript/ls-astrotool/internal/ephem"
	"github.com/litescript/ls-astrotool/internal/logging"
	"github.com/litescript/ls-astrotool/internal/site"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ls-astrotool",
		Short:         "Positions, rise/set times and airmass for an observing site",
		Long:          "ls-astrotool converts angles and times, transforms equatorial coordinates to the local horizon, and plans observing nights from a bright-star catalog and Keplerian planet elements.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default "+filepath.Join(config.Dir(), "config.toml")+")")
	flags.String("site", "", "observing site name")
	flags.String("log-level", "", "log level (debug, info, warn, error, off)")
	flags.String("mode", "", "target resolution: auto, bodies or catalog")
	flags.String("elements", "", "TOML file of orbital elements replacing the built-in table")

	root.AddCommand(
		newConvertCmd(),
		newTimeCmd(),
		newCoordsCmd(),
		newRiseSetCmd(),
		newEphemCmd(),
		newPlanCmd(),
		newPolarCmd(),
		newSiteCmd(),
		newVersionCmd(),
	)
	return root
}

// initConfig locates the config file and binds persistent flags and
// LSASTRO_* variables onto config keys.
func initConfig(cmd *cobra.Command) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
		viper.AddConfigPath(config.Dir())
	}

	config.BindEnv()

	for key, flag := range map[string]string{
		"site":          "site",
		"log_level":     "log-level",
		"mode":          "mode",
		"elements_file": "elements",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding --%s: %w", flag, err)
			}
		}
	}

	// It's fine if no config file is found; we use defaults.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// app holds what every command needs once configuration is loaded.
type app struct {
	cfg      config.Config
	log      *logging.Logger
	sites    *site.FileStore
	bodies   *ephem.Ephemeris
	stars    *catalog.Catalog
	resolver *ephem.Resolver
}

func loadApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logging.New(logging.ParseLevel(cfg.LogLevel))

	table := ephem.DefaultTable()
	if cfg.ElementsFile != "" {
		f, err := os.Open(cfg.ElementsFile)
		if err != nil {
			return nil, fmt.Errorf("opening elements: %w", err)
		}
		defer f.Close()
		if table, err = ephem.LoadTable(f); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.ElementsFile, err)
		}
		log.Debug("loaded elements", "path", cfg.ElementsFile, "bodies", len(table.Names()))
	}

	a := &app{
		cfg:    cfg,
		log:    log,
		sites:  site.NewFileStore(cfg.SitesFile),
		bodies: ephem.New(table),
		stars:  catalog.Default(),
	}
	a.resolver = ephem.ForMode(ephem.ParseMode(cfg.Mode), a.bodies, a.stars)
	log.Debug("configured", "site", cfg.Site, "resolver", a.resolver.Name())
	return a, nil
}

// location returns the configured observing site.
func (a *app) location() (site.Location, error) {
	loc, err := site.Lookup(a.sites, a.cfg.Site)
	if err != nil {
		return site.Location{}, fmt.Errorf("site %q: %w", a.cfg.Site, err)
	}
	return loc, nil
}
