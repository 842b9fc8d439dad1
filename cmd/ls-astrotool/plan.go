package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/litescript/ls-astrotool/internal/astrotime"
	"github.com/litescript/ls-astrotool/internal/plan"
	"github.com/litescript/ls-astrotool/internal/site"
	"github.com/litescript/ls-astrotool/internal/state"
	"github.com/litescript/ls-astrotool/internal/ui"
)

var errNoTargets = errors.New("no targets: name some or pass --program")

type planOptions struct {
	program  string
	date     string
	jsonPath string
	headless bool
}

func newPlanCmd() *cobra.Command {
	var opts planOptions
	cmd := &cobra.Command{
		Use:   "plan [names...]",
		Short: "Airmass of each target across an observing night",
		Long: `Scan an observing night and show each target's airmass by hour, with
Sun and Moon rise/set markers. Targets come from the arguments and from an
observing program file (one name per line, # comments).

On a terminal the airmass map opens interactively; otherwise, or with
--headless, a text table is printed. --json writes the plan as JSON to a
file, or to stdout with "-".`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			for key, name := range map[string]string{
				"night.start": "start",
				"night.end":   "end",
				"night.step":  "step",
				"twilight":    "twilight",
			} {
				if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
					return fmt.Errorf("binding --%s: %w", name, err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.program, "program", "", "observing program file")
	flags.StringVar(&opts.date, "date", "", "UT date of the night (default today)")
	flags.StringVar(&opts.jsonPath, "json", "", "write the plan as JSON to a file (- for stdout)")
	flags.BoolVar(&opts.headless, "headless", false, "print a text table instead of the TUI")
	flags.Float64("start", 0, "night start, UT hours")
	flags.Float64("end", 0, "night end, UT hours (at or before start means the next day)")
	flags.Float64("step", 0, "sample step in hours")
	flags.Float64("twilight", 0, "Sun altitude bounding the night, degrees")
	return cmd
}

func runPlan(cmd *cobra.Command, opts planOptions, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	loc, err := a.location()
	if err != nil {
		return err
	}

	date, err := parseInstant(opts.date)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// scan re-reads the program file so a rescan picks up edits.
	scan := func(date astrotime.Instant) (*plan.Plan, error) {
		names, err := planTargets(opts.program, args)
		if err != nil {
			return nil, err
		}
		night, err := plan.NewNight(date, a.cfg.Night.Start, a.cfg.Night.End, a.cfg.Night.Step)
		if err != nil {
			return nil, err
		}
		return plan.Scan(ctx, loc, names, a.resolver, night,
			plan.WithTwilight(a.cfg.Twilight),
			plan.WithLogger(a.log),
		)
	}

	p, err := scan(date)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonPath != "" {
		return writePlanJSON(out, p, opts.jsonPath)
	}
	if opts.headless || !isTerminal(out) {
		p.WriteTable(out)
		return nil
	}
	return runPlanTUI(ctx, a, p, loc, scan)
}

// planTargets joins the named targets with those of the program file.
func planTargets(program string, args []string) ([]string, error) {
	names := append([]string(nil), args...)
	if program != "" {
		prog, err := plan.LoadProgram(program)
		if err != nil {
			return nil, err
		}
		names = append(names, prog...)
	}
	if len(names) == 0 {
		return nil, errNoTargets
	}
	return names, nil
}

func writePlanJSON(stdout io.Writer, p *plan.Plan, path string) error {
	if path == "-" {
		if err := p.WriteJSON(stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plan file: %w", err)
	}
	defer f.Close()
	if err := p.WriteJSON(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return f.Close()
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runPlanTUI(ctx context.Context, a *app, p *plan.Plan, loc site.Location, scan ui.Rescanner) error {
	live := state.NewManager(state.DefaultConfig())
	live.SetPlan(p)

	opts := []ui.Option{
		ui.WithStars(a.stars),
		ui.WithRescan(func(date astrotime.Instant) (*plan.Plan, error) {
			next, err := scan(date)
			if err != nil {
				return nil, err
			}
			live.SetPlan(next)
			return next, nil
		}),
	}
	if r, ok := reticleFor(a, p, loc); ok {
		opts = append(opts, ui.WithReticle(r))
	}

	// Keep log lines off the alternate screen.
	a.log.SetOutput(io.Discard)

	program := tea.NewProgram(ui.New(p, opts...), tea.WithAltScreen(), tea.WithContext(ctx))

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go live.Watch(watchCtx, time.Now, func(s state.Snapshot) {
		program.Send(ui.LiveMsg{Snapshot: s})
	})

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// reticleFor places the hemisphere's pole star at the middle of the night.
func reticleFor(a *app, p *plan.Plan, loc site.Location) (plan.Reticle, bool) {
	star, err := a.stars.Lookup(plan.PoleStar(loc))
	if err != nil {
		return plan.Reticle{}, false
	}
	mid := p.Night.Mid()
	if star, err = star.OnDate(mid.DecimalYear()); err != nil {
		return plan.Reticle{}, false
	}
	return plan.PolarScope(star, mid.LST(loc.Longitude)), true
}
