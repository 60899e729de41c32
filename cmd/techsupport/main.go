package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/nmtechsupport/techsupport/assets"
	"github.com/nmtechsupport/techsupport/internal/game"
	"github.com/nmtechsupport/techsupport/internal/render"
	"github.com/nmtechsupport/techsupport/internal/world"
)

type options struct {
	configPath string
	bombName   string
	seed       int32
	seedSet    bool
	headless   bool
	steps      int
	logLevel   string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "techsupport",
		Short: "Tech Support needy module",
		Long: "Runs the Tech Support needy module against a bomb layout, either in a\n" +
			"window or headless with an autopilot answering every stage.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seedSet = cmd.Flags().Changed("seed")
			return run(cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "techsupport.yaml", "path to the YAML config file")
	f.StringVar(&opts.bombName, "bomb", "default", "embedded bomb layout name")
	f.Int32Var(&opts.seed, "seed", 0, "puzzle seed, overrides the config file")
	f.BoolVar(&opts.headless, "headless", false, "run without a window")
	f.IntVar(&opts.steps, "steps", 600, "countdown steps to run when headless")
	f.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	return cmd
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func loadBomb(name string) (*world.Bomb, error) {
	data, err := assets.Bombs.ReadFile("bombs/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("load bomb %q: %w", name, err)
	}
	layout, err := world.LoadBombLayout(data)
	if err != nil {
		return nil, err
	}
	return world.NewBomb(layout), nil
}

func run(out io.Writer, opts options) error {
	logger, err := newLogger(opts.logLevel)
	if err != nil {
		return err
	}

	cfg, err := game.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.seedSet {
		cfg.Seed = opts.seed
	}

	bomb, err := loadBomb(opts.bombName)
	if err != nil {
		return err
	}

	host := &bombHost{bomb: bomb, logger: logger}
	display := &render.SegmentDisplay{}
	reg := prometheus.NewRegistry()

	session, err := game.NewSession(cfg, host, display, tasks(bomb),
		game.WithLogger(logger),
		game.WithRegisterer(reg),
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	if opts.headless {
		return runHeadless(out, session, host, reg, opts.steps)
	}
	return runWindow(session, bomb, host, display)
}

// runHeadless steps the session and lets the autopilot answer each stage as
// soon as it opens.
func runHeadless(out io.Writer, s *game.Session, host *bombHost, reg *prometheus.Registry, steps int) error {
	s.Start()
	for i := 0; i < steps && s.State() != game.StateHalted; i++ {
		s.Step()
		// One accepted confirm per open stage; the last one releases.
		for {
			if s.Autosolve() != game.ConfirmAccepted {
				break
			}
		}
	}

	fmt.Fprint(out, s.Console())
	fmt.Fprintf(out, "\nfaults: %d  strikes: %d  state: %s\n", len(s.History()), host.strikes, s.State())
	return printMetrics(out, reg)
}

func printMetrics(out io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			fmt.Fprintf(out, "%s%s %g\n", mf.GetName(), labels, m.GetCounter().GetValue())
		}
	}
	return nil
}
