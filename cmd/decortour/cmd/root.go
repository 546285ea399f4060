// Package cmd wires the decortour command tree.
package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/charmingruby/decor/hooks"
	"github.com/charmingruby/decor/internal/config"
	"github.com/charmingruby/decor/internal/tour"
)

type options struct {
	configFile string
	envFiles   []string
	name       string
	guest      string
	text       string
	sumLimit   int
	logLevel   string
	logFormat  string
	metrics    bool
}

// NewRootCommand builds the command tree. Without a subcommand every scenario
// runs in order.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "decortour",
		Short: "A guided tour of function decorators",
		Long: `decortour walks through functions as values, inner functions, closures and
decorators that preserve the identity of the function they wrap.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, "")
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "YAML config file")
	flags.StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	flags.StringVar(&opts.name, "name", "", "name to greet")
	flags.StringVar(&opts.guest, "guest", "", "party guest")
	flags.StringVar(&opts.text, "text", "", "text for the text scenario")
	flags.IntVar(&opts.sumLimit, "limit", 0, "upper bound for the timing scenario")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: console or json")
	flags.BoolVar(&opts.metrics, "metrics", false, "print a metrics summary after the run")

	for _, s := range tour.Scenarios() {
		root.AddCommand(&cobra.Command{
			Use:   s.Name,
			Short: s.Short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd, opts, s.Name)
			},
		})
	}
	root.AddCommand(newListCommand())
	return root
}

func run(cmd *cobra.Command, opts *options, scenario string) error {
	cfg, err := config.Load(config.Options{EnvFiles: opts.envFiles, File: opts.configFile})
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	tourOpts := []tour.Option{tour.WithLogger(logger)}
	var collector *hooks.Collector
	if cfg.Metrics {
		collector, err = hooks.NewCollector("decortour", nil)
		if err != nil {
			return err
		}
		tourOpts = append(tourOpts, tour.WithCollector(collector))
	}

	t := tour.New(cmd.OutOrStdout(), cfg, tourOpts...)
	if scenario == "" {
		err = t.All()
	} else {
		s, ok := tour.Lookup(scenario)
		if !ok {
			return fmt.Errorf("unknown scenario %q", scenario)
		}
		err = s.Run(t)
	}
	if err != nil {
		logger.Error().Err(err).Str("scenario", scenario).Msg("tour failed")
		return err
	}
	logger.Debug().Str("scenario", scenario).Msg("tour finished")

	if collector != nil {
		return renderSummary(cmd.OutOrStdout(), collector)
	}
	return nil
}

// applyFlags lets explicitly set flags win over file and environment values.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Name = opts.name
	}
	if flags.Changed("guest") {
		cfg.Guest = opts.guest
	}
	if flags.Changed("text") {
		cfg.Text = opts.text
	}
	if flags.Changed("limit") {
		cfg.SumLimit = opts.sumLimit
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}
	if flags.Changed("metrics") {
		cfg.Metrics = opts.metrics
	}
}

func newLogger(w io.Writer, cfg config.Config) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	out := w
	if cfg.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Str("app", "decortour").Logger(), nil
}
