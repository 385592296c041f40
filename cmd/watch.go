package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grovetools/plantview/cli"
	"github.com/grovetools/plantview/config"
	"github.com/grovetools/plantview/errors"
	"github.com/grovetools/plantview/logging"
	"github.com/grovetools/plantview/pkg/dashboard"
	"github.com/grovetools/plantview/pkg/plant"
	"github.com/spf13/cobra"
)

// NewWatchCmd creates the `watch` command.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the plant server and print module status changes",
		Long: `Polls the plant server like the dashboard does and prints one line per
module status change. The first poll prints every module.

Examples:
  # Follow everything
  plantview watch

  # Only the turbines, polling every second
  plantview watch --match 'Turbine*' --interval 1s`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
	cmd.Flags().StringSlice("match", nil, "Only print modules matching these patterns (prefix with ! to exclude)")
	cmd.Flags().Duration("interval", 0, "Poll interval (default: poll.interval from config)")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.client.Close()

	patterns, _ := cmd.Flags().GetStringSlice("match")
	matcher, err := plant.NewMatcher(patterns)
	if err != nil {
		return errors.InvalidInput(err.Error())
	}

	interval := s.cfg.Poll.Interval.D()
	if d, _ := cmd.Flags().GetDuration("interval"); d > 0 {
		interval = d
	}

	pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
	ctrl := dashboard.New(s.client, nil, dashboard.WithLogger(s.logger))

	failing := false
	report := func(changes []dashboard.Transition, err error) {
		if err != nil {
			if !failing {
				pretty.ErrorPretty("Refresh failed", err)
			}
			failing = true
			return
		}
		if failing {
			pretty.Success("Plant server reachable again")
		}
		failing = false
		for _, ch := range changes {
			if matcher.Match(ch.Name) {
				pretty.Transition(ch.Name, ch.From, ch.To)
			}
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pretty.InfoPretty(fmt.Sprintf("Watching %s every %s", s.cfg.DataURL(), interval))
	changes, _ := ctrl.Poll(ctx)
	_, lastErr := ctrl.LastPoll()
	report(changes, lastErr)

	poller := dashboard.NewPoller(ctrl, interval, report)
	poller.Start(ctx)
	defer poller.Stop()

	watchConfig(ctx, cmd, s, func(cfg *config.Config, err error) {
		if err != nil {
			s.logger.WithError(err).Warn("Ignoring invalid configuration change")
			return
		}
		if d := cfg.Poll.Interval.D(); d > 0 && !cmd.Flags().Changed("interval") {
			poller.SetInterval(d)
		}
	})

	<-ctx.Done()
	return nil
}

// watchConfig calls apply with every configuration reload, loaded the same
// way the command loaded its own, until ctx is done. Failure to watch is
// logged and otherwise ignored.
func watchConfig(ctx context.Context, cmd *cobra.Command, s *session, apply func(*config.Config, error)) {
	opts := cli.GetOptions(cmd)
	sources := s.cfg.Sources()
	if opts.ConfigFile != "" {
		sources = append(sources, opts.ConfigFile)
	}
	cwd, _ := os.Getwd()
	w, err := config.NewWatcher(cwd, sources, 250*time.Millisecond, s.logger, func(_ *config.Config, err error) {
		var cfg *config.Config
		if err == nil {
			cfg, err = cli.LoadConfig(opts)
		}
		apply(cfg, err)
	})
	if err != nil {
		s.logger.WithError(err).Debug("Config watcher unavailable")
		return
	}
	go w.Start(ctx)
}
