// Package cmd holds the plantview command tree.
package cmd

import (
	"os"

	"github.com/grovetools/plantview/cli"
	"github.com/grovetools/plantview/config"
	"github.com/grovetools/plantview/errors"
	"github.com/grovetools/plantview/logging"
	"github.com/grovetools/plantview/pkg/plantapi"
	"github.com/grovetools/plantview/pkg/profiling"
	"github.com/grovetools/plantview/tui/theme"
	"github.com/grovetools/plantview/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const component = "plantview"

// NewRootCmd builds the plantview command tree. Without a subcommand it
// runs the dashboard.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand("plantview", "Terminal dashboard for the power plant server")
	root.Long = `Shows every plant module as a status block. Hover a block for its
details, right-click it for the actions its category allows, and watch the
statuses refresh every few seconds.

Examples:
  # Open the dashboard against a local server
  plantview

  # Point at another server
  plantview --server http://plant.lan:5000

  # One-shot status of the reactors
  plantview status --match 'Reactor*'`
	root.Args = cobra.NoArgs
	addDashboardFlags(root)
	root.RunE = runDashboard

	prof := &profiling.CobraProfiler{}
	prof.AddFlags(root)
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cli.GetOptions(cmd).Verbose {
			_ = os.Setenv("PLANTVIEW_LOG_LEVEL", "debug")
			logging.Reset()
		}
		return prof.PreRun(cmd, args)
	}
	root.PersistentPostRun = prof.PostRun

	info := version.GetInfo()
	cli.SetVersionTemplate(root, info)

	root.AddCommand(
		NewDashboardCmd(),
		NewWatchCmd(),
		NewStatusCmd(),
		NewActionCmd(),
		NewLogsCmd(),
		NewConfigCmd(),
		cli.NewVersionCommand("plantview", info),
	)
	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	c, err := root.ExecuteC()
	if err == nil {
		return 0
	}
	if _, ok := errors.As(err); ok {
		_ = cli.NewErrorHandler(cli.GetOptions(c).Verbose).Handle(err)
	} else {
		cli.PrintError(c, err)
	}
	return 1
}

// session is what the server-facing commands share.
type session struct {
	cfg    *config.Config
	client *plantapi.RemoteClient
	logger *logrus.Entry
}

func newSession(cmd *cobra.Command) (*session, error) {
	defer profiling.Start("load config").Stop()
	cfg, err := cli.LoadConfig(cli.GetOptions(cmd))
	if err != nil {
		return nil, err
	}
	applyAppearance(cfg)
	s := &session{
		cfg:    cfg,
		client: plantapi.NewFromConfig(cfg),
		logger: cli.GetLogger(cmd, component),
	}
	s.logger.WithField("server", cfg.Server.BaseURL).
		WithField("sources", cfg.Sources()).
		Debug("Configuration loaded")
	return s, nil
}

// applyAppearance honours theme and icon settings from an explicitly
// loaded configuration. The environment still wins.
func applyAppearance(cfg *config.Config) {
	if os.Getenv("PLANTVIEW_THEME") == "" && cfg.TUI.Theme != theme.DefaultTheme.Name {
		theme.DefaultTheme = theme.NewThemeWithName(cfg.TUI.Theme)
	}
	if cfg.TUI.Icons == "ascii" || os.Getenv("PLANTVIEW_ICONS") == "ascii" {
		theme.SetASCII(true)
	}
}
