package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/plantview/config"
	"github.com/grovetools/plantview/logging"
	"github.com/grovetools/plantview/state"
	"github.com/grovetools/plantview/tui"
	"github.com/grovetools/plantview/tui/plantview"
	"github.com/grovetools/plantview/tui/theme"
	"github.com/spf13/cobra"
)

// NewDashboardCmd creates the `dashboard` command.
func NewDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive plant dashboard (default)",
		Long: `Opens the full-screen dashboard. Move the mouse over a block to see its
details and right-click it for actions. The keyboard works too: hjkl to
move, m to open the menu, 1-9 to pick an action, ? for all keys.

When stdout is not a terminal the dashboard falls back to 'watch'.`,
		Args: cobra.NoArgs,
		RunE: runDashboard,
	}
	addDashboardFlags(cmd)
	return cmd
}

func addDashboardFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-tui", false, "Log status changes instead of opening the dashboard")
	cmd.Flags().Bool("no-mouse", false, "Disable hover tooltips and right-click menus")
	cmd.Flags().StringSlice("match", nil, "Only log modules matching these patterns (headless mode)")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if noTUI, _ := cmd.Flags().GetBool("no-tui"); noTUI || !tui.IsInteractive() {
		return runWatch(cmd, args)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.client.Close()
	tui.InitializeTUI()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var focus string
	if saved, err := state.Load(); err == nil && saved[state.KeyServer] == s.cfg.Server.BaseURL {
		focus, _ = saved[state.KeyFocus].(string)
	}

	noMouse, _ := cmd.Flags().GetBool("no-mouse")
	mouse := s.cfg.TUI.MouseEnabled() && !noMouse

	// With no initial dataset the model polls as soon as it starts.
	model := plantview.New(ctx, s.client, nil, plantview.Options{
		ServerURL: s.cfg.Server.BaseURL,
		Interval:  s.cfg.Poll.Interval.D(),
		Keys:      s.cfg.TUI.Keybindings,
		Mouse:     mouse,
		Theme:     theme.DefaultTheme,
		Logger:    s.logger,
		Focus:     focus,
	})

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if mouse {
		progOpts = append(progOpts, tea.WithMouseAllMotion())
	}
	program := tea.NewProgram(model, progOpts...)

	// Structured stderr output would draw over the alt screen.
	defer logging.MuteTerminal()()

	watchConfig(ctx, cmd, s, func(cfg *config.Config, err error) {
		if cfg != nil && noMouse {
			off := false
			cfg.TUI.Mouse = &off
		}
		program.Send(plantview.ConfigReloadedMsg{Config: cfg, Err: err})
	})

	s.logger.WithField("server", s.cfg.Server.BaseURL).Info("Dashboard started")
	_, err = program.Run()
	if err != nil && ctx.Err() == nil {
		return err
	}
	if err := state.Update(map[string]string{
		state.KeyServer: s.cfg.Server.BaseURL,
		state.KeyFocus:  model.Focused(),
	}); err != nil {
		s.logger.WithError(err).Debug("Could not save dashboard state")
	}
	s.logger.Info("Dashboard stopped")
	return nil
}
