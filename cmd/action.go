package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grovetools/plantview/cli"
	"github.com/grovetools/plantview/errors"
	"github.com/grovetools/plantview/logging"
	"github.com/grovetools/plantview/pkg/dashboard"
	"github.com/grovetools/plantview/pkg/profiling"
	"github.com/spf13/cobra"
)

// actionResult is the output of `action --json`.
type actionResult struct {
	ModuleID string `json:"module_id"`
	Action   string `json:"action"`
	Outcome  string `json:"outcome"`
	Message  string `json:"message,omitempty"`
	Status   string `json:"status"`
}

// NewActionCmd creates the `action` command.
func NewActionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action <module-id> <action>",
		Short: "Send an action to one module",
		Long: `Sends an action to a module as its context menu would. Module ids are
lower-case names with spaces replaced by underscores; see 'plantview status'.
Only the actions the module's category offers are accepted unless --force
is given.

Examples:
  plantview action reactor_1 stop
  plantview action safety_gen_1 start`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return []string{"start", "stop", "low_power_mode"}, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: runAction,
	}
	cmd.Flags().Bool("force", false, "Send the action even if the module's menu does not offer it")
	return cmd
}

func runAction(cmd *cobra.Command, args []string) error {
	moduleID, action := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
	if moduleID == "" || action == "" {
		return errors.InvalidInput("module id and action must not be empty")
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.client.Close()

	span := profiling.Start("fetch plant data")
	data, err := s.client.FetchPlantData(cmd.Context())
	span.Stop()
	if err != nil {
		return err
	}
	ctrl := dashboard.New(s.client, data, dashboard.WithLogger(s.logger))

	blk, ok := ctrl.Block(moduleID)
	if !ok {
		return errors.ModuleNotFound(moduleID)
	}
	if force, _ := cmd.Flags().GetBool("force"); !force && !offers(blk.Category, action) {
		return errors.InvalidInput(fmt.Sprintf("action '%s' is not offered for %s modules (use --force to send it anyway)", action, blk.Category)).
			WithDetail("module", moduleID).
			WithDetail("category", blk.Category)
	}

	span = profiling.Start("dispatch")
	res := ctrl.DispatchTo(cmd.Context(), moduleID, action)
	span.Stop()
	if res.Outcome == dashboard.Failed {
		return res.Err
	}
	after, _ := ctrl.Block(moduleID)

	out := cmd.OutOrStdout()
	if cli.GetOptions(cmd).JSONOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(actionResult{
			ModuleID: moduleID,
			Action:   action,
			Outcome:  res.Outcome.String(),
			Message:  res.Message,
			Status:   after.Status,
		})
	}

	pretty := logging.NewPrettyLogger().WithWriter(out)
	msg := res.Message
	if msg == "" {
		msg = fmt.Sprintf("Sent %s to %s", action, moduleID)
	}
	pretty.Success(msg)
	if after.Status != blk.Status {
		pretty.Transition(blk.Name, blk.Status, after.Status)
	}
	return nil
}

func offers(category, action string) bool {
	items, shown := dashboard.MenuFor(category)
	if !shown {
		return false
	}
	for _, it := range items {
		if it.Action == action {
			return true
		}
	}
	return false
}
