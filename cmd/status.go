package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/plantview/cli"
	"github.com/grovetools/plantview/errors"
	"github.com/grovetools/plantview/pkg/plant"
	"github.com/grovetools/plantview/pkg/profiling"
	"github.com/grovetools/plantview/tui/components/table"
	"github.com/grovetools/plantview/tui/theme"
	"github.com/spf13/cobra"
)

// moduleStatus is one row of `status --json`.
type moduleStatus struct {
	ID       string        `json:"id"`
	Category string        `json:"category"`
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Record   *plant.Record `json:"record"`
}

// NewStatusCmd creates the `status` command.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the current status of every module",
		Long: `Fetches the plant data once and prints a table of modules. The ID column
is what 'plantview action' expects.

Examples:
  plantview status
  plantview status --match 'Reactor*' --match '!Reactor 3'
  plantview status --json`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}
	cmd.Flags().StringSlice("match", nil, "Only list modules matching these patterns (prefix with ! to exclude)")
	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
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

	span := profiling.Start("fetch plant data")
	data, err := s.client.FetchPlantData(cmd.Context())
	span.Stop()
	if err != nil {
		return err
	}

	var rows []moduleStatus
	for _, mod := range matcher.Filter(data) {
		rows = append(rows, moduleStatus{
			ID:       plant.ModuleID(mod.Name),
			Category: mod.Category,
			Name:     mod.Name,
			Status:   plant.NormalizeStatus(mod.Record.Status),
			Record:   mod.Record,
		})
	}
	s.logger.WithField("modules", len(rows)).Debug("Fetched module status")

	out := cmd.OutOrStdout()
	if cli.GetOptions(cmd).JSONOutput {
		if rows == nil {
			rows = []moduleStatus{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(out, theme.DefaultTheme.Muted.Render("No modules."))
		return nil
	}

	t := theme.DefaultTheme
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.ID,
			r.Name,
			r.Category,
			t.StatusStyle(r.Status).Render(theme.StatusIcon(r.Status) + " " + r.Status),
		})
	}
	fmt.Fprintln(out, table.NewBuilder().
		WithTheme(t).
		WithHeaders("ID", "MODULE", "CATEGORY", "STATUS").
		WithRows(cells...).
		String())
	return nil
}
