package cli

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/plantview/tui/components/table"
	"github.com/grovetools/plantview/version"
	"github.com/spf13/cobra"
)

// SetVersionTemplate makes `--version` print the build details.
func SetVersionTemplate(cmd *cobra.Command, info version.Info) {
	cmd.Version = info.Version
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n" + info.String() + "\n")
}

// NewVersionCommand creates the `version` command. With --json it prints the
// build info as JSON.
func NewVersionCommand(componentName string, info version.Info) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Print the version of %s", componentName),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if GetOptions(cmd).JSONOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Fprintf(out, "%s %s\n", componentName, info.Version)
			fmt.Fprintln(out, table.KeyValueTable(info.Rows()))
			return nil
		},
	}
}
