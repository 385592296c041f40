package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grovetools/plantview/cli"
	"github.com/grovetools/plantview/logging"
	"github.com/grovetools/plantview/schema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCmd creates the `config` command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate the configuration",
		Long: `Configuration is merged from ~/.config/plantview/plantview.yml, the nearest
plantview.yml (or .toml) above the working directory, and a
plantview.override.yml next to it. --config loads a single file instead.`,
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigSchemaCmd(), newConfigValidateCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with defaults applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			cfg, err := cli.LoadConfig(opts)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.JSONOutput {
				var doc map[string]interface{}
				if err := yaml.Unmarshal(data, &doc); err != nil {
					return err
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			}

			sources := cfg.Sources()
			if len(sources) == 0 {
				fmt.Fprintln(out, "# No configuration files found, showing defaults")
			}
			for _, src := range sources {
				fmt.Fprintf(out, "# Source: %s\n", src)
			}
			fmt.Fprint(out, string(data))
			return nil
		},
	}
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for plantview.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := schema.Generate()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(string(data)))
			return nil
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration against the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cli.GetOptions(cmd))
			if err != nil {
				return err
			}
			v, err := schema.NewValidator()
			if err != nil {
				return err
			}
			if err := v.ValidateConfig(cfg); err != nil {
				return err
			}

			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			pretty.Success("Configuration is valid")
			sources := cfg.Sources()
			if len(sources) == 0 {
				pretty.Field("sources", "(defaults only)")
			} else {
				pretty.Field("sources", strings.Join(sources, ", "))
			}
			return nil
		},
	}
}
