package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/grovetools/jwtview/cli"
	"github.com/grovetools/jwtview/config"
	"github.com/grovetools/jwtview/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the jwtview configuration",
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSchemaCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration jwtview runs with, after defaults are applied.

The file is taken from --config, or searched for upward from the current
directory (jwtview.yml, .jwtview.yml, jwtview.toml) and then in
$XDG_CONFIG_HOME/jwtview. Without a file the defaults are shown.

Examples:
  jwtview config show
  jwtview config show --format toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			source := configSource(cmd)
			if cli.GetOptions(cmd).JSONOutput {
				data, err := json.MarshalIndent(struct {
					Source string         `json:"source,omitempty"`
					Config *config.Config `json:"config"`
				}{source, cfg}, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			var data []byte
			switch config.Format(format) {
			case config.FormatYAML:
				data, err = yaml.Marshal(cfg)
			case config.FormatTOML:
				data, err = toml.Marshal(cfg)
			default:
				return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unknown format %q", format)).
					WithDetail("available", []config.Format{config.FormatYAML, config.FormatTOML})
			}
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			if source != "" {
				fmt.Fprintf(out, "# Source: %s\n", source)
			} else {
				fmt.Fprintln(out, "# Source: defaults")
			}
			fmt.Fprint(out, string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(config.FormatYAML), "Output format: yaml, toml")
	return cmd
}

// configSource names the file the configuration came from, or "" for the
// defaults.
func configSource(cmd *cobra.Command) string {
	if path := cli.GetOptions(cmd).ConfigFile; path != "" {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	path, err := config.FindConfigFile(cwd)
	if err != nil {
		return ""
	}
	return path
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to generate schema")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
