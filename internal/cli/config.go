package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/dojiwatch/config"
)

func newConfigCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration files",
		Long: `Manage dojiwatch configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  dojiwatch config init -o dojiwatch.yaml
  dojiwatch config validate -f dojiwatch.yaml`,
	}

	cmd.AddCommand(
		newConfigInitCmd(),
		newConfigValidateCmd(rc),
	)
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Default().SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created default configuration: %s\n", output)
			fmt.Fprintf(cmd.OutOrStdout(), "\nEdit the file and run with:\n  dojiwatch --config %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "dojiwatch.yaml", "output config file path")
	return cmd
}

func newConfigValidateCmd(rc *RootConfig) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = rc.ConfigPath
			}
			if path == "" {
				return fmt.Errorf("missing --file (or --config)")
			}
			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Configuration valid: %s\n", path)
			fmt.Fprintf(out, "  Symbols: %d\n", len(cfg.Symbols))
			fmt.Fprintf(out, "  Window:  %s-%s %s\n", cfg.Exchange.WindowStart, cfg.Exchange.WindowEnd, cfg.Exchange.Location)
			fmt.Fprintf(out, "  Pattern: body <= %g of range, range < %g%%\n", cfg.Pattern.BodyThreshold, cfg.Pattern.MaxRangePct)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "path to config file")
	return cmd
}
