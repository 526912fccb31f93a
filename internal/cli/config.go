package cli

import (
	"fmt"
	"path/filepath"

	"github.com/boilr-dev/relcollect/internal/branding"
	"github.com/boilr-dev/relcollect/internal/config"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long: `Show the effective configuration or validate a config file.

Settings are resolved from flags, ` + branding.EnvPrefix() + `_* environment variables,
the config file, and built-in defaults, in that order.`,
	}
	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigValidateCmd(a))
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.fs, a.configFile)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}

			out := cmd.OutOrStdout()
			if cfg.File != "" {
				fmt.Fprintf(out, "# file: %s\n", cfg.File)
			}
			_, err = out.Write(data)
			return err
		},
	}
}

func newConfigValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a config file against the schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				path = filepath.Join(a.v.GetString(config.KeyProjectRoot), branding.ConfigFile())
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config validation: %s\n", path)

			result, err := config.ValidateFile(a.fs, path)
			if err != nil {
				fmt.Fprintf(out, "  [FAIL] %v\n", err)
				return fmt.Errorf("config validation failed: %w", err)
			}
			if result.Valid {
				fmt.Fprintln(out, "  [ OK ] Valid config file")
				return nil
			}

			fmt.Fprintf(out, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "    - %s\n", issue)
			}
			return fmt.Errorf("config %s has %d validation issue(s)", path, len(result.Issues))
		},
	}
}
