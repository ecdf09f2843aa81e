package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xiaomi388/manuscripts/pkg/config"
)

var force *bool

// ConfigCmd groups config subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "inspect or create the config file",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Resolve()
		if err != nil {
			return err
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(cfg)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "write a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := os.Stat(config.ConfigPath); err == nil && !*force {
			return fmt.Errorf("%s already exists, use --force to overwrite", config.ConfigPath)
		}

		if err := config.Dump(config.ConfigPath, config.Flags.Apply(config.Default())); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %q.\n", config.ConfigPath)
		return nil
	},
}

func init() {
	force = initCmd.Flags().Bool("force", false, "overwrite an existing file")

	ConfigCmd.AddCommand(showCmd)
	ConfigCmd.AddCommand(initCmd)
}
