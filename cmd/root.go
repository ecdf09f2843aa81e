/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xiaomi388/manuscripts/cmd/add"
	configcmd "github.com/xiaomi388/manuscripts/cmd/config"
	"github.com/xiaomi388/manuscripts/cmd/del"
	"github.com/xiaomi388/manuscripts/cmd/dump"
	"github.com/xiaomi388/manuscripts/cmd/edit"
	"github.com/xiaomi388/manuscripts/cmd/fields"
	"github.com/xiaomi388/manuscripts/cmd/filter"
	"github.com/xiaomi388/manuscripts/cmd/importbib"
	"github.com/xiaomi388/manuscripts/cmd/list"
	"github.com/xiaomi388/manuscripts/cmd/migrate"
	"github.com/xiaomi388/manuscripts/cmd/prompt"
	"github.com/xiaomi388/manuscripts/cmd/serve"
	"github.com/xiaomi388/manuscripts/pkg/config"
	"github.com/xiaomi388/manuscripts/pkg/persistence"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "manuscripts",
	Short: "Track manuscripts and their models, datasets and metrics",
	Long: `manuscripts keeps bibliographic and experimental-result records in a
single JSON file (or a SQLite database) and lets you add, edit, delete,
list and filter them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Resolve()
		if err != nil {
			return err
		}

		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&config.ConfigPath, "config", persistence.DefaultConfigPath, "config file")
	rootCmd.PersistentFlags().StringVar(&config.Flags.Backend, "backend", "", "storage backend (json or sqlite)")
	rootCmd.PersistentFlags().StringVar(&config.Flags.Path, "db", "", "storage file path")
	rootCmd.PersistentFlags().StringVar(&config.Flags.LogLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(prompt.PromptCmd)
	rootCmd.AddCommand(add.AddCmd)
	rootCmd.AddCommand(edit.EditCmd)
	rootCmd.AddCommand(del.DeleteCmd)
	rootCmd.AddCommand(list.ListCmd)
	rootCmd.AddCommand(fields.FieldsCmd)
	rootCmd.AddCommand(filter.FilterCmd)
	rootCmd.AddCommand(dump.DumpCmd)
	rootCmd.AddCommand(importbib.ImportBibCmd)
	rootCmd.AddCommand(migrate.MigrateCmd)
	rootCmd.AddCommand(serve.ServeCmd)
	rootCmd.AddCommand(configcmd.ConfigCmd)
}
