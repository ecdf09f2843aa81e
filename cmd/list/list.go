/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package list

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xiaomi388/manuscripts/pkg/config"
	"github.com/xiaomi388/manuscripts/pkg/manuscript"
	"github.com/xiaomi388/manuscripts/pkg/output"
)

var titles *bool

// ListCmd represents the list command
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "print all entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Resolve()
		if err != nil {
			return err
		}

		db, err := manuscript.OpenStorage(cfg.Storage)
		if err != nil {
			return err
		}
		defer db.Close()

		return run(cmd.OutOrStdout(), db, *titles)
	},
}

func init() {
	titles = ListCmd.Flags().Bool("titles", false, "print only index and title")
}

func run(w io.Writer, db *manuscript.DB, titlesOnly bool) error {
	records := db.List()
	if !titlesOnly {
		return output.JSON(w, records)
	}

	for i, record := range records {
		title := record.Title()
		if title == "" {
			title = "<no title>"
		}
		fmt.Fprintf(w, "%d\t%s\n", i, title)
	}

	return nil
}
