/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package add

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xiaomi388/manuscripts/pkg/config"
	"github.com/xiaomi388/manuscripts/pkg/manuscript"
	"github.com/xiaomi388/manuscripts/pkg/types"
)

type options struct {
	title        string
	authors      string
	affiliations string
	abstract     string
	details      string
}

var opts options

// AddCmd represents the add command
var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "add a manuscript entry",
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

		return run(cmd.OutOrStdout(), db, opts)
	},
}

func init() {
	AddCmd.Flags().StringVar(&opts.title, "title", "", "manuscript title")
	_ = AddCmd.MarkFlagRequired("title")
	AddCmd.Flags().StringVar(&opts.authors, "authors", "", "comma separated authors")
	AddCmd.Flags().StringVar(&opts.affiliations, "affiliations", "", "comma separated affiliations")
	AddCmd.Flags().StringVar(&opts.abstract, "abstract", "", "abstract text")
	AddCmd.Flags().StringVar(&opts.details, "details", "", "JSON file with methods, datasets and metrics")
}

func run(w io.Writer, db *manuscript.DB, o options) error {
	record := types.NewRecord(
		o.title,
		manuscript.SplitNames(o.authors),
		manuscript.SplitNames(o.affiliations),
		o.abstract,
	)

	if o.details != "" {
		patch, err := manuscript.LoadDetails(o.details)
		if err != nil {
			return err
		}
		record = patch.Apply(record)
	}

	if err := db.Add(record); err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}

	logrus.Infof("added %q", record.Title())
	fmt.Fprintf(w, "Added entry %d.\n", db.Len()-1)
	return nil
}
