/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package edit

import (
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xiaomi388/manuscripts/pkg/config"
	"github.com/xiaomi388/manuscripts/pkg/manuscript"
	"github.com/xiaomi388/manuscripts/pkg/types"
)

var (
	title        *string
	authors      *string
	affiliations *string
	abstract     *string
	details      *string
)

// EditCmd represents the edit command
var EditCmd = &cobra.Command{
	Use:   "edit <index>",
	Short: "edit the entry at index, replacing only the given fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be an integer: %w", err)
		}

		patch, err := patchFromFlags(cmd.Flags())
		if err != nil {
			return err
		}

		cfg, err := config.Resolve()
		if err != nil {
			return err
		}

		db, err := manuscript.OpenStorage(cfg.Storage)
		if err != nil {
			return err
		}
		defer db.Close()

		return run(cmd.OutOrStdout(), db, index, patch)
	},
}

func init() {
	title = EditCmd.Flags().String("title", "", "new title")
	authors = EditCmd.Flags().String("authors", "", "new comma separated authors")
	affiliations = EditCmd.Flags().String("affiliations", "", "new comma separated affiliations")
	abstract = EditCmd.Flags().String("abstract", "", "new abstract")
	details = EditCmd.Flags().String("details", "", "JSON file with methods, datasets and metrics")
}

// patchFromFlags builds a patch from the flags that were explicitly set, so
// --title "" clears the title while an absent flag leaves it alone.
func patchFromFlags(flags *pflag.FlagSet) (types.RecordPatch, error) {
	var patch types.RecordPatch

	if flags.Changed("title") {
		patch.SetString(types.KeyTitle, *title)
	}
	if flags.Changed("authors") {
		patch.SetStrings(types.KeyAuthors, manuscript.SplitNames(*authors))
	}
	if flags.Changed("affiliations") {
		patch.SetStrings(types.KeyAffiliations, manuscript.SplitNames(*affiliations))
	}
	if flags.Changed("abstract") {
		patch.SetString(types.KeyAbstract, *abstract)
	}
	if flags.Changed("details") {
		fromFile, err := manuscript.LoadDetails(*details)
		if err != nil {
			return types.RecordPatch{}, err
		}
		patch = patch.Merge(fromFile)
	}

	return patch, nil
}

func run(w io.Writer, db *manuscript.DB, index int, patch types.RecordPatch) error {
	if err := db.Edit(index, patch); err != nil {
		return fmt.Errorf("failed to edit entry: %w", err)
	}

	if patch.IsEmpty() {
		logrus.Infof("nothing to change for entry %d", index)
	}
	fmt.Fprintf(w, "Updated entry %d.\n", index)
	return nil
}
