/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package dump

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xiaomi388/manuscripts/pkg/config"
	"github.com/xiaomi388/manuscripts/pkg/dump"
	"github.com/xiaomi388/manuscripts/pkg/manuscript"
)

var (
	format *string
	out    *string
)

// DumpCmd represents the dump command
var DumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "generate a markdown or bibtex file of all entries",
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

		f := dump.Format(*format)
		return run(cmd.OutOrStdout(), db, f, outputPath(cfg.DumpPath, f, *out))
	},
}

// outputPath picks the report path: the flag when given, otherwise dumpPath
// with a .bib extension for bibtex.
func outputPath(dumpPath string, f dump.Format, flag string) string {
	if flag != "" {
		return flag
	}
	if f == dump.FormatBibTeX {
		return strings.TrimSuffix(dumpPath, filepath.Ext(dumpPath)) + ".bib"
	}

	return dumpPath
}

func run(w io.Writer, db *manuscript.DB, f dump.Format, path string) error {
	if err := dump.Dump(path, db.List(), f); err != nil {
		return err
	}

	fmt.Fprintf(w, "Successfully generated %s file: %q.\n", f, path)
	return nil
}

func init() {
	format = DumpCmd.Flags().String("format", string(dump.FormatMarkdown), "output format (markdown or bibtex)")
	out = DumpCmd.Flags().StringP("output", "o", "", "output path (defaults to dumpPath from config)")
}
