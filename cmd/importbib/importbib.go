package importbib

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xiaomi388/manuscripts/pkg/bib"
	"github.com/xiaomi388/manuscripts/pkg/config"
	"github.com/xiaomi388/manuscripts/pkg/manuscript"
)

// ImportBibCmd represents the import-bib command
var ImportBibCmd = &cobra.Command{
	Use:   "import-bib <file.bib>",
	Short: "append every entry of a BibTeX file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve()
		if err != nil {
			return err
		}

		db, err := manuscript.OpenStorage(cfg.Storage)
		if err != nil {
			return err
		}
		defer db.Close()

		return run(cmd.OutOrStdout(), db, args[0])
	},
}

func run(w io.Writer, db *manuscript.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open bibtex file: %w", err)
	}
	defer f.Close()

	n, err := bib.Import(db, f)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}

	logrus.Infof("imported %d entries from %s", n, path)
	fmt.Fprintf(w, "Imported %d entries.\n", n)
	return nil
}
