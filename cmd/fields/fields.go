package fields

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/xiaomi388/manuscripts/pkg/config"
	"github.com/xiaomi388/manuscripts/pkg/manuscript"
	"github.com/xiaomi388/manuscripts/pkg/output"
)

// FieldsCmd represents the fields command
var FieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "list the distinct models, datasets and metrics",
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

		return run(cmd.OutOrStdout(), db)
	},
}

func run(w io.Writer, db *manuscript.DB) error {
	return output.JSON(w, db.ListFields())
}
