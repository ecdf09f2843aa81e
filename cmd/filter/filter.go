package filter

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/xiaomi388/manuscripts/pkg/config"
	"github.com/xiaomi388/manuscripts/pkg/manuscript"
	"github.com/xiaomi388/manuscripts/pkg/output"
	"github.com/xiaomi388/manuscripts/pkg/types"
)

var query types.Query

// FilterCmd represents the filter command
var FilterCmd = &cobra.Command{
	Use:   "filter",
	Short: "print entries using the given model, dataset and metric",
	Long: `Print the entries that have a method, dataset and metric with exactly
the given names. Omitted flags match everything.`,
	Args: cobra.NoArgs,
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

		return run(cmd.OutOrStdout(), db, query)
	},
}

func init() {
	FilterCmd.Flags().StringVar(&query.Model, "model", "", "model name")
	FilterCmd.Flags().StringVar(&query.Dataset, "dataset", "", "dataset name")
	FilterCmd.Flags().StringVar(&query.Metric, "metric", "", "metric name")
}

func run(w io.Writer, db *manuscript.DB, q types.Query) error {
	return output.JSON(w, db.Filter(q))
}
