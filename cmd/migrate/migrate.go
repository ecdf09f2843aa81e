package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xiaomi388/manuscripts/pkg/persistence"
)

var (
	fromBackend string
	toBackend   string
	sourcePath  string
	destPath    string
)

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "migrate entries between storage backends",
	Long:  `Migrate all entries from one storage backend to another (e.g. json to sqlite).`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := Migrate(fromBackend, sourcePath, toBackend, destPath)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Successfully migrated %d entries from %s to %s.\n", n, fromBackend, toBackend)
		fmt.Fprintln(cmd.OutOrStdout(), "Update your config.yaml to use the new backend:")
		fmt.Fprintln(cmd.OutOrStdout(), "  storage:")
		fmt.Fprintf(cmd.OutOrStdout(), "    backend: %s\n", toBackend)
		return nil
	},
}

func init() {
	MigrateCmd.Flags().StringVar(&fromBackend, "from", "json", "source backend (json or sqlite)")
	MigrateCmd.Flags().StringVar(&toBackend, "to", "sqlite", "destination backend (json or sqlite)")
	MigrateCmd.Flags().StringVar(&sourcePath, "source", "", "source file path (defaults based on backend)")
	MigrateCmd.Flags().StringVar(&destPath, "dest", "", "destination file path (defaults based on backend)")
}

// Migrate copies the whole record list and returns how many were copied.
func Migrate(from, source, to, dest string) (int, error) {
	if from == to && source == dest {
		return 0, fmt.Errorf("source and destination are the same: %s", from)
	}

	src, err := persistence.NewStoreWithBackend(from, source)
	if err != nil {
		return 0, fmt.Errorf("failed to open source store: %w", err)
	}
	defer src.Close()

	dst, err := persistence.NewStoreWithBackend(to, dest)
	if err != nil {
		return 0, fmt.Errorf("failed to open destination store: %w", err)
	}
	defer dst.Close()

	records, err := src.LoadRecords()
	if err != nil {
		return 0, fmt.Errorf("failed to load from source: %w", err)
	}

	if err := dst.DumpRecords(records); err != nil {
		return 0, fmt.Errorf("failed to write to destination: %w", err)
	}

	return len(records), nil
}
