/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package del

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xiaomi388/manuscripts/pkg/config"
	"github.com/xiaomi388/manuscripts/pkg/manuscript"
)

var interactive *bool

// DeleteCmd represents the delete command
var DeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "delete the entry at index; later entries shift down",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be an integer: %w", err)
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

		if *interactive {
			ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), db, index)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}

		return run(cmd.OutOrStdout(), db, index)
	},
}

func init() {
	interactive = DeleteCmd.Flags().BoolP("interactive", "i", false, "ask before deleting")
}

func confirm(r io.Reader, w io.Writer, db *manuscript.DB, index int) (bool, error) {
	record, err := db.Get(index)
	if err != nil {
		return false, err
	}

	fmt.Fprintf(w, "Delete entry %d %q? [y/N]: ", index, record.Title())
	text, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(text))
	return answer == "y" || answer == "yes", nil
}

func run(w io.Writer, db *manuscript.DB, index int) error {
	record, err := db.Get(index)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	if err := db.Delete(index); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	logrus.Infof("deleted %q", record.Title())
	fmt.Fprintf(w, "Deleted entry %d.\n", index)
	return nil
}
