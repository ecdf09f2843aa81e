/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package serve

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xiaomi388/manuscripts/pkg/config"
	"github.com/xiaomi388/manuscripts/pkg/manuscript"
	"github.com/xiaomi388/manuscripts/pkg/server"
)

var (
	addr *string
	open *bool
)

// ServeCmd represents the serve command
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve a local form for editing entries",
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

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		s := server.New(db)
		baseURL, err := s.Start(ctx, *addr)
		if err != nil {
			return fmt.Errorf("failed to start form server: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Serving on %s, press Ctrl-C to stop.\n", baseURL)
		if *open {
			if err := openBrowser(baseURL); err != nil {
				logrus.Warnf("failed to open browser: %v", err)
			}
		}

		<-ctx.Done()
		return s.Shutdown(context.Background())
	},
}

func init() {
	addr = ServeCmd.Flags().String("addr", "127.0.0.1:8765", "listen address")
	open = ServeCmd.Flags().Bool("open", false, "open the form in a browser")
}

func openBrowser(url string) error {
	name := "xdg-open"
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	}

	return exec.Command(name, url).Start()
}
