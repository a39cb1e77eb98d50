package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/notifyd/notifyd/internal/logging"
	"github.com/notifyd/notifyd/internal/notify"
	"github.com/notifyd/notifyd/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the notification daemon",
	Long: `Run the notification daemon: an HTTP listener that accepts notification
posts and delivers them to the desktop, with click-to-focus handling.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer logging.Close()

		router := buildRouter(cfg)
		svc := notify.New(cfg, router)
		defer svc.Close()

		srv := server.New(cfg.Server.Listen, svc)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
