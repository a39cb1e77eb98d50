package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/notifyd/notifyd/internal/activation"
	"github.com/notifyd/notifyd/internal/logging"
)

var handleClickFlags struct {
	pid         int
	callbackURL string
}

// handleClickCmd is invoked by the notification system when the user
// clicks a notification (on macOS via terminal-notifier -execute). It
// runs the full activation sequence in a short-lived process.
var handleClickCmd = &cobra.Command{
	Use:    "handle-click",
	Short:  "Handle a notification click (invoked by the notification system)",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer logging.Close()

		var target activation.ActivationTarget
		if cmd.Flags().Changed("pid") {
			pid := handleClickFlags.pid
			target.ProcessID = &pid
		}
		target.CallbackURL = handleClickFlags.callbackURL

		router := buildRouter(cfg)

		done := make(chan struct{})
		router.OnClick(target, func() { close(done) })
		<-done

		// The activation sequence keeps running on timers after the
		// hand-off; stay alive long enough for the full retry ladder
		// plus the post-relaunch settle.
		grace := settleDelay(cfg)*time.Duration(cfg.Activation.MaxAttempts+1) + 500*time.Millisecond
		time.Sleep(grace)
		return nil
	},
}

func init() {
	handleClickCmd.Flags().IntVar(&handleClickFlags.pid, "pid", 0, "process id of the click target")
	handleClickCmd.Flags().StringVar(&handleClickFlags.callbackURL, "callback-url", "", "callback URL of the click target")
	rootCmd.AddCommand(handleClickCmd)
}
