package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var sendFlags struct {
	title       string
	body        string
	subtitle    string
	pid         int
	callbackURL string
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Post a notification to a running daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		payload := map[string]any{
			"title": sendFlags.title,
			"body":  sendFlags.body,
		}
		if sendFlags.subtitle != "" {
			payload["subtitle"] = sendFlags.subtitle
		}
		switch {
		case cmd.Flags().Changed("pid"):
			if sendFlags.pid > 0 {
				payload["pid"] = sendFlags.pid
			}
		default:
			// The invoking shell is the natural click target.
			payload["pid"] = os.Getppid()
		}
		if sendFlags.callbackURL != "" {
			payload["callback_url"] = sendFlags.callbackURL
		}

		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}

		client := &http.Client{Timeout: 5 * time.Second}
		resp, err := client.Post("http://"+cfg.Server.Listen+"/", "application/json", bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("is the daemon running? %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("daemon rejected notification: %s", resp.Status)
		}
		fmt.Println("sent")
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendFlags.title, "title", "", "notification title (required)")
	sendCmd.Flags().StringVar(&sendFlags.body, "body", "", "notification body (required)")
	sendCmd.Flags().StringVar(&sendFlags.subtitle, "subtitle", "", "notification subtitle")
	sendCmd.Flags().IntVar(&sendFlags.pid, "pid", 0, "process to focus when the notification is clicked (default: parent shell; 0 disables)")
	sendCmd.Flags().StringVar(&sendFlags.callbackURL, "callback-url", "", "URL to open when the notification is clicked")
	_ = sendCmd.MarkFlagRequired("title")
	_ = sendCmd.MarkFlagRequired("body")
	rootCmd.AddCommand(sendCmd)
}
