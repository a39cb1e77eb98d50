// ABOUTME: Entry point for the notifyd binary.
// ABOUTME: Dispatches to cobra subcommands: serve, send, handle-click, sounds.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
