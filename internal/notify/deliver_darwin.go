//go:build darwin

// ABOUTME: macOS click-capable delivery via terminal-notifier.
// ABOUTME: Clicks re-invoke this binary's handle-click subcommand through -execute.
package notify

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/notifyd/notifyd/internal/activation"
	"github.com/notifyd/notifyd/internal/logging"
)

type macDeliverer struct{}

// newPlatformDeliverer ignores the router on macOS: the click arrives in
// a fresh process via the handle-click subcommand, not in this one.
func newPlatformDeliverer(_ ClickRouter) deliverer {
	return &macDeliverer{}
}

func (d *macDeliverer) deliver(n Notification, appIcon string) error {
	path, err := exec.LookPath("terminal-notifier")
	if err != nil {
		return fmt.Errorf("terminal-notifier not found: %w", err)
	}

	args := buildNotifierArgs(n, appIcon)
	output, err := exec.Command(path, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("terminal-notifier error: %w, output: %s", err, string(output))
	}
	logging.Debug("terminal-notifier executed: title=%s", n.Title)
	return nil
}

func (d *macDeliverer) close() error { return nil }

// buildNotifierArgs constructs command-line arguments for terminal-notifier.
func buildNotifierArgs(n Notification, appIcon string) []string {
	args := []string{
		"-title", n.Title,
		"-message", n.Body,
	}
	if n.Subtitle != "" {
		args = append(args, "-subtitle", n.Subtitle)
	}
	if appIcon != "" {
		args = append(args, "-appIcon", appIcon)
	}
	if script := buildClickCommand(n.Target); script != "" {
		args = append(args, "-execute", script)
	}

	// Unique group ID prevents notification stacking issues.
	args = append(args, "-group", fmt.Sprintf("notifyd-%d", time.Now().UnixNano()))
	// Sound is managed by the audio player, never by terminal-notifier.
	args = append(args, "-nosound")

	return args
}

// buildClickCommand returns the shell command terminal-notifier runs when
// the notification is clicked: this binary's handle-click subcommand with
// the activation target encoded as flags. Returns "" when the target is
// empty or the executable path cannot be determined.
func buildClickCommand(target activation.ActivationTarget) string {
	if target.ProcessID == nil && !target.HasCallbackURL() {
		return ""
	}
	exe, err := os.Executable()
	if err != nil {
		logging.Warn("Cannot determine executable for click handling: %v", err)
		return ""
	}

	parts := []string{shellQuote(exe), "handle-click"}
	if target.ProcessID != nil {
		parts = append(parts, "--pid", strconv.Itoa(*target.ProcessID))
	}
	if target.HasCallbackURL() {
		parts = append(parts, "--callback-url", shellQuote(target.TrimmedCallbackURL()))
	}
	return strings.Join(parts, " ")
}

// shellQuote wraps s in single quotes, escaping internal single quotes
// using the '\” technique (end quote, literal apostrophe, resume quote).
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
