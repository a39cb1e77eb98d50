package platform

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/notifyd/notifyd/internal/logging"
)

// ExecOpener launches URLs and application bundles through the OS
// opener command: `open` on macOS, `xdg-open` elsewhere.
type ExecOpener struct{}

func openCommand() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// Open hands rawURL to the OS opener and reports the outcome through
// completed. The opener command returns as soon as the URL is accepted,
// so this does not wait for the receiving application.
func (ExecOpener) Open(rawURL string, completed func(ok bool)) {
	err := exec.Command(openCommand(), rawURL).Run()
	if err != nil {
		logging.Warn("URL open failed for %s: %v", rawURL, err)
	}
	if completed != nil {
		completed(err == nil)
	}
}

// OpenBundle opens (relaunching if needed) the application at url.
// With activate set the application is brought to the foreground; on
// macOS `open -g` suppresses that.
func (ExecOpener) OpenBundle(url string, activate bool) error {
	args := []string{url}
	if runtime.GOOS == "darwin" && !activate {
		args = append([]string{"-g"}, args...)
	}
	if err := exec.Command(openCommand(), args...).Run(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}
