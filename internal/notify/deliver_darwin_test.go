//go:build darwin

package notify

import (
	"strings"
	"testing"

	"github.com/notifyd/notifyd/internal/activation"
)

func intPtr(v int) *int { return &v }

func TestBuildNotifierArgs(t *testing.T) {
	n := Notification{
		Title:    "Build finished",
		Subtitle: "main",
		Body:     "All tests passed",
		Target:   activation.ActivationTarget{ProcessID: intPtr(123)},
	}

	args := buildNotifierArgs(n, "/tmp/icon.png")
	joined := strings.Join(args, " ")

	for _, want := range []string{"-title", "-message", "-subtitle", "-appIcon", "-execute", "-group", "-nosound"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %s: %v", want, args)
		}
	}
	if strings.Contains(joined, "-sound ") {
		t.Error("sound must stay suppressed in terminal-notifier")
	}
}

func TestBuildNotifierArgs_NoTargetNoExecute(t *testing.T) {
	args := buildNotifierArgs(Notification{Title: "t", Body: "b"}, "")
	for _, a := range args {
		if a == "-execute" {
			t.Error("-execute present without an activation target")
		}
	}
}

func TestBuildClickCommand(t *testing.T) {
	cmd := buildClickCommand(activation.ActivationTarget{
		ProcessID:   intPtr(42),
		CallbackURL: " https://example.com/x ",
	})
	if !strings.Contains(cmd, "handle-click") {
		t.Errorf("command missing subcommand: %q", cmd)
	}
	if !strings.Contains(cmd, "--pid 42") {
		t.Errorf("command missing pid flag: %q", cmd)
	}
	if !strings.Contains(cmd, "'https://example.com/x'") {
		t.Errorf("command missing trimmed quoted callback URL: %q", cmd)
	}
}

func TestBuildClickCommand_EmptyTarget(t *testing.T) {
	if cmd := buildClickCommand(activation.ActivationTarget{}); cmd != "" {
		t.Errorf("empty target produced command %q", cmd)
	}
}

func TestShellQuote(t *testing.T) {
	if got := shellQuote("plain"); got != "'plain'" {
		t.Errorf("shellQuote(plain) = %q", got)
	}
	if got := shellQuote("it's"); got != `'it'\''s'` {
		t.Errorf("shellQuote(it's) = %q", got)
	}
}
