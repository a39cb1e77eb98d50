// ABOUTME: ActivationTarget is the per-notification payload describing what to bring forward on click.
package activation

import "strings"

// ActivationTarget is created once per notification and carried as opaque
// metadata until the user clicks. At most one resolution strategy is
// exercised per click: a non-empty callback URL always wins over the PID.
type ActivationTarget struct {
	// ProcessID is the PID captured at the moment of the triggering event
	// (the terminal's PID, not the short-lived subprocess that posted the
	// request). Nil when the poster supplied none.
	ProcessID *int

	// CallbackURL, when non-empty after trimming, is opened directly and
	// the activation engine is bypassed.
	CallbackURL string
}

// HasCallbackURL reports whether the callback-URL strategy applies.
func (t ActivationTarget) HasCallbackURL() bool {
	return strings.TrimSpace(t.CallbackURL) != ""
}

// TrimmedCallbackURL returns the callback URL with surrounding whitespace removed.
func (t ActivationTarget) TrimmedCallbackURL() string {
	return strings.TrimSpace(t.CallbackURL)
}
