// ABOUTME: WindowVisibilityOracle answers whether an application verifiably owns a visible, focused window.
// ABOUTME: Works without accessibility privilege, so it stays usable when the control APIs are not.
package activation

// Default thresholds for the plausible-window filter. Decorative helper
// windows sit on non-zero layers, run near-zero alpha, or measure a pixel
// or less in one dimension.
const (
	DefaultAlphaMin     = 0.05
	DefaultMinDimension = 2.0
)

// OracleConfig tunes the window filter. Zero values take the defaults.
type OracleConfig struct {
	AlphaMin     float64
	MinDimension float64
}

// Oracle verifies activation outcomes against the window server's
// observable state.
type Oracle struct {
	procs   ProcessIndex
	windows WindowObserver
	cfg     OracleConfig
}

// NewOracle returns an oracle reading frontmost state from procs and
// window state from windows.
func NewOracle(procs ProcessIndex, windows WindowObserver, cfg OracleConfig) *Oracle {
	if cfg.AlphaMin <= 0 {
		cfg.AlphaMin = DefaultAlphaMin
	}
	if cfg.MinDimension <= 0 {
		cfg.MinDimension = DefaultMinDimension
	}
	return &Oracle{procs: procs, windows: windows, cfg: cfg}
}

// IsVisiblyActive reports whether app is frontmost and, for regular
// applications, owns at least one plausible on-screen window. Accessory
// and background applications pass on frontmost status alone: they own no
// dock-visible windows to check.
func (o *Oracle) IsVisiblyActive(app AppHandle) bool {
	front, ok := o.procs.FrontmostApp()
	if !ok || front.PID() != app.PID() {
		return false
	}
	if app.Policy() != PolicyRegular {
		return true
	}
	return o.HasPlausibleWindow(app)
}

// HasPlausibleWindow reports whether app owns at least one on-screen
// window that is not minimized-equivalent: layer zero, alpha above the
// threshold, both dimensions at least the minimum. Used on its own for
// fallback diagnostics.
func (o *Oracle) HasPlausibleWindow(app AppHandle) bool {
	for _, w := range o.windows.OnScreenWindows(app.PID()) {
		if w.Layer != 0 {
			continue
		}
		if w.Alpha <= o.cfg.AlphaMin {
			continue
		}
		if w.Width < o.cfg.MinDimension || w.Height < o.cfg.MinDimension {
			continue
		}
		return true
	}
	return false
}
