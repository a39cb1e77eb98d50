// ABOUTME: ActivationEngine drives the bounded raise-verify-escalate-retry-fallback state machine.
// ABOUTME: One independent sequence per click; settle delays are scheduled continuations, never sleeps.
package activation

import (
	"time"

	"github.com/notifyd/notifyd/internal/logging"
)

// Engine defaults. Empirically tuned in the source material: one settle
// window long enough for window-server state to become observable, short
// enough to feel instantaneous; one retry absorbs most activation races.
const (
	DefaultSettleDelay = 150 * time.Millisecond
	DefaultMaxAttempts = 2
)

// State names one phase of an activation sequence.
type State int

const (
	StateIdle State = iota
	StateAttempting
	StateVerifying
	StateEscalating
	StateSuccess
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAttempting:
		return "attempting"
	case StateVerifying:
		return "verifying"
	case StateEscalating:
		return "escalating"
	case StateSuccess:
		return "success"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// EngineConfig tunes the retry machine. The defaults are tuning knobs,
// not derived values: behavior must hold for any positive settle delay
// and attempt count.
type EngineConfig struct {
	SettleDelay time.Duration
	MaxAttempts int
}

// Engine orchestrates controller actions and oracle verification until a
// target window is verifiably visible or all strategies are exhausted.
// It holds no cross-click mutable state: every Activate call owns its
// sequence outright, so concurrent sequences cannot corrupt each other.
type Engine struct {
	ctrl     *Controller
	oracle   *Oracle
	procs    ProcessIndex
	launcher Launcher
	sched    Scheduler
	cfg      EngineConfig
}

// NewEngine wires an engine from its collaborators.
func NewEngine(ctrl *Controller, oracle *Oracle, procs ProcessIndex, launcher Launcher, sched Scheduler, cfg EngineConfig) *Engine {
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	return &Engine{
		ctrl:     ctrl,
		oracle:   oracle,
		procs:    procs,
		launcher: launcher,
		sched:    sched,
		cfg:      cfg,
	}
}

// attempt is the working state of one click's activation sequence. It is
// discarded once the sequence reaches a terminal state.
type attempt struct {
	app       AppHandle
	n         int
	startedAt time.Time
	state     State
}

// Activate starts an activation sequence for app and returns once the
// first activation request has been issued; verification and retries
// continue on scheduled continuations. Safe to call concurrently for
// different clicks — sequences are fully independent.
func (e *Engine) Activate(app AppHandle) {
	a := &attempt{app: app, n: 1, startedAt: time.Now(), state: StateIdle}
	e.beginAttempt(a)
}

// beginAttempt performs one Attempting(n) phase: unminimize, then a plain
// activate-with-all-windows request, then a scheduled verification.
func (e *Engine) beginAttempt(a *attempt) {
	a.state = StateAttempting
	logging.Debug("activate %q (pid %d): attempt %d/%d", a.app.Name(), a.app.PID(), a.n, e.cfg.MaxAttempts)

	e.ctrl.UnminimizeAll(a.app)
	if !a.app.Activate() {
		// Transient failure: the verification pass decides what happens next.
		logging.Debug("activate %q (pid %d): activation request refused", a.app.Name(), a.app.PID())
	}

	e.sched.AfterFunc(e.cfg.SettleDelay, func() { e.verify(a) })
}

func (e *Engine) verify(a *attempt) {
	a.state = StateVerifying
	if e.oracle.IsVisiblyActive(a.app) {
		e.succeed(a)
		return
	}
	e.escalate(a)
}

// escalate invokes the stronger control APIs and re-queries the oracle
// immediately; the window server has already had its settle window.
func (e *Engine) escalate(a *attempt) {
	a.state = StateEscalating
	e.ctrl.RequestFrontmost(a.app)
	e.ctrl.RaiseAndFocusNonMinimized(a.app)

	if e.oracle.IsVisiblyActive(a.app) {
		e.succeed(a)
		return
	}

	if a.n < e.cfg.MaxAttempts {
		a.n++
		e.beginAttempt(a)
		return
	}
	e.fallback(a)
}

func (e *Engine) succeed(a *attempt) {
	a.state = StateSuccess
	logging.Info("activate %q (pid %d): visible after attempt %d (%.0fms)",
		a.app.Name(), a.app.PID(), a.n, time.Since(a.startedAt).Seconds()*1000)
}

// fallback asks the OS to relaunch the application bundle with an
// activate-on-open request. Past this point the engine never retries:
// the total latency stays bounded and it does not fight the user's own
// window manager indefinitely.
func (e *Engine) fallback(a *attempt) {
	a.state = StateExhausted

	bundle := a.app.BundleURL()
	if bundle == "" {
		e.logFallbackFailure(a, "no known launch location")
		return
	}
	if err := e.launcher.OpenBundle(bundle, true); err != nil {
		e.logFallbackFailure(a, err.Error())
		return
	}

	logging.Info("activate %q (pid %d): relaunch fallback issued for %s",
		a.app.Name(), a.app.PID(), bundle)

	e.sched.AfterFunc(e.cfg.SettleDelay, func() {
		e.ctrl.RequestFrontmost(a.app)
		e.ctrl.RaiseAndFocusNonMinimized(a.app)

		// Final oracle check is for the log only.
		if e.oracle.IsVisiblyActive(a.app) {
			logging.Info("activate %q (pid %d): visible after relaunch fallback", a.app.Name(), a.app.PID())
		} else {
			logging.Warn("activate %q (pid %d): still not visible after relaunch fallback", a.app.Name(), a.app.PID())
		}
	})
}

// logFallbackFailure records terminal diagnostic context: who is actually
// frontmost, and whether the target still has a plausible visible window.
func (e *Engine) logFallbackFailure(a *attempt, reason string) {
	frontName, frontPID := "none", 0
	if front, ok := e.procs.FrontmostApp(); ok {
		frontName, frontPID = front.Name(), front.PID()
	}
	logging.Error("activate %q (pid %d): fallback failed after %d attempts: %s (frontmost: %q pid %d, target has visible window: %v)",
		a.app.Name(), a.app.PID(), a.n, reason,
		frontName, frontPID, e.oracle.HasPlausibleWindow(a.app))
}
