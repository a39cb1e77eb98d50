// ABOUTME: WindowStateController performs privileged window operations as independent best-effort calls.
// ABOUTME: Every call re-checks privilege and degrades to a skip instead of failing the sequence.
package activation

import "github.com/notifyd/notifyd/internal/logging"

// OpResult reports the outcome of one best-effort window operation.
// Zero mutations is a valid outcome, not an error.
type OpResult struct {
	Skipped bool // privilege unavailable, nothing attempted
	Touched int  // windows unminimized or raised, per operation
	Errors  int  // per-window failures tolerated mid-batch
}

// Controller drives window-state mutations through a WindowAuthority.
// The three operations are independent; the engine decides ordering and
// which subset to invoke at each retry stage.
type Controller struct {
	auth WindowAuthority
}

// NewController returns a controller over auth.
func NewController(auth WindowAuthority) *Controller {
	return &Controller{auth: auth}
}

// checkPrivilege performs the per-call capability check. The check and
// the privileged call are always co-located in the operation below it so
// no privileged operation can run unchecked.
func (c *Controller) checkPrivilege(op string) (proceed bool) {
	switch p := c.auth.CheckPrivilege(); p {
	case PrivilegeUnavailable:
		logging.Info("%s: skipped, window-control privilege unavailable", op)
		return false
	case PrivilegeUnknown:
		logging.Debug("%s: privilege state unknown, attempting anyway", op)
		return true
	default:
		return true
	}
}

// UnminimizeAll clears the minimized flag on every minimized window of
// app. Individual window failures do not abort the batch.
func (c *Controller) UnminimizeAll(app AppHandle) OpResult {
	if !c.checkPrivilege("unminimize") {
		return OpResult{Skipped: true}
	}

	var res OpResult
	for _, w := range c.auth.Windows(app) {
		if !w.Minimized() {
			continue
		}
		if err := w.Unminimize(); err != nil {
			logging.Debug("unminimize: window of %q (pid %d): %v", app.Name(), app.PID(), err)
			res.Errors++
			continue
		}
		res.Touched++
	}
	logging.Debug("unminimize: %q (pid %d): %d cleared, %d failed",
		app.Name(), app.PID(), res.Touched, res.Errors)
	return res
}

// RaiseAndFocusNonMinimized raises every non-minimized window of app to
// the front and marks it focused. Touched reports how many windows were
// actually raised.
func (c *Controller) RaiseAndFocusNonMinimized(app AppHandle) OpResult {
	if !c.checkPrivilege("raise-and-focus") {
		return OpResult{Skipped: true}
	}

	var res OpResult
	for _, w := range c.auth.Windows(app) {
		if w.Minimized() {
			continue
		}
		if err := w.RaiseAndFocus(); err != nil {
			logging.Debug("raise-and-focus: window of %q (pid %d): %v", app.Name(), app.PID(), err)
			res.Errors++
			continue
		}
		res.Touched++
	}
	logging.Debug("raise-and-focus: %q (pid %d): %d raised, %d failed",
		app.Name(), app.PID(), res.Touched, res.Errors)
	return res
}

// RequestFrontmost asks the OS to mark the entire application frontmost.
func (c *Controller) RequestFrontmost(app AppHandle) OpResult {
	if !c.checkPrivilege("request-frontmost") {
		return OpResult{Skipped: true}
	}

	if err := c.auth.SetFrontmost(app); err != nil {
		logging.Debug("request-frontmost: %q (pid %d): %v", app.Name(), app.PID(), err)
		return OpResult{Errors: 1}
	}
	return OpResult{Touched: 1}
}
