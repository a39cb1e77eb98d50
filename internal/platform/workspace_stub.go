//go:build !darwin

package platform

import (
	"errors"

	"github.com/notifyd/notifyd/internal/activation"
)

// Workspace is a no-op capability surface for platforms without a
// scriptable window server. Process lookups come back empty and window
// control reports unavailable, so activation degrades to the launcher
// and callback-URL paths.
type Workspace struct{}

func NewWorkspace() *Workspace {
	return &Workspace{}
}

func (w *Workspace) AppForPID(pid int) (activation.AppHandle, bool) { return nil, false }
func (w *Workspace) ParentPID(pid int) (int, bool)                  { return 0, false }
func (w *Workspace) FrontmostApp() (activation.AppHandle, bool)     { return nil, false }
func (w *Workspace) RunningApps() []activation.AppHandle            { return nil }

func (w *Workspace) OnScreenWindows(pid int) []activation.WindowInfo { return nil }

func (w *Workspace) CheckPrivilege() activation.Privilege {
	return activation.PrivilegeUnavailable
}

func (w *Workspace) Windows(app activation.AppHandle) []activation.WindowRef { return nil }

func (w *Workspace) SetFrontmost(app activation.AppHandle) error {
	return errors.New("window control not supported on this platform")
}
