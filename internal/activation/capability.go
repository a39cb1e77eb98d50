// ABOUTME: Capability interfaces over the host OS process and window APIs.
// ABOUTME: Implemented by internal/platform on macOS, stubbed elsewhere, faked in tests.
package activation

import "time"

// AppPolicy classifies how an application participates in the UI.
type AppPolicy int

const (
	// PolicyRegular is a dock-visible application that owns ordinary windows.
	PolicyRegular AppPolicy = iota
	// PolicyAccessory is a background/agent application without dock presence.
	PolicyAccessory
	// PolicyProhibited never presents UI.
	PolicyProhibited
)

// AppHandle is an opaque reference to a live application owned by the OS.
// Handles are resolved fresh per click and never cached across clicks:
// PIDs are recycled, so a handle is only trustworthy for the sequence
// that resolved it.
type AppHandle interface {
	PID() int
	Name() string
	Policy() AppPolicy
	Hidden() bool

	// BundleURL is the launch location used by the relaunch fallback.
	// Empty when the OS does not know where the application lives.
	BundleURL() string

	// Activate issues a plain activate-with-all-windows request.
	// Returns false when the OS refuses (e.g. the process just exited).
	Activate() bool
}

// ProcessIndex exposes the OS process table and running-application list.
type ProcessIndex interface {
	// AppForPID returns the running application owning pid, if pid belongs
	// to a live, user-facing application (daemons and helpers do not count).
	AppForPID(pid int) (AppHandle, bool)

	// ParentPID returns the parent of pid. ok is false when pid does not
	// exist or has no parent.
	ParentPID(pid int) (parent int, ok bool)

	// FrontmostApp returns the application currently receiving input focus.
	FrontmostApp() (AppHandle, bool)

	// RunningApps lists live applications, used only for diagnostics.
	RunningApps() []AppHandle
}

// WindowInfo describes one on-screen window as reported by the window
// server. This channel needs no accessibility privilege.
type WindowInfo struct {
	OwnerPID int
	Layer    int
	Alpha    float64
	Width    float64
	Height   float64
}

// WindowObserver is the permission-light observation channel the oracle
// verifies against.
type WindowObserver interface {
	OnScreenWindows(pid int) []WindowInfo
}

// Privilege is the tri-state result of a capability check for privileged
// window operations.
type Privilege int

const (
	PrivilegeAvailable Privilege = iota
	PrivilegeUnavailable
	// PrivilegeUnknown means the check could not determine the answer;
	// the operation is attempted anyway.
	PrivilegeUnknown
)

func (p Privilege) String() string {
	switch p {
	case PrivilegeAvailable:
		return "available"
	case PrivilegeUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// WindowRef is a transient reference to a single window of an application.
type WindowRef interface {
	Minimized() bool
	Unminimize() error
	RaiseAndFocus() error
}

// WindowAuthority performs privileged window-state operations.
// CheckPrivilege is called fresh before every operation, never cached.
type WindowAuthority interface {
	CheckPrivilege() Privilege
	Windows(app AppHandle) []WindowRef
	SetFrontmost(app AppHandle) error
}

// Launcher relaunches an application bundle with an activate-on-open request.
type Launcher interface {
	OpenBundle(url string, activate bool) error
}

// URLOpener asks the OS to open a URL. completed is invoked exactly once,
// on success or failure of the open call.
type URLOpener interface {
	Open(rawURL string, completed func(ok bool))
}

// Scheduler runs a continuation after a delay on the sequence's logical
// flow without occupying a thread. The continuation always eventually
// runs, even if the sequence that scheduled it no longer matters.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// TimerScheduler is the production Scheduler backed by time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}
