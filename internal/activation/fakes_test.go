package activation

import (
	"sort"
	"time"
)

// fakeApp implements AppHandle.
type fakeApp struct {
	pid           int
	name          string
	policy        AppPolicy
	hidden        bool
	bundleURL     string
	activateOK    bool
	activateCalls int
	onActivate    func()
}

func (a *fakeApp) PID() int          { return a.pid }
func (a *fakeApp) Name() string      { return a.name }
func (a *fakeApp) Policy() AppPolicy { return a.policy }
func (a *fakeApp) Hidden() bool      { return a.hidden }
func (a *fakeApp) BundleURL() string { return a.bundleURL }

func (a *fakeApp) Activate() bool {
	a.activateCalls++
	if a.onActivate != nil {
		a.onActivate()
	}
	return a.activateOK
}

// fakeWindow implements WindowRef.
type fakeWindow struct {
	minimized      bool
	unminimizeErr  error
	raiseErr       error
	unminimizeHits int
	raiseHits      int
}

func (w *fakeWindow) Minimized() bool { return w.minimized }

func (w *fakeWindow) Unminimize() error {
	w.unminimizeHits++
	if w.unminimizeErr != nil {
		return w.unminimizeErr
	}
	w.minimized = false
	return nil
}

func (w *fakeWindow) RaiseAndFocus() error {
	w.raiseHits++
	return w.raiseErr
}

type openCall struct {
	url      string
	activate bool
}

// fakeWorld is a single in-memory stand-in for the whole OS capability
// surface: ProcessIndex, WindowObserver, WindowAuthority, and Launcher.
type fakeWorld struct {
	apps         map[int]*fakeApp
	parents      map[int]int
	frontmostPID int

	onScreen map[int][]WindowInfo
	windows  map[int][]*fakeWindow

	privilege  Privilege
	privChecks int

	setFrontmostCalls int
	setFrontmostErr   error
	onSetFrontmost    func()

	openCalls []openCall
	openErr   error

	appLookups int
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		apps:      make(map[int]*fakeApp),
		parents:   make(map[int]int),
		onScreen:  make(map[int][]WindowInfo),
		windows:   make(map[int][]*fakeWindow),
		privilege: PrivilegeAvailable,
	}
}

func (w *fakeWorld) AppForPID(pid int) (AppHandle, bool) {
	w.appLookups++
	app, ok := w.apps[pid]
	if !ok {
		return nil, false
	}
	return app, true
}

func (w *fakeWorld) ParentPID(pid int) (int, bool) {
	parent, ok := w.parents[pid]
	return parent, ok
}

func (w *fakeWorld) FrontmostApp() (AppHandle, bool) {
	app, ok := w.apps[w.frontmostPID]
	if !ok {
		return nil, false
	}
	return app, true
}

func (w *fakeWorld) RunningApps() []AppHandle {
	pids := make([]int, 0, len(w.apps))
	for pid := range w.apps {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	out := make([]AppHandle, len(pids))
	for i, pid := range pids {
		out[i] = w.apps[pid]
	}
	return out
}

func (w *fakeWorld) OnScreenWindows(pid int) []WindowInfo {
	return w.onScreen[pid]
}

func (w *fakeWorld) CheckPrivilege() Privilege {
	w.privChecks++
	return w.privilege
}

func (w *fakeWorld) Windows(app AppHandle) []WindowRef {
	refs := w.windows[app.PID()]
	out := make([]WindowRef, len(refs))
	for i, r := range refs {
		out[i] = r
	}
	return out
}

func (w *fakeWorld) SetFrontmost(app AppHandle) error {
	w.setFrontmostCalls++
	if w.onSetFrontmost != nil {
		w.onSetFrontmost()
	}
	return w.setFrontmostErr
}

func (w *fakeWorld) OpenBundle(url string, activate bool) error {
	w.openCalls = append(w.openCalls, openCall{url: url, activate: activate})
	return w.openErr
}

// visibleWindow is a plausible on-screen window for pid.
func visibleWindow(pid int) WindowInfo {
	return WindowInfo{OwnerPID: pid, Layer: 0, Alpha: 1.0, Width: 800, Height: 600}
}

// markVisible makes pid frontmost with one plausible window.
func (w *fakeWorld) markVisible(pid int) {
	w.frontmostPID = pid
	w.onScreen[pid] = []WindowInfo{visibleWindow(pid)}
}

// syncScheduler runs continuations immediately and records the requested
// delays, collapsing the asynchronous sequence into a synchronous one.
type syncScheduler struct {
	delays []time.Duration
}

func (s *syncScheduler) AfterFunc(d time.Duration, fn func()) {
	s.delays = append(s.delays, d)
	fn()
}

// fakeOpener records URL opens and reports a configurable outcome.
type fakeOpener struct {
	opened []string
	ok     bool
}

func (o *fakeOpener) Open(rawURL string, completed func(ok bool)) {
	o.opened = append(o.opened, rawURL)
	completed(o.ok)
}

// newTestEngine wires an engine over world with a synchronous scheduler.
func newTestEngine(world *fakeWorld, cfg EngineConfig) (*Engine, *syncScheduler) {
	sched := &syncScheduler{}
	ctrl := NewController(world)
	oracle := NewOracle(world, world, OracleConfig{})
	return NewEngine(ctrl, oracle, world, world, sched, cfg), sched
}
