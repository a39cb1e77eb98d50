// ABOUTME: NotificationClickRouter is the entry point the OS invokes when a notification is clicked.
// ABOUTME: Dispatches to a direct URL open or the activation engine; always completes exactly once.
package activation

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/notifyd/notifyd/internal/logging"
)

// diagnosticAppLimit caps the live-application listing in resolution
// failure logs.
const diagnosticAppLimit = 10

// Router receives notification click events and dispatches them. The host
// notification system's completion callback is invoked exactly once per
// click, and never waits on the engine's settle loop.
type Router struct {
	resolver *Resolver
	engine   *Engine
	opener   URLOpener
	procs    ProcessIndex
}

// NewRouter wires a router from its collaborators.
func NewRouter(resolver *Resolver, engine *Engine, opener URLOpener, procs ProcessIndex) *Router {
	return &Router{resolver: resolver, engine: engine, opener: opener, procs: procs}
}

// OnClick handles one notification click. done signals completion to the
// host notification system; the router guarantees it runs exactly once.
func (r *Router) OnClick(target ActivationTarget, done func()) {
	var once sync.Once
	complete := func() {
		if done != nil {
			once.Do(done)
		}
	}

	// A callback URL takes absolute priority; the engine is bypassed.
	if target.HasCallbackURL() {
		raw := target.TrimmedCallbackURL()
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" {
			logging.Warn("click: unparsable callback URL %q, nothing opened", raw)
			complete()
			return
		}
		r.opener.Open(u.String(), func(ok bool) {
			if !ok {
				// A failed open is logged, not retried.
				logging.Warn("click: OS refused to open callback URL %q", u.String())
			} else {
				logging.Debug("click: opened callback URL %q", u.String())
			}
			complete()
		})
		return
	}

	if target.ProcessID == nil {
		logging.Info("click: no activation target in notification metadata")
		complete()
		return
	}

	app, ok := r.resolver.Resolve(*target.ProcessID)
	if !ok {
		logging.Info("click: no live application for pid %d; known applications: %s",
			*target.ProcessID, r.describeRunningApps())
		complete()
		return
	}

	// Activation proceeds fire-and-forget; the host notification API must
	// not be kept waiting on a multi-hundred-millisecond settle loop.
	r.engine.Activate(app)
	complete()
}

func (r *Router) describeRunningApps() string {
	apps := r.procs.RunningApps()
	if len(apps) > diagnosticAppLimit {
		apps = apps[:diagnosticAppLimit]
	}
	parts := make([]string, len(apps))
	for i, app := range apps {
		parts[i] = fmt.Sprintf("%s(%d)", app.Name(), app.PID())
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
