// ABOUTME: ProcessTreeResolver walks the process tree upward to find the nearest live application.
// ABOUTME: Bounded by a visited set and a depth cap; every failure path yields not-found.
package activation

import (
	"fmt"
	"strings"

	"github.com/notifyd/notifyd/internal/logging"
)

// DefaultMaxResolveDepth bounds the ancestor walk. Real ancestor chains
// from a shell subprocess to its terminal are a handful of links; twenty
// guards against runaway or corrupted process-table reads.
const DefaultMaxResolveDepth = 20

// Resolver finds the nearest live, user-facing application in the
// ancestor chain of a starting PID.
type Resolver struct {
	procs    ProcessIndex
	maxDepth int
}

// NewResolver returns a resolver over procs with the default depth cap.
func NewResolver(procs ProcessIndex) *Resolver {
	return NewResolverDepth(procs, DefaultMaxResolveDepth)
}

// NewResolverDepth returns a resolver with an explicit depth cap.
// Non-positive caps fall back to the default.
func NewResolverDepth(procs ProcessIndex, maxDepth int) *Resolver {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxResolveDepth
	}
	return &Resolver{procs: procs, maxDepth: maxDepth}
}

// Resolve walks from startPID upward through parent links and returns the
// first ancestor (inclusive) that is a live application. It never errors:
// cycles, depth overruns, dead PIDs, and reaching the process-tree root
// all return ok=false.
func (r *Resolver) Resolve(startPID int) (AppHandle, bool) {
	visited := make(map[int]bool, r.maxDepth)
	chain := make([]int, 0, r.maxDepth)

	pid := startPID
	for depth := 0; ; depth++ {
		if depth >= r.maxDepth {
			logging.Warn("resolve: depth cap %d reached walking from pid %d (chain: %s)",
				r.maxDepth, startPID, formatChain(chain))
			return nil, false
		}
		if visited[pid] {
			logging.Warn("resolve: cycle at pid %d walking from pid %d (chain: %s)",
				pid, startPID, formatChain(chain))
			return nil, false
		}
		visited[pid] = true
		chain = append(chain, pid)

		if app, ok := r.procs.AppForPID(pid); ok {
			logging.Debug("resolve: pid %d -> %q (pid %d) at depth %d",
				startPID, app.Name(), app.PID(), depth)
			return app, true
		}

		parent, ok := r.procs.ParentPID(pid)
		if !ok || parent == 0 || parent == 1 {
			logging.Info("resolve: no live application above pid %d (chain: %s)",
				startPID, formatChain(chain))
			return nil, false
		}
		pid = parent
	}
}

func formatChain(chain []int) string {
	parts := make([]string, len(chain))
	for i, pid := range chain {
		parts[i] = fmt.Sprintf("%d", pid)
	}
	return strings.Join(parts, " -> ")
}
