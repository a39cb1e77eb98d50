package activation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func newTestRouter(world *fakeWorld, opener *fakeOpener) *Router {
	engine, _ := newTestEngine(world, EngineConfig{})
	return NewRouter(NewResolver(world), engine, opener, world)
}

func TestRouter_CallbackURLWinsOverPID(t *testing.T) {
	world := newFakeWorld()
	app := &fakeApp{pid: 100, name: "Terminal", activateOK: true}
	world.apps[100] = app
	opener := &fakeOpener{ok: true}
	router := newTestRouter(world, opener)

	completions := 0
	router.OnClick(ActivationTarget{
		ProcessID:   intPtr(100),
		CallbackURL: "  https://example.com/task/42  ",
	}, func() { completions++ })

	require.Equal(t, []string{"https://example.com/task/42"}, opener.opened)
	// Priority law: the resolver is never consulted when a callback URL is present.
	assert.Zero(t, world.appLookups, "resolver consulted despite callback URL")
	assert.Zero(t, app.activateCalls, "engine invoked despite callback URL")
	assert.Equal(t, 1, completions)
}

func TestRouter_UnparsableCallbackURLCompletesWithoutOpening(t *testing.T) {
	world := newFakeWorld()
	opener := &fakeOpener{ok: true}
	router := newTestRouter(world, opener)

	completions := 0
	router.OnClick(ActivationTarget{CallbackURL: "://not a url"}, func() { completions++ })

	assert.Empty(t, opener.opened)
	assert.Equal(t, 1, completions)
}

func TestRouter_SchemelessCallbackURLIsDropped(t *testing.T) {
	world := newFakeWorld()
	opener := &fakeOpener{ok: true}
	router := newTestRouter(world, opener)

	completions := 0
	router.OnClick(ActivationTarget{CallbackURL: "example.com/path"}, func() { completions++ })

	assert.Empty(t, opener.opened)
	assert.Equal(t, 1, completions)
}

func TestRouter_FailedOpenStillCompletesOnce(t *testing.T) {
	world := newFakeWorld()
	opener := &fakeOpener{ok: false}
	router := newTestRouter(world, opener)

	completions := 0
	router.OnClick(ActivationTarget{CallbackURL: "https://example.com"}, func() { completions++ })

	require.Len(t, opener.opened, 1)
	assert.Equal(t, 1, completions, "failed open must complete exactly once, not retry")
}

func TestRouter_NoTargetCompletesImmediately(t *testing.T) {
	world := newFakeWorld()
	router := newTestRouter(world, &fakeOpener{})

	completions := 0
	router.OnClick(ActivationTarget{}, func() { completions++ })

	assert.Equal(t, 1, completions)
	assert.Zero(t, world.appLookups)
}

func TestRouter_ResolutionFailureCompletesWithoutEngine(t *testing.T) {
	world := newFakeWorld()
	// A dozen running apps so the diagnostic listing exercises its cap.
	for pid := 500; pid < 512; pid++ {
		world.apps[pid] = &fakeApp{pid: pid, name: "App"}
	}
	router := newTestRouter(world, &fakeOpener{})

	completions := 0
	router.OnClick(ActivationTarget{ProcessID: intPtr(31337)}, func() { completions++ })

	assert.Equal(t, 1, completions)
	assert.Empty(t, world.openCalls, "engine fallback must not run on resolution failure")
}

func TestRouter_ResolvedTargetHandsOffToEngine(t *testing.T) {
	world := newFakeWorld()
	app := &fakeApp{pid: 100, name: "Terminal", policy: PolicyRegular, activateOK: true}
	world.apps[100] = app
	world.markVisible(100)
	world.parents[300] = 100
	router := newTestRouter(world, &fakeOpener{})

	completions := 0
	router.OnClick(ActivationTarget{ProcessID: intPtr(300)}, func() { completions++ })

	assert.Equal(t, 1, app.activateCalls)
	assert.Equal(t, 1, completions)
}

func TestRouter_NilDoneIsTolerated(t *testing.T) {
	world := newFakeWorld()
	router := newTestRouter(world, &fakeOpener{ok: true})

	assert.NotPanics(t, func() {
		router.OnClick(ActivationTarget{CallbackURL: "https://example.com"}, nil)
	})
}

func TestActivationTarget_HasCallbackURL(t *testing.T) {
	assert.False(t, ActivationTarget{}.HasCallbackURL())
	assert.False(t, ActivationTarget{CallbackURL: "   "}.HasCallbackURL())
	assert.True(t, ActivationTarget{CallbackURL: "https://x"}.HasCallbackURL())
}
