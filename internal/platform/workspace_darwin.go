//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework ApplicationServices -framework CoreGraphics
#include <stdlib.h>
#include <string.h>
#include <sys/sysctl.h>
#import <AppKit/AppKit.h>
#import <ApplicationServices/ApplicationServices.h>
#import <CoreGraphics/CoreGraphics.h>

// appSnapshot copies the fields notifyd reads from NSRunningApplication.
typedef struct {
	int   pid;
	int   policy; // NSApplicationActivationPolicy: 0 regular, 1 accessory, 2 prohibited
	int   hidden;
	char  name[512];
	char  bundleURL[1024];
} AppSnapshot;

static int snapshotApp(NSRunningApplication *app, AppSnapshot *out) {
	if (!app) return 0;
	memset(out, 0, sizeof(*out));
	out->pid = (int)app.processIdentifier;
	out->policy = (int)app.activationPolicy;
	out->hidden = app.hidden ? 1 : 0;
	NSString *name = app.localizedName;
	if (name) strlcpy(out->name, name.UTF8String, sizeof(out->name));
	NSURL *bundle = app.bundleURL;
	if (bundle) strlcpy(out->bundleURL, bundle.absoluteString.UTF8String, sizeof(out->bundleURL));
	return 1;
}

static int appForPID(int pid, AppSnapshot *out) {
	@autoreleasepool {
		NSRunningApplication *app =
			[NSRunningApplication runningApplicationWithProcessIdentifier:(pid_t)pid];
		return snapshotApp(app, out);
	}
}

static int frontmostApp(AppSnapshot *out) {
	@autoreleasepool {
		return snapshotApp([NSWorkspace sharedWorkspace].frontmostApplication, out);
	}
}

static int runningApps(AppSnapshot *buf, int max) {
	@autoreleasepool {
		NSArray<NSRunningApplication *> *apps = [NSWorkspace sharedWorkspace].runningApplications;
		int n = 0;
		for (NSRunningApplication *app in apps) {
			if (n >= max) break;
			if (snapshotApp(app, &buf[n])) n++;
		}
		return n;
	}
}

// parentOfPID reads kinfo_proc via sysctl. Returns -1 when pid does not exist.
static int parentOfPID(int pid) {
	struct kinfo_proc info;
	size_t size = sizeof(info);
	int mib[4] = {CTL_KERN, KERN_PROC, KERN_PROC_PID, pid};
	if (sysctl(mib, 4, &info, &size, NULL, 0) != 0 || size == 0) return -1;
	if (info.kp_proc.p_pid != (pid_t)pid) return -1;
	return (int)info.kp_eproc.e_ppid;
}

static int activateApp(int pid) {
	@autoreleasepool {
		NSRunningApplication *app =
			[NSRunningApplication runningApplicationWithProcessIdentifier:(pid_t)pid];
		if (!app) return 0;
#pragma clang diagnostic push
#pragma clang diagnostic ignored "-Wdeprecated-declarations"
		return [app activateWithOptions:(NSApplicationActivateAllWindows |
		                                 NSApplicationActivateIgnoringOtherApps)] ? 1 : 0;
#pragma clang diagnostic pop
	}
}

typedef struct {
	int    ownerPID;
	int    layer;
	double alpha;
	double width;
	double height;
} WinSnapshot;

// onScreenWindows lists the window server's on-screen windows for pid.
// Layer, alpha, and bounds need no accessibility or screen-recording
// permission (window names would, and are deliberately not read).
static int onScreenWindows(int pid, WinSnapshot *buf, int max) {
	@autoreleasepool {
		CFArrayRef info = CGWindowListCopyWindowInfo(
			kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements,
			kCGNullWindowID);
		if (!info) return 0;

		int n = 0;
		for (NSDictionary *entry in (__bridge NSArray *)info) {
			if (n >= max) break;
			NSNumber *owner = entry[(__bridge NSString *)kCGWindowOwnerPID];
			if (!owner || owner.intValue != pid) continue;

			WinSnapshot *w = &buf[n];
			memset(w, 0, sizeof(*w));
			w->ownerPID = pid;
			NSNumber *layer = entry[(__bridge NSString *)kCGWindowLayer];
			if (layer) w->layer = layer.intValue;
			NSNumber *alpha = entry[(__bridge NSString *)kCGWindowAlpha];
			w->alpha = alpha ? alpha.doubleValue : 1.0;
			CFDictionaryRef boundsDict =
				(__bridge CFDictionaryRef)entry[(__bridge NSString *)kCGWindowBounds];
			if (boundsDict) {
				CGRect bounds;
				if (CGRectMakeWithDictionaryRepresentation(boundsDict, &bounds)) {
					w->width = bounds.size.width;
					w->height = bounds.size.height;
				}
			}
			n++;
		}
		CFRelease(info);
		return n;
	}
}

static int axTrusted(void) {
	return AXIsProcessTrusted() ? 1 : 0;
}

static AXUIElementRef copyAXWindow(int pid, long idx, AXUIElementRef *appOut) {
	AXUIElementRef appEl = AXUIElementCreateApplication((pid_t)pid);
	if (!appEl) return NULL;

	CFTypeRef windowsRef = NULL;
	if (AXUIElementCopyAttributeValue(appEl, CFSTR("AXWindows"), &windowsRef) != kAXErrorSuccess ||
	    !windowsRef) {
		CFRelease(appEl);
		return NULL;
	}
	CFArrayRef windows = (CFArrayRef)windowsRef;
	if (idx < 0 || idx >= CFArrayGetCount(windows)) {
		CFRelease(windowsRef);
		CFRelease(appEl);
		return NULL;
	}
	AXUIElementRef w = (AXUIElementRef)CFArrayGetValueAtIndex(windows, idx);
	CFRetain(w);
	CFRelease(windowsRef);
	*appOut = appEl;
	return w;
}

static long axWindowCount(int pid) {
	AXUIElementRef appEl = AXUIElementCreateApplication((pid_t)pid);
	if (!appEl) return -1;
	CFTypeRef windowsRef = NULL;
	if (AXUIElementCopyAttributeValue(appEl, CFSTR("AXWindows"), &windowsRef) != kAXErrorSuccess ||
	    !windowsRef) {
		CFRelease(appEl);
		return -1;
	}
	long n = CFArrayGetCount((CFArrayRef)windowsRef);
	CFRelease(windowsRef);
	CFRelease(appEl);
	return n;
}

// axWindowMinimized returns 1/0, or -1 on error.
static int axWindowMinimized(int pid, long idx) {
	AXUIElementRef appEl = NULL;
	AXUIElementRef w = copyAXWindow(pid, idx, &appEl);
	if (!w) return -1;

	int result = -1;
	CFTypeRef minRef = NULL;
	if (AXUIElementCopyAttributeValue(w, CFSTR("AXMinimized"), &minRef) == kAXErrorSuccess && minRef) {
		result = CFBooleanGetValue((CFBooleanRef)minRef) ? 1 : 0;
		CFRelease(minRef);
	}
	CFRelease(w);
	CFRelease(appEl);
	return result;
}

static int axSetMinimized(int pid, long idx, int minimized) {
	AXUIElementRef appEl = NULL;
	AXUIElementRef w = copyAXWindow(pid, idx, &appEl);
	if (!w) return 0;

	AXError err = AXUIElementSetAttributeValue(w, CFSTR("AXMinimized"),
		minimized ? kCFBooleanTrue : kCFBooleanFalse);
	CFRelease(w);
	CFRelease(appEl);
	return err == kAXErrorSuccess ? 1 : 0;
}

static int axRaiseAndFocus(int pid, long idx) {
	AXUIElementRef appEl = NULL;
	AXUIElementRef w = copyAXWindow(pid, idx, &appEl);
	if (!w) return 0;

	int ok = AXUIElementPerformAction(w, CFSTR("AXRaise")) == kAXErrorSuccess;
	// Mark it the main/focused window; failures here do not undo the raise.
	AXUIElementSetAttributeValue(w, CFSTR("AXMain"), kCFBooleanTrue);
	AXUIElementSetAttributeValue(w, CFSTR("AXFocused"), kCFBooleanTrue);
	CFRelease(w);
	CFRelease(appEl);
	return ok;
}

static int axSetFrontmost(int pid) {
	AXUIElementRef appEl = AXUIElementCreateApplication((pid_t)pid);
	if (!appEl) return 0;
	AXError err = AXUIElementSetAttributeValue(appEl, CFSTR("AXFrontmost"), kCFBooleanTrue);
	CFRelease(appEl);
	return err == kAXErrorSuccess ? 1 : 0;
}
*/
import "C"

import (
	"errors"

	"github.com/notifyd/notifyd/internal/activation"
)

const (
	maxRunningApps   = 512
	maxWindowsPerApp = 128
)

// Workspace is the macOS implementation of the activation capability
// surface, backed by NSWorkspace, the window server, and the AX API.
type Workspace struct{}

// NewWorkspace returns the platform workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

type app struct {
	pid       int
	name      string
	policy    activation.AppPolicy
	hidden    bool
	bundleURL string
}

func snapshotToApp(s *C.AppSnapshot) *app {
	return &app{
		pid:       int(s.pid),
		name:      C.GoString(&s.name[0]),
		policy:    activation.AppPolicy(int(s.policy)),
		hidden:    s.hidden != 0,
		bundleURL: C.GoString(&s.bundleURL[0]),
	}
}

func (a *app) PID() int                     { return a.pid }
func (a *app) Name() string                 { return a.name }
func (a *app) Policy() activation.AppPolicy { return a.policy }
func (a *app) Hidden() bool                 { return a.hidden }
func (a *app) BundleURL() string            { return a.bundleURL }

func (a *app) Activate() bool {
	return C.activateApp(C.int(a.pid)) != 0
}

// AppForPID returns the running application owning pid. Prohibited-policy
// processes (daemons, helpers) do not count as user-facing applications.
func (w *Workspace) AppForPID(pid int) (activation.AppHandle, bool) {
	var snap C.AppSnapshot
	if C.appForPID(C.int(pid), &snap) == 0 {
		return nil, false
	}
	a := snapshotToApp(&snap)
	if a.policy == activation.PolicyProhibited {
		return nil, false
	}
	return a, true
}

func (w *Workspace) ParentPID(pid int) (int, bool) {
	parent := int(C.parentOfPID(C.int(pid)))
	if parent < 0 {
		return 0, false
	}
	return parent, true
}

func (w *Workspace) FrontmostApp() (activation.AppHandle, bool) {
	var snap C.AppSnapshot
	if C.frontmostApp(&snap) == 0 {
		return nil, false
	}
	return snapshotToApp(&snap), true
}

func (w *Workspace) RunningApps() []activation.AppHandle {
	buf := make([]C.AppSnapshot, maxRunningApps)
	n := int(C.runningApps(&buf[0], C.int(len(buf))))
	out := make([]activation.AppHandle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, snapshotToApp(&buf[i]))
	}
	return out
}

func (w *Workspace) OnScreenWindows(pid int) []activation.WindowInfo {
	buf := make([]C.WinSnapshot, maxWindowsPerApp)
	n := int(C.onScreenWindows(C.int(pid), &buf[0], C.int(len(buf))))
	out := make([]activation.WindowInfo, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, activation.WindowInfo{
			OwnerPID: int(buf[i].ownerPID),
			Layer:    int(buf[i].layer),
			Alpha:    float64(buf[i].alpha),
			Width:    float64(buf[i].width),
			Height:   float64(buf[i].height),
		})
	}
	return out
}

// CheckPrivilege asks the AX API whether this process is trusted. The
// answer can flip while we run (the user can grant or revoke it in
// System Settings), so it is checked fresh on every call.
func (w *Workspace) CheckPrivilege() activation.Privilege {
	if C.axTrusted() != 0 {
		return activation.PrivilegeAvailable
	}
	return activation.PrivilegeUnavailable
}

type axWindow struct {
	pid       int
	idx       int
	minimized bool
}

func (x *axWindow) Minimized() bool { return x.minimized }

func (x *axWindow) Unminimize() error {
	if C.axSetMinimized(C.int(x.pid), C.long(x.idx), 0) == 0 {
		return errors.New("AXMinimized write rejected")
	}
	x.minimized = false
	return nil
}

func (x *axWindow) RaiseAndFocus() error {
	if C.axRaiseAndFocus(C.int(x.pid), C.long(x.idx)) == 0 {
		return errors.New("AXRaise rejected")
	}
	return nil
}

func (w *Workspace) Windows(target activation.AppHandle) []activation.WindowRef {
	pid := target.PID()
	count := int(C.axWindowCount(C.int(pid)))
	if count <= 0 {
		return nil
	}
	out := make([]activation.WindowRef, 0, count)
	for i := 0; i < count; i++ {
		min := int(C.axWindowMinimized(C.int(pid), C.long(i)))
		if min < 0 {
			continue
		}
		out = append(out, &axWindow{pid: pid, idx: i, minimized: min == 1})
	}
	return out
}

func (w *Workspace) SetFrontmost(target activation.AppHandle) error {
	if C.axSetFrontmost(C.int(target.PID())) == 0 {
		return errors.New("AXFrontmost write rejected")
	}
	return nil
}
