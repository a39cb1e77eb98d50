// ABOUTME: Small OS helpers shared across notifyd packages.
// ABOUTME: File checks, environment expansion, and platform detection.
package platform

import (
	"os"
	"runtime"
)

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ExpandEnv expands ${VAR} and $VAR references in s using the process environment.
func ExpandEnv(s string) string {
	return os.ExpandEnv(s)
}

// IsMacOS reports whether the current platform is macOS.
func IsMacOS() bool {
	return runtime.GOOS == "darwin"
}

// IsLinux reports whether the current platform is Linux.
func IsLinux() bool {
	return runtime.GOOS == "linux"
}

// IsWindows reports whether the current platform is Windows.
func IsWindows() bool {
	return runtime.GOOS == "windows"
}
