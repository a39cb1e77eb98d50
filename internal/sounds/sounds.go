// ABOUTME: Sound discovery package for listing available notification sounds.
// ABOUTME: Pure filesystem scanning with no audio dependencies (CGO-free).

package sounds

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// SoundInfo represents a discovered sound file.
type SoundInfo struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Format      string `json:"format"`
	Source      string `json:"source"`
	Description string `json:"description"`
}

// DiscoverOptions controls which sound sources to scan.
type DiscoverOptions struct {
	SoundDir       string // User-configured directory of custom sounds
	IncludeCustom  bool
	IncludeSystem  bool
	MaxSystemDepth int // Max directory depth for Linux system sounds (default 5)
}

// descriptions maps well-known system sound names to human-readable text.
var descriptions = map[string]string{
	// macOS system sounds
	"Glass":     "Crisp, clean chime",
	"Hero":      "Triumphant fanfare",
	"Ping":      "Subtle ping sound",
	"Pop":       "Quick pop sound",
	"Purr":      "Gentle purr",
	"Funk":      "Distinctive funk groove",
	"Sosumi":    "Pleasant notification",
	"Basso":     "Deep bass sound",
	"Blow":      "Breeze-like whoosh",
	"Frog":      "Unique ribbit sound",
	"Submarine": "Sonar-like ping",
	"Bottle":    "Cork pop sound",
	"Morse":     "Morse code beeps",
	"Tink":      "Light metallic sound",
}

// customExtensions are the formats the audio player can decode.
var customExtensions = []string{".mp3", ".wav", ".aiff", ".ogg", ".flac"}

// Discover scans for available sounds and returns them grouped by source.
// Custom sounds are listed first, then system sounds.
func Discover(opts DiscoverOptions) []SoundInfo {
	var result []SoundInfo

	if opts.IncludeCustom {
		result = append(result, discoverCustom(opts.SoundDir)...)
	}

	if opts.IncludeSystem {
		depth := opts.MaxSystemDepth
		if depth <= 0 {
			depth = 5
		}
		result = append(result, discoverSystem(depth)...)
	}

	// Sort within each source group for stable output
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Source != result[j].Source {
			// custom first, then system
			return result[i].Source == "custom"
		}
		return result[i].Name < result[j].Name
	})

	return result
}

// FindByName searches for a sound by name with 3-level matching:
// 1. Exact match
// 2. Case-insensitive match
// 3. Prefix match (case-insensitive)
// Custom sounds are prioritized over system sounds at every level.
func FindByName(name string, available []SoundInfo) (SoundInfo, bool) {
	nameLower := strings.ToLower(name)

	// Level 1: exact match (prefer custom)
	if s, ok := findPreferCustom(available, func(s SoundInfo) bool {
		return s.Name == name
	}); ok {
		return s, true
	}

	// Level 2: case-insensitive match (prefer custom)
	if s, ok := findPreferCustom(available, func(s SoundInfo) bool {
		return strings.ToLower(s.Name) == nameLower
	}); ok {
		return s, true
	}

	// Level 3: prefix match (prefer custom)
	if s, ok := findPreferCustom(available, func(s SoundInfo) bool {
		return strings.HasPrefix(strings.ToLower(s.Name), nameLower)
	}); ok {
		return s, true
	}

	return SoundInfo{}, false
}

// findPreferCustom finds the first match, preferring custom over system sources.
func findPreferCustom(available []SoundInfo, match func(SoundInfo) bool) (SoundInfo, bool) {
	var firstSystem *SoundInfo
	for i, s := range available {
		if match(s) {
			if s.Source == "custom" {
				return s, true
			}
			if firstSystem == nil {
				firstSystem = &available[i]
			}
		}
	}
	if firstSystem != nil {
		return *firstSystem, true
	}
	return SoundInfo{}, false
}

// discoverCustom scans the configured sound directory for playable files.
func discoverCustom(dir string) []SoundInfo {
	if dir == "" {
		return nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}

	var result []SoundInfo
	for _, ext := range customExtensions {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
		if err != nil {
			continue
		}
		for _, path := range matches {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			result = append(result, SoundInfo{
				Name:   name,
				Path:   path,
				Format: ext[1:],
				Source: "custom",
			})
		}
	}

	return result
}

// discoverSystem scans platform-specific system sound directories.
func discoverSystem(maxDepth int) []SoundInfo {
	switch runtime.GOOS {
	case "darwin":
		return discoverMacOSSounds()
	case "linux":
		return discoverLinuxSounds(maxDepth)
	case "windows":
		return discoverWindowsSounds()
	default:
		return nil
	}
}

// discoverMacOSSounds finds AIFF files in /System/Library/Sounds/.
func discoverMacOSSounds() []SoundInfo {
	dir := "/System/Library/Sounds"
	matches, err := filepath.Glob(filepath.Join(dir, "*.aiff"))
	if err != nil {
		return nil
	}

	var result []SoundInfo
	for _, path := range matches {
		name := strings.TrimSuffix(filepath.Base(path), ".aiff")
		result = append(result, SoundInfo{
			Name:        name,
			Path:        path,
			Format:      "aiff",
			Source:      "system",
			Description: descriptions[name],
		})
	}

	return result
}

// discoverLinuxSounds walks /usr/share/sounds/ for OGG and WAV files.
func discoverLinuxSounds(maxDepth int) []SoundInfo {
	baseDir := "/usr/share/sounds"
	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		return nil
	}

	var result []SoundInfo
	baseDepth := strings.Count(baseDir, string(os.PathSeparator))

	_ = filepath.WalkDir(baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors silently
		}

		// Limit depth
		currentDepth := strings.Count(path, string(os.PathSeparator)) - baseDepth
		if d.IsDir() && currentDepth >= maxDepth {
			return filepath.SkipDir
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".ogg" && ext != ".wav" {
			return nil
		}

		name := strings.TrimSuffix(filepath.Base(path), ext)
		result = append(result, SoundInfo{
			Name:   name,
			Path:   path,
			Format: ext[1:], // remove leading dot
			Source: "system",
		})

		return nil
	})

	return result
}

// discoverWindowsSounds finds WAV files in %SYSTEMROOT%/Media/.
func discoverWindowsSounds() []SoundInfo {
	sysRoot := os.Getenv("SYSTEMROOT")
	if sysRoot == "" {
		sysRoot = `C:\Windows`
	}

	dir := filepath.Join(sysRoot, "Media")
	matches, err := filepath.Glob(filepath.Join(dir, "*.wav"))
	if err != nil {
		return nil
	}

	var result []SoundInfo
	for _, path := range matches {
		name := strings.TrimSuffix(filepath.Base(path), ".wav")
		result = append(result, SoundInfo{
			Name:        name,
			Path:        path,
			Format:      "wav",
			Source:      "system",
			Description: descriptions[name],
		})
	}

	return result
}

// Resolve maps a configured sound name to a playable file path. An empty
// name or a name with no match resolves to "" (no sound).
func Resolve(name, soundDir string) string {
	if name = strings.TrimSpace(name); name == "" {
		return ""
	}
	// A path to an existing file is used as-is.
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name
	}
	available := Discover(DiscoverOptions{
		SoundDir:      soundDir,
		IncludeCustom: true,
		IncludeSystem: true,
	})
	if s, ok := FindByName(name, available); ok {
		return s.Path
	}
	return ""
}
