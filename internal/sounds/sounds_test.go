package sounds

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeSoundDir creates a temp directory populated with empty sound files.
func writeSoundDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestDiscoverCustom(t *testing.T) {
	dir := writeSoundDir(t, "chime.mp3", "ding.wav", "notes.txt")

	sounds := Discover(DiscoverOptions{
		SoundDir:      dir,
		IncludeCustom: true,
	})

	if len(sounds) != 2 {
		t.Fatalf("expected 2 custom sounds, got %d", len(sounds))
	}
	byName := map[string]SoundInfo{}
	for _, s := range sounds {
		if s.Source != "custom" {
			t.Errorf("sound %s: expected source=custom, got %s", s.Name, s.Source)
		}
		if s.Path == "" {
			t.Errorf("sound %s: path is empty", s.Name)
		}
		byName[s.Name] = s
	}
	if byName["chime"].Format != "mp3" {
		t.Errorf("chime format = %q, want mp3", byName["chime"].Format)
	}
	if byName["ding"].Format != "wav" {
		t.Errorf("ding format = %q, want wav", byName["ding"].Format)
	}
}

func TestDiscoverCustom_MissingDir(t *testing.T) {
	sounds := Discover(DiscoverOptions{
		SoundDir:      "/nonexistent/path/that/does/not/exist",
		IncludeCustom: true,
	})
	if len(sounds) != 0 {
		t.Errorf("expected no sounds from missing dir, got %d", len(sounds))
	}
}

func TestDiscoverCustom_EmptyDirConfigured(t *testing.T) {
	sounds := Discover(DiscoverOptions{IncludeCustom: true})
	if len(sounds) != 0 {
		t.Errorf("expected no sounds without a sound dir, got %d", len(sounds))
	}
}

func TestListSystem(t *testing.T) {
	sounds := Discover(DiscoverOptions{IncludeSystem: true})

	switch runtime.GOOS {
	case "darwin":
		if len(sounds) == 0 {
			t.Error("expected system sounds on macOS, got none")
		}
		for _, s := range sounds {
			if s.Source != "system" {
				t.Errorf("expected source=system, got %s", s.Source)
			}
			if s.Format != "aiff" {
				t.Errorf("expected format=aiff on macOS, got %s", s.Format)
			}
		}
	case "linux":
		// Linux may or may not have system sounds
		t.Logf("found %d system sounds on Linux", len(sounds))
	case "windows":
		t.Logf("found %d system sounds on Windows", len(sounds))
	}
}

func TestFindByName_CaseInsensitive(t *testing.T) {
	dir := writeSoundDir(t, "task-complete.mp3", "question.mp3")
	sounds := Discover(DiscoverOptions{SoundDir: dir, IncludeCustom: true})

	tests := []struct {
		input    string
		expected string
	}{
		{"task-complete", "task-complete"},
		{"Task-Complete", "task-complete"},
		{"QUESTION", "question"},
	}

	for _, tc := range tests {
		s, found := FindByName(tc.input, sounds)
		if !found {
			t.Errorf("FindByName(%q): not found", tc.input)
			continue
		}
		if s.Name != tc.expected {
			t.Errorf("FindByName(%q): expected %q, got %q", tc.input, tc.expected, s.Name)
		}
	}
}

func TestFindByName_PrefixMatch(t *testing.T) {
	dir := writeSoundDir(t, "task-complete.mp3")
	sounds := Discover(DiscoverOptions{SoundDir: dir, IncludeCustom: true})

	s, found := FindByName("task", sounds)
	if !found {
		t.Fatal("prefix match should find 'task-complete'")
	}
	if s.Name != "task-complete" {
		t.Errorf("expected 'task-complete', got %q", s.Name)
	}
}

func TestFindByName_PrioritizeCustom(t *testing.T) {
	// System first in slice, custom second — custom should still win at every level
	list := []SoundInfo{
		{Name: "test-sound", Source: "system", Path: "/sys/test.aiff"},
		{Name: "test-sound", Source: "custom", Path: "/custom/test.mp3"},
	}

	for _, query := range []string{"test-sound", "Test-Sound", "test-so"} {
		s, found := FindByName(query, list)
		if !found {
			t.Fatalf("FindByName(%q): not found", query)
		}
		if s.Source != "custom" {
			t.Errorf("FindByName(%q) should prefer custom, got source=%s", query, s.Source)
		}
	}
}

func TestFindByName_NotFound(t *testing.T) {
	dir := writeSoundDir(t, "chime.mp3")
	sounds := Discover(DiscoverOptions{SoundDir: dir, IncludeCustom: true})

	if _, found := FindByName("nonexistent-sound-xyz", sounds); found {
		t.Error("FindByName should return false for nonexistent sound")
	}
}

func TestFindByName_EmptyList(t *testing.T) {
	if _, found := FindByName("any", []SoundInfo{}); found {
		t.Error("should not find in empty list")
	}
}

func TestDiscoverSorted(t *testing.T) {
	dir := writeSoundDir(t, "zeta.mp3", "alpha.mp3", "mid.wav")
	result := Discover(DiscoverOptions{
		SoundDir:      dir,
		IncludeCustom: true,
		IncludeSystem: true,
	})

	// Custom should come before system
	seenSystem := false
	for _, s := range result {
		if s.Source == "system" {
			seenSystem = true
		}
		if s.Source == "custom" && seenSystem {
			t.Error("custom sounds should come before system sounds")
			break
		}
	}

	// Within each group, names should be sorted
	var lastCustom, lastSystem string
	for _, s := range result {
		switch s.Source {
		case "custom":
			if s.Name < lastCustom {
				t.Errorf("custom sounds not sorted: %q after %q", s.Name, lastCustom)
			}
			lastCustom = s.Name
		case "system":
			if s.Name < lastSystem {
				t.Errorf("system sounds not sorted: %q after %q", s.Name, lastSystem)
			}
			lastSystem = s.Name
		}
	}
}

func TestResolve(t *testing.T) {
	dir := writeSoundDir(t, "chime.mp3")

	if got := Resolve("", dir); got != "" {
		t.Errorf("Resolve(empty) = %q, want \"\"", got)
	}
	if got := Resolve("chime", dir); got != filepath.Join(dir, "chime.mp3") {
		t.Errorf("Resolve(chime) = %q", got)
	}
	if got := Resolve("no-such-sound-xyz", dir); got != "" {
		t.Errorf("Resolve(missing) = %q, want \"\"", got)
	}
	// An existing file path is passed through untouched.
	direct := filepath.Join(dir, "chime.mp3")
	if got := Resolve(direct, ""); got != direct {
		t.Errorf("Resolve(path) = %q, want %q", got, direct)
	}
}
