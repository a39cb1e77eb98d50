package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Listen != "127.0.0.1:8000" {
		t.Errorf("Listen = %q, want 127.0.0.1:8000", cfg.Server.Listen)
	}
	if cfg.Activation.SettleDelayMS != 150 || cfg.Activation.MaxAttempts != 2 {
		t.Errorf("activation defaults = %+v", cfg.Activation)
	}
	if cfg.Activation.MaxResolveDepth != 20 {
		t.Errorf("MaxResolveDepth = %d, want 20", cfg.Activation.MaxResolveDepth)
	}
}

func TestLoad_PartialFileKeepsDefaultsForRest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"server": {"listen": "127.0.0.1:9000"},
		"activation": {"max_attempts": 3}
	}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Listen != "127.0.0.1:9000" {
		t.Errorf("Listen = %q, want override", cfg.Server.Listen)
	}
	if cfg.Activation.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.Activation.MaxAttempts)
	}
	if cfg.Activation.SettleDelayMS != 150 {
		t.Errorf("SettleDelayMS = %d, want default 150", cfg.Activation.SettleDelayMS)
	}
	if !cfg.Notifications.Desktop.Enabled {
		t.Error("desktop notifications default must stay enabled")
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted malformed JSON")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("NOTIFYD_SERVER_LISTEN", "127.0.0.1:8123")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Listen != "127.0.0.1:8123" {
		t.Errorf("Listen = %q, want env override", cfg.Server.Listen)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"bad listen", func(c *Config) { c.Server.Listen = "no-port" }, true},
		{"volume too high", func(c *Config) { c.Notifications.Desktop.Volume = 1.5 }, true},
		{"negative volume", func(c *Config) { c.Notifications.Desktop.Volume = -0.1 }, true},
		{"negative settle delay", func(c *Config) { c.Activation.SettleDelayMS = -1 }, true},
		{"zero attempts", func(c *Config) { c.Activation.MaxAttempts = 0 }, true},
		{"alpha out of range", func(c *Config) { c.Activation.VisibilityAlphaMin = 1.0 }, true},
		{"zero min dimension", func(c *Config) { c.Activation.VisibilityMinDimension = 0 }, true},
		{"zero resolve depth", func(c *Config) { c.Activation.MaxResolveDepth = 0 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"warn level ok", func(c *Config) { c.Logging.Level = "warn" }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Notifications.Desktop.Volume != 1.0 {
		t.Errorf("Volume = %v, want 1.0", cfg.Notifications.Desktop.Volume)
	}
	if cfg.Activation.VisibilityAlphaMin != 0.05 {
		t.Errorf("VisibilityAlphaMin = %v, want 0.05", cfg.Activation.VisibilityAlphaMin)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Logging.Level)
	}
}
