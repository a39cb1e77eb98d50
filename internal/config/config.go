// ABOUTME: Configuration for the notifyd daemon and CLI.
// ABOUTME: JSON config loaded via viper with NOTIFYD_* env overrides, plus defaults and validation.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/notifyd/notifyd/internal/platform"
)

// Config is the root configuration.
type Config struct {
	Server        ServerConfig        `mapstructure:"server" json:"server"`
	Notifications NotificationsConfig `mapstructure:"notifications" json:"notifications"`
	Activation    ActivationConfig    `mapstructure:"activation" json:"activation"`
	Logging       LoggingConfig       `mapstructure:"logging" json:"logging"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Listen string `mapstructure:"listen" json:"listen"` // host:port, loopback by default
}

// NotificationsConfig holds delivery settings.
type NotificationsConfig struct {
	Desktop DesktopConfig `mapstructure:"desktop" json:"desktop"`
}

// DesktopConfig holds desktop notification settings.
type DesktopConfig struct {
	Enabled     bool    `mapstructure:"enabled" json:"enabled"`
	Sound       bool    `mapstructure:"sound" json:"sound"`
	Volume      float64 `mapstructure:"volume" json:"volume"`           // 0.0-1.0, default 1.0
	AudioDevice string  `mapstructure:"audio_device" json:"audioDevice"` // empty = system default
	AppIcon     string  `mapstructure:"app_icon" json:"appIcon"`
	SoundDir    string  `mapstructure:"sound_dir" json:"soundDir"` // directory of notification sounds
	SoundName   string  `mapstructure:"sound_name" json:"soundName"`
}

// ActivationConfig tunes the click-to-focus machinery.
type ActivationConfig struct {
	SettleDelayMS          int     `mapstructure:"settle_delay_ms" json:"settleDelayMs"`
	MaxAttempts            int     `mapstructure:"max_attempts" json:"maxAttempts"`
	VisibilityAlphaMin     float64 `mapstructure:"visibility_alpha_min" json:"visibilityAlphaMin"`
	VisibilityMinDimension float64 `mapstructure:"visibility_min_dimension" json:"visibilityMinDimension"`
	MaxResolveDepth        int     `mapstructure:"max_resolve_depth" json:"maxResolveDepth"`
}

// LoggingConfig holds log destination and verbosity.
type LoggingConfig struct {
	Level      string `mapstructure:"level" json:"level"`
	File       string `mapstructure:"file" json:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" json:"maxSizeMb"`
	MaxBackups int    `mapstructure:"max_backups" json:"maxBackups"`
	MaxAgeDays int    `mapstructure:"max_age_days" json:"maxAgeDays"`
}

// Default returns a config with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen: "127.0.0.1:8000",
		},
		Notifications: NotificationsConfig{
			Desktop: DesktopConfig{
				Enabled: true,
				Sound:   true,
				Volume:  1.0,
			},
		},
		Activation: ActivationConfig{
			SettleDelayMS:          150,
			MaxAttempts:            2,
			VisibilityAlphaMin:     0.05,
			VisibilityMinDimension: 2.0,
			MaxResolveDepth:        20,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "notifyd", "config.json"), nil
}

// Load reads configuration from path. A missing file is not an error:
// defaults plus env overrides apply. Environment variables use the
// NOTIFYD_ prefix with underscores for nesting (NOTIFYD_SERVER_LISTEN).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("NOTIFYD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" && platform.FileExists(path) {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Expand environment variables in paths.
	cfg.Notifications.Desktop.AppIcon = platform.ExpandEnv(cfg.Notifications.Desktop.AppIcon)
	cfg.Notifications.Desktop.SoundDir = platform.ExpandEnv(cfg.Notifications.Desktop.SoundDir)
	cfg.Logging.File = platform.ExpandEnv(cfg.Logging.File)

	cfg.ApplyDefaults()
	return cfg, nil
}

// setDefaults registers every key with viper so env overrides apply even
// for keys absent from the config file.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.listen", d.Server.Listen)
	v.SetDefault("notifications.desktop.enabled", d.Notifications.Desktop.Enabled)
	v.SetDefault("notifications.desktop.sound", d.Notifications.Desktop.Sound)
	v.SetDefault("notifications.desktop.volume", d.Notifications.Desktop.Volume)
	v.SetDefault("notifications.desktop.audio_device", d.Notifications.Desktop.AudioDevice)
	v.SetDefault("notifications.desktop.app_icon", d.Notifications.Desktop.AppIcon)
	v.SetDefault("notifications.desktop.sound_dir", d.Notifications.Desktop.SoundDir)
	v.SetDefault("notifications.desktop.sound_name", d.Notifications.Desktop.SoundName)
	v.SetDefault("activation.settle_delay_ms", d.Activation.SettleDelayMS)
	v.SetDefault("activation.max_attempts", d.Activation.MaxAttempts)
	v.SetDefault("activation.visibility_alpha_min", d.Activation.VisibilityAlphaMin)
	v.SetDefault("activation.visibility_min_dimension", d.Activation.VisibilityMinDimension)
	v.SetDefault("activation.max_resolve_depth", d.Activation.MaxResolveDepth)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)
}

// ApplyDefaults fills in missing fields with default values.
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Server.Listen == "" {
		c.Server.Listen = d.Server.Listen
	}
	if c.Notifications.Desktop.Volume == 0 {
		c.Notifications.Desktop.Volume = d.Notifications.Desktop.Volume
	}
	if c.Activation.SettleDelayMS == 0 {
		c.Activation.SettleDelayMS = d.Activation.SettleDelayMS
	}
	if c.Activation.MaxAttempts == 0 {
		c.Activation.MaxAttempts = d.Activation.MaxAttempts
	}
	if c.Activation.VisibilityAlphaMin == 0 {
		c.Activation.VisibilityAlphaMin = d.Activation.VisibilityAlphaMin
	}
	if c.Activation.VisibilityMinDimension == 0 {
		c.Activation.VisibilityMinDimension = d.Activation.VisibilityMinDimension
	}
	if c.Activation.MaxResolveDepth == 0 {
		c.Activation.MaxResolveDepth = d.Activation.MaxResolveDepth
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Server.Listen); err != nil {
		return fmt.Errorf("invalid server listen address %q: %w", c.Server.Listen, err)
	}

	vol := c.Notifications.Desktop.Volume
	if vol < 0.0 || vol > 1.0 {
		return fmt.Errorf("desktop volume must be between 0.0 and 1.0 (got %.2f)", vol)
	}

	if c.Activation.SettleDelayMS < 0 {
		return fmt.Errorf("activation settle_delay_ms must be >= 0")
	}
	if c.Activation.MaxAttempts < 1 {
		return fmt.Errorf("activation max_attempts must be >= 1")
	}
	if c.Activation.VisibilityAlphaMin < 0 || c.Activation.VisibilityAlphaMin >= 1 {
		return fmt.Errorf("activation visibility_alpha_min must be in [0, 1)")
	}
	if c.Activation.VisibilityMinDimension <= 0 {
		return fmt.Errorf("activation visibility_min_dimension must be > 0")
	}
	if c.Activation.MaxResolveDepth < 1 {
		return fmt.Errorf("activation max_resolve_depth must be >= 1")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

// IsDesktopEnabled returns true if desktop notifications are enabled.
func (c *Config) IsDesktopEnabled() bool {
	return c.Notifications.Desktop.Enabled
}

// IsSoundEnabled returns true if notification sounds are enabled.
func (c *Config) IsSoundEnabled() bool {
	return c.Notifications.Desktop.Enabled && c.Notifications.Desktop.Sound
}
