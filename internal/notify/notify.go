// ABOUTME: Desktop notification delivery service.
// ABOUTME: Picks the platform's click-capable path, falls back to beeep, and plays sounds async.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/notifyd/notifyd/internal/activation"
	"github.com/notifyd/notifyd/internal/audio"
	"github.com/notifyd/notifyd/internal/config"
	"github.com/notifyd/notifyd/internal/logging"
	"github.com/notifyd/notifyd/internal/platform"
	"github.com/notifyd/notifyd/internal/sounds"
)

// Notification is one desktop notification plus its click target.
type Notification struct {
	Title    string
	Subtitle string
	Body     string
	Target   activation.ActivationTarget
}

// ClickRouter handles a notification click.
type ClickRouter interface {
	OnClick(target activation.ActivationTarget, done func())
}

// deliverer is the platform-specific click-capable delivery path.
type deliverer interface {
	deliver(n Notification, appIcon string) error
	close() error
}

// Service sends desktop notifications.
type Service struct {
	cfg      *config.Config
	delivery deliverer

	audioPlayer *audio.Player
	playerInit  sync.Once
	playerErr   error

	mu      sync.Mutex
	wg      sync.WaitGroup
	closing bool // Prevents new sounds from being enqueued after Close() is called
}

// New creates a notification service. The router receives clicks on
// platforms where clicks are delivered in-process.
func New(cfg *config.Config, router ClickRouter) *Service {
	return &Service{
		cfg:      cfg,
		delivery: newPlatformDeliverer(router),
	}
}

// Send delivers a desktop notification. Click-capable delivery is tried
// first; on failure the notification still goes out via beeep, losing
// only the click action.
func (s *Service) Send(n Notification) error {
	if !s.cfg.IsDesktopEnabled() {
		logging.Debug("Desktop notifications disabled, skipping")
		return nil
	}

	appIcon := s.cfg.Notifications.Desktop.AppIcon
	if appIcon != "" && !platform.FileExists(appIcon) {
		logging.Warn("App icon not found: %s, using default", appIcon)
		appIcon = ""
	}

	if err := s.delivery.deliver(n, appIcon); err != nil {
		logging.Warn("Click-capable delivery failed, falling back to beeep: %v", err)
		if err := s.sendWithBeeep(n, appIcon); err != nil {
			return err
		}
	} else {
		logging.Debug("Desktop notification sent: title=%s", n.Title)
	}

	s.playSoundAsync()
	return nil
}

// sendWithBeeep sends the notification via beeep (cross-platform, no
// click action).
func (s *Service) sendWithBeeep(n Notification, appIcon string) error {
	// Platform-specific AppName handling:
	// - Windows: fixed AppName to prevent registry pollution (each unique
	//   AppName leaves a persistent notification-settings entry).
	// - macOS/Linux: unique AppName so notifications do not replace each
	//   other.
	originalAppName := beeep.AppName
	if platform.IsWindows() {
		beeep.AppName = "notifyd"
	} else {
		beeep.AppName = fmt.Sprintf("notifyd-%d", time.Now().UnixNano())
	}
	defer func() {
		beeep.AppName = originalAppName
	}()

	if err := beeep.Notify(n.Title, n.Body, appIcon); err != nil {
		logging.Error("Failed to send desktop notification: %v", err)
		return err
	}

	logging.Debug("Desktop notification sent via beeep: title=%s", n.Title)
	return nil
}

// playSoundAsync plays the configured sound asynchronously if enabled.
func (s *Service) playSoundAsync() {
	if !s.cfg.IsSoundEnabled() {
		return
	}
	desktop := s.cfg.Notifications.Desktop
	soundPath := sounds.Resolve(desktop.SoundName, desktop.SoundDir)
	if soundPath == "" {
		return
	}

	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		logging.Debug("Skipping sound playback: service is closing")
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logging.Error("Panic during sound playback: %v", r)
			}
		}()
		s.playSound(soundPath)
	}()
}

// initPlayer initializes the audio player once.
func (s *Service) initPlayer() error {
	s.playerInit.Do(func() {
		desktop := s.cfg.Notifications.Desktop
		player, err := audio.NewPlayer(desktop.AudioDevice, desktop.Volume)
		if err != nil {
			s.playerErr = err
			logging.Error("Failed to initialize audio player: %v", err)
			return
		}
		s.audioPlayer = player
		logging.Debug("Audio player initialized: device=%q volume=%.0f%%",
			desktop.AudioDevice, desktop.Volume*100)
	})
	return s.playerErr
}

// playSound plays a sound file using the audio module.
func (s *Service) playSound(soundPath string) {
	if !platform.FileExists(soundPath) {
		logging.Warn("Sound file not found: %s", soundPath)
		return
	}
	if err := s.initPlayer(); err != nil {
		return
	}
	if err := s.audioPlayer.Play(soundPath); err != nil {
		logging.Error("Failed to play sound %s: %v", soundPath, err)
	}
}

// Close waits for in-flight sounds and releases delivery resources.
func (s *Service) Close() error {
	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	if s.audioPlayer != nil {
		if err := s.audioPlayer.Close(); err != nil {
			logging.Warn("Failed to close audio player: %v", err)
		}
		s.audioPlayer = nil
	}
	s.mu.Unlock()

	return s.delivery.close()
}
