//go:build linux

// ABOUTME: Linux click-capable delivery over D-Bus notification actions.
// ABOUTME: Maintains a notification-ID to activation-target map fed by ActionInvoked signals.
package notify

import (
	"fmt"
	"sync"
	"time"

	dnotify "github.com/esiqveland/notify"
	"github.com/godbus/dbus/v5"

	"github.com/notifyd/notifyd/internal/activation"
	"github.com/notifyd/notifyd/internal/logging"
)

type dbusDeliverer struct {
	router ClickRouter

	mu       sync.Mutex
	conn     *dbus.Conn
	notifier dnotify.Notifier
	targets  map[uint32]activation.ActivationTarget
}

func newPlatformDeliverer(router ClickRouter) deliverer {
	return &dbusDeliverer{
		router:  router,
		targets: make(map[uint32]activation.ActivationTarget),
	}
}

// ensure lazily connects to the session bus. Called under d.mu.
func (d *dbusDeliverer) ensure() error {
	if d.notifier != nil {
		return nil
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to D-Bus session bus: %w", err)
	}

	notifier, err := dnotify.New(conn,
		dnotify.WithOnAction(d.onActionInvoked),
		dnotify.WithOnClosed(d.onNotificationClosed),
	)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create notifier: %w", err)
	}

	d.conn = conn
	d.notifier = notifier
	return nil
}

func (d *dbusDeliverer) deliver(n Notification, appIcon string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensure(); err != nil {
		return err
	}

	body := n.Body
	if n.Subtitle != "" {
		body = n.Subtitle + "\n" + body
	}

	dn := dnotify.Notification{
		AppName:       "notifyd",
		AppIcon:       appIcon,
		Summary:       n.Title,
		Body:          body,
		ExpireTimeout: 30 * time.Second,
	}
	clickable := n.Target.ProcessID != nil || n.Target.HasCallbackURL()
	if clickable {
		dn.Actions = []dnotify.Action{
			{Key: "default", Label: "Open"},
		}
	}

	id, err := d.notifier.SendNotification(dn)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	if clickable {
		d.targets[id] = n.Target
	}
	logging.Debug("Notification sent over D-Bus: id=%d clickable=%v", id, clickable)
	return nil
}

// onActionInvoked is called when the user clicks a notification action.
func (d *dbusDeliverer) onActionInvoked(sig *dnotify.ActionInvokedSignal) {
	if sig.ActionKey != "default" {
		return
	}

	d.mu.Lock()
	target, exists := d.targets[sig.ID]
	delete(d.targets, sig.ID)
	d.mu.Unlock()

	if !exists {
		logging.Warn("No activation target for notification %d", sig.ID)
		return
	}
	if d.router == nil {
		return
	}
	d.router.OnClick(target, func() {
		logging.Debug("Click handling completed for notification %d", sig.ID)
	})
}

// onNotificationClosed drops the target when a notification is dismissed.
func (d *dbusDeliverer) onNotificationClosed(sig *dnotify.NotificationClosedSignal) {
	d.mu.Lock()
	delete(d.targets, sig.ID)
	d.mu.Unlock()
}

func (d *dbusDeliverer) close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.notifier != nil {
		_ = d.notifier.Close()
		d.notifier = nil
	}
	if d.conn != nil {
		_ = d.conn.Close()
		d.conn = nil
	}
	return nil
}
