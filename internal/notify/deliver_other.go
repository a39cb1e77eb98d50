//go:build !darwin && !linux

package notify

import "errors"

var errClickDeliveryUnsupported = errors.New("click-capable delivery not supported on this platform")

type noopDeliverer struct{}

// newPlatformDeliverer reports unsupported so Send falls back to beeep.
func newPlatformDeliverer(_ ClickRouter) deliverer {
	return noopDeliverer{}
}

func (noopDeliverer) deliver(Notification, string) error { return errClickDeliveryUnsupported }
func (noopDeliverer) close() error                       { return nil }
