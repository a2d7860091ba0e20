// Package printer adapts the physical output device. The worker only
// depends on the narrow Device contract; the real hardware is an
// ESC/POS thermal receipt printer on a serial port.
package printer

import (
	"github.com/andymccutcheon/return-to-print/internal/errs"
	"github.com/andymccutcheon/return-to-print/internal/model"
)

// Device is the capability contract the delivery worker depends on.
// Connect errors mean the device is absent; Print errors mean it was
// present but failed mid-render. The worker maps both onto its
// Disconnected transition.
type Device interface {
	Connect() error
	Print(msg model.Message) error
	Close() error
}

// ErrNotConnected is returned by Print when Connect has not succeeded.
var ErrNotConnected = errs.New(errs.CodeDevice, "printer not connected")
