// Package broadcast sends a settings-change notification to every top-level
// window of the desktop session and reports whether the call succeeded.
package broadcast

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// Window-messaging values used by the notification.
const (
	HWNDBroadcast   uintptr = 0xFFFF
	WMSettingChange uintptr = 0x001A

	SMTONormal             uint32 = 0x0000
	SMTOBlock              uint32 = 0x0001
	SMTOAbortIfHung        uint32 = 0x0002
	SMTONoTimeoutIfNotHung uint32 = 0x0008
	SMTOErrorOnExit        uint32 = 0x0020
)

const (
	// DefaultTimeout bounds how long each recipient may take to respond.
	DefaultTimeout = 5000 * time.Millisecond
	// EnvironmentParam names the settings area that changed.
	EnvironmentParam = "Environment"
)

var (
	// ErrNotDelivered is returned when the broadcast call reports failure.
	ErrNotDelivered = errors.New("broadcast: notification not delivered")
	// ErrUnsupported is returned by the sender on platforms without a window-messaging subsystem.
	ErrUnsupported = errors.New("broadcast: window messaging is not available on this platform")
)

// Message describes a single SendMessageTimeout call.
type Message struct {
	Target  uintptr
	Msg     uintptr
	WParam  uintptr
	Param   string
	Flags   uint32
	Timeout time.Duration
}

// EnvironmentMessage returns the notification announcing a change to the
// system environment variables.
func EnvironmentMessage() Message {
	return Message{
		Target:  HWNDBroadcast,
		Msg:     WMSettingChange,
		Param:   EnvironmentParam,
		Flags:   SMTOAbortIfHung,
		Timeout: DefaultTimeout,
	}
}

// TimeoutMillis returns the timeout as the call expects it.
func (m Message) TimeoutMillis() uint32 {
	return uint32(m.Timeout / time.Millisecond)
}

// Validate reports whether the message can be sent.
func (m Message) Validate() error {
	if m.Msg == 0 {
		return errors.New("broadcast: message id is zero")
	}
	if m.Param == "" {
		return errors.New("broadcast: empty parameter")
	}
	if m.Timeout < time.Millisecond {
		return fmt.Errorf("broadcast: timeout %s is below one millisecond", m.Timeout)
	}
	if m.Timeout/time.Millisecond > math.MaxUint32 {
		return fmt.Errorf("broadcast: timeout %s is too large", m.Timeout)
	}
	return nil
}

// Sender performs the underlying OS call.
type Sender interface {
	// Send reports whether the call returned a non-zero result.
	Send(m Message) (bool, error)
}

// Notifier delivers a message through a Sender.
type Notifier struct {
	sender Sender
	logger *zap.Logger
}

// NewNotifier returns a Notifier. A nil logger discards output.
func NewNotifier(s Sender, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{sender: s, logger: logger}
}

// Notify sends m once. It blocks until every recipient has answered or has
// been skipped after m.Timeout.
func (n *Notifier) Notify(m Message) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("broadcast.Notify: %w", err)
	}

	n.logger.Debug("sending notification",
		zap.Uintptr("target", m.Target),
		zap.Uintptr("msg", m.Msg),
		zap.String("param", m.Param),
		zap.Uint32("flags", m.Flags),
		zap.Duration("timeout", m.Timeout),
	)

	start := time.Now()
	ok, err := n.sender.Send(m)
	elapsed := time.Since(start)
	if err != nil {
		n.logger.Warn("notification failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return fmt.Errorf("broadcast.Notify: %w", err)
	}
	if !ok {
		n.logger.Warn("notification not delivered", zap.Duration("elapsed", elapsed))
		return ErrNotDelivered
	}

	n.logger.Debug("notification delivered", zap.Duration("elapsed", elapsed))
	return nil
}
