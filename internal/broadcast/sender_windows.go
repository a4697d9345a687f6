//go:build windows

package broadcast

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSendMessageTimeoutW = user32.NewProc("SendMessageTimeoutW")
)

type windowSender struct{}

// NewSender returns a Sender backed by user32!SendMessageTimeoutW.
func NewSender() Sender {
	return windowSender{}
}

func (windowSender) Send(m Message) (bool, error) {
	if err := procSendMessageTimeoutW.Find(); err != nil {
		return false, fmt.Errorf("broadcast: load SendMessageTimeoutW: %w", err)
	}
	param, err := windows.UTF16PtrFromString(m.Param)
	if err != nil {
		return false, fmt.Errorf("broadcast: encode parameter: %w", err)
	}

	var result uintptr
	r, _, _ := procSendMessageTimeoutW.Call(
		m.Target,
		m.Msg,
		m.WParam,
		uintptr(unsafe.Pointer(param)),
		uintptr(m.Flags),
		uintptr(m.TimeoutMillis()),
		uintptr(unsafe.Pointer(&result)),
	)
	runtime.KeepAlive(param)
	return r != 0, nil
}
