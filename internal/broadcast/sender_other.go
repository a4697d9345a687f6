//go:build !windows

package broadcast

type unsupportedSender struct{}

// NewSender returns a Sender that always fails with ErrUnsupported.
func NewSender() Sender {
	return unsupportedSender{}
}

func (unsupportedSender) Send(Message) (bool, error) {
	return false, ErrUnsupported
}
