package broadcast

import "sync"

// MockSender is a test double that records sent messages and returns canned results.
type MockSender struct {
	OK  bool
	Err error

	mu   sync.Mutex
	sent []Message
}

func (m *MockSender) Send(msg Message) (bool, error) {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	return m.OK, m.Err
}

// Sent returns the messages passed to Send, in order.
func (m *MockSender) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}
