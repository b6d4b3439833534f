package mailer

import (
	"context"
	"sync"
)

// MockMailer records messages instead of sending them.
type MockMailer struct {
	mu   sync.Mutex
	sent []Message
}

// NewMockMailer constructs an empty recording mailer.
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// Send records the message and reports success.
func (m *MockMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

// Sent returns a copy of the recorded messages.
func (m *MockMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
