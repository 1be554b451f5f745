package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
)

// MockEmailSender implements domain.EmailSender and records sent messages
type MockEmailSender struct {
	SendEmailFunc func(ctx context.Context, msg domain.EmailMessage) (string, error)

	mu   sync.Mutex
	sent []domain.EmailMessage
}

var _ domain.EmailSender = (*MockEmailSender)(nil)

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

func (m *MockEmailSender) SendEmail(ctx context.Context, msg domain.EmailMessage) (string, error) {
	if m.SendEmailFunc != nil {
		id, err := m.SendEmailFunc(ctx, msg)
		if err != nil {
			return "", err
		}
		m.record(msg)
		return id, nil
	}
	n := m.record(msg)
	return fmt.Sprintf("email_%d", n), nil
}

func (m *MockEmailSender) record(msg domain.EmailMessage) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return len(m.sent)
}

// Sent returns the delivered messages in order
func (m *MockEmailSender) Sent() []domain.EmailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.EmailMessage(nil), m.sent...)
}

// MockSMSSender implements domain.SMSSender
type MockSMSSender struct {
	SendSMSFunc func(ctx context.Context, to, message string) error

	mu   sync.Mutex
	sent []string
}

var _ domain.SMSSender = (*MockSMSSender)(nil)

func NewMockSMSSender() *MockSMSSender {
	return &MockSMSSender{}
}

func (m *MockSMSSender) SendSMS(ctx context.Context, to, message string) error {
	if m.SendSMSFunc != nil {
		if err := m.SendSMSFunc(ctx, to, message); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to+": "+message)
	return nil
}

// Sent returns "to: message" entries in order
func (m *MockSMSSender) Sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}
