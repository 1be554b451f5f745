package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
)

// Invocation is one recorded function call
type Invocation struct {
	Name string
	Body json.RawMessage
	// Done reports whether the context was already finished when the call arrived
	Done bool
}

// MockFunctionInvoker implements domain.FunctionInvoker
type MockFunctionInvoker struct {
	InvokeFunc func(ctx context.Context, name string, body any) ([]byte, error)

	mu    sync.Mutex
	calls []Invocation
}

var _ domain.FunctionInvoker = (*MockFunctionInvoker)(nil)

func NewMockFunctionInvoker() *MockFunctionInvoker {
	return &MockFunctionInvoker{}
}

func (m *MockFunctionInvoker) Invoke(ctx context.Context, name string, body any) ([]byte, error) {
	raw, _ := json.Marshal(body)
	m.mu.Lock()
	m.calls = append(m.calls, Invocation{Name: name, Body: raw, Done: ctx.Err() != nil})
	m.mu.Unlock()

	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, name, body)
	}
	return []byte(`{"success":true}`), nil
}

// Calls returns the recorded invocations
func (m *MockFunctionInvoker) Calls() []Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Invocation(nil), m.calls...)
}
