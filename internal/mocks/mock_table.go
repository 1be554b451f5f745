package mocks

import (
	"context"
	"sync"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
)

// TableUpdate records one Update call
type TableUpdate[T any] struct {
	ID      string
	Row     T
	Columns []string
}

// MockTable implements domain.Table[T]. Without overrides inserts are recorded
// and echoed back by Select and Count.
type MockTable[T any] struct {
	TableName  string
	SelectFunc func(ctx context.Context, q domain.Query) ([]T, error)
	GetFunc    func(ctx context.Context, id string) (*T, error)
	InsertFunc func(ctx context.Context, row *T) error
	UpdateFunc func(ctx context.Context, id string, row *T, columns ...string) error
	DeleteFunc func(ctx context.Context, id string) error
	CountFunc  func(ctx context.Context, filters ...domain.Filter) (int64, error)

	mu       sync.Mutex
	inserted []T
	updates  []TableUpdate[T]
	deleted  []string
	queries  []domain.Query
}

// NewMockTable creates a MockTable for the named table
func NewMockTable[T any](name string) *MockTable[T] {
	return &MockTable[T]{TableName: name}
}

func (m *MockTable[T]) Name() string { return m.TableName }

func (m *MockTable[T]) Select(ctx context.Context, q domain.Query) ([]T, error) {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()
	if m.SelectFunc != nil {
		return m.SelectFunc(ctx, q)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]T(nil), m.inserted...), nil
}

func (m *MockTable[T]) Get(ctx context.Context, id string) (*T, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, &domain.DataError{Kind: domain.KindNotFound, Table: m.TableName, Op: "get", Err: domain.ErrNotFound}
}

func (m *MockTable[T]) Insert(ctx context.Context, row *T) error {
	if m.InsertFunc != nil {
		if err := m.InsertFunc(ctx, row); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserted = append(m.inserted, *row)
	return nil
}

func (m *MockTable[T]) Update(ctx context.Context, id string, row *T, columns ...string) error {
	if m.UpdateFunc != nil {
		if err := m.UpdateFunc(ctx, id, row, columns...); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, TableUpdate[T]{ID: id, Row: *row, Columns: columns})
	return nil
}

func (m *MockTable[T]) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		if err := m.DeleteFunc(ctx, id); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *MockTable[T]) Count(ctx context.Context, filters ...domain.Filter) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, filters...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.inserted)), nil
}

// Inserted returns the rows passed to successful Insert calls
func (m *MockTable[T]) Inserted() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]T(nil), m.inserted...)
}

// Updates returns the successful Update calls
func (m *MockTable[T]) Updates() []TableUpdate[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TableUpdate[T](nil), m.updates...)
}

// Deleted returns the ids passed to successful Delete calls
func (m *MockTable[T]) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

// Queries returns every Select query received
func (m *MockTable[T]) Queries() []domain.Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Query(nil), m.queries...)
}
