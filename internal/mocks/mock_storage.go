package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
)

// StoredObject is an object received by MockFileStorage
type StoredObject struct {
	Bucket      string
	Path        string
	ContentType string
	Data        []byte
}

// MockFileStorage implements domain.FileStorage in memory
type MockFileStorage struct {
	UploadFunc func(ctx context.Context, bucket, path string, r io.Reader, size int64, contentType string) error
	BaseURL    string

	mu      sync.Mutex
	objects []StoredObject
}

var _ domain.FileStorage = (*MockFileStorage)(nil)

func NewMockFileStorage() *MockFileStorage {
	return &MockFileStorage{BaseURL: "http://storage.test"}
}

func (m *MockFileStorage) Upload(ctx context.Context, bucket, path string, r io.Reader, size int64, contentType string) error {
	if m.UploadFunc != nil {
		if err := m.UploadFunc(ctx, bucket, path, r, size, contentType); err != nil {
			return err
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects = append(m.objects, StoredObject{Bucket: bucket, Path: path, ContentType: contentType, Data: data})
	return nil
}

func (m *MockFileStorage) PublicURL(bucket, path string) string {
	return m.BaseURL + "/" + bucket + "/" + path
}

// Objects returns the uploaded objects in order
func (m *MockFileStorage) Objects() []StoredObject {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]StoredObject(nil), m.objects...)
}
