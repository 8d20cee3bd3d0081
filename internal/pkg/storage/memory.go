package storage

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Memory keeps objects in process. It backs local runs and tests.
type Memory struct {
	bucket string

	mu      sync.RWMutex
	objects map[string]memObject
}

type memObject struct {
	data        []byte
	contentType string
	updatedAt   time.Time
}

func NewMemory(bucket string) *Memory {
	return &Memory{bucket: bucket, objects: make(map[string]memObject)}
}

func (m *Memory) Put(_ context.Context, key string, data []byte, contentType string) (Object, error) {
	now := time.Now().UTC()

	m.mu.Lock()
	m.objects[key] = memObject{data: slices.Clone(data), contentType: contentType, updatedAt: now}
	m.mu.Unlock()

	return Object{Bucket: m.bucket, Key: key, Size: int64(len(data)), ContentType: contentType, UpdatedAt: now}, nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return slices.Clone(obj.data), nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }
