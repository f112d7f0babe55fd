package blobstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Memory is an in-memory Store used by tests and the workflow test
// harness. It is safe for concurrent use.
type Memory struct {
	mu         sync.RWMutex
	containers map[string]map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{containers: make(map[string]map[string][]byte)}
}

// Put seeds a blob without going through Upload. Test convenience.
func (m *Memory) Put(container, name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(container, name, data)
}

func (m *Memory) put(container, name string, data []byte) {
	blobs, ok := m.containers[container]
	if !ok {
		blobs = make(map[string][]byte)
		m.containers[container] = blobs
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	blobs[name] = cp
}

func (m *Memory) List(_ context.Context, container string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.containers[container]))
	for name := range m.containers[container] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *Memory) Size(_ context.Context, container, name string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.containers[container][name]
	if !ok {
		return 0, fmt.Errorf("size %s/%s: %w", container, name, ErrNotFound)
	}
	return int64(len(data)), nil
}

func (m *Memory) Download(_ context.Context, container, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.containers[container][name]
	if !ok {
		return nil, fmt.Errorf("download %s/%s: %w", container, name, ErrNotFound)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (m *Memory) Upload(_ context.Context, container, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(container, name, data)
	return nil
}

func (m *Memory) Delete(_ context.Context, container, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	blobs, ok := m.containers[container]
	if !ok {
		return fmt.Errorf("delete %s/%s: %w", container, name, ErrNotFound)
	}
	if _, ok := blobs[name]; !ok {
		return fmt.Errorf("delete %s/%s: %w", container, name, ErrNotFound)
	}
	delete(blobs, name)
	return nil
}

// Exists reports blob presence. Test convenience.
func (m *Memory) Exists(container, name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.containers[container][name]
	return ok
}
