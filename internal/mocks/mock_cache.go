package mocks

import (
	"context"
	"time"
)

// MockCache is an in-memory stand-in for the redis-backed catalog cache.
type MockCache struct {
	Values map[string][]byte

	Gets       []string
	Sets       []string
	Deletes    []string
	FailReads  bool
	FailWrites error
}

func NewMockCache() *MockCache {
	return &MockCache{Values: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.Gets = append(m.Gets, key)

	if m.FailReads {
		return nil, false, context.DeadlineExceeded
	}

	value, ok := m.Values[key]

	return value, ok, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.Sets = append(m.Sets, key)

	if m.FailWrites != nil {
		return m.FailWrites
	}

	m.Values[key] = value

	return nil
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	m.Deletes = append(m.Deletes, keys...)

	for _, key := range keys {
		delete(m.Values, key)
	}

	return nil
}
