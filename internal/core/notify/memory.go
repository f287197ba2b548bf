package notify

import (
	"context"
	"sync"
)

// DefaultHistory is the number of notifications a Memory store keeps.
const DefaultHistory = 200

// Memory is a bounded in-process Store. Once full, the oldest notification is
// dropped on every Save.
type Memory struct {
	mu     sync.Mutex
	limit  int
	nextID int64
	items  []Notification
}

// NewMemory creates a store holding at most limit notifications. A limit <= 0
// uses DefaultHistory.
func NewMemory(limit int) *Memory {
	if limit <= 0 {
		limit = DefaultHistory
	}
	return &Memory{limit: limit}
}

func (m *Memory) Save(_ context.Context, n Notification) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	n.ID = m.nextID
	m.items = append(m.items, n)
	if len(m.items) > m.limit {
		m.items = append([]Notification(nil), m.items[len(m.items)-m.limit:]...)
	}
	return n.ID, nil
}

// List returns notifications newest first.
func (m *Memory) List(_ context.Context) ([]Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Notification, len(m.items))
	for i, n := range m.items {
		out[len(m.items)-1-i] = n
	}
	return out, nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	return nil
}

func (m *Memory) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), nil
}
