package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process. Values are stored serialized so
// callers never share maps with the store.
type MemoryStore struct {
	mu   sync.Mutex
	rows map[string]memoryRow
	now  func() time.Time
}

type memoryRow struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]memoryRow), now: time.Now}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	row, ok := m.rows[id]
	m.mu.Unlock()
	if !ok || !m.now().Before(row.expiresAt) {
		return nil, ErrNotFound
	}
	values, err := decodeValues(row.data)
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, Values: values, ExpiresAt: row.expiresAt}, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	data, err := encodeValues(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.rows[s.ID] = memoryRow{data: data, expiresAt: s.ExpiresAt}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *MemoryStore) PurgeExpired(_ context.Context) (int64, error) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, row := range m.rows {
		if !now.Before(row.expiresAt) {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
