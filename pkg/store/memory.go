package store

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-process Documents implementation for tests and for
// running without a writable home directory.
type Memory struct {
	mu       sync.Mutex
	docs     map[string][]byte
	watchers []chan Event

	// FailWrites makes every Write return this error when set.
	FailWrites error
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (m *Memory) Read(key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Write(key string, data []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.docs[key] = append([]byte(nil), data...)

	// Sends happen under the lock so Watch cannot close a channel mid-send.
	for _, w := range m.watchers {
		select {
		case w <- Event{Type: EventDocumentChanged, Key: key}:
		default:
		}
	}
	return nil
}

func (m *Memory) Erase(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}

func (m *Memory) Keys(_ context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.docs))
	for k := range m.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Watch emits an event for every Write until ctx is done.
func (m *Memory) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 16)
	m.mu.Lock()
	m.watchers = append(m.watchers, ch)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, w := range m.watchers {
			if w == ch {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}
