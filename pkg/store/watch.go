package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a storage change notification.
type EventType int

const (
	// EventDocumentChanged indicates the document stored under Key was
	// written or removed.
	EventDocumentChanged EventType = iota

	// EventDocumentsInvalidated signals that the watcher could not classify a
	// change and callers should reload everything they care about.
	EventDocumentsInvalidated
)

// Event is emitted by Documents.Watch when underlying storage changes.
type Event struct {
	Type EventType
	Key  string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	if err := watcher.Add(p.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		// The throttle flushes from its own timer goroutine; guard the send
		// so a late flush never races the close above.
		var sendMu sync.Mutex
		done := false
		defer func() {
			sendMu.Lock()
			done = true
			sendMu.Unlock()
		}()
		send := func(ev Event) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if done {
				return
			}
			select {
			case events <- ev:
			default:
				// Drop events if the consumer is not ready; the next read
				// picks up the latest document anyway.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Type: EventDocumentsInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				key := p.keyForPath(evt.Name)
				if key == "" {
					continue
				}
				throttle.Enqueue(Event{Type: EventDocumentChanged, Key: key}, send)
			}
		}
	}()

	return events, nil
}

// keyForPath maps a file under the base path back to its document key.
// Temporary and hidden files produce "".
func (p *persistence) keyForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return ""
	}
	if strings.Contains(rel, string(os.PathSeparator)) {
		return ""
	}
	if strings.HasPrefix(rel, ".") || strings.HasSuffix(rel, ".tmp") {
		return ""
	}
	return rel
}

// eventThrottle coalesces rapid change notifications so a burst of writes to
// the same document produces a single event.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[string]struct{})
	}
	t.pending[ev.Type][ev.Key] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	for eventType, keys := range pending {
		if len(keys) == 0 {
			send(Event{Type: eventType})
			continue
		}
		for key := range keys {
			send(Event{Type: eventType, Key: key})
		}
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
