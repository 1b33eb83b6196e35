package store

import (
	"context"
	"testing"
	"time"
)

func TestPersistenceWatchEmitsDocumentChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(&FileConfig{Path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to the directory before writing.
	time.Sleep(50 * time.Millisecond)

	if err := p.Write("app_preferences", []byte(`{"theme":"dark"}`)); err != nil {
		t.Fatalf("write document: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventDocumentsInvalidated {
				return
			}
			if evt.Type == EventDocumentChanged {
				if evt.Key != "app_preferences" {
					t.Fatalf("expected key 'app_preferences', got %q", evt.Key)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for document change event")
		}
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	th := newEventThrottle(20 * time.Millisecond)
	defer th.Stop()

	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }
	for i := 0; i < 3; i++ {
		th.Enqueue(Event{Type: EventDocumentChanged, Key: "a"}, send)
	}
	th.Enqueue(Event{Type: EventDocumentChanged, Key: "b"}, send)

	seen := map[string]int{}
	deadline := time.After(time.Second)
	for len(seen) < 2 {
		select {
		case ev := <-got:
			seen[ev.Key]++
		case <-deadline:
			t.Fatalf("timed out, saw %v", seen)
		}
	}
	time.Sleep(50 * time.Millisecond)
	if len(got) != 0 || seen["a"] != 1 {
		t.Fatalf("expected one event per key, saw %v and %d pending", seen, len(got))
	}
}
