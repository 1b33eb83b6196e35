package app

import (
	"fmt"
	"sync"
	"time"
)

// ToastTTL is how long a toast stays visible.
const ToastTTL = 5 * time.Second

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Toast is a transient notification.
type Toast struct {
	ID      int
	Message string
	Kind    Kind
	Created time.Time
	Expires time.Time
}

// Notifier keeps the visible toasts. Each toast is dismissed automatically
// after ToastTTL.
type Notifier struct {
	mu      sync.Mutex
	toasts  []Toast
	next    int
	changes chan struct{}

	now       func() time.Time
	afterFunc func(time.Duration, func())
}

func NewNotifier() *Notifier {
	return &Notifier{
		changes: make(chan struct{}, 1),
		now:     time.Now,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

func (n *Notifier) Notify(kind Kind, message string) Toast {
	n.mu.Lock()
	n.next++
	now := n.now()
	t := Toast{ID: n.next, Message: message, Kind: kind, Created: now, Expires: now.Add(ToastTTL)}
	n.toasts = append(n.toasts, t)
	n.signalLocked()
	n.mu.Unlock()

	id := t.ID
	n.afterFunc(ToastTTL, func() { n.Dismiss(id) })
	return t
}

func (n *Notifier) Successf(format string, args ...any) Toast {
	return n.Notify(KindSuccess, fmt.Sprintf(format, args...))
}

func (n *Notifier) Errorf(format string, args ...any) Toast {
	return n.Notify(KindError, fmt.Sprintf(format, args...))
}

func (n *Notifier) Warnf(format string, args ...any) Toast {
	return n.Notify(KindWarning, fmt.Sprintf(format, args...))
}

// Dismiss removes a toast. Unknown ids are ignored.
func (n *Notifier) Dismiss(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, t := range n.toasts {
		if t.ID == id {
			n.toasts = append(n.toasts[:i:i], n.toasts[i+1:]...)
			n.signalLocked()
			return
		}
	}
}

// Active returns the visible toasts, oldest first.
func (n *Notifier) Active() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Toast{}, n.toasts...)
}

// Changes receives a value whenever the toast list changes.
func (n *Notifier) Changes() <-chan struct{} {
	return n.changes
}

func (n *Notifier) signalLocked() {
	select {
	case n.changes <- struct{}{}:
	default:
	}
}
