// Package notify implements the active-device-changed observer list.
//
// Observers are called synchronously, in the order they subscribed, on the
// goroutine that publishes the change. An observer must not mutate the
// publisher while it is being notified; doing so is undefined.
package notify

import (
	"github.com/google/uuid"

	"github.com/dshills/glyphprompt/internal/prompt/device"
)

// Cause explains why the active device changed.
type Cause int

const (
	// CauseActivity means a device produced qualifying input.
	CauseActivity Cause = iota

	// CauseDisconnect means the active device went away and the default
	// device was chosen again.
	CauseDisconnect

	// CauseReset means the engine was reinitialized.
	CauseReset
)

// String returns the cause name.
func (c Cause) String() string {
	switch c {
	case CauseActivity:
		return "activity"
	case CauseDisconnect:
		return "disconnect"
	case CauseReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change is the payload of an active-device-changed notification.
type Change struct {
	// Device is the new active device, nil when no device is active.
	Device *device.Info

	// Cause is what triggered the change.
	Cause Cause
}

// Observer is called when the active device changes.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       string
	notifier *Notifier
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Unsubscribe removes this subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type entry struct {
	id       string
	observer Observer
}

// Notifier fans a change out to its observers in subscription order.
type Notifier struct {
	observers []entry
}

// New creates an empty Notifier.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers an observer. A nil observer is ignored and returns nil.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	if observer == nil {
		return nil
	}
	id := uuid.New().String()
	n.observers = append(n.observers, entry{id: id, observer: observer})
	return &Subscription{id: id, notifier: n}
}

// Notify delivers change to every observer.
func (n *Notifier) Notify(change Change) {
	// Snapshot so an observer unsubscribing itself does not skip a neighbour.
	observers := make([]entry, len(n.observers))
	copy(observers, n.observers)

	for _, e := range observers {
		e.observer(change)
	}
}

// Len returns the number of observers.
func (n *Notifier) Len() int {
	return len(n.observers)
}

// Clear removes every observer.
func (n *Notifier) Clear() {
	n.observers = nil
}

func (n *Notifier) unsubscribe(id string) {
	for i, e := range n.observers {
		if e.id == id {
			n.observers = append(n.observers[:i:i], n.observers[i+1:]...)
			return
		}
	}
}
