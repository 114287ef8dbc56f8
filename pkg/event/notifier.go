package event

import (
	"slices"
	"sync"

	"github.com/go-drift/sparkle/pkg/errors"
)

// Notifier holds subscribers per event name and an optional forwarding
// target.
//
// Emission is synchronous and runs subscribers in registration order over a
// snapshot: subscribing or unsubscribing during an emission affects only
// later emissions. A panicking subscriber is reported through
// errors.ReportPanic and the remaining subscribers still run.
//
// The subscriber table is guarded by a mutex so a notifier may be touched
// from a dispatcher goroutine, but callbacks never run under the lock.
type Notifier struct {
	mu        sync.Mutex
	owner     any
	listeners map[Name][]*Listener
	forward   *Notifier
}

// NewNotifier creates a notifier whose events carry owner as Target.
func NewNotifier(owner any) *Notifier {
	return &Notifier{owner: owner}
}

// Owner returns the object events from this notifier are about.
func (n *Notifier) Owner() any {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.owner
}

// SetOwner changes the Target of future events.
func (n *Notifier) SetOwner(owner any) {
	n.mu.Lock()
	n.owner = owner
	n.mu.Unlock()
}

// Subscribe registers l for name. Registering the same listener twice makes
// it fire twice.
func (n *Notifier) Subscribe(name Name, l *Listener) *Notifier {
	if l == nil {
		return n
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.listeners == nil {
		n.listeners = make(map[Name][]*Listener)
	}
	n.listeners[name] = append(n.listeners[name], l)
	return n
}

// On wraps fn, subscribes it for name and returns the listener.
func (n *Notifier) On(name Name, fn func(*Event)) *Listener {
	l := Listen(fn)
	n.Subscribe(name, l)
	return l
}

// Unsubscribe removes one registration of exactly l for name.
func (n *Notifier) Unsubscribe(name Name, l *Listener) *Notifier {
	n.mu.Lock()
	defer n.mu.Unlock()
	list := n.listeners[name]
	if i := slices.Index(list, l); i >= 0 {
		// copy so in-flight snapshots keep their view
		list = slices.Delete(slices.Clone(list), i, i+1)
		if len(list) == 0 {
			delete(n.listeners, name)
		} else {
			n.listeners[name] = list
		}
	}
	return n
}

// ForwardTo makes every later emission continue into target after local
// delivery. Pass nil to stop forwarding.
func (n *Notifier) ForwardTo(target *Notifier) *Notifier {
	n.mu.Lock()
	n.forward = target
	n.mu.Unlock()
	return n
}

// Forwarding returns the current forwarding target.
func (n *Notifier) Forwarding() *Notifier {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.forward
}

// Count returns the number of registrations for name.
func (n *Notifier) Count(name Name) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners[name])
}

// Reset drops every subscriber and the forwarding target.
func (n *Notifier) Reset() {
	n.mu.Lock()
	n.listeners = nil
	n.forward = nil
	n.mu.Unlock()
}

// Emit delivers a new event to the subscribers of name, then along the
// forwarding chain. It returns the event once delivery finished.
func (n *Notifier) Emit(name Name, payload any) *Event {
	e := &Event{Name: name, Target: n.Owner(), Payload: payload, Source: n}
	n.Dispatch(e)
	return e
}

// Dispatch delivers an existing event, keeping its Target and Source. Each
// notifier on the forwarding chain sees the event at most once, so a
// forwarding loop terminates.
func (n *Notifier) Dispatch(e *Event) {
	var seen []*Notifier
	for cur := n; cur != nil && !slices.Contains(seen, cur); {
		seen = append(seen, cur)
		next := cur.deliver(e)
		cur = next
	}
}

// deliver runs the local subscribers and returns the forwarding target.
func (n *Notifier) deliver(e *Event) *Notifier {
	n.mu.Lock()
	snapshot := n.listeners[e.Name]
	forward := n.forward
	n.mu.Unlock()

	for _, l := range snapshot {
		invoke(l, e)
	}
	return forward
}

func invoke(l *Listener, e *Event) {
	defer errors.Recover("event.Emit")
	l.call(e)
}
