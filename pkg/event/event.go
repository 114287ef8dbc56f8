// Package event implements the synchronous publish/subscribe core used by
// sparkle units, with directional forwarding (bubbling) between notifiers.
//
// Callbacks are identified by their *Listener. Wrap a function once with
// Listen and keep the pointer to unsubscribe it later:
//
//	l := event.Listen(func(e *event.Event) { ... })
//	n.Subscribe(event.Removed, l)
//	n.Unsubscribe(event.Removed, l)
package event

// Name identifies a kind of notification.
type Name string

// Notifications emitted by sparkle units.
const (
	// Removed is emitted by a unit after its root left the visual tree.
	Removed Name = "removed"
	// Added is emitted by a collection with the new member as payload.
	Added Name = "added"
	// Deleted is emitted by a collection with the deleted member as payload.
	Deleted Name = "deleted"
	// Ready is emitted by a unit once its template was spliced in.
	Ready Name = "ready"
	// Submit is emitted by a form when submission is requested. Preventing
	// its default cancels the submission.
	Submit Name = "submit"
	// Submitted is emitted by a form after submission.
	Submitted Name = "submitted"
)

// Event is a single notification travelling through one or more notifiers.
type Event struct {
	// Name is the kind of notification.
	Name Name
	// Target is the object the notification is about, usually the emitter.
	Target any
	// Payload is optional notification data.
	Payload any
	// Source is the notifier the event was first emitted on.
	Source *Notifier

	prevented bool
}

// PreventDefault asks the emitter to skip its default action.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether a subscriber called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// Listener wraps a callback so it has an identity.
type Listener struct {
	fn func(*Event)
}

// Listen wraps fn in a new Listener. Each call returns a distinct identity.
func Listen(fn func(*Event)) *Listener {
	return &Listener{fn: fn}
}

func (l *Listener) call(e *Event) {
	if l.fn != nil {
		l.fn(e)
	}
}
