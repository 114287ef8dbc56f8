package core

import (
	"github.com/go-drift/sparkle/pkg/errors"
	"github.com/go-drift/sparkle/pkg/event"
)

// Slot is a unit holding at most one child. Installing a new child removes
// and destroys the previous one. A child that removes itself or is
// destroyed empties the slot.
type Slot struct {
	*Unit

	current  Component
	listener *event.Listener
}

// NewSlot creates an empty slot.
func NewSlot(opts ...Option) *Slot {
	s := &Slot{Unit: New(opts...)}
	s.Bind(s)
	s.onTeardown(func() {
		s.current = nil
		s.listener = nil
	})
	return s
}

// Current returns the installed child, or nil.
func (s *Slot) Current() Component {
	return s.current
}

// Install replaces the current child with one built by build. The previous
// child is removed and destroyed before build runs.
func (s *Slot) Install(build Factory) (Component, error) {
	if s.Destroyed() {
		return nil, errors.InvalidOperation("core.Install", "slot is destroyed")
	}
	s.Clear()

	child, err := s.Emplace(build)
	if err != nil {
		return nil, err
	}

	s.current = child
	s.listener = child.Base().On(event.Removed, func(*event.Event) {
		if s.current == child {
			s.forget()
		}
	})
	child.Base().onTeardown(func() {
		if s.current == child {
			s.forget()
		}
	})
	return child, nil
}

// Clear removes and destroys the current child. It is a no-op on an empty
// slot.
func (s *Slot) Clear() *Slot {
	child := s.current
	if child == nil {
		return s
	}
	s.forget()
	s.Release(child)
	child.Remove(true)
	return s
}

func (s *Slot) forget() {
	if s.current != nil && s.listener != nil {
		s.current.Base().Notifier().Unsubscribe(event.Removed, s.listener)
	}
	s.current = nil
	s.listener = nil
}
