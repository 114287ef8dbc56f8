package core

import (
	"iter"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/go-drift/sparkle/pkg/dom"
	"github.com/go-drift/sparkle/pkg/errors"
	"github.com/go-drift/sparkle/pkg/event"
)

// Collection is a unit holding any number of member units. Members are
// adopted when added, so destroying the collection destroys them.
//
// Add emits event.Added with the member as payload. Delete emits
// event.Deleted only when it detached the member's root from the content
// anchor. A member that removed itself leaves without a Deleted
// notification, and so does a member that was destroyed.
type Collection struct {
	*Unit

	members   mapset.Set[Component]
	listeners map[*Unit]*event.Listener
}

// NewCollection creates an empty collection.
func NewCollection(opts ...Option) *Collection {
	c := &Collection{
		Unit:      New(opts...),
		members:   mapset.NewThreadUnsafeSet[Component](),
		listeners: make(map[*Unit]*event.Listener),
	}
	c.Bind(c)
	c.onTeardown(func() {
		c.members.Clear()
		clear(c.listeners)
	})
	return c
}

// Add builds a member, adopts it and appends it.
func (c *Collection) Add(build Factory) (Component, error) {
	if c.Destroyed() {
		return nil, errors.InvalidOperation("core.Add", "collection is destroyed")
	}
	member, err := c.Emplace(build)
	if err != nil {
		return nil, err
	}

	c.members.Add(member)
	c.listeners[member.Base()] = member.Base().On(event.Removed, func(*event.Event) {
		c.Delete(member)
	})
	member.Base().onTeardown(func() {
		c.forget(member)
	})
	c.Notifier().Emit(event.Added, member)
	return member, nil
}

// Delete drops member from the collection, releases it and detaches its
// root if it is still under the content anchor. It reports whether member
// belonged to the collection. The member is not destroyed.
func (c *Collection) Delete(member Component) bool {
	if isNil(member) || !c.members.Contains(member) {
		return false
	}
	c.forget(member)
	c.Release(member)

	if dom.DetachFrom(c.Content(), member.Root()) {
		c.Notifier().Emit(event.Deleted, member)
	}
	return true
}

// forget drops member from the bookkeeping without touching the tree.
func (c *Collection) forget(member Component) {
	base := member.Base()
	if l, ok := c.listeners[base]; ok {
		base.Notifier().Unsubscribe(event.Removed, l)
		delete(c.listeners, base)
	}
	c.members.Remove(member)
}

// Clear deletes every member.
func (c *Collection) Clear() *Collection {
	for _, m := range c.members.ToSlice() {
		c.Delete(m)
	}
	return c
}

// Has reports whether member belongs to the collection.
func (c *Collection) Has(member Component) bool {
	return !isNil(member) && c.members.Contains(member)
}

// Len returns the number of members.
func (c *Collection) Len() int {
	return c.members.Cardinality()
}

// Members returns a sequence over the members present when iteration
// starts. The order is unspecified. Adding or deleting members while
// iterating does not affect a running iteration.
func (c *Collection) Members() iter.Seq[Component] {
	return func(yield func(Component) bool) {
		for _, m := range c.members.ToSlice() {
			if !yield(m) {
				return
			}
		}
	}
}
