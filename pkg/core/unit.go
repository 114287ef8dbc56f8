package core

import (
	"context"
	"reflect"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/go-drift/sparkle/pkg/dispatch"
	"github.com/go-drift/sparkle/pkg/dom"
	"github.com/go-drift/sparkle/pkg/errors"
	"github.com/go-drift/sparkle/pkg/event"
	"github.com/go-drift/sparkle/pkg/resource"
)

// Component is implemented by Unit and every type embedding it.
type Component interface {
	// Base returns the embedded Unit.
	Base() *Unit
	// Destroy releases the component and everything it adopted.
	Destroy()
	// Remove detaches the root and optionally destroys the component.
	Remove(destroy bool)
	// Root returns the visual root.
	Root() *html.Node
	// Content returns the node children are attached to.
	Content() *html.Node
}

// Factory builds a new component. It is called exactly once per Emplace,
// Install or Add.
type Factory func() Component

// Of returns a factory creating plain units with opts.
func Of(opts ...Option) Factory {
	return func() Component { return New(opts...) }
}

// adoption is an adopted child together with the listener releasing it on
// removal.
type adoption struct {
	child    Component
	listener *event.Listener
}

// Unit is the base lifecycle object. The zero value is not usable; create
// units with New.
type Unit struct {
	self     Component
	root     *html.Node
	content  *html.Node
	notifier *event.Notifier

	resource *resource.Resource
	ready    *resource.Future

	ctx        context.Context
	fetcher    resource.Fetcher
	dispatcher dispatch.Dispatcher

	adopted   []adoption
	adopter   *Unit
	destroyed bool
	teardown  []func()
}

// New creates a unit. Without WithRoot a <div> root is created. With
// WithTemplate the fetch starts before New returns.
func New(opts ...Option) *Unit {
	return newUnit("div", newSettings(opts))
}

func newUnit(tag string, s *settings) *Unit {
	u := &Unit{
		root:       s.root,
		content:    s.content,
		ctx:        s.ctx,
		fetcher:    s.fetcher,
		dispatcher: s.dispatcher,
	}
	u.self = u
	if u.root == nil {
		u.root = dom.CreateElement(tag, nil)
	}
	if u.content == nil {
		u.content = u.root
	}
	u.notifier = event.NewNotifier(u)

	if s.template == "" {
		u.ready = resource.Resolved()
		return u
	}

	u.resource = resource.Fetch(u.ctx, u.fetcher, s.template, resource.WithDispatcher(u.dispatcher))
	u.ready = u.resource.SpliceInto(u.root)
	u.ready.Then(func(err error) {
		if err != nil {
			Logger().Debug("template not spliced",
				zap.String("template", s.template), zap.Error(err))
			return
		}
		u.notifier.Emit(event.Ready, nil)
	})
	return u
}

// Bind makes self the component this unit reports as event target. Types
// embedding *Unit call it from their constructor.
func (u *Unit) Bind(self Component) {
	if isNil(self) || self.Base() != u {
		return
	}
	u.self = self
	u.notifier.SetOwner(self)
}

// Base returns u.
func (u *Unit) Base() *Unit {
	return u
}

// Self returns the component bound to u, or u itself.
func (u *Unit) Self() Component {
	return u.self
}

// Root returns the visual root. It is never nil.
func (u *Unit) Root() *html.Node {
	return u.root
}

// Content returns the node children are attached to. It defaults to the root.
func (u *Unit) Content() *html.Node {
	return u.content
}

// Notifier returns the unit's event notifier.
func (u *Unit) Notifier() *event.Notifier {
	return u.notifier
}

// On subscribes fn to name on the unit's notifier.
func (u *Unit) On(name event.Name, fn func(*event.Event)) *event.Listener {
	return u.notifier.On(name, fn)
}

// Resource returns the template resource, or nil.
func (u *Unit) Resource() *resource.Resource {
	return u.resource
}

// Ready returns the readiness future. It is settled exactly once: at
// construction when there is no template, otherwise when the template was
// spliced or failed.
func (u *Unit) Ready() *resource.Future {
	return u.ready
}

// Destroyed reports whether Destroy was called.
func (u *Unit) Destroyed() bool {
	return u.destroyed
}

// Adopter returns the unit that adopted u, or nil.
func (u *Unit) Adopter() *Unit {
	return u.adopter
}

// Adopted returns the adopted children in adoption order.
func (u *Unit) Adopted() []Component {
	out := make([]Component, len(u.adopted))
	for i, a := range u.adopted {
		out[i] = a.child
	}
	return out
}

// Inherited returns options carrying u's context, fetcher and dispatcher,
// for building children that load templates the same way.
func (u *Unit) Inherited() []Option {
	return []Option{WithContext(u.ctx), WithFetcher(u.fetcher), WithDispatcher(u.dispatcher)}
}

func (u *Unit) indexOf(child *Unit) int {
	return slices.IndexFunc(u.adopted, func(a adoption) bool { return a.child.Base() == child })
}

// Adopt makes u responsible for destroying child. A child adopted elsewhere
// is released from its previous adopter first. Adopting twice is a no-op.
//
// Adopt fails with errors.ErrInvalidOperation when child is nil or
// destroyed, when u is destroyed, and when child is u or one of its
// adopters.
func (u *Unit) Adopt(child Component) (Component, error) {
	if isNil(child) {
		return nil, errors.InvalidOperation("core.Adopt", "nil child")
	}
	c := child.Base()
	switch {
	case u.destroyed:
		return nil, errors.InvalidOperation("core.Adopt", "adopter is destroyed")
	case c.destroyed:
		return nil, errors.InvalidOperation("core.Adopt", "child is destroyed")
	case c == u:
		return nil, errors.InvalidOperation("core.Adopt", "unit cannot adopt itself")
	}
	for a := u.adopter; a != nil; a = a.adopter {
		if a == c {
			return nil, errors.InvalidOperation("core.Adopt", "adopting an ancestor would create a cycle")
		}
	}

	if c.adopter == u {
		return child, nil
	}
	if c.adopter != nil {
		c.adopter.Release(child)
	}

	l := c.notifier.On(event.Removed, func(*event.Event) {
		u.Release(child)
	})
	u.adopted = append(u.adopted, adoption{child: child, listener: l})
	c.adopter = u
	return child, nil
}

// Release gives up ownership of child without destroying it. Releasing a
// child u does not hold is a no-op.
func (u *Unit) Release(child Component) Component {
	if isNil(child) {
		return child
	}
	c := child.Base()
	i := u.indexOf(c)
	if i < 0 {
		return child
	}
	c.notifier.Unsubscribe(event.Removed, u.adopted[i].listener)
	u.adopted = slices.Delete(u.adopted, i, i+1)
	c.adopter = nil
	return child
}

// Append places child's root under u's content anchor. It does not adopt.
func (u *Unit) Append(child Component) error {
	if isNil(child) {
		return errors.InvalidOperation("core.Append", "nil child")
	}
	return u.AppendNode(child.Root())
}

// AppendNode places n under u's content anchor, moving it if it is attached
// elsewhere.
func (u *Unit) AppendNode(n *html.Node) error {
	if err := dom.Append(u.content, n); err != nil {
		return errors.New("core.Append", errors.KindInvalidOperation, err)
	}
	return nil
}

// AppendTo places u's root under target's content anchor.
func (u *Unit) AppendTo(target Component) error {
	if isNil(target) {
		return errors.InvalidOperation("core.AppendTo", "nil target")
	}
	return u.AppendToNode(target.Content())
}

// AppendToNode places u's root under n.
func (u *Unit) AppendToNode(n *html.Node) error {
	if err := dom.Append(n, u.root); err != nil {
		return errors.New("core.AppendTo", errors.KindInvalidOperation, err)
	}
	return nil
}

// Emplace builds a child, adopts it and appends it. If the child cannot be
// adopted or appended it is destroyed and the error returned.
func (u *Unit) Emplace(build Factory) (Component, error) {
	child, err := u.build("core.Emplace", build)
	if err != nil {
		return nil, err
	}
	if _, err := u.Adopt(child); err != nil {
		child.Destroy()
		return nil, err
	}
	if err := u.Append(child); err != nil {
		u.Release(child)
		child.Destroy()
		return nil, err
	}
	return child, nil
}

func (u *Unit) build(op string, build Factory) (Component, error) {
	if build == nil {
		return nil, errors.InvalidOperation(op, "nil factory")
	}
	child := build()
	if isNil(child) {
		return nil, errors.InvalidOperation(op, "factory returned nil")
	}
	return child, nil
}

// onTeardown registers fn to run during Destroy, after adopted children were
// destroyed.
func (u *Unit) onTeardown(fn func()) {
	u.teardown = append(u.teardown, fn)
}

// Destroy destroys every adopted child in adoption order, aborts the
// template resource and drops all subscribers. It does not detach the root
// and emits nothing. Calling it again is a no-op.
func (u *Unit) Destroy() {
	if u.destroyed {
		return
	}
	u.destroyed = true

	if u.adopter != nil {
		u.adopter.Release(u.self)
	}

	adopted := u.adopted
	u.adopted = nil
	for _, a := range adopted {
		c := a.child.Base()
		c.notifier.Unsubscribe(event.Removed, a.listener)
		c.adopter = nil
		destroyChild(a.child)
	}

	for _, fn := range u.teardown {
		fn()
	}
	u.teardown = nil

	if u.resource != nil {
		u.resource.Abort()
	}
	u.notifier.Reset()

	Logger().Debug("unit destroyed", zap.Int("children", len(adopted)))
}

// destroyChild keeps a panicking child from stopping the cascade.
func destroyChild(c Component) {
	defer errors.Recover("core.Destroy")
	c.Destroy()
}

// Remove detaches the root from its parent and emits event.Removed, then
// destroys u when destroy is set. Detaching an already detached root is a
// no-op, but every call emits.
func (u *Unit) Remove(destroy bool) {
	dom.Detach(u.root)
	u.notifier.Emit(event.Removed, nil)
	if destroy {
		u.self.Destroy()
	}
}

func isNil(c Component) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
