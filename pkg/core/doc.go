// Package core provides units: objects that own a piece of the visual tree,
// adopt other units, and tear them down together.
//
// # Units
//
// A Unit owns a root node and an optional content anchor where children are
// attached. Ownership and placement are separate:
//
//	parent := core.New()
//	child := core.New()
//	parent.Adopt(child)  // parent.Destroy() now destroys child
//	parent.Append(child) // child's root is placed under parent's content
//
// Emplace does both for a freshly built child:
//
//	card, err := core.EmplaceAs(parent, func() *core.Unit {
//	    return core.New(core.WithTemplate("/card.html"))
//	})
//
// # Lifecycle
//
// Remove detaches the root and emits event.Removed; Destroy releases the
// template resource and cascades to adopted units in adoption order. The two
// are independent, and Remove(true) chains them:
//
//	u.Remove(false) // detached, still alive
//	u.Remove(true)  // detached and destroyed
//
// Destroy is idempotent and emits nothing.
//
// # Readiness
//
// A unit built with WithTemplate fetches the template right away and splices
// it into its root. Ready returns a future settled once that finished:
//
//	u.Ready().Then(func(err error) { ... })
//
// Units without a template are ready immediately. Destroying a unit before
// its template arrived rejects readiness with errors.ErrCancelled.
//
// # Specializations
//
// Slot holds at most one child and replaces it on Install. Collection holds
// any number of members and emits event.Added and event.Deleted. Form wraps
// a <form> root and reads and fills its fields.
//
// Units are not safe for concurrent use. Operations run on a single logical
// thread; template splices are delivered through a dispatch.Dispatcher. By
// default that is dispatch.Main, turned by the goroutine owning the tree:
//
//	u := core.New(core.WithTemplate("/card.html"))
//	err := dispatch.RunUntil(ctx, u.Ready().Done())
package core
