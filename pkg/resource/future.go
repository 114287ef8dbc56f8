package resource

import (
	"context"
	"sync"
)

// Future is a single-shot awaitable. It settles exactly once, either
// successfully (Err returns nil) or with an error; later settle attempts
// are ignored.
//
// Callbacks registered with Then run synchronously on the goroutine that
// settles the future. Resources settle their futures from dispatcher tasks,
// so those callbacks run on the UI thread.
type Future struct {
	mu        sync.Mutex
	done      chan struct{}
	settled   bool
	err       error
	callbacks []func(error)
}

// NewFuture returns an unsettled future.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved returns a future that already succeeded.
func Resolved() *Future {
	f := NewFuture()
	f.Resolve()
	return f
}

// Rejected returns a future that already failed with err.
func Rejected(err error) *Future {
	f := NewFuture()
	f.Reject(err)
	return f
}

// Resolve settles the future successfully. It reports whether this call
// settled it.
func (f *Future) Resolve() bool {
	return f.settle(nil)
}

// Reject settles the future with err. It reports whether this call settled
// it.
func (f *Future) Reject(err error) bool {
	return f.settle(err)
}

func (f *Future) settle(err error) bool {
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		return false
	}
	f.settled = true
	f.err = err
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, cb := range callbacks {
		cb(err)
	}
	return true
}

// Done is closed once the future settled.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Settled reports whether the future settled.
func (f *Future) Settled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settled
}

// Err returns the failure of a settled future, or nil while pending or on
// success.
func (f *Future) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Wait blocks until the future settled or ctx is done.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Then registers fn to run with the outcome. If the future already settled,
// fn runs before Then returns.
func (f *Future) Then(fn func(err error)) {
	if fn == nil {
		return
	}
	f.mu.Lock()
	if !f.settled {
		f.callbacks = append(f.callbacks, fn)
		f.mu.Unlock()
		return
	}
	err := f.err
	f.mu.Unlock()
	fn(err)
}
