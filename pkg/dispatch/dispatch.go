// Package dispatch schedules callbacks onto the single logical thread of
// control that owns the visual tree.
//
// Unit operations are synchronous. The only work that completes elsewhere is
// a resource fetch, and its effects (splicing, readiness) are handed to a
// Dispatcher so they run where the caller expects visual mutations to run.
//
// Until a UI loop installs its own dispatcher with Register, Default returns
// the process-wide Main queue. The goroutine owning the visual tree turns it:
//
//	go fetchStuff()
//	dispatch.RunUntil(ctx, unit.Ready().Done())
//
// Inline runs callbacks on whatever goroutine completes the work. Use it
// only where nothing else touches the tree concurrently.
package dispatch

import (
	"context"
	"sync"
)

// Dispatcher runs callbacks on the UI thread.
type Dispatcher interface {
	Dispatch(callback func())
}

// Func adapts a plain function to a Dispatcher.
type Func func(callback func())

// Dispatch calls f(callback).
func (f Func) Dispatch(callback func()) {
	f(callback)
}

// Inline runs every callback immediately on the calling goroutine.
var Inline Dispatcher = Func(func(callback func()) { callback() })

var (
	dispatchMu sync.RWMutex
	registered Dispatcher

	mainQueue = NewQueue(64)
)

// Main returns the process-wide queue used while no dispatcher is
// registered.
func Main() *Queue {
	return mainQueue
}

// Register sets the dispatcher returned by Default. This should be called
// once during initialization by whatever owns the UI loop. Passing nil
// restores Main.
func Register(d Dispatcher) {
	dispatchMu.Lock()
	registered = d
	dispatchMu.Unlock()
}

// Default returns the registered dispatcher, or Main.
func Default() Dispatcher {
	dispatchMu.RLock()
	d := registered
	dispatchMu.RUnlock()
	if d == nil {
		return mainQueue
	}
	return d
}

// Drain runs the pending tasks of Main.
func Drain() int {
	return mainQueue.Drain()
}

// Run turns Main until ctx is done.
func Run(ctx context.Context) error {
	return mainQueue.Run(ctx)
}

// RunUntil turns Main until done is closed or ctx is done.
func RunUntil(ctx context.Context, done <-chan struct{}) error {
	return mainQueue.RunUntil(ctx, done)
}
