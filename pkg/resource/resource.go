// Package resource loads markup fragments asynchronously and splices them
// into the visual tree, with cooperative cancellation.
//
// A Resource starts fetching as soon as it is created. Its content can be
// spliced into any number of targets:
//
//	r := resource.Fetch(ctx, fetcher, "/card.html")
//	ready := r.SpliceInto(root)
//	...
//	r.Abort() // nothing is spliced after Abort returns
//
// Splices run as tasks on the resource's dispatcher. Once Abort returned, no
// splice of that resource touches its target, even if the transfer finishes
// in the background afterwards.
package resource

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/go-drift/sparkle/pkg/dispatch"
	"github.com/go-drift/sparkle/pkg/dom"
	"github.com/go-drift/sparkle/pkg/errors"
)

// State is the completion state of a Resource.
type State int

const (
	// Pending means the transfer has not finished.
	Pending State = iota
	// Fulfilled means the content is available.
	Fulfilled
	// Cancelled means Abort was called before the transfer finished.
	Cancelled
	// Failed means the transfer failed.
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures a Resource.
type Option func(*Resource)

// WithDispatcher sets where splices run. The default is dispatch.Default().
func WithDispatcher(d dispatch.Dispatcher) Option {
	return func(r *Resource) {
		if d != nil {
			r.dispatcher = d
		}
	}
}

// Resource is a single asynchronously fetched markup fragment.
type Resource struct {
	locator    string
	dispatcher dispatch.Dispatcher
	cancel     context.CancelFunc

	mu      sync.Mutex
	state   State
	aborted bool
	content string
	err     error
	done    chan struct{}
}

// Fetch starts loading locator with f and returns immediately.
func Fetch(ctx context.Context, f Fetcher, locator string, opts ...Option) *Resource {
	ctx, cancel := context.WithCancel(ctx)
	r := &Resource{
		locator:    locator,
		dispatcher: dispatch.Default(),
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if f == nil {
		r.finish("", fmt.Errorf("no fetcher configured"))
		return r
	}
	go r.run(ctx, f)
	return r
}

func (r *Resource) run(ctx context.Context, f Fetcher) {
	body, err := safeFetch(ctx, f, r.locator)
	r.finish(body, err)
}

func safeFetch(ctx context.Context, f Fetcher, locator string) (body string, err error) {
	defer errors.RecoverWithCallback("resource.Fetch", func(v any) {
		err = fmt.Errorf("fetcher panicked: %v", v)
	})
	return f.Fetch(ctx, locator)
}

// finish records the transfer outcome unless the resource already reached a
// terminal state.
func (r *Resource) finish(body string, err error) {
	defer r.cancel()

	r.mu.Lock()
	if r.state != Pending {
		r.mu.Unlock()
		Logger().Debug("transfer finished after abort", zap.String("locator", r.locator))
		return
	}
	switch {
	case err == nil:
		r.state = Fulfilled
		r.content = body
	case stderrors.Is(err, context.Canceled):
		r.state = Cancelled
		r.err = errors.Cancelled("resource.Fetch", r.locator)
	default:
		r.state = Failed
		r.err = errors.TransferFailed("resource.Fetch", r.locator, err)
	}
	state, failure := r.state, r.err
	close(r.done)
	r.mu.Unlock()

	switch state {
	case Fulfilled:
		Logger().Debug("resource fetched",
			zap.String("locator", r.locator),
			zap.String("size", humanize.Bytes(uint64(len(body)))))
	case Failed:
		var se *errors.SparkleError
		if errors.As(failure, &se) {
			errors.Report(se)
		}
	}
}

// Abort requests cancellation. It is idempotent. Before fulfillment it moves
// the resource to Cancelled; after fulfillment the state is kept, but splices
// that have not run yet are suppressed.
func (r *Resource) Abort() {
	r.mu.Lock()
	r.aborted = true
	if r.state == Pending {
		r.state = Cancelled
		r.err = errors.Cancelled("resource.Abort", r.locator)
		close(r.done)
	}
	r.mu.Unlock()
	r.cancel()
}

// Aborted reports whether Abort was called.
func (r *Resource) Aborted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.aborted
}

// Locator returns the source locator.
func (r *Resource) Locator() string {
	return r.locator
}

// State returns the current completion state.
func (r *Resource) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Done is closed once the resource reached a terminal state.
func (r *Resource) Done() <-chan struct{} {
	return r.done
}

// Err returns the failure of a terminal resource: errors.ErrCancelled or
// errors.ErrTransferFailed. It is nil while pending or when fulfilled.
func (r *Resource) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Content returns the fetched text once fulfilled.
func (r *Resource) Content() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content, r.state == Fulfilled
}

// Wait blocks until the resource is terminal or ctx is done and returns the
// content.
func (r *Resource) Wait(ctx context.Context) (string, error) {
	select {
	case <-r.done:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Fulfilled {
		return "", r.err
	}
	return r.content, nil
}

// SpliceInto moves the parsed content into target once the resource is
// fulfilled. The returned future succeeds after the nodes were moved and
// fails, with nothing spliced, if the fetch failed or the resource was
// aborted before the splice ran.
func (r *Resource) SpliceInto(target *html.Node) *Future {
	fut := NewFuture()
	go func() {
		<-r.done
		r.dispatcher.Dispatch(func() {
			if err := r.splice(target); err != nil {
				fut.Reject(err)
				return
			}
			fut.Resolve()
		})
	}()
	return fut
}

func (r *Resource) splice(target *html.Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.aborted {
		return errors.Cancelled("resource.SpliceInto", r.locator)
	}
	if r.state != Fulfilled {
		return r.err
	}
	n, err := dom.SpliceFragment(r.content, target)
	if err != nil {
		se := errors.New("resource.SpliceInto", errors.KindParsing, err)
		se.Locator = r.locator
		return se
	}
	Logger().Debug("resource spliced", zap.String("locator", r.locator), zap.Int("nodes", n))
	return nil
}
