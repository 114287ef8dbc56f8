package core

import (
	"context"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/go-drift/sparkle/pkg/dispatch"
	"github.com/go-drift/sparkle/pkg/resource"
)

// Option configures a unit at construction.
type Option func(*settings)

type settings struct {
	root       *html.Node
	content    *html.Node
	template   string
	ctx        context.Context
	fetcher    resource.Fetcher
	dispatcher dispatch.Dispatcher
	data       map[string]any
}

func newSettings(opts []Option) *settings {
	s := &settings{}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}
	if s.fetcher == nil {
		s.fetcher = DefaultFetcher()
	}
	if s.dispatcher == nil {
		s.dispatcher = dispatch.Default()
	}
	return s
}

// WithRoot hands n to the unit as its visual root. The unit owns it from
// then on.
func WithRoot(n *html.Node) Option {
	return func(s *settings) { s.root = n }
}

// WithContent sets the node children are attached to. It is usually a
// descendant of the root.
func WithContent(n *html.Node) Option {
	return func(s *settings) { s.content = n }
}

// WithTemplate loads markup from locator into the root.
func WithTemplate(locator string) Option {
	return func(s *settings) { s.template = locator }
}

// WithContext bounds the template fetch.
func WithContext(ctx context.Context) Option {
	return func(s *settings) { s.ctx = ctx }
}

// WithFetcher sets the fetcher used for the template. It defaults to
// DefaultFetcher().
func WithFetcher(f resource.Fetcher) Option {
	return func(s *settings) { s.fetcher = f }
}

// WithDispatcher sets where template splices and readiness callbacks run.
func WithDispatcher(d dispatch.Dispatcher) Option {
	return func(s *settings) { s.dispatcher = d }
}

// WithData fills a Form once it is ready. Other units ignore it.
func WithData(data map[string]any) Option {
	return func(s *settings) { s.data = data }
}

var (
	defaultFetcher   resource.Fetcher
	defaultFetcherMu sync.RWMutex
)

// DefaultFetcher returns the fetcher used by units built without
// WithFetcher. Until SetDefaultFetcher or Configure is called it is an
// HTTPFetcher with a 30 second timeout.
func DefaultFetcher() resource.Fetcher {
	defaultFetcherMu.RLock()
	f := defaultFetcher
	defaultFetcherMu.RUnlock()
	if f != nil {
		return f
	}

	defaultFetcherMu.Lock()
	defer defaultFetcherMu.Unlock()
	if defaultFetcher == nil {
		defaultFetcher = resource.NewHTTPFetcher(30 * time.Second)
	}
	return defaultFetcher
}

// SetDefaultFetcher replaces the default fetcher. Passing nil restores the
// built-in HTTP fetcher.
func SetDefaultFetcher(f resource.Fetcher) {
	defaultFetcherMu.Lock()
	defaultFetcher = f
	defaultFetcherMu.Unlock()
}
