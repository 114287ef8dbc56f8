package resource

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Fetcher loads the text behind a locator.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) (string, error)
}

// FetcherFunc adapts a function to a Fetcher.
type FetcherFunc func(ctx context.Context, locator string) (string, error)

// Fetch calls f(ctx, locator).
func (f FetcherFunc) Fetch(ctx context.Context, locator string) (string, error) {
	return f(ctx, locator)
}

// HTTPFetcher fetches locators with a single GET request.
type HTTPFetcher struct {
	client *http.Client
	base   *url.URL
}

// NewHTTPFetcher creates a fetcher with the given request timeout.
// A zero timeout means no timeout beyond the caller's context.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithBaseURL resolves relative locators against base.
func (f *HTTPFetcher) WithBaseURL(base string) (*HTTPFetcher, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", base, err)
	}
	f.base = u
	return f, nil
}

// WithClient replaces the HTTP client.
func (f *HTTPFetcher) WithClient(c *http.Client) *HTTPFetcher {
	f.client = c
	return f
}

// Fetch GETs the locator and returns the response body.
// Any status other than 200 is a failure.
func (f *HTTPFetcher) Fetch(ctx context.Context, locator string) (string, error) {
	target, err := f.resolve(locator)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch failed: %s returned %s", target, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}

func (f *HTTPFetcher) resolve(locator string) (string, error) {
	if f.base == nil {
		return locator, nil
	}
	ref, err := url.Parse(locator)
	if err != nil {
		return "", fmt.Errorf("invalid locator %q: %w", locator, err)
	}
	return f.base.ResolveReference(ref).String(), nil
}

// FSFetcher reads locators as paths inside a file system. A leading slash
// and a file: scheme are ignored.
type FSFetcher struct {
	FS fs.FS
}

// Fetch reads the file named by locator.
func (f FSFetcher) Fetch(ctx context.Context, locator string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := strings.TrimPrefix(locator, "file://")
	name = strings.TrimPrefix(name, "file:")
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	data, err := fs.ReadFile(f.FS, name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}

// Mux routes locators to fetchers by URI scheme. Locators without a scheme
// go to Default.
type Mux struct {
	Default Fetcher
	schemes map[string]Fetcher
}

// NewMux creates a mux with the given default fetcher.
func NewMux(def Fetcher) *Mux {
	return &Mux{Default: def, schemes: make(map[string]Fetcher)}
}

// Handle routes scheme to f.
func (m *Mux) Handle(scheme string, f Fetcher) *Mux {
	m.schemes[strings.ToLower(scheme)] = f
	return m
}

// Fetch forwards to the fetcher registered for the locator's scheme.
func (m *Mux) Fetch(ctx context.Context, locator string) (string, error) {
	scheme := ""
	if u, err := url.Parse(locator); err == nil {
		scheme = strings.ToLower(u.Scheme)
	}
	if f, ok := m.schemes[scheme]; ok {
		return f.Fetch(ctx, locator)
	}
	if m.Default == nil {
		return "", fmt.Errorf("no fetcher for scheme %q", scheme)
	}
	return m.Default.Fetch(ctx, locator)
}

// CachingFetcher remembers successful fetches. Entries are keyed by the
// xxhash digest of the locator.
type CachingFetcher struct {
	next    Fetcher
	mu      sync.RWMutex
	entries map[uint64]cacheEntry
}

type cacheEntry struct {
	locator string
	body    string
}

// NewCachingFetcher wraps next with a cache.
func NewCachingFetcher(next Fetcher) *CachingFetcher {
	return &CachingFetcher{next: next, entries: make(map[uint64]cacheEntry)}
}

// Fetch returns the cached body or fetches and caches it.
func (c *CachingFetcher) Fetch(ctx context.Context, locator string) (string, error) {
	key := xxhash.Sum64String(locator)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && entry.locator == locator {
		return entry.body, nil
	}

	body, err := c.next.Fetch(ctx, locator)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{locator: locator, body: body}
	c.mu.Unlock()
	return body, nil
}

// Invalidate drops the cached body of locator.
func (c *CachingFetcher) Invalidate(locator string) {
	key := xxhash.Sum64String(locator)
	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && entry.locator == locator {
		delete(c.entries, key)
	}
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *CachingFetcher) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
