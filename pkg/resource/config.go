package resource

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-drift/sparkle/pkg/config"
)

// NewFetcher builds the fetcher stack described by cfg:
//
//   - http and https locators go to an HTTPFetcher resolving against BaseURL
//   - file locators go to an FSFetcher over Root, when Root is set
//   - other locators go to HTTP when BaseURL is set, otherwise to Root
//
// The stack is wrapped in a CachingFetcher when Cache is set and in an
// InstrumentedFetcher registered with reg when Metrics is set.
func NewFetcher(cfg config.Fetch, reg prometheus.Registerer) (Fetcher, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	web := NewHTTPFetcher(timeout)
	if cfg.BaseURL != "" {
		if web, err = web.WithBaseURL(cfg.BaseURL); err != nil {
			return nil, err
		}
	}

	mux := NewMux(web).Handle("http", web).Handle("https", web)
	if cfg.Root != "" {
		local := FSFetcher{FS: os.DirFS(cfg.Root)}
		mux.Handle("file", local)
		if cfg.BaseURL == "" {
			mux.Default = local
		}
	}

	var f Fetcher = mux
	if cfg.Cache {
		f = NewCachingFetcher(f)
	}
	if cfg.Metrics {
		instrumented, err := NewInstrumentedFetcher(f, reg)
		if err != nil {
			return nil, err
		}
		f = instrumented
	}
	return f, nil
}
