package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/sparkle/pkg/config"
	"github.com/go-drift/sparkle/pkg/dispatch"
	"github.com/go-drift/sparkle/pkg/dom"
	"github.com/go-drift/sparkle/pkg/errors"
	"github.com/go-drift/sparkle/pkg/resource"
)

func restoreDefaults(t *testing.T) {
	t.Cleanup(func() {
		SetDefaultFetcher(nil)
		SetLogger(nil)
		resource.SetLogger(nil)
		errors.SetHandler(nil)
	})
}

func TestConfigure(t *testing.T) {
	restoreDefaults(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "card.html"), []byte("<p>card</p>"), 0o644))

	logger, err := Configure(&config.Config{
		Fetch: config.Fetch{Root: root, Cache: true, Metrics: true},
		Log:   config.Log{Level: "error"},
	}, prometheus.NewRegistry())
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, ok := DefaultFetcher().(*resource.InstrumentedFetcher)
	assert.True(t, ok)

	q := dispatch.NewQueue(4)
	u := New(WithTemplate("card.html"), WithDispatcher(q))
	require.NoError(t, q.RunUntil(testContext(t), u.Ready().Done()))
	require.NoError(t, u.Ready().Err())
	assert.Equal(t, "<p>card</p>", dom.RenderChildren(u.Root()))
}

func TestConfigureRejectsInvalid(t *testing.T) {
	restoreDefaults(t)
	before := DefaultFetcher()

	_, err := Configure(&config.Config{Fetch: config.Fetch{Timeout: "never"}}, nil)
	assert.Error(t, err)
	assert.Same(t, before, DefaultFetcher())
}

func TestDefaultFetcher(t *testing.T) {
	restoreDefaults(t)
	_, ok := DefaultFetcher().(*resource.HTTPFetcher)
	assert.True(t, ok)

	SetDefaultFetcher(resource.NewCachingFetcher(staticFetcher("x")))
	_, ok = DefaultFetcher().(*resource.CachingFetcher)
	assert.True(t, ok)
}
