package resource

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedFetcher(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	f, err := NewInstrumentedFetcher(FetcherFunc(func(ctx context.Context, locator string) (string, error) {
		switch locator {
		case "/cancel.html":
			return "", context.Canceled
		case "/bad.html":
			return "", fmt.Errorf("boom")
		}
		return "ok", nil
	}), reg)
	require.NoError(t, err)

	ctx := context.Background()
	_, _ = f.Fetch(ctx, "/a.html")
	_, _ = f.Fetch(ctx, "/b.html")
	_, _ = f.Fetch(ctx, "/cancel.html")
	_, _ = f.Fetch(ctx, "/bad.html")

	assert.Equal(t, 2.0, testutil.ToFloat64(f.Outcomes().WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.Outcomes().WithLabelValues(OutcomeCancelled)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.Outcomes().WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 0.0, testutil.ToFloat64(f.inFlight))

	count, err := testutil.GatherAndCount(reg, "sparkle_resource_fetch_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInstrumentedFetcherDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewInstrumentedFetcher(staticFetcher(""), reg)
	require.NoError(t, err)

	_, err = NewInstrumentedFetcher(staticFetcher(""), reg)
	assert.Error(t, err)

	_, err = NewInstrumentedFetcher(staticFetcher(""), nil)
	assert.NoError(t, err)
}
