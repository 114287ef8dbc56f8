package resource

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureSettlesOnce(t *testing.T) {
	f := NewFuture()
	assert.False(t, f.Settled())

	assert.True(t, f.Reject(fmt.Errorf("first")))
	assert.False(t, f.Resolve())
	assert.False(t, f.Reject(fmt.Errorf("second")))

	assert.True(t, f.Settled())
	assert.EqualError(t, f.Err(), "first")
}

func TestFutureThen(t *testing.T) {
	f := NewFuture()
	var got []string
	f.Then(func(err error) { got = append(got, fmt.Sprintf("a:%v", err)) })
	f.Then(nil)
	f.Then(func(err error) { got = append(got, fmt.Sprintf("b:%v", err)) })
	assert.Empty(t, got)

	f.Resolve()
	assert.Equal(t, []string{"a:<nil>", "b:<nil>"}, got)

	f.Then(func(err error) { got = append(got, "late") })
	assert.Equal(t, []string{"a:<nil>", "b:<nil>", "late"}, got, "Then on a settled future runs immediately")
}

func TestFutureWait(t *testing.T) {
	require.NoError(t, Resolved().Wait(context.Background()))
	assert.EqualError(t, Rejected(fmt.Errorf("nope")).Wait(context.Background()), "nope")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewFuture().Wait(ctx), context.Canceled)
}
