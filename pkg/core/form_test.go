package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/sparkle/pkg/dispatch"
	"github.com/go-drift/sparkle/pkg/dom"
	"github.com/go-drift/sparkle/pkg/event"
)

const signupMarkup = `<input type="text" name="email"><input type="checkbox" name="terms"><textarea name="note"></textarea>`

func newSignupForm(t *testing.T, opts ...Option) *Form {
	t.Helper()
	f := NewForm(opts...)
	_, err := dom.SpliceFragment(signupMarkup, f.Root())
	require.NoError(t, err)
	return f
}

func TestFormRoot(t *testing.T) {
	f := NewForm()
	assert.Equal(t, "form", f.Root().Data)

	custom := dom.CreateElement("form", map[string]string{"id": "login"})
	assert.Same(t, custom, NewForm(WithRoot(custom)).Root())
}

func TestFormFillAndData(t *testing.T) {
	f := newSignupForm(t)
	f.Fill(map[string]any{"email": "a@b.c", "terms": true, "note": nil})

	assert.Equal(t, map[string]any{"email": "a@b.c", "terms": true, "note": ""}, f.Data())

	target := map[string]any{"id": 7, "email": "old"}
	f.Assign(target)
	assert.Equal(t, map[string]any{"id": 7, "email": "a@b.c", "terms": true, "note": ""}, target)
}

func TestFormSubmit(t *testing.T) {
	f := newSignupForm(t)
	var payload any
	submitted := counter(f.Unit, event.Submitted)
	f.On(event.Submitted, func(e *event.Event) { payload = e.Payload })

	f.Fill(map[string]any{"email": "x@y.z"})
	f.Submit()
	assert.Equal(t, 1, *submitted)
	assert.Equal(t, "x@y.z", payload.(map[string]any)["email"])
}

func TestFormRequestSubmit(t *testing.T) {
	f := NewForm()
	submit := counter(f.Unit, event.Submit)
	submitted := counter(f.Unit, event.Submitted)

	assert.True(t, f.RequestSubmit())
	assert.Equal(t, 1, *submit)
	assert.Equal(t, 1, *submitted)

	l := f.On(event.Submit, func(e *event.Event) { e.PreventDefault() })
	assert.False(t, f.RequestSubmit())
	assert.Equal(t, 2, *submit)
	assert.Equal(t, 1, *submitted, "a prevented submit does not submit")

	f.Notifier().Unsubscribe(event.Submit, l)
	assert.True(t, f.RequestSubmit())
	assert.Equal(t, 2, *submitted)
}

func TestFormWithDataFillsWhenReady(t *testing.T) {
	ctx := testContext(t)
	q := dispatch.NewQueue(4)
	f := NewForm(
		WithTemplate("/signup.html"),
		WithFetcher(staticFetcher(signupMarkup)),
		WithDispatcher(q),
		WithData(map[string]any{"email": "me@example.com", "terms": true}),
	)

	require.NoError(t, q.RunUntil(ctx, f.Ready().Done()))
	data := f.Data()
	assert.Equal(t, "me@example.com", data["email"])
	assert.Equal(t, true, data["terms"])
}

func TestFormWithDataFillsOnMainQueue(t *testing.T) {
	dispatch.Register(nil)
	ctx := testContext(t)
	f := NewForm(
		WithTemplate("/signup.html"),
		WithFetcher(staticFetcher(signupMarkup)),
		WithData(map[string]any{"email": "me@example.com"}),
	)
	_, err := f.Resource().Wait(ctx)
	require.NoError(t, err)
	assert.Nil(t, f.Root().FirstChild, "fetched but not spliced before the main queue turns")

	require.NoError(t, dispatch.RunUntil(ctx, f.Ready().Done()))
	assert.Equal(t, "me@example.com", f.Data()["email"])
}

func TestFormWithDataWithoutTemplate(t *testing.T) {
	f := NewForm(WithData(map[string]any{"email": "x"}))
	assert.Equal(t, map[string]any{}, f.Data(), "no fields exist yet when an empty form is ready")
}
