package core

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/go-drift/sparkle/pkg/dom"
	"github.com/go-drift/sparkle/pkg/errors"
	"github.com/go-drift/sparkle/pkg/event"
)

func elementChildren(n *html.Node) []*html.Node {
	return dom.Elements(n)
}

func TestCollectionAdd(t *testing.T) {
	c := NewCollection()
	var payloads []any
	c.On(event.Added, func(e *event.Event) { payloads = append(payloads, e.Payload) })

	x, err := c.Add(Of())
	require.NoError(t, err)

	assert.True(t, c.Has(x))
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, countMembers(c, x), "present exactly once")
	assert.Equal(t, []any{x}, payloads)
	assert.Same(t, c.Content(), x.Root().Parent)
	assert.Same(t, c.Unit, x.Base().Adopter())
}

func countMembers(c *Collection, x Component) int {
	n := 0
	for m := range c.Members() {
		if m == x {
			n++
		}
	}
	return n
}

func TestCollectionDelete(t *testing.T) {
	c := NewCollection()
	deleted := counter(c.Unit, event.Deleted)
	x, err := c.Add(Of())
	require.NoError(t, err)

	assert.True(t, c.Delete(x))
	assert.False(t, c.Has(x))
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 1, *deleted)
	assert.Nil(t, x.Root().Parent)
	assert.False(t, x.Base().Destroyed(), "delete does not destroy")
	assert.Nil(t, x.Base().Adopter())
	assert.Equal(t, 0, x.Base().Notifier().Count(event.Removed))

	assert.False(t, c.Delete(x))
	assert.False(t, c.Delete(nil))
	assert.Equal(t, 1, *deleted)
}

func TestCollectionDeleteMovedMember(t *testing.T) {
	c := NewCollection()
	deleted := counter(c.Unit, event.Deleted)
	x, err := c.Add(Of())
	require.NoError(t, err)

	elsewhere := New()
	require.NoError(t, x.Base().AppendTo(elsewhere))

	assert.True(t, c.Delete(x))
	assert.False(t, c.Has(x))
	assert.Equal(t, 0, *deleted, "nothing was detached")
	assert.Same(t, elsewhere.Content(), x.Root().Parent)
}

func TestCollectionMemberRemoval(t *testing.T) {
	c := NewCollection()
	deleted := counter(c.Unit, event.Deleted)
	x, err := c.Add(Of())
	require.NoError(t, err)

	x.Remove(false)
	assert.False(t, c.Has(x))
	assert.Empty(t, c.Adopted())
	assert.Equal(t, 0, *deleted, "the member detached itself")
}

func TestCollectionDestroyedMemberLeaves(t *testing.T) {
	c := NewCollection()
	deleted := counter(c.Unit, event.Deleted)
	x, err := c.Add(Of())
	require.NoError(t, err)
	y, err := c.Add(Of())
	require.NoError(t, err)

	x.Destroy()
	assert.False(t, c.Has(x))
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, []Component{y}, slices.Collect(c.Members()))
	assert.Equal(t, []Component{y}, c.Adopted())
	assert.False(t, c.Delete(x))

	c.Clear()
	assert.Equal(t, 1, *deleted, "only the live member is reported")
	assert.Equal(t, 0, c.Len())
}

func TestCollectionDestroyDoesNotEmitDeleted(t *testing.T) {
	c := NewCollection()
	deleted := counter(c.Unit, event.Deleted)
	x, err := c.Add(Of())
	require.NoError(t, err)

	x.Destroy()
	assert.Equal(t, 0, *deleted)

	y, err := c.Add(Of())
	require.NoError(t, err)
	c.Destroy()
	assert.True(t, y.Base().Destroyed())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, *deleted)

	_, err = c.Add(Of())
	assert.ErrorIs(t, err, errors.ErrInvalidOperation)
}

func TestCollectionClear(t *testing.T) {
	c := NewCollection()
	var deleted []any
	c.On(event.Deleted, func(e *event.Event) { deleted = append(deleted, e.Payload) })
	for range 3 {
		_, err := c.Add(Of())
		require.NoError(t, err)
	}

	assert.Same(t, c, c.Clear())
	assert.Equal(t, 0, c.Len())
	assert.Len(t, deleted, 3)
	assert.Nil(t, c.Content().FirstChild)
}

func TestCollectionMembersIsRestartable(t *testing.T) {
	c := NewCollection()
	a, _ := AddAs(c, func() *Unit { return New() })
	b, _ := AddAs(c, func() *Form { return NewForm() })

	seq := c.Members()
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.ElementsMatch(t, []Component{a, b}, first)
	assert.ElementsMatch(t, first, second)

	for m := range c.Members() {
		c.Delete(m)
		_, _ = c.Add(Of())
	}
	assert.Equal(t, 2, c.Len(), "mutation during iteration does not affect the running sequence")

	for range c.Members() {
		break
	}
}
