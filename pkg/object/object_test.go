package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	obj := map[string]any{
		"foo":  "a",
		"deep": map[string]any{"baz": "b"},
		"tags": []any{"x", map[string]any{"name": "y"}},
	}

	tests := []struct {
		accessor string
		want     any
		ok       bool
	}{
		{"foo", "a", true},
		{"deep.baz", "b", true},
		{"tags.0", "x", true},
		{"tags.1.name", "y", true},
		{"baz", nil, false},
		{"foo.bar", nil, false},
		{"tags.7", nil, false},
		{"tags.x", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.accessor, func(t *testing.T) {
			got, ok := Get(obj, tt.accessor)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := Get(nil, "foo")
	assert.False(t, ok)
}

func TestSet(t *testing.T) {
	obj := map[string]any{}
	Set(obj, "foo", "a")
	Set(obj, "deep.baz", "b")
	assert.Equal(t, map[string]any{
		"foo":  "a",
		"deep": map[string]any{"baz": "b"},
	}, obj)

	Set(obj, "foo.bar", 1)
	assert.Equal(t, map[string]any{"bar": 1}, obj["foo"], "scalars on the path are replaced")

	assert.NotPanics(t, func() { Set(nil, "a", 1) })
}

func TestFlatten(t *testing.T) {
	assert.Equal(t, map[string]any{"foo": "a", "baz": "b"},
		Flatten(map[string]any{"foo": "a", "baz": "b"}))

	assert.Equal(t, map[string]any{"foo.baz": "a", "a.b.c": "b", "list.0": 1, "list.1": 2},
		Flatten(map[string]any{
			"foo":  map[string]any{"baz": "a"},
			"a":    map[string]any{"b": map[string]any{"c": "b"}},
			"list": []any{1, 2},
		}))
}

func TestGetMany(t *testing.T) {
	obj := map[string]any{"foo": "a", "baz": "b", "deep": map[string]any{"x": 1}}

	assert.Equal(t, map[string]any{"foo": "a", "baz": "b", "deep.x": 1}, GetMany(obj))
	assert.Equal(t, map[string]any{"deep.x": 1}, GetMany(obj, "deep.x", "missing"))
}

func TestExpand(t *testing.T) {
	nested := map[string]any{"a": map[string]any{"b": "c", "d": map[string]any{"e": 1}}, "f": true}
	assert.Equal(t, nested, Expand(Flatten(nested)))
}
