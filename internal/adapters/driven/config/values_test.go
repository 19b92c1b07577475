package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValues_Accessors(t *testing.T) {
	v := Values{
		"s":      "text",
		"i":      7,
		"i64":    int64(8),
		"f":      2.5,
		"b":      true,
		"list":   []string{"a", "b"},
		"toml":   []any{"x", 1, "y"},
		"nested": map[string]any{"k": "v"},
	}

	assert.Equal(t, "text", v.String("s"))
	assert.Empty(t, v.String("i"))
	assert.Equal(t, 7, v.Int("i"))
	assert.Equal(t, 8, v.Int("i64"))
	assert.Equal(t, 2, v.Int("f"))
	assert.Zero(t, v.Int("s"))
	assert.InDelta(t, 2.5, v.Float("f"), 1e-9)
	assert.InDelta(t, 8.0, v.Float("i64"), 1e-9)
	assert.Zero(t, v.Float("missing"))
	assert.True(t, v.Bool("b"))
	assert.False(t, v.Bool("s"))
	assert.Equal(t, []string{"a", "b"}, v.StringSlice("list"))
	assert.Equal(t, []string{"x", "y"}, v.StringSlice("toml"))
	assert.Nil(t, v.StringSlice("s"))
}

func TestValues_StringSliceIsCopy(t *testing.T) {
	v := Values{"list": []string{"a"}}

	got := v.StringSlice("list")
	got[0] = "changed"

	assert.Equal(t, "a", v.StringSlice("list")[0])
}

func TestValues_FlattenNest(t *testing.T) {
	tests := []struct {
		name string
		flat Values
		want map[string]any
	}{
		{
			name: "nested keys",
			flat: Values{"a.b": 1, "a.c": 2, "d": 3},
			want: map[string]any{"a": map[string]any{"b": 1, "c": 2}, "d": 3},
		},
		{
			name: "deep keys",
			flat: Values{"a.b.c": "x"},
			want: map[string]any{"a": map[string]any{"b": map[string]any{"c": "x"}}},
		},
		{
			name: "table wins over scalar",
			flat: Values{"a": 1, "a.b": 2},
			want: map[string]any{"a": map[string]any{"b": 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nested := tt.flat.Nest()
			assert.Equal(t, tt.want, nested)
			assert.Equal(t, Flatten(tt.want), Flatten(nested))
		})
	}
}

func TestFlatten_Empty(t *testing.T) {
	assert.Empty(t, Flatten(nil))
}
