package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keysOf(m *Map) []string {
	var keys []string
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func TestDecode(t *testing.T) {
	t.Run("keeps object key order", func(t *testing.T) {
		v, err := Decode([]byte(`{"z":1,"a":{"y":true,"b":null},"m":[1.5,"x",{"k":"v"}]}`))
		require.NoError(t, err)

		m, ok := v.(*Map)
		require.True(t, ok)
		assert.Equal(t, []string{"z", "a", "m"}, keysOf(m))

		z, _ := m.Get("z")
		assert.Equal(t, int64(1), z)

		nested, _ := m.Get("a")
		require.IsType(t, &Map{}, nested)
		assert.Equal(t, []string{"y", "b"}, keysOf(nested.(*Map)))

		list, _ := m.Get("m")
		require.IsType(t, []any{}, list)
		items := list.([]any)
		assert.Equal(t, 1.5, items[0])
		assert.Equal(t, "x", items[1])
		assert.IsType(t, &Map{}, items[2])
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := Decode([]byte(`{"a":`))
		assert.Error(t, err)
	})

	t.Run("object required", func(t *testing.T) {
		_, err := DecodeObject([]byte(`[1,2]`))
		assert.Error(t, err)
	})
}

func TestEncodeIndent(t *testing.T) {
	m := NewMap()
	m.Set("b", int64(1))
	m.Set("a", "<x>")

	b, err := EncodeIndent(m, "", "  ")
	require.NoError(t, err)

	back, err := DecodeObject(b)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, keysOf(back))
	assert.Contains(t, string(b), "\n  ")
	assert.NotEqual(t, byte('\n'), b[len(b)-1])
	assert.Contains(t, string(b), `"\u003cx\u003e"`)
	a, _ := back.Get("a")
	assert.Equal(t, "<x>", a)
}

func TestToOrderedJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		wantKeys []string
		wantErr  bool
	}{
		{
			name: "simple struct",
			input: struct {
				Name string `json:"name"`
				Age  int    `json:"age"`
			}{
				Name: "test",
				Age:  30,
			},
			wantKeys: []string{"name", "age"},
		},
		{
			name:     "plain map sorts keys",
			input:    map[string]any{"b": 1, "a": 2},
			wantKeys: []string{"a", "b"},
		},
		{
			name:    "invalid input",
			input:   make(chan int),
			wantErr: true,
		},
		{
			name:    "not an object",
			input:   []int{1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToOrderedJSON(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKeys, keysOf(got))
		})
	}
}
