package apacai

import (
	"math"
	"runtime"
	"testing"

	"github.com/casualjim/apacai/pkg/jsonx"
	"github.com/casualjim/apacai/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	o, err := New("obj-1",
		APIKey("sk-key"),
		APIVersion("2023-05-15"),
		APIVariant(transport.APITypeAzure),
		Organization("org-1"),
		APIBase("https://example.test/v1"),
		Engine("ada"),
		ResponseMS(int32(25)),
		RetrieveParams(map[string]any{"limit": 2}),
	)
	require.NoError(t, err)

	assert.Equal(t, "obj-1", o.ID())
	assert.Equal(t, []string{"id"}, o.Keys())
	assert.Equal(t, "sk-key", o.APIKey())
	assert.Equal(t, "2023-05-15", o.APIVersion())
	assert.Equal(t, transport.APITypeAzure, o.APIType())
	assert.Equal(t, transport.APITypeAzure, o.TypedAPIType())
	assert.Equal(t, "org-1", o.Organization())
	assert.Equal(t, "https://example.test/v1", o.APIBaseOverride())
	assert.Equal(t, "ada", o.Engine())
	ms, ok := o.ResponseMS()
	require.True(t, ok)
	assert.Equal(t, 25, ms)
	limit, _ := o.RetrieveParams().Get("limit")
	assert.Equal(t, int64(2), limit)

	empty, err := New("")
	require.NoError(t, err)
	assert.Zero(t, empty.Len())
	assert.Equal(t, KindObject, empty.Kind())
}

func TestNewInvalidResponseMS(t *testing.T) {
	tests := []struct {
		name  string
		value any
		ok    bool
	}{
		{name: "int", value: 10, ok: true},
		{name: "int64", value: int64(10), ok: true},
		{name: "nil", value: nil, ok: true},
		{name: "uint", value: uint(10), ok: true},
		{name: "uint64", value: uint64(10), ok: true},
		{name: "uintptr", value: uintptr(10), ok: true},
		{name: "uint64 overflow", value: uint64(math.MaxUint64), ok: false},
		{name: "string", value: "10", ok: false},
		{name: "float", value: 1.5, ok: false},
		{name: "bool", value: true, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("", ResponseMS(tt.value))
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidResponseMS)
		})
	}
}

func TestResponseMSIsCopied(t *testing.T) {
	ms := 40
	o, err := New("", ResponseMS(&ms))
	require.NoError(t, err)
	ms = 99

	got, ok := o.ResponseMS()
	require.True(t, ok)
	assert.Equal(t, 40, got)

	big, err := New("", ResponseMS(uint64(1500)))
	require.NoError(t, err)
	got, ok = big.ResponseMS()
	require.True(t, ok)
	assert.Equal(t, 1500, got)

	var missing *int
	none, err := New("", ResponseMS(missing))
	require.NoError(t, err)
	_, ok = none.ResponseMS()
	assert.False(t, ok)
}

func TestSetEmptyStringGuard(t *testing.T) {
	o, err := New("")
	require.NoError(t, err)

	err = o.Set("name", "")
	require.ErrorIs(t, err, ErrEmptyString)
	assert.Contains(t, err.Error(), "you cannot set name to an empty string")
	assert.False(t, o.Has("name"))

	require.NoError(t, o.Set("name", "n"))
	err = o.Set("name", "")
	require.ErrorIs(t, err, ErrEmptyString)
	v, _ := o.Lookup("name")
	assert.Equal(t, "n", v, "a failed set leaves the previous value")

	require.NoError(t, o.Set("name", nil))
	v, ok := o.Lookup("name")
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestGetMissing(t *testing.T) {
	o, err := New("")
	require.NoError(t, err)

	_, err = o.Get("absent")
	require.ErrorIs(t, err, ErrAttributeMissing)
	var keyErr *KeyError
	require.ErrorAs(t, err, &keyErr)
	assert.Equal(t, "absent", keyErr.Key)
}

func TestDeleteAndUnset(t *testing.T) {
	o, err := New("id-1")
	require.NoError(t, err)
	require.NoError(t, o.Set("a", 1))

	assert.ErrorIs(t, o.Delete("a"), ErrDeleteUnsupported)
	assert.True(t, o.Has("a"))

	o.Unset("a")
	assert.False(t, o.Has("a"))
	o.Unset("never-there")
	assert.Equal(t, []string{"id"}, o.Keys())
}

func TestInsertionOrder(t *testing.T) {
	o, err := New("")
	require.NoError(t, err)
	for _, k := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, o.Set(k, k))
	}
	require.NoError(t, o.Set("alpha", "again"))

	var keys []string
	for k := range o.All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)
	assert.Equal(t, 3, o.Len())
}

func TestZeroValueObject(t *testing.T) {
	var o Object
	assert.Zero(t, o.Len())
	assert.False(t, o.Has("x"))
	require.NoError(t, o.Set("x", 1))
	assert.Equal(t, "{\n  \"x\": 1\n}", o.String())
}

func TestRefreshFrom(t *testing.T) {
	prior, err := New("p1", APIKey("sk-prior"), Organization("org-prior"), ResponseMS(9))
	require.NoError(t, err)
	require.NoError(t, prior.Set("nested", mustDecode(t, `{"a":1}`)))

	o, err := New("old")
	require.NoError(t, err)
	require.NoError(t, o.Set("stale", true))

	require.NoError(t, o.RefreshFrom(prior, Identity{APIVersion: "v2"}))
	assert.Equal(t, []string{"id", "nested"}, o.Keys())
	assert.Equal(t, "sk-prior", o.APIKey())
	assert.Equal(t, "org-prior", o.Organization())
	assert.Equal(t, "v2", o.APIVersion())
	ms, ok := o.ResponseMS()
	require.True(t, ok)
	assert.Equal(t, 9, ms)

	nested, err := o.Get("nested")
	require.NoError(t, err)
	_, isObject := nested.(Resource)
	assert.True(t, isObject)

	require.NoError(t, o.RefreshFrom(prior, Identity{APIKey: "sk-explicit"}))
	assert.Equal(t, "sk-explicit", o.APIKey())

	err = o.RefreshFrom("not a mapping", Identity{})
	assert.ErrorIs(t, err, ErrNotMapping)
}

func TestPrevious(t *testing.T) {
	values := jsonx.NewMap()
	values.Set("id", "a")

	o, err := New("")
	require.NoError(t, err)
	assert.Nil(t, o.Previous())

	require.NoError(t, o.RefreshFrom(values, Identity{}))
	assert.Same(t, values, o.Previous())

	require.NoError(t, o.RefreshFrom(map[string]any{"id": "b"}, Identity{}))
	assert.Nil(t, o.Previous())

	raw := jsonx.NewMap()
	raw.Set("object", "file")
	raw.Set("id", "file-9")
	r := Materialize(raw, Identity{}).(Resource)
	assert.Same(t, raw, r.Base().Previous())
	runtime.KeepAlive(raw)
}

func TestTypedAPIType(t *testing.T) {
	o, err := New("")
	require.NoError(t, err)
	assert.Equal(t, Configuration().APIType, o.TypedAPIType())

	o.SetAPIType(transport.APITypeAzureAD)
	assert.Equal(t, transport.APITypeAzureAD, o.TypedAPIType())
}
