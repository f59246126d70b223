package apacai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopy(t *testing.T) {
	raw := mustDecode(t, `{"object":"file","id":"file-1","meta":{"tags":["a"]},"note":""}`)
	f := Materialize(raw, Identity{APIKey: "sk-1", Organization: "org"}).(*File)
	note, _ := f.Lookup("note")
	require.Equal(t, "", note, "materialized responses may hold empty strings")

	c := f.Copy()
	cf, ok := c.(*File)
	require.True(t, ok, "copies keep their variant")
	assert.NotSame(t, f.Object, cf.Object)
	assert.Equal(t, "sk-1", cf.APIKey())
	assert.Equal(t, "org", cf.Organization())
	assert.Equal(t, f.Keys(), cf.Keys())

	note, _ = cf.Lookup("note")
	assert.Equal(t, "", note)

	origMeta, _ := f.Lookup("meta")
	copyMeta, _ := cf.Lookup("meta")
	assert.Same(t, origMeta.(Resource).Base(), copyMeta.(Resource).Base(), "shallow copies share nested values")

	require.NoError(t, cf.Set("extra", 1))
	assert.False(t, f.Has("extra"))
}

func TestDeepCopy(t *testing.T) {
	raw := mustDecode(t, `{"object":"fine-tune","id":"ft-1","events":[{"message":"a"}],"hyperparams":{"n_epochs":4},"note":""}`)
	ft := Materialize(raw, Identity{APIKey: "sk-1"}).(*FineTune)
	require.NoError(t, ft.Set("seen", []any{"x"}))

	dc := ft.DeepCopy().(*FineTune)
	assert.Equal(t, ft.String(), dc.String())
	assert.Equal(t, "sk-1", dc.APIKey())

	hp, _ := dc.Lookup("hyperparams")
	require.NoError(t, hp.(Resource).Base().Set("n_epochs", 10))
	orig, _ := ft.Lookup("hyperparams")
	epochs, _ := orig.(Resource).Base().Lookup("n_epochs")
	assert.Equal(t, int64(4), epochs)

	require.NoError(t, dc.Events()[0].Base().Set("message", "changed"))
	msg, _ := ft.Events()[0].Base().Lookup("message")
	assert.Equal(t, "a", msg)

	seen, _ := dc.Lookup("seen")
	seen.([]any)[0] = "y"
	origSeen, _ := ft.Lookup("seen")
	assert.Equal(t, "x", origSeen.([]any)[0])
}

func TestDeepCopySharedReferences(t *testing.T) {
	shared, err := New("shared")
	require.NoError(t, err)
	parent, err := New("parent")
	require.NoError(t, err)
	require.NoError(t, parent.Set("left", shared))
	require.NoError(t, parent.Set("right", shared))

	dc := parent.DeepCopy().Base()
	left, _ := dc.Lookup("left")
	right, _ := dc.Lookup("right")
	assert.Same(t, left.(Resource).Base(), right.(Resource).Base())
	assert.NotSame(t, shared, left.(Resource).Base())
}
