package apacai

import (
	"fmt"

	"github.com/casualjim/apacai/pkg/jsonx"
	"github.com/casualjim/apacai/transport"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Dump writes a durable snapshot of r.
//
// The snapshot is a JSON document holding the kind, the constructor arguments
// (id, api_key, api_version, api_type, organization) and the fields as state.
func Dump(r Resource) ([]byte, error) {
	return r.Base().MarshalBinary()
}

// Load restores a snapshot written by Dump: the object is constructed from the
// recorded arguments and the state is merged in without validation, so stored
// empty strings survive.
func Load(data []byte) (Resource, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidSnapshot
	}
	doc := gjson.ParseBytes(data)
	kind := Kind(doc.Get("kind").String())
	v, ok := variantFor(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	args := doc.Get("args")
	apiType, err := transport.ParseAPIType(args.Get("api_type").String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	var id string
	if r := args.Get("id"); r.Type == gjson.String {
		id = r.Str
	}
	o, err := New(id,
		APIKey(args.Get("api_key").String()),
		APIVersion(args.Get("api_version").String()),
		APIVariant(apiType),
		Organization(args.Get("organization").String()),
	)
	if err != nil {
		return nil, err
	}

	state := jsonx.NewMap()
	if r := doc.Get("state"); r.Exists() {
		m, ok := jsonx.FromResult(r).(*jsonx.Map)
		if !ok {
			return nil, fmt.Errorf("%w: state is not an object", ErrInvalidSnapshot)
		}
		child := Identity{APIKey: o.apiKey, APIVersion: o.apiVersion, APIType: o.apiType, Organization: o.organization}
		for pair := m.Oldest(); pair != nil; pair = pair.Next() {
			state.Set(pair.Key, materialize(pair.Value, child, false))
		}
	}
	// the state carries the id in its own position
	o.values = jsonx.NewMap()
	o.update(state)
	return v.Wrap(o), nil
}

func (o *Object) MarshalBinary() ([]byte, error) {
	state, err := jsonx.Encode(o.ToMapRecursive())
	if err != nil {
		return nil, err
	}
	id, _ := o.Lookup("id")

	doc := []byte(`{}`)
	for _, field := range []struct {
		path  string
		value any
	}{
		{"kind", string(o.kind)},
		{"args.id", id},
		{"args.api_key", o.apiKey},
		{"args.api_version", o.apiVersion},
		{"args.api_type", o.apiType.String()},
		{"args.organization", o.organization},
	} {
		if doc, err = sjson.SetBytes(doc, field.path, field.value); err != nil {
			return nil, err
		}
	}
	return sjson.SetRawBytes(doc, "state", state)
}

// UnmarshalBinary replaces o with the object restored from a snapshot.
func (o *Object) UnmarshalBinary(data []byte) error {
	r, err := Load(data)
	if err != nil {
		return err
	}
	*o = *r.Base()
	return nil
}
