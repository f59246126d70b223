package apacai

import (
	"fmt"

	"github.com/casualjim/apacai/pkg/jsonx"
	"github.com/casualjim/apacai/transport"
)

// Identity carries the request context attached to materialized objects.
// Empty fields mean "not set".
type Identity struct {
	APIKey       string
	APIVersion   string
	APIType      transport.APIType
	Organization string
	Engine       string
	ResponseMS   *int
}

type materializeSettings struct {
	plainOldData bool
}

// MaterializeOption configures Materialize.
type MaterializeOption func(*materializeSettings)

// PlainOldData makes Materialize return the decoded data untouched.
func PlainOldData() MaterializeOption {
	return func(s *materializeSettings) {
		s.plainOldData = true
	}
}

// Materialize turns decoded response data into objects.
//
// A *transport.Response is unwrapped first, its organization and latency replace the
// ones in identity. Sequences are materialized element by element without the latency.
// Mappings are shallow copied and built as the variant named by their "object" field.
// Resources and scalars are returned as they are.
func Materialize(raw any, identity Identity, options ...MaterializeOption) any {
	var settings materializeSettings
	for _, apply := range options {
		apply(&settings)
	}
	return materialize(raw, identity, settings.plainOldData)
}

func materialize(raw any, identity Identity, plain bool) any {
	if envelope, ok := raw.(*transport.Response); ok && envelope != nil {
		identity.Organization = envelope.Organization
		identity.ResponseMS = envelope.ResponseMS
		raw = envelope.Data
	}
	if plain {
		return raw
	}

	switch v := raw.(type) {
	case []any:
		child := identity
		child.ResponseMS = nil
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = materialize(item, child, false)
		}
		return result
	case Resource:
		return v
	case *jsonx.Map:
		return constructMapping(copyMap(v), v, identity)
	case map[string]any:
		return constructMapping(sortedMap(v), nil, identity)
	}
	return raw
}

// constructMapping builds the variant named by the "object" field of values.
// origin is the caller's mapping values was copied from.
func constructMapping(values, origin *jsonx.Map, identity Identity) Resource {
	tag, _ := values.Get("object")
	return construct(Lookup(tag), values, values, origin, identity)
}

// ConstructFrom builds an object of the given kind from values, see RefreshFrom for
// what values may be.
func ConstructFrom(kind Kind, values any, identity Identity) (Resource, error) {
	v, ok := variantFor(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	entries, err := orderedEntries(values)
	if err != nil {
		return nil, err
	}
	return construct(v, values, entries, originOf(values), identity), nil
}

func construct(v Variant, source any, entries, origin *jsonx.Map, identity Identity) Resource {
	o := newObject(v.Kind)
	o.apiKey = identity.APIKey
	o.apiVersion = identity.APIVersion
	o.apiType = identity.APIType
	o.organization = identity.Organization
	o.engine = identity.Engine
	o.responseMS = identity.ResponseMS
	if id, ok := entries.Get("id"); ok {
		if s, ok := id.(string); ok && s != "" {
			o.values.Set("id", s)
		}
	}
	o.refresh(source, entries, origin, identity)
	return v.wrap(o)
}

// ToPlain converts objects back into plain data: objects become ordered maps,
// sequences and maps are converted element by element, scalars are returned as they are.
func ToPlain(v any) any {
	switch x := v.(type) {
	case []any:
		result := make([]any, len(x))
		for i, item := range x {
			result[i] = ToPlain(item)
		}
		return result
	case Resource:
		return plainMap(x.Base().store())
	case *jsonx.Map:
		return plainMap(x)
	case map[string]any:
		result := make(map[string]any, len(x))
		for k, item := range x {
			result[k] = ToPlain(item)
		}
		return result
	}
	return v
}

func plainMap(m *jsonx.Map) *jsonx.Map {
	result := jsonx.NewMap()
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		result.Set(pair.Key, ToPlain(pair.Value))
	}
	return result
}

func copyMap(m *jsonx.Map) *jsonx.Map {
	result := jsonx.NewMap()
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		result.Set(pair.Key, pair.Value)
	}
	return result
}
