// Package jsonx decodes and encodes JSON documents without losing the key order of objects.
//
// Objects are represented as *orderedmap.OrderedMap[string, any], arrays as []any.
// Integral numbers decode to int64, other numbers to float64.
package jsonx

import (
	"bytes"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is the ordered representation of a JSON object.
type Map = orderedmap.OrderedMap[string, any]

// NewMap returns an empty ordered JSON object.
func NewMap() *Map {
	return orderedmap.New[string, any]()
}

// Decode parses data into plain values, keeping object keys in document order.
func Decode(data []byte) (any, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid json: %s", data)
	}
	return FromResult(gjson.ParseBytes(data)), nil
}

// DecodeObject parses data and requires the top-level value to be a JSON object.
func DecodeObject(data []byte) (*Map, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	m, ok := v.(*Map)
	if !ok {
		return nil, fmt.Errorf("expected a json object, got %T", v)
	}
	return m, nil
}

// FromResult converts a parsed gjson value into plain values.
func FromResult(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.String:
		return r.Str
	case gjson.Number:
		if i, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
			return i
		}
		return r.Num
	}

	if r.IsArray() {
		items := r.Array()
		result := make([]any, len(items))
		for i, item := range items {
			result[i] = FromResult(item)
		}
		return result
	}

	m := NewMap()
	r.ForEach(func(key, value gjson.Result) bool {
		m.Set(key.Str, FromResult(value))
		return true
	})
	return m
}

// Encode marshals v to compact JSON.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// EncodeIndent marshals v to JSON indented with the given prefix and indent, without
// a trailing newline. Ordered maps marshal themselves, so HTML characters in their
// strings come out escaped.
func EncodeIndent(v any, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent(prefix, indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ToOrderedJSON converts any Go value to an ordered JSON object.
// Structs keep their field order, ordered maps their insertion order. Plain Go maps
// are marshaled with sorted keys.
//
// Parameters:
//   - val: The input value of any type to be converted to a dynamic JSON object.
//
// Returns:
//   - *Map: the ordered JSON object.
//   - error: An error if the value does not marshal to a JSON object.
func ToOrderedJSON(val any) (*Map, error) {
	if m, ok := val.(*Map); ok {
		return m, nil
	}
	b, err := json.Marshal(val)
	if err != nil {
		return nil, err
	}
	return DecodeObject(b)
}
