package apacai

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/casualjim/apacai/pkg/jsonx"
	"github.com/casualjim/apacai/pkg/slogx"
)

// ToMap returns a shallow copy of the fields as an ordered map.
func (o *Object) ToMap() *jsonx.Map {
	return copyMap(o.store())
}

// ToMapRecursive returns the fields as an ordered map with every nested object,
// including the ones inside sequences, converted to an ordered map as well.
func (o *Object) ToMapRecursive() *jsonx.Map {
	return plainMap(o.store())
}

// String renders the fields as JSON indented by two spaces, keys in insertion order.
func (o *Object) String() string {
	b, err := jsonx.EncodeIndent(o.ToMapRecursive(), "", "  ")
	if err != nil {
		slog.Warn("failed to render object", slogx.Error(err))
		return ""
	}
	return string(b)
}

// DebugString renders the variant, the object tag, the id and the address of the
// object followed by its JSON rendering.
func (o *Object) DebugString() string {
	ident := []string{variantName(o.kind)}
	if tag, ok := o.Lookup("object"); ok {
		if s, ok := tag.(string); ok {
			ident = append(ident, s)
		}
	}
	if id, ok := o.Lookup("id"); ok {
		if s, ok := id.(string); ok {
			ident = append(ident, "id="+s)
		}
	}
	return fmt.Sprintf("<%s at %p> JSON: %s", strings.Join(ident, " "), o, o.String())
}

// GoString makes %#v print DebugString.
func (o *Object) GoString() string {
	return o.DebugString()
}

func (o *Object) MarshalJSON() ([]byte, error) {
	return jsonx.Encode(o.ToMapRecursive())
}

// UnmarshalJSON refreshes the object from a JSON object, keeping its identity.
func (o *Object) UnmarshalJSON(data []byte) error {
	values, err := jsonx.DecodeObject(data)
	if err != nil {
		return err
	}
	o.refresh(values, values, values, o.identity())
	return nil
}

func (o *Object) identity() Identity {
	return Identity{
		APIKey:       o.apiKey,
		APIVersion:   o.apiVersion,
		APIType:      o.apiType,
		Organization: o.organization,
		Engine:       o.engine,
		ResponseMS:   o.responseMS,
	}
}

func variantName(kind Kind) string {
	v, ok := variantFor(kind)
	if !ok {
		return baseVariant.Name
	}
	return v.Name
}
