package apacai

import (
	"fmt"
	"iter"
	"math"
	"sort"
	"weak"

	"github.com/casualjim/apacai/pkg/jsonx"
	"github.com/casualjim/apacai/transport"
	"github.com/fogfish/opts"
)

// Resource is implemented by *Object and by every variant that embeds it.
type Resource interface {
	Base() *Object
	Kind() Kind
}

var _ Resource = (*Object)(nil)

// Object is a dynamic, ordered, string keyed container for API responses.
//
// Response fields live in an ordered backing store and are read and written with
// Get, Lookup, Set and Unset. Identity fields (key, version, variant, organization,
// base URL, engine, latency) are kept next to the store and never rendered.
//
// The zero value is an empty base object. An Object is not safe for concurrent
// mutation, it is meant to be owned by a single request/response flow.
type Object struct {
	kind   Kind
	values *jsonx.Map

	apiKey       string
	apiVersion   string
	apiType      transport.APIType
	organization string
	apiBase      string
	engine       string
	responseMS   *int

	retrieveParams *jsonx.Map
	previous       weak.Pointer[jsonx.Map]
}

// Option configures an Object at construction.
type Option = opts.Option[Object]

var (
	// APIKey sets the key used when the object issues requests.
	APIKey = opts.ForName[Object, string]("apiKey")
	// APIVersion sets the API version used when the object issues requests.
	APIVersion = opts.ForName[Object, string]("apiVersion")
	// APIVariant sets the authentication convention used when the object issues requests.
	APIVariant = opts.ForName[Object, transport.APIType]("apiType")
	// Organization sets the organization used when the object issues requests.
	Organization = opts.ForName[Object, string]("organization")
	// APIBase overrides the base URL used when the object issues requests.
	APIBase = opts.ForName[Object, string]("apiBase")
	// Engine records the engine the object belongs to.
	Engine = opts.ForName[Object, string]("engine")
)

// ResponseMS records the response latency in milliseconds. Any Go integer type or
// *int is accepted, the value is copied. Unsigned values above math.MaxInt and
// non-integers fail with ErrInvalidResponseMS.
func ResponseMS(v any) Option {
	return opts.Type[Object](func(o *Object) error {
		ms, err := toResponseMS(v)
		if err != nil {
			return err
		}
		o.responseMS = ms
		return nil
	})
}

// RetrieveParams sets the parameters reused by Issue when a request carries none.
// Structs, maps and ordered maps are accepted.
func RetrieveParams(v any) Option {
	return opts.Type[Object](func(o *Object) error {
		params, err := jsonx.ToOrderedJSON(v)
		if err != nil {
			return fmt.Errorf("invalid retrieve params: %w", err)
		}
		o.retrieveParams = params
		return nil
	})
}

// New creates an empty base object, seeded with id when it is not empty.
func New(id string, options ...Option) (*Object, error) {
	o := newObject(KindObject)
	if err := opts.Apply(o, options); err != nil {
		return nil, err
	}
	if id != "" {
		o.values.Set("id", id)
	}
	return o, nil
}

// Construct creates an empty object of the given kind.
func Construct(kind Kind, id string, options ...Option) (Resource, error) {
	v, ok := variantFor(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	o, err := New(id, options...)
	if err != nil {
		return nil, err
	}
	return v.Wrap(o), nil
}

func newObject(kind Kind) *Object {
	return &Object{kind: kind, values: jsonx.NewMap()}
}

func toResponseMS(v any) (*int, error) {
	var ms int
	switch n := v.(type) {
	case nil:
		return nil, nil
	case *int:
		if n == nil {
			return nil, nil
		}
		ms = *n
	case int:
		ms = n
	case int8:
		ms = int(n)
	case int16:
		ms = int(n)
	case int32:
		ms = int(n)
	case int64:
		ms = int(n)
	case uint8:
		ms = int(n)
	case uint16:
		ms = int(n)
	case uint32:
		ms = int(n)
	case uint:
		return fromUnsigned(uint64(n))
	case uint64:
		return fromUnsigned(n)
	case uintptr:
		return fromUnsigned(uint64(n))
	default:
		return nil, fmt.Errorf("%w: response_ms is a %T", ErrInvalidResponseMS, v)
	}
	return &ms, nil
}

func fromUnsigned(n uint64) (*int, error) {
	if n > math.MaxInt {
		return nil, fmt.Errorf("%w: response_ms %d overflows int", ErrInvalidResponseMS, n)
	}
	ms := int(n)
	return &ms, nil
}

func (o *Object) store() *jsonx.Map {
	if o.values == nil {
		o.values = jsonx.NewMap()
	}
	return o.values
}

// Base returns the object itself, it lets variants and *Object be handled uniformly.
func (o *Object) Base() *Object { return o }

// Kind returns the discriminator variant the object was materialized as.
func (o *Object) Kind() Kind { return o.kind }

// ID returns the "id" field when it is a string.
func (o *Object) ID() string {
	return o.stringField("id")
}

func (o *Object) APIKey() string { return o.apiKey }

func (o *Object) SetAPIKey(key string) { o.apiKey = key }

func (o *Object) APIVersion() string { return o.apiVersion }

func (o *Object) SetAPIVersion(version string) { o.apiVersion = version }

// APIType returns the variant set on the object, APITypeUnset when it follows the configuration.
func (o *Object) APIType() transport.APIType { return o.apiType }

func (o *Object) SetAPIType(t transport.APIType) { o.apiType = t }

func (o *Object) Organization() string { return o.organization }

func (o *Object) SetOrganization(org string) { o.organization = org }

// APIBaseOverride returns the base URL set on the object, empty when none was set.
func (o *Object) APIBaseOverride() string { return o.apiBase }

func (o *Object) SetAPIBase(base string) { o.apiBase = base }

func (o *Object) Engine() string { return o.engine }

func (o *Object) SetEngine(engine string) { o.engine = engine }

// TypedAPIType returns the object's API variant, or the configured default when unset.
func (o *Object) TypedAPIType() transport.APIType {
	return o.apiType.Or(Configuration().APIType).Or(transport.APITypeOpenAI)
}

// ResponseMS returns the response latency recorded at construction.
func (o *Object) ResponseMS() (int, bool) {
	if o.responseMS == nil {
		return 0, false
	}
	return *o.responseMS, true
}

// RetrieveParams returns the parameters the object was retrieved with, or nil.
func (o *Object) RetrieveParams() *jsonx.Map {
	return o.retrieveParams
}

// Previous returns the mapping the object was last refreshed from. It is nil once
// that mapping has been garbage collected, and for objects built from Go maps.
func (o *Object) Previous() *jsonx.Map {
	return o.previous.Value()
}

// Get returns the value stored under key, ErrAttributeMissing when there is none.
func (o *Object) Get(key string) (any, error) {
	v, ok := o.store().Get(key)
	if !ok {
		return nil, &KeyError{Key: key, Err: ErrAttributeMissing}
	}
	return v, nil
}

// Lookup returns the value stored under key and whether it was present.
func (o *Object) Lookup(key string) (any, bool) {
	return o.store().Get(key)
}

// Has reports whether key is present, nil values included.
func (o *Object) Has(key string) bool {
	_, ok := o.store().Get(key)
	return ok
}

// Set stores value under key. Setting "" fails with ErrEmptyString, use nil to clear a field.
func (o *Object) Set(key string, value any) error {
	if s, ok := value.(string); ok && s == "" {
		return &KeyError{Key: key, Err: ErrEmptyString}
	}
	o.store().Set(key, value)
	return nil
}

// Unset removes key from the object. Missing keys are ignored.
func (o *Object) Unset(key string) {
	o.store().Delete(key)
}

// Delete always fails: entries are never removed through the item path.
func (o *Object) Delete(key string) error {
	return &KeyError{Key: key, Err: ErrDeleteUnsupported}
}

// Len returns the number of fields.
func (o *Object) Len() int {
	return o.store().Len()
}

// Keys returns the field names in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	for pair := o.store().Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// All iterates over the fields in insertion order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for pair := o.store().Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// update merges src into the store without validation.
// Only copies and snapshot restores go through here, their input already was stored once.
func (o *Object) update(src *jsonx.Map) {
	dst := o.store()
	for pair := src.Oldest(); pair != nil; pair = pair.Next() {
		dst.Set(pair.Key, pair.Value)
	}
}

func (o *Object) stringField(key string) string {
	v, _ := o.store().Get(key)
	s, _ := v.(string)
	return s
}

func (o *Object) intField(key string) (int64, bool) {
	v, ok := o.store().Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), n == float64(int64(n))
	}
	return 0, false
}

// RefreshFrom replaces the object's content with values.
//
// Identity fields left empty in identity are taken from values when it is itself a
// Resource. The store is wiped and every entry of values is materialized again.
// values may be a Resource, an ordered map or a map[string]any (sorted by key).
func (o *Object) RefreshFrom(values any, identity Identity) error {
	entries, err := orderedEntries(values)
	if err != nil {
		return err
	}
	o.refresh(values, entries, originOf(values), identity)
	return nil
}

// originOf returns the caller owned ordered map behind values, nil when values is
// a Go map converted on the fly.
func originOf(values any) *jsonx.Map {
	switch v := values.(type) {
	case *jsonx.Map:
		return v
	case Resource:
		return v.Base().store()
	}
	return nil
}

func (o *Object) refresh(source any, entries, origin *jsonx.Map, identity Identity) {
	var prior *Object
	if r, ok := source.(Resource); ok {
		prior = r.Base()
	}
	o.apiKey = identity.APIKey
	o.apiVersion = identity.APIVersion
	o.apiType = identity.APIType
	o.organization = identity.Organization
	o.responseMS = identity.ResponseMS
	if prior != nil {
		o.apiKey = firstNonEmpty(o.apiKey, prior.apiKey)
		o.apiVersion = firstNonEmpty(o.apiVersion, prior.apiVersion)
		o.apiType = o.apiType.Or(prior.apiType)
		o.organization = firstNonEmpty(o.organization, prior.organization)
		if o.responseMS == nil {
			o.responseMS = prior.responseMS
		}
	}

	child := Identity{
		APIKey:       identity.APIKey,
		APIVersion:   identity.APIVersion,
		APIType:      identity.APIType,
		Organization: identity.Organization,
	}
	fresh := jsonx.NewMap()
	for pair := entries.Oldest(); pair != nil; pair = pair.Next() {
		fresh.Set(pair.Key, materialize(pair.Value, child, false))
	}
	o.values = fresh
	o.previous = weak.Pointer[jsonx.Map]{}
	if origin != nil {
		o.previous = weak.Make(origin)
	}
}

// orderedEntries returns the ordered mapping behind values.
func orderedEntries(values any) (*jsonx.Map, error) {
	switch v := values.(type) {
	case nil:
		return jsonx.NewMap(), nil
	case *jsonx.Map:
		return v, nil
	case Resource:
		return v.Base().store(), nil
	case map[string]any:
		return sortedMap(v), nil
	}
	return nil, fmt.Errorf("%w: cannot refresh from %T", ErrNotMapping, values)
}

func sortedMap(m map[string]any) *jsonx.Map {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	result := jsonx.NewMap()
	for _, k := range keys {
		result.Set(k, m[k])
	}
	return result
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
