package apacai

import "github.com/casualjim/apacai/pkg/jsonx"

// Copy returns a shallow copy: a new object of the same variant and identity whose
// values are shared with o. Stored values are carried over without validation.
func (o *Object) Copy() Resource {
	return wrap(o.shallowCopy())
}

// DeepCopy returns a copy that shares nothing with o. Objects reachable more than
// once are copied once.
func (o *Object) DeepCopy() Resource {
	return wrap(o.deepCopy(make(map[*Object]*Object)))
}

func (o *Object) shallowCopy() *Object {
	c := &Object{
		kind:           o.kind,
		values:         jsonx.NewMap(),
		apiKey:         o.apiKey,
		apiVersion:     o.apiVersion,
		apiType:        o.apiType,
		organization:   o.organization,
		apiBase:        o.apiBase,
		engine:         o.engine,
		responseMS:     o.responseMS,
		retrieveParams: o.retrieveParams,
	}
	c.update(o.store())
	return c
}

func (o *Object) deepCopy(memo map[*Object]*Object) *Object {
	if c, ok := memo[o]; ok {
		return c
	}
	c := o.shallowCopy()
	memo[o] = c
	if c.responseMS != nil {
		ms := *c.responseMS
		c.responseMS = &ms
	}
	if c.retrieveParams != nil {
		c.retrieveParams = deepCopyMap(c.retrieveParams, memo)
	}
	c.values = deepCopyMap(c.values, memo)
	return c
}

func deepCopyValue(v any, memo map[*Object]*Object) any {
	switch x := v.(type) {
	case Resource:
		return wrap(x.Base().deepCopy(memo))
	case *jsonx.Map:
		return deepCopyMap(x, memo)
	case map[string]any:
		result := make(map[string]any, len(x))
		for k, item := range x {
			result[k] = deepCopyValue(item, memo)
		}
		return result
	case []any:
		result := make([]any, len(x))
		for i, item := range x {
			result[i] = deepCopyValue(item, memo)
		}
		return result
	}
	return v
}

func deepCopyMap(m *jsonx.Map, memo map[*Object]*Object) *jsonx.Map {
	result := jsonx.NewMap()
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		result.Set(pair.Key, deepCopyValue(pair.Value, memo))
	}
	return result
}
