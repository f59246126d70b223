package apacai

import (
	"time"

	"github.com/casualjim/apacai/internal/registry"
	"github.com/go-openapi/strfmt"
)

// Kind names the object variant a mapping materializes to.
type Kind string

const (
	KindObject           Kind = ""
	KindEngine           Kind = "engine"
	KindCompletionConfig Kind = "experimental.completion_config"
	KindFile             Kind = "file"
	KindFineTune         Kind = "fine-tune"
	KindModel            Kind = "model"
	KindDeployment       Kind = "deployment"

	// KindCustomer is constructed explicitly, responses are never discriminated to it.
	KindCustomer Kind = "customer"
)

// Variant describes one specialized object type.
type Variant struct {
	Kind Kind
	Name string
	// APIBase is the base URL used by objects of this variant, empty for the configured one.
	APIBase string
	// Discriminated variants are selected by the "object" field of a response.
	Discriminated bool

	wrap func(*Object) Resource
}

// Wrap turns o into an object of this variant.
func (v Variant) Wrap(o *Object) Resource {
	o.kind = v.Kind
	return v.wrap(o)
}

var baseVariant = Variant{
	Kind: KindObject,
	Name: "Object",
	wrap: func(o *Object) Resource { return o },
}

var variants = registry.New[Variant]()

func init() {
	for _, v := range []Variant{
		{Kind: KindEngine, Name: "Engine", Discriminated: true, wrap: func(o *Object) Resource { return &EngineObject{Object: o} }},
		{Kind: KindCompletionConfig, Name: "CompletionConfig", Discriminated: true, wrap: func(o *Object) Resource { return &CompletionConfig{Object: o} }},
		{Kind: KindFile, Name: "File", Discriminated: true, wrap: func(o *Object) Resource { return &File{Object: o} }},
		{Kind: KindFineTune, Name: "FineTune", Discriminated: true, wrap: func(o *Object) Resource { return &FineTune{Object: o} }},
		{Kind: KindModel, Name: "Model", Discriminated: true, wrap: func(o *Object) Resource { return &Model{Object: o} }},
		{Kind: KindDeployment, Name: "Deployment", Discriminated: true, wrap: func(o *Object) Resource { return &Deployment{Object: o} }},
		{Kind: KindCustomer, Name: "Customer", wrap: func(o *Object) Resource { return &Customer{Object: o} }},
	} {
		if err := variants.Add(string(v.Kind), v); err != nil {
			panic(err)
		}
	}
	variants.Seal()
}

// Lookup resolves a discriminator tag to its variant. Tags that are not strings,
// unknown tags and tags of non-discriminated variants resolve to the base variant.
func Lookup(tag any) Variant {
	s, ok := tag.(string)
	if !ok {
		return baseVariant
	}
	v, ok := variants.Get(s)
	if !ok || !v.Discriminated {
		return baseVariant
	}
	return v
}

// Variants returns the registered variants ordered by kind.
func Variants() []Variant {
	names := variants.Names()
	result := make([]Variant, 0, len(names))
	for _, name := range names {
		v, _ := variants.Get(name)
		result = append(result, v)
	}
	return result
}

func variantFor(kind Kind) (Variant, bool) {
	if kind == KindObject {
		return baseVariant, true
	}
	return variants.Get(string(kind))
}

// wrap returns o as its variant type.
func wrap(o *Object) Resource {
	v, ok := variantFor(o.kind)
	if !ok {
		return o
	}
	return v.wrap(o)
}

func unixTime(o *Object, key string) strfmt.DateTime {
	secs, ok := o.intField(key)
	if !ok {
		return strfmt.DateTime{}
	}
	return strfmt.DateTime(time.Unix(secs, 0).UTC())
}

// EngineObject is an engine description.
type EngineObject struct{ *Object }

func (e *EngineObject) Ready() bool {
	v, _ := e.Lookup("ready")
	ready, _ := v.(bool)
	return ready
}

func (e *EngineObject) Owner() string { return e.stringField("owner") }

// CompletionConfig is a stored completion configuration.
type CompletionConfig struct{ *Object }

func (c *CompletionConfig) Model() string { return c.stringField("model") }

// File is an uploaded file.
type File struct{ *Object }

func (f *File) Filename() string { return f.stringField("filename") }

func (f *File) Purpose() string { return f.stringField("purpose") }

func (f *File) Status() string { return f.stringField("status") }

// Bytes returns the file size, 0 when the response carried none.
func (f *File) Bytes() int64 {
	n, _ := f.intField("bytes")
	return n
}

func (f *File) CreatedAt() strfmt.DateTime { return unixTime(f.Object, "created_at") }

// FineTune is a fine-tuning job.
type FineTune struct{ *Object }

func (f *FineTune) Status() string { return f.stringField("status") }

func (f *FineTune) Model() string { return f.stringField("model") }

func (f *FineTune) FineTunedModel() string { return f.stringField("fine_tuned_model") }

func (f *FineTune) CreatedAt() strfmt.DateTime { return unixTime(f.Object, "created_at") }

func (f *FineTune) UpdatedAt() strfmt.DateTime { return unixTime(f.Object, "updated_at") }

// Events returns the materialized job events.
func (f *FineTune) Events() []Resource {
	v, _ := f.Lookup("events")
	items, _ := v.([]any)
	events := make([]Resource, 0, len(items))
	for _, item := range items {
		if r, ok := item.(Resource); ok {
			events = append(events, r)
		}
	}
	return events
}

// Model is a model description.
type Model struct{ *Object }

func (m *Model) OwnedBy() string { return m.stringField("owned_by") }

func (m *Model) Created() strfmt.DateTime { return unixTime(m.Object, "created") }

// Deployment is an Azure model deployment.
type Deployment struct{ *Object }

func (d *Deployment) Model() string { return d.stringField("model") }

func (d *Deployment) Status() string { return d.stringField("status") }

// Customer issues requests scoped to a customer endpoint.
type Customer struct{ *Object }
