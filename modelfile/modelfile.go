// Package modelfile declares StructSpecs in YAML. A model file names the
// variant set, the default variant, and an ordered field list; descriptors
// are looked up by name in a Registry. Definition mistakes surface as the
// same Issues an in-code builder would produce.
//
// Example:
//
//	variants: [select, insert, update, json]
//	default: select
//	fields:
//	  id:       {type: int, only: [select, update, json]}
//	  fullName: {type: string, keys: {select: full_name, json: fullName}}
//	  secret:   {type: string, except: [json]}
package modelfile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	varskema "github.com/varskema/varskema"
	"github.com/varskema/varskema/dtype"
)

// Registry resolves descriptor type names referenced by model files.
type Registry struct {
	m map[string]varskema.Descriptor
}

// NewRegistry returns a registry preloaded with the builtin scalar types:
// string, bool, int, float, time, uuid, any, and their []-prefixed array
// forms ("[]string" etc.).
func NewRegistry() *Registry {
	r := &Registry{m: map[string]varskema.Descriptor{}}
	r.Register("string", dtype.String())
	r.Register("bool", dtype.Bool())
	r.Register("int", dtype.Int())
	r.Register("float", dtype.Float())
	r.Register("time", dtype.Time())
	r.Register("uuid", dtype.UUID())
	r.Register("any", dtype.Any())
	return r
}

// Register binds a descriptor to a type name, replacing any previous binding.
func (r *Registry) Register(name string, d varskema.Descriptor) {
	r.m[name] = d
}

// Resolve returns the descriptor for a type name. Array forms are derived on
// demand: "[]T" resolves to dtype.Array of the registered T.
func (r *Registry) Resolve(name string) (varskema.Descriptor, error) {
	if d, ok := r.m[name]; ok {
		return d, nil
	}
	if len(name) > 2 && name[:2] == "[]" {
		inner, err := r.Resolve(name[2:])
		if err != nil {
			return nil, err
		}
		return dtype.Array(inner), nil
	}
	return nil, varskema.Issues{{
		Path: "/", Code: varskema.CodeInvalidType,
		Message: "unknown descriptor type",
		Params:  map[string]any{"type": name},
	}}
}

// doc mirrors the model file layout. Fields is kept as a raw yaml.Node so the
// declaration order of the mapping survives decoding.
type doc struct {
	Variants []string  `yaml:"variants"`
	Default  string    `yaml:"default"`
	Fields   yaml.Node `yaml:"fields"`
}

type fieldDecl struct {
	Type     string            `yaml:"type"`
	Only     []string          `yaml:"only"`
	Except   []string          `yaml:"except"`
	Keys     map[string]string `yaml:"keys"`
	Optional bool              `yaml:"optional"`
}

// Parse reads a model file and builds the StructSpec it declares.
func Parse(data []byte, reg *Registry) (*varskema.StructSpec, error) {
	b, err := builderFrom(data, reg)
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// ParseClass is Parse followed by entity synthesis under the given name.
func ParseClass(name string, data []byte, reg *Registry) (*varskema.Entity, error) {
	spec, err := Parse(data, reg)
	if err != nil {
		return nil, err
	}
	set := spec.Set()
	return varskema.Class(name, set, spec.Default()).FromSpec(spec), nil
}

func builderFrom(data []byte, reg *Registry) (*varskema.StructBuilder, error) {
	var d doc
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, varskema.Issues{{Path: "/", Code: varskema.CodeParseError, Message: "invalid model file", Cause: err}}
	}
	if len(d.Variants) == 0 {
		return nil, varskema.Issues{{Path: "/variants", Code: varskema.CodeEmptySchema, Message: "model file declares no variants"}}
	}
	names := make([]varskema.Variant, len(d.Variants))
	for i, v := range d.Variants {
		names[i] = varskema.Variant(v)
	}
	set, err := safeVariants(names)
	if err != nil {
		return nil, err
	}
	b := varskema.NewStruct(set, varskema.Variant(d.Default))

	if d.Fields.Kind != yaml.MappingNode {
		return nil, varskema.Issues{{Path: "/fields", Code: varskema.CodeInvalidType, Message: "fields must be a mapping"}}
	}
	// MappingNode content alternates key, value; walking it preserves the
	// file's declaration order, which is the spec's field order.
	for i := 0; i+1 < len(d.Fields.Content); i += 2 {
		keyNode, valNode := d.Fields.Content[i], d.Fields.Content[i+1]
		name := keyNode.Value
		var decl fieldDecl
		if err := valNode.Decode(&decl); err != nil {
			return nil, varskema.Issues{{Path: "/fields/" + name, Code: varskema.CodeParseError, Message: "invalid field declaration", Cause: err}}
		}
		spec, err := fieldFromDecl(name, decl, reg)
		if err != nil {
			return nil, err
		}
		b.Field(name, spec)
	}
	return b, nil
}

// safeVariants converts the panic contract of varskema.Variants into an error:
// a malformed file is caller data here, not a programming mistake.
func safeVariants(names []varskema.Variant) (set varskema.VariantSet, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = varskema.Issues{{Path: "/variants", Code: varskema.CodeParseError, Message: fmt.Sprint(r)}}
		}
	}()
	return varskema.Variants(names...), nil
}

func fieldFromDecl(name string, decl fieldDecl, reg *Registry) (varskema.FieldSpec, error) {
	if decl.Type == "" {
		return varskema.FieldSpec{}, varskema.Issues{{
			Path: "/fields/" + name, Code: varskema.CodeInvalidType, Message: "field declares no type",
		}}
	}
	d, err := reg.Resolve(decl.Type)
	if err != nil {
		return varskema.FieldSpec{}, varskema.Issues{{
			Path: "/fields/" + name, Code: varskema.CodeInvalidType,
			Message: "unknown descriptor type", Params: map[string]any{"type": decl.Type},
		}}
	}

	var spec varskema.FieldSpec
	switch {
	case len(decl.Keys) > 0:
		keys := make(map[varskema.Variant]string, len(decl.Keys))
		for v, k := range decl.Keys {
			keys[varskema.Variant(v)] = k
		}
		spec = varskema.FieldFromKeys(keys)(d)
	case len(decl.Only) > 0:
		spec = varskema.FieldOnly(toVariants(decl.Only)...)(d)
	default:
		// covers both `except: [...]` and the bare "all variants" case
		spec = varskema.FieldExcept(toVariants(decl.Except)...)(d)
	}
	if decl.Optional {
		spec = varskema.FieldEvolve(spec, func(v varskema.Variant, e varskema.Entry) varskema.Entry {
			e.Optional = true
			return e
		})
	}
	return spec, nil
}

func toVariants(names []string) []varskema.Variant {
	out := make([]varskema.Variant, len(names))
	for i, n := range names {
		out[i] = varskema.Variant(n)
	}
	return out
}
