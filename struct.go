package varskema

import "fmt"

// structField is a field with its variant mapping resolved against the
// enclosing set.
type structField struct {
	name    string
	entries map[Variant]Entry
}

// StructSpec is the whole-record declaration: a closed variant set, a default
// variant, and fields in declaration order. It is immutable once built;
// composition produces a new StructSpec via a fresh builder.
type StructSpec struct {
	set     VariantSet
	def     Variant
	fields  []structField
	schemas map[Variant]*Schema
}

// StructBuilder assembles a StructSpec under a fixed {variants, default}
// context. Fields can only be added before Build; Build validates the whole
// declaration and derives every variant schema eagerly.
type StructBuilder struct {
	set   VariantSet
	def   Variant
	names []string
	specs map[string]FieldSpec
	iss   Issues
}

// NewStruct opens a builder for the given variant set and default variant.
func NewStruct(set VariantSet, def Variant) *StructBuilder {
	b := &StructBuilder{set: set, def: def, specs: map[string]FieldSpec{}}
	if !set.Has(def) {
		b.iss = AppendIssues(b.iss, Issue{
			Path: "/", Code: CodeUnknownVariant,
			Message: "default variant is not declared",
			Params:  map[string]any{"variant": string(def)},
		})
	}
	return b
}

// Field registers a field with its spec. Declaration order is preserved.
func (b *StructBuilder) Field(name string, spec FieldSpec) *StructBuilder {
	if name == "" {
		b.iss = AppendIssues(b.iss, Issue{Path: "/", Code: CodeInvalidType, Message: "field name must not be empty"})
		return b
	}
	if _, dup := b.specs[name]; dup {
		b.iss = AppendIssues(b.iss, Issue{
			Path: "/" + name, Code: CodeDuplicateField,
			Message: "field declared twice",
		})
		return b
	}
	b.names = append(b.names, name)
	b.specs[name] = spec
	return b
}

// Build validates the declaration and returns an immutable StructSpec.
// It fails when a field references an undeclared variant, when two fields
// collide on output key within one variant, or when the default variant's
// schema would be empty.
func (b *StructBuilder) Build() (*StructSpec, error) {
	iss := b.iss
	fields := make([]structField, 0, len(b.names))
	for _, name := range b.names {
		spec := b.specs[name]
		if spec.resolve == nil {
			iss = AppendIssues(iss, Issue{Path: "/" + name, Code: CodeInvalidType, Message: "zero FieldSpec"})
			continue
		}
		entries, err := spec.resolve(b.set)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/"+name, CodeParseError, err)...)
			continue
		}
		fields = append(fields, structField{name: name, entries: entries})
	}
	if len(iss) > 0 {
		return nil, iss
	}

	// Output-key collisions within each variant, after renaming.
	for _, v := range b.set.List() {
		seen := make(map[string]string, len(fields)) // output key -> owning field
		for _, f := range fields {
			e, ok := f.entries[v]
			if !ok {
				continue
			}
			key := e.OutputKey
			if key == "" {
				key = f.name
			}
			if other, dup := seen[key]; dup {
				iss = AppendIssues(iss, Issue{
					Path: "/" + f.name, Code: CodeDuplicateOutputKey,
					Message: "output key collides within variant",
					Params:  map[string]any{"variant": string(v), "key": key, "other": other},
				})
				continue
			}
			seen[key] = f.name
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}

	s := &StructSpec{set: b.set, def: b.def, fields: fields}
	s.schemas = make(map[Variant]*Schema, b.set.Len())
	for _, v := range b.set.List() {
		s.schemas[v] = s.extract(v)
	}
	if s.schemas[b.def].Len() == 0 {
		return nil, Issues{{
			Path: "/", Code: CodeEmptySchema,
			Message: "default variant schema has no fields",
			Params:  map[string]any{"variant": string(b.def)},
		}}
	}
	return s, nil
}

// MustBuild is like Build but panics on error. Definition errors are
// programming mistakes; failing loudly at model-definition time is the
// intended propagation.
func (b *StructBuilder) MustBuild() *StructSpec {
	s, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("varskema: %v", err))
	}
	return s
}

// Set returns the declared variant set.
func (s *StructSpec) Set() VariantSet { return s.set }

// Default returns the default variant.
func (s *StructSpec) Default() Variant { return s.def }

// FieldNames returns the declared field names in declaration order.
func (s *StructSpec) FieldNames() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.name
	}
	return out
}
