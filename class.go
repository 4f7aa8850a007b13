package varskema

import "context"

// Record is the canonical runtime value of an entity, keyed by declared field
// name (output keys are renamed away during decode).
type Record map[string]any

// Entity is the synthesized runtime type for a StructSpec: a name, the
// default-variant shape, addressable schemas for every other variant, and a
// decode/encode pair per variant. Entities are built once at model-definition
// time and read-only thereafter.
type Entity struct {
	name string
	spec *StructSpec
}

// ClassBuilder assembles an Entity. It composes a StructBuilder, so field
// declaration works exactly as with NewStruct.
type ClassBuilder struct {
	name string
	sb   *StructBuilder
}

// Class opens an entity builder with the given name over a variant set and
// default variant.
func Class(name string, set VariantSet, def Variant) *ClassBuilder {
	return &ClassBuilder{name: name, sb: NewStruct(set, def)}
}

// Field registers a field with its spec.
func (b *ClassBuilder) Field(name string, spec FieldSpec) *ClassBuilder {
	b.sb.Field(name, spec)
	return b
}

// Build validates the declaration and synthesizes the entity.
func (b *ClassBuilder) Build() (*Entity, error) {
	spec, err := b.sb.Build()
	if err != nil {
		return nil, err
	}
	return &Entity{name: b.name, spec: spec}, nil
}

// MustBuild is like Build but panics on definition errors.
func (b *ClassBuilder) MustBuild() *Entity {
	e, err := b.Build()
	if err != nil {
		panic("varskema: " + err.Error())
	}
	return e
}

// FromSpec synthesizes the entity from an already-built StructSpec. Any
// fields registered on the builder are ignored; the spec is authoritative.
func (b *ClassBuilder) FromSpec(spec *StructSpec) *Entity {
	return &Entity{name: b.name, spec: spec}
}

// Name returns the entity name.
func (e *Entity) Name() string { return e.name }

// Spec returns the underlying StructSpec.
func (e *Entity) Spec() *StructSpec { return e.spec }

// Schema returns the derived schema for a declared variant.
func (e *Entity) Schema(v Variant) (*Schema, error) { return e.spec.Schema(v) }

// DefaultSchema returns the schema the entity's own shape equals.
func (e *Entity) DefaultSchema() *Schema { return e.spec.DefaultSchema() }

// Decode validates and transforms an external value of the variant's shape
// into a canonical Record: per-field descriptor decode, then output-key to
// field-name de-rename. Decode is all-or-nothing; on failure it returns nil
// and the collected Issues, each rebased under the offending output key.
// Auto-managed entries are resolved here: an AutoAlways supplier wins over
// any caller-supplied value, a plain supplier fills absent values.
func (e *Entity) Decode(ctx context.Context, v Variant, in map[string]any) (Record, error) {
	d, err := e.DecodeWithMeta(ctx, v, in)
	if err != nil {
		return nil, err
	}
	return d.Value, nil
}

// DecodeWithMeta is Decode returning presence metadata alongside the record.
func (e *Entity) DecodeWithMeta(ctx context.Context, v Variant, in map[string]any) (Decoded[Record], error) {
	if _, err := e.spec.Schema(v); err != nil {
		return Decoded[Record]{}, err
	}
	pm := PresenceMap{"/": PresenceSeen}
	out := make(Record, len(e.spec.fields))
	var iss Issues
	known := make(map[string]struct{}, len(e.spec.fields))

	for _, f := range e.spec.fields {
		entry, ok := f.entries[v]
		if !ok {
			continue
		}
		key := entry.OutputKey
		if key == "" {
			key = f.name
		}
		known[key] = struct{}{}
		path := "/" + key
		raw, present := in[key]
		if present {
			pm[path] |= PresenceSeen
			if raw == nil {
				pm[path] |= PresenceWasNull
			}
		}

		if entry.Auto != nil && (entry.AutoAlways || !present) {
			// Supplied values for AutoAlways fields are deliberately
			// discarded: the refresh wins, it is not a caller choice.
			val, aerr := entry.Auto(ctx)
			if aerr != nil {
				iss = AppendIssues(iss, rebaseIssues(path, CodeParseError, aerr)...)
				continue
			}
			pm[path] |= PresenceAutoApplied
			out[f.name] = val
			continue
		}
		if !present {
			if entry.Optional {
				continue
			}
			iss = AppendIssues(iss, Issue{Path: path, Code: CodeRequired, Message: msg(CodeRequired), Hint: "required property missing"})
			continue
		}
		val, derr := entry.Descriptor.Decode(ctx, raw)
		if derr != nil {
			iss = AppendIssues(iss, rebaseIssues(path, CodeParseError, derr)...)
			continue
		}
		out[f.name] = val
	}

	// Unknown keys are rejected: the variant schema is closed.
	for k := range in {
		if _, ok := known[k]; !ok {
			iss = AppendIssues(iss, Issue{Path: "/" + k, Code: CodeUnknownKey, Message: msg(CodeUnknownKey)})
		}
	}
	if len(iss) > 0 {
		return Decoded[Record]{Presence: pm}, iss
	}
	return Decoded[Record]{Value: out, Presence: pm}, nil
}

// Encode transforms a canonical Record into the variant's external
// representation: per-field descriptor encode under the variant's output key.
// Fields the variant does not carry are skipped; a missing non-optional field
// is an error. Encode is all-or-nothing like Decode.
func (e *Entity) Encode(ctx context.Context, v Variant, rec Record) (map[string]any, error) {
	if _, err := e.spec.Schema(v); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(rec))
	var iss Issues
	for _, f := range e.spec.fields {
		entry, ok := f.entries[v]
		if !ok {
			continue
		}
		key := entry.OutputKey
		if key == "" {
			key = f.name
		}
		val, present := rec[f.name]
		if !present {
			if entry.Optional {
				continue
			}
			iss = AppendIssues(iss, Issue{Path: "/" + key, Code: CodeRequired, Message: msg(CodeRequired), Hint: "canonical value missing field"})
			continue
		}
		enc, eerr := entry.Descriptor.Encode(ctx, val)
		if eerr != nil {
			iss = AppendIssues(iss, rebaseIssues("/"+key, CodeEncodeError, eerr)...)
			continue
		}
		out[key] = enc
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}
