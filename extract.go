package varskema

// SchemaField is one projected field of a variant schema.
type SchemaField struct {
	// Name is the declared field name on the StructSpec.
	Name string
	// Key is the output key in this variant (Name unless renamed).
	Key string
	// Descriptor is the representation used in this variant.
	Descriptor Descriptor
}

// Schema is the concrete record schema derived for one variant: the fields of
// the StructSpec present in that variant, in declaration order, under their
// output keys. Schemas are derived once at StructSpec build time and shared;
// repeated Extract calls return the same value.
type Schema struct {
	variant Variant
	fields  []SchemaField
	byKey   map[string]int
}

// Variant returns the variant this schema was derived for.
func (s *Schema) Variant() Variant { return s.variant }

// Len returns the number of fields present in this variant.
func (s *Schema) Len() int { return len(s.fields) }

// Fields returns the projected fields in declaration order.
func (s *Schema) Fields() []SchemaField {
	out := make([]SchemaField, len(s.fields))
	copy(out, s.fields)
	return out
}

// Keys returns the output keys in declaration order.
func (s *Schema) Keys() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Key
	}
	return out
}

// Descriptor looks up a field's descriptor by output key.
func (s *Schema) Descriptor(key string) (Descriptor, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return nil, false
	}
	return s.fields[i].Descriptor, true
}

// extract projects the spec for one variant. Pure and deterministic: field
// iteration follows declaration order, no reordering. Called once per variant
// at build time; the result is published on the immutable StructSpec, which
// is the lock-free memoization Extract relies on.
func (s *StructSpec) extract(v Variant) *Schema {
	sch := &Schema{variant: v, byKey: map[string]int{}}
	for _, f := range s.fields {
		e, ok := f.entries[v]
		if !ok {
			continue
		}
		key := e.OutputKey
		if key == "" {
			key = f.name
		}
		sch.byKey[key] = len(sch.fields)
		sch.fields = append(sch.fields, SchemaField{Name: f.name, Key: key, Descriptor: e.Descriptor})
	}
	return sch
}

// Schema returns the derived schema for a declared variant. Asking for an
// undeclared variant is a programming error and fails immediately.
func (s *StructSpec) Schema(v Variant) (*Schema, error) {
	sch, ok := s.schemas[v]
	if !ok {
		return nil, Issues{{
			Path: "/", Code: CodeUnknownVariant,
			Message: "extract for undeclared variant",
			Params:  map[string]any{"variant": string(v)},
		}}
	}
	return sch, nil
}

// DefaultSchema returns the schema of the default variant.
func (s *StructSpec) DefaultSchema() *Schema { return s.schemas[s.def] }

// Extract derives the concrete schema of spec for a variant. It is the
// function form of StructSpec.Schema.
func Extract(spec *StructSpec, v Variant) (*Schema, error) { return spec.Schema(v) }
