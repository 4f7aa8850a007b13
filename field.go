package varskema

import "context"

// Entry declares how a field appears in one variant.
type Entry struct {
	// Descriptor validates/decodes/encodes the field value in this variant.
	Descriptor Descriptor
	// OutputKey renames the field in this variant's schema. Empty means the
	// declared field name is used.
	OutputKey string
	// Auto supplies the canonical value at decode time when the field is
	// auto-managed. With AutoAlways false the supplier fills an absent value;
	// with AutoAlways true it wins over any supplied value.
	Auto       func(ctx context.Context) (any, error)
	AutoAlways bool
	// Optional marks the field as tolerated-absent at decode in this variant.
	Optional bool
}

// FieldSpec declares, for one field, in which variants it exists and with
// which Entry. A FieldSpec is resolved against the enclosing StructSpec's
// variant set at build time; helpers like FieldExcept defer the presence
// computation until that set is known.
type FieldSpec struct {
	resolve func(set VariantSet) (map[Variant]Entry, error)
}

// Field declares a field from an explicit per-variant mapping. Every key must
// belong to the enclosing variant set; a variant absent from the mapping means
// the field does not exist in that variant's schema.
func Field(entries map[Variant]Entry) FieldSpec {
	return FieldSpec{resolve: func(set VariantSet) (map[Variant]Entry, error) {
		out := make(map[Variant]Entry, len(entries))
		var iss Issues
		for v, e := range entries {
			if !set.Has(v) {
				iss = AppendIssues(iss, Issue{
					Path: "/", Code: CodeUnknownVariant,
					Message: "field references undeclared variant",
					Params:  map[string]any{"variant": string(v)},
				})
				continue
			}
			out[v] = e
		}
		if len(iss) > 0 {
			return nil, iss
		}
		return out, nil
	}}
}
