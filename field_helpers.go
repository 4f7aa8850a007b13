package varskema

// FieldOnly declares a field present in exactly the listed variants, sharing
// one descriptor across all of them. A field declared this way is guaranteed
// representation-identical in every listed variant.
func FieldOnly(variants ...Variant) func(Descriptor) FieldSpec {
	return func(d Descriptor) FieldSpec {
		entries := make(map[Variant]Entry, len(variants))
		for _, v := range variants {
			entries[v] = Entry{Descriptor: d}
		}
		return Field(entries)
	}
}

// FieldExcept declares a field present in every declared variant except the
// listed ones, sharing one descriptor. Listing the full variant set fails at
// build time: the field would exist nowhere. The complement is computed when
// the enclosing StructSpec is built, so the same FieldSpec works under any
// variant set the excluded names belong to.
func FieldExcept(variants ...Variant) func(Descriptor) FieldSpec {
	return func(d Descriptor) FieldSpec {
		return FieldSpec{resolve: func(set VariantSet) (map[Variant]Entry, error) {
			var iss Issues
			excluded := make(map[Variant]struct{}, len(variants))
			for _, v := range variants {
				if !set.Has(v) {
					iss = AppendIssues(iss, Issue{
						Path: "/", Code: CodeUnknownVariant,
						Message: "excluded variant is not declared",
						Params:  map[string]any{"variant": string(v)},
					})
					continue
				}
				excluded[v] = struct{}{}
			}
			if len(iss) > 0 {
				return nil, iss
			}
			out := make(map[Variant]Entry, set.Len()-len(excluded))
			for _, v := range set.List() {
				if _, skip := excluded[v]; skip {
					continue
				}
				out[v] = Entry{Descriptor: d}
			}
			if len(out) == 0 {
				return nil, Issues{{
					Path: "/", Code: CodeEmptySchema,
					Message: "field excluded from every declared variant",
					Hint:    "FieldExcept over the full variant set leaves the field unreachable",
				}}
			}
			return out, nil
		}}
	}
}

// FieldFromKeys declares a field present in exactly the variants named as map
// keys, sharing one descriptor, with the output key taken per variant from the
// map value. Use it when the same logical field carries a different wire name
// per context (storage full_name vs API fullName).
func FieldFromKeys(keys map[Variant]string) func(Descriptor) FieldSpec {
	return func(d Descriptor) FieldSpec {
		entries := make(map[Variant]Entry, len(keys))
		for v, k := range keys {
			entries[v] = Entry{Descriptor: d, OutputKey: k}
		}
		return Field(entries)
	}
}

// FieldEvolve derives a new FieldSpec by transforming the Entry of each
// variant the field is currently present in. Presence cannot change: a variant
// absent before remains absent, and the transform never runs for it. This is
// how a field is decorated without restating its variant mapping.
func FieldEvolve(spec FieldSpec, transform func(v Variant, e Entry) Entry) FieldSpec {
	return FieldSpec{resolve: func(set VariantSet) (map[Variant]Entry, error) {
		base, err := spec.resolve(set)
		if err != nil {
			return nil, err
		}
		out := make(map[Variant]Entry, len(base))
		for v, e := range base {
			out[v] = transform(v, e)
		}
		return out, nil
	}}
}
