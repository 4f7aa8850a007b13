package varskema

import "fmt"

// Variant names a context (insert, json, ...) in which a record type may have
// a different field set or representation.
type Variant string

// VariantSet is the closed, ordered set of variants a StructSpec is declared
// over. The zero value is empty and unusable; construct via Variants.
type VariantSet struct {
	order []Variant
	index map[Variant]int
}

// Variants constructs a VariantSet. The set is a definition-time value: an
// empty list, an empty name, or a duplicate is a programming mistake and
// panics (fail fast, before any model is assembled on top of it).
func Variants(names ...Variant) VariantSet {
	if len(names) == 0 {
		panic("varskema: variant set must not be empty")
	}
	idx := make(map[Variant]int, len(names))
	order := make([]Variant, 0, len(names))
	for _, n := range names {
		if n == "" {
			panic("varskema: variant name must not be empty")
		}
		if _, dup := idx[n]; dup {
			panic(fmt.Sprintf("varskema: duplicate variant %q", n))
		}
		idx[n] = len(order)
		order = append(order, n)
	}
	return VariantSet{order: order, index: idx}
}

// Has reports whether v belongs to the set.
func (s VariantSet) Has(v Variant) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of declared variants.
func (s VariantSet) Len() int { return len(s.order) }

// List returns the variants in declaration order.
func (s VariantSet) List() []Variant {
	out := make([]Variant, len(s.order))
	copy(out, s.order)
	return out
}
