// Package model is the SQL-facing preset layer: a fixed variant set covering
// the storage contexts (select/insert/update) and the JSON-facing ones
// (json/jsonCreate/jsonUpdate), plus field presets for the recurring column
// shapes of a relational model. Everything here is built from the varskema
// primitives; the engine has no knowledge of these semantics.
package model

import (
	"time"

	varskema "github.com/varskema/varskema"
)

// The fixed variant set every model-layer StructSpec is declared over.
const (
	Select     varskema.Variant = "select"
	Insert     varskema.Variant = "insert"
	Update     varskema.Variant = "update"
	JSON       varskema.Variant = "json"
	JSONCreate varskema.Variant = "jsonCreate"
	JSONUpdate varskema.Variant = "jsonUpdate"
)

// DefaultVariant is the canonical shape of a model entity.
const DefaultVariant = Select

var storageVariants = []varskema.Variant{Select, Insert, Update}
var jsonVariants = []varskema.Variant{JSON, JSONCreate, JSONUpdate}

// Variants returns the model layer's variant set.
func Variants() varskema.VariantSet {
	return varskema.Variants(Select, Insert, Update, JSON, JSONCreate, JSONUpdate)
}

// NewStruct opens a StructBuilder over the model variant set.
func NewStruct() *varskema.StructBuilder {
	return varskema.NewStruct(Variants(), DefaultVariant)
}

// Class opens an entity builder over the model variant set.
func Class(name string) *varskema.ClassBuilder {
	return varskema.Class(name, Variants(), DefaultVariant)
}

// timeNow is the clock behind the auto-managed timestamp presets; tests swap
// it for a fixed instant.
var timeNow = time.Now

// splitField declares a field present in all six variants with one
// representation for the storage contexts and another for the JSON-facing
// ones.
func splitField(storage, jsonFacing varskema.Descriptor) varskema.FieldSpec {
	entries := make(map[varskema.Variant]varskema.Entry, 6)
	for _, v := range storageVariants {
		entries[v] = varskema.Entry{Descriptor: storage}
	}
	for _, v := range jsonVariants {
		entries[v] = varskema.Entry{Descriptor: jsonFacing}
	}
	return varskema.Field(entries)
}
