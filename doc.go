// Package varskema provides:
//
// - Declaration of one logical record type with per-variant field presence,
//   renaming, and representation (FieldSpec/StructSpec)
// - Pure derivation of concrete per-variant schemas (Extract/Schema)
// - Entity synthesis with a decode/encode pair per variant (Class/Entity)
// - A stable error model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; descriptors, codecs, and the
//   SQL-model preset layer live under dtype/, codec/, and model/.
// - Everything derived from a StructSpec is computed once at build time and
//   is immutable afterwards; derived values are safe to share across
//   goroutines without locking.
// - Definition mistakes (undeclared variant, output-key collision, empty
//   default schema) fail at Build/MustBuild, never at decode time.
//
// Typical usage:
//
//	set := varskema.Variants("api", "db")
//	spec := varskema.NewStruct(set, "api").
//		Field("id", varskema.FieldOnly("api", "db")(dtype.Int())).
//		Field("fullName", varskema.FieldFromKeys(map[varskema.Variant]string{
//			"api": "fullName", "db": "full_name",
//		})(dtype.String())).
//		MustBuild()
//
//	dbSchema, err := varskema.Extract(spec, "db")
//	user := varskema.Class("User", set, "api").FromSpec(spec)
//	rec, err := user.Decode(ctx, "db", row)
package varskema
