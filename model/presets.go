package model

import (
	"context"

	varskema "github.com/varskema/varskema"
	"github.com/varskema/varskema/codec"
	"github.com/varskema/varskema/dtype"
)

// Generated declares a field whose value the database supplies (serial id,
// row version). It is readable everywhere and addressable on update, but
// never insertable: absent from insert and jsonCreate.
func Generated(d varskema.Descriptor) varskema.FieldSpec {
	return varskema.FieldOnly(Select, Update, JSON, JSONUpdate)(d)
}

// GeneratedByApp declares a field whose value the application supplies once
// at creation (typically a UUID) and never auto-changes. Present in every
// variant; re-supplying it on update is a validated no-op.
func GeneratedByApp(d varskema.Descriptor) varskema.FieldSpec {
	return varskema.FieldExcept()(d)
}

// Sensitive declares a field excluded from every JSON-facing variant while
// remaining present in all storage-facing ones (password hashes, tokens).
func Sensitive(d varskema.Descriptor) varskema.FieldSpec {
	return varskema.FieldOnly(Select, Insert, Update)(d)
}

// DateTimeInsert declares a creation timestamp: present everywhere, and
// stamped by the engine on every insert or jsonCreate regardless of what the
// caller supplies. Like DateTimeUpdate, the stamp winning over an explicit
// value is part of the decode contract.
func DateTimeInsert() varskema.FieldSpec {
	spec := varskema.FieldExcept()(dtype.Time())
	return varskema.FieldEvolve(spec, func(v varskema.Variant, e varskema.Entry) varskema.Entry {
		if v == Insert || v == JSONCreate {
			e.Auto = autoNow
			e.AutoAlways = true
		}
		return e
	})
}

// DateTimeUpdate declares a last-modified timestamp: absent at creation,
// refreshed by the engine on every update regardless of what the caller
// supplies. The refresh winning over an explicit value is part of the
// decode contract, not a caller convention.
func DateTimeUpdate() varskema.FieldSpec {
	spec := varskema.FieldOnly(Select, Update, JSON, JSONUpdate)(dtype.Time())
	return varskema.FieldEvolve(spec, func(v varskema.Variant, e varskema.Entry) varskema.Entry {
		if v == Update || v == JSONUpdate {
			e.Auto = autoNow
			e.AutoAlways = true
		}
		return e
	})
}

func autoNow(ctx context.Context) (any, error) { return timeNow().UTC(), nil }

// JSONFromString declares a field stored as a JSON text column but exposed as
// the structured value inner describes. Storage variants carry the string
// with the JSON transform attached; JSON-facing variants carry inner
// directly. The canonical value is the structured one in both directions.
func JSONFromString(inner varskema.Descriptor) varskema.FieldSpec {
	storage := varskema.Transform(
		varskema.TransformCodec(dtype.String(), codec.JSONText()),
		inner.Decode,
		inner.Encode,
	)
	return splitField(storage, inner)
}

// BooleanFromNumber declares a field stored as the integers 0/1 but exposed
// as a bool. The canonical value is the bool.
func BooleanFromNumber() varskema.FieldSpec {
	storage := varskema.TransformCodec(dtype.Int(), codec.BoolFromInt())
	return splitField(storage, dtype.Bool())
}
