package varskema

import "context"

// Descriptor is the capability a field references in each variant: it
// validates external values, decodes them into the canonical representation,
// and encodes canonical values back. The engine treats descriptors as opaque;
// they may be shared freely across fields and variants and must be immutable.
type Descriptor interface {
	// Validate verifies an external value without producing the canonical form.
	Validate(ctx context.Context, v any) error
	// Decode transforms an external value into the canonical representation.
	Decode(ctx context.Context, v any) (any, error)
	// Encode transforms a canonical value back into the external representation.
	Encode(ctx context.Context, v any) (any, error)
}

// Codec performs bidirectional transformation between the wire representation
// A and the canonical representation B. Implementations live under codec/.
type Codec[A, B any] interface {
	Decode(ctx context.Context, a A) (B, error)
	Encode(ctx context.Context, b B) (A, error)
}

// funcDescriptor assembles a Descriptor from explicit hooks.
type funcDescriptor struct {
	decode   func(context.Context, any) (any, error)
	encode   func(context.Context, any) (any, error)
	validate func(context.Context, any) error
}

func (d funcDescriptor) Decode(ctx context.Context, v any) (any, error) { return d.decode(ctx, v) }
func (d funcDescriptor) Encode(ctx context.Context, v any) (any, error) { return d.encode(ctx, v) }
func (d funcDescriptor) Validate(ctx context.Context, v any) error {
	if d.validate != nil {
		return d.validate(ctx, v)
	}
	_, err := d.decode(ctx, v)
	return err
}

// FuncDescriptor builds a Descriptor from decode/encode hooks. A nil validate
// falls back to a decode probe.
func FuncDescriptor(
	decode func(context.Context, any) (any, error),
	encode func(context.Context, any) (any, error),
	validate func(context.Context, any) error,
) Descriptor {
	return funcDescriptor{decode: decode, encode: encode, validate: validate}
}

// Transform derives a new Descriptor from d by composing an additional
// conversion pair: decode runs after d.Decode, encode runs before d.Encode.
// This is the primitive behind FieldEvolve-style refinements and the
// representation-swapping presets (JSON-from-string, boolean-from-number).
func Transform(
	d Descriptor,
	decode func(context.Context, any) (any, error),
	encode func(context.Context, any) (any, error),
) Descriptor {
	// validate is left nil so the decode-probe fallback covers the whole
	// composed pipeline, not just d's half of it.
	return funcDescriptor{
		decode: func(ctx context.Context, v any) (any, error) {
			mid, err := d.Decode(ctx, v)
			if err != nil {
				return nil, err
			}
			return decode(ctx, mid)
		},
		encode: func(ctx context.Context, v any) (any, error) {
			mid, err := encode(ctx, v)
			if err != nil {
				return nil, err
			}
			return d.Encode(ctx, mid)
		},
	}
}

// TransformCodec attaches a bidirectional codec behind d: d decodes the
// external value to the codec's wire type A, the codec converts A into the
// canonical B. Encode runs the inverse path.
func TransformCodec[A, B any](d Descriptor, c Codec[A, B]) Descriptor {
	return Transform(d,
		func(ctx context.Context, v any) (any, error) {
			a, ok := v.(A)
			if !ok {
				return nil, Issues{{Path: "/", Code: CodeInvalidType, Message: "unexpected wire type for codec"}}
			}
			return c.Decode(ctx, a)
		},
		func(ctx context.Context, v any) (any, error) {
			b, ok := v.(B)
			if !ok {
				return nil, Issues{{Path: "/", Code: CodeEncodeError, Message: "unexpected canonical type for codec"}}
			}
			return c.Encode(ctx, b)
		},
	)
}

// Refine derives a new Descriptor that runs an extra check on the canonical
// value after decode (and before encode). The rule name is recorded on the
// issue for observability.
func Refine(d Descriptor, name string, check func(ctx context.Context, v any) error) Descriptor {
	wrap := func(err error) Issues {
		if iss, ok := AsIssues(err); ok {
			return iss
		}
		return Issues{Issue{Path: "/", Code: CodeCustom, Message: err.Error(), Cause: err, Params: map[string]any{"rule": name}}}
	}
	return funcDescriptor{
		decode: func(ctx context.Context, v any) (any, error) {
			out, err := d.Decode(ctx, v)
			if err != nil {
				return nil, err
			}
			if err := check(ctx, out); err != nil {
				return nil, wrap(err)
			}
			return out, nil
		},
		encode: func(ctx context.Context, v any) (any, error) {
			if err := check(ctx, v); err != nil {
				return nil, wrap(err)
			}
			return d.Encode(ctx, v)
		},
		validate: func(ctx context.Context, v any) error {
			out, err := d.Decode(ctx, v)
			if err != nil {
				return err
			}
			if err := check(ctx, out); err != nil {
				return wrap(err)
			}
			return nil
		},
	}
}
