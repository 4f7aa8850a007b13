// Package dtype provides the primitive Descriptors the engine composes:
// strings, bools, numbers, RFC3339 times, UUIDs, and homogeneous arrays.
// Canonical representations are the plain Go forms (string, bool, int64,
// float64, time.Time, uuid.UUID, []any).
package dtype

import (
	"context"
	"encoding/json"
	"math"
	"strconv"

	"github.com/google/uuid"

	varskema "github.com/varskema/varskema"
	"github.com/varskema/varskema/codec"
	"github.com/varskema/varskema/i18n"
)

func invalidType() varskema.Issues {
	return varskema.Issues{{Path: "/", Code: varskema.CodeInvalidType, Message: i18n.T(varskema.CodeInvalidType, nil)}}
}

// String returns a descriptor whose external and canonical forms are both a
// Go string.
func String() varskema.Descriptor {
	return varskema.FuncDescriptor(
		func(ctx context.Context, v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, invalidType()
			}
			return s, nil
		},
		func(ctx context.Context, v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, varskema.Issues{{Path: "/", Code: varskema.CodeEncodeError, Message: "expected string"}}
			}
			return s, nil
		},
		nil,
	)
}

// Bool returns a descriptor whose external and canonical forms are both a
// Go bool.
func Bool() varskema.Descriptor {
	return varskema.FuncDescriptor(
		func(ctx context.Context, v any) (any, error) {
			b, ok := v.(bool)
			if !ok {
				return nil, invalidType()
			}
			return b, nil
		},
		func(ctx context.Context, v any) (any, error) {
			b, ok := v.(bool)
			if !ok {
				return nil, varskema.Issues{{Path: "/", Code: varskema.CodeEncodeError, Message: "expected bool"}}
			}
			return b, nil
		},
		nil,
	)
}

// Int returns a descriptor that accepts the integer shapes JSON and SQL
// drivers commonly hand over (int variants, integer-valued float64,
// json.Number) and canonicalizes to int64.
func Int() varskema.Descriptor {
	return varskema.FuncDescriptor(
		func(ctx context.Context, v any) (any, error) {
			return coerceInt64(v)
		},
		func(ctx context.Context, v any) (any, error) {
			i, ok := v.(int64)
			if !ok {
				return nil, varskema.Issues{{Path: "/", Code: varskema.CodeEncodeError, Message: "expected int64"}}
			}
			return i, nil
		},
		nil,
	)
}

func coerceInt64(v any) (int64, error) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case float64:
		if math.Trunc(t) != t {
			return 0, varskema.Issues{{Path: "/", Code: varskema.CodeInvalidType, Message: "fractional part not allowed"}}
		}
		if t < math.MinInt64 || t >= math.MaxInt64 {
			return 0, varskema.Issues{{Path: "/", Code: varskema.CodeOverflow, Message: i18n.T(varskema.CodeOverflow, nil)}}
		}
		return int64(t), nil
	case json.Number:
		i64, err := t.Int64()
		if err != nil {
			return 0, varskema.Issues{{Path: "/", Code: varskema.CodeInvalidType, Message: i18n.T(varskema.CodeInvalidType, nil), Cause: err}}
		}
		return i64, nil
	default:
		return 0, invalidType()
	}
}

// Float returns a descriptor canonicalizing JSON numbers to float64.
func Float() varskema.Descriptor {
	return varskema.FuncDescriptor(
		func(ctx context.Context, v any) (any, error) {
			switch t := v.(type) {
			case float64:
				return t, nil
			case float32:
				return float64(t), nil
			case int:
				return float64(t), nil
			case int64:
				return float64(t), nil
			case json.Number:
				f, err := strconv.ParseFloat(t.String(), 64)
				if err != nil {
					return nil, varskema.Issues{{Path: "/", Code: varskema.CodeInvalidType, Message: i18n.T(varskema.CodeInvalidType, nil), Cause: err}}
				}
				return f, nil
			default:
				return nil, invalidType()
			}
		},
		func(ctx context.Context, v any) (any, error) {
			f, ok := v.(float64)
			if !ok {
				return nil, varskema.Issues{{Path: "/", Code: varskema.CodeEncodeError, Message: "expected float64"}}
			}
			return f, nil
		},
		nil,
	)
}

// Time returns a descriptor whose external form is an RFC3339 string and
// whose canonical form is time.Time.
func Time() varskema.Descriptor {
	return varskema.TransformCodec(String(), codec.TimeRFC3339())
}

// UUID returns a descriptor whose external form is the canonical UUID string
// and whose canonical form is uuid.UUID.
func UUID() varskema.Descriptor {
	return varskema.FuncDescriptor(
		func(ctx context.Context, v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, invalidType()
			}
			id, err := uuid.Parse(s)
			if err != nil {
				return nil, varskema.Issues{{Path: "/", Code: varskema.CodeInvalidFormat, Message: "invalid UUID", Cause: err}}
			}
			return id, nil
		},
		func(ctx context.Context, v any) (any, error) {
			id, ok := v.(uuid.UUID)
			if !ok {
				return nil, varskema.Issues{{Path: "/", Code: varskema.CodeEncodeError, Message: "expected uuid.UUID"}}
			}
			return id.String(), nil
		},
		nil,
	)
}

// Any returns a passthrough descriptor. Useful as the JSON-facing inner type
// of free-form payload fields.
func Any() varskema.Descriptor {
	identity := func(ctx context.Context, v any) (any, error) { return v, nil }
	return varskema.FuncDescriptor(identity, identity, func(ctx context.Context, v any) error { return nil })
}

// Array returns a descriptor for a homogeneous []any whose elements all obey
// inner. Element failures surface under their index path (/2, /2/name, ...).
func Array(inner varskema.Descriptor) varskema.Descriptor {
	perElement := func(ctx context.Context, v any, apply func(context.Context, any) (any, error), code string) (any, error) {
		items, ok := v.([]any)
		if !ok {
			return nil, invalidType()
		}
		out := make([]any, 0, len(items))
		var iss varskema.Issues
		for i, item := range items {
			ev, err := apply(ctx, item)
			if err != nil {
				iss = append(iss, rebaseIndex(i, code, err)...)
				continue
			}
			out = append(out, ev)
		}
		if len(iss) > 0 {
			return nil, iss
		}
		return out, nil
	}
	return varskema.FuncDescriptor(
		func(ctx context.Context, v any) (any, error) {
			return perElement(ctx, v, inner.Decode, varskema.CodeParseError)
		},
		func(ctx context.Context, v any) (any, error) {
			return perElement(ctx, v, inner.Encode, varskema.CodeEncodeError)
		},
		nil,
	)
}

func rebaseIndex(i int, code string, err error) varskema.Issues {
	base := "/" + strconv.Itoa(i)
	child, ok := varskema.AsIssues(err)
	if !ok {
		return varskema.Issues{{Path: base, Code: code, Message: err.Error(), Cause: err}}
	}
	var out varskema.Issues
	for _, it := range child {
		p := it.Path
		if p == "" || p == "/" {
			p = base
		} else if p[0] == '/' {
			p = base + p
		} else {
			p = base + "/" + p
		}
		out = varskema.AppendIssues(out, varskema.Issue{Path: p, Code: it.Code, Message: it.Message, Hint: it.Hint, Cause: it.Cause, Params: it.Params})
	}
	return out
}
