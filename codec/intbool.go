package codec

import (
	"context"
	"strconv"

	varskema "github.com/varskema/varskema"
)

// BoolFromInt returns a Codec between the storage integers 0/1 and a runtime
// bool. Any integer other than 0 or 1 is rejected rather than truthy-coerced.
func BoolFromInt() varskema.Codec[int64, bool] { return boolFromIntCodec{} }

type boolFromIntCodec struct{}

func (boolFromIntCodec) Decode(ctx context.Context, a int64) (bool, error) {
	switch a {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, varskema.Issues{{
			Path: "/", Code: varskema.CodeInvalidFormat,
			Message: "expected 0 or 1, got " + strconv.FormatInt(a, 10),
		}}
	}
}

func (boolFromIntCodec) Encode(ctx context.Context, b bool) (int64, error) {
	if b {
		return 1, nil
	}
	return 0, nil
}
