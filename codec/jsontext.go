package codec

import (
	"context"

	json "github.com/goccy/go-json"

	varskema "github.com/varskema/varskema"
)

// JSONText returns a Codec between a JSON document held in a string and the
// structured value it encodes. This is the storage-side transform behind
// fields whose database column is text but whose runtime value is structured.
func JSONText() varskema.Codec[string, any] { return jsonTextCodec{} }

type jsonTextCodec struct{}

func (jsonTextCodec) Decode(ctx context.Context, a string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(a), &v); err != nil {
		return nil, varskema.Issues{{Path: "/", Code: varskema.CodeInvalidFormat, Message: "invalid JSON text", Cause: err}}
	}
	return v, nil
}

func (jsonTextCodec) Encode(ctx context.Context, b any) (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", varskema.Issues{{Path: "/", Code: varskema.CodeEncodeError, Message: "value not representable as JSON", Cause: err}}
	}
	return string(data), nil
}
