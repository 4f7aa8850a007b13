// Package codec provides the bidirectional value codecs the preset layer
// attaches to descriptors: RFC3339 times, JSON-encoded text, 0/1 booleans,
// and semantic versions.
package codec

import (
	"context"
	"time"

	varskema "github.com/varskema/varskema"
)

// TimeRFC3339 returns a Codec that converts between RFC3339 strings and
// time.Time.
func TimeRFC3339() varskema.Codec[string, time.Time] { return rfc3339Codec{} }

type rfc3339Codec struct{}

func (rfc3339Codec) Decode(ctx context.Context, a string) (time.Time, error) {
	t, err := parseRFC3339(a)
	if err != nil {
		return time.Time{}, varskema.Issues{{Path: "/", Code: varskema.CodeInvalidFormat, Message: "invalid RFC3339 time", Cause: err}}
	}
	return t, nil
}

func (rfc3339Codec) Encode(ctx context.Context, b time.Time) (string, error) {
	return formatRFC3339Canonical(b), nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
