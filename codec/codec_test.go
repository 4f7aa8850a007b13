package codec_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	varskema "github.com/varskema/varskema"
	"github.com/varskema/varskema/codec"
)

func TestJSONText_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := codec.JSONText()

	v, err := c.Decode(ctx, `["a","b"]`)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, v)

	s, err := c.Encode(ctx, v)
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, s)
}

func TestJSONText_InvalidDocument(t *testing.T) {
	ctx := context.Background()
	c := codec.JSONText()

	_, err := c.Decode(ctx, `{"open":`)
	iss, ok := varskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, varskema.CodeInvalidFormat, iss[0].Code)
	assert.Error(t, iss[0].Cause)
}

func TestJSONText_UnrepresentableValue(t *testing.T) {
	ctx := context.Background()
	c := codec.JSONText()

	_, err := c.Encode(ctx, func() {})
	iss, ok := varskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, varskema.CodeEncodeError, iss[0].Code)
}

func TestBoolFromInt(t *testing.T) {
	ctx := context.Background()
	c := codec.BoolFromInt()

	b, err := c.Decode(ctx, 1)
	require.NoError(t, err)
	assert.True(t, b)

	b, err = c.Decode(ctx, 0)
	require.NoError(t, err)
	assert.False(t, b)

	_, err = c.Decode(ctx, 2)
	iss, ok := varskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, varskema.CodeInvalidFormat, iss[0].Code)

	n, err := c.Encode(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = c.Encode(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestSemVer(t *testing.T) {
	ctx := context.Background()
	c := codec.SemVer()

	v, err := c.Decode(ctx, "1.2.3-rc.1+build.5")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v.Major())
	assert.Equal(t, "rc.1", v.Prerelease())

	s, err := c.Encode(ctx, v)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3-rc.1+build.5", s)

	// strict mode rejects the loose "v" prefix
	_, err = c.Decode(ctx, "v1.2.3")
	iss, ok := varskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, varskema.CodeInvalidFormat, iss[0].Code)

	_, err = c.Encode(ctx, nil)
	iss, ok = varskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, varskema.CodeEncodeError, iss[0].Code)
}
