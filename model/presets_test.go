package model

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	varskema "github.com/varskema/varskema"
	"github.com/varskema/varskema/dtype"
)

func fixedClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = prev })
}

func keysOf(t *testing.T, spec *varskema.StructSpec, v varskema.Variant) []string {
	t.Helper()
	sch, err := spec.Schema(v)
	require.NoError(t, err)
	return sch.Keys()
}

func TestGenerated_AbsentFromCreation(t *testing.T) {
	spec := NewStruct().
		Field("id", Generated(dtype.Int())).
		Field("name", GeneratedByApp(dtype.String())).
		MustBuild()

	assert.NotContains(t, keysOf(t, spec, Insert), "id")
	assert.NotContains(t, keysOf(t, spec, JSONCreate), "id")
	for _, v := range []varskema.Variant{Select, Update, JSON, JSONUpdate} {
		assert.Contains(t, keysOf(t, spec, v), "id", "variant %s", v)
	}
}

func TestGeneratedByApp_PresentEverywhere(t *testing.T) {
	spec := NewStruct().
		Field("uid", GeneratedByApp(dtype.UUID())).
		MustBuild()

	for _, v := range []varskema.Variant{Select, Insert, Update, JSON, JSONCreate, JSONUpdate} {
		assert.Contains(t, keysOf(t, spec, v), "uid", "variant %s", v)
	}
}

func TestSensitive_ExcludedFromJSONVariants(t *testing.T) {
	spec := NewStruct().
		Field("name", GeneratedByApp(dtype.String())).
		Field("passwordHash", Sensitive(dtype.String())).
		MustBuild()

	for _, v := range storageVariants {
		assert.Contains(t, keysOf(t, spec, v), "passwordHash", "variant %s", v)
	}
	for _, v := range jsonVariants {
		assert.NotContains(t, keysOf(t, spec, v), "passwordHash", "variant %s", v)
	}
}

func TestDateTimeInsert_StampsOnCreation(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fixedClock(t, at)

	e := Class("Post").
		Field("title", GeneratedByApp(dtype.String())).
		Field("createdAt", DateTimeInsert()).
		MustBuild()

	ctx := context.Background()
	dm, err := e.DecodeWithMeta(ctx, Insert, map[string]any{"title": "hi"})
	require.NoError(t, err)
	assert.Equal(t, at, dm.Value["createdAt"])
	assert.NotZero(t, dm.Presence["/createdAt"]&varskema.PresenceAutoApplied)

	// an explicit creation timestamp is discarded: the stamp wins
	rec, err := e.Decode(ctx, Insert, map[string]any{
		"title":     "hi",
		"createdAt": "2020-06-01T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, at, rec["createdAt"])

	// select still requires the stored value and passes it through
	rec, err = e.Decode(ctx, Select, map[string]any{
		"title":     "hi",
		"createdAt": "2020-06-01T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), rec["createdAt"])
}

func TestDateTimeUpdate_RefreshWinsOverSuppliedValue(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fixedClock(t, at)

	e := Class("Post").
		Field("id", Generated(dtype.Int())).
		Field("name", GeneratedByApp(dtype.String())).
		Field("updatedAt", DateTimeUpdate()).
		MustBuild()

	ctx := context.Background()
	rec, err := e.Decode(ctx, Update, map[string]any{
		"id":        1,
		"name":      "x",
		"updatedAt": "2020-01-01T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, at, rec["updatedAt"])

	// absent from creation entirely
	spec := e.Spec()
	assert.NotContains(t, keysOf(t, spec, Insert), "updatedAt")
	assert.NotContains(t, keysOf(t, spec, JSONCreate), "updatedAt")
}

func TestJSONFromString_StorageAndJSONShapes(t *testing.T) {
	e := Class("Doc").
		Field("tags", JSONFromString(dtype.Array(dtype.String()))).
		MustBuild()

	ctx := context.Background()

	// storage side carries the JSON document in a string
	rec, err := e.Decode(ctx, Select, map[string]any{"tags": `["a","b"]`})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, rec["tags"])

	out, err := e.Encode(ctx, Select, rec)
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, out["tags"])

	// JSON side carries the structured value directly
	rec, err = e.Decode(ctx, JSON, map[string]any{"tags": []any{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, rec["tags"])

	// inner validation applies on the storage path too
	_, err = e.Decode(ctx, Select, map[string]any{"tags": `["a",1]`})
	iss, ok := varskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, varskema.CodeInvalidType, iss[0].Code)
}

func TestBooleanFromNumber_StorageAndJSONShapes(t *testing.T) {
	e := Class("Flag").
		Field("active", BooleanFromNumber()).
		MustBuild()

	ctx := context.Background()

	rec, err := e.Decode(ctx, Select, map[string]any{"active": 1})
	require.NoError(t, err)
	assert.Equal(t, true, rec["active"])

	out, err := e.Encode(ctx, Select, varskema.Record{"active": false})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out["active"])

	rec, err = e.Decode(ctx, JSON, map[string]any{"active": true})
	require.NoError(t, err)
	assert.Equal(t, true, rec["active"])

	// truthy coercion is rejected on the storage side
	_, err = e.Decode(ctx, Select, map[string]any{"active": 2})
	iss, ok := varskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, varskema.CodeInvalidFormat, iss[0].Code)
}

func TestModelVariantSet(t *testing.T) {
	set := Variants()
	assert.Equal(t, 6, set.Len())
	assert.True(t, set.Has(Select))
	assert.True(t, set.Has(JSONUpdate))
	assert.Equal(t, Select, DefaultVariant)
}
