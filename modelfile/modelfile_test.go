package modelfile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	varskema "github.com/varskema/varskema"
	"github.com/varskema/varskema/dtype"
	"github.com/varskema/varskema/modelfile"
)

const userModel = `
variants: [select, insert, update, json]
default: select
fields:
  id:       {type: int, only: [select, update, json]}
  fullName: {type: string, keys: {select: full_name, insert: full_name, update: full_name, json: fullName}}
  secret:   {type: string, except: [json]}
  tags:     {type: "[]string", optional: true}
`

func TestParse_MatchesInCodeBuilder(t *testing.T) {
	spec, err := modelfile.Parse([]byte(userModel), modelfile.NewRegistry())
	require.NoError(t, err)

	set := varskema.Variants("select", "insert", "update", "json")
	want := varskema.NewStruct(set, "select").
		Field("id", varskema.FieldOnly("select", "update", "json")(dtype.Int())).
		Field("fullName", varskema.FieldFromKeys(map[varskema.Variant]string{
			"select": "full_name", "insert": "full_name", "update": "full_name", "json": "fullName",
		})(dtype.String())).
		Field("secret", varskema.FieldExcept("json")(dtype.String())).
		Field("tags", varskema.FieldExcept()(dtype.Array(dtype.String()))).
		MustBuild()

	assert.Equal(t, want.FieldNames(), spec.FieldNames())
	for _, v := range set.List() {
		got, err := spec.Schema(v)
		require.NoError(t, err)
		ref, err := want.Schema(v)
		require.NoError(t, err)
		assert.Equal(t, ref.Keys(), got.Keys(), "variant %s", v)
	}
}

func TestParse_PreservesDeclarationOrder(t *testing.T) {
	spec, err := modelfile.Parse([]byte(userModel), modelfile.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "fullName", "secret", "tags"}, spec.FieldNames())
}

func TestParse_UnknownType(t *testing.T) {
	data := []byte(`
variants: [a]
default: a
fields:
  x: {type: widget}
`)
	_, err := modelfile.Parse(data, modelfile.NewRegistry())
	iss, ok := varskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, varskema.CodeInvalidType, iss[0].Code)
	assert.Equal(t, "/fields/x", iss[0].Path)
}

func TestParse_DuplicateVariant(t *testing.T) {
	data := []byte(`
variants: [a, a]
default: a
fields:
  x: {type: string}
`)
	_, err := modelfile.Parse(data, modelfile.NewRegistry())
	iss, ok := varskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, varskema.CodeParseError, iss[0].Code)
	assert.Equal(t, "/variants", iss[0].Path)
}

func TestParse_MissingVariants(t *testing.T) {
	data := []byte(`
default: a
fields:
  x: {type: string}
`)
	_, err := modelfile.Parse(data, modelfile.NewRegistry())
	iss, ok := varskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, varskema.CodeEmptySchema, iss[0].Code)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := modelfile.Parse([]byte("variants: [unterminated"), modelfile.NewRegistry())
	iss, ok := varskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, varskema.CodeParseError, iss[0].Code)
}

func TestRegistry_CustomAndArrayTypes(t *testing.T) {
	reg := modelfile.NewRegistry()
	reg.Register("money", dtype.Int())

	d, err := reg.Resolve("money")
	require.NoError(t, err)
	require.NotNil(t, d)

	arr, err := reg.Resolve("[][]int")
	require.NoError(t, err)
	got, err := arr.Decode(context.Background(), []any{[]any{1}})
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{int64(1)}}, got)

	_, err = reg.Resolve("[]widget")
	require.Error(t, err)
}

func TestParseClass_DecodesAgainstFileVariants(t *testing.T) {
	e, err := modelfile.ParseClass("User", []byte(userModel), modelfile.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, "User", e.Name())

	ctx := context.Background()
	rec, err := e.Decode(ctx, "select", map[string]any{
		"id":        1,
		"full_name": "Ada",
		"secret":    "s3cr3t",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", rec["fullName"])

	// optional field may be omitted; json variant hides secret
	rec, err = e.Decode(ctx, "json", map[string]any{
		"id":       1,
		"fullName": "Ada",
	})
	require.NoError(t, err)
	_, hasSecret := rec["secret"]
	assert.False(t, hasSecret)
}
