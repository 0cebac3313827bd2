package toolspec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainRecord_RequiredDerivation(t *testing.T) {
	t.Parallel()
	rec := NewPlainRecord("Args",
		Field{Name: "a", Type: Integer()},
		Field{Name: "b", Type: Integer(), HasDefault: true, Default: 0},
	)
	n, err := Resolve(rec)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, n.Required)
	assert.True(t, n.Closed)
}

func TestPlainRecord_DefaultFactoryNotRequired(t *testing.T) {
	t.Parallel()
	rec := NewPlainRecord("Args",
		Field{Name: "items", Type: Sequence(String()), DefaultFactory: func() any { return []string{} }},
		Field{Name: "name", Type: String()},
	)
	n, err := Resolve(rec)
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, n.Required)
}

func TestPlainRecord_PropertyOrder(t *testing.T) {
	t.Parallel()
	rec := NewPlainRecord("Args",
		Field{Name: "zeta", Type: String()},
		Field{Name: "alpha", Type: Integer()},
		Field{Name: "mid", Type: Boolean()},
	)
	n, err := Resolve(rec)
	require.NoError(t, err)
	var got []string
	for pair := n.Properties.Oldest(); pair != nil; pair = pair.Next() {
		got = append(got, pair.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, got, "declaration order must survive")
}

func TestStructuralMapping_AllRequiredByDefault(t *testing.T) {
	t.Parallel()
	sm := NewStructuralMapping("Opts",
		Key{Name: "host", Type: String()},
		Key{Name: "port", Type: Integer()},
	)
	n, err := Resolve(sm)
	require.NoError(t, err)
	assert.Equal(t, []string{"host", "port"}, n.Required)
}

func TestStructuralMapping_ExplicitRequired(t *testing.T) {
	t.Parallel()
	sm := NewStructuralMapping("Opts",
		Key{Name: "host", Type: String()},
		Key{Name: "port", Type: Integer()},
	).WithRequired("host")
	n, err := Resolve(sm)
	require.NoError(t, err)
	assert.Equal(t, []string{"host"}, n.Required)
}

func TestStructuralMapping_ExplicitlyEmpty(t *testing.T) {
	t.Parallel()
	sm := NewStructuralMapping("Opts",
		Key{Name: "host", Type: String()},
	).WithRequired()
	n, err := Resolve(sm)
	require.NoError(t, err)
	assert.Empty(t, n.Required)
	data := mustJSON(t, n)
	assert.Contains(t, data, `"required":[]`, "empty required set must still be emitted")
}

type weatherQuery struct {
	City string `json:"city" jsonschema:"description=City name"`
	Days int    `json:"days,omitempty"`
}

func TestValidatedRecord_ExportedSchema(t *testing.T) {
	t.Parallel()
	n, err := Resolve(ValidatedRecordFor(weatherQuery{}))
	require.NoError(t, err)
	require.NotNil(t, n.Properties)
	city, ok := n.Properties.Get("city")
	require.True(t, ok)
	assert.Equal(t, "string", city.Type)
	assert.Equal(t, "City name", city.Description)
	days, ok := n.Properties.Get("days")
	require.True(t, ok)
	assert.Equal(t, "integer", days.Type)
	// omitempty fields are optional in the exported schema.
	assert.Equal(t, []string{"city"}, n.Required)
	assert.True(t, n.Closed)
}

type geoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type place struct {
	Name     string   `json:"name"`
	Location geoPoint `json:"location"`
}

func TestValidatedRecord_InlinesOneLevel(t *testing.T) {
	t.Parallel()
	n, err := Resolve(ValidatedRecordFor(place{}))
	require.NoError(t, err)
	loc, ok := n.Properties.Get("location")
	require.True(t, ok)
	// The $ref to the shared geoPoint definition is replaced with its body.
	assert.Empty(t, loc.Ref)
	assert.Equal(t, "object", loc.Type)
	lat, ok := loc.Properties.Get("lat")
	require.True(t, ok)
	assert.Equal(t, "number", lat.Type)
}

type leg struct {
	From geoPoint `json:"from"`
	To   geoPoint `json:"to"`
}

type trip struct {
	First leg `json:"first"`
}

// References nested two levels deep are left verbatim: the extractor flattens
// exactly one level of indirection.
func TestValidatedRecord_DeepRefPreserved(t *testing.T) {
	t.Parallel()
	n, err := Resolve(ValidatedRecordFor(trip{}))
	require.NoError(t, err)
	first, ok := n.Properties.Get("first")
	require.True(t, ok)
	assert.Empty(t, first.Ref, "first level must be inlined")
	from, ok := first.Properties.Get("from")
	require.True(t, ok)
	assert.NotEmpty(t, from.Ref, "second level stays a reference")
	b, err := json.Marshal(from)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"$ref"`)
}

func TestValidatedRecord_NameFromType(t *testing.T) {
	t.Parallel()
	rec := ValidatedRecordFor(weatherQuery{})
	assert.Equal(t, "weatherQuery", rec.Name)
}

func TestValidatedRecord_NilSchema(t *testing.T) {
	t.Parallel()
	n, err := Resolve(&ValidatedRecord{Name: "empty"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object","properties":{},"required":[],"additionalProperties":false}`, mustJSON(t, n))
}

func TestMappingToValidatedRecordCollapse(t *testing.T) {
	t.Parallel()
	rec := ValidatedRecordFor(weatherQuery{})
	direct, err := Resolve(rec)
	require.NoError(t, err)
	viaMapping, err := Resolve(Mapping(String(), rec))
	require.NoError(t, err)
	assert.True(t, direct.Equal(viaMapping))
}

func TestMappingToStructuralCollapse(t *testing.T) {
	t.Parallel()
	sm := NewStructuralMapping("Opts", Key{Name: "k", Type: String()})
	direct, err := Resolve(sm)
	require.NoError(t, err)
	viaMapping, err := Resolve(Mapping(String(), sm))
	require.NoError(t, err)
	assert.True(t, direct.Equal(viaMapping))
}
