package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neo4j-field/cypher-guard/diagnostic"
)

const canonicalSchema = `{
	"node_props": {
		"Person": [{"name": "name", "neo4j_type": "STRING"}, {"name": "age", "neo4j_type": "INTEGER"}],
		"Movie": [{"name": "title", "neo4j_type": "STRING"}, {"name": "year", "neo4j_type": "INTEGER"}]
	},
	"rel_props": {
		"KNOWS": [{"name": "since", "neo4j_type": "DATE_TIME"}],
		"ACTED_IN": [{"name": "role", "neo4j_type": "STRING"}]
	},
	"relationships": [
		{"start": "Person", "rel_type": "KNOWS", "end": "Person"},
		{"start": "Person", "rel_type": "ACTED_IN", "end": "Movie"}
	]
}`

func TestLoad_CanonicalDialect(t *testing.T) {
	s, err := Load([]byte(canonicalSchema))
	require.NoError(t, err)

	assert.True(t, s.HasNodeLabel("Person"))
	assert.True(t, s.HasNodeLabel("Movie"))
	assert.True(t, s.HasRelType("KNOWS"))
	assert.True(t, s.HasEdge("Person", "ACTED_IN", "Movie"))
	assert.False(t, s.HasEdge("Movie", "ACTED_IN", "Person"))

	prop, ok := s.NodeProperty("Person", "age")
	require.True(t, ok)
	assert.Equal(t, TypeInteger, prop.Type)
}

func TestLoad_LegacyDialect(t *testing.T) {
	legacy := `{
		"nodeProps": {"Person": [{"property": "name", "type": "STRING"}]},
		"relProps": {"KNOWS": [{"property": "since", "type": "DATETIME"}]},
		"relationships": [{"start": "Person", "rel_type": "KNOWS", "end": "Person"}]
	}`
	s, err := Load([]byte(legacy))
	require.NoError(t, err)

	assert.True(t, s.HasNodeLabel("Person"))
	prop, ok := s.RelProperty("KNOWS", "since")
	require.True(t, ok)
	assert.Equal(t, TypeDateTime, prop.Type)
}

func TestLoad_RejectsMalformedJSON(t *testing.T) {
	_, err := Load([]byte("{not json"))
	require.Error(t, err)

	var schemaErr *diagnostic.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, diagnostic.KindJSONMalformed, schemaErr.Kind)
}

func TestLoad_RejectsDanglingLabel(t *testing.T) {
	doc := `{
		"node_props": {"Person": []},
		"rel_props": {"KNOWS": []},
		"relationships": [{"start": "Person", "rel_type": "KNOWS", "end": "Ghost"}]
	}`
	_, err := Load([]byte(doc))
	require.Error(t, err)

	var schemaErr *diagnostic.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, diagnostic.KindDanglingLabel, schemaErr.Kind)
}

func TestLoad_RejectsDuplicateProperty(t *testing.T) {
	doc := `{
		"node_props": {"Person": [{"name": "name", "neo4j_type": "STRING"}, {"name": "name", "neo4j_type": "INTEGER"}]},
		"rel_props": {},
		"relationships": []
	}`
	_, err := Load([]byte(doc))
	require.Error(t, err)

	var schemaErr *diagnostic.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, diagnostic.KindDuplicatePropertyName, schemaErr.Kind)
}

func TestLoad_RejectsUnknownPropertyType(t *testing.T) {
	doc := `{"node_props": {"Person": [{"name": "name", "neo4j_type": "WEIRD"}]}, "rel_props": {}, "relationships": []}`
	_, err := Load([]byte(doc))
	require.Error(t, err)

	var schemaErr *diagnostic.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, diagnostic.KindUnknownPropertyType, schemaErr.Kind)
}

func TestSchema_MarshalJSON_RoundTrip(t *testing.T) {
	s, err := Load([]byte(canonicalSchema))
	require.NoError(t, err)

	first, err := s.MarshalJSON()
	require.NoError(t, err)

	reloaded, err := Load(first)
	require.NoError(t, err)

	second, err := reloaded.MarshalJSON()
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}

func TestSchema_MarshalJSON_NormalizesLegacyDialect(t *testing.T) {
	legacy := `{
		"nodeProps": {"Person": [{"property": "name", "type": "STRING"}]},
		"relProps": {},
		"relationships": []
	}`
	s, err := Load([]byte(legacy))
	require.NoError(t, err)

	out, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"node_props"`)
	assert.Contains(t, string(out), `"neo4j_type"`)
	assert.NotContains(t, string(out), `"nodeProps"`)
}
