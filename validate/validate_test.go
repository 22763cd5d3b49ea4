package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neo4j-field/cypher-guard/diagnostic"
	"github.com/neo4j-field/cypher-guard/elements"
	"github.com/neo4j-field/cypher-guard/parser"
	"github.com/neo4j-field/cypher-guard/schema"
	"github.com/neo4j-field/cypher-guard/validate"
)

const canonicalSchemaJSON = `{
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

func loadCanonicalSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Load([]byte(canonicalSchemaJSON))
	require.NoError(t, err)
	return s
}

func validateQuery(t *testing.T, query string, s *schema.Schema) []diagnostic.Diagnostic {
	t.Helper()
	q, err := parser.Parse(query)
	require.NoError(t, err)
	return validate.Validate(elements.Extract(q), s)
}

func TestValidate_WellFormedQuery_NoDiagnostics(t *testing.T) {
	s := loadCanonicalSchema(t)
	diags := validateQuery(t, `MATCH (a:Person)-[r:KNOWS]->(b:Person) RETURN a.name, r.since`, s)
	assert.Empty(t, diags)
}

func TestValidate_UnknownRelationshipType(t *testing.T) {
	s := loadCanonicalSchema(t)
	diags := validateQuery(t, `MATCH (a:Person)-[r:FOLLOWS]->(b:Person) RETURN a.name`, s)
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostic.InvalidRelationshipType, diags[0].Kind)
	assert.Equal(t, "FOLLOWS", diags[0].RelType)
}

func TestValidate_UnknownLabel_SuppressesPropertyDiagnostic(t *testing.T) {
	s := loadCanonicalSchema(t)
	diags := validateQuery(t, `MATCH (a:User) RETURN a.name`, s)
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostic.InvalidNodeLabel, diags[0].Kind)
	assert.Equal(t, "User", diags[0].Label)
}

func TestValidate_TypeMismatch(t *testing.T) {
	s := loadCanonicalSchema(t)
	diags := validateQuery(t, `MATCH (a:Person) WHERE a.age = '30' RETURN a.name`, s)
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostic.TypeMismatch, diags[0].Kind)
	assert.Equal(t, "Person", diags[0].Label)
	assert.Equal(t, "age", diags[0].Property)
	assert.Equal(t, "INTEGER", diags[0].ExpectedType)
	assert.Equal(t, "STRING", diags[0].GotType)
}

func TestValidate_WrongRelationshipDirection(t *testing.T) {
	s := loadCanonicalSchema(t)
	diags := validateQuery(t, `MATCH (a:Person)<-[r:ACTED_IN]-(b:Movie) RETURN a.name`, s)
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostic.InvalidRelationshipDirection, diags[0].Kind)
	assert.Equal(t, "Person", diags[0].StartLabel)
	assert.Equal(t, "ACTED_IN", diags[0].RelType)
	assert.Equal(t, "Movie", diags[0].EndLabel)
}

func TestValidate_UndefinedVariable(t *testing.T) {
	s := loadCanonicalSchema(t)
	diags := validateQuery(t, `MATCH (a:Person) RETURN b.name`, s)

	var found bool
	for _, d := range diags {
		if d.Kind == diagnostic.UndefinedVariable && d.Variable == "b" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidate_InvalidNodeProperty(t *testing.T) {
	s := loadCanonicalSchema(t)
	diags := validateQuery(t, `MATCH (a:Person) RETURN a.nickname`, s)
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostic.InvalidNodeProperty, diags[0].Kind)
	assert.Equal(t, "nickname", diags[0].Property)
}

func TestValidate_AddingUnrelatedClausePreservesValidity(t *testing.T) {
	s := loadCanonicalSchema(t)
	base := validateQuery(t, `MATCH (a:Person)-[r:KNOWS]->(b:Person) RETURN a.name, r.since`, s)
	extended := validateQuery(t, `MATCH (a:Person)-[r:KNOWS]->(b:Person) WITH a, r LIMIT 5 RETURN a.name, r.since`, s)
	assert.Empty(t, base)
	assert.Empty(t, extended)
}

func TestValidate_TypeCompatibilityTable_EveryTypeAcceptsAndRejects(t *testing.T) {
	doc := `{
		"node_props": {"N": [
			{"name": "s", "neo4j_type": "STRING"},
			{"name": "i", "neo4j_type": "INTEGER"},
			{"name": "f", "neo4j_type": "FLOAT"},
			{"name": "b", "neo4j_type": "BOOLEAN"},
			{"name": "l", "neo4j_type": "LIST"},
			{"name": "p", "neo4j_type": "POINT"},
			{"name": "d", "neo4j_type": "DATE"},
			{"name": "t", "neo4j_type": "DATE_TIME"}
		]},
		"rel_props": {}, "relationships": []
	}`
	s, err := schema.Load([]byte(doc))
	require.NoError(t, err)

	accept := map[string]string{
		"s": `MATCH (a:N) WHERE a.s = 'x' RETURN a`,
		"i": `MATCH (a:N) WHERE a.i = 1 RETURN a`,
		"f": `MATCH (a:N) WHERE a.f = 1.5 RETURN a`,
		"b": `MATCH (a:N) WHERE a.b = true RETURN a`,
		"l": `MATCH (a:N) WHERE a.l = [1, 2] RETURN a`,
		"p": `MATCH (a:N) WHERE a.p = point({x: 1, y: 2}) RETURN a`,
		"d": `MATCH (a:N) WHERE a.d = date('2024-01-15') RETURN a`,
		"t": `MATCH (a:N) WHERE a.t = datetime('2024-01-15T10:30:00Z') RETURN a`,
	}
	for prop, q := range accept {
		diags := validateQuery(t, q, s)
		assert.Empty(t, diags, "expected %s to accept its matching literal kind", prop)
	}

	reject := map[string]string{
		"s": `MATCH (a:N) WHERE a.s = 1 RETURN a`,
		"i": `MATCH (a:N) WHERE a.i = 'x' RETURN a`,
		"f": `MATCH (a:N) WHERE a.f = 'x' RETURN a`,
		"b": `MATCH (a:N) WHERE a.b = 1 RETURN a`,
		"l": `MATCH (a:N) WHERE a.l = 'x' RETURN a`,
		"p": `MATCH (a:N) WHERE a.p = 'x' RETURN a`,
		"d": `MATCH (a:N) WHERE a.d = 1 RETURN a`,
		"t": `MATCH (a:N) WHERE a.t = true RETURN a`,
	}
	for prop, q := range reject {
		diags := validateQuery(t, q, s)
		require.Len(t, diags, 1, "expected %s to reject a mismatched literal kind", prop)
		assert.Equal(t, diagnostic.TypeMismatch, diags[0].Kind)
	}
}
