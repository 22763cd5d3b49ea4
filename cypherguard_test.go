package cypherguard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cypherguard "github.com/neo4j-field/cypher-guard"
	"github.com/neo4j-field/cypher-guard/diagnostic"
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

func TestValidate_WellFormedQuery(t *testing.T) {
	s, err := cypherguard.LoadSchema([]byte(canonicalSchemaJSON))
	require.NoError(t, err)

	diags, err := cypherguard.Validate(`MATCH (a:Person)-[r:KNOWS]->(b:Person) RETURN a.name, r.since`, s)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestValidate_PropagatesParseError(t *testing.T) {
	s, err := cypherguard.LoadSchema([]byte(canonicalSchemaJSON))
	require.NoError(t, err)

	_, err = cypherguard.Validate(`RETURN n.name`, s)
	require.Error(t, err)

	var parseErr *diagnostic.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestValidate_IsDeterministic(t *testing.T) {
	s, err := cypherguard.LoadSchema([]byte(canonicalSchemaJSON))
	require.NoError(t, err)

	query := `MATCH (a:User)-[r:FOLLOWS]->(b:User) WHERE a.nickname = 1 RETURN a.nickname`
	first, err := cypherguard.Validate(query, s)
	require.NoError(t, err)
	second, err := cypherguard.Validate(query, s)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestIsWriteIsRead_MutuallyExclusive(t *testing.T) {
	cases := []struct {
		query   string
		isWrite bool
	}{
		{`MATCH (a:Person) RETURN a.name`, false},
		{`CREATE (a:Person {name: 'Tom'}) RETURN a`, true},
		{`MATCH (a:Person) SET a.age = 1 RETURN a`, true},
		{`MERGE (a:Person {name: 'Tom'}) RETURN a`, true},
	}

	for _, c := range cases {
		w, err := cypherguard.IsWrite(c.query)
		require.NoError(t, err)
		r, err := cypherguard.IsRead(c.query)
		require.NoError(t, err)

		assert.Equal(t, c.isWrite, w, c.query)
		assert.NotEqual(t, w, r, c.query)
	}
}

func TestHasParserErrors(t *testing.T) {
	assert.False(t, cypherguard.HasParserErrors(`MATCH (a:Person) RETURN a.name`))
	assert.True(t, cypherguard.HasParserErrors(`MATCH (a:Person`))
}

func TestCheckSyntax_MatchesParse(t *testing.T) {
	assert.NoError(t, cypherguard.CheckSyntax(`MATCH (a:Person) RETURN a.name`))
	assert.Error(t, cypherguard.CheckSyntax(`MATCH (a:Person RETURN a`))
}
