package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neo4j-field/cypher-guard/ast"
	"github.com/neo4j-field/cypher-guard/diagnostic"
)

func TestParse_SimpleMatchReturn(t *testing.T) {
	q, err := Parse(`MATCH (a:Person)-[r:KNOWS]->(b:Person) RETURN a.name, r.since`)
	require.NoError(t, err)
	require.Len(t, q.Match, 1)
	require.Len(t, q.Return, 1)

	elems := q.Match[0].Patterns[0].Elements
	require.Len(t, elems, 3)
	assert.Equal(t, "Person", elems[0].Node.Label)
	assert.Equal(t, "a", elems[0].Node.Variable)
	assert.Equal(t, ast.Right, elems[1].Relationship.Direction)
	assert.Equal(t, "KNOWS", elems[1].Relationship.RelType())
	assert.Equal(t, "Person", elems[2].Node.Label)
}

func TestParse_MatchAndWhere(t *testing.T) {
	q, err := Parse(`MATCH (a:Person) WHERE a.age = 30 RETURN a.name`)
	require.NoError(t, err)
	require.Len(t, q.Where, 1)
	cond := q.Where[0].Condition
	assert.Equal(t, ast.CondComparison, cond.Kind)
	assert.Equal(t, ast.OpEq, cond.Op)
}

func TestParse_LeftDirectionRelationship(t *testing.T) {
	q, err := Parse(`MATCH (a:Person)<-[r:ACTED_IN]-(b:Movie) RETURN a.name`)
	require.NoError(t, err)
	elems := q.Match[0].Patterns[0].Elements
	assert.Equal(t, ast.Left, elems[1].Relationship.Direction)
}

func TestParse_VariableLengthAndOptionalRelationship(t *testing.T) {
	q, err := Parse(`MATCH (a)-[r:KNOWS*1..5?]->(b) RETURN a`)
	require.NoError(t, err)
	rel := q.Match[0].Patterns[0].Elements[1].Relationship
	require.NotNil(t, rel.LengthRange)
	assert.Equal(t, int64(1), *rel.LengthRange.Min)
	assert.Equal(t, int64(5), *rel.LengthRange.Max)
	assert.True(t, rel.Optional)
}

func TestParse_MultiTypeRelationship(t *testing.T) {
	q, err := Parse(`MATCH (a)-[r:KNOWS|FOLLOWS]->(b) RETURN a`)
	require.NoError(t, err)
	rel := q.Match[0].Patterns[0].Elements[1].Relationship
	assert.Equal(t, []string{"KNOWS", "FOLLOWS"}, rel.RelTypes)
}

func TestParse_MergeWithOnCreateOnMatch(t *testing.T) {
	q, err := Parse(`MERGE (a:Person {name: 'Tom'}) ON CREATE SET a.age = 1 ON MATCH SET a.age = 2 RETURN a`)
	require.NoError(t, err)
	require.Len(t, q.Merge, 1)
	assert.Len(t, q.Merge[0].OnCreate, 1)
	assert.Len(t, q.Merge[0].OnMatch, 1)
}

func TestParse_WithProjectionAndLimit(t *testing.T) {
	q, err := Parse(`MATCH (a:Person) WITH a, count(*) AS c RETURN a.name LIMIT 10`)
	require.NoError(t, err)
	require.Len(t, q.With, 1)
	require.Len(t, q.Limit, 1)
}

func TestParse_UnwindAndCall(t *testing.T) {
	q, err := Parse(`UNWIND [1, 2, 3] AS x CALL db.info() RETURN x`)
	require.NoError(t, err)
	require.Len(t, q.Unwind, 1)
	require.Len(t, q.Call, 1)
	assert.Equal(t, "db.info", q.Call[0].Name)
}

func TestParse_BareReturnOfLiteral_IsValid(t *testing.T) {
	_, err := Parse(`RETURN 1`)
	require.NoError(t, err)
}

func TestParse_BareReturnOfIdentifier_IsRejected(t *testing.T) {
	_, err := Parse(`RETURN n.name`)
	require.Error(t, err)

	var parseErr *diagnostic.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, diagnostic.KindReturnBeforeOtherClauses, parseErr.Kind)
}

func TestParse_MatchAfterReturn_IsRejected(t *testing.T) {
	_, err := Parse(`MATCH (a:Person) RETURN a MATCH (b:Person) RETURN b`)
	require.Error(t, err)

	var parseErr *diagnostic.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, diagnostic.KindMatchAfterReturn, parseErr.Kind)
}

func TestParse_UnterminatedString(t *testing.T) {
	_, err := Parse(`MATCH (a:Person {name: 'Tom}) RETURN a`)
	require.Error(t, err)
	var parseErr *diagnostic.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, diagnostic.KindUnterminatedString, parseErr.Kind)
}

func TestParse_NumberOutOfRange(t *testing.T) {
	_, err := Parse(`MATCH (a:Person) WHERE a.age = 99999999999999999999 RETURN a`)
	require.Error(t, err)
	var parseErr *diagnostic.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, diagnostic.KindNumberOutOfRange, parseErr.Kind)
}

func TestCheckSyntax_AgreesWithParse(t *testing.T) {
	queries := []string{
		`MATCH (a:Person) RETURN a.name`,
		`RETURN n.name`,
		`MATCH (a:Person)-[:FOLLOWS]->`,
	}
	for _, q := range queries {
		_, parseErr := Parse(q)
		syntaxErr := CheckSyntax(q)
		assert.Equal(t, parseErr == nil, syntaxErr == nil, "query: %s", q)
	}
}
