package elements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neo4j-field/cypher-guard/ast"
	"github.com/neo4j-field/cypher-guard/parser"
)

func mustParse(t *testing.T, q string) *ast.Query {
	t.Helper()
	query, err := parser.Parse(q)
	require.NoError(t, err)
	return query
}

func TestExtract_NodeAndRelationshipBindings(t *testing.T) {
	q := mustParse(t, `MATCH (a:Person)-[r:KNOWS]->(b:Person) RETURN a.name, r.since`)
	qe := Extract(q)

	assert.ElementsMatch(t, []string{"Person"}, qe.NodeLabels.Items())
	assert.ElementsMatch(t, []string{"KNOWS"}, qe.RelationshipTypes.Items())
	assert.Equal(t, "Person", qe.VariableNodeBindings["a"])
	assert.Equal(t, "KNOWS", qe.VariableRelationshipBindings["r"])
	assert.ElementsMatch(t, []string{"name"}, qe.NodeProperties["Person"].Items())
	assert.ElementsMatch(t, []string{"since"}, qe.RelationshipProps["KNOWS"].Items())

	require.Len(t, qe.PatternEdges, 1)
	edge := qe.PatternEdges[0]
	assert.Equal(t, "Person", edge.StartLabel)
	assert.Equal(t, "KNOWS", edge.RelType)
	assert.Equal(t, "Person", edge.EndLabel)
	assert.Equal(t, ast.Right, edge.Direction)
}

func TestExtract_UndefinedVariableReference(t *testing.T) {
	q := mustParse(t, `MATCH (a:Person) RETURN b.name`)
	qe := Extract(q)

	assert.True(t, qe.DefinedVariables.has("a"))
	assert.True(t, qe.ReferencedVariables.has("b"))
	assert.False(t, qe.DefinedVariables.has("b"))
}

func TestExtract_WithRescopesVariables(t *testing.T) {
	q := mustParse(t, `MATCH (a:Person)-[r:KNOWS]->(b:Person) WITH a AS p RETURN p.name, b.name`)
	qe := Extract(q)

	// p forwards a's Person binding, so p.name is a node-property access on Person.
	assert.Contains(t, qe.NodeProperties["Person"].Items(), "name")
	// b was not re-projected by WITH, so b.name resolves to nothing and b is
	// merely referenced, never bound in the post-WITH scope.
	assert.True(t, qe.ReferencedVariables.has("b"))
}

func TestExtract_PropertyComparisonLiteralKind(t *testing.T) {
	q := mustParse(t, `MATCH (a:Person) WHERE a.age = 30 RETURN a.name`)
	qe := Extract(q)

	require.Len(t, qe.PropertyComparisons, 1)
	cmp := qe.PropertyComparisons[0]
	assert.Equal(t, "a", cmp.Variable)
	assert.Equal(t, "age", cmp.Property)
	assert.Equal(t, LiteralInteger, cmp.LiteralKind)
}

func TestExtract_InlinePropertiesRecordedAsAccesses(t *testing.T) {
	q := mustParse(t, `MATCH (a:Person {name: 'Tom'}) RETURN a.name`)
	qe := Extract(q)
	assert.Contains(t, qe.NodeProperties["Person"].Items(), "name")
}
