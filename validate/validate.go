// Package validate implements the schema-conformance checker: seven
// ordered, non-short-circuiting rules that cross-reference an extracted
// elements.QueryElements against a schema.Schema and accumulate every
// violation as a diagnostic.Diagnostic. An empty result means the query is
// schema-valid; diagnostics are never fatal.
package validate

import (
	"github.com/neo4j-field/cypher-guard/ast"
	"github.com/neo4j-field/cypher-guard/diagnostic"
	"github.com/neo4j-field/cypher-guard/elements"
	"github.com/neo4j-field/cypher-guard/schema"
)

// Validate runs all seven rules in spec order and returns every diagnostic
// they produce, in the order: rule order, then first-encountered order of
// the underlying elements within each rule.
func Validate(qe *elements.QueryElements, s *schema.Schema) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic

	out = append(out, checkNodeLabels(qe, s)...)
	out = append(out, checkRelTypes(qe, s)...)
	out = append(out, checkEdges(qe, s)...)
	out = append(out, checkNodeProperties(qe, s)...)
	out = append(out, checkRelProperties(qe, s)...)
	out = append(out, checkVariableReferences(qe)...)
	out = append(out, checkTypeConformance(qe, s)...)

	return out
}

func checkNodeLabels(qe *elements.QueryElements, s *schema.Schema) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, label := range qe.NodeLabels.Items() {
		if !s.HasNodeLabel(label) {
			out = append(out, diagnostic.Diagnostic{
				Kind: diagnostic.InvalidNodeLabel, Label: label,
				Message: "label " + label + " is not declared in the schema",
			})
		}
	}
	return out
}

func checkRelTypes(qe *elements.QueryElements, s *schema.Schema) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, relType := range qe.RelationshipTypes.Items() {
		if !s.HasRelType(relType) {
			out = append(out, diagnostic.Diagnostic{
				Kind: diagnostic.InvalidRelationshipType, RelType: relType,
				Message: "relationship type " + relType + " is not declared in the schema",
			})
		}
	}
	return out
}

func checkEdges(qe *elements.QueryElements, s *schema.Schema) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, edge := range qe.PatternEdges {
		if edge.StartLabel == "" || edge.EndLabel == "" || edge.RelType == "" {
			continue
		}
		if !s.HasNodeLabel(edge.StartLabel) || !s.HasNodeLabel(edge.EndLabel) || !s.HasRelType(edge.RelType) {
			// Rules 1/2 already reported the unknown label or rel type.
			continue
		}

		forward := edge.StartLabel
		reverse := edge.EndLabel
		switch edge.Direction {
		case ast.Right:
			if s.HasEdge(edge.StartLabel, edge.RelType, edge.EndLabel) {
				continue
			}
			if s.HasEdge(edge.EndLabel, edge.RelType, edge.StartLabel) {
				out = append(out, diagnostic.Diagnostic{
					Kind: diagnostic.InvalidRelationshipDirection,
					StartLabel: edge.StartLabel, RelType: edge.RelType, EndLabel: edge.EndLabel,
					Message: "relationship " + edge.RelType + " exists only in the reverse direction",
				})
				continue
			}
		case ast.Left:
			if s.HasEdge(edge.EndLabel, edge.RelType, edge.StartLabel) {
				continue
			}
			if s.HasEdge(edge.StartLabel, edge.RelType, edge.EndLabel) {
				out = append(out, diagnostic.Diagnostic{
					Kind: diagnostic.InvalidRelationshipDirection,
					StartLabel: edge.StartLabel, RelType: edge.RelType, EndLabel: edge.EndLabel,
					Message: "relationship " + edge.RelType + " exists only in the reverse direction",
				})
				continue
			}
		default: // Undirected: either direction satisfies the pattern.
			if s.HasEdge(forward, edge.RelType, reverse) || s.HasEdge(reverse, edge.RelType, forward) {
				continue
			}
		}

		out = append(out, diagnostic.Diagnostic{
			Kind: diagnostic.InvalidRelationship,
			StartLabel: edge.StartLabel, RelType: edge.RelType, EndLabel: edge.EndLabel,
			Message: "no declared edge " + edge.StartLabel + "-[" + edge.RelType + "]->" + edge.EndLabel,
		})
	}
	return out
}

func checkNodeProperties(qe *elements.QueryElements, s *schema.Schema) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, label := range qe.NodePropertyLabelOrder {
		if !s.HasNodeLabel(label) {
			// Rule 1 already reported the unknown label; don't pile on a
			// property diagnostic for a label that doesn't exist.
			continue
		}
		for _, prop := range qe.NodeProperties[label].Items() {
			if _, ok := s.NodeProperty(label, prop); !ok {
				out = append(out, diagnostic.Diagnostic{
					Kind: diagnostic.InvalidNodeProperty, Label: label, Property: prop,
					Message: "property " + prop + " is not declared on label " + label,
				})
			}
		}
	}
	return out
}

func checkRelProperties(qe *elements.QueryElements, s *schema.Schema) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, relType := range qe.RelationshipPropertyTypeOrder {
		if !s.HasRelType(relType) {
			continue
		}
		for _, prop := range qe.RelationshipProps[relType].Items() {
			if _, ok := s.RelProperty(relType, prop); !ok {
				out = append(out, diagnostic.Diagnostic{
					Kind: diagnostic.InvalidRelationshipProperty, RelType: relType, Property: prop,
					Message: "property " + prop + " is not declared on relationship type " + relType,
				})
			}
		}
	}
	return out
}

func checkVariableReferences(qe *elements.QueryElements) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, v := range qe.ReferencedVariables.Items() {
		if !qe.DefinedVariables.has(v) {
			out = append(out, diagnostic.Diagnostic{
				Kind: diagnostic.UndefinedVariable, Variable: v,
				Message: "variable " + v + " is referenced but never defined",
			})
		}
	}
	return out
}

func checkTypeConformance(qe *elements.QueryElements, s *schema.Schema) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, cmp := range qe.PropertyComparisons {
		label, isNode := qe.VariableNodeBindings[cmp.Variable]
		relType, isRel := qe.VariableRelationshipBindings[cmp.Variable]

		var decl schema.PropertyDeclaration
		var owner string
		var ok bool
		switch {
		case isNode:
			decl, ok = s.NodeProperty(label, cmp.Property)
			owner = label
		case isRel:
			decl, ok = s.RelProperty(relType, cmp.Property)
			owner = relType
		default:
			continue // no label/rel-type binding from a pattern (undefined, unlabeled, or a WITH alias); not type-checked.
		}
		if !ok {
			continue // unknown property; rules 4/5 already report it.
		}

		if accepts(decl.Type, cmp.LiteralKind, cmp.FunctionName) {
			continue
		}

		out = append(out, diagnostic.Diagnostic{
			Kind: diagnostic.TypeMismatch, Label: owner, Property: cmp.Property,
			ExpectedType: string(decl.Type), GotType: gotTypeName(cmp.LiteralKind),
			Message: "property " + cmp.Property + " expects " + string(decl.Type) + " but got " + gotTypeName(cmp.LiteralKind),
		})
	}
	return out
}

func gotTypeName(lk elements.LiteralKind) string {
	switch lk {
	case elements.LiteralString:
		return "STRING"
	case elements.LiteralInteger:
		return "INTEGER"
	case elements.LiteralFloat:
		return "FLOAT"
	case elements.LiteralBoolean:
		return "BOOLEAN"
	case elements.LiteralNull:
		return "NULL"
	case elements.LiteralList:
		return "LIST"
	case elements.LiteralMap:
		return "MAP"
	case elements.LiteralFunctionCall:
		return "FUNCTION_CALL"
	default:
		return "UNKNOWN"
	}
}

// accepts implements the §4.4 compatibility table between a declared
// neo4j_type and an observed literal kind (plus, for POINT/DATE/DATE_TIME,
// the specific function name when the literal is a function call).
func accepts(declared schema.PropertyType, lk elements.LiteralKind, fn string) bool {
	switch declared {
	case schema.TypeString:
		return lk == elements.LiteralString
	case schema.TypeInteger:
		return lk == elements.LiteralInteger
	case schema.TypeFloat:
		return lk == elements.LiteralInteger || lk == elements.LiteralFloat
	case schema.TypeBoolean:
		return lk == elements.LiteralBoolean
	case schema.TypePoint:
		return lk == elements.LiteralMap || (lk == elements.LiteralFunctionCall && equalFold(fn, "point"))
	case schema.TypeDate:
		return lk == elements.LiteralString || (lk == elements.LiteralFunctionCall && equalFold(fn, "date"))
	case schema.TypeDateTime:
		return lk == elements.LiteralString || (lk == elements.LiteralFunctionCall && (equalFold(fn, "datetime") || equalFold(fn, "date")))
	case schema.TypeList:
		return lk == elements.LiteralList
	default:
		return false
	}
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
