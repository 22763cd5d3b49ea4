// Package elements implements the element-extraction stage: a pre-order
// walk over a parsed ast.Query that lifts it into a normalized bag of
// references (QueryElements) the schema validator cross-checks against a
// schema, without re-walking the tree itself.
package elements

import "github.com/neo4j-field/cypher-guard/ast"

// orderedSet is an insertion-ordered string set: membership via the map,
// deterministic iteration via the slice. Diagnostics must be produced in the
// order their underlying elements were first encountered, so every set in
// QueryElements uses this instead of a bare map.
type orderedSet struct {
	order []string
	seen  map[string]bool
}

func newOrderedSet() orderedSet {
	return orderedSet{seen: make(map[string]bool)}
}

func (o *orderedSet) add(v string) {
	if v == "" || o.seen[v] {
		return
	}
	o.seen[v] = true
	o.order = append(o.order, v)
}

func (o orderedSet) has(v string) bool {
	return o.seen[v]
}

// Items returns the set's members in first-encountered order.
func (o orderedSet) Items() []string {
	out := make([]string, len(o.order))
	copy(out, o.order)
	return out
}

// PropertyAccess is one `var.prop` reference site, tagged with the clause it
// appeared in (for diagnostics/debugging, not consulted by validation rules).
type PropertyAccess struct {
	Variable string
	Property string
	Context  string
}

// LiteralKind classifies the literal type of a property_comparison's
// right-hand side, used by the validator's type-conformance check.
type LiteralKind int

const (
	LiteralUnknown LiteralKind = iota
	LiteralString
	LiteralInteger
	LiteralFloat
	LiteralBoolean
	LiteralNull
	LiteralList
	LiteralMap
	LiteralFunctionCall
)

// PropertyComparison is one `var.prop <op> literal` WHERE comparison.
type PropertyComparison struct {
	Variable     string
	Property     string
	LiteralKind  LiteralKind
	FunctionName string // populated only when LiteralKind == LiteralFunctionCall
}

// PatternEdge is one extracted relationship edge: the labels of its
// immediately adjacent node patterns (empty if unlabeled/unresolvable), its
// relationship type, and its direction as written in the query.
type PatternEdge struct {
	StartLabel string
	RelType    string
	EndLabel   string
	Direction  ast.Direction
}

// QueryElements is the immutable result of Extract: every schema-relevant
// reference the query makes, normalized and deduplicated.
type QueryElements struct {
	NodeLabels          orderedSet
	RelationshipTypes   orderedSet
	NodeProperties      map[string]*orderedSet // label -> property names
	RelationshipProps   map[string]*orderedSet // rel type -> property names
	PropertyAccesses    []PropertyAccess
	PropertyComparisons []PropertyComparison
	DefinedVariables    orderedSet
	ReferencedVariables orderedSet
	PatternEdges        []PatternEdge

	VariableNodeBindings         map[string]string
	VariableRelationshipBindings map[string]string

	// NodePropertyLabelOrder/RelationshipPropertyTypeOrder record the order
	// in which labels/rel types first acquired a tracked property, since
	// map iteration order is not itself deterministic.
	NodePropertyLabelOrder        []string
	RelationshipPropertyTypeOrder []string
}

func newQueryElements() *QueryElements {
	return &QueryElements{
		NodeLabels:                   newOrderedSet(),
		RelationshipTypes:            newOrderedSet(),
		NodeProperties:               make(map[string]*orderedSet),
		RelationshipProps:            make(map[string]*orderedSet),
		DefinedVariables:             newOrderedSet(),
		ReferencedVariables:          newOrderedSet(),
		VariableNodeBindings:         make(map[string]string),
		VariableRelationshipBindings: make(map[string]string),
	}
}

func (q *QueryElements) addNodeProperty(label, prop string) {
	if label == "" || prop == "" {
		return
	}
	set, ok := q.NodeProperties[label]
	if !ok {
		s := newOrderedSet()
		set = &s
		q.NodeProperties[label] = set
		q.NodePropertyLabelOrder = append(q.NodePropertyLabelOrder, label)
	}
	set.add(prop)
}

func (q *QueryElements) addRelProperty(relType, prop string) {
	if relType == "" || prop == "" {
		return
	}
	set, ok := q.RelationshipProps[relType]
	if !ok {
		s := newOrderedSet()
		set = &s
		q.RelationshipProps[relType] = set
		q.RelationshipPropertyTypeOrder = append(q.RelationshipPropertyTypeOrder, relType)
	}
	set.add(prop)
}
