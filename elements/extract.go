package elements

import "github.com/neo4j-field/cypher-guard/ast"

// Extract performs the pre-order walk over query producing its
// QueryElements: every node label and relationship type mentioned,
// per-variable label/type bindings, property access/comparison sites,
// pattern edges, and the defined/referenced variable sets.
func Extract(query *ast.Query) *QueryElements {
	qe := newQueryElements()
	scope := newScopeStack()

	for _, ref := range query.ClauseOrder {
		switch ref.Kind {
		case ast.KindMatch:
			walkPathPatterns(qe, scope, query.Match[ref.Index].Patterns, "match")
		case ast.KindCreate:
			walkPathPatterns(qe, scope, query.Create[ref.Index].Patterns, "create")
		case ast.KindMerge:
			m := query.Merge[ref.Index]
			walkPathPatterns(qe, scope, []ast.PathPattern{m.Pattern}, "merge")
			for _, a := range m.OnCreate {
				walkAssignment(qe, scope, a)
			}
			for _, a := range m.OnMatch {
				walkAssignment(qe, scope, a)
			}
		case ast.KindSet:
			for _, a := range query.Set[ref.Index].Assignments {
				walkAssignment(qe, scope, a)
			}
		case ast.KindWhere:
			walkCondition(qe, scope, query.Where[ref.Index].Condition)
		case ast.KindWith:
			walkWith(qe, scope, query.With[ref.Index])
		case ast.KindReturn:
			for _, item := range query.Return[ref.Index].Projections {
				if !item.Wildcard {
					walkValue(qe, scope, item.Expression, "return")
				}
			}
		case ast.KindUnwind:
			u := query.Unwind[ref.Index]
			walkValue(qe, scope, u.Expression, "unwind")
			qe.DefinedVariables.add(u.Alias)
			scope.top().bind(u.Alias, binding{kind: bindNone})
		case ast.KindCall:
			for _, arg := range query.Call[ref.Index].Args {
				walkValue(qe, scope, arg, "call")
			}
		case ast.KindDelete:
			for _, v := range query.Delete[ref.Index].Variables {
				qe.ReferencedVariables.add(v)
			}
		case ast.KindRemove:
			for _, t := range query.Remove[ref.Index].Targets {
				walkValue(qe, scope, t, "remove")
			}
		case ast.KindLimit:
			// LIMIT's operand is an integer literal or parameter; neither
			// contributes labels, types, or variable references.
		}
	}

	return qe
}

func walkPathPatterns(qe *QueryElements, scope *scopeStack, patterns []ast.PathPattern, context string) {
	for _, p := range patterns {
		if p.PathVariable != "" {
			qe.DefinedVariables.add(p.PathVariable)
		}
		walkElements(qe, scope, p.Elements, context)
	}
}

// walkElements walks one alternating node/relationship/node... sequence,
// recording each relationship's adjacent node labels as a pattern edge.
func walkElements(qe *QueryElements, scope *scopeStack, elems []ast.PatternElement, context string) {
	var prevLabel string
	havePrev := false

	for i, el := range elems {
		switch {
		case el.Node != nil:
			label := walkNodePattern(qe, scope, el.Node, context)
			if i > 0 && havePrev {
				// the immediately preceding element is a relationship; patch
				// its just-recorded edge's end label now that it's known.
				if len(qe.PatternEdges) > 0 {
					qe.PatternEdges[len(qe.PatternEdges)-1].EndLabel = label
				}
			}
			prevLabel = label
			havePrev = true

		case el.Relationship != nil:
			rel := el.Relationship
			relType := walkRelationshipPattern(qe, scope, rel, context)
			startLabel := ""
			if havePrev {
				startLabel = prevLabel
			}
			direction := rel.Direction
			qe.PatternEdges = append(qe.PatternEdges, PatternEdge{
				StartLabel: startLabel,
				RelType:    relType,
				Direction:  direction,
			})

		case el.Quantified != nil:
			walkElements(qe, scope, el.Quantified.Inner, context)
			if el.Quantified.Where != nil {
				walkCondition(qe, scope, *el.Quantified.Where)
			}
			if el.Quantified.PathVariable != "" {
				qe.DefinedVariables.add(el.Quantified.PathVariable)
			}
			havePrev = false
		}
	}
}

func walkNodePattern(qe *QueryElements, scope *scopeStack, n *ast.NodePattern, context string) string {
	if n.Label != "" {
		qe.NodeLabels.add(n.Label)
	}
	if n.Variable != "" {
		qe.DefinedVariables.add(n.Variable)
		if n.Label != "" {
			scope.top().bind(n.Variable, binding{kind: bindNodeLabel, label: n.Label})
			qe.VariableNodeBindings[n.Variable] = n.Label
		} else {
			scope.top().bind(n.Variable, binding{kind: bindNone})
		}
	}
	if n.Properties != nil {
		for _, key := range n.Properties.Keys {
			qe.addNodeProperty(n.Label, key)
			qe.PropertyAccesses = append(qe.PropertyAccesses, PropertyAccess{Variable: n.Variable, Property: key, Context: context})
		}
	}
	return n.Label
}

func walkRelationshipPattern(qe *QueryElements, scope *scopeStack, r *ast.RelationshipPattern, context string) string {
	relType := r.RelType()
	for _, t := range r.RelTypes {
		qe.RelationshipTypes.add(t)
	}
	if r.Variable != "" {
		qe.DefinedVariables.add(r.Variable)
		if relType != "" {
			scope.top().bind(r.Variable, binding{kind: bindRelType, label: relType})
			qe.VariableRelationshipBindings[r.Variable] = relType
		} else {
			scope.top().bind(r.Variable, binding{kind: bindNone})
		}
	}
	if r.Properties != nil {
		for _, key := range r.Properties.Keys {
			qe.addRelProperty(relType, key)
			qe.PropertyAccesses = append(qe.PropertyAccesses, PropertyAccess{Variable: r.Variable, Property: key, Context: context})
		}
	}
	if r.Where != nil {
		walkCondition(qe, scope, *r.Where)
	}
	return relType
}

func walkAssignment(qe *QueryElements, scope *scopeStack, a ast.Assignment) {
	if a.Property != "" {
		resolvePropertyAccess(qe, scope, a.Target, a.Property, "set")
	} else {
		qe.ReferencedVariables.add(a.Target)
	}
	walkValue(qe, scope, a.Value, "set")
}

func walkWith(qe *QueryElements, scope *scopeStack, w ast.With) {
	for _, item := range w.Projections {
		if !item.Wildcard {
			walkValue(qe, scope, item.Expression, "with")
		}
	}

	next := newScopeFrame()
	current := scope.top()

	for _, item := range w.Projections {
		if item.Wildcard {
			for v, b := range current.bindings {
				next.bind(v, b)
			}
			continue
		}

		alias := item.Alias
		expr := item.Expression

		if expr.Kind == ast.KindIdentifier && expr.Property == "" {
			// Projecting a bare variable forwards its binding, under the
			// alias if given, else its own name.
			name := alias
			if name == "" {
				name = expr.Identifier
			}
			qe.DefinedVariables.add(name)
			if b, ok := current.resolve(expr.Identifier); ok {
				next.bind(name, b)
			} else {
				next.bind(name, binding{kind: bindNone})
			}
			continue
		}

		if alias != "" {
			qe.DefinedVariables.add(alias)
			next.bind(alias, binding{kind: bindNone})
		}
	}

	scope.rescope(next)
}

func walkCondition(qe *QueryElements, scope *scopeStack, c ast.WhereCondition) {
	switch c.Kind {
	case ast.CondComparison:
		recordComparison(qe, scope, c)
		if c.Left != nil {
			walkValue(qe, scope, *c.Left, "where")
		}
		if c.Right != nil {
			walkValue(qe, scope, *c.Right, "where")
		}
	case ast.CondFunctionCall:
		if c.Call != nil {
			for _, a := range c.Call.Args {
				walkValue(qe, scope, a, "where")
			}
		}
	case ast.CondPathPropertyRef:
		if c.Ref != nil {
			walkValue(qe, scope, *c.Ref, "where")
		}
	case ast.CondAnd, ast.CondOr:
		for _, op := range c.Operands {
			walkCondition(qe, scope, op)
		}
	case ast.CondNot, ast.CondGroup:
		for _, op := range c.Operands {
			walkCondition(qe, scope, op)
		}
	}
}

// recordComparison records a PropertyComparison when exactly one side of a
// comparison is a property access and the other is a literal whose kind can
// be statically determined (comparisons against a parameter or bare
// identifier are not recorded: their type cannot be determined here).
func recordComparison(qe *QueryElements, scope *scopeStack, c ast.WhereCondition) {
	if c.Left == nil || c.Right == nil {
		return
	}
	if c.Left.IsPropertyAccess() {
		if lk, fn, ok := literalKindOf(*c.Right); ok {
			qe.PropertyComparisons = append(qe.PropertyComparisons, PropertyComparison{
				Variable: c.Left.Identifier, Property: c.Left.Property, LiteralKind: lk, FunctionName: fn,
			})
		}
		return
	}
	if c.Right.IsPropertyAccess() {
		if lk, fn, ok := literalKindOf(*c.Left); ok {
			qe.PropertyComparisons = append(qe.PropertyComparisons, PropertyComparison{
				Variable: c.Right.Identifier, Property: c.Right.Property, LiteralKind: lk, FunctionName: fn,
			})
		}
	}
}

func literalKindOf(v ast.PropertyValue) (LiteralKind, string, bool) {
	switch v.Kind {
	case ast.KindString:
		return LiteralString, "", true
	case ast.KindInteger:
		return LiteralInteger, "", true
	case ast.KindFloat:
		return LiteralFloat, "", true
	case ast.KindBoolean:
		return LiteralBoolean, "", true
	case ast.KindNull:
		return LiteralNull, "", true
	case ast.KindList:
		return LiteralList, "", true
	case ast.KindMap:
		return LiteralMap, "", true
	case ast.KindFunctionCall:
		name := ""
		if v.FuncCall != nil {
			name = v.FuncCall.Name
		}
		return LiteralFunctionCall, name, true
	default:
		return LiteralUnknown, "", false
	}
}

// walkValue records property accesses and variable references found inside
// an arbitrary expression (projection item, assignment RHS, function-call
// argument, ...).
func walkValue(qe *QueryElements, scope *scopeStack, v ast.PropertyValue, context string) {
	switch v.Kind {
	case ast.KindIdentifier:
		if v.Property != "" {
			resolvePropertyAccess(qe, scope, v.Identifier, v.Property, context)
		} else {
			qe.ReferencedVariables.add(v.Identifier)
		}
	case ast.KindFunctionCall:
		if v.FuncCall != nil {
			for _, a := range v.FuncCall.Args {
				walkValue(qe, scope, a, context)
			}
		}
	case ast.KindList:
		for _, item := range v.List {
			walkValue(qe, scope, item, context)
		}
	case ast.KindMap:
		if v.Map != nil {
			for _, key := range v.Map.Keys {
				walkValue(qe, scope, v.Map.Values[key], context)
			}
		}
	}
}

func resolvePropertyAccess(qe *QueryElements, scope *scopeStack, variable, prop, context string) {
	qe.ReferencedVariables.add(variable)
	qe.PropertyAccesses = append(qe.PropertyAccesses, PropertyAccess{Variable: variable, Property: prop, Context: context})

	b, ok := scope.top().resolve(variable)
	if !ok {
		return
	}
	switch b.kind {
	case bindNodeLabel:
		qe.addNodeProperty(b.label, prop)
	case bindRelType:
		qe.addRelProperty(b.label, prop)
	}
}
