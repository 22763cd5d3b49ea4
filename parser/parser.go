package parser

import (
	"github.com/neo4j-field/cypher-guard/ast"
	"github.com/neo4j-field/cypher-guard/diagnostic"
	"github.com/neo4j-field/cypher-guard/lexer"
)

// Parse tokenizes and parses a full Cypher query into an *ast.Query,
// enforcing clause-ordering rules that the grammar doesn't express
// structurally: RETURN cannot be followed by MATCH, and a RETURN with no
// preceding reading/writing clause must project literals only.
func Parse(query string) (*ast.Query, error) {
	toks, err := lexer.Tokenize(query)
	if err != nil {
		return nil, err
	}
	s := newState(toks)

	q := &ast.Query{}
	sawReturn := false
	sawOtherClause := false

	for !s.at(lexer.EOF) {
		switch {
		case s.atKeyword("MATCH") || s.atKeyword("OPTIONAL"):
			if sawReturn {
				return nil, diagnostic.NewParseError(diagnostic.KindMatchAfterReturn, s.peek().Start,
					"match clause cannot follow return", diagnostic.ErrMatchAfterReturn)
			}
			m, err := parseMatch(s)
			if err != nil {
				return nil, err
			}
			q.Match = append(q.Match, m)
			q.ClauseOrder = append(q.ClauseOrder, ast.ClauseRef{Kind: ast.KindMatch, Index: len(q.Match) - 1})
			sawOtherClause = true

		case s.atKeyword("CREATE"):
			c, err := parseCreate(s)
			if err != nil {
				return nil, err
			}
			q.Create = append(q.Create, c)
			q.ClauseOrder = append(q.ClauseOrder, ast.ClauseRef{Kind: ast.KindCreate, Index: len(q.Create) - 1})
			sawOtherClause = true

		case s.atKeyword("MERGE"):
			m, err := parseMerge(s)
			if err != nil {
				return nil, err
			}
			q.Merge = append(q.Merge, m)
			q.ClauseOrder = append(q.ClauseOrder, ast.ClauseRef{Kind: ast.KindMerge, Index: len(q.Merge) - 1})
			sawOtherClause = true

		case s.atKeyword("SET"):
			st, err := parseSet(s)
			if err != nil {
				return nil, err
			}
			q.Set = append(q.Set, st)
			q.ClauseOrder = append(q.ClauseOrder, ast.ClauseRef{Kind: ast.KindSet, Index: len(q.Set) - 1})
			sawOtherClause = true

		case s.atKeyword("WITH"):
			w, err := parseWith(s)
			if err != nil {
				return nil, err
			}
			q.With = append(q.With, w)
			q.ClauseOrder = append(q.ClauseOrder, ast.ClauseRef{Kind: ast.KindWith, Index: len(q.With) - 1})
			sawOtherClause = true

		case s.atKeyword("WHERE"):
			w, err := parseWhere(s)
			if err != nil {
				return nil, err
			}
			q.Where = append(q.Where, w)
			q.ClauseOrder = append(q.ClauseOrder, ast.ClauseRef{Kind: ast.KindWhere, Index: len(q.Where) - 1})

		case s.atKeyword("RETURN"):
			r, err := parseReturn(s)
			if err != nil {
				return nil, err
			}
			if !sawOtherClause && !isLiteralOnly(r.Projections) {
				return nil, diagnostic.NewParseError(diagnostic.KindReturnBeforeOtherClauses, r.Span.Start,
					"return clause references an identifier with no prior defining clause", diagnostic.ErrReturnBeforeOtherClauses)
			}
			q.Return = append(q.Return, r)
			q.ClauseOrder = append(q.ClauseOrder, ast.ClauseRef{Kind: ast.KindReturn, Index: len(q.Return) - 1})
			sawReturn = true

		case s.atKeyword("UNWIND"):
			u, err := parseUnwind(s)
			if err != nil {
				return nil, err
			}
			q.Unwind = append(q.Unwind, u)
			q.ClauseOrder = append(q.ClauseOrder, ast.ClauseRef{Kind: ast.KindUnwind, Index: len(q.Unwind) - 1})
			sawOtherClause = true

		case s.atKeyword("CALL"):
			c, err := parseCall(s)
			if err != nil {
				return nil, err
			}
			q.Call = append(q.Call, c)
			q.ClauseOrder = append(q.ClauseOrder, ast.ClauseRef{Kind: ast.KindCall, Index: len(q.Call) - 1})
			sawOtherClause = true

		case s.atKeyword("LIMIT"):
			l, err := parseLimit(s)
			if err != nil {
				return nil, err
			}
			q.Limit = append(q.Limit, l)
			q.ClauseOrder = append(q.ClauseOrder, ast.ClauseRef{Kind: ast.KindLimit, Index: len(q.Limit) - 1})

		case s.atKeyword("DELETE") || s.atKeyword("DETACH"):
			d, err := parseDelete(s)
			if err != nil {
				return nil, err
			}
			q.Delete = append(q.Delete, d)
			q.ClauseOrder = append(q.ClauseOrder, ast.ClauseRef{Kind: ast.KindDelete, Index: len(q.Delete) - 1})
			sawOtherClause = true

		case s.atKeyword("REMOVE"):
			r, err := parseRemove(s)
			if err != nil {
				return nil, err
			}
			q.Remove = append(q.Remove, r)
			q.ClauseOrder = append(q.ClauseOrder, ast.ClauseRef{Kind: ast.KindRemove, Index: len(q.Remove) - 1})
			sawOtherClause = true

		default:
			t := s.peek()
			return nil, diagnostic.NewParseError(diagnostic.KindExpectedClause, t.Start,
				"expected a clause keyword", diagnostic.ErrExpectedClause)
		}
	}

	if len(q.ClauseOrder) == 0 {
		return nil, diagnostic.NewParseError(diagnostic.KindMissingRequiredClause, 0,
			"query contains no clauses", diagnostic.ErrMissingRequiredClause)
	}

	return q, nil
}

// CheckSyntax reports only whether query parses; it discards the tree.
func CheckSyntax(query string) error {
	_, err := Parse(query)
	return err
}

// isLiteralOnly reports whether every projection expression is a literal
// (string/integer/float/boolean/null) or a list/map composed entirely of
// literals — never an identifier, parameter, or function call.
func isLiteralOnly(items []ast.ProjectionItem) bool {
	for _, it := range items {
		if it.Wildcard {
			return false
		}
		if !valueIsLiteral(it.Expression) {
			return false
		}
	}
	return true
}

func valueIsLiteral(v ast.PropertyValue) bool {
	switch v.Kind {
	case ast.KindString, ast.KindInteger, ast.KindFloat, ast.KindBoolean, ast.KindNull:
		return true
	case ast.KindList:
		for _, item := range v.List {
			if !valueIsLiteral(item) {
				return false
			}
		}
		return true
	case ast.KindMap:
		if v.Map == nil {
			return true
		}
		for _, key := range v.Map.Keys {
			if !valueIsLiteral(v.Map.Values[key]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
