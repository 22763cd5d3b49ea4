package parser

import (
	"github.com/neo4j-field/cypher-guard/ast"
	"github.com/neo4j-field/cypher-guard/lexer"
)

// parseCondition parses a full WHERE expression: OR has the lowest
// precedence, then AND, then NOT, then a comparison/primary term.
func parseCondition(s *state) (ast.WhereCondition, error) {
	return parseOr(s)
}

func parseOr(s *state) (ast.WhereCondition, error) {
	left, err := parseAnd(s)
	if err != nil {
		return ast.WhereCondition{}, err
	}
	for s.atKeyword("OR") {
		s.advance()
		right, err := parseAnd(s)
		if err != nil {
			return ast.WhereCondition{}, err
		}
		left = ast.WhereCondition{
			Kind:     ast.CondOr,
			Operands: []ast.WhereCondition{left, right},
			Span:     span(left.Span.Start, right.Span.End),
		}
	}
	return left, nil
}

func parseAnd(s *state) (ast.WhereCondition, error) {
	left, err := parseNot(s)
	if err != nil {
		return ast.WhereCondition{}, err
	}
	for s.atKeyword("AND") {
		s.advance()
		right, err := parseNot(s)
		if err != nil {
			return ast.WhereCondition{}, err
		}
		left = ast.WhereCondition{
			Kind:     ast.CondAnd,
			Operands: []ast.WhereCondition{left, right},
			Span:     span(left.Span.Start, right.Span.End),
		}
	}
	return left, nil
}

func parseNot(s *state) (ast.WhereCondition, error) {
	if s.atKeyword("NOT") {
		tok := s.advance()
		inner, err := parseNot(s)
		if err != nil {
			return ast.WhereCondition{}, err
		}
		return ast.WhereCondition{Kind: ast.CondNot, Operands: []ast.WhereCondition{inner}, Span: span(tok.Start, inner.Span.End)}, nil
	}
	return parsePrimaryCondition(s)
}

func parsePrimaryCondition(s *state) (ast.WhereCondition, error) {
	if s.at(lexer.LParen) {
		open := s.advance()
		inner, err := parseCondition(s)
		if err != nil {
			return ast.WhereCondition{}, err
		}
		close, err := s.expect(lexer.RParen)
		if err != nil {
			return ast.WhereCondition{}, err
		}
		return ast.WhereCondition{Kind: ast.CondGroup, Operands: []ast.WhereCondition{inner}, Span: span(open.Start, close.End)}, nil
	}

	lhs, err := parseValue(s)
	if err != nil {
		return ast.WhereCondition{}, err
	}

	if s.atKeyword("IS") {
		s.advance()
		if s.atKeyword("NOT") {
			s.advance()
			end, err := s.expectKeyword("NULL")
			if err != nil {
				return ast.WhereCondition{}, err
			}
			return ast.WhereCondition{Kind: ast.CondComparison, Left: &lhs, Op: ast.OpIsNotNull, Span: span(lhs.Span.Start, end.End)}, nil
		}
		end, err := s.expectKeyword("NULL")
		if err != nil {
			return ast.WhereCondition{}, err
		}
		return ast.WhereCondition{Kind: ast.CondComparison, Left: &lhs, Op: ast.OpIsNull, Span: span(lhs.Span.Start, end.End)}, nil
	}

	op, ok := tryCompareOp(s)
	if !ok {
		if lhs.Kind == ast.KindFunctionCall {
			return ast.WhereCondition{Kind: ast.CondFunctionCall, Call: lhs.FuncCall, Span: lhs.Span}, nil
		}
		if lhs.IsPropertyAccess() {
			ref := lhs
			return ast.WhereCondition{Kind: ast.CondPathPropertyRef, Ref: &ref, Span: lhs.Span}, nil
		}
		return ast.WhereCondition{}, unexpected(s, "a comparison operator")
	}

	rhs, err := parseValue(s)
	if err != nil {
		return ast.WhereCondition{}, err
	}
	return ast.WhereCondition{Kind: ast.CondComparison, Left: &lhs, Op: op, Right: &rhs, Span: span(lhs.Span.Start, rhs.Span.End)}, nil
}

func tryCompareOp(s *state) (ast.CompareOp, bool) {
	switch s.peek().Kind {
	case lexer.Eq:
		s.advance()
		return ast.OpEq, true
	case lexer.Neq:
		s.advance()
		return ast.OpNeq, true
	case lexer.Lte:
		s.advance()
		return ast.OpLte, true
	case lexer.Gte:
		s.advance()
		return ast.OpGte, true
	case lexer.Lt:
		s.advance()
		return ast.OpLt, true
	case lexer.Gt:
		s.advance()
		return ast.OpGt, true
	default:
		return 0, false
	}
}
