package parser

import (
	"github.com/neo4j-field/cypher-guard/ast"
	"github.com/neo4j-field/cypher-guard/lexer"
)

func parseMatch(s *state) (ast.Match, error) {
	start := s.mark()
	optional := false
	if s.atKeyword("OPTIONAL") {
		s.advance()
		optional = true
		if _, err := s.expectKeyword("MATCH"); err != nil {
			return ast.Match{}, err
		}
	} else if _, err := s.expectKeyword("MATCH"); err != nil {
		return ast.Match{}, err
	}

	patterns, err := separatedList1(s, parsePathPattern, commaSep)
	if err != nil {
		return ast.Match{}, err
	}
	return ast.Match{Optional: optional, Patterns: patterns, Span: span(start, s.peek().Start)}, nil
}

func parseCreate(s *state) (ast.Create, error) {
	start := s.mark()
	if _, err := s.expectKeyword("CREATE"); err != nil {
		return ast.Create{}, err
	}
	patterns, err := separatedList1(s, parsePathPattern, commaSep)
	if err != nil {
		return ast.Create{}, err
	}
	return ast.Create{Patterns: patterns, Span: span(start, s.peek().Start)}, nil
}

func parseAssignment(s *state) (ast.Assignment, error) {
	start := s.mark()
	target, err := s.expect(lexer.Ident)
	if err != nil {
		return ast.Assignment{}, err
	}
	var prop string
	if s.at(lexer.Dot) {
		s.advance()
		p, err := s.expect(lexer.Ident)
		if err != nil {
			return ast.Assignment{}, err
		}
		prop = p.Text
	}
	if _, err := s.expect(lexer.Eq); err != nil {
		return ast.Assignment{}, err
	}
	val, err := parseValue(s)
	if err != nil {
		return ast.Assignment{}, err
	}
	return ast.Assignment{Target: target.Text, Property: prop, Value: val, Span: span(start, s.peek().Start)}, nil
}

func parseSet(s *state) (ast.Set, error) {
	start := s.mark()
	if _, err := s.expectKeyword("SET"); err != nil {
		return ast.Set{}, err
	}
	assigns, err := separatedList1(s, parseAssignment, commaSep)
	if err != nil {
		return ast.Set{}, err
	}
	return ast.Set{Assignments: assigns, Span: span(start, s.peek().Start)}, nil
}

func parseMerge(s *state) (ast.Merge, error) {
	start := s.mark()
	if _, err := s.expectKeyword("MERGE"); err != nil {
		return ast.Merge{}, err
	}
	pattern, err := parsePathPattern(s)
	if err != nil {
		return ast.Merge{}, err
	}
	m := ast.Merge{Pattern: pattern}

	for s.atKeyword("ON") {
		mark := s.mark()
		s.advance()
		switch {
		case s.atKeyword("CREATE"):
			s.advance()
			if _, err := s.expectKeyword("SET"); err != nil {
				return ast.Merge{}, err
			}
			assigns, err := separatedList1(s, parseAssignment, commaSep)
			if err != nil {
				return ast.Merge{}, err
			}
			m.OnCreate = append(m.OnCreate, assigns...)
		case s.atKeyword("MATCH"):
			s.advance()
			if _, err := s.expectKeyword("SET"); err != nil {
				return ast.Merge{}, err
			}
			assigns, err := separatedList1(s, parseAssignment, commaSep)
			if err != nil {
				return ast.Merge{}, err
			}
			m.OnMatch = append(m.OnMatch, assigns...)
		default:
			s.reset(mark)
			goto done
		}
	}
done:
	m.Span = span(start, s.peek().Start)
	return m, nil
}

func parseProjectionItem(s *state) (ast.ProjectionItem, error) {
	start := s.mark()
	if s.at(lexer.Star) {
		s.advance()
		return ast.ProjectionItem{Wildcard: true, Span: span(start, s.peek().Start)}, nil
	}
	expr, err := parseValue(s)
	if err != nil {
		return ast.ProjectionItem{}, err
	}
	item := ast.ProjectionItem{Expression: expr}
	if s.atKeyword("AS") {
		s.advance()
		alias, err := s.expect(lexer.Ident)
		if err != nil {
			return ast.ProjectionItem{}, err
		}
		item.Alias = alias.Text
	}
	item.Span = span(start, s.peek().Start)
	return item, nil
}

func parseWith(s *state) (ast.With, error) {
	start := s.mark()
	if _, err := s.expectKeyword("WITH"); err != nil {
		return ast.With{}, err
	}
	distinct := false
	if s.atKeyword("DISTINCT") {
		s.advance()
		distinct = true
	}
	items, err := separatedList1(s, parseProjectionItem, commaSep)
	if err != nil {
		return ast.With{}, err
	}
	return ast.With{Distinct: distinct, Projections: items, Span: span(start, s.peek().Start)}, nil
}

func parseReturn(s *state) (ast.Return, error) {
	start := s.mark()
	if _, err := s.expectKeyword("RETURN"); err != nil {
		return ast.Return{}, err
	}
	distinct := false
	if s.atKeyword("DISTINCT") {
		s.advance()
		distinct = true
	}
	items, err := separatedList1(s, parseProjectionItem, commaSep)
	if err != nil {
		return ast.Return{}, err
	}
	return ast.Return{Distinct: distinct, Projections: items, Span: span(start, s.peek().Start)}, nil
}

func parseWhere(s *state) (ast.Where, error) {
	start := s.mark()
	if _, err := s.expectKeyword("WHERE"); err != nil {
		return ast.Where{}, err
	}
	cond, err := parseCondition(s)
	if err != nil {
		return ast.Where{}, err
	}
	return ast.Where{Condition: cond, Span: span(start, s.peek().Start)}, nil
}

func parseUnwind(s *state) (ast.Unwind, error) {
	start := s.mark()
	if _, err := s.expectKeyword("UNWIND"); err != nil {
		return ast.Unwind{}, err
	}
	expr, err := parseValue(s)
	if err != nil {
		return ast.Unwind{}, err
	}
	if _, err := s.expectKeyword("AS"); err != nil {
		return ast.Unwind{}, err
	}
	alias, err := s.expect(lexer.Ident)
	if err != nil {
		return ast.Unwind{}, err
	}
	return ast.Unwind{Expression: expr, Alias: alias.Text, Span: span(start, s.peek().Start)}, nil
}

func parseCall(s *state) (ast.Call, error) {
	start := s.mark()
	if _, err := s.expectKeyword("CALL"); err != nil {
		return ast.Call{}, err
	}
	name, err := parseQualifiedName(s)
	if err != nil {
		return ast.Call{}, err
	}
	if _, err := s.expect(lexer.LParen); err != nil {
		return ast.Call{}, err
	}
	args, err := separatedList0(s, parseValue, commaSep)
	if err != nil {
		return ast.Call{}, err
	}
	if _, err := s.expect(lexer.RParen); err != nil {
		return ast.Call{}, err
	}
	return ast.Call{Name: name, Args: args, Span: span(start, s.peek().Start)}, nil
}

func parseQualifiedName(s *state) (string, error) {
	first, err := s.expect(lexer.Ident)
	if err != nil {
		return "", err
	}
	name := first.Text
	for s.at(lexer.Dot) {
		s.advance()
		part, err := s.expect(lexer.Ident)
		if err != nil {
			return "", err
		}
		name += "." + part.Text
	}
	return name, nil
}

func parseLimit(s *state) (ast.Limit, error) {
	start := s.mark()
	if _, err := s.expectKeyword("LIMIT"); err != nil {
		return ast.Limit{}, err
	}
	val, err := parseValue(s)
	if err != nil {
		return ast.Limit{}, err
	}
	if val.Kind != ast.KindInteger && val.Kind != ast.KindParameter {
		return ast.Limit{}, unexpected(s, "an integer literal or parameter")
	}
	return ast.Limit{Value: val, Span: span(start, s.peek().Start)}, nil
}

func parseDelete(s *state) (ast.Delete, error) {
	start := s.mark()
	detach := false
	if s.atKeyword("DETACH") {
		s.advance()
		detach = true
	}
	if _, err := s.expectKeyword("DELETE"); err != nil {
		return ast.Delete{}, err
	}
	vars, err := separatedList1(s, func(s *state) (string, error) {
		t, err := s.expect(lexer.Ident)
		return t.Text, err
	}, commaSep)
	if err != nil {
		return ast.Delete{}, err
	}
	return ast.Delete{Detach: detach, Variables: vars, Span: span(start, s.peek().Start)}, nil
}

func parseRemove(s *state) (ast.Remove, error) {
	start := s.mark()
	if _, err := s.expectKeyword("REMOVE"); err != nil {
		return ast.Remove{}, err
	}
	targets, err := separatedList1(s, parseValue, commaSep)
	if err != nil {
		return ast.Remove{}, err
	}
	return ast.Remove{Targets: targets, Span: span(start, s.peek().Start)}, nil
}
