package parser

import (
	"strconv"

	"github.com/neo4j-field/cypher-guard/ast"
	"github.com/neo4j-field/cypher-guard/lexer"
)

// parseValue parses one PropertyValue: string, integer, float, boolean,
// NULL, list, map, function call, parameter, or identifier/property access.
func parseValue(s *state) (ast.PropertyValue, error) {
	t := s.peek()
	switch {
	case t.Kind == lexer.String:
		s.advance()
		return ast.PropertyValue{Kind: ast.KindString, Str: t.Text, Span: span(t.Start, t.End)}, nil
	case t.Kind == lexer.Integer:
		s.advance()
		n, _ := strconv.ParseInt(t.Text, 10, 64)
		return ast.PropertyValue{Kind: ast.KindInteger, Int: n, Span: span(t.Start, t.End)}, nil
	case t.Kind == lexer.Float:
		s.advance()
		f, _ := strconv.ParseFloat(t.Text, 64)
		return ast.PropertyValue{Kind: ast.KindFloat, Float: f, Span: span(t.Start, t.End)}, nil
	case t.Kind == lexer.Parameter:
		s.advance()
		return ast.PropertyValue{Kind: ast.KindParameter, Parameter: t.Text, Span: span(t.Start, t.End)}, nil
	case t.Kind == lexer.Keyword && equalFold(t.Text, "TRUE"):
		s.advance()
		return ast.PropertyValue{Kind: ast.KindBoolean, Bool: true, Span: span(t.Start, t.End)}, nil
	case t.Kind == lexer.Keyword && equalFold(t.Text, "FALSE"):
		s.advance()
		return ast.PropertyValue{Kind: ast.KindBoolean, Bool: false, Span: span(t.Start, t.End)}, nil
	case t.Kind == lexer.Keyword && equalFold(t.Text, "NULL"):
		s.advance()
		return ast.PropertyValue{Kind: ast.KindNull, Span: span(t.Start, t.End)}, nil
	case t.Kind == lexer.LBracket:
		return parseList(s)
	case t.Kind == lexer.LBrace:
		m, err := parsePropertyMap(s)
		if err != nil {
			return ast.PropertyValue{}, err
		}
		return ast.PropertyValue{Kind: ast.KindMap, Map: m, Span: span(t.Start, t.Start)}, nil
	case t.Kind == lexer.Ident:
		return parseIdentOrCall(s)
	default:
		return ast.PropertyValue{}, unexpected(s, "a value")
	}
}

func parseList(s *state) (ast.PropertyValue, error) {
	open, err := s.expect(lexer.LBracket)
	if err != nil {
		return ast.PropertyValue{}, err
	}
	items, err := separatedList0(s, parseValue, commaSep)
	if err != nil {
		return ast.PropertyValue{}, err
	}
	close, err := s.expect(lexer.RBracket)
	if err != nil {
		return ast.PropertyValue{}, err
	}
	return ast.PropertyValue{Kind: ast.KindList, List: items, Span: span(open.Start, close.End)}, nil
}

func commaSep(s *state) error {
	_, err := s.expect(lexer.Comma)
	return err
}

func parsePropertyMap(s *state) (*ast.PropertyMap, error) {
	if _, err := s.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	m := &ast.PropertyMap{Values: make(map[string]ast.PropertyValue)}
	entries, err := separatedList0(s, parseMapEntry, commaSep)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		m.Keys = append(m.Keys, e.key)
		m.Values[e.key] = e.value
	}
	if _, err := s.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return m, nil
}

type mapEntry struct {
	key   string
	value ast.PropertyValue
}

func parseMapEntry(s *state) (mapEntry, error) {
	key, err := s.expect(lexer.Ident)
	if err != nil {
		return mapEntry{}, err
	}
	if _, err := s.expect(lexer.Colon); err != nil {
		return mapEntry{}, err
	}
	v, err := parseValue(s)
	if err != nil {
		return mapEntry{}, err
	}
	return mapEntry{key: key.Text, value: v}, nil
}

// parseIdentOrCall disambiguates a bare identifier, a property access
// (`a.b`), and a function call (`name(args...)`).
func parseIdentOrCall(s *state) (ast.PropertyValue, error) {
	id, err := s.expect(lexer.Ident)
	if err != nil {
		return ast.PropertyValue{}, err
	}

	if s.at(lexer.LParen) {
		s.advance()
		var args []ast.PropertyValue
		if s.at(lexer.Star) {
			// `count(*)`-style star argument: recorded as a call with no args.
			s.advance()
		} else {
			args, err = separatedList0(s, parseValue, commaSep)
			if err != nil {
				return ast.PropertyValue{}, err
			}
		}
		close, err := s.expect(lexer.RParen)
		if err != nil {
			return ast.PropertyValue{}, err
		}
		return ast.PropertyValue{
			Kind:     ast.KindFunctionCall,
			FuncCall: &ast.FunctionCall{Name: id.Text, Args: args},
			Span:     span(id.Start, close.End),
		}, nil
	}

	if s.at(lexer.Dot) {
		s.advance()
		prop, err := s.expect(lexer.Ident)
		if err != nil {
			return ast.PropertyValue{}, err
		}
		return ast.PropertyValue{
			Kind:       ast.KindIdentifier,
			Identifier: id.Text,
			Property:   prop.Text,
			Span:       span(id.Start, prop.End),
		}, nil
	}

	return ast.PropertyValue{Kind: ast.KindIdentifier, Identifier: id.Text, Span: span(id.Start, id.End)}, nil
}

func unexpected(s *state, want string) error {
	t := s.peek()
	if t.Kind == lexer.EOF {
		return diagnosticUnexpectedEOF(t.Start, want)
	}
	return diagnosticTokenMismatch(t.Start, want, t.Text)
}
