package parser

import (
	"strconv"

	"github.com/neo4j-field/cypher-guard/ast"
	"github.com/neo4j-field/cypher-guard/lexer"
)

// relNodePair is one relationship-then-node tail segment of a path chain;
// parsePathPattern flattens a sequence of these into the chain's Elements.
type relNodePair struct {
	rel  ast.PatternElement
	node ast.PatternElement
}

// parsePathPattern parses a full chain: an optional `p = ` path-variable
// binding followed by a seed element (node, or a quantified path pattern)
// and a repeated (relationship, node) tail.
func parsePathPattern(s *state) (ast.PathPattern, error) {
	start := s.mark()
	var pathVar string
	if s.at(lexer.Ident) {
		mark := s.mark()
		id := s.advance()
		if s.at(lexer.Eq) {
			s.advance()
			pathVar = id.Text
		} else {
			s.reset(mark)
		}
	}

	var elems []ast.PatternElement

	if q, matched, err := opt(s, parseQuantifiedElement); err != nil {
		return ast.PathPattern{}, err
	} else if matched {
		elems = append(elems, q)
	} else {
		seed, err := parseNodePattern(s)
		if err != nil {
			return ast.PathPattern{}, err
		}
		elems = append(elems, ast.PatternElement{Node: &seed, Span: seed.Span})
	}

	tail, err := many0(s, parseRelNodePair)
	if err != nil {
		return ast.PathPattern{}, err
	}
	for _, p := range tail {
		elems = append(elems, p.rel, p.node)
	}

	return ast.PathPattern{PathVariable: pathVar, Elements: elems, Span: span(start, s.peek().Start)}, nil
}

func parseRelNodePair(s *state) (relNodePair, error) {
	rel, err := parseRelationshipPattern(s)
	if err != nil {
		return relNodePair{}, err
	}
	node, err := parseNodePattern(s)
	if err != nil {
		return relNodePair{}, err
	}
	return relNodePair{
		rel:  ast.PatternElement{Relationship: &rel, Span: rel.Span},
		node: ast.PatternElement{Node: &node, Span: node.Span},
	}, nil
}

// parseNodePattern parses `(v)`, `(:Label)`, `(v:Label)`, `(v:Label {k: val})`.
func parseNodePattern(s *state) (ast.NodePattern, error) {
	open, err := s.expect(lexer.LParen)
	if err != nil {
		return ast.NodePattern{}, err
	}

	var variable, label string
	if s.at(lexer.Ident) {
		variable = s.advance().Text
	}
	if s.at(lexer.Colon) {
		s.advance()
		lbl, err := s.expect(lexer.Ident)
		if err != nil {
			return ast.NodePattern{}, err
		}
		label = lbl.Text
	}

	var props *ast.PropertyMap
	if s.at(lexer.LBrace) {
		props, err = parsePropertyMap(s)
		if err != nil {
			return ast.NodePattern{}, err
		}
	}

	close, err := s.expect(lexer.RParen)
	if err != nil {
		return ast.NodePattern{}, err
	}

	return ast.NodePattern{Variable: variable, Label: label, Properties: props, Span: span(open.Start, close.End)}, nil
}

// parseRelationshipPattern parses one `-[r:T {...}]->`-shaped edge in any
// direction, including variable length (`*1..5`), multi-type alternation
// (`A|B`), and the trailing `?` optional marker.
func parseRelationshipPattern(s *state) (ast.RelationshipPattern, error) {
	start := s.mark()

	leftArrow := false
	if s.at(lexer.ArrowL) {
		leftArrow = true
		s.advance()
	} else if _, err := s.expect(lexer.Dash); err != nil {
		return ast.RelationshipPattern{}, err
	}

	rel := ast.RelationshipPattern{Direction: ast.Undirected}
	if leftArrow {
		rel.Direction = ast.Left
	}

	if s.at(lexer.LBracket) {
		s.advance()
		if s.at(lexer.Ident) {
			rel.Variable = s.advance().Text
		}
		if s.at(lexer.Colon) {
			s.advance()
			types, err := separatedList1(s, func(s *state) (string, error) {
				t, err := s.expect(lexer.Ident)
				return t.Text, err
			}, pipeSep)
			if err != nil {
				return ast.RelationshipPattern{}, err
			}
			rel.RelTypes = types
		}

		if lr, matched, err := opt(s, parseLengthRange); err != nil {
			return ast.RelationshipPattern{}, err
		} else if matched {
			rel.LengthRange = &lr
		}

		if s.at(lexer.LBrace) {
			props, err := parsePropertyMap(s)
			if err != nil {
				return ast.RelationshipPattern{}, err
			}
			rel.Properties = props
		}

		if s.at(lexer.Question) {
			s.advance()
			rel.Optional = true
		}

		if _, err := s.expect(lexer.RBracket); err != nil {
			return ast.RelationshipPattern{}, err
		}
	}

	if s.at(lexer.ArrowR) {
		if leftArrow {
			return ast.RelationshipPattern{}, unexpected(s, "a single relationship direction")
		}
		s.advance()
		rel.Direction = ast.Right
	} else {
		if _, err := s.expect(lexer.Dash); err != nil {
			return ast.RelationshipPattern{}, err
		}
		if !leftArrow {
			rel.Direction = ast.Undirected
		}
	}

	rel.Span = span(start, s.peek().Start)
	return rel, nil
}

func pipeSep(s *state) error {
	_, err := s.expect(lexer.Pipe)
	return err
}

// parseLengthRange parses `*`, `*n`, `*n..m`, `*..m`, `*n..`.
func parseLengthRange(s *state) (ast.LengthRange, error) {
	if _, err := s.expect(lexer.Star); err != nil {
		return ast.LengthRange{}, err
	}
	var lr ast.LengthRange
	if s.at(lexer.Integer) {
		n, _ := strconv.ParseInt(s.advance().Text, 10, 64)
		lr.Min = &n
		lr.Max = &n
	}
	if s.at(lexer.DotDot) {
		s.advance()
		if s.at(lexer.Integer) {
			m, _ := strconv.ParseInt(s.advance().Text, 10, 64)
			lr.Max = &m
		} else {
			lr.Max = nil
		}
	}
	return lr, nil
}

// parseQuantifiedElement parses `((...)-[...]->(...)){min,max}` with an
// optional inner WHERE.
func parseQuantifiedElement(s *state) (ast.PatternElement, error) {
	start := s.mark()
	if _, err := s.expect(lexer.LParen); err != nil {
		s.reset(start)
		return ast.PatternElement{}, err
	}
	if !s.at(lexer.LParen) {
		// Not a quantified path after all — just an ordinary node pattern's
		// opening paren. Rewind so opt() sees zero consumption and
		// parsePathPattern falls through to parseNodePattern.
		err := unexpected(s, "a quantified path pattern")
		s.reset(start)
		return ast.PatternElement{}, err
	}

	seed, err := parseNodePattern(s)
	if err != nil {
		return ast.PatternElement{}, err
	}
	inner := []ast.PatternElement{{Node: &seed, Span: seed.Span}}

	tail, err := many0(s, parseRelNodePair)
	if err != nil {
		return ast.PatternElement{}, err
	}
	for _, p := range tail {
		inner = append(inner, p.rel, p.node)
	}

	var where *ast.WhereCondition
	if s.atKeyword("WHERE") {
		s.advance()
		cond, err := parseCondition(s)
		if err != nil {
			return ast.PatternElement{}, err
		}
		where = &cond
	}

	if _, err := s.expect(lexer.RParen); err != nil {
		return ast.PatternElement{}, err
	}

	if _, err := s.expect(lexer.LBrace); err != nil {
		return ast.PatternElement{}, err
	}
	min, err := s.expect(lexer.Integer)
	if err != nil {
		return ast.PatternElement{}, err
	}
	minN, _ := strconv.ParseInt(min.Text, 10, 64)
	q := ast.QuantifiedPathPattern{Inner: inner, Min: &minN, Where: where}
	if s.at(lexer.Comma) {
		s.advance()
		max, err := s.expect(lexer.Integer)
		if err != nil {
			return ast.PatternElement{}, err
		}
		maxN, _ := strconv.ParseInt(max.Text, 10, 64)
		q.Max = &maxN
	} else {
		q.Max = &minN
	}
	end, err := s.expect(lexer.RBrace)
	if err != nil {
		return ast.PatternElement{}, err
	}
	q.Span = span(start, end.End)

	return ast.PatternElement{Quantified: &q, Span: q.Span}, nil
}
