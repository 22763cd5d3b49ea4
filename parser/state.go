// Package parser turns a token stream into an *ast.Query via a set of
// combinator functions composed bottom-up: tokens -> atoms -> patterns ->
// clauses -> query. Each production is a pure function from the current
// cursor position to either an advanced cursor and a value, or a
// *diagnostic.ParseError. Alternatives are tried in declaration order; the
// first to consume at least one token wins. Combinator backtracking is
// local to alternative branches and never crosses a clause boundary.
package parser

import (
	"fmt"

	"github.com/neo4j-field/cypher-guard/ast"
	"github.com/neo4j-field/cypher-guard/diagnostic"
	"github.com/neo4j-field/cypher-guard/lexer"
)

// state is the parser cursor: an immutable view of the token slice plus a
// mutable position. Productions take *state and advance pos as they consume
// tokens; a production that fails after consuming leaves pos advanced, which
// opt/many0/alt use to tell a partial match from no match.
type state struct {
	toks []lexer.Token
	pos  int
}

func newState(toks []lexer.Token) *state {
	return &state{toks: toks}
}

func (s *state) peek() lexer.Token {
	return s.toks[s.pos]
}

func (s *state) at(k lexer.Kind) bool {
	return s.peek().Kind == k
}

// atKeyword reports whether the current token is the keyword kw, matched
// case-insensitively (the lexer keeps keyword tokens in their source
// spelling, so the comparison folds ASCII case).
func (s *state) atKeyword(kw string) bool {
	t := s.peek()
	return t.Kind == lexer.Keyword && equalFold(t.Text, kw)
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'a' && ca <= 'z' {
			ca -= 'a' - 'A'
		}
		if cb >= 'a' && cb <= 'z' {
			cb -= 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func (s *state) advance() lexer.Token {
	t := s.toks[s.pos]
	if t.Kind != lexer.EOF {
		s.pos++
	}
	return t
}

// mark/reset let an alternative branch rewind the cursor on failure.
func (s *state) mark() int      { return s.pos }
func (s *state) reset(pos int)  { s.pos = pos }

func (s *state) expect(k lexer.Kind) (lexer.Token, error) {
	t := s.peek()
	if t.Kind != k {
		if t.Kind == lexer.EOF {
			return lexer.Token{}, diagnostic.NewParseError(diagnostic.KindUnexpectedEOF, t.Start,
				fmt.Sprintf("expected %s, found end of input", k), diagnostic.ErrUnexpectedEOF)
		}
		return lexer.Token{}, diagnostic.NewParseError(diagnostic.KindTokenMismatch, t.Start,
			fmt.Sprintf("expected %s, found %q", k, t.Text), diagnostic.ErrUnexpectedToken)
	}
	return s.advance(), nil
}

func (s *state) expectKeyword(kw string) (lexer.Token, error) {
	if !s.atKeyword(kw) {
		t := s.peek()
		if t.Kind == lexer.EOF {
			return lexer.Token{}, diagnostic.NewParseError(diagnostic.KindUnexpectedEOF, t.Start,
				fmt.Sprintf("expected %q, found end of input", kw), diagnostic.ErrUnexpectedEOF)
		}
		return lexer.Token{}, diagnostic.NewParseError(diagnostic.KindTokenMismatch, t.Start,
			fmt.Sprintf("expected %q, found %q", kw, t.Text), diagnostic.ErrUnexpectedToken)
	}
	return s.advance(), nil
}

func span(start, end int) ast.Span {
	return ast.Span{Start: start, End: end}
}
