package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/neo4j-field/cypher-guard/diagnostic"
)

const bom = "\xEF\xBB\xBF"

// Tokenize scans query text into a flat token stream terminated by one EOF
// token. A UTF-8 byte-order mark at the start of input is permitted and
// ignored. Scanning fails fast on the first unterminated string literal,
// invalid escape sequence, or numeric literal out of 64-bit range.
func Tokenize(src string) ([]Token, error) {
	if strings.HasPrefix(src, bom) {
		src = src[len(bom):]
	}

	var toks []Token
	i := 0
	n := len(src)

	for i < n {
		c := src[i]

		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			i++
			continue
		}

		start := i

		switch {
		case c == '(':
			toks = append(toks, Token{Kind: LParen, Text: "(", Start: start, End: i + 1})
			i++
		case c == ')':
			toks = append(toks, Token{Kind: RParen, Text: ")", Start: start, End: i + 1})
			i++
		case c == '[':
			toks = append(toks, Token{Kind: LBracket, Text: "[", Start: start, End: i + 1})
			i++
		case c == ']':
			toks = append(toks, Token{Kind: RBracket, Text: "]", Start: start, End: i + 1})
			i++
		case c == '{':
			toks = append(toks, Token{Kind: LBrace, Text: "{", Start: start, End: i + 1})
			i++
		case c == '}':
			toks = append(toks, Token{Kind: RBrace, Text: "}", Start: start, End: i + 1})
			i++
		case c == ':':
			toks = append(toks, Token{Kind: Colon, Text: ":", Start: start, End: i + 1})
			i++
		case c == ',':
			toks = append(toks, Token{Kind: Comma, Text: ",", Start: start, End: i + 1})
			i++
		case c == '|':
			toks = append(toks, Token{Kind: Pipe, Text: "|", Start: start, End: i + 1})
			i++
		case c == '?':
			toks = append(toks, Token{Kind: Question, Text: "?", Start: start, End: i + 1})
			i++
		case c == '+':
			toks = append(toks, Token{Kind: Plus, Text: "+", Start: start, End: i + 1})
			i++
		case c == '=':
			toks = append(toks, Token{Kind: Eq, Text: "=", Start: start, End: i + 1})
			i++
		case c == '.':
			if i+1 < n && src[i+1] == '.' {
				toks = append(toks, Token{Kind: DotDot, Text: "..", Start: start, End: i + 2})
				i += 2
			} else {
				toks = append(toks, Token{Kind: Dot, Text: ".", Start: start, End: i + 1})
				i++
			}
		case c == '*':
			toks = append(toks, Token{Kind: Star, Text: "*", Start: start, End: i + 1})
			i++
		case c == '<':
			switch {
			case i+1 < n && src[i+1] == '>':
				toks = append(toks, Token{Kind: Neq, Text: "<>", Start: start, End: i + 2})
				i += 2
			case i+1 < n && src[i+1] == '=':
				toks = append(toks, Token{Kind: Lte, Text: "<=", Start: start, End: i + 2})
				i += 2
			case i+1 < n && src[i+1] == '-':
				toks = append(toks, Token{Kind: ArrowL, Text: "<-", Start: start, End: i + 2})
				i += 2
			default:
				toks = append(toks, Token{Kind: Lt, Text: "<", Start: start, End: i + 1})
				i++
			}
		case c == '>':
			if i+1 < n && src[i+1] == '=' {
				toks = append(toks, Token{Kind: Gte, Text: ">=", Start: start, End: i + 2})
				i += 2
			} else {
				toks = append(toks, Token{Kind: Gt, Text: ">", Start: start, End: i + 1})
				i++
			}
		case c == '-':
			if i+1 < n && src[i+1] == '>' {
				toks = append(toks, Token{Kind: ArrowR, Text: "->", Start: start, End: i + 2})
				i += 2
			} else {
				toks = append(toks, Token{Kind: Dash, Text: "-", Start: start, End: i + 1})
				i++
			}
		case c == '\'' || c == '"':
			tok, next, err := scanString(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
		case c == '$':
			tok, next, err := scanParameter(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
		case isDigit(c):
			tok, next, err := scanNumber(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
		case isIdentStart(c):
			tok, next := scanIdent(src, i)
			toks = append(toks, tok)
			i = next
		default:
			return nil, diagnostic.NewParseError(diagnostic.KindTokenMismatch, start,
				fmt.Sprintf("unexpected character %q", c), diagnostic.ErrUnexpectedToken)
		}
	}

	toks = append(toks, Token{Kind: EOF, Start: n, End: n})
	return toks, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func scanIdent(src string, i int) (Token, int) {
	start := i
	for i < len(src) && isIdentCont(src[i]) {
		i++
	}
	text := src[start:i]
	kind := Ident
	if IsKeyword(text) {
		kind = Keyword
	}
	return Token{Kind: kind, Text: text, Start: start, End: i}, i
}

func scanParameter(src string, i int) (Token, int, error) {
	start := i
	i++ // consume '$'
	nameStart := i
	for i < len(src) && isIdentCont(src[i]) {
		i++
	}
	if i == nameStart {
		return Token{}, 0, diagnostic.NewParseError(diagnostic.KindTokenMismatch, start,
			"expected parameter name after '$'", diagnostic.ErrUnexpectedToken)
	}
	return Token{Kind: Parameter, Text: src[nameStart:i], Start: start, End: i}, i, nil
}

func scanNumber(src string, i int) (Token, int, error) {
	start := i
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	isFloat := false
	if i < len(src) && src[i] == '.' && i+1 < len(src) && isDigit(src[i+1]) {
		isFloat = true
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(src[j]) {
			isFloat = true
			i = j
			for i < len(src) && isDigit(src[i]) {
				i++
			}
		}
	}

	text := src[start:i]
	if isFloat {
		return Token{Kind: Float, Text: text, Start: start, End: i}, i, nil
	}
	if _, err := strconv.ParseInt(text, 10, 64); err != nil {
		return Token{}, 0, diagnostic.NewParseError(diagnostic.KindNumberOutOfRange, start,
			fmt.Sprintf("numeric literal %q out of 64-bit range", text), diagnostic.ErrNumberOutOfRange)
	}
	return Token{Kind: Integer, Text: text, Start: start, End: i}, i, nil
}

func scanString(src string, i int) (Token, int, error) {
	quote := src[i]
	start := i
	i++
	var b strings.Builder
	for {
		if i >= len(src) {
			return Token{}, 0, diagnostic.NewParseError(diagnostic.KindUnterminatedString, start,
				"unterminated string literal", diagnostic.ErrUnterminatedString)
		}
		c := src[i]
		if c == quote {
			i++
			break
		}
		if c == '\\' {
			if i+1 >= len(src) {
				return Token{}, 0, diagnostic.NewParseError(diagnostic.KindUnterminatedString, start,
					"unterminated string literal", diagnostic.ErrUnterminatedString)
			}
			esc := src[i+1]
			switch esc {
			case '\\':
				b.WriteByte('\\')
			case '\'':
				b.WriteByte('\'')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				return Token{}, 0, diagnostic.NewParseError(diagnostic.KindInvalidEscape, i,
					fmt.Sprintf("invalid escape sequence \\%c", esc), diagnostic.ErrInvalidEscape)
			}
			i += 2
			continue
		}
		b.WriteByte(c)
		i++
	}
	return Token{Kind: String, Text: b.String(), Start: start, End: i}, i, nil
}
