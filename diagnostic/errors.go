// Package diagnostic defines the three disjoint failure families the engine
// can produce: ParseError (malformed query text), SchemaError (malformed
// schema document), and Diagnostic (a schema-conformance violation found in an
// otherwise well-formed query).
package diagnostic

import "errors"

// === Parser sentinel errors ===
var (
	// ErrUnexpectedToken is returned when a production expected one token and found another.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrUnexpectedEOF is returned when input ended before a production could complete.
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrExpectedClause is returned when no known clause keyword matched at the current position.
	ErrExpectedClause = errors.New("expected a clause")

	// ErrReturnBeforeOtherClauses is returned for a RETURN that projects a non-literal
	// identifier with no defining clause earlier in the query.
	ErrReturnBeforeOtherClauses = errors.New("return clause references an identifier with no prior defining clause")

	// ErrMatchAfterReturn is returned when a MATCH or OPTIONAL MATCH clause follows a RETURN clause.
	ErrMatchAfterReturn = errors.New("match clause cannot follow return")

	// ErrInvalidClauseOrder is returned for any other clause-ordering violation.
	ErrInvalidClauseOrder = errors.New("invalid clause order")

	// ErrMissingRequiredClause is returned when a construct requires a clause that is absent,
	// e.g. a query that contains no clauses at all.
	ErrMissingRequiredClause = errors.New("missing required clause")

	// ErrNumberOutOfRange is returned when a numeric literal does not fit a signed 64-bit integer.
	ErrNumberOutOfRange = errors.New("numeric literal out of 64-bit range")

	// ErrUnterminatedString is returned when a quoted string literal has no closing quote.
	ErrUnterminatedString = errors.New("unterminated string literal")

	// ErrInvalidEscape is returned when a string literal contains an unrecognized escape sequence.
	ErrInvalidEscape = errors.New("invalid escape sequence")
)

// === Schema loader sentinel errors ===
var (
	// ErrSchemaJSONMalformed is returned when the schema document is not valid JSON.
	ErrSchemaJSONMalformed = errors.New("schema json malformed")

	// ErrSchemaMissingField is returned when a required field is absent from the document.
	ErrSchemaMissingField = errors.New("schema missing required field")

	// ErrSchemaUnknownPropertyType is returned when a neo4j_type tag is not recognized.
	ErrSchemaUnknownPropertyType = errors.New("unknown property type")

	// ErrSchemaDanglingLabel is returned when a relationship endpoint names a label
	// that has no corresponding entry in node_props.
	ErrSchemaDanglingLabel = errors.New("relationship references undeclared label")

	// ErrSchemaDanglingRelType is returned when a relationship names a rel-type with
	// no corresponding entry in rel_props.
	ErrSchemaDanglingRelType = errors.New("relationship references undeclared relationship type")

	// ErrSchemaDuplicateProperty is returned when the same property name is declared
	// twice for one label or relationship type.
	ErrSchemaDuplicateProperty = errors.New("duplicate property name")
)
