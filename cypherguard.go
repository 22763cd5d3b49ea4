// Package cypherguard is the public façade: given a Cypher query and a
// graph schema, it answers whether the query is syntactically well-formed
// and whether every label, relationship type, property, direction, and
// property-value type it references is consistent with the schema.
//
// The library is a pure, synchronous pipeline over in-memory values: schema
// loading, parsing, element extraction, and validation each allocate but
// never block, and a loaded Schema may be reused concurrently across
// distinct queries.
package cypherguard

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/neo4j-field/cypher-guard/ast"
	"github.com/neo4j-field/cypher-guard/diagnostic"
	"github.com/neo4j-field/cypher-guard/elements"
	"github.com/neo4j-field/cypher-guard/parser"
	"github.com/neo4j-field/cypher-guard/schema"
	"github.com/neo4j-field/cypher-guard/validate"
)

// Diagnostic re-exports diagnostic.Diagnostic at the package root so callers
// need not import the diagnostic package for the common case.
type Diagnostic = diagnostic.Diagnostic

// config holds the behavior Option functions adjust. There is no ambient
// configuration (no env vars, no files); every knob is explicit.
type config struct {
	logger *slog.Logger
}

// Option adjusts Validate's behavior.
type Option func(*config)

// WithLogger routes this call's structured logging through logger instead
// of slog's default handler.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

func resolveLogger(opts []Option) *slog.Logger {
	c := &config{logger: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	return c.logger
}

// LoadSchema parses a JSON schema document. See package schema for the
// accepted dialects.
func LoadSchema(jsonText []byte) (*schema.Schema, error) {
	return schema.Load(jsonText)
}

// Parse turns query text into an *ast.Query, or a *diagnostic.ParseError on
// the first syntax violation.
func Parse(query string) (*ast.Query, error) {
	return parser.Parse(query)
}

// CheckSyntax reports whether query parses, discarding the tree. It
// succeeds under exactly the same conditions as Parse.
func CheckSyntax(query string) error {
	return parser.CheckSyntax(query)
}

// HasParserErrors reports whether query fails to parse.
func HasParserErrors(query string) bool {
	return parser.CheckSyntax(query) != nil
}

// IsWrite reports whether query's AST contains a CREATE, MERGE, SET,
// DELETE, or REMOVE clause.
func IsWrite(query string) (bool, error) {
	q, err := parser.Parse(query)
	if err != nil {
		return false, err
	}
	return queryIsWrite(q), nil
}

// IsRead is the negation of IsWrite. IsWrite and IsRead are mutually
// exclusive and collectively exhaustive for every query that parses.
func IsRead(query string) (bool, error) {
	w, err := IsWrite(query)
	if err != nil {
		return false, err
	}
	return !w, nil
}

func queryIsWrite(q *ast.Query) bool {
	return len(q.Create) > 0 || len(q.Merge) > 0 || len(q.Set) > 0 || len(q.Delete) > 0 || len(q.Remove) > 0
}

// Validate parses query, extracts its schema-relevant elements, and
// cross-references them against s, returning every violation found. A nil
// slice means the query is schema-valid. A parse failure is returned as an
// error, not folded into the diagnostic list, since parse and schema errors
// are fatal while validation diagnostics never are.
func Validate(query string, s *schema.Schema, opts ...Option) ([]Diagnostic, error) {
	logger := resolveLogger(opts)
	callID := uuid.NewString()
	logger.Debug("validating query", "call_id", callID, "query_len", len(query))

	q, err := parser.Parse(query)
	if err != nil {
		logger.Warn("validate: parse failed", "call_id", callID, "error", err)
		return nil, err
	}

	qe := elements.Extract(q)
	diagnostics := validate.Validate(qe, s)

	logger.Info("validate complete", "call_id", callID, "diagnostic_count", len(diagnostics))
	return diagnostics, nil
}
