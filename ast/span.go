// Package ast defines the abstract syntax tree produced by the parser:
// a Query aggregating ordered clause lists, pattern trees, and the
// WhereCondition/PropertyValue tagged unions. The tree is built exclusively
// by the parser, consumed read-only by the element extractor, and discarded
// afterwards.
package ast

// Span is the byte-offset range in the original query text a node came from,
// carried so diagnostics and parse errors can point back into source text.
type Span struct {
	Start int
	End   int
}
