package parser

import (
	"fmt"

	"github.com/neo4j-field/cypher-guard/diagnostic"
)

func diagnosticUnexpectedEOF(offset int, want string) error {
	return diagnostic.NewParseError(diagnostic.KindUnexpectedEOF, offset,
		fmt.Sprintf("expected %s, found end of input", want), diagnostic.ErrUnexpectedEOF)
}

func diagnosticTokenMismatch(offset int, want, got string) error {
	return diagnostic.NewParseError(diagnostic.KindTokenMismatch, offset,
		fmt.Sprintf("expected %s, found %q", want, got), diagnostic.ErrUnexpectedToken)
}
