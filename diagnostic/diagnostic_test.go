package diagnostic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError_UnwrapsSentinel(t *testing.T) {
	err := NewParseError(KindUnexpectedEOF, 12, "boom", ErrUnexpectedEOF)
	assert.True(t, errors.Is(err, ErrUnexpectedEOF))
	assert.Contains(t, err.Error(), "12")
}

func TestSchemaError_KindStringMatchesTaxonomy(t *testing.T) {
	assert.Equal(t, "DanglingLabelInRelationship", KindDanglingLabel.String())
	assert.Equal(t, "JsonMalformed", KindJSONMalformed.String())
}

func TestDiagnosticKind_String(t *testing.T) {
	assert.Equal(t, "InvalidNodeLabel", InvalidNodeLabel.String())
	assert.Equal(t, "TypeMismatch", TypeMismatch.String())
}
