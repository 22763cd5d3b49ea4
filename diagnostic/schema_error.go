package diagnostic

import "fmt"

// SchemaErrorKind classifies why a schema document failed to load.
type SchemaErrorKind int

const (
	// KindJSONMalformed covers documents that are not valid JSON at all.
	KindJSONMalformed SchemaErrorKind = iota + 1
	// KindMissingField covers an absent required field, identified by Path.
	KindMissingField
	// KindUnknownPropertyType covers a neo4j_type tag outside the recognized set.
	KindUnknownPropertyType
	// KindDanglingLabel covers a relationship endpoint naming an undeclared label.
	KindDanglingLabel
	// KindDuplicatePropertyName covers two property declarations with the same name
	// under one label or relationship type.
	KindDuplicatePropertyName
)

func (k SchemaErrorKind) String() string {
	switch k {
	case KindJSONMalformed:
		return "JsonMalformed"
	case KindMissingField:
		return "MissingField"
	case KindUnknownPropertyType:
		return "UnknownPropertyType"
	case KindDanglingLabel:
		return "DanglingLabelInRelationship"
	case KindDuplicatePropertyName:
		return "DuplicatePropertyName"
	default:
		return "Unknown"
	}
}

// SchemaError is returned by schema.Load when the input document is malformed
// or internally inconsistent.
type SchemaError struct {
	Kind SchemaErrorKind
	// Path names the field, label, relationship type or property implicated, when applicable.
	Path  string
	cause error
}

// NewSchemaError builds a SchemaError wrapping a sentinel cause.
func NewSchemaError(kind SchemaErrorKind, path string, cause error) *SchemaError {
	return &SchemaError{Kind: kind, Path: path, cause: cause}
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("schema error: %s", e.Kind)
	}
	return fmt.Sprintf("schema error: %s (%s)", e.Kind, e.Path)
}

// Unwrap exposes the underlying sentinel error for errors.Is/errors.As.
func (e *SchemaError) Unwrap() error {
	return e.cause
}
