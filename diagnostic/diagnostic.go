package diagnostic

import "fmt"

// Kind enumerates the schema-conformance violation taxonomy. Unlike
// ParseError/SchemaError, diagnostics never abort validation — the validator
// accumulates every applicable Kind across every rule. validate.Validate
// emits no InvalidPropertyAccess, InvalidPropertyName or InvalidLabel
// diagnostics; those kinds are part of the taxonomy only.
type Kind int

const (
	// InvalidNodeLabel: a node label referenced in the query has no entry in schema.node_props.
	InvalidNodeLabel Kind = iota + 1
	// InvalidRelationshipType: a relationship type referenced has no entry in schema.rel_props.
	InvalidRelationshipType
	// InvalidNodeProperty: a property accessed on a label is not declared for that label.
	InvalidNodeProperty
	// InvalidRelationshipProperty: a property accessed on a relationship type is not declared for it.
	InvalidRelationshipProperty
	// InvalidPropertyAccess: a property was accessed on a variable whose binding could not
	// be resolved to any label or relationship type (distinct from UndefinedVariable: the
	// variable exists but is untyped, e.g. bound by a non-projecting WITH).
	InvalidPropertyAccess
	// InvalidPropertyName reports a property name that is syntactically present but
	// resolves to neither a node nor relationship declaration once its owner is known.
	InvalidPropertyName
	// UndefinedVariable: a variable was referenced but never defined in the active scope.
	UndefinedVariable
	// TypeMismatch: a property comparison's literal kind is incompatible with the
	// property's declared neo4j_type.
	TypeMismatch
	// InvalidRelationship: a pattern edge's (start, rel_type, end) triple appears in
	// neither direction in schema.relationships.
	InvalidRelationship
	// InvalidRelationshipDirection: the reverse triple exists in the schema but not
	// the one implied by the query's arrow direction.
	InvalidRelationshipDirection
	// InvalidLabel is the generic form of InvalidNodeLabel used when a label is
	// referenced outside of a node pattern (e.g. in a dynamic label expression).
	InvalidLabel
)

func (k Kind) String() string {
	switch k {
	case InvalidNodeLabel:
		return "InvalidNodeLabel"
	case InvalidRelationshipType:
		return "InvalidRelationshipType"
	case InvalidNodeProperty:
		return "InvalidNodeProperty"
	case InvalidRelationshipProperty:
		return "InvalidRelationshipProperty"
	case InvalidPropertyAccess:
		return "InvalidPropertyAccess"
	case InvalidPropertyName:
		return "InvalidPropertyName"
	case UndefinedVariable:
		return "UndefinedVariable"
	case TypeMismatch:
		return "TypeMismatch"
	case InvalidRelationship:
		return "InvalidRelationship"
	case InvalidRelationshipDirection:
		return "InvalidRelationshipDirection"
	case InvalidLabel:
		return "InvalidLabel"
	default:
		return "Unknown"
	}
}

// Diagnostic is one structured violation produced by validate.Validate. Fields
// not applicable to Kind are left at their zero value.
type Diagnostic struct {
	Kind Kind

	Label      string
	RelType    string
	Property   string
	Variable   string
	StartLabel string
	EndLabel   string

	// ExpectedType/GotType are populated only for Kind == TypeMismatch.
	ExpectedType string
	GotType      string

	Message string
}

// New builds a Diagnostic with only Kind and Message set. An empty message
// is stored as is; String then falls back to the Kind name.
func New(kind Kind, message string) Diagnostic {
	return Diagnostic{Kind: kind, Message: message}
}

func (d Diagnostic) String() string {
	if d.Message != "" {
		return d.Message
	}
	return fmt.Sprintf("%s", d.Kind)
}
