// Package schema models the declared universe of labels, relationship types,
// their properties, and legal edges a query is checked against. A Schema is
// built once via Load or LoadFrom and is immutable afterwards.
package schema

// PropertyType is the recognized vocabulary of declared property types.
type PropertyType string

const (
	TypeString   PropertyType = "STRING"
	TypeInteger  PropertyType = "INTEGER"
	TypeFloat    PropertyType = "FLOAT"
	TypeBoolean  PropertyType = "BOOLEAN"
	TypePoint    PropertyType = "POINT"
	TypeDate     PropertyType = "DATE"
	TypeDateTime PropertyType = "DATE_TIME"
	TypeList     PropertyType = "LIST"
)

// normalizeType canonicalizes recognized type aliases (DATETIME -> DATE_TIME)
// and reports whether the tag is one of the recognized types at all.
func normalizeType(tag string) (PropertyType, bool) {
	switch tag {
	case string(TypeString):
		return TypeString, true
	case string(TypeInteger):
		return TypeInteger, true
	case string(TypeFloat):
		return TypeFloat, true
	case string(TypeBoolean):
		return TypeBoolean, true
	case string(TypePoint):
		return TypePoint, true
	case string(TypeDate):
		return TypeDate, true
	case string(TypeDateTime), "DATETIME":
		return TypeDateTime, true
	case string(TypeList):
		return TypeList, true
	default:
		return "", false
	}
}

// PropertyMetadata carries optional, opaque property metadata (example
// values, enum restriction, min/max bounds, distinct-count estimate). None of
// it is consulted during validation; it is round-tripped for callers that
// inspect a loaded Schema directly.
type PropertyMetadata struct {
	Examples      []any `json:"examples,omitempty"`
	Enum          []any `json:"enum,omitempty"`
	Min           any   `json:"min,omitempty"`
	Max           any   `json:"max,omitempty"`
	DistinctCount *int  `json:"distinct_count,omitempty"`
}

// PropertyDeclaration is one named, typed property of a label or relationship
// type.
type PropertyDeclaration struct {
	Name     string
	Type     PropertyType
	Metadata *PropertyMetadata
}

// Edge is one legal directed edge (start_label, rel_type, end_label) declared
// in schema.relationships.
type Edge struct {
	StartLabel string
	RelType    string
	EndLabel   string
}

// Schema is the immutable, in-memory form of a loaded schema document.
type Schema struct {
	nodeProps map[string][]PropertyDeclaration
	relProps  map[string][]PropertyDeclaration
	edges     []Edge
	// edgeSet indexes edges for O(1) direction lookups during validation.
	edgeSet  map[Edge]bool
	metadata map[string]any

	// nodeLabelOrder/relTypeOrder preserve first-seen declaration order so
	// MarshalJSON emits a deterministic, round-trippable document.
	nodeLabelOrder []string
	relTypeOrder   []string
}

// NodeLabels returns the declared node labels, in declaration order.
func (s *Schema) NodeLabels() []string {
	out := make([]string, len(s.nodeLabelOrder))
	copy(out, s.nodeLabelOrder)
	return out
}

// RelTypes returns the declared relationship types, in declaration order.
func (s *Schema) RelTypes() []string {
	out := make([]string, len(s.relTypeOrder))
	copy(out, s.relTypeOrder)
	return out
}

// HasNodeLabel reports whether label is declared.
func (s *Schema) HasNodeLabel(label string) bool {
	_, ok := s.nodeProps[label]
	return ok
}

// HasRelType reports whether relType is declared.
func (s *Schema) HasRelType(relType string) bool {
	_, ok := s.relProps[relType]
	return ok
}

// NodeProperty looks up a declared property of label by name.
func (s *Schema) NodeProperty(label, name string) (PropertyDeclaration, bool) {
	for _, p := range s.nodeProps[label] {
		if p.Name == name {
			return p, true
		}
	}
	return PropertyDeclaration{}, false
}

// RelProperty looks up a declared property of relType by name.
func (s *Schema) RelProperty(relType, name string) (PropertyDeclaration, bool) {
	for _, p := range s.relProps[relType] {
		if p.Name == name {
			return p, true
		}
	}
	return PropertyDeclaration{}, false
}

// HasEdge reports whether the directed triple is a declared edge.
func (s *Schema) HasEdge(start, relType, end string) bool {
	return s.edgeSet[Edge{StartLabel: start, RelType: relType, EndLabel: end}]
}

// Edges returns the declared edges, in declaration order.
func (s *Schema) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// Metadata returns the opaque metadata block carried alongside the schema.
func (s *Schema) Metadata() map[string]any {
	return s.metadata
}
