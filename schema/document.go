package schema

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/neo4j-field/cypher-guard/diagnostic"
)

// propertyDoc is the wire shape of one property declaration, wide enough to
// accept both the {name, neo4j_type} and {property, type} dialects.
type propertyDoc struct {
	Name     string          `json:"name,omitempty"`
	Property string          `json:"property,omitempty"`
	Neo4jT   string          `json:"neo4j_type,omitempty"`
	Type     string          `json:"type,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`

	Examples      []any `json:"examples,omitempty"`
	Enum          []any `json:"enum,omitempty"`
	Min           any   `json:"min,omitempty"`
	Max           any   `json:"max,omitempty"`
	DistinctCount *int  `json:"distinct_count,omitempty"`
}

func (p propertyDoc) name() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Property
}

func (p propertyDoc) typeTag() string {
	if p.Neo4jT != "" {
		return p.Neo4jT
	}
	return p.Type
}

func (p propertyDoc) toMetadata() *PropertyMetadata {
	// A nested "metadata" object is the form MarshalJSON emits.
	if len(p.Metadata) > 0 && string(p.Metadata) != "null" {
		var m PropertyMetadata
		if err := json.Unmarshal(p.Metadata, &m); err == nil {
			return &m
		}
	}
	if p.Examples == nil && p.Enum == nil && p.Min == nil && p.Max == nil && p.DistinctCount == nil {
		return nil
	}
	return &PropertyMetadata{
		Examples:      p.Examples,
		Enum:          p.Enum,
		Min:           p.Min,
		Max:           p.Max,
		DistinctCount: p.DistinctCount,
	}
}

// edgeDoc is the wire shape of one relationships entry.
type edgeDoc struct {
	Start   string `json:"start"`
	RelType string `json:"rel_type"`
	End     string `json:"end"`
}

// schemaDoc is the wire shape of a whole schema document, accepting both the
// current (node_props/rel_props) and legacy (nodeProps/relProps) top-level
// field-name dialects.
type schemaDoc struct {
	NodeProps       map[string][]propertyDoc `json:"node_props,omitempty"`
	NodePropsLegacy map[string][]propertyDoc `json:"nodeProps,omitempty"`
	RelProps        map[string][]propertyDoc `json:"rel_props,omitempty"`
	RelPropsLegacy  map[string][]propertyDoc `json:"relProps,omitempty"`
	Relationships   []edgeDoc                `json:"relationships,omitempty"`
	Metadata        map[string]any           `json:"metadata,omitempty"`
}

func (d schemaDoc) nodeProps() map[string][]propertyDoc {
	if d.NodeProps != nil {
		return d.NodeProps
	}
	return d.NodePropsLegacy
}

func (d schemaDoc) relProps() map[string][]propertyDoc {
	if d.RelProps != nil {
		return d.RelProps
	}
	return d.RelPropsLegacy
}

// parseDocument decodes raw JSON bytes into a validated, immutable Schema.
func parseDocument(raw []byte) (*Schema, error) {
	var doc schemaDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, diagnostic.NewSchemaError(diagnostic.KindJSONMalformed, "", fmt.Errorf("%w: %v", diagnostic.ErrSchemaJSONMalformed, err))
	}

	s := &Schema{
		nodeProps: make(map[string][]PropertyDeclaration),
		relProps:  make(map[string][]PropertyDeclaration),
		edgeSet:   make(map[Edge]bool),
		metadata:  doc.Metadata,
	}

	for label, props := range doc.nodeProps() {
		decls, err := decodeProperties(label, props)
		if err != nil {
			return nil, err
		}
		s.nodeProps[label] = decls
		s.nodeLabelOrder = append(s.nodeLabelOrder, label)
	}

	for relType, props := range doc.relProps() {
		decls, err := decodeProperties(relType, props)
		if err != nil {
			return nil, err
		}
		s.relProps[relType] = decls
		s.relTypeOrder = append(s.relTypeOrder, relType)
	}

	for _, e := range doc.Relationships {
		if _, ok := s.nodeProps[e.Start]; !ok {
			return nil, diagnostic.NewSchemaError(diagnostic.KindDanglingLabel, e.Start, diagnostic.ErrSchemaDanglingLabel)
		}
		if _, ok := s.nodeProps[e.End]; !ok {
			return nil, diagnostic.NewSchemaError(diagnostic.KindDanglingLabel, e.End, diagnostic.ErrSchemaDanglingLabel)
		}
		if _, ok := s.relProps[e.RelType]; !ok {
			return nil, diagnostic.NewSchemaError(diagnostic.KindMissingField, e.RelType, diagnostic.ErrSchemaDanglingRelType)
		}
		edge := Edge{StartLabel: e.Start, RelType: e.RelType, EndLabel: e.End}
		s.edges = append(s.edges, edge)
		s.edgeSet[edge] = true
	}

	return s, nil
}

func decodeProperties(owner string, props []propertyDoc) ([]PropertyDeclaration, error) {
	seen := make(map[string]bool, len(props))
	decls := make([]PropertyDeclaration, 0, len(props))
	for _, p := range props {
		name := p.name()
		if name == "" {
			return nil, diagnostic.NewSchemaError(diagnostic.KindMissingField, owner+".name", diagnostic.ErrSchemaMissingField)
		}
		if seen[name] {
			return nil, diagnostic.NewSchemaError(diagnostic.KindDuplicatePropertyName, owner+"."+name, diagnostic.ErrSchemaDuplicateProperty)
		}
		seen[name] = true

		tag := p.typeTag()
		pt, ok := normalizeType(tag)
		if !ok {
			return nil, diagnostic.NewSchemaError(diagnostic.KindUnknownPropertyType, owner+"."+name+"="+tag, diagnostic.ErrSchemaUnknownPropertyType)
		}

		decls = append(decls, PropertyDeclaration{
			Name:     name,
			Type:     pt,
			Metadata: p.toMetadata(),
		})
	}
	return decls, nil
}
