package schema

import json "github.com/goccy/go-json"

// MarshalJSON renders the schema in its canonical, snake_case form
// (node_props/rel_props, neo4j_type) regardless of which dialect it was
// loaded from. Re-loading the result and marshaling again yields a
// byte-identical document.
func (s *Schema) MarshalJSON() ([]byte, error) {
	doc := struct {
		NodeProps     map[string][]propertyOut `json:"node_props"`
		RelProps      map[string][]propertyOut `json:"rel_props"`
		Relationships []edgeDoc                `json:"relationships"`
		Metadata      map[string]any           `json:"metadata,omitempty"`
	}{
		NodeProps:     make(map[string][]propertyOut, len(s.nodeLabelOrder)),
		RelProps:      make(map[string][]propertyOut, len(s.relTypeOrder)),
		Relationships: make([]edgeDoc, 0, len(s.edges)),
		Metadata:      s.metadata,
	}

	for _, label := range s.nodeLabelOrder {
		doc.NodeProps[label] = toPropertyOut(s.nodeProps[label])
	}
	for _, relType := range s.relTypeOrder {
		doc.RelProps[relType] = toPropertyOut(s.relProps[relType])
	}
	for _, e := range s.edges {
		doc.Relationships = append(doc.Relationships, edgeDoc{Start: e.StartLabel, RelType: e.RelType, End: e.EndLabel})
	}

	return json.Marshal(doc)
}

// propertyOut is the canonical wire shape for a single property declaration.
type propertyOut struct {
	Name     string            `json:"name"`
	Neo4jT   string            `json:"neo4j_type"`
	Metadata *PropertyMetadata `json:"metadata,omitempty"`
}

func toPropertyOut(decls []PropertyDeclaration) []propertyOut {
	out := make([]propertyOut, len(decls))
	for i, d := range decls {
		out[i] = propertyOut{Name: d.Name, Neo4jT: string(d.Type), Metadata: d.Metadata}
	}
	return out
}
