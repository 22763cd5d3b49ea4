package schema

import (
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// nativeExample converts one raw example value from a property's metadata
// into the driver's scalar type for DATE/DATE_TIME/POINT declarations,
// rather than inventing parallel value types for the same vocabulary the
// rest of the Neo4j Go ecosystem already shares. Values of other declared
// types, and any example that doesn't match the expected wire shape, pass
// through unchanged — native conversion is a convenience for callers that
// consume example values directly, not something validation depends on.
func nativeExample(pt PropertyType, raw any) any {
	switch pt {
	case TypeDate:
		s, ok := raw.(string)
		if !ok {
			return raw
		}
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return raw
		}
		return dbtype.Date(t)
	case TypeDateTime:
		s, ok := raw.(string)
		if !ok {
			return raw
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return raw
		}
		return dbtype.DateTime(t)
	case TypePoint:
		m, ok := raw.(map[string]any)
		if !ok {
			return raw
		}
		x, xok := asFloat(m["x"])
		y, yok := asFloat(m["y"])
		if !xok || !yok {
			return raw
		}
		if z, zok := asFloat(m["z"]); zok {
			return dbtype.Point3D{X: x, Y: y, Z: z}
		}
		return dbtype.Point2D{X: x, Y: y}
	default:
		return raw
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// NativeExamples returns decl's declared examples converted to native Go
// scalar types for the POINT/DATE/DATE_TIME vocabulary, suitable for use in
// generated test fixtures or documentation without re-parsing JSON.
func (decl PropertyDeclaration) NativeExamples() []any {
	if decl.Metadata == nil {
		return nil
	}
	out := make([]any, len(decl.Metadata.Examples))
	for i, ex := range decl.Metadata.Examples {
		out[i] = nativeExample(decl.Type, ex)
	}
	return out
}

// ExampleStrings renders decl's native examples as human-readable strings,
// for use in generated documentation or log output.
func (decl PropertyDeclaration) ExampleStrings() []string {
	natives := decl.NativeExamples()
	out := make([]string, len(natives))
	for i, n := range natives {
		out[i] = nativeExampleString(n)
	}
	return out
}

// nativeExampleString renders a native example value for diagnostics/logging.
func nativeExampleString(v any) string {
	switch n := v.(type) {
	case dbtype.Date:
		return time.Time(n).Format("2006-01-02")
	case dbtype.DateTime:
		return time.Time(n).Format(time.RFC3339)
	case dbtype.Point2D:
		return fmt.Sprintf("POINT(%g %g)", n.X, n.Y)
	case dbtype.Point3D:
		return fmt.Sprintf("POINT(%g %g %g)", n.X, n.Y, n.Z)
	default:
		return fmt.Sprintf("%v", n)
	}
}
