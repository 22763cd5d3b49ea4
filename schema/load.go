package schema

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Load parses a JSON schema document into an immutable Schema, enforcing the
// internal-consistency invariants: every relationship endpoint label and
// every relationship type must be declared, and property names must be
// unique within their owning label or relationship type.
func Load(jsonText []byte) (*Schema, error) {
	callID := uuid.NewString()
	slog.Debug("loading schema", "call_id", callID, "bytes", len(jsonText))

	s, err := parseDocument(jsonText)
	if err != nil {
		slog.Error("schema load failed", "call_id", callID, "error", err)
		return nil, err
	}

	slog.Info("schema loaded", "call_id", callID,
		"labels", len(s.nodeLabelOrder), "rel_types", len(s.relTypeOrder), "edges", len(s.edges))
	return s, nil
}

// Source abstracts where schema bytes come from, so callers can exercise
// LoadFrom against a fake in tests without the library itself performing any
// I/O. This mirrors a seam used elsewhere for service dependencies; the
// library's only built-in sources are FileSource and BytesSource.
//
//go:generate mockgen -destination=mocks/mock_source.go -package=schema_mocks -typed github.com/neo4j-field/cypher-guard/schema Source
type Source interface {
	Read(ctx context.Context) ([]byte, error)
}

// BytesSource adapts an in-memory document to the Source interface.
type BytesSource struct {
	Bytes []byte
}

func (b BytesSource) Read(_ context.Context) ([]byte, error) {
	return b.Bytes, nil
}

// FileSource reads a schema document from Path on every call to Read.
type FileSource struct {
	Path string
}

func (f FileSource) Read(_ context.Context) ([]byte, error) {
	return os.ReadFile(f.Path)
}

// LoadFrom reads bytes from src and loads them as a schema document.
func LoadFrom(ctx context.Context, src Source) (*Schema, error) {
	callID := uuid.NewString()
	raw, err := src.Read(ctx)
	if err != nil {
		slog.Error("schema source read failed", "call_id", callID, "error", err)
		return nil, err
	}
	return Load(raw)
}
