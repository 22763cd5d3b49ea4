package validate_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/neo4j-field/cypher-guard/elements"
	"github.com/neo4j-field/cypher-guard/parser"
	"github.com/neo4j-field/cypher-guard/validate"
)

// queryFixture is one entry of testdata/queries.yaml.
type queryFixture struct {
	Name         string   `yaml:"name"`
	Query        string   `yaml:"query"`
	ExpectKinds  []string `yaml:"expect_kinds"`
}

func loadFixtures(t *testing.T) []queryFixture {
	t.Helper()
	raw, err := os.ReadFile("../testdata/queries.yaml")
	require.NoError(t, err)

	var fixtures []queryFixture
	require.NoError(t, yaml.Unmarshal(raw, &fixtures))
	return fixtures
}

func TestValidate_AgainstYAMLFixtures(t *testing.T) {
	s := loadCanonicalSchema(t)

	for _, fx := range loadFixtures(t) {
		t.Run(fx.Name, func(t *testing.T) {
			q, err := parser.Parse(fx.Query)
			require.NoError(t, err)

			diags := validate.Validate(elements.Extract(q), s)
			kinds := make([]string, len(diags))
			for i, d := range diags {
				kinds[i] = d.Kind.String()
			}
			assert.Equal(t, fx.ExpectKinds, kinds)
		})
	}
}
