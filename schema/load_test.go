package schema_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/neo4j-field/cypher-guard/schema"
	schema_mocks "github.com/neo4j-field/cypher-guard/schema/mocks"
)

func TestLoadFrom_UsesSourceBytes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := schema_mocks.NewMockSource(ctrl)
	src.EXPECT().Read(gomock.Any()).Return([]byte(`{"node_props": {"Person": []}, "rel_props": {}, "relationships": []}`), nil)

	s, err := schema.LoadFrom(context.Background(), src)
	require.NoError(t, err)
	assert.True(t, s.HasNodeLabel("Person"))
}

func TestLoadFrom_PropagatesSourceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := schema_mocks.NewMockSource(ctrl)
	src.EXPECT().Read(gomock.Any()).Return(nil, errors.New("boom"))

	_, err := schema.LoadFrom(context.Background(), src)
	require.Error(t, err)
}

func TestBytesSource_RoundTrips(t *testing.T) {
	src := schema.BytesSource{Bytes: []byte("hello")}
	b, err := src.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}
