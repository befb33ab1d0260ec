package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGraphSanitizes(t *testing.T) {
	g, err := ParseGraph([]byte(`{
		"nodes": [
			{"id":"a","type":"whale","risk_level":0.8,"lat":10,"lng":20},
			{"id":"","risk_level":0.5},
			{"id":"b","risk_level":0.1,"lat":95,"lng":0}
		],
		"edges": [
			{"source_id":"a","target_id":"b","strength":0.6},
			{"source_id":"a","target_id":"","strength":0.9},
			{"source_id":"a","target_id":"ghost","strength":0.9}
		]
	}`))
	require.NoError(t, err)

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, NodeUnknown, g.Nodes[1].Type)
	assert.True(t, g.Nodes[0].HasGeo())
	assert.False(t, g.Nodes[1].HasGeo())
	assert.False(t, g.Nodes[0].HasPosition())

	assert.Len(t, g.Edges, 2)
}

func TestParseGraphInvalid(t *testing.T) {
	g, err := ParseGraph([]byte(`{"nodes":`))
	assert.Error(t, err)
	assert.Empty(t, g.Nodes)
}
