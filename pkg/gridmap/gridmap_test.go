package gridmap_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lintang-b-s/turnguide/pkg/datastructure"
	"github.com/lintang-b-s/turnguide/pkg/gridmap"
)

const sampleMap = `
# small T junction
grid 20
l c r
. a .
endgrid
way nodes=ac name=stem_street highway=residential lanes=2
way nodes=lcr name=bar_street highway=secondary oneway=yes
restrict from=a via=c to=r
`

func TestParse(t *testing.T) {
	def, err := gridmap.Parse(strings.NewReader(sampleMap))
	require.NoError(t, err)

	assert.Equal(t, 20.0, def.SpacingMeters)
	assert.Equal(t, 2, len(def.Grid))
	require.Equal(t, 2, len(def.Ways))
	assert.Equal(t, "stem street", def.Ways[0].Name)
	assert.Equal(t, 2, def.Ways[0].Lanes)
	assert.True(t, def.Ways[1].Oneway)
	require.Equal(t, 1, len(def.Restrictions))
	assert.Equal(t, byte('a'), def.Restrictions[0].From)
}

func TestParseRejectsUnknownDirective(t *testing.T) {
	_, err := gridmap.Parse(strings.NewReader("frobnicate x=1\n"))
	assert.Error(t, err)
}

func TestParseRejectsUnterminatedGrid(t *testing.T) {
	_, err := gridmap.Parse(strings.NewReader("grid 20\na b\n"))
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	def, err := gridmap.Parse(strings.NewReader(sampleMap))
	require.NoError(t, err)
	graph, err := gridmap.Build(def)
	require.NoError(t, err)

	assert.Equal(t, 4, graph.NumNodes())
	// stem twoway = 2 edges, bar oneway = 2 edges
	assert.Equal(t, 4, graph.NumEdges())

	aID, err := graph.NodeByLabel('a')
	require.NoError(t, err)
	cID, err := graph.NodeByLabel('c')
	require.NoError(t, err)

	a, err := graph.GetNode(aID)
	require.NoError(t, err)
	c, err := graph.GetNode(cID)
	require.NoError(t, err)
	assert.Less(t, a.Lat, c.Lat, "a sits one grid row south of c")

	// grid neighbors sit one spacing apart
	for _, edge := range graph.GetNodeOutEdges(aID) {
		if edge.ToNodeID == cID {
			assert.InDelta(t, 20.0, edge.Distance, 0.1)
			assert.Greater(t, edge.Duration, 0.0)
		}
	}
}

func TestBuildRejectsUnknownLabel(t *testing.T) {
	_, err := gridmap.Build(gridmap.MapDef{
		Grid: []string{"a b"},
		Ways: []gridmap.WayDef{{Nodes: "ax", Name: "broken"}},
	})
	assert.Error(t, err)
}

func TestRestrictionBansTurn(t *testing.T) {
	def, err := gridmap.Parse(strings.NewReader(sampleMap))
	require.NoError(t, err)
	graph, err := gridmap.Build(def)
	require.NoError(t, err)

	aID, _ := graph.NodeByLabel('a')
	cID, _ := graph.NodeByLabel('c')
	rID, _ := graph.NodeByLabel('r')

	var stemUp datastructure.Edge
	for _, edge := range graph.GetNodeOutEdges(aID) {
		if edge.ToNodeID == cID {
			stemUp = edge
		}
	}

	for _, outID := range graph.AllowedTurns(stemUp.ID, cID) {
		edge, err := graph.GetEdge(outID)
		require.NoError(t, err)
		assert.NotEqual(t, rID, edge.ToNodeID, "restricted turn must be filtered")
	}
}

func TestFindPathHonorsOneway(t *testing.T) {
	def, err := gridmap.Parse(strings.NewReader(`
grid 20
a b c
endgrid
way nodes=abc name=one_way highway=primary oneway=yes
`))
	require.NoError(t, err)
	graph, err := gridmap.Build(def)
	require.NoError(t, err)

	path, err := graph.FindPath('a', 'c')
	require.NoError(t, err)
	assert.Equal(t, 2, len(path))

	_, err = graph.FindPath('c', 'a')
	assert.Error(t, err, "no path against the one-way")
}

func TestTablesRoundTrip(t *testing.T) {
	def, err := gridmap.Parse(strings.NewReader(sampleMap))
	require.NoError(t, err)
	graph, err := gridmap.Build(def)
	require.NoError(t, err)

	rebuilt := gridmap.NewGraphFromTables(graph.Nodes(), graph.Edges(), graph.Labels(), graph.BannedTurns())

	assert.Equal(t, graph.NumNodes(), rebuilt.NumNodes())
	assert.Equal(t, graph.NumEdges(), rebuilt.NumEdges())

	aID, _ := graph.NodeByLabel('a')
	assert.Equal(t, len(graph.GetNodeOutEdges(aID)), len(rebuilt.GetNodeOutEdges(aID)))
	assert.Equal(t, len(graph.GetNodeInEdges(aID)), len(rebuilt.GetNodeInEdges(aID)))

	cID, _ := graph.NodeByLabel('c')
	for _, edge := range graph.GetNodeOutEdges(aID) {
		if edge.ToNodeID == cID {
			assert.Equal(t, graph.AllowedTurns(edge.ID, cID), rebuilt.AllowedTurns(edge.ID, cID))
		}
	}
}
