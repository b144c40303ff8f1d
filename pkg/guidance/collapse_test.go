package guidance_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lintang-b-s/turnguide/pkg/datastructure"
	"github.com/lintang-b-s/turnguide/pkg/gridmap"
	"github.com/lintang-b-s/turnguide/pkg/guidance"
)

// every scenario map of the suite, for the universal property checks.
var propertyMaps = []struct {
	name     string
	mapText  string
	from, to byte
}{
	{"segregated cross", segregatedIntersectionMap, 'a', 'l'},
	{"segregated uturn", segregatedIntersectionMap, 'a', 'h'},
	{"ferry uturn", ferryUTurnMap, 'a', 'h'},
	{"wide fork", wideForkMap, 'a', 'g'},
}

func TestGuidanceStartsWithDepartEndsWithArrive(t *testing.T) {
	for _, c := range propertyMaps {
		t.Run(c.name, func(t *testing.T) {
			graph := buildMap(t, c.mapText)
			result := route(t, graph, c.from, c.to)

			require.GreaterOrEqual(t, len(result.Maneuvers), 2)
			assert.Equal(t, datastructure.DEPART, result.Maneuvers[0].Type)
			assert.Equal(t, datastructure.ARRIVE, result.Maneuvers[len(result.Maneuvers)-1].Type)
		})
	}
}

func TestAdjacentManeuversNeverShareNamesSilently(t *testing.T) {
	for _, c := range propertyMaps {
		t.Run(c.name, func(t *testing.T) {
			graph := buildMap(t, c.mapText)
			result := route(t, graph, c.from, c.to)

			for i := 1; i < len(result.Maneuvers)-1; i++ {
				prev, cur := result.Maneuvers[i-1], result.Maneuvers[i]
				if prev.Name == "" || cur.Name == "" || prev.Mode != cur.Mode {
					continue
				}
				if cur.Modifier == datastructure.MOD_UTURN {
					continue
				}
				if cur.Type == datastructure.USE_LANE || cur.Type == datastructure.NOTIFICATION {
					continue
				}
				assert.NotEqual(t, prev.Name, cur.Name,
					"maneuvers %d and %d silently share a street name: %v", i-1, i, describe(result.Maneuvers))
			}
		})
	}
}

func TestModeBoundariesAlwaysSurface(t *testing.T) {
	graph := buildMap(t, ferryUTurnMap)
	path, err := graph.FindPath('a', 'h')
	require.NoError(t, err)

	result, err := guidance.NewEngine(graph).GuidanceFromPath(path)
	require.NoError(t, err)

	// count mode changes along the raw edge path
	boundaries := 0
	for i := 1; i < len(path); i++ {
		prev, _ := graph.GetEdge(path[i-1])
		cur, _ := graph.GetEdge(path[i])
		if prev.Mode != cur.Mode {
			boundaries++
		}
	}
	require.Greater(t, boundaries, 0)

	notifications := 0
	for _, m := range result.Maneuvers {
		if m.Type == datastructure.NOTIFICATION {
			notifications++
		}
	}
	assert.Equal(t, boundaries, notifications, "every travel-mode boundary surfaces a maneuver")
}

// running the collapsing engine on an already-collapsed step list is a
// no-op.
func TestCollapseIdempotent(t *testing.T) {
	for _, c := range propertyMaps {
		t.Run(c.name, func(t *testing.T) {
			graph := buildMap(t, c.mapText)
			path, err := graph.FindPath(c.from, c.to)
			require.NoError(t, err)

			engine := guidance.NewEngine(graph)
			edges := make([]datastructure.Edge, 0, len(path))
			for _, id := range path {
				edge, err := graph.GetEdge(id)
				require.NoError(t, err)
				edges = append(edges, edge)
			}

			steps, err := engine.BuildSteps(edges)
			require.NoError(t, err)

			once := engine.Collapse(steps)
			twice := engine.Collapse(once)

			require.Equal(t, len(once), len(twice))
			for i := range once {
				assert.Equal(t, once[i].Instruction, twice[i].Instruction, "step %d", i)
				assert.Equal(t, once[i].Name, twice[i].Name, "step %d", i)
				assert.InDelta(t, once[i].Distance, twice[i].Distance, 1e-9, "step %d", i)
			}
		})
	}
}

// maneuver locations appear in path order.
func TestManeuverLocationsMonotone(t *testing.T) {
	for _, c := range propertyMaps {
		t.Run(c.name, func(t *testing.T) {
			graph := buildMap(t, c.mapText)
			path, err := graph.FindPath(c.from, c.to)
			require.NoError(t, err)

			result, err := guidance.NewEngine(graph).GuidanceFromPath(path)
			require.NoError(t, err)

			// index of each maneuver location along the path node sequence
			pathNodes := []int32{}
			for i, id := range path {
				edge, _ := graph.GetEdge(id)
				if i == 0 {
					pathNodes = append(pathNodes, edge.FromNodeID)
				}
				pathNodes = append(pathNodes, edge.ToNodeID)
			}

			lastIdx := -1
			for mi, m := range result.Maneuvers {
				found := -1
				for ni, nodeID := range pathNodes {
					node, _ := graph.GetNode(nodeID)
					if ni > lastIdx && node.Loc() == m.Location {
						found = ni
						break
					}
				}
				require.GreaterOrEqual(t, found, 0, "maneuver %d location not on path (or out of order)", mi)
				lastIdx = found - 1
				if mi == len(result.Maneuvers)-1 {
					lastIdx = found
				}
			}
		})
	}
}

func TestInvalidRouteInput(t *testing.T) {
	graph := buildMap(t, segregatedIntersectionMap)
	engine := guidance.NewEngine(graph)

	t.Run("empty path", func(t *testing.T) {
		_, err := engine.GuidanceFromPath(nil)
		assert.ErrorIs(t, err, guidance.ErrInvalidRouteInput)
	})

	t.Run("unknown edge", func(t *testing.T) {
		_, err := engine.GuidanceFromPath([]int32{9999})
		assert.ErrorIs(t, err, guidance.ErrInvalidRouteInput)
	})

	t.Run("gap between edges", func(t *testing.T) {
		// two valid edges that do not share a node
		var disconnected []int32
		edges := graph.Edges()
		for i := range edges {
			for j := range edges {
				if edges[j].FromNodeID != edges[i].ToNodeID && i != j {
					disconnected = []int32{edges[i].ID, edges[j].ID}
					break
				}
			}
			if disconnected != nil {
				break
			}
		}
		require.NotNil(t, disconnected)
		_, err := engine.GuidanceFromPath(disconnected)
		assert.ErrorIs(t, err, guidance.ErrInvalidRouteInput)
	})

	t.Run("single edge still departs and arrives", func(t *testing.T) {
		result, err := engine.GuidanceFromPath([]int32{graph.Edges()[0].ID})
		require.NoError(t, err)
		require.Equal(t, 2, len(result.Maneuvers))
		assert.Equal(t, datastructure.DEPART, result.Maneuvers[0].Type)
		assert.Equal(t, datastructure.ARRIVE, result.Maneuvers[1].Type)
	})
}

func TestGuidanceAggregatesDistanceAndGeometry(t *testing.T) {
	graph := buildMap(t, segregatedIntersectionMap)
	path, err := graph.FindPath('a', 'l')
	require.NoError(t, err)

	result, err := guidance.NewEngine(graph).GuidanceFromPath(path)
	require.NoError(t, err)

	wantDist := 0.0
	for _, id := range path {
		edge, _ := graph.GetEdge(id)
		wantDist += edge.Distance
	}
	assert.InDelta(t, wantDist, result.Distance, 1e-6)
	assert.Greater(t, result.Duration, 0.0)
	assert.GreaterOrEqual(t, len(result.Geometry), 2)
	assert.NotEmpty(t, result.Polyline())
}

func TestArriveSide(t *testing.T) {
	graph := buildMap(t, segregatedIntersectionMap)
	path, err := graph.FindPath('a', 'l')
	require.NoError(t, err)

	engine := guidance.NewEngine(graph)
	edges := make([]datastructure.Edge, 0, len(path))
	for _, id := range path {
		edge, _ := graph.GetEdge(id)
		edges = append(edges, edge)
	}
	steps, err := engine.BuildSteps(edges)
	require.NoError(t, err)
	steps = engine.Collapse(steps)

	last := steps[len(steps)-1]
	// final approach heads south; east of it is the left side
	east := datastructure.NewCoordinate(last.ExitLocation.Lat, last.ExitLocation.Lon+0.0005)
	west := datastructure.NewCoordinate(last.ExitLocation.Lat, last.ExitLocation.Lon-0.0005)

	assert.Equal(t, datastructure.MOD_LEFT, guidance.ArriveSide(last, east))
	assert.Equal(t, datastructure.MOD_RIGHT, guidance.ArriveSide(last, west))
	assert.Equal(t, datastructure.MOD_STRAIGHT, guidance.ArriveSide(last, last.ExitLocation))
}

func TestCollapseConfigThreshold(t *testing.T) {
	// with a tiny segregated threshold the median crossing no longer
	// merges and the u-turn decomposes into its two raw turns
	def, err := gridmap.Parse(strings.NewReader(segregatedIntersectionMap))
	require.NoError(t, err)
	graph, err := gridmap.Build(def)
	require.NoError(t, err)

	path, err := graph.FindPath('a', 'h')
	require.NoError(t, err)

	engine := guidance.NewEngineWithConfig(graph, guidance.CollapseConfig{
		MaxSegregatedLength: 5.0,
		MaxSliproadLength:   60.0,
	})
	result, err := engine.GuidanceFromPath(path)
	require.NoError(t, err)

	turns := 0
	for _, m := range result.Maneuvers {
		if m.Type == datastructure.TURN {
			turns++
		}
	}
	assert.Equal(t, 2, turns, "median crossing must stay two turns below the threshold: %v", describe(result.Maneuvers))
}
