package guidance

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/turnguide/pkg/datastructure"
	"github.com/lintang-b-s/turnguide/pkg/geo"
)

// ErrInvalidRouteInput reports malformed upstream input: an empty edge
// sequence, a gap between consecutive edges, or an edge id unknown to the
// graph. These are programming or upstream errors, never user facing.
var ErrInvalidRouteInput = errors.New("invalid route input")

// Engine turns a raw shortest-path edge sequence into the driver-facing
// maneuver list. The engine is stateless between calls and safe for
// concurrent use as long as the underlying graph is immutable.
type Engine struct {
	graph RouteGraph
	cfg   CollapseConfig
}

func NewEngine(graph RouteGraph) *Engine {
	return NewEngineWithConfig(graph, DefaultCollapseConfig())
}

func NewEngineWithConfig(graph RouteGraph, cfg CollapseConfig) *Engine {
	return &Engine{graph: graph, cfg: cfg}
}

/*
GuidanceFromPath. the whole post-processing pipeline for one path:

	edge ids -> intersection views -> turn classification -> steps ->
	collapsed steps -> maneuvers

For any well-formed path of length >= 1 the result carries at least a depart
and an arrive maneuver.
*/
func (e *Engine) GuidanceFromPath(path []int32) (datastructure.Guidance, error) {
	edges, err := e.resolvePath(path)
	if err != nil {
		return datastructure.Guidance{}, err
	}

	steps, err := e.BuildSteps(edges)
	if err != nil {
		return datastructure.Guidance{}, err
	}

	steps = e.Collapse(steps)

	maneuvers := e.AssembleManeuvers(steps)

	geometry := concatGeometry(edges)
	distance, duration := 0.0, 0.0
	for _, edge := range edges {
		distance += edge.Distance
		duration += edge.Duration
	}

	return datastructure.Guidance{
		Maneuvers: maneuvers,
		Geometry:  geometry,
		Distance:  distance,
		Duration:  duration,
	}, nil
}

func (e *Engine) resolvePath(path []int32) ([]datastructure.Edge, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty edge sequence", ErrInvalidRouteInput)
	}

	edges := make([]datastructure.Edge, 0, len(path))
	for i, edgeID := range path {
		edge, err := e.graph.GetEdge(edgeID)
		if err != nil {
			return nil, fmt.Errorf("%w: edge %d not found in graph", ErrInvalidRouteInput, edgeID)
		}
		if i > 0 && edge.FromNodeID != edges[i-1].ToNodeID {
			return nil, fmt.Errorf("%w: edge %d does not continue edge %d (node %d != %d)",
				ErrInvalidRouteInput, edge.ID, edges[i-1].ID, edge.FromNodeID, edges[i-1].ToNodeID)
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

// departureBearing. bearing leaving the edge's source node, from the first
// geometry segment.
func departureBearing(edge datastructure.Edge) float64 {
	g := edge.Geometry
	if len(g) < 2 {
		return 0
	}
	return geo.BearingTo(g[0].Lat, g[0].Lon, g[1].Lat, g[1].Lon)
}

// arrivalBearing. bearing entering the edge's target node, from the last
// geometry segment.
func arrivalBearing(edge datastructure.Edge) float64 {
	g := edge.Geometry
	if len(g) < 2 {
		return 0
	}
	return geo.BearingTo(g[len(g)-2].Lat, g[len(g)-2].Lon, g[len(g)-1].Lat, g[len(g)-1].Lon)
}

func concatGeometry(edges []datastructure.Edge) []datastructure.Coordinate {
	out := make([]datastructure.Coordinate, 0, len(edges)*2)
	for _, edge := range edges {
		for _, p := range edge.Geometry {
			if len(out) > 0 && out[len(out)-1] == p {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

func isSameName(name1, name2 string) bool {
	if name1 == "" || name2 == "" {
		// empty street names are common in osm extracts, better treated
		// as never equal
		return false
	}
	return name1 == name2
}
