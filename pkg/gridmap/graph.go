package gridmap

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/turnguide/pkg/datastructure"
	"github.com/lintang-b-s/turnguide/pkg/geo"
)

// anchor of every synthetic map; the exact spot is irrelevant, it only has
// to be far from the poles so meters-per-degree stays sane.
const (
	anchorLat = -7.55
	anchorLon = 110.77

	metersPerDegreeLat = 111194.9
)

type restrictionKey struct {
	fromEdge int32
	via      int32
	toEdge   int32
}

// Graph is an in-memory road network built from a MapDef. It implements
// guidance.RouteGraph and stays immutable after Build.
type Graph struct {
	nodes    []datastructure.Node
	edges    []datastructure.Edge
	outEdges [][]int32
	inEdges  [][]int32
	labels   map[byte]int32
	banned   map[restrictionKey]struct{}
}

// NewGraphFromTables rebuilds a graph from persisted node, edge, label and
// banned-turn tables, the inverse of the accessors below.
func NewGraphFromTables(nodes []datastructure.Node, edges []datastructure.Edge,
	labels map[byte]int32, bannedTurns [][3]int32) *Graph {
	g := &Graph{
		nodes:    nodes,
		edges:    edges,
		labels:   labels,
		banned:   make(map[restrictionKey]struct{}, len(bannedTurns)),
		outEdges: make([][]int32, len(nodes)),
	}
	g.inEdges = make([][]int32, len(nodes))
	for _, edge := range edges {
		g.outEdges[edge.FromNodeID] = append(g.outEdges[edge.FromNodeID], edge.ID)
		g.inEdges[edge.ToNodeID] = append(g.inEdges[edge.ToNodeID], edge.ID)
	}
	for _, b := range bannedTurns {
		g.banned[restrictionKey{fromEdge: b[0], via: b[1], toEdge: b[2]}] = struct{}{}
	}
	return g
}

// BannedTurns exports the restriction triples (from edge, via node, to
// edge), for persistence.
func (g *Graph) BannedTurns() [][3]int32 {
	out := make([][3]int32, 0, len(g.banned))
	for key := range g.banned {
		out = append(out, [3]int32{key.fromEdge, key.via, key.toEdge})
	}
	return out
}

// Build materializes the grid and way table into nodes and directed edges.
// Two-way streets become an edge pair; malformed definitions (unknown node
// labels, duplicate labels) fail loudly, the graph is test infrastructure.
func Build(def MapDef) (*Graph, error) {
	g := &Graph{
		labels: make(map[byte]int32),
		banned: make(map[restrictionKey]struct{}),
	}

	spacing := def.SpacingMeters
	if spacing <= 0 {
		spacing = defaultSpacingMeters
	}

	for row, line := range def.Grid {
		for col, ch := range []byte(line) {
			if ch == ' ' || ch == '.' || ch == '\t' {
				continue
			}
			if _, dup := g.labels[ch]; dup {
				return nil, fmt.Errorf("gridmap: duplicate node label %q", string(ch))
			}
			id := int32(len(g.nodes))
			g.labels[ch] = id
			g.nodes = append(g.nodes, datastructure.NewNode(id,
				anchorLat-float64(row)*spacing/metersPerDegreeLat,
				anchorLon+float64(col)*spacing/(metersPerDegreeLat*math.Cos(anchorLat*math.Pi/180.0))))
		}
	}
	g.outEdges = make([][]int32, len(g.nodes))
	g.inEdges = make([][]int32, len(g.nodes))

	for _, way := range def.Ways {
		if err := g.addWay(way); err != nil {
			return nil, err
		}
	}

	for _, restriction := range def.Restrictions {
		if err := g.addRestriction(restriction); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func (g *Graph) addWay(way WayDef) error {
	highway := way.Highway
	if highway == "" {
		highway = "primary"
	}
	mode := way.Mode
	if mode == "" && highway == "ferry" {
		mode = "ferry"
	}

	for i := 0; i+1 < len(way.Nodes); i++ {
		from, ok := g.labels[way.Nodes[i]]
		if !ok {
			return fmt.Errorf("gridmap: way %q references unknown node %q", way.Name, string(way.Nodes[i]))
		}
		to, ok := g.labels[way.Nodes[i+1]]
		if !ok {
			return fmt.Errorf("gridmap: way %q references unknown node %q", way.Name, string(way.Nodes[i+1]))
		}

		g.addEdge(way, highway, mode, from, to)
		if !way.Oneway {
			g.addEdge(way, highway, mode, to, from)
		}
	}
	return nil
}

func (g *Graph) addEdge(way WayDef, highway, mode string, from, to int32) {
	fromLoc := g.nodes[from].Loc()
	toLoc := g.nodes[to].Loc()
	distance := geo.PointDistanceMeters(fromLoc, toLoc)

	class := datastructure.RoadClassFromString(highway)
	speedKmh := datastructure.RoadClassMaxSpeed(class)

	edge := datastructure.Edge{
		ID:         int32(len(g.edges)),
		FromNodeID: from,
		ToNodeID:   to,
		Name:       way.Name,
		Ref:        way.Ref,
		Class:      class,
		IsLink:     datastructure.IsLinkClass(highway),
		Mode:       datastructure.TravelModeFromString(mode),
		Lanes:      way.Lanes,
		TurnLanes:  way.TurnLanes,
		Oneway:     way.Oneway,
		Bridge:     way.Bridge,
		Tunnel:     way.Tunnel,
		Distance:   distance,
		Duration:   distance / (speedKmh / 3.6),
		Geometry:   []datastructure.Coordinate{fromLoc, toLoc},
	}

	g.edges = append(g.edges, edge)
	g.outEdges[from] = append(g.outEdges[from], edge.ID)
	g.inEdges[to] = append(g.inEdges[to], edge.ID)
}

func (g *Graph) addRestriction(restriction Restriction) error {
	from, ok := g.labels[restriction.From]
	if !ok {
		return fmt.Errorf("gridmap: restriction references unknown node %q", string(restriction.From))
	}
	via, ok := g.labels[restriction.Via]
	if !ok {
		return fmt.Errorf("gridmap: restriction references unknown node %q", string(restriction.Via))
	}
	to, ok := g.labels[restriction.To]
	if !ok {
		return fmt.Errorf("gridmap: restriction references unknown node %q", string(restriction.To))
	}

	for _, inID := range g.inEdges[via] {
		if g.edges[inID].FromNodeID != from {
			continue
		}
		for _, outID := range g.outEdges[via] {
			if g.edges[outID].ToNodeID == to {
				g.banned[restrictionKey{fromEdge: inID, via: via, toEdge: outID}] = struct{}{}
			}
		}
	}
	return nil
}

// GetNode implements guidance.RouteGraph.
func (g *Graph) GetNode(nodeID int32) (datastructure.Node, error) {
	if nodeID < 0 || int(nodeID) >= len(g.nodes) {
		return datastructure.Node{}, fmt.Errorf("gridmap: node %d not found", nodeID)
	}
	return g.nodes[nodeID], nil
}

// GetEdge implements guidance.RouteGraph.
func (g *Graph) GetEdge(edgeID int32) (datastructure.Edge, error) {
	if edgeID < 0 || int(edgeID) >= len(g.edges) {
		return datastructure.Edge{}, fmt.Errorf("gridmap: edge %d not found", edgeID)
	}
	return g.edges[edgeID], nil
}

// GetNodeOutEdges implements guidance.RouteGraph.
func (g *Graph) GetNodeOutEdges(nodeID int32) []datastructure.Edge {
	if nodeID < 0 || int(nodeID) >= len(g.outEdges) {
		return nil
	}
	out := make([]datastructure.Edge, 0, len(g.outEdges[nodeID]))
	for _, id := range g.outEdges[nodeID] {
		out = append(out, g.edges[id])
	}
	return out
}

// GetNodeInEdges implements guidance.RouteGraph.
func (g *Graph) GetNodeInEdges(nodeID int32) []datastructure.Edge {
	if nodeID < 0 || int(nodeID) >= len(g.inEdges) {
		return nil
	}
	in := make([]datastructure.Edge, 0, len(g.inEdges[nodeID]))
	for _, id := range g.inEdges[nodeID] {
		in = append(in, g.edges[id])
	}
	return in
}

// AllowedTurns implements guidance.RouteGraph: every out edge at the node
// minus the banned restriction triples.
func (g *Graph) AllowedTurns(fromEdgeID, viaNodeID int32) []int32 {
	allowed := make([]int32, 0, len(g.outEdges[viaNodeID]))
	for _, outID := range g.outEdges[viaNodeID] {
		if _, bad := g.banned[restrictionKey{fromEdge: fromEdgeID, via: viaNodeID, toEdge: outID}]; bad {
			continue
		}
		allowed = append(allowed, outID)
	}
	return allowed
}

// NodeByLabel resolves a grid letter to its node id.
func (g *Graph) NodeByLabel(label byte) (int32, error) {
	id, ok := g.labels[label]
	if !ok {
		return 0, fmt.Errorf("gridmap: no node labeled %q", string(label))
	}
	return id, nil
}

// NumNodes reports the node count.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges reports the directed edge count.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Edges exposes the immutable edge table, for persistence.
func (g *Graph) Edges() []datastructure.Edge { return g.edges }

// Nodes exposes the immutable node table, for persistence.
func (g *Graph) Nodes() []datastructure.Node { return g.nodes }

// Labels exposes the label table, for persistence.
func (g *Graph) Labels() map[byte]int32 { return g.labels }

/*
FindPath runs a breadth-first search over directed edges from one labeled
node to another, honoring turn restrictions, and returns the edge-id path.
This is deliberately not a weighted shortest-path search: the synthetic
scenario maps pin their expected paths by construction, BFS only
materializes them.
*/
func (g *Graph) FindPath(fromLabel, toLabel byte) ([]int32, error) {
	from, err := g.NodeByLabel(fromLabel)
	if err != nil {
		return nil, err
	}
	to, err := g.NodeByLabel(toLabel)
	if err != nil {
		return nil, err
	}

	prev := make([]int32, len(g.edges))
	visited := make([]bool, len(g.edges))
	for i := range prev {
		prev[i] = -1
	}

	queue := make([]int32, 0, len(g.edges))
	for _, id := range g.outEdges[from] {
		visited[id] = true
		queue = append(queue, id)
	}

	var goal int32 = -1
	for len(queue) > 0 && goal == -1 {
		cur := queue[0]
		queue = queue[1:]

		if g.edges[cur].ToNodeID == to {
			goal = cur
			break
		}
		for _, next := range g.AllowedTurns(cur, g.edges[cur].ToNodeID) {
			if visited[next] {
				continue
			}
			// never bounce straight back over the edge just traversed
			if g.edges[next].ToNodeID == g.edges[cur].FromNodeID &&
				g.edges[next].FromNodeID == g.edges[cur].ToNodeID {
				continue
			}
			visited[next] = true
			prev[next] = cur
			queue = append(queue, next)
		}
	}

	if goal == -1 {
		return nil, fmt.Errorf("gridmap: no path from %q to %q", string(fromLabel), string(toLabel))
	}

	path := []int32{}
	for cur := goal; cur != -1; cur = prev[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
