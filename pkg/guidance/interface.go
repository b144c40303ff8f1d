package guidance

import "github.com/lintang-b-s/turnguide/pkg/datastructure"

// RouteGraph is the narrow view of the preprocessed road network the
// guidance core consumes. Implementations must be read-only during routing;
// the engine never mutates the graph.
type RouteGraph interface {
	GetNode(nodeID int32) (datastructure.Node, error)
	GetEdge(edgeID int32) (datastructure.Edge, error)
	GetNodeOutEdges(nodeID int32) []datastructure.Edge
	GetNodeInEdges(nodeID int32) []datastructure.Edge

	// AllowedTurns is the turn-restriction oracle: ids of out edges a
	// vehicle arriving on fromEdge may enter at viaNode, one-ways and
	// no_*/only_* restrictions already applied.
	AllowedTurns(fromEdgeID, viaNodeID int32) []int32
}
