package guidance

import (
	"hash/fnv"

	"github.com/lintang-b-s/turnguide/pkg/datastructure"
)

// RoadClassification is the per-edge output of the road classifier: how an
// incident road ranks against the arrival edge at a node.
type RoadClassification struct {
	Priority datastructure.RoadPriority
	IsLink   bool
	IsNamed  bool
	NameID   uint32
	ModeID   uint8
}

/*
ClassifyRoad ranks one incident edge against the arrival edge. The priority
order is lexicographic: road class first, non-link over link, name identity
with the arrival road, then lane count. Unknown attributes degrade to
conservative defaults and never fail.
*/
func ClassifyRoad(edge, arrival datastructure.Edge) RoadClassification {
	sameName := isSameName(edge.Name, arrival.Name) ||
		(edge.Ref != "" && edge.Ref == arrival.Ref)

	return RoadClassification{
		Priority: datastructure.NewRoadPriority(edge.Class, edge.IsLink, sameName, edge.Lanes),
		IsLink:   edge.IsLink,
		IsNamed:  edge.HasName(),
		NameID:   nameHash(edge.Name),
		ModeID:   uint8(edge.Mode),
	}
}

func nameHash(name string) uint32 {
	if name == "" {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return h.Sum32()
}
