package datastructure

import (
	"github.com/lintang-b-s/turnguide/pkg/util"
)

// RoadPriority ranks an incident road for maneuver decisions. Packed
// lexicographically, higher wins: road class, then non-link over link, then
// name identity with the arrival road, then lane count. Bearing ties are
// broken by the intersection view, not here.
type RoadPriority uint32

const (
	priorityLanesBits    = int32(5)
	prioritySameNameBit  = priorityLanesBits
	priorityNonLinkBit   = prioritySameNameBit + 1
	priorityClassOffset  = priorityNonLinkBit + 1
	priorityMaxClassRank = 15
)

func NewRoadPriority(class RoadClass, isLink, sameNameAsArrival bool, lanes int) RoadPriority {
	if lanes < 0 {
		lanes = 0
	}
	if lanes > 31 {
		lanes = 31
	}
	packed := int32(lanes)
	packed = util.BitPackIntBool(packed, sameNameAsArrival, prioritySameNameBit)
	packed = util.BitPackIntBool(packed, !isLink, priorityNonLinkBit)
	packed = util.BitPackInt(packed, int32(priorityMaxClassRank-class.Rank()), priorityClassOffset)
	return RoadPriority(packed)
}

func (p RoadPriority) Beats(other RoadPriority) bool {
	return p > other
}

// SameClassAndLink reports equal (road class, link) prefix, the "similar
// priority" test used for fork detection.
func (p RoadPriority) SameClassAndLink(other RoadPriority) bool {
	return p>>uint(priorityNonLinkBit) == other>>uint(priorityNonLinkBit)
}
