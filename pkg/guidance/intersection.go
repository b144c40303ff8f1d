package guidance

import (
	"github.com/lintang-b-s/turnguide/pkg/datastructure"
	"github.com/lintang-b-s/turnguide/pkg/geo"
	"github.com/lintang-b-s/turnguide/pkg/util"
)

// uturnDeviationDeg. an incident road within this deviation of the reversed
// arrival bearing counts as the u-turn candidate.
const uturnDeviationDeg = 15.0

/*
BuildIntersectionView. orders every incident road at the traversed node
clockwise, measured from the reverse of the arrival edge. The reverse itself
(the u-turn candidate) always sits at index 0, synthesized when the street
is one-way and no physical reverse edge exists. entry_allowed respects the
restriction oracle; the chosen out edge is always enterable, it was
traversed.
*/
func (e *Engine) BuildIntersectionView(in datastructure.Edge, viaNode int32,
	out datastructure.Edge) datastructure.IntersectionView {

	bearingIn := arrivalBearing(in)
	reverseDir := geo.ReverseBearing(bearingIn)

	allowed := make(map[int32]bool)
	for _, id := range e.graph.AllowedTurns(in.ID, viaNode) {
		allowed[id] = true
	}

	outgoing := e.graph.GetNodeOutEdges(viaNode)
	roads := make([]datastructure.IntersectionRoad, 0, len(outgoing)+1)
	uturnIdx := -1
	for _, cand := range outgoing {
		bearing := departureBearing(cand)
		cls := ClassifyRoad(cand, in)
		road := datastructure.IntersectionRoad{
			EdgeID:       cand.ID,
			Bearing:      bearing,
			DeviationDeg: geo.NormalizeBearing(bearing - reverseDir),
			TurnDeg:      geo.BearingDiff(bearingIn, bearing),
			EntryAllowed: allowed[cand.ID] || cand.ID == out.ID,
			Priority:     cls.Priority,
			IsLink:       cand.IsLink,
			Name:         cand.Name,
			Ref:          cand.Ref,
			Mode:         cand.Mode,
			Lanes:        cand.Lanes,
		}
		roads = append(roads, road)
		if cand.ToNodeID == in.FromNodeID &&
			geo.AbsBearingDiff(bearing, reverseDir) <= uturnDeviationDeg {
			uturnIdx = len(roads) - 1
		}
	}

	// arms that are one-way toward the node have no out edge but are still
	// incident roads; they appear with entry_allowed=false
	outNeighbors := make(map[int32]bool, len(outgoing))
	for _, cand := range outgoing {
		outNeighbors[cand.ToNodeID] = true
	}
	for _, incoming := range e.graph.GetNodeInEdges(viaNode) {
		if incoming.ID == in.ID || outNeighbors[incoming.FromNodeID] {
			continue
		}
		bearing := geo.ReverseBearing(arrivalBearing(incoming))
		cls := ClassifyRoad(incoming, in)
		roads = append(roads, datastructure.IntersectionRoad{
			EdgeID:       incoming.ID,
			Bearing:      bearing,
			DeviationDeg: geo.NormalizeBearing(bearing - reverseDir),
			TurnDeg:      geo.BearingDiff(bearingIn, bearing),
			EntryAllowed: false,
			Priority:     cls.Priority,
			IsLink:       incoming.IsLink,
			Name:         incoming.Name,
			Ref:          incoming.Ref,
			Mode:         incoming.Mode,
			Lanes:        incoming.Lanes,
		})
	}

	if uturnIdx == -1 {
		// one-way street, no physical reverse edge: synthesize the u-turn
		// candidate so index 0 stays the reverse of in.
		roads = append(roads, datastructure.IntersectionRoad{
			EdgeID:       -1,
			Bearing:      reverseDir,
			DeviationDeg: 0,
			TurnDeg:      180,
			EntryAllowed: false,
			Name:         in.Name,
			Ref:          in.Ref,
			Mode:         in.Mode,
		})
	} else {
		// pin the physical reverse to deviation 0 so the sort puts it first
		roads[uturnIdx].DeviationDeg = 0
	}

	roads = util.QuickSortG(roads, func(a, b datastructure.IntersectionRoad) int {
		if a.DeviationDeg < b.DeviationDeg {
			return -1
		} else if a.DeviationDeg > b.DeviationDeg {
			return 1
		}
		return 0
	})

	outIdx := 0
	for i, r := range roads {
		if r.EdgeID == out.ID {
			outIdx = i
			break
		}
	}

	return datastructure.IntersectionView{
		NodeID:    viaNode,
		InEdgeID:  in.ID,
		BearingIn: bearingIn,
		Roads:     roads,
		OutIdx:    outIdx,
	}
}

// viewNames collects every non-empty incident road name at an intersection.
func viewNames(view datastructure.IntersectionView) map[string]struct{} {
	names := make(map[string]struct{})
	for _, r := range view.Roads {
		if r.Name != "" {
			names[r.Name] = struct{}{}
		}
	}
	return names
}
