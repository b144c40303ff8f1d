package guidance

import (
	"fmt"

	"github.com/lintang-b-s/turnguide/pkg/datastructure"
)

/*
BuildSteps walks the edge sequence and opens a new step at every node whose
turn instruction is not a silent continuation, and at every travel-mode
boundary. Distance, duration and geometry accumulate within a step; the
step's (name, ref, mode) is that of its first edge.
*/
func (e *Engine) BuildSteps(edges []datastructure.Edge) ([]datastructure.Step, error) {
	first := edges[0]
	startNode, err := e.graph.GetNode(first.FromNodeID)
	if err != nil {
		return nil, fmt.Errorf("%w: node %d not found in graph", ErrInvalidRouteInput, first.FromNodeID)
	}

	steps := make([]datastructure.Step, 0, len(edges))
	current := e.openStep(first, startNode.Loc(),
		datastructure.NewTurnInstruction(datastructure.DEPART, datastructure.MOD_NONE),
		datastructure.IntersectionView{}, departureBearing(first), false)

	for i := 1; i < len(edges); i++ {
		in, out := edges[i-1], edges[i]
		via := out.FromNodeID

		view := e.BuildIntersectionView(in, via, out)
		instr, laneChanged := e.ClassifyTurn(view, in, out)

		if instr.IsNoTurn() && in.Mode == out.Mode {
			e.extendStep(&current, out)
			continue
		}

		viaNode, err := e.graph.GetNode(via)
		if err != nil {
			return nil, fmt.Errorf("%w: node %d not found in graph", ErrInvalidRouteInput, via)
		}

		e.closeStep(&current, viaNode.Loc(), via)
		steps = append(steps, current)

		current = e.openStep(out, viaNode.Loc(), instr, view, arrivalBearing(in), laneChanged)
	}

	lastEdge := edges[len(edges)-1]
	endNode, err := e.graph.GetNode(lastEdge.ToNodeID)
	if err != nil {
		return nil, fmt.Errorf("%w: node %d not found in graph", ErrInvalidRouteInput, lastEdge.ToNodeID)
	}
	e.closeStep(&current, endNode.Loc(), lastEdge.ToNodeID)
	steps = append(steps, current)

	e.markSliproads(steps)

	return steps, nil
}

func (e *Engine) openStep(edge datastructure.Edge, turnLoc datastructure.Coordinate,
	instr datastructure.TurnInstruction, view datastructure.IntersectionView,
	bearingBefore float64, laneChanged bool) datastructure.Step {

	geometry := make([]datastructure.Coordinate, len(edge.Geometry))
	copy(geometry, edge.Geometry)

	return datastructure.Step{
		TurnNodeID:             edge.FromNodeID,
		TurnLocation:           turnLoc,
		Name:                   edge.Name,
		Ref:                    edge.Ref,
		Mode:                   edge.Mode,
		Distance:               edge.Distance,
		Duration:               edge.Duration,
		Instruction:            instr,
		View:                   view,
		BearingBefore:          bearingBefore,
		BearingAfter:           departureBearing(edge),
		IsLink:                 edge.IsLink,
		LaneDescriptionChanged: laneChanged,
		Important:              len(view.Roads) > 0 && view.HasHigherOrEqualAlternative(),
		Geometry:               geometry,
		EdgeIDs:                []int32{edge.ID},
	}
}

func (e *Engine) extendStep(step *datastructure.Step, edge datastructure.Edge) {
	step.Distance += edge.Distance
	step.Duration += edge.Duration
	step.EdgeIDs = append(step.EdgeIDs, edge.ID)
	for _, p := range edge.Geometry {
		if len(step.Geometry) > 0 && step.Geometry[len(step.Geometry)-1] == p {
			continue
		}
		step.Geometry = append(step.Geometry, p)
	}
}

func (e *Engine) closeStep(step *datastructure.Step, exitLoc datastructure.Coordinate, exitNode int32) {
	step.ExitNodeID = exitNode
	step.ExitLocation = exitLoc
}

// markSliproads tags short link steps that hand over to a non-link road:
// the connector roads the collapsing engine folds into a single turn.
func (e *Engine) markSliproads(steps []datastructure.Step) {
	for i := 0; i+1 < len(steps); i++ {
		steps[i].IsSliproad = steps[i].IsLink &&
			steps[i].Distance < e.cfg.MaxSliproadLength &&
			!steps[i+1].IsLink
	}
}
