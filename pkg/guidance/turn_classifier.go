package guidance

import (
	"math"

	"github.com/lintang-b-s/turnguide/pkg/datastructure"
)

const (
	noTurnMaxDeg     = 15.0
	newNameMaxDeg    = 35.0
	forkBranchMaxDeg = 85.0
	continuationDeg  = 35.0
	uturnMinDeg      = 175.0
	sameNameBendDeg  = 35.0
)

/*
ClassifyTurn assigns the structural turn at one traversed node. Decision
order: travel-mode boundaries first (those must always surface), then ramp
transitions, forks, the degree-1 no-choice cases, and finally the generic
bearing-binned turn. The second return value reports whether the lane
description changed across the node, meaningful only for use-lane results.
*/
func (e *Engine) ClassifyTurn(view datastructure.IntersectionView, in, out datastructure.Edge) (datastructure.TurnInstruction, bool) {
	theta := view.Out().TurnDeg
	absTheta := math.Abs(theta)

	if in.Mode != out.Mode {
		// travel-mode boundary always surfaces, even when geometrically
		// straight
		return datastructure.NewTurnInstruction(datastructure.NOTIFICATION,
			datastructure.TurnModifierFromDegree(theta)), false
	}

	if absTheta >= uturnMinDeg {
		return datastructure.NewTurnInstruction(datastructure.TURN, datastructure.MOD_UTURN), false
	}

	degree := view.AllowedNonUTurnExits()

	if instr, ok := e.classifyRampTurn(view, in, out, theta, degree); ok {
		return instr, false
	}

	if instr, ok := e.classifyFork(view, theta, degree); ok {
		return instr, false
	}

	if degree <= 1 {
		return e.classifyObviousTurn(view, in, out, theta)
	}

	if sameNameOrBothEmpty(in, out) && absTheta < noTurnMaxDeg {
		// straight through on the same street, crossroads or not: no
		// decision for the driver
		return e.maybeUseLane(in, out)
	}

	return datastructure.NewTurnInstruction(datastructure.TURN,
		datastructure.TurnModifierFromDegree(theta)), false
}

// classifyObviousTurn handles nodes where only one exit is allowed: plain
// road bends, name changes, and end-of-road junctions.
func (e *Engine) classifyObviousTurn(view datastructure.IntersectionView, in, out datastructure.Edge,
	theta float64) (datastructure.TurnInstruction, bool) {
	absTheta := math.Abs(theta)

	if sameNameOrBothEmpty(in, out) {
		if absTheta < sameNameBendDeg || !e.inRoadEndsHere(view) {
			// a bend on the same road is not a maneuver
			return e.maybeUseLane(in, out)
		}
		return datastructure.NewTurnInstruction(datastructure.TURN,
			datastructure.TurnModifierFromDegree(theta)), false
	}

	if absTheta < newNameMaxDeg {
		return datastructure.NewTurnInstruction(datastructure.NEW_NAME,
			datastructure.TurnModifierFromDegree(theta)), false
	}

	if e.inRoadEndsHere(view) {
		return datastructure.NewTurnInstruction(datastructure.END_OF_ROAD,
			datastructure.TurnModifierFromDegree(theta)), false
	}

	return datastructure.NewTurnInstruction(datastructure.TURN,
		datastructure.TurnModifierFromDegree(theta)), false
}

// inRoadEndsHere reports a T-junction: at least two incident roads besides
// the u-turn candidate and none of them, enterable or not, continues the
// arrival direction. A plain corner between two roads is a turn, not an
// end of road.
func (e *Engine) inRoadEndsHere(view datastructure.IntersectionView) bool {
	if len(view.Roads) <= 2 {
		return false
	}
	for i, r := range view.Roads {
		if i == 0 {
			continue
		}
		if math.Abs(r.TurnDeg) < continuationDeg {
			return false
		}
	}
	return true
}

/*
classifyRampTurn. motorway link transitions:

	mainline -> link              off ramp
	link -> mainline, mainline
	continues elsewhere           merge
	link -> link at a junction    on ramp
*/
func (e *Engine) classifyRampTurn(view datastructure.IntersectionView, in, out datastructure.Edge,
	theta float64, degree int) (datastructure.TurnInstruction, bool) {

	if out.IsLink && !in.IsLink {
		return datastructure.NewTurnInstruction(datastructure.OFF_RAMP, rampSideModifier(theta)), true
	}

	if in.IsLink && !out.IsLink {
		if e.mainlineContinues(view) {
			return datastructure.NewTurnInstruction(datastructure.MERGE, rampSideModifier(theta)), true
		}
		return datastructure.TurnInstruction{}, false
	}

	if in.IsLink && out.IsLink && degree >= 2 {
		return datastructure.NewTurnInstruction(datastructure.ON_RAMP, rampSideModifier(theta)), true
	}

	return datastructure.TurnInstruction{}, false
}

// mainlineContinues looks for another non-link incident road beside the
// chosen exit: the mainline the link is merging into. The mainline's
// upstream arm is usually one-way toward the node, so enterability does
// not matter here.
func (e *Engine) mainlineContinues(view datastructure.IntersectionView) bool {
	for i, r := range view.Roads {
		if i == 0 || i == view.OutIdx {
			continue
		}
		if !r.IsLink {
			return true
		}
	}
	return false
}

// rampSideModifier keeps ramp maneuvers at least slight so the driver gets
// a side to follow.
func rampSideModifier(theta float64) datastructure.TurnModifier {
	mod := datastructure.TurnModifierFromDegree(theta)
	if mod == datastructure.MOD_STRAIGHT {
		if theta < 0 {
			return datastructure.MOD_SLIGHT_LEFT
		}
		return datastructure.MOD_SLIGHT_RIGHT
	}
	return mod
}

// classifyFork. exactly two allowed exits of similar priority straddling
// the straight direction.
func (e *Engine) classifyFork(view datastructure.IntersectionView, theta float64,
	degree int) (datastructure.TurnInstruction, bool) {
	if degree != 2 {
		return datastructure.TurnInstruction{}, false
	}

	chosen := view.Out()
	var other *datastructure.IntersectionRoad
	for i := range view.Roads {
		if i == 0 || i == view.OutIdx || !view.Roads[i].EntryAllowed {
			continue
		}
		other = &view.Roads[i]
	}
	if other == nil {
		return datastructure.TurnInstruction{}, false
	}

	if math.Abs(chosen.TurnDeg) > forkBranchMaxDeg || math.Abs(other.TurnDeg) > forkBranchMaxDeg {
		return datastructure.TurnInstruction{}, false
	}
	if !chosen.Priority.SameClassAndLink(other.Priority) {
		return datastructure.TurnInstruction{}, false
	}
	// the branches must straddle the straight direction
	if chosen.TurnDeg*other.TurnDeg > 0 {
		return datastructure.TurnInstruction{}, false
	}

	return datastructure.NewTurnInstruction(datastructure.FORK, forkSideModifier(theta)), true
}

func forkSideModifier(theta float64) datastructure.TurnModifier {
	if math.Abs(theta) >= 45 {
		if theta < 0 {
			return datastructure.MOD_LEFT
		}
		return datastructure.MOD_RIGHT
	}
	if theta < 0 {
		return datastructure.MOD_SLIGHT_LEFT
	}
	return datastructure.MOD_SLIGHT_RIGHT
}

// maybeUseLane upgrades a would-be silent continuation to a use-lane marker
// when both edges carry turn-lane descriptions.
func (e *Engine) maybeUseLane(in, out datastructure.Edge) (datastructure.TurnInstruction, bool) {
	if in.HasTurnLanes() && out.HasTurnLanes() {
		return datastructure.NewTurnInstruction(datastructure.USE_LANE, datastructure.MOD_STRAIGHT),
			!in.SameTurnLanes(out)
	}
	return datastructure.NewTurnInstruction(datastructure.NO_TURN, datastructure.MOD_STRAIGHT), false
}

func sameNameOrBothEmpty(in, out datastructure.Edge) bool {
	if in.Name == "" && out.Name == "" {
		return true
	}
	return isSameName(in.Name, out.Name)
}
