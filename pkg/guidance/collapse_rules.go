package guidance

import (
	"github.com/lintang-b-s/turnguide/pkg/datastructure"
	"github.com/lintang-b-s/turnguide/pkg/geo"
)

/*
collapseSegregatedTurn. merges the two halves of a maneuver across a
segregated (dual-carriageway) intersection into one. The window is
(steps[i], steps[i+1]) where steps[i] is the short median crossing. The
merged maneuver carries the net direction from the entry bearing to the
exit bearing; a net u-turn back onto the same named road becomes
"continue uturn" instead of being suppressed.

Two adjacent significant turns that do NOT form a segregated pair are left
alone on purpose: without the shared-cross-street evidence, merging would
fabricate u-turns out of ordinary back-to-back turns.
*/
func (e *Engine) collapseSegregatedTurn(steps []datastructure.Step, i int) (int, []datastructure.Step, bool) {
	if i < 1 || i+1 >= len(steps) {
		return 0, nil, false
	}
	entry, median, exit := steps[i-1], steps[i], steps[i+1]

	if modeBoundary(entry, median) || modeBoundary(median, exit) {
		return 0, nil, false
	}
	switch median.Instruction.Type {
	case datastructure.TURN, datastructure.FORK, datastructure.END_OF_ROAD, datastructure.NEW_NAME:
	default:
		return 0, nil, false
	}
	switch exit.Instruction.Type {
	case datastructure.TURN, datastructure.NEW_NAME, datastructure.END_OF_ROAD:
	default:
		return 0, nil, false
	}
	if median.Distance >= e.cfg.MaxSegregatedLength {
		return 0, nil, false
	}
	if !isSegregatedPair(median, exit) {
		return 0, nil, false
	}

	net := geo.BearingDiff(median.BearingBefore, exit.BearingAfter)
	netMod := datastructure.TurnModifierFromDegree(net)

	var instr datastructure.TurnInstruction
	if netMod == datastructure.MOD_UTURN {
		// forced u-turn across the median: only meaningful when the route
		// returns onto the opposite half of the same named road
		if !isSameName(entry.Name, exit.Name) {
			return 0, nil, false
		}
		instr = datastructure.NewTurnInstruction(datastructure.CONTINUE, datastructure.MOD_UTURN)
	} else {
		instr = datastructure.NewTurnInstruction(datastructure.TURN, netMod)
	}

	merged := mergeSteps(median, exit)
	merged.Instruction = instr
	merged.Name = exit.Name
	merged.Ref = exit.Ref
	merged.BearingAfter = exit.BearingAfter
	merged.IsLink = exit.IsLink

	return 2, []datastructure.Step{merged}, true
}

// isSegregatedPair recognizes the two halves of one real-world
// intersection: besides the median segment itself, the two turn nodes must
// share the name of a cross road.
func isSegregatedPair(median, exit datastructure.Step) bool {
	if len(median.View.Roads) == 0 || len(exit.View.Roads) == 0 {
		return false
	}
	medianNames := viewNames(median.View)
	exitNames := viewNames(exit.View)
	for name := range medianNames {
		if name == median.Name {
			continue
		}
		if _, ok := exitNames[name]; ok {
			return true
		}
	}
	return false
}

/*
collapseSliproad. a short link connector followed by the road it feeds
into reads as one turn onto the cross street. The window is
(steps[i], steps[i+1]) with steps[i] the sliproad.
*/
func (e *Engine) collapseSliproad(steps []datastructure.Step, i int) (int, []datastructure.Step, bool) {
	if i < 1 || i+1 >= len(steps) {
		return 0, nil, false
	}
	sliproad, cross := steps[i], steps[i+1]

	if !sliproad.IsSliproad || cross.IsLink {
		return 0, nil, false
	}
	if sliproad.Instruction.Type == datastructure.ON_RAMP {
		// an on-ramp chain belongs to the ramp rule, the merge maneuver
		// survives there
		return 0, nil, false
	}
	if modeBoundary(sliproad, cross) {
		return 0, nil, false
	}
	if cross.Name == "" {
		return 0, nil, false
	}
	switch cross.Instruction.Type {
	case datastructure.TURN, datastructure.NEW_NAME, datastructure.MERGE, datastructure.END_OF_ROAD:
	default:
		return 0, nil, false
	}

	net := geo.BearingDiff(sliproad.BearingBefore, cross.BearingAfter)
	netMod := datastructure.TurnModifierFromDegree(net)
	if netMod == datastructure.MOD_UTURN {
		return 0, nil, false
	}

	merged := mergeSteps(sliproad, cross)
	merged.Instruction = datastructure.NewTurnInstruction(datastructure.TURN, netMod)
	merged.Name = cross.Name
	merged.Ref = cross.Ref
	merged.BearingAfter = cross.BearingAfter
	merged.IsLink = false
	merged.IsSliproad = false

	return 2, []datastructure.Step{merged}, true
}

/*
collapseAcrossForeignSegment. a differently-named segment sandwiched
between two segments of the same name, crossed straight, is not worth two
maneuvers: the bridge that interrupts an otherwise uniform road. Window
(steps[i], steps[i+1], steps[i+2]).

Mode boundaries and important crossroads (another exit of equal or higher
priority) block the suppression.
*/
func (e *Engine) collapseAcrossForeignSegment(steps []datastructure.Step, i int) (int, []datastructure.Step, bool) {
	if i+2 >= len(steps) {
		return 0, nil, false
	}
	before, middle, after := steps[i], steps[i+1], steps[i+2]

	if modeBoundary(before, middle) || modeBoundary(middle, after) {
		return 0, nil, false
	}
	if middle.Instruction.Type == datastructure.NOTIFICATION ||
		after.Instruction.Type == datastructure.NOTIFICATION {
		return 0, nil, false
	}
	if !middle.Instruction.Modifier.IsStraightish() || !after.Instruction.Modifier.IsStraightish() {
		return 0, nil, false
	}
	if middle.Important || after.Important {
		return 0, nil, false
	}
	if before.Name != after.Name || before.Ref != after.Ref {
		return 0, nil, false
	}
	if middle.Name == before.Name {
		return 0, nil, false
	}

	merged := mergeSteps(mergeSteps(before, middle), after)
	return 3, []datastructure.Step{merged}, true
}

/*
collapseSilentNameChange. adjacent steps sharing (name, ref, mode) with a
straight boundary maneuver merge; retained u-turns and important
crossroads stay.
*/
func (e *Engine) collapseSilentNameChange(steps []datastructure.Step, i int) (int, []datastructure.Step, bool) {
	if i+1 >= len(steps) {
		return 0, nil, false
	}
	prev, cur := steps[i], steps[i+1]

	if modeBoundary(prev, cur) {
		return 0, nil, false
	}
	if prev.Name != cur.Name || prev.Ref != cur.Ref {
		return 0, nil, false
	}
	switch cur.Instruction.Type {
	case datastructure.NEW_NAME, datastructure.CONTINUE, datastructure.TURN:
	default:
		return 0, nil, false
	}
	if !cur.Instruction.Modifier.IsStraightish() {
		return 0, nil, false
	}
	if cur.Important {
		return 0, nil, false
	}

	merged := mergeSteps(prev, cur)
	return 2, []datastructure.Step{merged}, true
}

/*
collapseUnchangedUseLane. a use-lane marker survives only when the lane
description actually changed across the node.
*/
func (e *Engine) collapseUnchangedUseLane(steps []datastructure.Step, i int) (int, []datastructure.Step, bool) {
	if i+1 >= len(steps) {
		return 0, nil, false
	}
	prev, cur := steps[i], steps[i+1]

	if cur.Instruction.Type != datastructure.USE_LANE || cur.LaneDescriptionChanged {
		return 0, nil, false
	}
	if modeBoundary(prev, cur) {
		return 0, nil, false
	}

	merged := mergeSteps(prev, cur)
	return 2, []datastructure.Step{merged}, true
}

/*
collapseRampChain. an on-ramp immediately followed by the merge onto the
same mainline is one event for the driver; the merge wins. Window
(steps[i], steps[i+1]).
*/
func (e *Engine) collapseRampChain(steps []datastructure.Step, i int) (int, []datastructure.Step, bool) {
	if i >= len(steps)-1 {
		return 0, nil, false
	}
	ramp, merge := steps[i], steps[i+1]

	if ramp.Instruction.Type != datastructure.ON_RAMP ||
		merge.Instruction.Type != datastructure.MERGE {
		return 0, nil, false
	}
	if modeBoundary(ramp, merge) {
		return 0, nil, false
	}

	merged := mergeSteps(ramp, merge)
	merged.Instruction = datastructure.NewTurnInstruction(datastructure.MERGE, merge.Instruction.Modifier)
	merged.Name = merge.Name
	merged.Ref = merge.Ref
	merged.BearingAfter = merge.BearingAfter
	merged.IsLink = merge.IsLink

	return 2, []datastructure.Step{merged}, true
}
