package guidance

import (
	"github.com/lintang-b-s/turnguide/pkg/datastructure"
	"github.com/lintang-b-s/turnguide/pkg/geo"
)

/*
AssembleManeuvers maps the collapsed step list to the final maneuver list:
a depart at the first step's entry, one maneuver per surviving step
boundary, an arrive at the last step's exit. The name reported per maneuver
is the name of the road being entered.
*/
func (e *Engine) AssembleManeuvers(steps []datastructure.Step) []datastructure.Maneuver {
	maneuvers := make([]datastructure.Maneuver, 0, len(steps)+1)

	first := steps[0]
	maneuvers = append(maneuvers, datastructure.NewManeuver(first.TurnLocation,
		datastructure.DEPART, datastructure.MOD_NONE, first.Name, first.Ref, first.Mode,
		0, first.BearingAfter))

	for _, step := range steps[1:] {
		maneuvers = append(maneuvers, datastructure.NewManeuver(step.TurnLocation,
			step.Instruction.Type, step.Instruction.Modifier, step.Name, step.Ref, step.Mode,
			step.BearingBefore, step.BearingAfter))
	}

	last := steps[len(steps)-1]
	finalBearing := exitBearing(last)
	maneuvers = append(maneuvers, datastructure.NewManeuver(last.ExitLocation,
		datastructure.ARRIVE, datastructure.MOD_STRAIGHT, last.Name, last.Ref, last.Mode,
		finalBearing, finalBearing))

	return maneuvers
}

// ArriveSide reclassifies the arrive maneuver's modifier for a destination
// waypoint lying beside the road: the side of the final approach segment
// the waypoint is on.
func ArriveSide(last datastructure.Step, destination datastructure.Coordinate) datastructure.TurnModifier {
	g := last.Geometry
	if len(g) < 2 {
		return datastructure.MOD_STRAIGHT
	}
	switch geo.SideOfLine(g[len(g)-2], g[len(g)-1], destination) {
	case -1:
		return datastructure.MOD_LEFT
	case 1:
		return datastructure.MOD_RIGHT
	default:
		return datastructure.MOD_STRAIGHT
	}
}

func exitBearing(step datastructure.Step) float64 {
	g := step.Geometry
	if len(g) < 2 {
		return step.BearingAfter
	}
	return geo.BearingTo(g[len(g)-2].Lat, g[len(g)-2].Lon, g[len(g)-1].Lat, g[len(g)-1].Lon)
}
