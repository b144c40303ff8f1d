package datastructure

import (
	"fmt"
	"strings"
)

type TurnType uint8

const (
	NO_TURN TurnType = iota
	NEW_NAME
	CONTINUE
	TURN
	MERGE
	ON_RAMP
	OFF_RAMP
	FORK
	END_OF_ROAD
	NOTIFICATION
	ENTER_ROUNDABOUT
	EXIT_ROUNDABOUT
	USE_LANE
	SUPPRESSED
	DEPART
	ARRIVE
)

func (t TurnType) String() string {
	switch t {
	case NO_TURN:
		return "none"
	case NEW_NAME:
		return "new name"
	case CONTINUE:
		return "continue"
	case TURN:
		return "turn"
	case MERGE:
		return "merge"
	case ON_RAMP:
		return "on ramp"
	case OFF_RAMP:
		return "off ramp"
	case FORK:
		return "fork"
	case END_OF_ROAD:
		return "end of road"
	case NOTIFICATION:
		return "notification"
	case ENTER_ROUNDABOUT:
		return "roundabout"
	case EXIT_ROUNDABOUT:
		return "exit roundabout"
	case USE_LANE:
		return "use lane"
	case SUPPRESSED:
		return "suppressed"
	case DEPART:
		return "depart"
	case ARRIVE:
		return "arrive"
	default:
		return "invalid"
	}
}

// TurnModifier. negative is left, positive is right, like the turn sign
// convention of graphhopper-style engines. MOD_UTURN stands apart because a
// u-turn can be reached from either side.
type TurnModifier int8

const (
	MOD_UTURN        TurnModifier = 5
	MOD_SHARP_LEFT   TurnModifier = -3
	MOD_LEFT         TurnModifier = -2
	MOD_SLIGHT_LEFT  TurnModifier = -1
	MOD_STRAIGHT     TurnModifier = 0
	MOD_SLIGHT_RIGHT TurnModifier = 1
	MOD_RIGHT        TurnModifier = 2
	MOD_SHARP_RIGHT  TurnModifier = 3
	MOD_NONE         TurnModifier = 100
)

func (m TurnModifier) String() string {
	switch m {
	case MOD_UTURN:
		return "uturn"
	case MOD_SHARP_LEFT:
		return "sharp left"
	case MOD_LEFT:
		return "left"
	case MOD_SLIGHT_LEFT:
		return "slight left"
	case MOD_STRAIGHT:
		return "straight"
	case MOD_SLIGHT_RIGHT:
		return "slight right"
	case MOD_RIGHT:
		return "right"
	case MOD_SHARP_RIGHT:
		return "sharp right"
	default:
		return ""
	}
}

func (m TurnModifier) Abs() int {
	v := int(m)
	if v < 0 {
		return -v
	}
	return v
}

// IsSignificant reports a modifier at least as strong as a plain right/left
// turn.
func (m TurnModifier) IsSignificant() bool {
	return m == MOD_UTURN || m.Abs() >= int(MOD_RIGHT)
}

func (m TurnModifier) IsStraightish() bool {
	return m != MOD_UTURN && m.Abs() <= int(MOD_SLIGHT_RIGHT)
}

/*
TurnModifierFromDegree. bins a clockwise bearing delta in (-180, 180] into a
turn modifier:

	|θ| <  10  straight
	|θ| <  45  slight
	|θ| < 135  right/left
	|θ| < 175  sharp
	|θ| >= 175 uturn
*/
func TurnModifierFromDegree(delta float64) TurnModifier {
	abs := delta
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < 10:
		return MOD_STRAIGHT
	case abs >= 175:
		return MOD_UTURN
	case abs < 45 && delta > 0:
		return MOD_SLIGHT_RIGHT
	case abs < 45:
		return MOD_SLIGHT_LEFT
	case abs < 135 && delta > 0:
		return MOD_RIGHT
	case abs < 135:
		return MOD_LEFT
	case delta > 0:
		return MOD_SHARP_RIGHT
	default:
		return MOD_SHARP_LEFT
	}
}

// TurnInstruction is the structural maneuver at one traversed node.
// A closed (type, modifier) pair, never free-form strings.
type TurnInstruction struct {
	Type     TurnType
	Modifier TurnModifier
}

func NewTurnInstruction(t TurnType, m TurnModifier) TurnInstruction {
	return TurnInstruction{Type: t, Modifier: m}
}

func (ti TurnInstruction) IsNoTurn() bool {
	return ti.Type == NO_TURN || ti.Type == SUPPRESSED
}

func (ti TurnInstruction) String() string {
	if ti.Modifier == MOD_NONE {
		return ti.Type.String()
	}
	return fmt.Sprintf("%s %s", ti.Type, ti.Modifier)
}

// GetTurnDescription renders driver-facing prose for a maneuver. The
// structural (type, modifier) pair stays the contract; this is display sugar
// for the REST layer.
func GetTurnDescription(m Maneuver) string {
	streetName := m.Name
	if streetName == "" {
		streetName = m.Ref
	}

	switch m.Type {
	case DEPART:
		if isEmpty(streetName) {
			return "Depart"
		}
		return fmt.Sprintf("Depart onto %s", streetName)
	case ARRIVE:
		return "You have arrived at your destination"
	case CONTINUE:
		if m.Modifier == MOD_UTURN {
			if isEmpty(streetName) {
				return "Make a U-turn"
			}
			return fmt.Sprintf("Make a U-turn onto %s", streetName)
		}
		if isEmpty(streetName) {
			return "Continue"
		}
		return fmt.Sprintf("Continue onto %s", streetName)
	case NOTIFICATION:
		if m.Mode == TRAVEL_MODE_FERRY {
			return fmt.Sprintf("Take the ferry %s", streetName)
		}
		if isEmpty(streetName) {
			return "Continue"
		}
		return fmt.Sprintf("Continue onto %s", streetName)
	case USE_LANE:
		return "Stay in your lane"
	case MERGE:
		if isEmpty(streetName) {
			return fmt.Sprintf("Merge %s", m.Modifier)
		}
		return fmt.Sprintf("Merge %s onto %s", m.Modifier, streetName)
	case ON_RAMP:
		return fmt.Sprintf("Take the ramp on the %s", sideWord(m.Modifier))
	case OFF_RAMP:
		return fmt.Sprintf("Take the exit on the %s", sideWord(m.Modifier))
	case FORK:
		return fmt.Sprintf("Keep %s at the fork", sideWord(m.Modifier))
	case END_OF_ROAD:
		if isEmpty(streetName) {
			return fmt.Sprintf("At the end of the road turn %s", m.Modifier)
		}
		return fmt.Sprintf("At the end of the road turn %s onto %s", m.Modifier, streetName)
	default:
		if isEmpty(streetName) {
			return fmt.Sprintf("Turn %s", m.Modifier)
		}
		return fmt.Sprintf("Turn %s onto %s", m.Modifier, streetName)
	}
}

func sideWord(m TurnModifier) string {
	if m < 0 {
		return "left"
	}
	if m > 0 && m != MOD_NONE && m != MOD_UTURN {
		return "right"
	}
	return "straight"
}

func isEmpty(str string) bool {
	return strings.TrimSpace(str) == ""
}
