package guidance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lintang-b-s/turnguide/pkg/datastructure"
)

// arriving at a T-junction with a single allowed exit is an end-of-road
// maneuver, not a plain turn.
func TestEndOfRoadAtTJunction(t *testing.T) {
	graph := buildMap(t, `
grid 20
l c r
. a .
endgrid
way nodes=ac name=stem_street highway=residential
way nodes=lc name=bar_street highway=residential oneway=yes
way nodes=cr name=bar_street highway=residential
`)
	// at c the stem ends; l->c is one-way toward c, so the only allowed
	// exit is c->r
	result := route(t, graph, 'a', 'r')
	assertManeuvers(t, graph, result.Maneuvers, []expectedManeuver{
		{datastructure.DEPART, datastructure.MOD_NONE, "stem street", 'a'},
		{datastructure.END_OF_ROAD, datastructure.MOD_RIGHT, "bar street", 'c'},
		{datastructure.ARRIVE, datastructure.MOD_NONE, "", 'r'},
	})
}

// with both arms of the T enterable the maneuver downgrades to a turn.
func TestTJunctionBothArmsIsTurn(t *testing.T) {
	graph := buildMap(t, `
grid 20
l c r
. a .
endgrid
way nodes=ac name=stem_street highway=residential
way nodes=lcr name=bar_street highway=residential
`)
	result := route(t, graph, 'a', 'r')
	assertManeuvers(t, graph, result.Maneuvers, []expectedManeuver{
		{datastructure.DEPART, datastructure.MOD_NONE, "stem street", 'a'},
		{datastructure.TURN, datastructure.MOD_RIGHT, "bar street", 'c'},
		{datastructure.ARRIVE, datastructure.MOD_NONE, "", 'r'},
	})
}

// a straight continuation under a new name at a simple degree-2 node.
func TestNewNameStraight(t *testing.T) {
	graph := buildMap(t, `
grid 20
a b c
endgrid
way nodes=ab name=west_end highway=secondary
way nodes=bc name=east_end highway=secondary
`)
	result := route(t, graph, 'a', 'c')
	assertManeuvers(t, graph, result.Maneuvers, []expectedManeuver{
		{datastructure.DEPART, datastructure.MOD_NONE, "west end", 'a'},
		{datastructure.NEW_NAME, datastructure.MOD_STRAIGHT, "east end", 'b'},
		{datastructure.ARRIVE, datastructure.MOD_NONE, "", 'c'},
	})
}

// leaving the mainline onto a link road announces the off ramp.
func TestOffRamp(t *testing.T) {
	graph := buildMap(t, `
grid 20
a b c d
. . . e
endgrid
way nodes=abcd name=big_highway highway=motorway oneway=yes
way nodes=ce name=exit_ramp highway=motorway_link oneway=yes
`)
	result := route(t, graph, 'a', 'e')
	require.GreaterOrEqual(t, len(result.Maneuvers), 3)
	assert.Equal(t, datastructure.OFF_RAMP, result.Maneuvers[1].Type)
	assert.Greater(t, int(result.Maneuvers[1].Modifier), 0, "exit on the right")
}

// an on-ramp immediately followed by the merge onto the mainline is one
// event for the driver.
func TestOnRampMergeChainCollapses(t *testing.T) {
	graph := buildMap(t, `
grid 20
w c d
a b x
endgrid
way nodes=wcd name=big_highway highway=motorway oneway=yes
way nodes=ab name=feeder_ramp highway=motorway_link oneway=yes
way nodes=bc name=feeder_ramp highway=motorway_link oneway=yes
way nodes=bx name=other_ramp highway=motorway_link oneway=yes
`)
	result := route(t, graph, 'a', 'd')
	require.GreaterOrEqual(t, len(result.Maneuvers), 3)

	middle := result.Maneuvers[1 : len(result.Maneuvers)-1]
	require.Equal(t, 1, len(middle), "on ramp + merge must be one maneuver: %v", describe(result.Maneuvers))
	assert.Equal(t, datastructure.MERGE, middle[0].Type)
	assert.Equal(t, "big highway", middle[0].Name)
}

// a bend on the same street is never a maneuver, whatever the angle.
func TestSameNameBendSuppressed(t *testing.T) {
	graph := buildMap(t, `
grid 20
a b .
. c .
. d .
endgrid
way nodes=abcd name=winding_road highway=residential
`)
	result := route(t, graph, 'a', 'd')
	assertManeuvers(t, graph, result.Maneuvers, []expectedManeuver{
		{datastructure.DEPART, datastructure.MOD_NONE, "winding road", 'a'},
		{datastructure.ARRIVE, datastructure.MOD_NONE, "", 'd'},
	})
}
