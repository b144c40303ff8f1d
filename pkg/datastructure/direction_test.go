package datastructure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lintang-b-s/turnguide/pkg/datastructure"
)

func TestTurnModifierFromDegree(t *testing.T) {
	cases := []struct {
		delta    float64
		expected datastructure.TurnModifier
	}{
		{0, datastructure.MOD_STRAIGHT},
		{9.9, datastructure.MOD_STRAIGHT},
		{-9.9, datastructure.MOD_STRAIGHT},
		{10, datastructure.MOD_SLIGHT_RIGHT},
		{-30, datastructure.MOD_SLIGHT_LEFT},
		{44.9, datastructure.MOD_SLIGHT_RIGHT},
		{45, datastructure.MOD_RIGHT},
		{-90, datastructure.MOD_LEFT},
		{134.9, datastructure.MOD_RIGHT},
		{135, datastructure.MOD_SHARP_RIGHT},
		{-150, datastructure.MOD_SHARP_LEFT},
		{175, datastructure.MOD_UTURN},
		{-179, datastructure.MOD_UTURN},
		{180, datastructure.MOD_UTURN},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, datastructure.TurnModifierFromDegree(c.delta), "delta %f", c.delta)
	}
}

func TestTurnModifierPredicates(t *testing.T) {
	assert.True(t, datastructure.MOD_UTURN.IsSignificant())
	assert.True(t, datastructure.MOD_RIGHT.IsSignificant())
	assert.True(t, datastructure.MOD_SHARP_LEFT.IsSignificant())
	assert.False(t, datastructure.MOD_SLIGHT_LEFT.IsSignificant())

	assert.True(t, datastructure.MOD_STRAIGHT.IsStraightish())
	assert.True(t, datastructure.MOD_SLIGHT_RIGHT.IsStraightish())
	assert.False(t, datastructure.MOD_UTURN.IsStraightish())
	assert.False(t, datastructure.MOD_LEFT.IsStraightish())
}

func TestGetTurnDescription(t *testing.T) {
	cases := []struct {
		maneuver datastructure.Maneuver
		expected string
	}{
		{
			datastructure.Maneuver{Type: datastructure.DEPART, Name: "first"},
			"Depart onto first",
		},
		{
			datastructure.Maneuver{Type: datastructure.ARRIVE},
			"You have arrived at your destination",
		},
		{
			datastructure.Maneuver{Type: datastructure.TURN, Modifier: datastructure.MOD_RIGHT, Name: "second"},
			"Turn right onto second",
		},
		{
			datastructure.Maneuver{Type: datastructure.CONTINUE, Modifier: datastructure.MOD_UTURN, Name: "first"},
			"Make a U-turn onto first",
		},
		{
			datastructure.Maneuver{Type: datastructure.FORK, Modifier: datastructure.MOD_SLIGHT_LEFT, Name: "branch"},
			"Keep left at the fork",
		},
		{
			datastructure.Maneuver{Type: datastructure.OFF_RAMP, Modifier: datastructure.MOD_SLIGHT_RIGHT},
			"Take the exit on the right",
		},
		{
			datastructure.Maneuver{Type: datastructure.END_OF_ROAD, Modifier: datastructure.MOD_LEFT, Name: "bar street"},
			"At the end of the road turn left onto bar street",
		},
		{
			datastructure.Maneuver{Type: datastructure.NOTIFICATION, Mode: datastructure.TRAVEL_MODE_FERRY, Name: "harbour ferry"},
			"Take the ferry harbour ferry",
		},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, datastructure.GetTurnDescription(c.maneuver))
	}
}

func TestPolylineRoundTrip(t *testing.T) {
	path := []datastructure.Coordinate{
		{Lat: -7.55, Lon: 110.77},
		{Lat: -7.551, Lon: 110.772},
		{Lat: -7.553, Lon: 110.775},
	}

	encoded := datastructure.CreatePolyline(path)
	assert.NotEmpty(t, encoded)

	decoded, err := datastructure.DecodePolyline(encoded)
	assert.NoError(t, err)
	assert.Equal(t, len(path), len(decoded))
	for i := range path {
		assert.InDelta(t, path[i].Lat, decoded[i].Lat, 1e-4)
		assert.InDelta(t, path[i].Lon, decoded[i].Lon, 1e-4)
	}
}
