package graphio

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/require"

	"github.com/hexterra/reachcore/core"
)

func TestIsOneWay(t *testing.T) {
	cases := []struct {
		val  string
		want bool
	}{
		{"yes", true},
		{"1", true},
		{"true", true},
		{"no", false},
		{"", false},
		{"-1", false},
	}
	for _, c := range cases {
		tags := osm.Tags{{Key: "oneway", Value: c.val}}
		require.Equal(t, c.want, isOneWay(tags), "oneway=%q", c.val)
	}
}

func TestIsPedestrianAccessible(t *testing.T) {
	require.False(t, isPedestrianAccessible(osm.Tags{{Key: "highway", Value: "motorway"}}))
	require.True(t, isPedestrianAccessible(osm.Tags{{Key: "highway", Value: "residential"}}))
	require.False(t, isPedestrianAccessible(osm.Tags{
		{Key: "highway", Value: "residential"},
		{Key: "foot", Value: "no"},
	}))
}

func TestClassSpeedMPS_FallsBackToWildcard(t *testing.T) {
	p := core.NewProfile(core.Walk)
	require.Equal(t, core.WalkSpeedMPS, classSpeedMPS(p, "footway"))
}

func TestClassSpeedMPS_Drive(t *testing.T) {
	p := core.NewProfile(core.Drive)
	require.Equal(t, core.DriveSpeedMPS["motorway"], classSpeedMPS(p, "motorway"))
}

func TestEdgeWeightSeconds_MinimumOneSecond(t *testing.T) {
	b := core.NewBuilder(core.Drive, []float32{0, 0}, []float32{0, 0})
	w := edgeWeightSeconds(b, 0, 1, 1000)
	require.Equal(t, uint32(1), w)
}
