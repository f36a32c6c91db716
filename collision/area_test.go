package collision

import (
	"testing"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/skyfence/skyfence-app/skyfence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedSquareRing(minLng, minLat, maxLng, maxLat float64) orb.Ring {
	return orb.Ring{
		{minLng, minLat},
		{maxLng, minLat},
		{maxLng, maxLat},
		{minLng, maxLat},
		{minLng, minLat},
	}
}

func Test_CheckArea_fullyInsideZone(t *testing.T) {
	idx := BuildIndex([]*skyfence.ZoneFeature{
		squareZone("airfield", skyfence.ZoneTypeAirport, 0, 0, 1, 1),
	})

	result := CheckArea(idx, []orb.Ring{closedSquareRing(0.2, 0.2, 0.8, 0.8)})
	require.True(t, result.IsColliding)
	assert.InDelta(t, 1.0, result.OverlapRatio, 0.01)
	assert.Equal(t, skyfence.SeverityDanger, result.Severity)
	assert.Equal(t, skyfence.OverlapExact, result.Precision)
	assert.Greater(t, result.OverlapAreaSqM, 0.0)
}

func Test_CheckArea_disjoint(t *testing.T) {
	idx := BuildIndex([]*skyfence.ZoneFeature{
		squareZone("airfield", skyfence.ZoneTypeAirport, 0, 0, 1, 1),
	})

	result := CheckArea(idx, []orb.Ring{closedSquareRing(5, 5, 6, 6)})
	assert.False(t, result.IsColliding)
	assert.Equal(t, 0.0, result.OverlapAreaSqM)
	assert.Equal(t, 0.0, result.OverlapRatio)
	assert.Equal(t, skyfence.SeveritySafe, result.Severity)
}

func Test_CheckArea_partialOverlapBelowThresholdIsWarning(t *testing.T) {
	idx := BuildIndex([]*skyfence.ZoneFeature{
		squareZone("airfield", skyfence.ZoneTypeAirport, 0, 0, 1, 1),
	})

	// 10% of the candidate lies inside the zone
	result := CheckArea(idx, []orb.Ring{closedSquareRing(0.9, 0, 1.9, 1)})
	require.True(t, result.IsColliding)
	assert.InDelta(t, 0.1, result.OverlapRatio, 0.005)
	assert.Equal(t, skyfence.SeverityWarning, result.Severity)
	assert.Equal(t, skyfence.OverlapExact, result.Precision)
}

func Test_CheckArea_overlapSummedAcrossZones(t *testing.T) {
	// two identical zones on top of each other: overlap is counted twice,
	// by design
	idx := BuildIndex([]*skyfence.ZoneFeature{
		squareZone("a", skyfence.ZoneTypeRedZone, 0, 0, 1, 1),
		squareZone("b", skyfence.ZoneTypeDID, 0, 0, 1, 1),
	})

	candidate := []orb.Ring{closedSquareRing(0, 0, 1, 1)}
	result := CheckArea(idx, candidate)
	require.True(t, result.IsColliding)

	ownArea := geo.Area(orb.Polygon(candidate))
	assert.InDelta(t, 2*ownArea, result.OverlapAreaSqM, 0.02*ownArea)
	assert.Equal(t, 1.0, result.OverlapRatio, "ratio is capped even though overlap is double counted")
	assert.Equal(t, skyfence.SeverityDanger, result.Severity)
}

func Test_CheckArea_insufficientRings(t *testing.T) {
	idx := BuildIndex([]*skyfence.ZoneFeature{
		squareZone("airfield", skyfence.ZoneTypeAirport, 0, 0, 1, 1),
	})

	tests := []struct {
		name  string
		rings []orb.Ring
	}{
		{"no rings", nil},
		{"empty ring slice", []orb.Ring{}},
		{"too few positions", []orb.Ring{{{0, 0}, {1, 0}, {0, 0}}}},
		{"unclosed ring", []orb.Ring{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckArea(idx, tt.rings)
			assert.False(t, result.IsColliding)
			assert.Equal(t, skyfence.SeveritySafe, result.Severity)
			assert.Contains(t, result.Message, "insufficient")
		})
	}
}

func Test_CheckArea_candidateWithHole(t *testing.T) {
	idx := BuildIndex([]*skyfence.ZoneFeature{
		squareZone("airfield", skyfence.ZoneTypeAirport, 0, 0, 10, 10),
	})

	// candidate is a donut fully inside the zone; the hole shrinks its own
	// area but the clipped overlap shrinks identically, so the ratio stays
	// at 1
	result := CheckArea(idx, []orb.Ring{
		closedSquareRing(1, 1, 9, 9),
		closedSquareRing(4, 4, 6, 6),
	})
	require.True(t, result.IsColliding)
	assert.InDelta(t, 1.0, result.OverlapRatio, 0.02)
}

func Test_CheckArea_emptyIndex(t *testing.T) {
	result := CheckArea(BuildIndex(nil), []orb.Ring{closedSquareRing(0, 0, 1, 1)})
	assert.False(t, result.IsColliding)
	assert.Equal(t, skyfence.SeveritySafe, result.Severity)
}

func Test_CheckArea_approximatedFallbackWhenClippingFails(t *testing.T) {
	original := clipIntersectionArea
	clipIntersectionArea = func(candidate, zone orb.Polygon) (float64, errorsx.Error) {
		return 0, errorsx.Errorf("clipping failed")
	}
	defer func() { clipIntersectionArea = original }()

	idx := BuildIndex([]*skyfence.ZoneFeature{
		squareZone("airfield", skyfence.ZoneTypeAirport, 0, 0, 1, 1),
	})

	// candidate sits fully inside the zone and is the smaller of the two
	candidate := []orb.Ring{closedSquareRing(0.2, 0.2, 0.8, 0.8)}
	result := CheckArea(idx, candidate)
	require.True(t, result.IsColliding)
	assert.Equal(t, skyfence.OverlapApproximated, result.Precision)

	ownArea := geo.Area(orb.Polygon(candidate))
	assert.InDelta(t, approxOverlapFraction*ownArea, result.OverlapAreaSqM, 1e-6)
	assert.InDelta(t, approxOverlapFraction, result.OverlapRatio, 1e-9)
	assert.Equal(t, skyfence.SeverityWarning, result.Severity)
	assert.Contains(t, result.Message, "approximated")
}

func Test_intersectionAreaSqM_matchesClippedRectangle(t *testing.T) {
	candidate := orb.Polygon{closedSquareRing(0, 0, 1, 1)}
	zone := orb.Polygon{closedSquareRing(0.5, 0, 1.5, 1)}

	area, err := intersectionAreaSqM(candidate, zone)
	require.NoError(t, err)

	// the clipped geometry is the right half of the candidate square
	expected := geo.Area(orb.Polygon{closedSquareRing(0.5, 0, 1, 1)})
	assert.InEpsilon(t, expected, area, 0.001)
}
