package collision

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/skyfence/skyfence-app/skyfence"
)

// CheckPath reports every proper crossing between a flight path and zone
// boundaries. All crossings across all zones are accumulated: unlike point
// checks there is no priority winner, because a route planner needs every
// crossing to re-route, not just the most important zone. Severity is the
// most severe classification among the zones actually crossed.
//
// A path shorter than 2 points is valid input and reports not colliding.
// Tangent and collinear touches are excluded (see segmentCrossing).
func CheckPath(idx *ZoneIndex, points []orb.Point) skyfence.PathCheckResult {
	if len(points) < 2 {
		return skyfence.PathCheckResult{
			IsColliding:        false,
			IntersectionPoints: []orb.Point{},
			Severity:           skyfence.SeveritySafe,
			Message:            "path needs at least 2 points, nothing to check",
		}
	}

	lineString := orb.LineString(points)

	intersections := []orb.Point{}
	severity := skyfence.SeveritySafe
	crossedZones := 0
	for _, zone := range idx.candidatesInBound(lineString.Bound()) {
		crossings := pathZoneCrossings(points, zone)
		if len(crossings) == 0 {
			continue
		}
		intersections = append(intersections, crossings...)
		severity = moreSevere(severity, zone.Type.Severity())
		crossedZones++
	}

	if len(intersections) == 0 {
		return skyfence.PathCheckResult{
			IsColliding:        false,
			IntersectionPoints: []orb.Point{},
			Severity:           skyfence.SeveritySafe,
			Message:            "path does not cross any restricted zone boundary",
		}
	}

	return skyfence.PathCheckResult{
		IsColliding:        true,
		IntersectionPoints: intersections,
		Severity:           severity,
		Message: fmt.Sprintf(
			"path crosses restricted zone boundaries %d time(s) across %d zone(s)",
			len(intersections), crossedZones),
	}
}

// pathZoneCrossings collects crossings of every path segment against every
// boundary ring of the zone. Hole rings count: entering a hole leaves the
// zone, which is still a boundary crossing.
func pathZoneCrossings(points []orb.Point, zone *skyfence.ZoneFeature) []orb.Point {
	var crossings []orb.Point
	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		for _, polygon := range zone.Geometry {
			for _, ring := range polygon {
				ringEdges(ring, func(c, d orb.Point) {
					if crossing, ok := segmentCrossing(a, b, c, d); ok {
						crossings = append(crossings, crossing)
					}
				})
			}
		}
	}
	return crossings
}

func moreSevere(a, b skyfence.Severity) skyfence.Severity {
	rank := map[skyfence.Severity]int{
		skyfence.SeverityDanger:  0,
		skyfence.SeverityWarning: 1,
		skyfence.SeveritySafe:    2,
	}
	if rank[b] < rank[a] {
		return b
	}
	return a
}
