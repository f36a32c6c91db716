package collision

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/skyfence/skyfence-app/skyfence"
)

const (
	// overlap ratio above which an area check escalates from WARNING to
	// DANGER
	dangerOverlapRatio = 0.2

	// approxOverlapFraction is the conservative stand-in used when the
	// boolean overlap test says the polygons intersect but the exact
	// intersection geometry cannot be computed: 1% of the smaller of the
	// two areas. It is a floor meaning "overlap proven, magnitude
	// unknown", and results carrying it are marked OverlapApproximated.
	approxOverlapFraction = 0.01
)

// swappable for tests that need the clipper to fail
var clipIntersectionArea = intersectionAreaSqM

// CheckArea reports how much of a candidate survey polygon overlaps
// restricted zones. Overlap is summed zone by zone and deliberately not
// de-duplicated where zones overlap each other; the figure answers "how
// much restricted area does this plan touch", not "what fraction of the
// plan is restricted ground".
//
// Rings must come outer first and closed (first position repeated last),
// each with at least 4 positions. Malformed ring input yields a
// non-colliding "insufficient input" result, never a panic.
func CheckArea(idx *ZoneIndex, rings []orb.Ring) skyfence.AreaCheckResult {
	if !validRings(rings) {
		return skyfence.AreaCheckResult{
			IsColliding: false,
			Severity:    skyfence.SeveritySafe,
			Precision:   skyfence.OverlapExact,
			Message:     "insufficient polygon ring input: need closed rings of at least 4 positions, outer ring first",
		}
	}

	candidate := orb.Polygon(rings)
	ownArea := geo.Area(candidate)

	overlapArea := 0.0
	precision := skyfence.OverlapExact
	overlappingZones := 0
	for _, zone := range idx.candidatesInBound(candidate.Bound()) {
		zoneOverlaps := false
		for _, zonePolygon := range zone.Geometry {
			if !polygonsOverlap(candidate, zonePolygon) {
				continue
			}
			zoneOverlaps = true

			area, err := clipIntersectionArea(candidate, zonePolygon)
			if err != nil {
				// overlap is proven but its geometry could not be
				// computed; substitute the conservative estimate and
				// flag the whole result as approximated
				smaller := math.Min(ownArea, geo.Area(zonePolygon))
				area = approxOverlapFraction * smaller
				precision = skyfence.OverlapApproximated
			}
			overlapArea += area
		}
		if zoneOverlaps {
			overlappingZones++
		}
	}

	if overlapArea == 0 {
		return skyfence.AreaCheckResult{
			IsColliding: false,
			Severity:    skyfence.SeveritySafe,
			Precision:   skyfence.OverlapExact,
			Message:     "area does not overlap any restricted zone",
		}
	}

	ratio := 0.0
	if ownArea > 0 {
		ratio = overlapArea / ownArea
	}
	// the summed (non-de-duplicated) overlap can exceed the candidate's
	// own area; the ratio stays in [0,1], the raw m² figure does not
	if ratio > 1 {
		ratio = 1
	}

	severity := skyfence.SeverityWarning
	if ratio > dangerOverlapRatio {
		severity = skyfence.SeverityDanger
	}

	message := fmt.Sprintf("area overlaps %d restricted zone(s): %.0f m² (%.1f%% of the area)",
		overlappingZones, overlapArea, ratio*100)
	if precision == skyfence.OverlapApproximated {
		message += " [approximated]"
	}

	return skyfence.AreaCheckResult{
		IsColliding:    true,
		OverlapAreaSqM: overlapArea,
		OverlapRatio:   ratio,
		Severity:       severity,
		Precision:      precision,
		Message:        message,
	}
}

func validRings(rings []orb.Ring) bool {
	if len(rings) == 0 {
		return false
	}
	for _, ring := range rings {
		if len(ring) < 4 || !ring.Closed() {
			return false
		}
	}
	return true
}

// intersectionAreaSqM computes the exact intersection geometry of the two
// polygons and returns its area in m². Polygon clipping can fail on
// degenerate or self-intersecting input; that surfaces as an error here so
// the caller can fall back to an estimate instead of aborting the check.
func intersectionAreaSqM(candidate, zone orb.Polygon) (area float64, err errorsx.Error) {
	defer func() {
		if r := recover(); r != nil {
			area = 0
			err = errorsx.Errorf("polygon clipping panicked: %v", r)
		}
	}()

	clipped := toGeomPolygon(candidate).Intersection(toGeomPolygon(zone)).(geom.Polygon)
	if len(clipped) == 0 {
		return 0, errorsx.Errorf("polygon clipping produced no geometry for overlapping polygons")
	}

	total := 0.0
	for _, path := range clipped {
		ring := make(orb.Ring, 0, len(path)+1)
		for _, point := range path {
			ring = append(ring, orb.Point{point.X, point.Y})
		}
		if len(ring) > 0 && !ring.Closed() {
			ring = append(ring, ring[0])
		}
		// holes come out of the clipper wound opposite to outer
		// contours; the orientation sign makes them subtract
		total += float64(ring.Orientation()) * geo.Area(ring)
	}
	return math.Abs(total), nil
}

func toGeomPolygon(polygon orb.Polygon) geom.Polygon {
	gp := make(geom.Polygon, 0, len(polygon))
	for _, ring := range polygon {
		path := make([]geom.Point, 0, len(ring))
		for _, point := range ring {
			path = append(path, geom.Point{X: point[0], Y: point[1]})
		}
		gp = append(gp, path)
	}
	return gp
}
