package collision

import (
	"github.com/paulmach/orb"
)

// ringContains is an even-odd ray cast. Rings may be closed (first
// position repeated at the end) or open; both work because the wrap-around
// edge of an open ring and the repeated edge of a closed ring test
// identically. Points exactly on the boundary are not guaranteed either
// way.
func ringContains(ring orb.Ring, p orb.Point) bool {
	if len(ring) < 3 {
		return false
	}

	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > p[1]) != (yj > p[1]) &&
			p[0] < (xj-xi)*(p[1]-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

// polygonContains treats ring 0 as the outer boundary and any further
// rings as holes.
func polygonContains(polygon orb.Polygon, p orb.Point) bool {
	if len(polygon) == 0 {
		return false
	}
	if !ringContains(polygon[0], p) {
		return false
	}
	for _, hole := range polygon[1:] {
		if ringContains(hole, p) {
			return false
		}
	}
	return true
}

// multiPolygonContains tests the union of the parts.
func multiPolygonContains(mp orb.MultiPolygon, p orb.Point) bool {
	for _, polygon := range mp {
		if polygonContains(polygon, p) {
			return true
		}
	}
	return false
}

// segmentCrossing returns the proper crossing point of segments a-b and
// c-d, if there is one. Convention: only strict interior crossings count.
// A segment that merely touches the other at an endpoint, or runs
// collinear along it, returns false — tangent paths are not reported as
// boundary crossings.
func segmentCrossing(a, b, c, d orb.Point) (orb.Point, bool) {
	r0 := b[0] - a[0]
	r1 := b[1] - a[1]
	s0 := d[0] - c[0]
	s1 := d[1] - c[1]

	denom := r0*s1 - r1*s0
	if denom == 0 {
		// parallel or collinear
		return orb.Point{}, false
	}

	t := ((c[0]-a[0])*s1 - (c[1]-a[1])*s0) / denom
	u := ((c[0]-a[0])*r1 - (c[1]-a[1])*r0) / denom

	if t <= 0 || t >= 1 || u <= 0 || u >= 1 {
		return orb.Point{}, false
	}

	return orb.Point{a[0] + t*r0, a[1] + t*r1}, true
}

// ringEdges calls fn for every edge of the ring, closing it if the source
// data left the ring open.
func ringEdges(ring orb.Ring, fn func(from, to orb.Point)) {
	if len(ring) < 2 {
		return
	}
	for i := 0; i < len(ring)-1; i++ {
		fn(ring[i], ring[i+1])
	}
	if !ring.Closed() {
		fn(ring[len(ring)-1], ring[0])
	}
}

// polygonsOverlap is the boolean overlap test between a candidate polygon
// and one zone polygon: true when any outer-ring edges properly cross, or
// when either polygon has a vertex strictly inside the other (covers full
// containment, where no edges cross at all).
func polygonsOverlap(candidate, zone orb.Polygon) bool {
	if len(candidate) == 0 || len(zone) == 0 {
		return false
	}

	crossed := false
	ringEdges(candidate[0], func(a, b orb.Point) {
		if crossed {
			return
		}
		ringEdges(zone[0], func(c, d orb.Point) {
			if crossed {
				return
			}
			if _, ok := segmentCrossing(a, b, c, d); ok {
				crossed = true
			}
		})
	})
	if crossed {
		return true
	}

	for _, p := range candidate[0] {
		if polygonContains(zone, p) {
			return true
		}
	}
	for _, p := range zone[0] {
		if polygonContains(candidate, p) {
			return true
		}
	}
	return false
}
