package collision

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/skyfence/skyfence-app/skyfence"
)

// CheckPoint reports whether the coordinate lies inside a restricted zone.
//
// Candidates come from a degenerate-rectangle index query; each is then
// exact-tested with a point-in-polygon check over the union of its parts.
// When several zones contain the point, the one with the lowest priority
// number wins. Ties are broken by index build order (first zone indexed
// wins), not tree traversal order, so re-running the check on the same
// index and coordinate always returns the same result.
//
// Calling this with a nil index is programmer misuse and panics; malformed
// zone geometry never does.
func CheckPoint(idx *ZoneIndex, lng, lat float64) skyfence.PointCheckResult {
	p := orb.Point{lng, lat}

	var winner *skyfence.ZoneFeature
	for _, zone := range idx.candidatesAt(p) {
		if !multiPolygonContains(zone.Geometry, p) {
			continue
		}
		if winner == nil || zone.Type.Priority() < winner.Type.Priority() {
			winner = zone
		}
	}

	if winner == nil {
		return skyfence.PointCheckResult{
			IsColliding: false,
			Severity:    skyfence.SeveritySafe,
			Color:       skyfence.ColorSafe,
			Message:     "no restricted zone at this point",
		}
	}

	return skyfence.PointCheckResult{
		IsColliding: true,
		ZoneType:    winner.Type,
		ZoneName:    winner.Name,
		Severity:    winner.Type.Severity(),
		Color:       winner.Type.Color(),
		Message:     fmt.Sprintf("point is inside restricted zone %q (%s)", winner.Name, winner.Type),
	}
}
