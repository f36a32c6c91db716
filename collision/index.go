package collision

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/skyfence/skyfence-app/skyfence"
)

// rtreego rejects zero-length rectangle sides, so degenerate bounds (a
// zone collapsed to a line or point, or a point query) get padded by this
// much. In degrees this is well under a millimetre.
const minRectSide = 1e-9

// indexEntry is one R-tree leaf: a bounding box plus the zone it belongs
// to. Entries are created once per index build and never mutated; the
// index is rebuilt wholesale when the zone registry changes.
type indexEntry struct {
	ordinal int
	zone    *skyfence.ZoneFeature
	rect    rtreego.Rect
}

func (e *indexEntry) Bounds() rtreego.Rect {
	return e.rect
}

// ZoneIndex is an immutable bounding-box index over a zone registry.
// Queries never mutate it, so concurrent reads from any number of callers
// are safe without locking.
type ZoneIndex struct {
	tree  *rtreego.Rtree
	zones []*skyfence.ZoneFeature
}

// BuildIndex bulk-loads one R-tree entry per zone. An empty (or nil) zone
// slice produces a valid index against which every query reports "not
// colliding".
func BuildIndex(zones []*skyfence.ZoneFeature) *ZoneIndex {
	entries := make([]rtreego.Spatial, 0, len(zones))
	kept := make([]*skyfence.ZoneFeature, 0, len(zones))
	for _, zone := range zones {
		rect, ok := boundToRect(zone.Bound())
		if !ok {
			continue
		}
		entries = append(entries, &indexEntry{
			ordinal: len(kept),
			zone:    zone,
			rect:    rect,
		})
		kept = append(kept, zone)
	}

	return &ZoneIndex{
		tree:  rtreego.NewTree(2, 25, 50, entries...),
		zones: kept,
	}
}

// BuildIndexFromCollection normalizes a GeoJSON feature collection and
// indexes the result. Non-polygon features are skipped silently.
func BuildIndexFromCollection(collection *geojson.FeatureCollection) *ZoneIndex {
	return BuildIndex(skyfence.NormalizeCollection(collection))
}

// Zones returns the indexed registry in build order. Callers must not
// mutate the returned features.
func (idx *ZoneIndex) Zones() []*skyfence.ZoneFeature {
	return idx.zones
}

func (idx *ZoneIndex) Len() int {
	return len(idx.zones)
}

// searchRect returns candidate zones whose bounding box intersects rect,
// in build order so downstream tie-breaks are reproducible regardless of
// tree layout.
func (idx *ZoneIndex) searchRect(rect rtreego.Rect) []*skyfence.ZoneFeature {
	matches := idx.tree.SearchIntersect(rect)

	entries := make([]*indexEntry, len(matches))
	for i, match := range matches {
		entries[i] = match.(*indexEntry)
	}
	sort.Slice(entries, func(a, b int) bool {
		return entries[a].ordinal < entries[b].ordinal
	})

	candidates := make([]*skyfence.ZoneFeature, len(entries))
	for i, entry := range entries {
		candidates[i] = entry.zone
	}
	return candidates
}

// candidatesAt runs the sub-linear pruning step for a point query: a
// degenerate-rectangle search returning every zone whose bounding box
// contains the point.
func (idx *ZoneIndex) candidatesAt(p orb.Point) []*skyfence.ZoneFeature {
	return idx.searchRect(rtreego.Point{p[0], p[1]}.ToRect(minRectSide))
}

// candidatesInBound prunes candidates for path and area queries.
func (idx *ZoneIndex) candidatesInBound(bound orb.Bound) []*skyfence.ZoneFeature {
	rect, ok := boundToRect(bound)
	if !ok {
		return nil
	}
	return idx.searchRect(rect)
}

func boundToRect(bound orb.Bound) (rtreego.Rect, bool) {
	width := bound.Max[0] - bound.Min[0]
	height := bound.Max[1] - bound.Min[1]
	if width < minRectSide {
		width = minRectSide
	}
	if height < minRectSide {
		height = minRectSide
	}
	rect, err := rtreego.NewRect(rtreego.Point{bound.Min[0], bound.Min[1]}, []float64{width, height})
	if err != nil {
		return rtreego.Rect{}, false
	}
	return rect, true
}
