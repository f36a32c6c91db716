package skyfencedal

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/skyfence/skyfence-app/skyfence"
)

// OSMExtractProvider derives restricted zones from an OSM PBF extract:
// closed ways tagged as aerodromes or military areas become AIRPORT and
// MILITARY zones. It is a coarse source compared to official zone data,
// but useful where none is published.
type OSMExtractProvider struct {
	fs       gofs.Fs
	name     string
	filePath string
}

func NewOSMExtractProvider(fs gofs.Fs, filePath string) *OSMExtractProvider {
	return &OSMExtractProvider{
		fs:       fs,
		name:     filepath.Base(filePath),
		filePath: filePath,
	}
}

func (p *OSMExtractProvider) Name() string {
	return p.name
}

func (p *OSMExtractProvider) GetZones(ctx context.Context) ([]*skyfence.ZoneFeature, errorsx.Error) {
	file, err := p.fs.Open(p.filePath)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}
	defer file.Close()

	scanner := osmpbf.New(ctx, file, runtime.NumCPU())
	defer scanner.Close()

	// PBF files order nodes before ways, so one pass is enough to
	// resolve way node coordinates.
	nodeLocations := make(map[osm.NodeID]orb.Point)
	var zones []*skyfence.ZoneFeature
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			nodeLocations[object.ID] = orb.Point{object.Lon, object.Lat}
		case *osm.Way:
			zone, ok := zoneFromWay(object, nodeLocations)
			if !ok {
				continue
			}
			zones = append(zones, zone)
		}
	}
	if scanner.Err() != nil {
		return nil, errorsx.Wrap(scanner.Err())
	}

	return zones, nil
}

func zoneFromWay(way *osm.Way, nodeLocations map[osm.NodeID]orb.Point) (*skyfence.ZoneFeature, bool) {
	zoneType, ok := zoneTypeForTags(way.Tags)
	if !ok {
		return nil, false
	}

	if len(way.Nodes) < 4 || way.Nodes[0].ID != way.Nodes[len(way.Nodes)-1].ID {
		// not a closed area
		return nil, false
	}

	ring := make(orb.Ring, 0, len(way.Nodes))
	for _, wayNode := range way.Nodes {
		location, ok := nodeLocations[wayNode.ID]
		if !ok {
			// way refers outside the extract; skip the whole zone
			// rather than index a partial boundary
			return nil, false
		}
		ring = append(ring, location)
	}

	name := way.Tags.Find("name")
	if name == "" {
		name = string(zoneType)
	}

	return &skyfence.ZoneFeature{
		Name:     name,
		Type:     zoneType,
		Geometry: orb.MultiPolygon{orb.Polygon{ring}},
	}, true
}

func zoneTypeForTags(tags osm.Tags) (skyfence.ZoneType, bool) {
	if tags.Find("aeroway") == "aerodrome" {
		return skyfence.ZoneTypeAirport, true
	}
	if tags.Find("landuse") == "military" || tags.Find("military") != "" {
		return skyfence.ZoneTypeMilitary, true
	}
	return "", false
}
