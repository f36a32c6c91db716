package skyfence

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var recognizedZoneTypes = map[ZoneType]bool{
	ZoneTypeRedZone:        true,
	ZoneTypeAirport:        true,
	ZoneTypeMilitary:       true,
	ZoneTypeEmergency:      true,
	ZoneTypeDID:            true,
	ZoneTypeYellowZone:     true,
	ZoneTypeRemoteID:       true,
	ZoneTypeMannedAircraft: true,
}

// ZoneTypeFromProperties resolves a feature's zone type at ingestion time.
// Sources are inconsistent about the property name, so both "zoneType" and
// "type" are accepted, in that order. A feature with neither property is
// treated as a DID (the most common under-tagged source is district data).
// A property that is present but not a recognized type maps to
// ZoneTypeUnknown, which ranks last in tie-breaks but classifies as DANGER.
func ZoneTypeFromProperties(properties geojson.Properties) ZoneType {
	for _, key := range []string{"zoneType", "type"} {
		value, ok := properties[key]
		if !ok {
			continue
		}
		str, ok := value.(string)
		if !ok || str == "" {
			continue
		}
		zt := ZoneType(str)
		if !recognizedZoneTypes[zt] {
			return ZoneTypeUnknown
		}
		return zt
	}
	return ZoneTypeDID
}

// NormalizeFeature converts a GeoJSON feature into a ZoneFeature. The
// second return value is false when the feature carries a non-polygon
// geometry; those are skipped, not errors.
func NormalizeFeature(feature *geojson.Feature) (*ZoneFeature, bool) {
	var geometry orb.MultiPolygon
	switch g := feature.Geometry.(type) {
	case orb.Polygon:
		geometry = orb.MultiPolygon{g}
	case orb.MultiPolygon:
		geometry = g
	default:
		return nil, false
	}

	name := ""
	if value, ok := feature.Properties["name"]; ok {
		if str, ok := value.(string); ok {
			name = str
		}
	}

	return &ZoneFeature{
		Name:     name,
		Type:     ZoneTypeFromProperties(feature.Properties),
		Geometry: geometry,
	}, true
}

// NormalizeCollection runs NormalizeFeature over a whole feature
// collection. Unnamed zones get a positional placeholder name so results
// stay distinguishable in messages.
func NormalizeCollection(collection *geojson.FeatureCollection) []*ZoneFeature {
	zones := []*ZoneFeature{}
	for i, feature := range collection.Features {
		zone, ok := NormalizeFeature(feature)
		if !ok {
			continue
		}
		if zone.Name == "" {
			zone.Name = fmt.Sprintf("zone-%d", i)
		}
		zones = append(zones, zone)
	}
	return zones
}
