package skyfencedal

import (
	"context"
	"testing"

	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/gofs/mockfs"
	"github.com/skyfence/skyfence-app/skyfence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GeoJSONFileProvider_GetZones(t *testing.T) {
	provider := NewGeoJSONFileProvider(gofs.NewOsFs(), "testdata/zones.geojson")
	assert.Equal(t, "zones.geojson", provider.Name())

	zones, err := provider.GetZones(context.Background())
	require.Nil(t, err)

	// the point feature is skipped
	require.Len(t, zones, 2)

	assert.Equal(t, "Central Airfield", zones[0].Name)
	assert.Equal(t, skyfence.ZoneTypeAirport, zones[0].Type)
	require.Len(t, zones[0].Geometry, 1)

	assert.Equal(t, "Riverside District", zones[1].Name)
	assert.Equal(t, skyfence.ZoneTypeDID, zones[1].Type, "zone type read from the legacy 'type' property")
	assert.Len(t, zones[1].Geometry, 2)
}

func Test_GeoJSONFileProvider_missingFile(t *testing.T) {
	provider := NewGeoJSONFileProvider(gofs.NewOsFs(), "testdata/does-not-exist.geojson")
	_, err := provider.GetZones(context.Background())
	require.NotNil(t, err)
}

func Test_GeoJSONFileProvider_readsThroughFs(t *testing.T) {
	fs := mockfs.NewMockFs()
	err := fs.WriteFile("/zones/in-memory.geojson", []byte(`{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"properties": {"name": "heliport", "zoneType": "AIRPORT"},
			"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}
		}]
	}`), 0644)
	require.NoError(t, err)

	provider := NewGeoJSONFileProvider(fs, "/zones/in-memory.geojson")
	assert.Equal(t, "in-memory.geojson", provider.Name())

	zones, getErr := provider.GetZones(context.Background())
	require.Nil(t, getErr)
	require.Len(t, zones, 1)
	assert.Equal(t, "heliport", zones[0].Name)
	assert.Equal(t, skyfence.ZoneTypeAirport, zones[0].Type)
}
