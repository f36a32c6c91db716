package skyfencedal

import (
	"context"
	"path/filepath"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/paulmach/orb/geojson"
	"github.com/skyfence/skyfence-app/skyfence"
)

// GeoJSONFileProvider reads a zone registry from a GeoJSON
// FeatureCollection file. Non-polygon features in the file are skipped
// silently during normalization.
type GeoJSONFileProvider struct {
	fs       gofs.Fs
	name     string
	filePath string
}

func NewGeoJSONFileProvider(fs gofs.Fs, filePath string) *GeoJSONFileProvider {
	return &GeoJSONFileProvider{
		fs:       fs,
		name:     filepath.Base(filePath),
		filePath: filePath,
	}
}

func (p *GeoJSONFileProvider) Name() string {
	return p.name
}

func (p *GeoJSONFileProvider) GetZones(ctx context.Context) ([]*skyfence.ZoneFeature, errorsx.Error) {
	data, err := p.fs.ReadFile(p.filePath)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	collection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errorsx.Wrap(err, "filePath", p.filePath)
	}

	return skyfence.NormalizeCollection(collection), nil
}
