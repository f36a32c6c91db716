package skyfencesqldb

import (
	"context"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jmoiron/sqlx"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/skyfence/skyfence-app/skyfence"
	"github.com/skyfence/skyfence-app/skyfencedal"
)

var _ skyfencedal.ZoneProvider = &ZoneSQLDB{}

const sqlSchema = `
CREATE TABLE restricted_zones (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	zone_type TEXT NOT NULL,
	geometry_geojson TEXT NOT NULL
);

CREATE INDEX ON restricted_zones (zone_type);
`

// ZoneSQLDB reads restricted zones from a database table holding one
// GeoJSON geometry per row. Rows with non-polygon or unparseable geometry
// are skipped, matching the file provider's tolerance for defective
// source data.
type ZoneSQLDB struct {
	name string
	db   *sqlx.DB
}

func NewZoneSQLDB(db *sqlx.DB, name string) *ZoneSQLDB {
	return &ZoneSQLDB{
		name: name,
		db:   db,
	}
}

func (z *ZoneSQLDB) Name() string {
	return z.name
}

func (z *ZoneSQLDB) GetZones(ctx context.Context) ([]*skyfence.ZoneFeature, errorsx.Error) {
	rows, err := z.db.QueryContext(ctx, `
		SELECT name, zone_type, geometry_geojson
		FROM restricted_zones
		ORDER BY id`)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}
	defer rows.Close()

	var zones []*skyfence.ZoneFeature
	for rows.Next() {
		var name, zoneTypeStr, geometryJSON string
		err = rows.Scan(&name, &zoneTypeStr, &geometryJSON)
		if err != nil {
			return nil, errorsx.Wrap(err)
		}

		geometry, err := geojson.UnmarshalGeometry([]byte(geometryJSON))
		if err != nil {
			continue
		}

		feature := geojson.NewFeature(geometry.Geometry())
		feature.Properties["name"] = name
		feature.Properties["zoneType"] = zoneTypeStr
		zone, ok := skyfence.NormalizeFeature(feature)
		if !ok {
			continue
		}
		zones = append(zones, zone)
	}
	if rows.Err() != nil {
		return nil, errorsx.Wrap(rows.Err())
	}

	return zones, nil
}

// EnsureSchema creates the zones table; meant for first-run setup.
func EnsureSchema(db *sqlx.DB) errorsx.Error {
	_, err := db.Exec(sqlSchema)
	if err != nil {
		return errorsx.Wrap(err)
	}
	return nil
}

// InsertZone writes one zone row, serializing its geometry back to
// GeoJSON.
func InsertZone(db *sqlx.DB, zone *skyfence.ZoneFeature) errorsx.Error {
	geometryJSON, err := geojson.NewGeometry(orb.Geometry(zone.Geometry)).MarshalJSON()
	if err != nil {
		return errorsx.Wrap(err)
	}

	_, err = db.Exec(`
		INSERT INTO restricted_zones (name, zone_type, geometry_geojson)
		VALUES ($1, $2, $3)`,
		zone.Name, string(zone.Type), string(geometryJSON))
	if err != nil {
		return errorsx.Wrap(err)
	}
	return nil
}
