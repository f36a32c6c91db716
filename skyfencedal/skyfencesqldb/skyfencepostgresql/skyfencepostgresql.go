package skyfencepostgresql

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/skyfence/skyfence-app/skyfencedal"
	"github.com/skyfence/skyfence-app/skyfencedal/skyfencesqldb"
)

func NewDBConn(connStr string) (skyfencedal.ZoneProvider, errorsx.Error) {
	db, err := sqlx.Open("postgres", "postgresql://"+connStr)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return skyfencesqldb.NewZoneSQLDB(db, "postgresql database"), nil
}

// NewFinalStorage creates the schema and returns a provider over it.
func NewFinalStorage(connStr string) (skyfencedal.ZoneProvider, errorsx.Error) {
	db, err := sqlx.Open("postgres", "postgresql://"+connStr)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	sqlErr := skyfencesqldb.EnsureSchema(db)
	if sqlErr != nil {
		return nil, sqlErr
	}

	return skyfencesqldb.NewZoneSQLDB(db, "postgresql database"), nil
}
