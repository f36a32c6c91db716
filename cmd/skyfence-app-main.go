package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	tracing "github.com/jamesrr39/go-tracing"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/httpextra"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/goutil/userextra"
	"github.com/skyfence/skyfence-app/collision"
	"github.com/skyfence/skyfence-app/skyfencedal"
	"github.com/skyfence/skyfence-app/skyfencedal/skyfencesqldb/skyfencepostgresql"
	"github.com/skyfence/skyfence-app/webservices"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	DEFAULT_PORT      = 9000
	DEFAULT_CACHE_TTL = 10 * time.Minute
)

var logger *logpkg.Logger

func main() {
	verbose := kingpin.Flag("v", "verbose logging").Bool()

	logger = logpkg.NewLogger(os.Stderr, logpkg.LogLevelInfo)
	kingpin.CommandLine.PreAction(func(ctx *kingpin.ParseContext) error {
		if *verbose {
			logger = logpkg.NewLogger(os.Stderr, logpkg.LogLevelDebug)
		}
		return nil
	})

	setupServe()
	setupCheckPoint()

	kingpin.Parse()
}

func buildProviderSet(zoneFilePaths []string, osmFilePaths []string, postgresConnStr string, cacheTTL time.Duration) (*skyfencedal.ProviderSet, errorsx.Error) {
	var providers []skyfencedal.ZoneProvider
	fs := gofs.NewOsFs()

	for _, path := range zoneFilePaths {
		expandedPath, err := userextra.ExpandUser(path)
		if err != nil {
			return nil, errorsx.Wrap(err)
		}
		providers = append(providers, skyfencedal.NewGeoJSONFileProvider(fs, expandedPath))
	}
	for _, path := range osmFilePaths {
		expandedPath, err := userextra.ExpandUser(path)
		if err != nil {
			return nil, errorsx.Wrap(err)
		}
		providers = append(providers, skyfencedal.NewOSMExtractProvider(fs, expandedPath))
	}
	if postgresConnStr != "" {
		provider, err := skyfencepostgresql.NewDBConn(postgresConnStr)
		if err != nil {
			return nil, errorsx.Wrap(err)
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, errorsx.Errorf("no zone sources configured: provide at least one of --zone-file, --osm-file or --postgres")
	}

	// every source goes behind a TTL cache so serve-mode reloads don't
	// hammer slow sources; Invalidate happens via index rebuild + TTL
	cached := make([]skyfencedal.ZoneProvider, 0, len(providers))
	for _, provider := range providers {
		cached = append(cached, skyfencedal.NewZoneCache(provider, cacheTTL))
	}

	return skyfencedal.NewProviderSet(cached), nil
}

func setupServe() {
	cmd := kingpin.Command("serve", "serve the zone check webservice")
	addr := cmd.Flag("addr", "address to listen on").Default(fmt.Sprintf(":%d", DEFAULT_PORT)).String()
	zoneFilePaths := cmd.Flag("zone-file", "path to a GeoJSON restricted-zone file (repeatable)").Strings()
	osmFilePaths := cmd.Flag("osm-file", "path to an OSM PBF extract to derive zones from (repeatable)").Strings()
	postgresConnStr := cmd.Flag("postgres", "postgres connection string for a restricted_zones database").String()
	cacheTTL := cmd.Flag("cache-ttl", "how long fetched zone sets stay cached").Default(DEFAULT_CACHE_TTL.String()).Duration()
	shouldProfile := cmd.Flag("profile", "profile the request performance").Bool()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		run := func() errorsx.Error {
			providerSet, err := buildProviderSet(*zoneFilePaths, *osmFilePaths, *postgresConnStr, *cacheTTL)
			if err != nil {
				return errorsx.Wrap(err)
			}

			indexSet := skyfencedal.NewIndexSet(providerSet)
			err = indexSet.Rebuild(context.Background())
			if err != nil {
				return errorsx.Wrap(err)
			}
			logger.Info("zone index built: %d zones", indexSet.Index().Len())

			router, err := createServer(indexSet, *shouldProfile)
			if err != nil {
				return errorsx.Wrap(err)
			}

			server := httpextra.NewServerWithTimeouts()
			server.Addr = *addr
			server.Handler = router

			logger.Info("about to start serving on %q", *addr)

			listenErr := server.ListenAndServe()
			if listenErr != nil {
				return errorsx.Wrap(listenErr)
			}
			return nil
		}

		err := run()
		if err != nil {
			return fmt.Errorf("error: %q\nStack trace:\n%s", err.Error(), err.Stack())
		}
		return nil
	})
}

func setupCheckPoint() {
	cmd := kingpin.Command("check-point", "check one coordinate against zone files and print the result")
	lng := cmd.Arg("lng", "longitude (decimal degrees)").Required().Float64()
	lat := cmd.Arg("lat", "latitude (decimal degrees)").Required().Float64()
	zoneFilePaths := cmd.Flag("zone-file", "path to a GeoJSON restricted-zone file (repeatable)").Required().Strings()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		run := func() errorsx.Error {
			providerSet, err := buildProviderSet(*zoneFilePaths, nil, "", DEFAULT_CACHE_TTL)
			if err != nil {
				return errorsx.Wrap(err)
			}

			zones, err := providerSet.GetAllZones(context.Background())
			if err != nil {
				return errorsx.Wrap(err)
			}

			result := collision.CheckPoint(collision.BuildIndex(zones), *lng, *lat)

			encoded, marshalErr := json.MarshalIndent(result, "", "  ")
			if marshalErr != nil {
				return errorsx.Wrap(marshalErr)
			}
			fmt.Println(string(encoded))
			return nil
		}

		err := run()
		if err != nil {
			return fmt.Errorf("error: %q\nStack trace:\n%s", err.Error(), err.Stack())
		}
		return nil
	})
}

func createServer(indexSet *skyfencedal.IndexSet, shouldProfile bool) (chi.Router, errorsx.Error) {
	traceDirPath, err := ioutil.TempDir("", "skyfence-trace")
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	traceFilePath := filepath.Join(traceDirPath, fmt.Sprintf("trace_%s.pbf", time.Now().Format("2006-01-02__03_04_05")))
	logger.Info("tracing at %q", traceFilePath)

	traceFile, err := os.Create(traceFilePath)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	tracer := tracing.NewTracer(traceFile)

	router := chi.NewRouter()
	router.Use(middleware.DefaultLogger)
	router.Use(tracing.Middleware(tracer))
	router.Route("/api/", func(r chi.Router) {
		r.Mount("/check", webservices.NewCheckService(logger, indexSet, shouldProfile))
		r.Mount("/zones", webservices.NewZonesService(logger, indexSet))
	})

	return router, nil
}
