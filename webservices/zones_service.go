package webservices

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/skyfence/skyfence-app/skyfence"
	"github.com/skyfence/skyfence-app/skyfencedal"
)

// ZonesService reports what the current index holds and triggers wholesale
// rebuilds when zone sources change.
type ZonesService struct {
	logger   *logpkg.Logger
	indexSet *skyfencedal.IndexSet
	chi.Router
}

func NewZonesService(logger *logpkg.Logger, indexSet *skyfencedal.IndexSet) *ZonesService {
	zs := &ZonesService{logger, indexSet, chi.NewRouter()}

	zs.Get("/", zs.handleGetInfo)
	zs.Post("/reload", zs.handleReload)

	return zs
}

type zonesInfoType struct {
	Providers       []string                  `json:"providers"`
	IndexedZones    int                       `json:"indexedZones"`
	ZonesByType     map[skyfence.ZoneType]int `json:"zonesByType"`
	ZonesBySeverity map[skyfence.Severity]int `json:"zonesBySeverity"`
}

func (zs *ZonesService) handleGetInfo(w http.ResponseWriter, r *http.Request) {
	info := zonesInfoType{
		Providers:       []string{},
		ZonesByType:     map[skyfence.ZoneType]int{},
		ZonesBySeverity: map[skyfence.Severity]int{},
	}

	for _, provider := range zs.indexSet.Providers().GetProviders() {
		info.Providers = append(info.Providers, provider.Name())
	}

	idx := zs.indexSet.Index()
	info.IndexedZones = idx.Len()
	for _, zone := range idx.Zones() {
		info.ZonesByType[zone.Type]++
		info.ZonesBySeverity[zone.Type.Severity()]++
	}

	render.JSON(w, r, info)
}

func (zs *ZonesService) handleReload(w http.ResponseWriter, r *http.Request) {
	err := zs.indexSet.Rebuild(r.Context())
	if err != nil {
		errorsx.HTTPError(w, zs.logger, err, http.StatusInternalServerError)
		return
	}

	zs.logger.Info("zone index rebuilt: %d zones", zs.indexSet.Index().Len())
	render.JSON(w, r, map[string]int{"indexedZones": zs.indexSet.Index().Len()})
}
