package webservices

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/paulmach/orb"
	"github.com/pkg/profile"
	"github.com/skyfence/skyfence-app/collision"
	"github.com/skyfence/skyfence-app/skyfence"
	"github.com/skyfence/skyfence-app/skyfencedal"
)

const batchParallelism = 4

// CheckService exposes the collision engine over HTTP. It holds no state
// of its own; every request runs against the index set's current index.
type CheckService struct {
	logger        *logpkg.Logger
	indexSet      *skyfencedal.IndexSet
	shouldProfile bool
	chi.Router
}

func NewCheckService(logger *logpkg.Logger, indexSet *skyfencedal.IndexSet, shouldProfile bool) *CheckService {
	cs := &CheckService{logger, indexSet, shouldProfile, chi.NewRouter()}

	cs.Post("/point", cs.handleCheckPoint)
	cs.Post("/path", cs.handleCheckPath)
	cs.Post("/area", cs.handleCheckArea)
	cs.Post("/batch", cs.handleCheckBatch)

	return cs
}

type checkPointRequest struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

func (cs *CheckService) handleCheckPoint(w http.ResponseWriter, r *http.Request) {
	if cs.shouldProfile {
		defer profile.Start().Stop()
	}

	var req checkPointRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		errorsx.HTTPError(w, cs.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	render.JSON(w, r, collision.CheckPoint(cs.indexSet.Index(), req.Lng, req.Lat))
}

type checkPathRequest struct {
	Points []orb.Point `json:"points"`
}

func (cs *CheckService) handleCheckPath(w http.ResponseWriter, r *http.Request) {
	if cs.shouldProfile {
		defer profile.Start().Stop()
	}

	var req checkPathRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		errorsx.HTTPError(w, cs.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	render.JSON(w, r, collision.CheckPath(cs.indexSet.Index(), req.Points))
}

type checkAreaRequest struct {
	Rings []orb.Ring `json:"rings"`
}

func (cs *CheckService) handleCheckArea(w http.ResponseWriter, r *http.Request) {
	if cs.shouldProfile {
		defer profile.Start().Stop()
	}

	var req checkAreaRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		errorsx.HTTPError(w, cs.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	render.JSON(w, r, collision.CheckArea(cs.indexSet.Index(), req.Rings))
}

type checkBatchRequest struct {
	Waypoints []skyfence.Waypoint `json:"waypoints"`
}

func (cs *CheckService) handleCheckBatch(w http.ResponseWriter, r *http.Request) {
	if cs.shouldProfile {
		defer profile.Start().Stop()
	}

	var req checkBatchRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		errorsx.HTTPError(w, cs.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	render.JSON(w, r, collision.CheckPointsParallel(cs.indexSet.Index(), req.Waypoints, batchParallelism))
}
