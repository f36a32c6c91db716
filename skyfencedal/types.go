package skyfencedal

import (
	"context"
	"sync"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/skyfence/skyfence-app/skyfence"
)

// ZoneProvider supplies restricted-zone features from some source
// (GeoJSON file, database, OSM extract). Providers do whatever fetching
// they need inside GetZones; the collision engine itself never fetches.
type ZoneProvider interface {
	Name() string
	GetZones(ctx context.Context) ([]*skyfence.ZoneFeature, errorsx.Error)
}

type ProviderSet struct {
	providers []ZoneProvider
	mu        *sync.RWMutex
}

func NewProviderSet(providers []ZoneProvider) *ProviderSet {
	return &ProviderSet{providers, new(sync.RWMutex)}
}

func (ps *ProviderSet) GetProviders() []ZoneProvider {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.providers
}

func (ps *ProviderSet) AddProvider(provider ZoneProvider) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.providers = append(ps.providers, provider)
}

// GetAllZones concatenates every provider's zones, in provider order.
func (ps *ProviderSet) GetAllZones(ctx context.Context) ([]*skyfence.ZoneFeature, errorsx.Error) {
	var zones []*skyfence.ZoneFeature
	for _, provider := range ps.GetProviders() {
		providerZones, err := provider.GetZones(ctx)
		if err != nil {
			return nil, errorsx.Wrap(err, "provider", provider.Name())
		}
		zones = append(zones, providerZones...)
	}
	return zones, nil
}
