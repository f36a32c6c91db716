package skyfencedal

import (
	"context"
	"sync"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/skyfence/skyfence-app/collision"
)

// IndexSet owns the current zone index and rebuilds it wholesale from the
// provider set when asked. The index itself is immutable; a rebuild swaps
// in a fresh one, so readers holding the old index keep a consistent view.
type IndexSet struct {
	providers *ProviderSet

	mu  *sync.RWMutex
	idx *collision.ZoneIndex
}

func NewIndexSet(providers *ProviderSet) *IndexSet {
	return &IndexSet{
		providers: providers,
		mu:        new(sync.RWMutex),
		idx:       collision.BuildIndex(nil),
	}
}

// Rebuild fetches every provider's zones and replaces the index. On error
// the previous index stays in place.
func (s *IndexSet) Rebuild(ctx context.Context) errorsx.Error {
	zones, err := s.providers.GetAllZones(ctx)
	if err != nil {
		return errorsx.Wrap(err)
	}

	idx := collision.BuildIndex(zones)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.idx = idx
	return nil
}

// Index returns the current index. Safe to query concurrently; the
// returned index never changes under the caller.
func (s *IndexSet) Index() *collision.ZoneIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx
}

func (s *IndexSet) Providers() *ProviderSet {
	return s.providers
}
