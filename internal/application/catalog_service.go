// internal/application/catalog_service.go
package application

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/meetmeds/storefront/internal/domain"
	"github.com/meetmeds/storefront/internal/ports"
)

const syncFallbackMessage = "Failed to sync data"

// CatalogService exposes a continuously updated view of the medicine
// catalog. The local cache is the source of truth; every subscription also
// triggers one opportunistic remote fetch whose result replaces the cache
// wholesale. A failed fetch surfaces an error next to whatever the cache
// already holds instead of blanking it out.
type CatalogService struct {
	remote ports.RemoteStorePort
	cache  ports.CatalogCachePort
	log    *zap.Logger
}

func NewCatalogService(remote ports.RemoteStorePort, cache ports.CatalogCachePort, log *zap.Logger) *CatalogService {
	return &CatalogService{remote: remote, cache: cache, log: log}
}

// Medicines streams Loading first, then the cache contents as Success
// snapshots, then an Error (carrying the last seen snapshot) if the remote
// fetch fails. The stop function tears the subscription down; the channel
// closes and nothing is delivered afterwards.
func (s *CatalogService) Medicines(ctx context.Context) (<-chan domain.Resource[[]domain.Medicine], func()) {
	out := make(chan domain.Resource[[]domain.Medicine])
	stopped := make(chan struct{})
	var once sync.Once
	stop := func() { once.Do(func() { close(stopped) }) }

	go func() {
		defer close(out)

		send := func(r domain.Resource[[]domain.Medicine]) bool {
			select {
			case out <- r:
				return true
			case <-stopped:
				return false
			case <-ctx.Done():
				return false
			}
		}

		if !send(domain.Loading[[]domain.Medicine]()) {
			return
		}

		snapshots, stopWatch, err := s.cache.WatchMedicines(ctx)
		if err != nil {
			send(domain.Failure[[]domain.Medicine](errMessage(err, syncFallbackMessage), nil))
			return
		}
		defer stopWatch()

		syncResult := make(chan error, 1)
		go func() { syncResult <- s.syncOnce(ctx) }()

		var last []domain.Medicine
		for {
			select {
			case snapshot, ok := <-snapshots:
				if !ok {
					return
				}
				last = snapshot
				if !send(domain.Success(snapshot)) {
					return
				}
			case err := <-syncResult:
				syncResult = nil
				if err != nil {
					if !send(domain.Failure(errMessage(err, syncFallbackMessage), last)) {
						return
					}
				}
			case <-stopped:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, stop
}

func (s *CatalogService) syncOnce(ctx context.Context) error {
	medicines, err := s.remote.FetchMedicines(ctx)
	if err != nil {
		s.log.Warn("catalog sync failed", zap.Error(err))
		return err
	}
	if err := s.cache.ReplaceMedicines(ctx, medicines); err != nil {
		s.log.Warn("catalog cache replace failed", zap.Error(err))
		return err
	}
	s.log.Debug("catalog synced", zap.Int("medicines", len(medicines)))
	return nil
}
