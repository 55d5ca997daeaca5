// internal/application/catalog_service_test.go
package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"go.uber.org/zap"

	"github.com/meetmeds/storefront/internal/adapters/memory"
	"github.com/meetmeds/storefront/internal/domain"
	"github.com/meetmeds/storefront/internal/ports"
)

func nextResource(t *testing.T, ch <-chan domain.Resource[[]domain.Medicine]) (domain.Resource[[]domain.Medicine], bool) {
	t.Helper()
	select {
	case res, ok := <-ch:
		return res, ok
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for resource")
		return domain.Resource[[]domain.Medicine]{}, false
	}
}

func medicineIDs(medicines []domain.Medicine) map[string]bool {
	ids := make(map[string]bool, len(medicines))
	for _, m := range medicines {
		ids[m.ID] = true
	}
	return ids
}

func TestCatalogService_SyncReplacesCacheWholesale(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	setA := []domain.Medicine{{ID: "a1", Name: "Aspirin"}}
	setB := []domain.Medicine{{ID: "b1", Name: "Ibuprofen"}, {ID: "b2", Name: "Cetirizine"}}

	cache := memory.NewStore()
	if err := cache.ReplaceMedicines(context.Background(), setA); err != nil {
		t.Fatal(err)
	}

	remote := ports.NewMockRemoteStorePort(ctrl)
	remote.EXPECT().FetchMedicines(gomock.Any()).Return(setB, nil)

	svc := NewCatalogService(remote, cache, zap.NewNop())
	updates, stop := svc.Medicines(context.Background())
	defer stop()

	res, ok := nextResource(t, updates)
	if !ok || res.State != domain.StateLoading {
		t.Fatalf("first resource = %+v, want Loading", res)
	}

	// successive snapshots must each be entirely A or entirely B, never a mix
	sawB := false
	for !sawB {
		res, ok := nextResource(t, updates)
		if !ok {
			t.Fatal("stream closed before set B arrived")
		}
		if res.State != domain.StateSuccess {
			t.Fatalf("unexpected resource %+v", res)
		}
		ids := medicineIDs(res.Data)
		switch {
		case len(res.Data) == 1 && ids["a1"]:
			// stale snapshot before the sync landed
		case len(res.Data) == 2 && ids["b1"] && ids["b2"]:
			sawB = true
		default:
			t.Fatalf("snapshot mixes catalog generations: %+v", res.Data)
		}
	}

	cached, err := cache.Medicines(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(cached) != 2 || !medicineIDs(cached)["b1"] {
		t.Fatalf("cache after sync = %+v, want set B", cached)
	}
}

func TestCatalogService_FetchFailureKeepsCachedData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cached := []domain.Medicine{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	cache := memory.NewStore()
	if err := cache.ReplaceMedicines(context.Background(), cached); err != nil {
		t.Fatal(err)
	}

	remote := ports.NewMockRemoteStorePort(ctrl)
	remote.EXPECT().FetchMedicines(gomock.Any()).Return(nil, errors.New("network down"))

	svc := NewCatalogService(remote, cache, zap.NewNop())
	updates, stop := svc.Medicines(context.Background())
	defer stop()

	sawCached, sawError := false, false
	for !sawCached || !sawError {
		res, ok := nextResource(t, updates)
		if !ok {
			t.Fatal("stream closed early")
		}
		switch res.State {
		case domain.StateSuccess:
			if len(res.Data) == 3 {
				sawCached = true
			}
		case domain.StateError:
			if res.Message != "network down" {
				t.Fatalf("error message = %q, want %q", res.Message, "network down")
			}
			sawError = true
		}
	}

	after, err := cache.Medicines(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 3 {
		t.Fatalf("fetch failure must not blank the cache, got %d items", len(after))
	}
}

func TestCatalogService_EmptyCacheAndFailedFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := ports.NewMockRemoteStorePort(ctrl)
	remote.EXPECT().FetchMedicines(gomock.Any()).Return(nil, errors.New("network down"))

	svc := NewCatalogService(remote, memory.NewStore(), zap.NewNop())
	updates, stop := svc.Medicines(context.Background())
	defer stop()

	for {
		res, ok := nextResource(t, updates)
		if !ok {
			t.Fatal("stream closed before the error arrived")
		}
		if res.State == domain.StateSuccess && len(res.Data) > 0 {
			t.Fatalf("unexpected data with an empty cache: %+v", res.Data)
		}
		if res.State == domain.StateError {
			if len(res.Data) != 0 {
				t.Fatalf("error carries stale data that never existed: %+v", res.Data)
			}
			return
		}
	}
}

func TestCatalogService_NoDeliveryAfterStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := memory.NewStore()
	remote := ports.NewMockRemoteStorePort(ctrl)
	// the subscription may be torn down before the fetch even starts
	remote.EXPECT().FetchMedicines(gomock.Any()).Return([]domain.Medicine{{ID: "x"}}, nil).AnyTimes()

	svc := NewCatalogService(remote, cache, zap.NewNop())
	updates, stop := svc.Medicines(context.Background())

	stop()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-updates:
			if !ok {
				return // closed, nothing more can arrive
			}
		case <-deadline:
			t.Fatal("stream did not close after stop")
		}
	}
}
