// internal/application/cart_service_test.go
package application

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/meetmeds/storefront/internal/adapters/memory"
	"github.com/meetmeds/storefront/internal/domain"
)

func newCartService() (*CartService, *memory.Store) {
	store := memory.NewStore()
	return NewCartService(store, zap.NewNop()), store
}

func assertCartInvariants(t *testing.T, items []domain.CartItem) {
	t.Helper()
	seen := make(map[string]bool)
	for _, item := range items {
		if item.Quantity <= 0 {
			t.Fatalf("row %q stored with quantity %d", item.MedicineID, item.Quantity)
		}
		if seen[item.MedicineID] {
			t.Fatalf("duplicate row for medicine %q", item.MedicineID)
		}
		seen[item.MedicineID] = true
	}
}

func TestCartService_AddMergesExistingRow(t *testing.T) {
	svc, store := newCartService()
	ctx := context.Background()
	med := domain.Medicine{ID: "m1", Name: "Paracetamol", Price: 2.50, ImageURL: "img"}

	if err := svc.Add(ctx, med, 2); err != nil {
		t.Fatal(err)
	}
	if err := svc.Add(ctx, med, 3); err != nil {
		t.Fatal(err)
	}

	items, _ := store.Items(ctx)
	if len(items) != 1 {
		t.Fatalf("rows = %d, want 1", len(items))
	}
	got := items[0]
	if got.Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", got.Quantity)
	}
	if got.Name != "Paracetamol" || got.Price != 2.50 || got.ImageURL != "img" {
		t.Fatalf("display fields not captured at add time: %+v", got)
	}
	assertCartInvariants(t, items)
}

func TestCartService_AddRejectsNonPositiveQuantity(t *testing.T) {
	svc, store := newCartService()
	ctx := context.Background()

	for _, q := range []int{0, -1} {
		if err := svc.Add(ctx, domain.Medicine{ID: "m1"}, q); err == nil {
			t.Fatalf("Add with quantity %d succeeded, want error", q)
		}
	}
	items, _ := store.Items(ctx)
	if len(items) != 0 {
		t.Fatalf("cart not empty after rejected adds: %+v", items)
	}
}

func TestCartService_UpdateQuantity(t *testing.T) {
	svc, store := newCartService()
	ctx := context.Background()
	med := domain.Medicine{ID: "m1", Price: 2.50}

	if err := svc.Add(ctx, med, 2); err != nil {
		t.Fatal(err)
	}

	if err := svc.UpdateQuantity(ctx, "m1", 7); err != nil {
		t.Fatal(err)
	}
	item, _ := store.Item(ctx, "m1")
	if item == nil || item.Quantity != 7 {
		t.Fatalf("item = %+v, want quantity 7", item)
	}

	// unknown id is a no-op
	if err := svc.UpdateQuantity(ctx, "ghost", 3); err != nil {
		t.Fatal(err)
	}
	items, _ := store.Items(ctx)
	if len(items) != 1 {
		t.Fatalf("rows = %d, want 1", len(items))
	}
	assertCartInvariants(t, items)
}

func TestCartService_UpdateQuantityZeroDeletesRow(t *testing.T) {
	ctx := context.Background()

	for _, q := range []int{0, -2} {
		svc, store := newCartService()
		if err := svc.Add(ctx, domain.Medicine{ID: "1", Price: 2.50}, 2); err != nil {
			t.Fatal(err)
		}
		if err := svc.UpdateQuantity(ctx, "1", q); err != nil {
			t.Fatal(err)
		}
		items, _ := store.Items(ctx)
		if len(items) != 0 {
			t.Fatalf("UpdateQuantity(%d) left rows behind: %+v", q, items)
		}
	}
}

func TestCartService_ExampleScenario(t *testing.T) {
	svc, store := newCartService()
	ctx := context.Background()

	if err := svc.Add(ctx, domain.Medicine{ID: "1", Price: 2.50}, 2); err != nil {
		t.Fatal(err)
	}
	items, _ := store.Items(ctx)
	if len(items) != 1 || items[0].MedicineID != "1" || items[0].Quantity != 2 {
		t.Fatalf("items = %+v, want [{1 qty 2}]", items)
	}
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	if total != 5.00 {
		t.Fatalf("total = %v, want 5.00", total)
	}

	if err := svc.UpdateQuantity(ctx, "1", 0); err != nil {
		t.Fatal(err)
	}
	items, _ = store.Items(ctx)
	if len(items) != 0 {
		t.Fatalf("items = %+v, want empty", items)
	}
}

func TestCartService_RemoveAndClear(t *testing.T) {
	svc, store := newCartService()
	ctx := context.Background()

	_ = svc.Add(ctx, domain.Medicine{ID: "m1"}, 1)
	_ = svc.Add(ctx, domain.Medicine{ID: "m2"}, 2)
	_ = svc.Add(ctx, domain.Medicine{ID: "m3"}, 3)

	if err := svc.Remove(ctx, "m2"); err != nil {
		t.Fatal(err)
	}
	items, _ := store.Items(ctx)
	if len(items) != 2 {
		t.Fatalf("rows after remove = %d, want 2", len(items))
	}

	if err := svc.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	items, _ = store.Items(ctx)
	if len(items) != 0 {
		t.Fatalf("rows after clear = %d, want 0", len(items))
	}
}

func TestCartService_WatchDeliversSnapshots(t *testing.T) {
	svc, _ := newCartService()
	ctx := context.Background()

	updates, stop, err := svc.Items(ctx)
	if err != nil {
		t.Fatal(err)
	}

	awaitLen := func(want int) {
		t.Helper()
		deadline := time.After(2 * time.Second)
		for {
			select {
			case items, ok := <-updates:
				if !ok {
					t.Fatal("stream closed early")
				}
				if len(items) == want {
					assertCartInvariants(t, items)
					return
				}
			case <-deadline:
				t.Fatalf("never saw a %d-item snapshot", want)
			}
		}
	}

	awaitLen(0)
	if err := svc.Add(ctx, domain.Medicine{ID: "m1"}, 1); err != nil {
		t.Fatal(err)
	}
	awaitLen(1)

	stop()
	_ = svc.Add(ctx, domain.Medicine{ID: "m2"}, 1)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-updates:
			if !ok {
				return // closed, nothing delivered after stop
			}
		case <-deadline:
			t.Fatal("stream did not close after stop")
		}
	}
}
