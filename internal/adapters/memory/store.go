// internal/adapters/memory/store.go
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/meetmeds/storefront/internal/domain"
	"github.com/meetmeds/storefront/internal/stream"
)

// Store keeps the local cache tables in process memory. It backs the test
// suite and doubles as a fallback when no Redis instance is around; the
// contents do not survive a restart.
type Store struct {
	mu        sync.RWMutex
	medicines []domain.Medicine
	cart      map[string]domain.CartItem
	session   string

	catalogWatch *stream.Hub[[]domain.Medicine]
	cartWatch    *stream.Hub[[]domain.CartItem]
}

func NewStore() *Store {
	return &Store{
		cart:         make(map[string]domain.CartItem),
		catalogWatch: stream.NewHub[[]domain.Medicine](),
		cartWatch:    stream.NewHub[[]domain.CartItem](),
	}
}

// catalog replica

func (s *Store) Medicines(ctx context.Context) ([]domain.Medicine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Medicine(nil), s.medicines...), nil
}

func (s *Store) ReplaceMedicines(ctx context.Context, medicines []domain.Medicine) error {
	snapshot := append([]domain.Medicine(nil), medicines...)
	s.mu.Lock()
	s.medicines = snapshot
	s.mu.Unlock()
	s.catalogWatch.Publish(snapshot)
	return nil
}

func (s *Store) WatchMedicines(ctx context.Context) (<-chan []domain.Medicine, func(), error) {
	current, _ := s.Medicines(ctx)
	ch, stop := s.catalogWatch.Subscribe(current)
	return ch, stop, nil
}

// cart rows

func (s *Store) Items(ctx context.Context) ([]domain.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemsLocked(), nil
}

func (s *Store) itemsLocked() []domain.CartItem {
	items := make([]domain.CartItem, 0, len(s.cart))
	for _, item := range s.cart {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].MedicineID < items[j].MedicineID })
	return items
}

func (s *Store) Item(ctx context.Context, medicineID string) (*domain.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.cart[medicineID]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *Store) Put(ctx context.Context, item domain.CartItem) error {
	s.mu.Lock()
	s.cart[item.MedicineID] = item
	snapshot := s.itemsLocked()
	s.mu.Unlock()
	s.cartWatch.Publish(snapshot)
	return nil
}

func (s *Store) Remove(ctx context.Context, medicineID string) error {
	s.mu.Lock()
	delete(s.cart, medicineID)
	snapshot := s.itemsLocked()
	s.mu.Unlock()
	s.cartWatch.Publish(snapshot)
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.cart = make(map[string]domain.CartItem)
	s.mu.Unlock()
	s.cartWatch.Publish([]domain.CartItem{})
	return nil
}

func (s *Store) WatchItems(ctx context.Context) (<-chan []domain.CartItem, func(), error) {
	current, _ := s.Items(ctx)
	ch, stop := s.cartWatch.Subscribe(current)
	return ch, stop, nil
}

// persisted auth session

func (s *Store) SaveSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = token
	return nil
}

func (s *Store) LoadSession(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, nil
}

func (s *Store) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = ""
	return nil
}
